// Package plot renders simulation results as standalone SVG documents.
package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/fumin/vqs/ansatz"
	"github.com/fumin/vqs/mat"
)

const (
	Width  = 600
	Height = 400

	margin = 50
)

var paramColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c"}

// Series is a named polyline.
type Series struct {
	Name  string
	Color string
	X     []float64
	Y     []float64
}

// Chart is a line chart with fixed or data driven bounds.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Series []Series

	// YRange fixes the vertical bounds when non-zero.
	YRange [2]float64
}

// Fidelity plots fidelity against time on [0, 1.05].
func Fidelity(times, fidelities []float64) string {
	c := Chart{
		Title:  "Exact vs Variational Agreement",
		XLabel: "Time",
		YLabel: "Fidelity",
		Series: []Series{{Name: "|<psi_var|psi_exact>|^2", Color: "purple", X: times, Y: fidelities}},
		YRange: [2]float64{0, 1.05},
	}
	return c.SVG()
}

// ParameterEvolution plots each rotation angle against time.
func ParameterEvolution(times []float64, params []ansatz.Params) string {
	c := Chart{Title: "Variational Parameter Evolution", XLabel: "Time", YLabel: "Parameter value (rad)"}
	for i := range ansatz.NumParams {
		ys := make([]float64, len(params))
		for k, p := range params {
			ys[k] = p[i]
		}
		c.Series = append(c.Series, Series{Name: fmt.Sprintf("theta%d", i+1), Color: paramColors[i], X: times, Y: ys})
	}
	return c.SVG()
}

// BlochTrajectory plots the path of the states on the Bloch sphere, projected onto the x-z and y-z planes.
func BlochTrajectory(states []mat.Vec) string {
	xs, ys, zs := make([]float64, len(states)), make([]float64, len(states)), make([]float64, len(states))
	for k, psi := range states {
		b := ansatz.Bloch(psi)
		xs[k], ys[k], zs[k] = b[0], b[1], b[2]
	}

	var sb strings.Builder
	header(&sb, Width, Height)
	fmt.Fprintf(&sb, `<text x="%d" y="20" text-anchor="middle" font-size="14">State Trajectory on Bloch Sphere</text>
`, Width/2)
	panel := float64(Width) / 2
	radius := math.Min(panel, Height) / 2 * 0.75
	for i, proj := range []struct {
		label string
		h     []float64
	}{{label: "X", h: xs}, {label: "Y", h: ys}} {
		cx, cy := panel*float64(i)+panel/2, float64(Height)/2+10
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="lightgray"/>
`, cx, cy, radius)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="lightgray"/>
`, cx-radius, cy, cx+radius, cy)
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="lightgray"/>
`, cx, cy-radius, cx, cy+radius)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="12">%s</text>
`, cx+radius+4, cy+4, proj.label)
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" font-size="12">Z</text>
`, cx-4, cy-radius-6)

		pts := make([][2]float64, len(states))
		for k := range states {
			pts[k] = [2]float64{cx + proj.h[k]*radius, cy - zs[k]*radius}
		}
		path(&sb, pts, "teal")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

// SVG renders the chart.
func (c Chart) SVG() string {
	minX, maxX, minY, maxY := c.bounds()
	plotW, plotH := float64(Width-2*margin), float64(Height-2*margin)
	toX := func(x float64) float64 { return margin + (x-minX)/(maxX-minX)*plotW }
	toY := func(y float64) float64 { return margin + plotH - (y-minY)/(maxY-minY)*plotH }

	var sb strings.Builder
	header(&sb, Width, Height)
	fmt.Fprintf(&sb, `<text x="%d" y="25" text-anchor="middle" font-size="14">%s</text>
`, Width/2, escape(c.Title))
	fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%.0f" height="%.0f" fill="none" stroke="black"/>
`, margin, margin, plotW, plotH)
	for i := range 5 {
		gy := minY + (maxY-minY)*float64(i)/4
		y := toY(gy)
		fmt.Fprintf(&sb, `<line x1="%d" y1="%.1f" x2="%.0f" y2="%.1f" stroke="gray" stroke-opacity="0.3"/>
`, margin, y, margin+plotW, y)
		fmt.Fprintf(&sb, `<text x="%d" y="%.1f" text-anchor="end" font-size="10">%.3g</text>
`, margin-4, y+3, gy)
		gx := minX + (maxX-minX)*float64(i)/4
		fmt.Fprintf(&sb, `<text x="%.1f" y="%.0f" text-anchor="middle" font-size="10">%.3g</text>
`, toX(gx), margin+plotH+14, gx)
	}
	fmt.Fprintf(&sb, `<text x="%d" y="%d" text-anchor="middle" font-size="12">%s</text>
`, Width/2, Height-10, escape(c.XLabel))
	fmt.Fprintf(&sb, `<text x="14" y="%d" text-anchor="middle" font-size="12" transform="rotate(-90 14 %d)">%s</text>
`, Height/2, Height/2, escape(c.YLabel))

	for i, s := range c.Series {
		pts := make([][2]float64, 0, len(s.X))
		for k, x := range s.X {
			if k >= len(s.Y) {
				break
			}
			pts = append(pts, [2]float64{toX(x), toY(s.Y[k])})
		}
		path(&sb, pts, s.Color)

		ly := margin + 15 + 15*i
		fmt.Fprintf(&sb, `<line x1="%.0f" y1="%d" x2="%.0f" y2="%d" stroke="%s" stroke-width="2"/>
`, margin+plotW-130, ly, margin+plotW-110, ly, s.Color)
		fmt.Fprintf(&sb, `<text x="%.0f" y="%d" font-size="10">%s</text>
`, margin+plotW-105, ly+3, escape(s.Name))
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (c Chart) bounds() (float64, float64, float64, float64) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, x := range s.X {
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		}
		for _, y := range s.Y {
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if c.YRange != [2]float64{} {
		minY, maxY = c.YRange[0], c.YRange[1]
	}
	if math.IsInf(minX, 0) || math.IsInf(maxX, 0) {
		minX, maxX = 0, 1
	}
	if math.IsInf(minY, 0) || math.IsInf(maxY, 0) {
		minY, maxY = 0, 1
	}

	// Add padding.
	if maxX == minX {
		maxX = minX + 1
	}
	if c.YRange == [2]float64{} {
		rangeY := maxY - minY
		if rangeY == 0 {
			rangeY = 1
		}
		minY -= rangeY * 0.1
		maxY += rangeY * 0.1
	}
	return minX, maxX, minY, maxY
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="white"/>
`, width, height, width, height)
}

func path(sb *strings.Builder, pts [][2]float64, color string) {
	if len(pts) == 0 {
		return
	}
	fmt.Fprintf(sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, color)
	for i, p := range pts {
		switch i {
		case 0:
			fmt.Fprintf(sb, "M%.1f,%.1f", p[0], p[1])
		default:
			fmt.Fprintf(sb, " L%.1f,%.1f", p[0], p[1])
		}
	}
	sb.WriteString("\"/>\n")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
