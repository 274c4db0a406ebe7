package plot

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fumin/vqs"
)

func TestPlots(t *testing.T) {
	t.Parallel()
	r, err := vqs.RunFullSimulation(1, 0.1)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	tests := []struct {
		name  string
		svg   string
		paths int
		text  string
	}{
		{name: "fidelity", svg: Fidelity(r.Times, r.Fidelities), paths: 1, text: "&lt;psi_var|psi_exact&gt;"},
		{name: "params", svg: ParameterEvolution(r.Times, r.ParamHistory), paths: 3, text: "theta3"},
		{name: "bloch", svg: BlochTrajectory(r.VariationalStates), paths: 2, text: "Bloch Sphere"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if err := wellFormed(test.svg); err != nil {
				t.Fatalf("%+v\n%s", err, test.svg)
			}
			if n := strings.Count(test.svg, "<path "); n != test.paths {
				t.Fatalf("%d, expected %d", n, test.paths)
			}
			if !strings.Contains(test.svg, test.text) {
				t.Fatalf("%s not found in %s", test.text, test.svg)
			}
			if strings.Contains(test.svg, "NaN") || strings.Contains(test.svg, "Inf") {
				t.Fatalf("%s", test.svg)
			}
		})
	}
}

func TestChartDegenerate(t *testing.T) {
	t.Parallel()
	tests := []Chart{
		{},
		{Series: []Series{{Name: "a", Color: "red", X: []float64{0}, Y: []float64{1}}}},
		{Series: []Series{{Name: "a", Color: "red", X: []float64{0, 1, 2}, Y: []float64{3, 3, 3}}}},
	}
	for i, c := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			t.Parallel()
			svg := c.SVG()
			if err := wellFormed(svg); err != nil {
				t.Fatalf("%+v\n%s", err, svg)
			}
			if strings.Contains(svg, "NaN") || strings.Contains(svg, "Inf") {
				t.Fatalf("%s", svg)
			}
		})
	}
}

func wellFormed(svg string) error {
	d := xml.NewDecoder(strings.NewReader(svg))
	for {
		_, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
