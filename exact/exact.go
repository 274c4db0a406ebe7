// Package exact evolves a statevector under H(t) with the piecewise constant propagator
// U = exp(-i H(t) dt), providing the reference trajectory for the variational simulation.
package exact

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/fumin/vqs/hamiltonian"
	"github.com/fumin/vqs/mat"
)

// MaxSteps bounds the number of steps of a run.
const MaxSteps = math.MaxInt32

// ErrInvalidConfig is returned when the time span, step size or renormalization period are unusable.
var ErrInvalidConfig = errors.New("invalid configuration")

// NumSteps returns floor(tSpan/dt), the number of steps over [0, tSpan].
func NumSteps(tSpan, dt float64) (int, error) {
	if !(tSpan > 0) || math.IsInf(tSpan, 0) {
		return -1, errors.Wrap(ErrInvalidConfig, fmt.Sprintf("t_span %f", tSpan))
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return -1, errors.Wrap(ErrInvalidConfig, fmt.Sprintf("dt %f", dt))
	}
	n := math.Floor(tSpan / dt)
	if !(n <= MaxSteps) {
		return -1, errors.Wrap(ErrInvalidConfig, fmt.Sprintf("%g steps for t_span %g dt %g", n, tSpan, dt))
	}
	return int(n), nil
}

// Options are options for the exact propagator.
type Options struct {
	renormalizeEvery int
}

// NewOptions returns options that renormalize after every step.
func NewOptions() Options {
	opt := Options{}
	opt.renormalizeEvery = 1
	return opt
}

// RenormalizeEvery sets the number of steps between renormalizations.
// The final state of a run is always renormalized.
func (opt Options) RenormalizeEvery(n int) Options {
	opt.renormalizeEvery = n
	return opt
}

// Propagator returns exp(-i H(t) dt).
func Propagator(t, dt float64) *gmat.CDense {
	h := hamiltonian.Matrix(t)
	r, c := h.Dims()
	m := gmat.NewCDense(r, c, nil)
	for i := range r {
		for j := range c {
			m.Set(i, j, complex(0, -dt)*h.At(i, j))
		}
	}
	return mat.Expm(m)
}

// Step advances x from t to t+dt and renormalizes the result.
func Step(x mat.Vec, t, dt float64) mat.Vec {
	return mat.Normalize(step(x, t, dt))
}

func step(x mat.Vec, t, dt float64) mat.Vec {
	return mat.MulVec(Propagator(t, dt), x)
}

// Run evolves x0 over the grid t_k = k*dt, k = 0..floor(tSpan/dt), and returns all floor(tSpan/dt)+1 states.
func Run(x0 mat.Vec, tSpan, dt float64, options ...Options) ([]mat.Vec, error) {
	opt := NewOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	n, err := NumSteps(tSpan, dt)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	if opt.renormalizeEvery < 1 {
		return nil, errors.Wrap(ErrInvalidConfig, fmt.Sprintf("renormalize every %d", opt.renormalizeEvery))
	}

	states := make([]mat.Vec, n+1)
	states[0] = x0
	x := x0
	for k := 1; k <= n; k++ {
		x = step(x, float64(k-1)*dt, dt)
		if k%opt.renormalizeEvery == 0 || k == n {
			x = mat.Normalize(x)
		}
		if !mat.IsFinite(x) {
			return nil, errors.Wrap(mat.ErrNonFinite, fmt.Sprintf("%d %v", k, x))
		}
		states[k] = x
	}
	return states, nil
}
