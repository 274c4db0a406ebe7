package exact

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/pkg/errors"

	"github.com/fumin/vqs/hamiltonian"
	"github.com/fumin/vqs/mat"
)

func TestStep(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x  mat.Vec
		t  float64
		dt float64
	}{
		{x: hamiltonian.InitialState(), t: 0, dt: 0.1},
		{x: hamiltonian.InitialState(), t: 1.3, dt: 0.05},
		{x: mat.Normalize(mat.Vec{1, 1i}), t: 0.7, dt: 0.2},
		{x: mat.Basis(1), t: 4, dt: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v %v", test.x, test.t, test.dt), func(t *testing.T) {
			t.Parallel()
			y := Step(test.x, test.t, test.dt)
			if n := mat.Norm(y); math.Abs(n-1) > 1e-12 {
				t.Fatalf("%v %f", y, n)
			}
			if cmplx.Abs(y[0]-test.x[0]) < 1e-6 && cmplx.Abs(y[1]-test.x[1]) < 1e-6 {
				t.Fatalf("%v, expected a change from %v", y, test.x)
			}
		})
	}
}

func TestStepPhase(t *testing.T) {
	t.Parallel()
	// H(0) = Z, so |0> picks up the phase exp(-i dt).
	const dt = 0.3
	y := Step(hamiltonian.InitialState(), 0, dt)
	expected := mat.Vec{cmplx.Exp(complex(0, -dt)), 0}
	for i := range y {
		if cmplx.Abs(y[i]-expected[i]) > 1e-12 {
			t.Fatalf("%v, expected %v", y, expected)
		}
	}
}

func TestPropagatorUnitary(t *testing.T) {
	t.Parallel()
	for _, ts := range []float64{0, 0.4, 2.2} {
		u := Propagator(ts, 0.1)
		// U^H U = I.
		for i := range 2 {
			for j := range 2 {
				var v complex128
				for k := range 2 {
					v += cmplx.Conj(u.At(k, i)) * u.At(k, j)
				}
				var expected complex128
				if i == j {
					expected = 1
				}
				if cmplx.Abs(v-expected) > 1e-12 {
					t.Fatalf("%v %d %d %v", ts, i, j, v)
				}
			}
		}
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tSpan   float64
		dt      float64
		opt     Options
		nStates int
	}{
		{tSpan: 0.2, dt: 0.1, opt: NewOptions(), nStates: 3},
		{tSpan: 1, dt: 0.3, opt: NewOptions(), nStates: 4},
		{tSpan: 5, dt: 0.05, opt: NewOptions(), nStates: 101},
		{tSpan: 5, dt: 0.05, opt: NewOptions().RenormalizeEvery(10), nStates: 101},
		{tSpan: 0.05, dt: 0.1, opt: NewOptions(), nStates: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v", test.tSpan, test.dt), func(t *testing.T) {
			t.Parallel()
			x0 := hamiltonian.InitialState()
			states, err := Run(x0, test.tSpan, test.dt, test.opt)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if len(states) != test.nStates {
				t.Fatalf("%d, expected %d", len(states), test.nStates)
			}
			if states[0] != x0 {
				t.Fatalf("%v, expected %v", states[0], x0)
			}
			for k, x := range states {
				if n := mat.Norm(x); math.Abs(n-1) > 1e-9 {
					t.Fatalf("%d %f", k, n)
				}
			}
		})
	}
}

func TestRunMatchesSteps(t *testing.T) {
	t.Parallel()
	const dt = 0.1
	states, err := Run(hamiltonian.InitialState(), 0.5, dt)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	x := hamiltonian.InitialState()
	for k := 1; k < len(states); k++ {
		x = Step(x, float64(k-1)*dt, dt)
		if x != states[k] {
			t.Fatalf("%d %v, expected %v", k, states[k], x)
		}
	}
}

func TestRunInvalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tSpan float64
		dt    float64
		opt   Options
	}{
		{tSpan: 0, dt: 0.1, opt: NewOptions()},
		{tSpan: 1, dt: 0, opt: NewOptions()},
		{tSpan: -1, dt: 0.1, opt: NewOptions()},
		{tSpan: math.NaN(), dt: 0.1, opt: NewOptions()},
		{tSpan: 1, dt: math.Inf(1), opt: NewOptions()},
		{tSpan: 1e300, dt: 1e-300, opt: NewOptions()},
		{tSpan: 1, dt: 0.1, opt: NewOptions().RenormalizeEvery(0)},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v", test.tSpan, test.dt), func(t *testing.T) {
			t.Parallel()
			if _, err := Run(hamiltonian.InitialState(), test.tSpan, test.dt, test.opt); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("%+v", err)
			}
		})
	}
}

func TestNumSteps(t *testing.T) {
	t.Parallel()
	tests := []struct {
		tSpan float64
		dt    float64
		n     int
	}{
		{tSpan: 0.2, dt: 0.1, n: 2},
		{tSpan: 1, dt: 0.3, n: 3},
		{tSpan: 0.05, dt: 0.1, n: 0},
		{tSpan: MaxSteps, dt: 1, n: MaxSteps},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %v", test.tSpan, test.dt), func(t *testing.T) {
			t.Parallel()
			n, err := NumSteps(test.tSpan, test.dt)
			if err != nil {
				t.Fatalf("%+v", err)
			}
			if n != test.n {
				t.Fatalf("%d, expected %d", n, test.n)
			}
		})
	}

	if _, err := NumSteps(MaxSteps+1, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("%+v", err)
	}
}
