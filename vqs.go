// Package vqs runs a variational quantum simulation of a driven qubit and compares it against the exact
// evolution.
//
// The variational state is the three rotation ansatz of package ansatz. Its angles are advanced with
// explicit Euler steps of the McLachlan velocity, while package exact propagates |0> with exp(-iH(t)dt).
// Both trajectories share the grid t_k = k*dt and are compared by fidelity at every grid point.
package vqs

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/fumin/vqs/ansatz"
	"github.com/fumin/vqs/exact"
	"github.com/fumin/vqs/hamiltonian"
	"github.com/fumin/vqs/mat"
	"github.com/fumin/vqs/mclachlan"
	"github.com/fumin/vqs/util"
)

var (
	// ErrInvalidConfig is returned before any stepping when the time span, step size or seed are unusable.
	ErrInvalidConfig = exact.ErrInvalidConfig
	// ErrNumericalInstability is returned when the McLachlan system cannot be solved.
	ErrNumericalInstability = errors.New("numerical instability")
)

// StepError records the integration step at which a run was aborted.
type StepError struct {
	Step   int
	Time   float64
	Params ansatz.Params
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d t=%g params %v: %v", e.Step, e.Time, e.Params, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Is matches ErrNumericalInstability, in addition to the wrapped cause.
func (e *StepError) Is(target error) bool { return target == ErrNumericalInstability }

// RunOptions are options of a simulation run.
type RunOptions struct {
	seed      ansatz.Params
	mclachlan mclachlan.Options
	exact     exact.Options

	logger    *log.Logger
	logPeriod time.Duration
}

// NewRunOptions returns the default run options.
func NewRunOptions() RunOptions {
	opt := RunOptions{}
	opt.seed = ansatz.Seed()
	opt.mclachlan = mclachlan.NewOptions()
	opt.exact = exact.NewOptions()
	opt.logPeriod = 10 * time.Second
	return opt
}

// Seed sets the initial angles of the variational trajectory.
func (opt RunOptions) Seed(p ansatz.Params) RunOptions {
	opt.seed = p
	return opt
}

// Regularization sets the diagonal shift of the McLachlan metric.
func (opt RunOptions) Regularization(r float64) RunOptions {
	opt.mclachlan = opt.mclachlan.Regularization(r)
	return opt
}

// RenormalizeEvery sets the renormalization period of the exact propagator.
func (opt RunOptions) RenormalizeEvery(n int) RunOptions {
	opt.exact = opt.exact.RenormalizeEvery(n)
	return opt
}

// Logger enables progress logging, at most once per period.
func (opt RunOptions) Logger(l *log.Logger, period time.Duration) RunOptions {
	opt.logger = l
	opt.logPeriod = period
	return opt
}

// Update performs one explicit Euler step θ + dt*θ'(θ, t).
func Update(p ansatz.Params, t, dt float64, options ...mclachlan.Options) (ansatz.Params, error) {
	v, err := mclachlan.Velocity(p, t, options...)
	if err != nil {
		return ansatz.Params{}, errors.Wrap(err, "")
	}
	for i := range p {
		p[i] += dt * v[i]
	}
	return p, nil
}

// RunVQS integrates the variational parameters from p0 over t_k = k*dt, k = 0..floor(tSpan/dt).
// It returns the statevector and parameter history, both of length floor(tSpan/dt)+1.
func RunVQS(p0 ansatz.Params, tSpan, dt float64, options ...RunOptions) ([]mat.Vec, []ansatz.Params, error) {
	opt := NewRunOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	n, err := validate(p0, tSpan, dt)
	if err != nil {
		return nil, nil, errors.Wrap(err, "")
	}

	states := make([]mat.Vec, n+1)
	params := make([]ansatz.Params, n+1)
	p := p0
	params[0] = p
	states[0] = ansatz.State(p)

	var throttler *util.SkipThrottler
	if opt.logger != nil {
		throttler = util.NewSkipThrottler(opt.logPeriod)
	}
	for k := 1; k <= n; k++ {
		t := float64(k-1) * dt
		next, err := Update(p, t, dt, opt.mclachlan)
		if err != nil {
			return nil, nil, &StepError{Step: k, Time: t, Params: p, Err: err}
		}
		p = next
		params[k] = p
		states[k] = ansatz.State(p)

		if throttler != nil && throttler.Ok() {
			opt.logger.Printf("%d/%d t=%.4f params %v", k, n, t+dt, p)
		}
	}
	return states, params, nil
}

// Fidelity returns |<psi|phi>|^2 / (<psi|psi><phi|phi>), clamped to [0, 1] against rounding.
// A state always has fidelity exactly 1 with itself.
func Fidelity(psi, phi mat.Vec) float64 {
	pp, qq := norm2(psi), norm2(phi)
	if pp == 0 || qq == 0 {
		return 0
	}
	if psi == phi {
		return 1
	}
	ip := mat.Inner(psi, phi)
	f := (real(ip)*real(ip) + imag(ip)*imag(ip)) / (pp * qq)
	return min(max(f, 0), 1)
}

func norm2(x mat.Vec) float64 {
	var s float64
	for _, v := range x {
		s += real(v)*real(v) + imag(v)*imag(v)
	}
	return s
}

// Summary aggregates the fidelities of a run.
type Summary struct {
	Mean  float64
	Min   float64
	Final float64

	// MaxNormDrift is the largest deviation of an exact state's norm from 1.
	MaxNormDrift float64
}

// Summarize returns the mean, minimum and final fidelity.
func Summarize(fidelities []float64) (Summary, error) {
	if len(fidelities) == 0 {
		return Summary{}, errors.Errorf("empty")
	}
	s := Summary{
		Mean:  floats.Sum(fidelities) / float64(len(fidelities)),
		Min:   floats.Min(fidelities),
		Final: fidelities[len(fidelities)-1],
	}
	return s, nil
}

// Result holds the trajectories of a full simulation. All slices have the same length.
type Result struct {
	Times             []float64
	VariationalStates []mat.Vec
	ExactStates       []mat.Vec
	Fidelities        []float64
	ParamHistory      []ansatz.Params

	// Energies are <psi|H(t_k)|psi> along the variational trajectory.
	Energies []float64
}

// Summary summarizes the fidelities and the norm drift of the exact trajectory.
func (r Result) Summary() (Summary, error) {
	s, err := Summarize(r.Fidelities)
	if err != nil {
		return Summary{}, errors.Wrap(err, "")
	}
	for _, x := range r.ExactStates {
		s.MaxNormDrift = max(s.MaxNormDrift, math.Abs(mat.Norm(x)-1))
	}
	return s, nil
}

// RunFullSimulation runs the variational and the exact evolution over [0, tSpan] and compares them.
func RunFullSimulation(tSpan, dt float64, options ...RunOptions) (Result, error) {
	opt := NewRunOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	if _, err := validate(opt.seed, tSpan, dt); err != nil {
		return Result{}, errors.Wrap(err, "")
	}

	varStates, params, err := RunVQS(opt.seed, tSpan, dt, opt)
	if err != nil {
		return Result{}, errors.Wrap(err, "variational")
	}
	exactStates, err := exact.Run(hamiltonian.InitialState(), tSpan, dt, opt.exact)
	if err != nil {
		return Result{}, errors.Wrap(err, "exact")
	}
	if len(varStates) != len(exactStates) {
		return Result{}, errors.Errorf("%d %d", len(varStates), len(exactStates))
	}

	r := Result{
		Times:             make([]float64, len(varStates)),
		VariationalStates: varStates,
		ExactStates:       exactStates,
		Fidelities:        make([]float64, len(varStates)),
		ParamHistory:      params,
		Energies:          make([]float64, len(varStates)),
	}
	for k, psi := range varStates {
		t := float64(k) * dt
		r.Times[k] = t
		r.Fidelities[k] = Fidelity(psi, exactStates[k])
		r.Energies[k] = hamiltonian.NewOperator(t).Expectation(psi)
	}
	return r, nil
}

func validate(p ansatz.Params, tSpan, dt float64) (int, error) {
	n, err := exact.NumSteps(tSpan, dt)
	if err != nil {
		return -1, errors.Wrap(err, "")
	}
	if !p.IsFinite() {
		return -1, errors.Wrap(ErrInvalidConfig, fmt.Sprintf("seed %v", p))
	}
	return n, nil
}
