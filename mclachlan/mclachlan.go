// Package mclachlan builds and solves the linear system of McLachlan's variational principle,
//
//	A θ' = C,  A_ij = Re<∂_i psi|∂_j psi>,  C_i = Im<∂_i psi|H(t)|psi>,
//
// which picks the parameter velocity θ' whose induced state change is closest to the Schrodinger
// evolution -iH|psi>.
package mclachlan

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/fumin/vqs/ansatz"
	"github.com/fumin/vqs/hamiltonian"
	"github.com/fumin/vqs/mat"
)

const (
	// DefaultRegularization is the diagonal shift added to A.
	DefaultRegularization = 1e-6
)

var (
	ErrSingular  = mat.ErrSingular
	ErrNonFinite = mat.ErrNonFinite
)

// Options are options for building the McLachlan system.
type Options struct {
	regularization float64
}

// NewOptions returns the default options.
func NewOptions() Options {
	opt := Options{}
	opt.regularization = DefaultRegularization
	return opt
}

// Regularization sets the shift added to the diagonal of A.
func (opt Options) Regularization(r float64) Options {
	opt.regularization = r
	return opt
}

// GetRegularization returns the diagonal shift.
func (opt Options) GetRegularization() float64 {
	return opt.regularization
}

// BuildA returns the regularized metric A.
func BuildA(p ansatz.Params, options ...Options) *gmat.SymDense {
	opt := NewOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	return buildA(ansatz.Derivatives(p), opt.regularization)
}

func buildA(d ansatz.Derivs, regularization float64) *gmat.SymDense {
	a := gmat.NewSymDense(ansatz.NumParams, nil)
	for i := range ansatz.NumParams {
		for j := i; j < ansatz.NumParams; j++ {
			v := real(mat.Inner(d[i], d[j]))
			if i == j {
				v += regularization
			}
			a.SetSym(i, j, v)
		}
	}
	return a
}

// BuildC returns the drive vector C at time t.
func BuildC(p ansatz.Params, t float64) []float64 {
	return buildC(ansatz.State(p), ansatz.Derivatives(p), t)
}

func buildC(psi mat.Vec, d ansatz.Derivs, t float64) []float64 {
	hpsi := hamiltonian.NewOperator(t).Apply(psi)
	c := make([]float64, ansatz.NumParams)
	for i, di := range d {
		c[i] = imag(mat.Inner(di, hpsi))
	}
	return c
}

// Velocity solves A θ' = C for the parameter velocity at time t.
// A system that cannot be solved returns an error wrapping ErrSingular or ErrNonFinite.
func Velocity(p ansatz.Params, t float64, options ...Options) (ansatz.Params, error) {
	opt := NewOptions()
	if len(options) > 0 {
		opt = options[0]
	}
	if !p.IsFinite() || math.IsNaN(t) || math.IsInf(t, 0) {
		return ansatz.Params{}, errors.Wrap(ErrNonFinite, fmt.Sprintf("%v %f", p, t))
	}

	d := ansatz.Derivatives(p)
	a := buildA(d, opt.regularization)
	c := buildC(ansatz.State(p), d, t)
	x, err := mat.Solve(a, c)
	if err != nil {
		return ansatz.Params{}, errors.Wrap(err, fmt.Sprintf("%v %f", p, t))
	}

	var v ansatz.Params
	copy(v[:], x)
	return v, nil
}
