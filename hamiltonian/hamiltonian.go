// Package hamiltonian implements the driven single-qubit Hamiltonian H(t) = cos(t) Z + sin(t) X.
package hamiltonian

import (
	"fmt"
	"math"

	"github.com/fumin/tensor"
	gmat "gonum.org/v1/gonum/mat"

	"github.com/fumin/vqs/mat"
)

// Coefficients returns the weights (a, b) of the Z and X terms at time t.
func Coefficients(t float64) (float64, float64) {
	return math.Cos(t), math.Sin(t)
}

// Matrix returns the dense representation of H(t).
func Matrix(t float64) *gmat.CDense {
	a, b := Coefficients(t)
	return gmat.NewCDense(2, 2, []complex128{
		complex(a, 0), complex(b, 0),
		complex(b, 0), complex(-a, 0),
	})
}

// InitialState returns |0>, the starting point of both the variational and the exact evolution.
func InitialState() mat.Vec {
	return mat.Basis(0)
}

// Pauli labels a single-qubit Pauli operator.
type Pauli byte

const (
	I Pauli = 'I'
	X Pauli = 'X'
	Y Pauli = 'Y'
	Z Pauli = 'Z'
)

func (p Pauli) String() string { return string(p) }

func (p Pauli) table() [][]complex64 {
	switch p {
	case I:
		return [][]complex64{{1, 0}, {0, 1}}
	case X:
		return mat.PauliX
	case Y:
		return mat.PauliY
	case Z:
		return mat.PauliZ
	default:
		panic(fmt.Sprintf("%d", p))
	}
}

// apply returns p|x> without building a matrix.
func (p Pauli) apply(x mat.Vec) mat.Vec {
	switch p {
	case I:
		return x
	case X:
		return mat.Vec{x[1], x[0]}
	case Y:
		return mat.Vec{-1i * x[1], 1i * x[0]}
	case Z:
		return mat.Vec{x[0], -x[1]}
	default:
		panic(fmt.Sprintf("%d", p))
	}
}

// Term is a real coefficient times a Pauli operator.
type Term struct {
	Coeff float64
	Op    Pauli
}

// Operator is a Hamiltonian given as a sum of weighted Pauli terms.
type Operator []Term

// NewOperator returns H(t) as the operator sum a(t) Z + b(t) X.
func NewOperator(t float64) Operator {
	a, b := Coefficients(t)
	return Operator{{Coeff: a, Op: Z}, {Coeff: b, Op: X}}
}

// Apply returns H|x>, evaluated term by term in double precision.
func (h Operator) Apply(x mat.Vec) mat.Vec {
	var y mat.Vec
	for _, term := range h {
		y = mat.Add(y, mat.Scale(complex(term.Coeff, 0), term.Op.apply(x)))
	}
	return y
}

// Expectation returns <x|H|x>.
func (h Operator) Expectation(x mat.Vec) float64 {
	return real(mat.Inner(x, h.Apply(x)))
}

// Dense expands the operator sum into a 2x2 matrix.
// Pauli entries are exact in single precision, and the coefficients are applied in double precision.
func (h Operator) Dense() *gmat.CDense {
	d := gmat.NewCDense(2, 2, nil)
	for _, term := range h {
		w := tensor.T2(term.Op.table()).Mul(1).ToSlice2()
		for i, row := range w {
			for j, v := range row {
				d.Set(i, j, d.At(i, j)+complex(term.Coeff, 0)*complex128(v))
			}
		}
	}
	return d
}

func (h Operator) String() string {
	s := ""
	for i, term := range h {
		if i > 0 {
			s += " + "
		}
		s += fmt.Sprintf("%g*%s", term.Coeff, term.Op)
	}
	return s
}
