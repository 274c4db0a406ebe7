// Package mat provides the dense single-qubit linear algebra used by the simulator.
//
// Statevectors are fixed size two-amplitude values, operators are gonum complex dense matrices.
// The matrix exponential and the real linear solve are delegated to gonum.
package mat

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	PauliX = [][]complex64{
		{0, 1},
		{1, 0},
	}
	PauliY = [][]complex64{
		{0, -1i},
		{1i, 0},
	}
	PauliZ = [][]complex64{
		{1, 0},
		{0, -1},
	}
)

var (
	// ErrSingular is returned when a linear system cannot be solved reliably.
	ErrSingular = errors.New("singular matrix")
	// ErrNonFinite is returned when an input or a result contains NaN or Inf.
	ErrNonFinite = errors.New("non-finite value")
)

// Vec is a single-qubit statevector, the amplitudes of |0> and |1>.
type Vec [2]complex128

// Basis returns the computational basis state |i>.
func Basis(i int) Vec {
	var v Vec
	v[i] = 1
	return v
}

// Inner returns <x|y>.
func Inner(x, y Vec) complex128 {
	return cmplx.Conj(x[0])*y[0] + cmplx.Conj(x[1])*y[1]
}

func Norm(x Vec) float64 {
	return math.Sqrt(abs2(x[0]) + abs2(x[1]))
}

// Normalize returns x divided by its norm.
// A zero vector is returned unchanged.
func Normalize(x Vec) Vec {
	n := Norm(x)
	if n == 0 {
		return x
	}
	c := complex(1/n, 0)
	return Vec{c * x[0], c * x[1]}
}

func Scale(c complex128, x Vec) Vec {
	return Vec{c * x[0], c * x[1]}
}

func Add(x, y Vec) Vec {
	return Vec{x[0] + y[0], x[1] + y[1]}
}

func IsFinite(x Vec) bool {
	for _, v := range x {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
	}
	return true
}

// M converts a dense table such as PauliX to a complex128 gonum matrix.
func M(dense [][]complex64) *mat.CDense {
	m := mat.NewCDense(len(dense), len(dense[0]), nil)
	for i, row := range dense {
		for j, v := range row {
			m.Set(i, j, complex128(v))
		}
	}
	return m
}

// MulVec returns m @ x.
func MulVec(m mat.CMatrix, x Vec) Vec {
	if r, c := m.Dims(); r != 2 || c != 2 {
		panic(fmt.Sprintf("%d %d", r, c))
	}
	return Vec{
		m.At(0, 0)*x[0] + m.At(0, 1)*x[1],
		m.At(1, 0)*x[0] + m.At(1, 1)*x[1],
	}
}

// EqualApprox reports whether a and b have the same shape and all entries within tol.
func EqualApprox(a, b mat.CMatrix, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := range ar {
		for j := range ac {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// IsHermitian reports whether m equals its conjugate transpose within tol.
func IsHermitian(m mat.CMatrix, tol float64) bool {
	return EqualApprox(m, m.H(), tol)
}

// Expm returns the matrix exponential of a square complex matrix.
//
// The complex matrix A+iB is embedded as the real block matrix [[A, -B], [B, A]], which commutes with
// exponentiation, so the Pade approximant of gonum's Dense.Exp can be used directly.
func Expm(a mat.CMatrix) *mat.CDense {
	n, c := a.Dims()
	if n != c {
		panic(fmt.Sprintf("%d %d", n, c))
	}

	embed := mat.NewDense(2*n, 2*n, nil)
	for i := range n {
		for j := range n {
			v := a.At(i, j)
			embed.Set(i, j, real(v))
			embed.Set(i, j+n, -imag(v))
			embed.Set(i+n, j, imag(v))
			embed.Set(i+n, j+n, real(v))
		}
	}
	var e mat.Dense
	e.Exp(embed)

	u := mat.NewCDense(n, n, nil)
	for i := range n {
		for j := range n {
			u.Set(i, j, complex(e.At(i, j), e.At(i+n, j)))
		}
	}
	return u
}

// Solve solves a @ x = b with an LU based general solve.
// Near-singular systems and non-finite solutions are reported as errors instead of being returned.
func Solve(a mat.Matrix, b []float64) ([]float64, error) {
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(len(b), b)); err != nil {
		return nil, errors.Wrap(ErrSingular, fmt.Sprintf("%v", err))
	}

	sol := make([]float64, x.Len())
	for i := range sol {
		sol[i] = x.AtVec(i)
	}
	if !finite(sol) {
		return nil, errors.Wrap(ErrNonFinite, fmt.Sprintf("%v", sol))
	}
	return sol, nil
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func abs2(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}
