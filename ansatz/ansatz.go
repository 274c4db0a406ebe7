// Package ansatz evaluates the single-qubit variational state RZ(g) RY(b) RX(a)|0> and its exact
// parameter derivatives.
//
// Every rotation R(θ) = exp(-iθσ/2) satisfies dR/dθ = -i/2 σ R, so the derivative with respect to one
// angle is the same product of rotations with -i/2 σ inserted after that rotation.
package ansatz

import (
	"math"
	"math/cmplx"

	"github.com/fumin/vqs/mat"
)

// NumParams is the number of rotation angles.
const NumParams = 3

// Params are the rotation angles about X, Y and Z, in radians.
type Params [NumParams]float64

// Derivs holds d|psi>/dθ_i in row i.
type Derivs [NumParams]mat.Vec

// Seed returns the small-angle starting point of the variational evolution.
// It sits close to |0> while leaving the derivative vectors linearly independent.
func Seed() Params {
	return Params{0.05, 0.05, 0.05}
}

// IsFinite reports whether no angle is NaN or Inf.
func (p Params) IsFinite() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// State returns the normalized statevector for p.
// Non-finite angles produce non-finite amplitudes.
func State(p Params) mat.Vec {
	return rz(p[2], ry(p[1], rx(p[0], mat.Basis(0))))
}

// ExpectationZ returns <Z> = |psi_0|^2 - |psi_1|^2.
func ExpectationZ(p Params) float64 {
	psi := State(p)
	return abs2(psi[0]) - abs2(psi[1])
}

// Derivatives returns the exact partial derivatives of State.
func Derivatives(p Params) Derivs {
	x := rx(p[0], mat.Basis(0))
	yx := ry(p[1], x)
	psi := rz(p[2], yx)

	var d Derivs
	d[0] = rz(p[2], ry(p[1], halfGen(mat.PauliX, x)))
	d[1] = rz(p[2], halfGen(mat.PauliY, yx))
	d[2] = halfGen(mat.PauliZ, psi)
	return d
}

// Bloch returns the Bloch sphere coordinates of a statevector.
func Bloch(psi mat.Vec) [3]float64 {
	a, b := psi[0], psi[1]
	sx := 2 * real(cmplx.Conj(a)*b)
	sy := 2 * imag(cmplx.Conj(a)*b)
	sz := abs2(a) - abs2(b)
	return [3]float64{sx, sy, sz}
}

func rx(theta float64, x mat.Vec) mat.Vec {
	c, s := halfAngle(theta)
	return mat.Vec{
		c*x[0] - 1i*s*x[1],
		-1i*s*x[0] + c*x[1],
	}
}

func ry(theta float64, x mat.Vec) mat.Vec {
	c, s := halfAngle(theta)
	return mat.Vec{
		c*x[0] - s*x[1],
		s*x[0] + c*x[1],
	}
}

func rz(theta float64, x mat.Vec) mat.Vec {
	phase := cmplx.Exp(complex(0, -theta/2))
	return mat.Vec{phase * x[0], cmplx.Conj(phase) * x[1]}
}

// halfGen returns -i/2 σ|x>.
func halfGen(sigma [][]complex64, x mat.Vec) mat.Vec {
	return mat.Scale(-0.5i, mat.MulVec(mat.M(sigma), x))
}

func halfAngle(theta float64) (complex128, complex128) {
	s, c := math.Sincos(theta / 2)
	return complex(c, 0), complex(s, 0)
}

func abs2(v complex128) float64 {
	return real(v)*real(v) + imag(v)*imag(v)
}
