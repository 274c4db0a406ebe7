package hamiltonian

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	gmat "gonum.org/v1/gonum/mat"

	"github.com/fumin/vqs/mat"
)

func TestMatrix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		t float64
	}{
		{t: 0},
		{t: 0.3},
		{t: math.Pi / 2},
		{t: 5},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v", test.t), func(t *testing.T) {
			t.Parallel()
			h := Matrix(test.t)
			if !mat.IsHermitian(h, 0) {
				t.Fatalf("%v", h)
			}

			a, b := Coefficients(test.t)
			expected := gmat.NewCDense(2, 2, nil)
			for i := range 2 {
				for j := range 2 {
					expected.Set(i, j, complex(a, 0)*mat.M(mat.PauliZ).At(i, j)+complex(b, 0)*mat.M(mat.PauliX).At(i, j))
				}
			}
			if !mat.EqualApprox(h, expected, 1e-15) {
				t.Fatalf("%v, expected %v", h, expected)
			}

			if dense := NewOperator(test.t).Dense(); !mat.EqualApprox(dense, h, 1e-15) {
				t.Fatalf("%v, expected %v", dense, h)
			}
		})
	}
}

func TestCoefficients(t *testing.T) {
	t.Parallel()
	a, b := Coefficients(0.3)
	if a != math.Cos(0.3) || b != math.Sin(0.3) {
		t.Fatalf("%f %f", a, b)
	}
	if a*a+b*b-1 > 1e-15 {
		t.Fatalf("%f %f", a, b)
	}
}

func TestOperatorApply(t *testing.T) {
	t.Parallel()
	states := []mat.Vec{
		mat.Basis(0),
		mat.Basis(1),
		mat.Normalize(mat.Vec{1, 1i}),
		mat.Normalize(mat.Vec{0.3 - 0.2i, 0.9}),
	}
	for _, ts := range []float64{0, 0.3, 1.7} {
		h := NewOperator(ts)
		m := Matrix(ts)
		for _, x := range states {
			y, expected := h.Apply(x), mat.MulVec(m, x)
			for i := range y {
				if cmplx.Abs(y[i]-expected[i]) > 1e-15 {
					t.Fatalf("%v %v %v, expected %v", ts, x, y, expected)
				}
			}
		}
	}
}

func TestOperatorExpectation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		h Operator
		x mat.Vec
		e float64
	}{
		{h: Operator{{Coeff: 1, Op: Z}}, x: mat.Basis(0), e: 1},
		{h: Operator{{Coeff: 1, Op: Z}}, x: mat.Basis(1), e: -1},
		{h: Operator{{Coeff: 2, Op: X}}, x: mat.Normalize(mat.Vec{1, 1}), e: 2},
		{h: Operator{{Coeff: 1, Op: Y}}, x: mat.Normalize(mat.Vec{1, 1i}), e: 1},
		{h: NewOperator(0), x: mat.Basis(0), e: 1},
		{h: NewOperator(math.Pi / 2), x: mat.Basis(0), e: 0},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s %v", test.h, test.x), func(t *testing.T) {
			t.Parallel()
			if e := test.h.Expectation(test.x); math.Abs(e-test.e) > 1e-12 {
				t.Fatalf("%f, expected %f", e, test.e)
			}
		})
	}
}

func TestInitialState(t *testing.T) {
	t.Parallel()
	if s := InitialState(); s != (mat.Vec{1, 0}) {
		t.Fatalf("%v", s)
	}
}
