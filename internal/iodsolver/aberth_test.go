// Public domain.

package iodsolver

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func realRoots(roots []complex128, imagEps float64) []float64 {
	var rs []float64
	for _, z := range roots {
		if math.Abs(imag(z)) <= imagEps {
			rs = append(rs, real(z))
		}
	}
	sort.Float64s(rs)
	return rs
}

func TestPolyRootsQuadratic(t *testing.T) {
	// x² - 1
	roots := polyRoots([]float64{-1, 0, 1}, 50, 1e-9)
	rs := realRoots(roots, 1e-6)
	if len(rs) != 2 || math.Abs(rs[0]+1) > 1e-6 || math.Abs(rs[1]-1) > 1e-6 {
		t.Fatal("roots of x²-1:", roots)
	}
}

func TestPolyRootsCubic(t *testing.T) {
	// (x-1)(x-2)(x-3) = x³ - 6x² + 11x - 6
	roots := polyRoots([]float64{-6, 11, -6, 1}, 50, 1e-9)
	rs := realRoots(roots, 1e-6)
	if len(rs) != 3 {
		t.Fatal("expected 3 real roots:", roots)
	}
	for i, w := range []float64{1, 2, 3} {
		if math.Abs(rs[i]-w) > 1e-6 {
			t.Fatal("cubic roots:", rs)
		}
	}
}

func TestPolyRootsOctic(t *testing.T) {
	// x⁸ - 256 has real roots ±2 and six complex ones
	coef := []float64{-256, 0, 0, 0, 0, 0, 0, 0, 1}
	roots := polyRoots(coef, 100, 1e-9)
	if len(roots) != 8 {
		t.Fatal("root count:", len(roots))
	}
	rs := realRoots(roots, 1e-6)
	if len(rs) != 2 || math.Abs(rs[0]+2) > 1e-5 || math.Abs(rs[1]-2) > 1e-5 {
		t.Fatal("real roots of x⁸-256:", rs)
	}
	// every root must satisfy the polynomial
	for _, z := range roots {
		p, _ := hornerD(coef, z)
		if cmplx.Abs(p) > 1e-4 {
			t.Fatal("residual at root", z, cmplx.Abs(p))
		}
	}
}

func TestPolyRootsGaussShape(t *testing.T) {
	// a polynomial with the sparsity pattern of the distance octic:
	// x⁸ + c6 x⁶ + c3 x³ + c0, values typical of a main belt geometry
	c6 := -(1.1*1.1 + 2*1.1*.9 + 1)
	c3 := -2 * .05 * (1.1 + .9)
	c0 := -.05 * .05
	coef := []float64{c0, 0, 0, c3, 0, 0, c6, 0, 1}
	roots := polyRoots(coef, 100, 1e-9)
	var nPos int
	for _, r := range realRoots(roots, 1e-6) {
		if r > 0 {
			nPos++
		}
	}
	if nPos == 0 {
		t.Fatal("no positive real root:", roots)
	}
	for _, z := range roots {
		p, _ := hornerD(coef, z)
		if cmplx.Abs(p) > 1e-4 {
			t.Fatal("residual at root", z, cmplx.Abs(p))
		}
	}
}

func TestHornerD(t *testing.T) {
	// p(x) = x³ - 6x² + 11x - 6, p(4) = 6, p'(4) = 11
	c := []float64{-6, 11, -6, 1}
	p, dp := hornerD(c, complex(4, 0))
	if math.Abs(real(p)-6) > 1e-12 || math.Abs(imag(p)) > 1e-12 {
		t.Fatal("p(4):", p)
	}
	if math.Abs(real(dp)-11) > 1e-12 {
		t.Fatal("p'(4):", dp)
	}
}
