// Public domain.

package iodsolver

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/iod"
)

func TestStumpff(t *testing.T) {
	// closed forms at moderate z
	for _, z := range []float64{-2, -.5, .5, 2} {
		c, s := stumpff(z)
		var wc, ws float64
		if z > 0 {
			sz := math.Sqrt(z)
			wc = (1 - math.Cos(sz)) / z
			ws = (sz - math.Sin(sz)) / (sz * sz * sz)
		} else {
			sz := math.Sqrt(-z)
			wc = (math.Cosh(sz) - 1) / -z
			ws = (math.Sinh(sz) - sz) / (sz * sz * sz)
		}
		if math.Abs(c-wc) > 1e-12 || math.Abs(s-ws) > 1e-12 {
			t.Fatal("stumpff at z =", z)
		}
	}
	// series limit at zero
	c, s := stumpff(0)
	if math.Abs(c-.5) > 1e-15 || math.Abs(s-1./6) > 1e-15 {
		t.Fatal("stumpff at 0:", c, s)
	}
	// continuity across the series switch: just outside the series
	// range the closed forms must agree with the series to roundoff
	for _, z := range []float64{1.0001e-4, -1.0001e-4} {
		c, s := stumpff(z)
		wc := .5 - z/24 + z*z/720 - z*z*z/40320
		ws := 1./6 - z/120 + z*z/5040 - z*z*z/362880
		if math.Abs(c-wc) > 1e-11 || math.Abs(s-ws) > 1e-11 {
			t.Fatal("stumpff discontinuous at z =", z)
		}
	}
}

func TestUniversalKeplerCircular(t *testing.T) {
	// circular orbit, a = 1, Gaussian units: χ advances like the time
	// of flight
	for _, dt := range []float64{.1, .5, 2} {
		chi, err := universalKepler(1, 0, 1, dt, 1e-12, 50)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(chi-dt) > 1e-9 {
			t.Fatal("circular chi:", chi, "for dt", dt)
		}
		f, g := lagrangeFG(chi, dt, 1, 1)
		// f² + (g·n)² stays on the unit circle for a = 1
		if math.Abs(f-math.Cos(dt)) > 1e-9 || math.Abs(g-math.Sin(dt)) > 1e-9 {
			t.Fatal("lagrange coefficients:", f, g)
		}
	}
}

func TestUniversalKeplerHyperbolic(t *testing.T) {
	// hyperbolic departure: alpha < 0 must still converge
	chi, err := universalKepler(1, .5, -.5, 1, 1e-12, 100)
	if err != nil {
		t.Fatal(err)
	}
	// verify by substitution into the universal Kepler equation
	z := -.5 * chi * chi
	c, s := stumpff(z)
	lhs := 1*.5*chi*chi*c + (1+.5*1)*chi*chi*chi*s + 1*chi
	if math.Abs(lhs-1) > 1e-9 {
		t.Fatal("kepler equation residual:", lhs-1)
	}
}

func testEstimation(t *testing.T) *estimation {
	t.Helper()
	p, err := iod.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	return &estimation{s: &Solver{p: p}}
}

func TestPropagateCircular(t *testing.T) {
	e := testEstimation(t)
	pos := coord.Cart{X: 1}
	vel := coord.Cart{Y: astro.K} // circular speed at 1 AU

	// quarter period: the object moves to the y axis
	quarter := math.Pi / 2 * astro.InvK
	np, nv, err := e.propagate(&pos, &vel, quarter)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(np.X) > 1e-6 || math.Abs(np.Y-1) > 1e-6 || math.Abs(np.Z) > 1e-6 {
		t.Fatal("position after quarter period:", np)
	}
	if math.Abs(nv.X+astro.K) > 1e-8 || math.Abs(nv.Y) > 1e-8 {
		t.Fatal("velocity after quarter period:", nv)
	}

	// full period returns the state
	full := 2 * math.Pi * astro.InvK
	np, nv, err = e.propagate(&pos, &vel, full)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(np.X-1) > 1e-6 || math.Abs(np.Y) > 1e-6 {
		t.Fatal("position after full period:", np)
	}
	if math.Abs(nv.Y-astro.K) > 1e-8 {
		t.Fatal("velocity after full period:", nv)
	}
}

func TestPropagateBackward(t *testing.T) {
	e := testEstimation(t)
	pos := coord.Cart{X: 1.2, Y: .3}
	vel := coord.Cart{X: -.002, Y: astro.K * .8, Z: .001}

	np, nv, err := e.propagate(&pos, &vel, 7)
	if err != nil {
		t.Fatal(err)
	}
	// propagating back must recover the original state
	bp, bv, err := e.propagate(&np, &nv, -7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(bp.X-pos.X) > 1e-9 || math.Abs(bp.Y-pos.Y) > 1e-9 ||
		math.Abs(bp.Z-pos.Z) > 1e-9 {
		t.Fatal("round trip position:", bp)
	}
	if math.Abs(bv.X-vel.X) > 1e-9 || math.Abs(bv.Y-vel.Y) > 1e-9 {
		t.Fatal("round trip velocity:", bv)
	}
}
