// Public domain.

package iodsolver

import (
	"errors"
	"math"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/astro"
)

// errKepler reports non-convergence of the universal Kepler iteration.
var errKepler = errors.New("universal Kepler iteration did not converge")

// stumpff returns the Stumpff functions C(z) and S(z), with series
// expansions near zero where the closed forms cancel.  The series
// truncation error at the switch point is below 1e-22, well under the
// roundoff of the closed forms there.
func stumpff(z float64) (c, s float64) {
	switch {
	case z > 1e-4:
		sz := math.Sqrt(z)
		c = (1 - math.Cos(sz)) / z
		s = (sz - math.Sin(sz)) / (z * sz)
	case z < -1e-4:
		sz := math.Sqrt(-z)
		c = (math.Cosh(sz) - 1) / -z
		s = (math.Sinh(sz) - sz) / (-z * sz)
	default:
		c = .5 - z/24 + z*z/720 - z*z*z/40320
		s = 1./6 - z/120 + z*z/5040 - z*z*z/362880
	}
	return
}

// universalKepler solves the universal Kepler equation for the
// universal anomaly χ after time of flight dt.
//
// Gaussian units throughout: μ = 1, dt in k·days.  r0 is the radius at
// departure, vr0 the radial velocity, alpha the reciprocal semi-major
// axis (negative for hyperbolic motion).  Newton iteration, eps on the
// step size, at most maxIt passes.
func universalKepler(r0, vr0, alpha, dt, eps float64, maxIt int) (float64, error) {
	chi := math.Abs(alpha) * dt
	if chi == 0 {
		// parabolic start
		chi = dt / r0
	}
	for i := 0; i < maxIt; i++ {
		z := alpha * chi * chi
		c, s := stumpff(z)
		f := r0*vr0*chi*chi*c + (1-alpha*r0)*chi*chi*chi*s + r0*chi - dt
		fp := r0*vr0*chi*(1-z*s) + (1-alpha*r0)*chi*chi*c + r0
		d := f / fp
		chi -= d
		if math.Abs(d) < eps {
			return chi, nil
		}
	}
	return chi, errKepler
}

// lagrangeFG returns the exact Lagrange coefficients for universal
// anomaly chi over time of flight dt (Gaussian units).
func lagrangeFG(chi, dt, r0, alpha float64) (f, g float64) {
	z := alpha * chi * chi
	c, s := stumpff(z)
	f = 1 - chi*chi*c/r0
	g = dt - chi*chi*chi*s
	return
}

// propagate advances a heliocentric state by dt days.  pos in AU, vel
// in AU/day.  Used by the residual scorer to predict positions at
// observation epochs.
func (e *estimation) propagate(pos, vel *coord.Cart, dt float64) (np, nv coord.Cart, err error) {
	p := e.s.p

	// to Gaussian units
	vg := *vel
	vg.MulScalar(&vg, astro.InvK)
	tau := astro.K * dt

	r0 := math.Sqrt(pos.Square())
	vr0 := pos.Dot(&vg) / r0
	alpha := 2/r0 - vg.Square()

	chi, err := universalKepler(r0, vr0, alpha, tau, p.KeplerEps, p.NewtonMaxIt)
	if err != nil {
		return
	}
	f, g := lagrangeFG(chi, tau, r0, alpha)

	var fp, gv coord.Cart
	fp = *pos
	fp.MulScalar(&fp, f)
	gv = vg
	gv.MulScalar(&gv, g)
	np.Add(&fp, &gv)

	rm := math.Sqrt(np.Square())
	z := alpha * chi * chi
	c, s := stumpff(z)
	fdot := chi * (z*s - 1) / (r0 * rm)
	gdot := 1 - chi*chi*c/rm

	var fdp, gdv coord.Cart
	fdp = *pos
	fdp.MulScalar(&fdp, fdot)
	gdv = vg
	gdv.MulScalar(&gdv, gdot)
	nv.Add(&fdp, &gdv)
	nv.MulScalar(&nv, astro.K) // back to AU/day
	return
}
