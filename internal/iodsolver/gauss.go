// Public domain.

package iodsolver

import (
	"fmt"
	"math"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/elements"
	"github.com/FusRoman/outfit/iod"
)

// candidate is one orbit hypothesis from one accepted root of the
// distance polynomial.
type candidate struct {
	root  float64 // r2: heliocentric distance at the central epoch, AU
	rho2  float64 // topocentric distance at the central epoch, AU
	epoch float64 // light-time corrected central epoch, MJD (TT)

	pos, vel coord.Cart // heliocentric state at epoch, AU and AU/day

	elems      elements.Elements
	ecc        float64
	perihelion float64

	corrected bool
}

func (c *candidate) result(rms float64) iod.GaussResult {
	stage := iod.PrelimOrbit
	if c.corrected {
		stage = iod.CorrectedOrbit
	}
	return iod.GaussResult{
		Stage:    stage,
		Elements: c.elems,
		RMS:      rms,
		Root:     c.root,
		Rho2:     c.rho2,
		Epoch:    c.epoch,
		Pos:      c.pos,
		Vel:      c.vel,
	}
}

// gaussGeom is the triplet geometry shared by all roots of one octic:
// line-of-sight unit vectors, observer positions, Gaussian-scaled time
// intervals and the D determinant table.
type gaussGeom struct {
	t               [3]float64    // observation epochs, MJD
	rhoHat          [3]coord.Cart
	r               [3]coord.Cart // observer heliocentric positions
	tau1, tau3, tau float64       // k-scaled intervals
	d0              float64
	d               [3][3]float64 // d[i][j] = R_i · p_j
	a, b            float64       // octic combination terms
}

// solveTriplet builds and solves the Gauss distance polynomial for one
// perturbed triplet, returning zero or more candidate orbits.
//
// ErrNonFiniteScore wraps are returned when the geometry degenerates to
// non-finite coefficients; an empty slice with nil error simply means no
// root passed the real/bounds acceptance.
func (e *estimation) solveTriplet(tp triplet, sky [3]skyPos) ([]candidate, error) {
	p := e.s.p
	o := e.tr.Obs

	var g gaussGeom
	g.t = [3]float64{o[tp.i].MJD, o[tp.j].MJD, o[tp.k].MJD}
	g.r = [3]coord.Cart{e.pos[tp.i], e.pos[tp.j], e.pos[tp.k]}
	for x, s := range sky {
		sdec, cdec := math.Sincos(s.dec)
		sra, cra := math.Sincos(s.ra)
		g.rhoHat[x] = coord.Cart{X: cra * cdec, Y: sra * cdec, Z: sdec}
	}

	// Gaussian-scaled intervals make μ = 1 below.
	g.tau1 = astro.K * (g.t[0] - g.t[1])
	g.tau3 = astro.K * (g.t[2] - g.t[1])
	g.tau = g.tau3 - g.tau1

	var p1, p2, p3 coord.Cart
	p1.Cross(&g.rhoHat[1], &g.rhoHat[2])
	p2.Cross(&g.rhoHat[0], &g.rhoHat[2])
	p3.Cross(&g.rhoHat[0], &g.rhoHat[1])
	g.d0 = g.rhoHat[0].Dot(&p1)
	if math.Abs(g.d0) < 1e-14 {
		// lines of sight are coplanar with each other; the Gauss
		// construction has no information here
		return nil, nil
	}
	for i := 0; i < 3; i++ {
		g.d[i][0] = g.r[i].Dot(&p1)
		g.d[i][1] = g.r[i].Dot(&p2)
		g.d[i][2] = g.r[i].Dot(&p3)
	}

	g.a = (-g.d[0][1]*g.tau3/g.tau + g.d[1][1] + g.d[2][1]*g.tau1/g.tau) / g.d0
	g.b = (g.d[0][1]*(g.tau3*g.tau3-g.tau*g.tau)*g.tau3/g.tau +
		g.d[2][1]*(g.tau*g.tau-g.tau1*g.tau1)*g.tau1/g.tau) / (6 * g.d0)
	ee := g.r[1].Dot(&g.rhoHat[1])
	r2sq := g.r[1].Square()

	// octic in r2: x⁸ + c6 x⁶ + c3 x³ + c0 = 0
	c6 := -(g.a*g.a + 2*g.a*ee + r2sq)
	c3 := -2 * g.b * (g.a + ee)
	c0 := -g.b * g.b
	if !finiteAll(g.a, g.b, c6, c3, c0) {
		return nil, fmt.Errorf("octic coefficients: %w", iod.ErrNonFiniteScore)
	}

	coef := []float64{c0, 0, 0, c3, 0, 0, c6, 0, 1}
	roots := polyRoots(coef, p.AberthMaxIter, p.AberthEps)

	var cands []candidate
	for _, z := range roots {
		if math.Abs(imag(z)) > p.RootImagEps {
			continue
		}
		r2 := real(z)
		if r2 < p.R2MinAU || r2 > p.R2MaxAU {
			// degenerate near-observer or far-field region; the Gauss
			// approximation has broken down out there
			continue
		}
		c, ok := e.candidateFromRoot(&g, r2)
		if ok {
			cands = append(cands, c)
		}
	}
	return cands, nil
}

// candidateFromRoot recovers topocentric distances, state vectors and
// elements for one accepted polynomial root, then runs the iterative
// velocity refinement.
func (e *estimation) candidateFromRoot(g *gaussGeom, r2 float64) (candidate, bool) {
	r2cu := r2 * r2 * r2

	rho2 := g.a + g.b/r2cu
	num1 := 6*(g.d[2][0]*g.tau1/g.tau3+g.d[1][0]*g.tau/g.tau3)*r2cu +
		g.d[2][0]*(g.tau*g.tau-g.tau1*g.tau1)*g.tau1/g.tau3
	den1 := 6*r2cu + (g.tau*g.tau - g.tau3*g.tau3)
	rho1 := (num1/den1 - g.d[0][0]) / g.d0
	num3 := 6*(g.d[0][2]*g.tau3/g.tau1-g.d[1][2]*g.tau/g.tau1)*r2cu +
		g.d[0][2]*(g.tau*g.tau-g.tau3*g.tau3)*g.tau3/g.tau1
	den3 := 6*r2cu + (g.tau*g.tau - g.tau1*g.tau1)
	rho3 := (num3/den3 - g.d[2][2]) / g.d0
	if !finiteAll(rho1, rho2, rho3) || den1 == 0 || den3 == 0 {
		return candidate{}, false
	}

	rv := [3]coord.Cart{}
	rho := [3]float64{rho1, rho2, rho3}
	for i := range rv {
		los := g.rhoHat[i]
		los.MulScalar(&los, rho[i])
		rv[i].Add(&g.r[i], &los)
	}

	// f and g series velocity at the central epoch
	f1 := 1 - g.tau1*g.tau1/(2*r2cu)
	g1 := g.tau1 - g.tau1*g.tau1*g.tau1/(6*r2cu)
	f3 := 1 - g.tau3*g.tau3/(2*r2cu)
	g3 := g.tau3 - g.tau3*g.tau3*g.tau3/(6*r2cu)
	v2, ok := velocityFG(&rv[0], &rv[2], f1, g1, f3, g3)
	if !ok {
		return candidate{}, false
	}

	// the corrected state replaces the series state only on
	// convergence; otherwise the series state stands, for which
	// |rv[1]| = r2 holds by construction of the octic
	corrected := false
	if nrho, nrv, nv2, ok := e.refine(g, rho, rv, v2, f1, g1, f3, g3); ok {
		rho, rv, v2 = nrho, nrv, nv2
		r2 = math.Sqrt(rv[1].Square())
		corrected = true
	}

	// light-time corrected central epoch; velocity back to AU/day
	epoch := g.t[1] - rho[1]/astro.VLight
	vel := v2
	vel.MulScalar(&vel, astro.K)

	elems, err := elements.FromState(&rv[1], &vel, epoch)
	if err != nil {
		return candidate{}, false
	}

	c := candidate{
		root:      r2,
		rho2:      rho[1],
		epoch:     epoch,
		pos:       rv[1],
		vel:       vel,
		elems:     elems,
		corrected: corrected,
	}
	switch el := elems.(type) {
	case elements.Keplerian:
		c.ecc = el.E
		c.perihelion = el.A * (1 - el.E)
	case elements.Cometary:
		c.ecc = el.E
		c.perihelion = el.PeriQ
	}
	return c, true
}

// refine iterates the exact universal-variable Lagrange coefficients to
// close the light-time / position-velocity consistency.  Arguments are
// the f and g series state, taken by value; the iterated state is
// returned only with ok true, so a non-converging iteration never
// disturbs the caller's preliminary state.
func (e *estimation) refine(g *gaussGeom, rho [3]float64, rv [3]coord.Cart,
	v2 coord.Cart, f1, g1, f3, g3 float64) ([3]float64, [3]coord.Cart, coord.Cart, bool) {

	p := e.s.p
	for it := 0; it < p.NewtonMaxIt; it++ {
		r2m := math.Sqrt(rv[1].Square())
		vr2 := rv[1].Dot(&v2) / r2m
		alpha := 2/r2m - v2.Square()

		// light-time corrected intervals
		t1 := g.tau1 + astro.K*(rho[1]-rho[0])/astro.VLight
		t3 := g.tau3 + astro.K*(rho[1]-rho[2])/astro.VLight

		chi1, err := universalKepler(r2m, vr2, alpha, t1, p.KeplerEps, p.NewtonMaxIt)
		if err != nil {
			break
		}
		chi3, err := universalKepler(r2m, vr2, alpha, t3, p.KeplerEps, p.NewtonMaxIt)
		if err != nil {
			break
		}
		f1, g1 = lagrangeFG(chi1, t1, r2m, alpha)
		f3, g3 = lagrangeFG(chi3, t3, r2m, alpha)

		den := f1*g3 - f3*g1
		if den == 0 {
			break
		}
		c1 := g3 / den
		c3 := -g1 / den

		nrho := [3]float64{
			(-g.d[0][0] + g.d[1][0]/c1 - g.d[2][0]*c3/c1) / g.d0,
			(-c1*g.d[0][1] + g.d[1][1] - c3*g.d[2][1]) / g.d0,
			(-c1*g.d[0][2]/c3 + g.d[1][2]/c3 - g.d[2][2]) / g.d0,
		}
		if !finiteAll(nrho[0], nrho[1], nrho[2]) {
			break
		}
		diff := math.Abs(nrho[0]-rho[0]) + math.Abs(nrho[1]-rho[1]) +
			math.Abs(nrho[2]-rho[2])

		rho = nrho
		for i := range rv {
			los := g.rhoHat[i]
			los.MulScalar(&los, rho[i])
			rv[i].Add(&g.r[i], &los)
		}
		nv2, ok := velocityFG(&rv[0], &rv[2], f1, g1, f3, g3)
		if !ok {
			break
		}
		v2 = nv2

		if diff < p.NewtonEps {
			return rho, rv, v2, true
		}
	}
	return rho, rv, v2, false
}

// velocityFG combines the endpoint position vectors through the
// Lagrange coefficients: v2 = (-f3 r1 + f1 r3) / (f1 g3 - f3 g1).
func velocityFG(r1, r3 *coord.Cart, f1, g1, f3, g3 float64) (coord.Cart, bool) {
	den := f1*g3 - f3*g1
	if den == 0 || !finiteAll(den) {
		return coord.Cart{}, false
	}
	var a, b, v coord.Cart
	a = *r1
	a.MulScalar(&a, -f3)
	b = *r3
	b.MulScalar(&b, f1)
	v.Add(&a, &b)
	v.MulScalar(&v, 1/den)
	return v, finiteAll(v.X, v.Y, v.Z)
}

func finiteAll(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
