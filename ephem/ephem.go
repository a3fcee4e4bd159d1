// Public domain.

// Package ephem supplies observer heliocentric states to the IOD solver.
//
// The solver only needs one thing from the outside world: where the
// observer was, relative to the Sun, at each observation epoch.  Service
// is that contract.  Two implementations are provided, one on the quick
// USNO solar series the ranging code has always used, one on the Meeus
// apparent solar position for a little more accuracy.  Both are
// deterministic and side-effect free, which the batch executor relies on
// for reproducibility.
//
// All vectors are equatorial, AU and AU/day.  Precession, nutation and
// EOP corrections are left to external services by design; internal
// consistency is what the Gauss solver needs, not absolute frame
// accuracy.
package ephem

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/obs"
)

// Service returns observer heliocentric position and velocity at an
// epoch.  Implementations must be deterministic, side-effect free and
// safe for concurrent use.
type Service interface {
	// ObserverState returns the sun-to-observer vector in AU and its
	// time derivative in AU/day at MJD (TT) epoch.  A nil observer or
	// one without parallax constants is treated as the geocenter.
	ObserverState(o *obs.Observer, mjd float64) (pos, vel coord.Cart)
}

// velocity by central difference.  Light-time refinement is the only
// consumer, so the cheap derivative is plenty.
const velStep = .01 // days

// USNO is a Service built on the approximate USNO solar series.
type USNO struct{}

func (USNO) ObserverState(o *obs.Observer, mjd float64) (pos, vel coord.Cart) {
	pos = usnoPos(o, mjd)
	p0 := usnoPos(o, mjd-velStep)
	p1 := usnoPos(o, mjd+velStep)
	vel.Sub(&p1, &p0)
	vel.MulScalar(&vel, 1/(2*velStep))
	return
}

func usnoPos(o *obs.Observer, mjd float64) (pos coord.Cart) {
	sunEarth, _, _ := astro.Se2000(mjd)
	site := geocentricSite(o, mjd)
	pos.Sub(&site, &sunEarth)
	return
}

// Meeus is a Service using the Meeus apparent solar position.
type Meeus struct{}

func (Meeus) ObserverState(o *obs.Observer, mjd float64) (pos, vel coord.Cart) {
	pos = meeusPos(o, mjd)
	p0 := meeusPos(o, mjd-velStep)
	p1 := meeusPos(o, mjd+velStep)
	vel.Sub(&p1, &p0)
	vel.MulScalar(&vel, 1/(2*velStep))
	return
}

func meeusPos(o *obs.Observer, mjd float64) (pos coord.Cart) {
	jde := mjd + astro.JMod
	ra, dec := solar.ApparentEquatorial(jde)
	r := solar.Radius(base.J2000Century(jde))
	sdec, cdec := math.Sincos(dec.Rad())
	sra, cra := math.Sincos(ra.Rad())
	sunEarth := coord.Cart{
		X: r * cdec * cra,
		Y: r * cdec * sra,
		Z: r * sdec,
	}
	site := geocentricSite(o, mjd)
	pos.Sub(&site, &sunEarth)
	return
}

// geocentricSite returns the geocenter-to-observer vector in equatorial
// coordinates, AU.  Parallax constants follow the observation package
// convention: east longitude as an angle, rho terms already in AU.
func geocentricSite(o *obs.Observer, mjd float64) (site coord.Cart) {
	if o == nil || o.Par == nil {
		return
	}
	lst := astro.Lst(mjd, o.Par.Longitude.Rad())
	sl, cl := math.Sincos(lst)
	site.X = o.Par.RhoCosPhi * cl
	site.Y = o.Par.RhoCosPhi * sl
	site.Z = o.Par.RhoSinPhi
	return
}
