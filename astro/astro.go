// Public domain.

// Package astro, stuff generally useful in astronomy.
//
// Constants and a few small functions shared by the orbit determination
// packages: the Gaussian gravitational constant, light time, a quick solar
// ephemeris, and sidereal time.  Distances are AU, times are days unless
// noted otherwise.
package astro

import (
	"math"

	"github.com/soniakeys/coord"
)

const (
	// Gaussian gravitational constant and friends.  U is GM of the Sun
	// in AU³/day².
	K    = .01720209895
	InvK = 1 / K
	U    = K * K

	// VLight is the speed of light in AU/day.
	VLight = 173.144632674240

	// EarthRadiusAU is the equatorial Earth radius expressed in AU.
	// Obscode parallax constants are stored pre-multiplied by this.
	EarthRadiusAU = 6.37814e6 / 149.59787e9

	// J2000 as MJD, and the offset from MJD to JD.
	J2000MJD = 51544.5
	JMod     = 2400000.5
)

var twoPi = 2 * math.Pi

// Se2000 computes solar ephemeris, J2000.
//
// Returns:
//   sunEarth:  earth-to-sun vector in equatorial coordinates, AU.
//   soe, coe:  sine and cosine of obliquity of the ecliptic.
//
// Notes:
//   Approximate solar coordinates, per USNO.  Originally from
//   http://aa.usno.navy.mil/faq/docs/SunApprox.html.  Good to about
//   a minute of arc for a couple of centuries around J2000, which is
//   plenty for preliminary orbits; see package ephem for the Meeus
//   based alternative.
func Se2000(mjd float64) (sunEarth coord.Cart, soe, coe float64) {
	// USNO algorithm is in degrees.  To minimize confusion, work in
	// degrees here too, only converting to radians as needed for trig
	// functions.
	d := mjd - J2000MJD
	g := 357.529 + .98560028*d // mean anomaly of sun, in degrees
	q := 280.459 + .98564736*d // mean longitude of sun, in degrees
	g2 := g + g
	sg, cg := math.Sincos(g * math.Pi / 180)
	sg2, cg2 := math.Sincos(g2 * math.Pi / 180)

	// ecliptic longitude, in degrees still
	l := q + 1.915*sg + .020*sg2

	// distance in AU
	r := 1.00014 - .01671*cg - .00014*cg2

	// obliquity of ecliptic in degrees
	e := 23.439 - .00000036*d
	soe, coe = math.Sincos(e * math.Pi / 180)

	// equatorial coordinates
	sl, cl := math.Sincos(l * math.Pi / 180)
	sunEarth.X = r * cl
	rsl := r * sl
	sunEarth.Y = rsl * coe
	sunEarth.Z = rsl * soe
	return
}

// Lst computes local sidereal time.
//
// Args are time as MJD (UT is close enough here) and east longitude in
// radians.  Result is in radians, [0, 2π).
func Lst(j0, longitude float64) float64 {
	// Greenwich sidereal revolutions since the 1900 epoch.  The
	// polynomial, evaluated at the instant rather than 0h, already
	// carries the sidereal rate; ut adds the UT day fraction.
	t := (j0 - 15019.5) / 36525
	th := (6.6460656 + (2400.051262+0.00002581*t)*t) / 24
	ut := math.Mod(j0-.5, 1)
	lst := math.Mod(math.Mod(th+ut, 1)*twoPi+longitude, twoPi)
	if lst < 0 {
		lst += twoPi
	}
	return lst
}
