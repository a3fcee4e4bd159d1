// Public domain.

// Package elements defines the orbital element families produced by
// initial orbit determination: Keplerian, Equinoctial and Cometary.
//
// The three families form a closed sum type, Elements.  Keplerian is the
// solver's native output for bound orbits, Cometary for near-parabolic and
// hyperbolic ones; Equinoctial is obtained by conversion and is the
// nonsingular set preferred by downstream least-squares refinement.
// Angles are radians, distances AU, epochs MJD (TT).
package elements

import (
	"fmt"
	"math"

	"github.com/FusRoman/outfit/astro"
)

// Elements is the closed sum of the three element families.  The only
// implementations are Keplerian, Equinoctial and Cometary.
type Elements interface {
	// ReferenceEpoch returns the epoch of the elements, MJD (TT).
	ReferenceEpoch() float64
	// SemiMajorAxis returns a in AU.  ok is false for the parabolic
	// case, where a is undefined.
	SemiMajorAxis() (a float64, ok bool)
	// Period returns the orbital period in days, ok false for unbound
	// orbits.
	Period() (p float64, ok bool)
	// family restricts the interface to this package.
	family() string
}

// Keplerian elements: semi-major axis, eccentricity, inclination,
// longitude of ascending node, argument of periapsis, mean anomaly.
type Keplerian struct {
	Epoch float64 // MJD (TT)
	A     float64 // AU
	E     float64
	I     float64 // rad
	Node  float64 // rad
	Peri  float64 // rad
	M     float64 // rad
}

// Equinoctial elements, nonsingular for small e and i.
// H and K are e·sin/cos of the longitude of periapsis, P and Q are
// tan(i/2)·sin/cos of the node, Lambda is the mean longitude.
type Equinoctial struct {
	Epoch  float64 // MJD (TT)
	A      float64 // AU
	H      float64 // e sin(Ω+ω)
	K      float64 // e cos(Ω+ω)
	P      float64 // tan(i/2) sin Ω
	Q      float64 // tan(i/2) cos Ω
	Lambda float64 // rad
}

// Cometary elements: perihelion distance and true anomaly instead of a
// and M, the parameterization that stays finite through e = 1.
type Cometary struct {
	Epoch float64 // MJD (TT)
	PeriQ float64 // perihelion distance, AU
	E     float64
	I     float64 // rad
	Node  float64 // rad
	Peri  float64 // rad
	Nu    float64 // true anomaly, rad
}

func (Keplerian) family() string   { return "keplerian" }
func (Equinoctial) family() string { return "equinoctial" }
func (Cometary) family() string    { return "cometary" }

// Family returns "keplerian", "equinoctial" or "cometary".
func Family(e Elements) string { return e.family() }

func (k Keplerian) ReferenceEpoch() float64   { return k.Epoch }
func (q Equinoctial) ReferenceEpoch() float64 { return q.Epoch }
func (c Cometary) ReferenceEpoch() float64    { return c.Epoch }

func (k Keplerian) SemiMajorAxis() (float64, bool)   { return k.A, true }
func (q Equinoctial) SemiMajorAxis() (float64, bool) { return q.A, true }

func (c Cometary) SemiMajorAxis() (float64, bool) {
	if c.E == 1 {
		return 0, false
	}
	return c.PeriQ / (1 - c.E), true
}

// period from a; ok only for bound orbits.
func period(a float64) (float64, bool) {
	if a <= 0 {
		return 0, false
	}
	return 2 * math.Pi / astro.K * math.Pow(a, 1.5), true
}

func (k Keplerian) Period() (float64, bool) {
	if k.E >= 1 {
		return 0, false
	}
	return period(k.A)
}

func (q Equinoctial) Period() (float64, bool) {
	if math.Hypot(q.H, q.K) >= 1 {
		return 0, false
	}
	return period(q.A)
}

func (c Cometary) Period() (float64, bool) {
	if c.E >= 1 {
		return 0, false
	}
	a, _ := c.SemiMajorAxis()
	return period(a)
}

func (k Keplerian) String() string {
	return fmt.Sprintf(
		"keplerian epoch %.5f a %.6f e %.6f i %.4f° Ω %.4f° ω %.4f° M %.4f°",
		k.Epoch, k.A, k.E, deg(k.I), deg(k.Node), deg(k.Peri), deg(k.M))
}

func (q Equinoctial) String() string {
	return fmt.Sprintf(
		"equinoctial epoch %.5f a %.6f h %.6f k %.6f p %.6f q %.6f λ %.4f°",
		q.Epoch, q.A, q.H, q.K, q.P, q.Q, deg(q.Lambda))
}

func (c Cometary) String() string {
	return fmt.Sprintf(
		"cometary epoch %.5f q %.6f e %.6f i %.4f° Ω %.4f° ω %.4f° ν %.4f°",
		c.Epoch, c.PeriQ, c.E, deg(c.I), deg(c.Node), deg(c.Peri), deg(c.Nu))
}

func deg(rad float64) float64 { return rad * 180 / math.Pi }
