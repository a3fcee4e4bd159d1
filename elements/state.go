// Public domain.

package elements

import (
	"errors"
	"math"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/astro"
)

// ErrDegenerateState is returned by FromState for geometry with no
// meaningful orbit: zero angular momentum or a non-finite state.
var ErrDegenerateState = errors.New("elements: degenerate state vector")

// eccentricity above which elements switch from the Keplerian to the
// cometary family.  Near-parabolic Keplerian a and M lose all precision
// well before e reaches 1.
const keplerianECut = .9999

// FromState solves orbital elements from heliocentric state vectors.
//
// p is the sun-object position in AU, v the velocity in AU/day, at MJD
// (TT) epoch.  Bound orbits with e below the near-parabolic cutoff come
// back as Keplerian, everything else as Cometary.
func FromState(p, v *coord.Cart, epoch float64) (Elements, error) {
	r := math.Sqrt(p.Square())
	vsq := v.Square()
	if r == 0 || !finite(p) || !finite(v) {
		return nil, ErrDegenerateState
	}

	// momentum vector
	var hv coord.Cart
	hv.Cross(p, v)
	hsq := hv.Square()
	hm := math.Sqrt(hsq)
	if hm == 0 {
		return nil, ErrDegenerateState
	}

	// eccentricity vector: ((v²−μ/r)p − (p·v)v)/μ
	rv := p.Dot(v)
	var ev, t coord.Cart
	ev = *p
	ev.MulScalar(&ev, vsq-astro.U/r)
	t = *v
	t.MulScalar(&t, rv)
	ev.Sub(&ev, &t)
	ev.MulScalar(&ev, 1/astro.U)
	e := math.Sqrt(ev.Square())

	// inclination; node vector n = ẑ × h
	i := math.Acos(clamp1(hv.Z / hm))
	n := coord.Cart{X: -hv.Y, Y: hv.X}
	nm := math.Sqrt(n.Square())

	var node float64
	if nm > 0 {
		node = math.Atan2(n.Y, n.X)
		if node < 0 {
			node += 2 * math.Pi
		}
	}

	// argument of periapsis
	var peri float64
	switch {
	case nm > 0 && e > 0:
		peri = math.Acos(clamp1(n.Dot(&ev) / (nm * e)))
		if ev.Z < 0 {
			peri = 2*math.Pi - peri
		}
	case e > 0:
		// equatorial orbit: measure from x axis
		peri = math.Atan2(ev.Y, ev.X)
		if peri < 0 {
			peri += 2 * math.Pi
		}
	}

	// true anomaly
	var nu float64
	if e > 0 {
		nu = math.Acos(clamp1(ev.Dot(p) / (e * r)))
		if rv < 0 {
			nu = 2*math.Pi - nu
		}
	} else {
		// circular: argument of latitude
		if nm > 0 {
			nu = math.Acos(clamp1(n.Dot(p) / (nm * r)))
			if p.Z < 0 {
				nu = 2*math.Pi - nu
			}
		} else {
			nu = math.Atan2(p.Y, p.X)
		}
	}

	if !finiteF(e, i, node, peri, nu) {
		return nil, ErrDegenerateState
	}

	// energy decides the family
	energy := vsq/2 - astro.U/r
	if e < keplerianECut && energy < 0 {
		a := -astro.U / (2 * energy)
		return Keplerian{
			Epoch: epoch,
			A:     a,
			E:     e,
			I:     i,
			Node:  node,
			Peri:  peri,
			M:     meanFromTrue(nu, e),
		}, nil
	}

	// near-parabolic or unbound: perihelion from the semi-latus rectum,
	// which stays finite through e = 1.
	q := hsq / astro.U / (1 + e)
	return Cometary{
		Epoch: epoch,
		PeriQ: q,
		E:     e,
		I:     i,
		Node:  node,
		Peri:  peri,
		Nu:    nu,
	}, nil
}

func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

func finite(c *coord.Cart) bool { return finiteF(c.X, c.Y, c.Z) }

func finiteF(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
