// Public domain.

package iodsolver

import (
	"math"

	"github.com/soniakeys/coord"
)

// score propagates the candidate orbit to every observation inside the
// evaluation window and returns the rms of the angular residuals in
// radians.  +Inf marks a candidate that cannot be scored, which the
// best-keeping logic in run treats as worse than anything finite.
func (e *estimation) score(tp triplet, c *candidate) float64 {
	p := e.s.p
	o := e.tr.Obs
	t2 := o[tp.j].MJD

	// evaluation window: the triplet span stretched by Extf, never
	// narrower than DtMax.  Extf < 0 requests the whole arc.
	dtw := (o[tp.k].MJD - o[tp.i].MJD) * p.Extf
	if p.Extf < 0 {
		dtw = 2 * e.tr.Span()
	}
	if dtw < p.DtMax {
		dtw = p.DtMax
	}

	// expand outward from the central observation, stopping at any gap
	// wider than GapMax so a disconnected arc can't poison the rms.
	lo, hi := tp.j, tp.j
	for lo > 0 && t2-o[lo-1].MJD <= dtw && o[lo].MJD-o[lo-1].MJD <= p.GapMax {
		lo--
	}
	for hi < len(o)-1 && o[hi+1].MJD-t2 <= dtw && o[hi+1].MJD-o[hi].MJD <= p.GapMax {
		hi++
	}

	var sum float64
	var n int
	for x := lo; x <= hi; x++ {
		np, _, err := e.propagate(&c.pos, &c.vel, o[x].MJD-c.epoch)
		if err != nil {
			return math.Inf(1)
		}

		// predicted topocentric direction
		var rho coord.Cart
		rho.Sub(&np, &e.pos[x])
		rm := math.Sqrt(rho.Square())
		if rm == 0 {
			return math.Inf(1)
		}
		ra := math.Atan2(rho.Y, rho.X)
		dec := math.Asin(rho.Z / rm)

		dra := resid(o[x].RA.Rad(), ra) * math.Cos(o[x].Dec.Rad())
		ddec := o[x].Dec.Rad() - dec
		sum += dra*dra + ddec*ddec
		n++
	}
	if n == 0 {
		return math.Inf(1)
	}
	rms := math.Sqrt(sum / float64(n))
	if math.IsNaN(rms) {
		return math.Inf(1)
	}
	return rms
}

// resid is the wrapped right-ascension difference a-b in (-π, π].
func resid(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}
