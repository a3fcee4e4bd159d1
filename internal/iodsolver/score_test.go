// Public domain.

package iodsolver

import (
	"math"
	"testing"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/obs"
)

// scoreFixture builds an estimation around a perfect circular orbit at
// 2 AU observed from the solar barycenter, so every residual of the
// matching candidate is zero up to roundoff.
func scoreFixture(t *testing.T, mjds []float64) (*estimation, candidate) {
	t.Helper()
	p, err := iod.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}

	const epoch = 56001.0
	c := candidate{
		epoch: epoch,
		pos:   coord.Cart{X: 2},
		vel:   coord.Cart{Y: math.Sqrt(astro.U / 2)},
	}

	e := &estimation{s: &Solver{p: p}, tr: &obs.Trajectory{ID: obs.NameID("x")}}
	for _, m := range mjds {
		np, _, err := e.propagate(&c.pos, &c.vel, m-epoch)
		if err != nil {
			t.Fatal(err)
		}
		r := math.Sqrt(np.Square())
		e.tr.Obs = append(e.tr.Obs, obs.Observation{
			MJD: m,
			RA:  unit.RA(math.Atan2(np.Y, np.X)),
			Dec: unit.Angle(math.Asin(np.Z / r)),
		})
		e.pos = append(e.pos, coord.Cart{})
		e.vel = append(e.vel, coord.Cart{})
	}
	return e, c
}

func TestScorePerfectOrbit(t *testing.T) {
	e, c := scoreFixture(t, []float64{56000, 56001, 56002})
	rms := e.score(triplet{i: 0, j: 1, k: 2}, &c)
	if rms > 1e-9 {
		t.Fatal("rms for perfect orbit:", rms)
	}
}

func TestScoreWindowClamp(t *testing.T) {
	// the last observation is 39 days past the central epoch, outside
	// the 30 day clamped window, so its garbage astrometry is ignored
	e, c := scoreFixture(t, []float64{56000, 56001, 56002, 56040})
	e.tr.Obs[3].RA = unit.RA(3)
	e.tr.Obs[3].Dec = unit.Angle(1)
	rms := e.score(triplet{i: 0, j: 1, k: 2}, &c)
	if rms > 1e-9 {
		t.Fatal("observation outside window included:", rms)
	}
}

func TestScoreGapStop(t *testing.T) {
	// 56020 is inside the 30 day window but 18 days after the previous
	// observation, past GapMax; expansion must stop at the gap
	e, c := scoreFixture(t, []float64{56000, 56001, 56002, 56020})
	e.tr.Obs[3].RA = unit.RA(3)
	e.tr.Obs[3].Dec = unit.Angle(1)
	rms := e.score(triplet{i: 0, j: 1, k: 2}, &c)
	if rms > 1e-9 {
		t.Fatal("observation across gap included:", rms)
	}
}

func TestScoreResidual(t *testing.T) {
	// biasing the central declination by 1 arcsec over 3 observations
	// biases the rms by 1/sqrt(3) arcsec
	e, c := scoreFixture(t, []float64{56000, 56001, 56002})
	sec := unit.AngleFromSec(1)
	e.tr.Obs[1].Dec += sec
	rms := e.score(triplet{i: 0, j: 1, k: 2}, &c)
	want := sec.Rad() / math.Sqrt(3)
	if math.Abs(rms-want) > want*1e-6 {
		t.Fatal("rms:", rms, "want", want)
	}
}

func TestResidWrap(t *testing.T) {
	// right ascension residuals must wrap across 0/2π
	if d := resid(.01, 2*math.Pi-.01); math.Abs(d-.02) > 1e-12 {
		t.Fatal("wrap:", d)
	}
	if d := resid(2*math.Pi-.01, .01); math.Abs(d+.02) > 1e-12 {
		t.Fatal("wrap:", d)
	}
}
