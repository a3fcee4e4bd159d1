// Public domain.

package iodsolver

import (
	"errors"
	"math"
	"testing"

	"github.com/soniakeys/coord"
	xrand "golang.org/x/exp/rand"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/ephem"
	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/obs"
)

// fixedEphem is a Service stub: a circular 1 AU observer orbit in the
// equatorial plane, geocentric site.
type fixedEphem struct{}

func (fixedEphem) ObserverState(o *obs.Observer, mjd float64) (pos, vel coord.Cart) {
	// mean motion of a circular 1 AU orbit
	th := astro.K * (mjd - 56000)
	s, c := math.Sincos(th)
	pos = coord.Cart{X: c, Y: s}
	vel = coord.Cart{X: -astro.K * s, Y: astro.K * c}
	return
}

var _ ephem.Service = fixedEphem{}

func TestEstimateTooFewObs(t *testing.T) {
	p, err := iod.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	s := New(p, fixedEphem{})
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(1)

	_, err = s.Estimate(testTrajectory(56000, 56000.5), rnd)
	if !errors.Is(err, iod.ErrNoFeasibleTriplets) {
		t.Fatal("expected ErrNoFeasibleTriplets, got", err)
	}
}

func TestEstimateDegenerateGeometry(t *testing.T) {
	// three observations along the same line of sight give a
	// degenerate Gauss geometry; no candidate must survive
	p, err := iod.NewBuilder().NNoiseRealizations(1).Build()
	if err != nil {
		t.Fatal(err)
	}
	s := New(p, fixedEphem{})
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(1)

	tr := &obs.Trajectory{ID: obs.NameID("degenerate")}
	for _, m := range []float64{56000, 56001, 56002} {
		tr.Obs = append(tr.Obs, obs.Observation{MJD: m})
	}
	if _, err = s.Estimate(tr, rnd); err == nil {
		t.Fatal("expected failure for degenerate geometry")
	}
}

func TestPerturbNominal(t *testing.T) {
	p, err := iod.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	tr := &obs.Trajectory{ID: obs.NameID("x")}
	for i := 0; i < 3; i++ {
		tr.Obs = append(tr.Obs, obs.Observation{MJD: 56000 + float64(i)})
	}
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(7)
	e := &estimation{s: &Solver{p: p}, tr: tr, rnd: rnd}
	tp := triplet{i: 0, j: 1, k: 2}

	// realization 0 never consumes randomness and reproduces the
	// nominal astrometry
	sky0 := e.perturb(tp, 0)
	for x := range sky0 {
		if sky0[x].ra != tr.Obs[x].RA.Rad() || sky0[x].dec != tr.Obs[x].Dec.Rad() {
			t.Fatal("realization 0 not nominal")
		}
	}

	// higher realizations perturb; with zero sigmas they still match
	sky1 := e.perturb(tp, 1)
	if sky1 != sky0 {
		t.Fatal("zero sigma perturbation changed the astrometry")
	}
}

func TestPlausibleFilter(t *testing.T) {
	p, err := iod.NewBuilder().MaxEcc(2).MaxPerihelionAU(50).MinRho2AU(.01).Build()
	if err != nil {
		t.Fatal(err)
	}
	e := &estimation{s: &Solver{p: p}}
	good := candidate{ecc: .3, perihelion: 2, rho2: 1}
	if !e.plausible(&good) {
		t.Fatal("good candidate rejected")
	}
	for _, c := range []candidate{
		{ecc: 2.5, perihelion: 2, rho2: 1},
		{ecc: .3, perihelion: 60, rho2: 1},
		{ecc: .3, perihelion: 2, rho2: .001},
	} {
		if e.plausible(&c) {
			t.Fatal("implausible candidate accepted:", c)
		}
	}
}
