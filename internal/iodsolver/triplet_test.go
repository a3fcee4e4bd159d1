// Public domain.

package iodsolver

import (
	"errors"
	"testing"

	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/obs"
)

func testTrajectory(mjds ...float64) *obs.Trajectory {
	tr := &obs.Trajectory{ID: obs.NameID("test")}
	for _, m := range mjds {
		tr.Obs = append(tr.Obs, obs.Observation{MJD: m})
	}
	return tr
}

func tripletEstimation(t *testing.T, b *iod.Builder, mjds ...float64) *estimation {
	t.Helper()
	p, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return &estimation{s: &Solver{p: p}, tr: testTrajectory(mjds...)}
}

func TestTripletsTooFewObs(t *testing.T) {
	e := tripletEstimation(t, iod.NewBuilder(), 56000, 56000.1)
	_, err := e.tripletCandidates()
	if !errors.Is(err, iod.ErrNoFeasibleTriplets) {
		t.Fatal("expected ErrNoFeasibleTriplets, got", err)
	}
}

func TestTripletsExactlyOne(t *testing.T) {
	e := tripletEstimation(t, iod.NewBuilder(), 56000, 56001, 56002)
	trips, err := e.tripletCandidates()
	if err != nil {
		t.Fatal(err)
	}
	if len(trips) != 1 {
		t.Fatal("triplet count:", len(trips))
	}
	tp := trips[0]
	if tp.i != 0 || tp.j != 1 || tp.k != 2 {
		t.Fatal("triplet indices:", tp)
	}
	if tp.dtik != 2 {
		t.Fatal("span:", tp.dtik)
	}
}

func TestTripletsSpanFilter(t *testing.T) {
	// all spans shorter than DtMin
	e := tripletEstimation(t, iod.NewBuilder().DtMin(1),
		56000, 56000.1, 56000.2)
	if _, err := e.tripletCandidates(); !errors.Is(err, iod.ErrNoFeasibleTriplets) {
		t.Fatal("short arc accepted")
	}

	// all spans longer than DtMaxTriplet
	e = tripletEstimation(t, iod.NewBuilder().DtMin(.03).DtMaxTriplet(1),
		56000, 56010, 56020)
	if _, err := e.tripletCandidates(); !errors.Is(err, iod.ErrNoFeasibleTriplets) {
		t.Fatal("long arc accepted")
	}
}

func TestTripletRanking(t *testing.T) {
	// symmetric spacing must rank ahead of skewed spacing
	e := tripletEstimation(t, iod.NewBuilder(),
		56000, 56001, 56002, 56002.1)
	trips, err := e.tripletCandidates()
	if err != nil {
		t.Fatal(err)
	}
	best := trips[0]
	if best.i != 0 || best.j != 1 || best.k != 2 {
		t.Fatal("best triplet not the symmetric one:", best)
	}
}

func TestTripletTruncation(t *testing.T) {
	mjds := make([]float64, 12)
	for i := range mjds {
		mjds[i] = 56000 + float64(i)
	}
	e := tripletEstimation(t, iod.NewBuilder().MaxTriplets(3), mjds...)
	trips, err := e.tripletCandidates()
	if err != nil {
		t.Fatal(err)
	}
	if len(trips) != 3 {
		t.Fatal("truncation:", len(trips))
	}
}

func TestDownsample(t *testing.T) {
	idx := downsample(10, 4)
	if len(idx) != 4 || idx[0] != 0 || idx[3] != 9 {
		t.Fatal("downsample(10, 4):", idx)
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] {
			t.Fatal("not strictly increasing:", idx)
		}
	}
	idx = downsample(3, 100)
	if len(idx) != 3 || idx[0] != 0 || idx[2] != 2 {
		t.Fatal("downsample(3, 100):", idx)
	}
}
