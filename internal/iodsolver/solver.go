// Public domain.

// Package iodsolver implements Gauss-method initial orbit determination
// for a single trajectory.
//
// The pipeline per trajectory: enumerate candidate observation triplets,
// fan each out into noise realizations, solve the Gauss geometry for
// each realization (degree-8 distance polynomial, Aberth–Ehrlich roots,
// universal Kepler velocity recovery), filter implausible candidates,
// score survivors by rms residual over an evaluation window, and keep
// the best.  The batch layer in the module root drives this over a
// whole TrajectorySet.
package iodsolver

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/coord"

	"github.com/FusRoman/outfit/ephem"
	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/obs"
)

// Solver holds the shared read-only inputs of an estimation batch.
// Safe for concurrent use by multiple goroutines.
type Solver struct {
	p   *iod.Params
	eph ephem.Service
}

// New creates a Solver from validated parameters and an ephemeris
// service.
func New(p *iod.Params, eph ephem.Service) *Solver {
	return &Solver{p, eph}
}

// Rand is the randomness source for Monte-Carlo resampling.  The batch
// executor hands each trajectory its own deterministic substream, which
// keeps results independent of scheduling order.
type Rand interface {
	NormFloat64() float64
}

// workspace for one trajectory estimation.  Holds cached observer
// states and the running best candidate; local variables would read
// more easily, but one struct keeps the hot path free of garbage.
type estimation struct {
	s   *Solver
	tr  *obs.Trajectory
	rnd Rand

	// observer heliocentric states per observation index
	pos, vel []coord.Cart

	// counters feeding the aggregate failure message
	nTriplets, nCandidates, nPlausible, nScored int
	sawNonFinite                                bool

	best    iod.GaussResult
	bestSet bool
}

// Estimate runs the full pipeline on one trajectory and returns the
// lowest-rms candidate orbit.  Failures come back wrapping the
// sentinels in package iod; they are per-trajectory conditions, never
// fatal to a batch.
func (s *Solver) Estimate(tr *obs.Trajectory, rnd Rand) (iod.GaussResult, error) {
	e := &estimation{s: s, tr: tr, rnd: rnd}
	e.cacheObserverStates()
	return e.run()
}

func (e *estimation) cacheObserverStates() {
	e.pos = make([]coord.Cart, len(e.tr.Obs))
	e.vel = make([]coord.Cart, len(e.tr.Obs))
	for i, o := range e.tr.Obs {
		e.pos[i], e.vel[i] = e.s.eph.ObserverState(o.Observer, o.MJD)
	}
}

func (e *estimation) run() (iod.GaussResult, error) {
	p := e.s.p

	trips, err := e.tripletCandidates()
	if err != nil {
		return iod.GaussResult{}, err
	}
	e.nTriplets = len(trips)

	// candidates reach scoring in generation order: triplet rank, then
	// realization index, then root index, truncated at the budget.
scan:
	for _, tp := range trips {
		for n := 0; n < p.NNoiseRealizations; n++ {
			sky := e.perturb(tp, n)
			cands, err := e.solveTriplet(tp, sky)
			if err != nil {
				if errors.Is(err, iod.ErrNonFiniteScore) {
					e.sawNonFinite = true
				}
				continue
			}
			for i := range cands {
				c := &cands[i]
				e.nCandidates++
				if !e.plausible(c) {
					continue
				}
				e.nPlausible++
				if e.nScored >= p.MaxTestedSolutions {
					break scan
				}
				rms := e.score(tp, c)
				e.nScored++
				if !e.bestSet || rms < e.best.RMS {
					e.best = c.result(rms)
					e.bestSet = true
				}
			}
		}
	}

	if e.bestSet && !math.IsInf(e.best.RMS, 1) {
		return e.best, nil
	}
	return iod.GaussResult{}, e.failure()
}

// failure picks the dominant reason nothing survived.
func (e *estimation) failure() error {
	switch {
	case e.nPlausible == 0 && e.nCandidates == 0 && e.sawNonFinite:
		return fmt.Errorf("%d triplets tried: %w", e.nTriplets,
			iod.ErrNonFiniteScore)
	case e.nPlausible == 0:
		return fmt.Errorf(
			"%d triplets, %d candidates, all rejected by filters: %w",
			e.nTriplets, e.nCandidates, iod.ErrNoPlausibleCandidate)
	}
	return fmt.Errorf("%d candidates scored, none finite: %w",
		e.nScored, iod.ErrNoObservationsInWindow)
}
