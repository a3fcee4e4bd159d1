// Public domain.

package outfit

import (
	"context"
	"sync"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/FusRoman/outfit/internal/iodsolver"
	"github.com/FusRoman/outfit/internal/logging"
	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/obs"
)

// EstimateOrbit runs Gauss initial orbit determination on a single
// trajectory with the given random source.
func (o *Outfit) EstimateOrbit(tr *obs.Trajectory, p *iod.Params, rnd iodsolver.Rand) (iod.GaussResult, error) {
	return iodsolver.New(p, o.eph).Estimate(tr, rnd)
}

// EstimateAllOrbits runs Gauss initial orbit determination over every
// trajectory in the set and returns two maps: object id to best result
// for the trajectories that produced a plausible orbit, and object id
// to failure reason for the rest.  Every id lands in exactly one map.
//
// A non-nil seed makes the run repeatable: each trajectory draws its
// Monte-Carlo noise from a substream derived from the batch seed by id
// rank, so results are bit-identical between sequential and parallel
// runs.  A nil seed uses the clock.
//
// Cancelling ctx stops the batch at the next trajectory boundary; the
// outcomes committed so far are returned and the remaining ids appear
// in neither map.  Cancellation is not an error.
func (o *Outfit) EstimateAllOrbits(ctx context.Context, ts *obs.TrajectorySet,
	p *iod.Params, seed *uint64) (map[obs.ObjectID]iod.GaussResult, map[obs.ObjectID]error) {

	batchSeed := uint64(time.Now().UnixNano())
	if seed != nil {
		batchSeed = *seed
	}

	// seeds are assigned over the sorted id order before any dispatch,
	// so the id to substream mapping cannot depend on scheduling
	ids := ts.SortedIDs()
	jobs := make([]trajJob, len(ids))
	state := batchSeed
	for i, id := range ids {
		jobs[i] = trajJob{tr: ts.Get(id), seed: splitmix64(&state)}
	}

	solver := iodsolver.New(p, o.eph)
	start := time.Now()
	var out outcome
	if p.DoParallel && p.NWorkers > 1 && len(jobs) > 1 {
		out = o.runParallel(ctx, solver, jobs, p)
	} else {
		out = o.runSequential(ctx, solver, jobs)
	}

	o.log.Info(ctx, "batch complete",
		logging.Int("trajectories", len(ids)),
		logging.Int("succeeded", len(out.ok)),
		logging.Int("failed", len(out.bad)),
		logging.Any("elapsed", time.Since(start)))
	return out.ok, out.bad
}

type trajJob struct {
	tr   *obs.Trajectory
	seed uint64
}

type outcome struct {
	ok  map[obs.ObjectID]iod.GaussResult
	bad map[obs.ObjectID]error
}

func newOutcome(n int) outcome {
	return outcome{
		ok:  make(map[obs.ObjectID]iod.GaussResult, n),
		bad: make(map[obs.ObjectID]error),
	}
}

func (o *Outfit) runSequential(ctx context.Context, solver *iodsolver.Solver, jobs []trajJob) outcome {
	out := newOutcome(len(jobs))
	rnd := xrand.New(&xrand.PCGSource{})
	for _, j := range jobs {
		if ctx.Err() != nil {
			break
		}
		rnd.Seed(j.seed)
		res, err := solver.Estimate(j.tr, rnd)
		if err != nil {
			out.bad[j.tr.ID] = err
			continue
		}
		out.ok[j.tr.ID] = res
	}
	return out
}

// runParallel fans batches of trajectories out to a worker pool.
// Workers commit into local outcome maps merged at join time, so the
// only synchronization is the job channel and the final merge.
func (o *Outfit) runParallel(ctx context.Context, solver *iodsolver.Solver,
	jobs []trajJob, p *iod.Params) outcome {

	batches := make(chan []trajJob)
	locals := make([]outcome, p.NWorkers)

	var wg sync.WaitGroup
	for w := 0; w < p.NWorkers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := newOutcome(0)
			rnd := xrand.New(&xrand.PCGSource{})
			for batch := range batches {
				for _, j := range batch {
					if ctx.Err() != nil {
						break
					}
					rnd.Seed(j.seed)
					res, err := solver.Estimate(j.tr, rnd)
					if err != nil {
						local.bad[j.tr.ID] = err
						continue
					}
					local.ok[j.tr.ID] = res
				}
			}
			locals[w] = local
		}(w)
	}

dispatch:
	for len(jobs) > 0 {
		n := p.BatchSize
		if n > len(jobs) {
			n = len(jobs)
		}
		select {
		case batches <- jobs[:n]:
			jobs = jobs[n:]
		case <-ctx.Done():
			break dispatch
		}
	}
	close(batches)
	wg.Wait()

	out := newOutcome(0)
	for _, local := range locals {
		for id, res := range local.ok {
			out.ok[id] = res
		}
		for id, err := range local.bad {
			out.bad[id] = err
		}
	}
	return out
}

// splitmix64 advances state and returns the next value of the
// Vigna SplitMix64 sequence.  Used only to derive independent
// per-trajectory seeds from the batch seed.
func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
