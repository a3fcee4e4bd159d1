// Public domain.

package iodsolver

import (
	"fmt"
	"math"
	"sort"

	"github.com/FusRoman/outfit/iod"
)

// triplet holds three observation indices into one trajectory, i<j<k,
// with the derived time spans.  Ephemeral: built, consumed and dropped
// within one trajectory's estimation.
type triplet struct {
	i, j, k          int
	dtij, dtjk, dtik float64
}

// tripletCandidates enumerates admissible triplets, ranks them by
// spacing symmetry and truncates to MaxTriplets.
//
// Trajectories longer than MaxObsForTriplets are first downsampled to a
// uniform subsequence to bound the cubic enumeration.  A triplet is
// admissible when DtMin <= t_k-t_i <= DtMaxTriplet.  Ranking prefers
// symmetric spacing, |Δt_ij-Δt_jk| ascending, with distance of the full
// span from OptimalIntervalTime breaking ties.
func (e *estimation) tripletCandidates() ([]triplet, error) {
	o := e.tr.Obs
	p := e.s.p
	if len(o) < 3 {
		return nil, fmt.Errorf("%d observations: %w", len(o),
			iod.ErrNoFeasibleTriplets)
	}

	idx := downsample(len(o), p.MaxObsForTriplets)

	var cands []triplet
	for a := 0; a < len(idx)-2; a++ {
		for b := a + 1; b < len(idx)-1; b++ {
			for c := b + 1; c < len(idx); c++ {
				i, j, k := idx[a], idx[b], idx[c]
				span := o[k].MJD - o[i].MJD
				if span < p.DtMin || span > p.DtMaxTriplet {
					continue
				}
				cands = append(cands, triplet{
					i: i, j: j, k: k,
					dtij: o[j].MJD - o[i].MJD,
					dtjk: o[k].MJD - o[j].MJD,
					dtik: span,
				})
			}
		}
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("no triplet in span [%g, %g] days: %w",
			p.DtMin, p.DtMaxTriplet, iod.ErrNoFeasibleTriplets)
	}

	sort.SliceStable(cands, func(x, y int) bool {
		sx := math.Abs(cands[x].dtij - cands[x].dtjk)
		sy := math.Abs(cands[y].dtij - cands[y].dtjk)
		if sx != sy {
			return sx < sy
		}
		ox := math.Abs(cands[x].dtik - p.OptimalIntervalTime)
		oy := math.Abs(cands[y].dtik - p.OptimalIntervalTime)
		return ox < oy
	})
	if len(cands) > p.MaxTriplets {
		cands = cands[:p.MaxTriplets]
	}
	return cands, nil
}

// downsample returns up to max evenly strided indices out of [0,total),
// always keeping the first and last.
func downsample(total, max int) []int {
	if total <= max {
		idx := make([]int, total)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, max)
	for i := range idx {
		idx[i] = i * (total - 1) / (max - 1)
	}
	return idx
}
