// Public domain.

package obs

import (
	"fmt"
	"sort"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/lmfit"
	"github.com/soniakeys/unit"
)

// Trajectory is the time-ascending observation sequence of one object.
// At least one observation; IOD needs at least three.
type Trajectory struct {
	ID  ObjectID
	Obs []Observation
}

// Span returns the full arc length of the trajectory in days.
func (t *Trajectory) Span() float64 {
	if len(t.Obs) < 2 {
		return 0
	}
	return t.Obs[len(t.Obs)-1].MJD - t.Obs[0].MJD
}

// GCRms fits linear great circle motion over the whole trajectory and
// returns the rms of residuals against the fit.  It is a cheap quality
// diagnostic: a low rms means the astrometry is consistent, a high one
// means bad measurements or real curvature over the arc.
// Zero is returned for fewer than three observations.
func (t *Trajectory) GCRms() unit.Angle {
	if len(t.Obs) < 3 {
		return 0
	}
	ts := make([]float64, len(t.Obs))
	s := make(coord.EquaS, len(t.Obs))
	for i, o := range t.Obs {
		ts[i] = o.MJD
		s[i] = coord.Equa{RA: o.RA, Dec: o.Dec}
	}
	return lmfit.New(ts, s).Rms()
}

// TrajectorySet maps object ids to trajectories.  Mutated only by the
// ingestion side through Add; the estimation side treats it as read-only.
// Insertion order is preserved for reporting.
type TrajectorySet struct {
	m     map[ObjectID]*Trajectory
	order []ObjectID
}

// NewTrajectorySet returns an empty set.
func NewTrajectorySet() *TrajectorySet {
	return &TrajectorySet{m: map[ObjectID]*Trajectory{}}
}

// Add appends observations to the trajectory of id, creating the
// trajectory as needed.  Observations must be supplied time-ascending
// per id; there is no de-duplication, re-adding a batch duplicates it.
func (ts *TrajectorySet) Add(id ObjectID, o ...Observation) {
	t, ok := ts.m[id]
	if !ok {
		t = &Trajectory{ID: id}
		ts.m[id] = t
		ts.order = append(ts.order, id)
	}
	t.Obs = append(t.Obs, o...)
}

// Get returns the trajectory for id, or nil.
func (ts *TrajectorySet) Get(id ObjectID) *Trajectory { return ts.m[id] }

// Len returns the number of trajectories.
func (ts *TrajectorySet) Len() int { return len(ts.m) }

// TotalObservations returns the observation count over all trajectories.
func (ts *TrajectorySet) TotalObservations() int {
	n := 0
	for _, t := range ts.m {
		n += len(t.Obs)
	}
	return n
}

// IDs returns ids in insertion order.  The returned slice is shared;
// callers must not modify it.
func (ts *TrajectorySet) IDs() []ObjectID { return ts.order }

// SortedIDs returns ids in the total order of ObjectID.Less.  The batch
// executor derives per-trajectory seeds in this order.
func (ts *TrajectorySet) SortedIDs() []ObjectID {
	ids := append([]ObjectID{}, ts.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// CountStats summarizes observation counts across a set.
type CountStats struct {
	Trajectories int
	Observations int
	Min, Max     int
	Mean, Median float64
}

func (s CountStats) String() string {
	return fmt.Sprintf(
		"%d trajectories, %d obs (min %d, max %d, mean %.1f, median %.1f)",
		s.Trajectories, s.Observations, s.Min, s.Max, s.Mean, s.Median)
}

// ObsCountStats computes observation count statistics, or ok=false for an
// empty set.
func (ts *TrajectorySet) ObsCountStats() (s CountStats, ok bool) {
	if len(ts.m) == 0 {
		return s, false
	}
	counts := make([]int, 0, len(ts.m))
	for _, t := range ts.m {
		counts = append(counts, len(t.Obs))
	}
	sort.Ints(counts)
	s.Trajectories = len(counts)
	s.Min = counts[0]
	s.Max = counts[len(counts)-1]
	for _, c := range counts {
		s.Observations += c
	}
	s.Mean = float64(s.Observations) / float64(len(counts))
	if h := len(counts) / 2; len(counts)%2 == 1 {
		s.Median = float64(counts[h])
	} else {
		s.Median = float64(counts[h-1]+counts[h]) / 2
	}
	return s, true
}
