// Public domain.

// Package mpcingest reads MPC 80 column astrometry into trajectory
// sets for orbit determination.
package mpcingest

import (
	"fmt"
	"io"

	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"

	"github.com/FusRoman/outfit/obs"
)

// Accuracy assigns per-coordinate astrometric uncertainties by
// observatory code.  The zero value gives every site one arc second.
type Accuracy struct {
	// uncertainty by MPC code, both coordinates
	Site map[string]unit.Angle
	// fallback for codes not in Site.  zero means 1 arc second.
	Default unit.Angle
}

func (a *Accuracy) sigma(code string) unit.Angle {
	if s, ok := a.Site[code]; ok {
		return s
	}
	if a.Default != 0 {
		return a.Default
	}
	return unit.AngleFromSec(1)
}

// Stats reports what an ingest run kept and dropped.
type Stats struct {
	Trajectories int
	Observations int
	// observations dropped for lacking a ground site position
	NoSite int
	// arcs dropped for unparseable or out of order data
	BadArcs int
}

// ReadTrajectorySet parses MPC 80 column observations, groups them by
// designation and returns them as a trajectory set.  Observations must
// be sorted by designation; within an object they must be in strictly
// increasing time order or the whole arc is dropped.  Satellite and
// roving observations carry no ground site parallax and are skipped.
//
// ocdMap supplies site parallax constants, typically from
// Outfit.ParallaxMap or mpcformat.ReadObscodeDatFile.
func ReadTrajectorySet(r io.Reader, ocdMap observation.ParallaxMap, acc *Accuracy) (*obs.TrajectorySet, *Stats, error) {
	if acc == nil {
		acc = &Accuracy{}
	}
	ts := obs.NewTrajectorySet()
	st := &Stats{}
	sites := map[*observation.ParallaxConst]*obs.Observer{}

	split := mpcformat.ArcSplitter(r, ocdMap)
	for {
		a, err := split()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(mpcformat.ArcError); ok {
				st.BadArcs++
				continue
			}
			return nil, st, err
		}
		tr, dropped, err := convertArc(a, sites, acc)
		if err != nil {
			st.BadArcs++
			continue
		}
		st.NoSite += dropped
		if len(tr.Obs) == 0 {
			continue
		}
		ts.Add(tr.ID, tr.Obs...)
		st.Trajectories++
		st.Observations += len(tr.Obs)
	}
	return ts, st, nil
}

func convertArc(a *observation.Arc, sites map[*observation.ParallaxConst]*obs.Observer,
	acc *Accuracy) (*obs.Trajectory, int, error) {

	tr := &obs.Trajectory{ID: obs.ParseID(a.Desig)}
	var dropped int
	var t0 float64
	for _, vo := range a.Obs {
		so, ok := vo.(*observation.SiteObs)
		if !ok || so.Par == nil {
			dropped++
			continue
		}
		m := &so.VMeas
		if m.MJD <= t0 {
			return nil, 0, fmt.Errorf("%s: observations out of time order", a.Desig)
		}
		t0 = m.MJD

		site, ok := sites[so.Par]
		if !ok {
			site = &obs.Observer{Name: m.Qual, Par: so.Par}
			sites[so.Par] = site
		}
		sig := acc.sigma(m.Qual)
		tr.Obs = append(tr.Obs, obs.Observation{
			MJD:      m.MJD,
			RA:       m.RA,
			Dec:      m.Dec,
			SigmaRA:  sig,
			SigmaDec: sig,
			Observer: site,
		})
	}
	return tr, dropped, nil
}
