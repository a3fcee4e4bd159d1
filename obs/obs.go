// Public domain.

// Package obs holds the observational data model for orbit determination:
// single angular observations, per-object trajectories, and sets of
// trajectories keyed by object identifier.
//
// Objects here are deliberately dumb.  Trajectories are append-only and
// observations are immutable once ingested; everything downstream (the IOD
// solver, the batch executor) reads them concurrently without locks.
package obs

import (
	"fmt"
	"strconv"

	"github.com/soniakeys/observation"
	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Observer is an observing site.  Par holds the geocentric parallax
// constants in the observation package convention: east longitude as an
// angle, rho terms in AU.
type Observer struct {
	Name string
	Par  *observation.ParallaxConst
}

// Observation is a single angular astrometric measurement.
//
// Epoch is MJD (TT).  RA and Dec are the measured sky position, SigmaRA
// and SigmaDec the 1-σ accuracies in the respective coordinates.
// Observations are immutable after ingestion.
type Observation struct {
	MJD      float64
	RA       unit.RA
	Dec      unit.Angle
	SigmaRA  unit.Angle
	SigmaDec unit.Angle
	Observer *Observer
}

// String formats the observation the way it would appear in a report,
// with sexagesimal RA and Dec.
func (o Observation) String() string {
	return fmt.Sprintf("%.2f %v %v", o.MJD,
		sexa.FmtRA(o.RA), sexa.FmtAngle(o.Dec))
}

// ObjectID identifies one object in a TrajectorySet.  Both numbered
// objects and string designations occur in source catalogues, so the id
// is a small closed sum of the two.  The zero value is the empty string
// designation.
type ObjectID struct {
	name    string
	num     uint64
	numeric bool
}

// NumberID returns the id of a numbered object.
func NumberID(n uint64) ObjectID { return ObjectID{num: n, numeric: true} }

// NameID returns the id of an object known by designation.
func NameID(s string) ObjectID { return ObjectID{name: s} }

// ParseID interprets s as a number when it is all digits, otherwise as a
// designation.
func ParseID(s string) ObjectID {
	if n, err := strconv.ParseUint(s, 10, 64); err == nil && s != "" {
		return NumberID(n)
	}
	return NameID(s)
}

// Numeric reports whether the id is a numbered object.
func (id ObjectID) Numeric() bool { return id.numeric }

// Num returns the number of a numbered object, 0 otherwise.
func (id ObjectID) Num() uint64 { return id.num }

func (id ObjectID) String() string {
	if id.numeric {
		return strconv.FormatUint(id.num, 10)
	}
	return id.name
}

// Less orders ids for deterministic iteration: numbered objects first in
// numeric order, then designations lexicographically.  The batch seed
// derivation depends on this order being total and stable.
func (id ObjectID) Less(other ObjectID) bool {
	switch {
	case id.numeric != other.numeric:
		return id.numeric
	case id.numeric:
		return id.num < other.num
	}
	return id.name < other.name
}
