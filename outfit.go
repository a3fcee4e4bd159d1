// Public domain.

package outfit

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/soniakeys/mpcformat"
	"github.com/soniakeys/observation"
	"github.com/soniakeys/unit"

	"github.com/FusRoman/outfit/astro"
	"github.com/FusRoman/outfit/ephem"
	"github.com/FusRoman/outfit/internal/logging"
	"github.com/FusRoman/outfit/obs"
)

// Outfit is the environment shared by a batch of orbit determinations:
// an ephemeris service, a logger and a registry of observing sites.
// Construct one with New, register or load observers, then call
// EstimateAllOrbits.
//
// The registry methods are not safe for concurrent use; register all
// observers before starting a batch.
type Outfit struct {
	eph ephem.Service
	log logging.Logger

	observers map[string]*obs.Observer
}

// New creates an environment around the given ephemeris service.
// A nil service selects the built-in analytic solar ephemeris and a
// nil logger discards all logs.
func New(eph ephem.Service, log logging.Logger) *Outfit {
	if eph == nil {
		eph = ephem.USNO{}
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Outfit{
		eph:       eph,
		log:       log,
		observers: make(map[string]*obs.Observer),
	}
}

// IAU 1976 reference ellipsoid.
const earthFlattening = 1 / 298.257

// AddObserver registers an observing site from geodetic coordinates:
// east longitude and latitude in degrees, elevation in meters.  The
// site is stored under code and replaces any previous registration.
func (o *Outfit) AddObserver(code, name string, lonDeg, latDeg, elevM float64) *obs.Observer {
	lat := latDeg * math.Pi / 180
	// geocentric parallax constants on the reference ellipsoid,
	// in units of the equatorial radius
	u := math.Atan((1 - earthFlattening) * math.Tan(lat))
	h := elevM / (astro.EarthRadiusAU * 149.59787e9)
	rhoCosPhi := math.Cos(u) + h*math.Cos(lat)
	rhoSinPhi := (1-earthFlattening)*math.Sin(u) + h*math.Sin(lat)

	ob := &obs.Observer{
		Name: name,
		Par: &observation.ParallaxConst{
			Longitude: unit.AngleFromDeg(lonDeg),
			RhoCosPhi: rhoCosPhi * astro.EarthRadiusAU,
			RhoSinPhi: rhoSinPhi * astro.EarthRadiusAU,
		},
	}
	o.observers[code] = ob
	return ob
}

// ObserverFromMPCCode returns the registered observer for an MPC
// observatory code.
func (o *Outfit) ObserverFromMPCCode(code string) (*obs.Observer, error) {
	ob, ok := o.observers[code]
	if !ok {
		return nil, fmt.Errorf("observatory code %s not registered", code)
	}
	return ob, nil
}

// LoadObscodeDat registers every ground-based site from an MPC
// obscode.dat file.  Codes without parallax data (spacecraft, roving
// observers) are skipped.  Returns the number of sites registered.
func (o *Outfit) LoadObscodeDat(path string) (int, error) {
	m, err := mpcformat.ReadObscodeDatFile(path)
	if err != nil {
		return 0, err
	}
	var n int
	for code, par := range m {
		if par == nil {
			continue
		}
		o.observers[code] = &obs.Observer{Name: code, Par: par}
		n++
	}
	o.log.Info(context.Background(), "observatory codes loaded",
		logging.String("path", path), logging.Int("sites", n))
	return n, nil
}

// ParallaxMap exposes the registry in the form the MPC ingestion layer
// consumes.
func (o *Outfit) ParallaxMap() observation.ParallaxMap {
	m := make(observation.ParallaxMap, len(o.observers))
	for code, ob := range o.observers {
		m[code] = ob.Par
	}
	return m
}

// ShowObservatories writes a table of the registered sites.
func (o *Outfit) ShowObservatories(w io.Writer) error {
	codes := make([]string, 0, len(o.observers))
	for code := range o.observers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		ob := o.observers[code]
		lon := ob.Par.Longitude.Deg()
		_, err := fmt.Fprintf(w, "%-4s %-24s lon %8.4f°  ρcosφ %9.6f  ρsinφ %9.6f\n",
			code, ob.Name, lon,
			ob.Par.RhoCosPhi/astro.EarthRadiusAU,
			ob.Par.RhoSinPhi/astro.EarthRadiusAU)
		if err != nil {
			return err
		}
	}
	return nil
}
