// Public domain.

// Package iod holds the configuration, result and error types of the
// Gauss initial orbit determination pipeline.  The pipeline itself lives
// in internal/iodsolver and is driven through the batch entry point in
// the module root.
package iod

import (
	"fmt"
	"runtime"
)

// Params is the immutable configuration bundle for an IOD batch run.
// Build one through Builder and then treat it as read-only: it is shared
// across every trajectory estimation in the batch, concurrently in
// parallel mode.
type Params struct {
	// Monte-Carlo resampling
	NNoiseRealizations int     // perturbed copies per triplet, incl. nominal
	NoiseScale         float64 // multiplier on per-observation sigmas

	// triplet selection
	DtMin               float64 // min first-to-last span, days
	DtMaxTriplet        float64 // max first-to-last span, days
	OptimalIntervalTime float64 // preferred spacing, days
	MaxObsForTriplets   int     // downsample bound before enumeration
	MaxTriplets         int     // triplets kept after ranking

	// rms evaluation window
	Extf   float64 // window = triplet span × Extf; <0 selects fallback
	DtMax  float64 // lower clamp on the window, days
	GapMax float64 // max inter-observation gap when extending the window, days

	// physical plausibility
	MaxEcc          float64
	MaxPerihelionAU float64
	MinRho2AU       float64 // min topocentric distance at central epoch
	R2MinAU         float64 // heliocentric root acceptance band
	R2MaxAU         float64

	// solver tolerances
	AberthMaxIter int
	AberthEps     float64
	RootImagEps   float64 // |Im| bound for accepting a root as real
	KeplerEps     float64 // universal Kepler convergence
	NewtonEps     float64 // velocity refinement convergence
	NewtonMaxIt   int

	// candidate budget
	MaxTestedSolutions int // candidates allowed to reach scoring

	// scheduling
	DoParallel bool
	NWorkers   int
	BatchSize  int
}

// Builder accumulates Params fields over defaults.  Zero value is ready
// to use; every setter returns the builder for chaining.
type Builder struct {
	p   Params
	set bool
}

// NewBuilder returns a Builder loaded with the documented defaults.
func NewBuilder() *Builder {
	return &Builder{p: Params{
		NNoiseRealizations:  20,
		NoiseScale:          1,
		DtMin:               .03,
		DtMaxTriplet:        150,
		OptimalIntervalTime: 20,
		MaxObsForTriplets:   100,
		MaxTriplets:         10,
		Extf:                1,
		DtMax:               30,
		GapMax:              15,
		MaxEcc:              5,
		MaxPerihelionAU:     1e3,
		MinRho2AU:           .01,
		R2MinAU:             .05,
		R2MaxAU:             200,
		AberthMaxIter:       50,
		AberthEps:           1e-6,
		RootImagEps:         1e-6,
		KeplerEps:           1e-12,
		NewtonEps:           1e-10,
		NewtonMaxIt:         50,
		MaxTestedSolutions:  100,
		NWorkers:            runtime.GOMAXPROCS(0),
		BatchSize:           100,
	}, set: true}
}

func (b *Builder) defaults() *Builder {
	if !b.set {
		*b = *NewBuilder()
	}
	return b
}

func (b *Builder) NNoiseRealizations(n int) *Builder {
	b.defaults().p.NNoiseRealizations = n
	return b
}

func (b *Builder) NoiseScale(s float64) *Builder {
	b.defaults().p.NoiseScale = s
	return b
}

func (b *Builder) DtMin(d float64) *Builder {
	b.defaults().p.DtMin = d
	return b
}

func (b *Builder) DtMaxTriplet(d float64) *Builder {
	b.defaults().p.DtMaxTriplet = d
	return b
}

func (b *Builder) OptimalIntervalTime(d float64) *Builder {
	b.defaults().p.OptimalIntervalTime = d
	return b
}

func (b *Builder) MaxObsForTriplets(n int) *Builder {
	b.defaults().p.MaxObsForTriplets = n
	return b
}

func (b *Builder) MaxTriplets(n int) *Builder {
	b.defaults().p.MaxTriplets = n
	return b
}

func (b *Builder) Extf(x float64) *Builder {
	b.defaults().p.Extf = x
	return b
}

func (b *Builder) DtMax(d float64) *Builder {
	b.defaults().p.DtMax = d
	return b
}

func (b *Builder) GapMax(d float64) *Builder {
	b.defaults().p.GapMax = d
	return b
}

func (b *Builder) MaxEcc(e float64) *Builder {
	b.defaults().p.MaxEcc = e
	return b
}

func (b *Builder) MaxPerihelionAU(q float64) *Builder {
	b.defaults().p.MaxPerihelionAU = q
	return b
}

func (b *Builder) MinRho2AU(r float64) *Builder {
	b.defaults().p.MinRho2AU = r
	return b
}

func (b *Builder) R2Bounds(min, max float64) *Builder {
	b.defaults()
	b.p.R2MinAU, b.p.R2MaxAU = min, max
	return b
}

func (b *Builder) AberthMaxIter(n int) *Builder {
	b.defaults().p.AberthMaxIter = n
	return b
}

func (b *Builder) AberthEps(e float64) *Builder {
	b.defaults().p.AberthEps = e
	return b
}

func (b *Builder) RootImagEps(e float64) *Builder {
	b.defaults().p.RootImagEps = e
	return b
}

func (b *Builder) KeplerEps(e float64) *Builder {
	b.defaults().p.KeplerEps = e
	return b
}

func (b *Builder) NewtonEps(e float64) *Builder {
	b.defaults().p.NewtonEps = e
	return b
}

func (b *Builder) NewtonMaxIt(n int) *Builder {
	b.defaults().p.NewtonMaxIt = n
	return b
}

func (b *Builder) MaxTestedSolutions(n int) *Builder {
	b.defaults().p.MaxTestedSolutions = n
	return b
}

func (b *Builder) DoParallel(on bool) *Builder {
	b.defaults().p.DoParallel = on
	return b
}

func (b *Builder) NWorkers(n int) *Builder {
	b.defaults().p.NWorkers = n
	return b
}

func (b *Builder) BatchSize(n int) *Builder {
	b.defaults().p.BatchSize = n
	return b
}

// Build validates the accumulated configuration and returns the
// immutable Params.  Contract violations are rejected here, before any
// trajectory is processed.
func (b *Builder) Build() (*Params, error) {
	b.defaults()
	p := b.p // copy; further builder use cannot alias the result
	switch {
	case p.NNoiseRealizations < 1:
		return nil, fmt.Errorf("iod: NNoiseRealizations %d < 1", p.NNoiseRealizations)
	case p.NoiseScale < 0:
		return nil, fmt.Errorf("iod: NoiseScale %g < 0", p.NoiseScale)
	case p.DtMin < 0:
		return nil, fmt.Errorf("iod: DtMin %g < 0", p.DtMin)
	case p.DtMaxTriplet <= p.DtMin:
		return nil, fmt.Errorf("iod: DtMaxTriplet %g <= DtMin %g",
			p.DtMaxTriplet, p.DtMin)
	case p.MaxObsForTriplets < 3:
		return nil, fmt.Errorf("iod: MaxObsForTriplets %d < 3", p.MaxObsForTriplets)
	case p.MaxTriplets < 1:
		return nil, fmt.Errorf("iod: MaxTriplets %d < 1", p.MaxTriplets)
	case p.DtMax < 0:
		return nil, fmt.Errorf("iod: DtMax %g < 0", p.DtMax)
	case p.GapMax <= 0:
		return nil, fmt.Errorf("iod: GapMax %g <= 0", p.GapMax)
	case p.MaxEcc < 0:
		return nil, fmt.Errorf("iod: MaxEcc %g < 0", p.MaxEcc)
	case p.MaxPerihelionAU <= 0:
		return nil, fmt.Errorf("iod: MaxPerihelionAU %g <= 0", p.MaxPerihelionAU)
	case p.MinRho2AU < 0:
		return nil, fmt.Errorf("iod: MinRho2AU %g < 0", p.MinRho2AU)
	case p.R2MinAU <= 0 || p.R2MaxAU <= p.R2MinAU:
		return nil, fmt.Errorf("iod: bad r2 bounds [%g, %g]", p.R2MinAU, p.R2MaxAU)
	case p.AberthMaxIter < 1 || p.NewtonMaxIt < 1:
		return nil, fmt.Errorf("iod: iteration caps must be >= 1")
	case p.AberthEps <= 0 || p.RootImagEps <= 0 || p.KeplerEps <= 0 || p.NewtonEps <= 0:
		return nil, fmt.Errorf("iod: tolerances must be > 0")
	case p.MaxTestedSolutions < 1:
		return nil, fmt.Errorf("iod: MaxTestedSolutions %d < 1", p.MaxTestedSolutions)
	case p.NWorkers < 1:
		return nil, fmt.Errorf("iod: NWorkers %d < 1", p.NWorkers)
	case p.BatchSize < 1:
		return nil, fmt.Errorf("iod: BatchSize %d < 1", p.BatchSize)
	}
	return &p, nil
}
