// Public domain.

package iod_test

import (
	"testing"

	"github.com/FusRoman/outfit/iod"
)

func TestBuilderDefaults(t *testing.T) {
	p, err := iod.NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.NNoiseRealizations != 20 || p.NoiseScale != 1 {
		t.Fatal("noise defaults:", p.NNoiseRealizations, p.NoiseScale)
	}
	if p.MaxTriplets != 10 || p.DtMin != .03 || p.DtMaxTriplet != 150 {
		t.Fatal("triplet defaults")
	}
	if p.NWorkers < 1 || p.BatchSize != 100 {
		t.Fatal("scheduling defaults")
	}
	if p.DoParallel {
		t.Fatal("parallel on by default")
	}
}

func TestBuilderZeroValue(t *testing.T) {
	// zero value builder must behave like NewBuilder
	var b iod.Builder
	p, err := b.MaxTriplets(4).Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.MaxTriplets != 4 {
		t.Fatal("setter ignored")
	}
	if p.NNoiseRealizations != 20 {
		t.Fatal("defaults not applied:", p.NNoiseRealizations)
	}
}

func TestBuilderImmutability(t *testing.T) {
	b := iod.NewBuilder()
	p1, err := b.MaxEcc(2).Build()
	if err != nil {
		t.Fatal(err)
	}
	if _, err = b.MaxEcc(3).Build(); err != nil {
		t.Fatal(err)
	}
	if p1.MaxEcc != 2 {
		t.Fatal("built params aliased by later builder use")
	}
}

func TestBuilderValidation(t *testing.T) {
	for name, build := range map[string]func() (*iod.Params, error){
		"realizations": func() (*iod.Params, error) {
			return iod.NewBuilder().NNoiseRealizations(0).Build()
		},
		"noiseScale": func() (*iod.Params, error) {
			return iod.NewBuilder().NoiseScale(-1).Build()
		},
		"spanOrder": func() (*iod.Params, error) {
			return iod.NewBuilder().DtMin(10).DtMaxTriplet(5).Build()
		},
		"maxEcc": func() (*iod.Params, error) {
			return iod.NewBuilder().MaxEcc(-.1).Build()
		},
		"r2Bounds": func() (*iod.Params, error) {
			return iod.NewBuilder().R2Bounds(5, 1).Build()
		},
		"workers": func() (*iod.Params, error) {
			return iod.NewBuilder().NWorkers(0).Build()
		},
		"tolerance": func() (*iod.Params, error) {
			return iod.NewBuilder().AberthEps(0).Build()
		},
		"budget": func() (*iod.Params, error) {
			return iod.NewBuilder().MaxTestedSolutions(0).Build()
		},
	} {
		if _, err := build(); err == nil {
			t.Fatal("expected validation error:", name)
		}
	}
}
