// Public domain.

package iodprog

import (
	"os"

	"github.com/soniakeys/unit"
	"gopkg.in/yaml.v3"

	"github.com/FusRoman/outfit/iod"
	"github.com/FusRoman/outfit/mpcingest"
)

// Config is the optional YAML configuration file.  Zero fields keep
// the built-in defaults, so a config file only needs the settings it
// wants to change.
type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	// usno or meeus
	Ephemeris string `yaml:"ephemeris"`

	Accuracy struct {
		// astrometric uncertainty in arc seconds
		DefaultArcsec float64            `yaml:"defaultArcsec"`
		SiteArcsec    map[string]float64 `yaml:"siteArcsec"`
	} `yaml:"accuracy"`

	IOD struct {
		NoiseRealizations   int     `yaml:"noiseRealizations"`
		NoiseScale          float64 `yaml:"noiseScale"`
		DtMin               float64 `yaml:"dtMin"`
		DtMaxTriplet        float64 `yaml:"dtMaxTriplet"`
		OptimalIntervalTime float64 `yaml:"optimalIntervalTime"`
		MaxObsForTriplets   int     `yaml:"maxObsForTriplets"`
		MaxTriplets         int     `yaml:"maxTriplets"`
		Extf                float64 `yaml:"extf"`
		DtMax               float64 `yaml:"dtMax"`
		GapMax              float64 `yaml:"gapMax"`
		MaxEcc              float64 `yaml:"maxEcc"`
		MaxPerihelionAU     float64 `yaml:"maxPerihelionAU"`
		MinRho2AU           float64 `yaml:"minRho2AU"`
		R2MinAU             float64 `yaml:"r2MinAU"`
		R2MaxAU             float64 `yaml:"r2MaxAU"`
		MaxTestedSolutions  int     `yaml:"maxTestedSolutions"`
		Parallel            bool    `yaml:"parallel"`
		Workers             int     `yaml:"workers"`
		BatchSize           int     `yaml:"batchSize"`
	} `yaml:"iod"`
}

func readConfigFile(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// params builds validated estimation parameters from the config, with
// zero fields keeping the builder defaults.
func (c *Config) params() (*iod.Params, error) {
	b := iod.NewBuilder()
	i := &c.IOD
	if i.NoiseRealizations > 0 {
		b.NNoiseRealizations(i.NoiseRealizations)
	}
	if i.NoiseScale > 0 {
		b.NoiseScale(i.NoiseScale)
	}
	if i.DtMin > 0 {
		b.DtMin(i.DtMin)
	}
	if i.DtMaxTriplet > 0 {
		b.DtMaxTriplet(i.DtMaxTriplet)
	}
	if i.OptimalIntervalTime > 0 {
		b.OptimalIntervalTime(i.OptimalIntervalTime)
	}
	if i.MaxObsForTriplets > 0 {
		b.MaxObsForTriplets(i.MaxObsForTriplets)
	}
	if i.MaxTriplets > 0 {
		b.MaxTriplets(i.MaxTriplets)
	}
	if i.Extf != 0 {
		b.Extf(i.Extf)
	}
	if i.DtMax > 0 {
		b.DtMax(i.DtMax)
	}
	if i.GapMax > 0 {
		b.GapMax(i.GapMax)
	}
	if i.MaxEcc > 0 {
		b.MaxEcc(i.MaxEcc)
	}
	if i.MaxPerihelionAU > 0 {
		b.MaxPerihelionAU(i.MaxPerihelionAU)
	}
	if i.MinRho2AU > 0 {
		b.MinRho2AU(i.MinRho2AU)
	}
	if i.R2MinAU > 0 || i.R2MaxAU > 0 {
		min, max := i.R2MinAU, i.R2MaxAU
		if min == 0 {
			min = .05
		}
		if max == 0 {
			max = 200
		}
		b.R2Bounds(min, max)
	}
	if i.MaxTestedSolutions > 0 {
		b.MaxTestedSolutions(i.MaxTestedSolutions)
	}
	b.DoParallel(i.Parallel)
	if i.Workers > 0 {
		b.NWorkers(i.Workers)
	}
	if i.BatchSize > 0 {
		b.BatchSize(i.BatchSize)
	}
	return b.Build()
}

func (c *Config) accuracy() *mpcingest.Accuracy {
	acc := &mpcingest.Accuracy{}
	if c.Accuracy.DefaultArcsec > 0 {
		acc.Default = unit.AngleFromSec(c.Accuracy.DefaultArcsec)
	}
	if len(c.Accuracy.SiteArcsec) > 0 {
		acc.Site = make(map[string]unit.Angle, len(c.Accuracy.SiteArcsec))
		for code, sec := range c.Accuracy.SiteArcsec {
			acc.Site[code] = unit.AngleFromSec(sec)
		}
	}
	return acc
}
