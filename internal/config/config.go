// Package config provides YAML-based outbreak configuration loading and
// pace presets for the viewer.
package config

import (
	"math"

	"github.com/vovakirdan/outbreak/internal/epidemic"
)

// OutbreakConfig contains all configuration for one outbreak run.
type OutbreakConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Population PopulationConfig `yaml:"population"`
	Viewer     ViewerConfig     `yaml:"viewer"`
}

// SimulationConfig holds the epidemiological parameters.
// Percentages use a 0-100 scale.
type SimulationConfig struct {
	Mortality         float64 `yaml:"mortality"`
	Virality          float64 `yaml:"virality"`
	LengthOfInfection int     `yaml:"length_of_infection"`
	SocialDistancing  float64 `yaml:"social_distancing"`
	Reinfectability   float64 `yaml:"reinfectability"` // accepted but has no effect on the model
}

// PopulationConfig defines the world the initial population is laid out in.
type PopulationConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Spacing float64 `yaml:"spacing"`
}

// ViewerConfig defines pacing for interactive and headless runs.
type ViewerConfig struct {
	Pace     PacePreset `yaml:"pace"`
	TickRate int        `yaml:"tick_rate"` // ticks per second, overrides pace when > 0
	MaxTicks int        `yaml:"max_ticks"` // headless cap, 0 = until extinct
}

// Params converts the simulation block into engine parameters.
func (c SimulationConfig) Params() epidemic.Params {
	return epidemic.Params{
		Mortality:         c.Mortality,
		Virality:          c.Virality,
		LengthOfInfection: c.LengthOfInfection,
		SocialDistancing:  c.SocialDistancing,
	}
}

// Region returns the layout region for the configured world size.
func (c PopulationConfig) Region() epidemic.Region {
	return epidemic.RegionForCanvas(c.Width, c.Height, c.Spacing)
}

// Validate checks every block. The error is an *epidemic.ConfigurationError
// so callers can match it with errors.Is(err, epidemic.ErrConfiguration).
func (c OutbreakConfig) Validate() error {
	if err := c.Simulation.Params().Validate(); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"population.width", c.Population.Width},
		{"population.height", c.Population.Height},
		{"population.spacing", c.Population.Spacing},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v <= 0 {
			return &epidemic.ConfigurationError{Field: f.name, Value: f.v, Reason: "must be a positive finite number"}
		}
	}
	if c.Viewer.TickRate < 0 {
		return &epidemic.ConfigurationError{Field: "viewer.tick_rate", Value: c.Viewer.TickRate, Reason: "must not be negative"}
	}
	if c.Viewer.MaxTicks < 0 {
		return &epidemic.ConfigurationError{Field: "viewer.max_ticks", Value: c.Viewer.MaxTicks, Reason: "must not be negative"}
	}
	if !c.Viewer.Pace.Valid() {
		return &epidemic.ConfigurationError{Field: "viewer.pace", Value: c.Viewer.Pace, Reason: "unknown pace preset"}
	}
	return nil
}

// EffectiveTickRate returns the explicit tick rate, or the pace preset's.
func (c ViewerConfig) EffectiveTickRate() int {
	if c.TickRate > 0 {
		return c.TickRate
	}
	return TickRateForPace(c.Pace)
}
