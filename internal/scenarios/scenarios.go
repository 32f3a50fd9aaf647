// Package scenarios holds the built-in outbreak presets. Importing it for
// side effects registers them:
//
//	import _ "github.com/vovakirdan/outbreak/internal/scenarios"
package scenarios

import (
	"github.com/vovakirdan/outbreak/internal/config"
	"github.com/vovakirdan/outbreak/internal/registry"
)

// Preset is a scenario that overrides the simulation block. Zero fields
// leave the loaded value alone, except SocialDistancing, which is always
// applied so a preset can switch distancing off.
type Preset struct {
	id, title, desc string

	Mortality         float64
	Virality          float64
	LengthOfInfection int
	SocialDistancing  float64
}

func (p Preset) ID() string          { return p.id }
func (p Preset) Title() string       { return p.title }
func (p Preset) Description() string { return p.desc }

// Configure applies the preset.
func (p Preset) Configure(cfg *config.OutbreakConfig) {
	if p.Mortality > 0 {
		cfg.Simulation.Mortality = p.Mortality
	}
	if p.Virality > 0 {
		cfg.Simulation.Virality = p.Virality
	}
	if p.LengthOfInfection > 0 {
		cfg.Simulation.LengthOfInfection = p.LengthOfInfection
	}
	cfg.Simulation.SocialDistancing = p.SocialDistancing
}

// Builtins lists the presets registered by this package.
var Builtins = []Preset{
	{
		id: "baseline", title: "Baseline",
		desc:      "Default parameters: moderate spread, low mortality",
		Mortality: 4, Virality: 50, LengthOfInfection: 20,
	},
	{
		id: "flu", title: "Seasonal Flu",
		desc:      "Short infections, easy spread, rarely fatal",
		Mortality: 1, Virality: 35, LengthOfInfection: 10,
	},
	{
		id: "measles", title: "Measles",
		desc:      "Extremely contagious with a long infectious window",
		Mortality: 2, Virality: 90, LengthOfInfection: 25,
	},
	{
		id: "lockdown", title: "Lockdown",
		desc:      "Baseline disease under heavy social distancing",
		Mortality: 4, Virality: 50, LengthOfInfection: 20, SocialDistancing: 80,
	},
	{
		id: "plague", title: "Plague",
		desc:      "Slow to spread, deadly when it does",
		Mortality: 60, Virality: 30, LengthOfInfection: 30,
	},
}

func init() {
	for _, p := range Builtins {
		p := p
		registry.Register(p.id, func() registry.Scenario { return p })
	}
}
