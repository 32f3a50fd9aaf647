package config

import (
	_ "embed"

	"github.com/vovakirdan/outbreak/internal/epidemic"
)

//go:embed defaults/outbreak.yaml
var defaultOutbreakYAML []byte

// DefaultOutbreakConfig returns the hardcoded default configuration.
// It matches defaults/outbreak.yaml.
func DefaultOutbreakConfig() OutbreakConfig {
	p := epidemic.DefaultParams()
	return OutbreakConfig{
		Simulation: SimulationConfig{
			Mortality:         p.Mortality,
			Virality:          p.Virality,
			LengthOfInfection: p.LengthOfInfection,
			SocialDistancing:  p.SocialDistancing,
		},
		Population: PopulationConfig{
			Width:   600,
			Height:  400,
			Spacing: epidemic.DefaultSpacing,
		},
		Viewer: ViewerConfig{
			Pace:     PaceNormal,
			MaxTicks: 5000,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultOutbreakYAML
}
