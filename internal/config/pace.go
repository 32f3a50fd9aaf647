package config

// PacePreset represents a named viewer speed.
type PacePreset string

const (
	PaceSlow   PacePreset = "slow"
	PaceNormal PacePreset = "normal"
	PaceFast   PacePreset = "fast"
)

// Paces lists the presets in cycling order.
var Paces = []PacePreset{PaceSlow, PaceNormal, PaceFast}

// Valid reports whether p is a known preset. Empty means normal.
func (p PacePreset) Valid() bool {
	switch p {
	case "", PaceSlow, PaceNormal, PaceFast:
		return true
	}
	return false
}

// TickRateForPace returns ticks per second for a preset.
func TickRateForPace(p PacePreset) int {
	switch p {
	case PaceSlow:
		return 5
	case PaceFast:
		return 30
	default:
		return 15
	}
}

// NextPace returns the preset after p, wrapping around.
func NextPace(p PacePreset) PacePreset {
	for i, q := range Paces {
		if q == p {
			return Paces[(i+1)%len(Paces)]
		}
	}
	return PaceNormal
}

// ApplyPace sets the pace and clears any explicit tick rate so the preset
// takes effect.
func ApplyPace(cfg *OutbreakConfig, p PacePreset) {
	cfg.Viewer.Pace = p
	cfg.Viewer.TickRate = 0
}
