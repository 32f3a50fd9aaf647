package epidemic

import "math"

// Params are the per-run epidemiological parameters.
// Percentages are on a 0-100 scale at this boundary; stages normalize them.
type Params struct {
	Mortality         float64 // % of infections that end in death over the full course
	Virality          float64 // % chance a contact transmits on a given tick
	LengthOfInfection int     // ticks an agent stays infectious before recovering
	SocialDistancing  float64 // % reduction of movement amplitude
}

// DefaultParams are the starting values of the viewer controls.
func DefaultParams() Params {
	return Params{
		Mortality:         4,
		Virality:          50,
		LengthOfInfection: 20,
		SocialDistancing:  0,
	}
}

// Validate reports the first out-of-range field as a *ConfigurationError.
func (p Params) Validate() error {
	if err := checkPercent("mortality", p.Mortality); err != nil {
		return err
	}
	if err := checkPercent("virality", p.Virality); err != nil {
		return err
	}
	if p.LengthOfInfection < 1 {
		return &ConfigurationError{
			Field:  "lengthOfInfection",
			Value:  p.LengthOfInfection,
			Reason: "must be a positive number of ticks",
		}
	}
	return checkPercent("socialDistancing", p.SocialDistancing)
}

// DeathChancePerTick is the constant hazard applied to each infected agent
// every tick: mortality spread evenly over the infectious window.
func (p Params) DeathChancePerTick() float64 {
	return p.Mortality / 100 / float64(p.LengthOfInfection)
}

func checkPercent(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return &ConfigurationError{Field: field, Value: v, Reason: "must be within [0, 100]"}
	}
	return nil
}
