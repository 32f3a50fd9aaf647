package epidemic

// Progress advances the disease of every Infected agent by one tick.
//
// Death is rolled first with (mortality/100)/lengthOfInfection. Survivors
// whose infection is older than lengthOfInfection ticks recover. Because
// death comes first, an agent can still die on the tick it would otherwise
// have recovered.
func Progress(pop Population, tick int, mortality float64, lengthOfInfection int, rng RandomSource) Population {
	next := pop.Clone()
	hazard := Params{Mortality: mortality, LengthOfInfection: lengthOfInfection}.DeathChancePerTick()
	for i := range next {
		st := next[i].Status
		if st.Kind != Infected {
			continue
		}
		switch {
		case roll(rng, hazard):
			next[i].Status = Status{Kind: Dead}
		case tick-st.Since > lengthOfInfection:
			next[i].Status = Status{Kind: Recovered}
		}
	}
	return next
}
