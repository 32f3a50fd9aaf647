package epidemic

// Infect runs one round of transmission.
//
// Every agent Infected at the start of the round looks up one Susceptible
// agent within TransmissionRadius and rolls virality% for that contact. A
// successful roll makes the target Infected since tick. Agents infected in
// this round do not transmit until the next one, and a target reached by
// several sources transitions only once. Dead agents are never indexed and
// never act as sources.
func Infect(pop Population, index SpatialIndex, tick int, virality float64, rng RandomSource) Population {
	next := pop.Clone()
	p := virality / 100

	var pos map[AgentID]int
	for _, src := range pop {
		if src.Status.Kind != Infected {
			continue
		}
		target, ok := index.FindNearestWithin(src.Pos, TransmissionRadius)
		if !ok {
			continue
		}
		if !roll(rng, p) {
			continue
		}
		if pos == nil {
			pos = indexByID(next)
		}
		i, ok := pos[target]
		if !ok || next[i].Status.Kind != Susceptible {
			continue
		}
		next[i].Status = InfectedSince(tick)
	}
	return next
}

func indexByID(pop Population) map[AgentID]int {
	m := make(map[AgentID]int, len(pop))
	for i, a := range pop {
		m[a.ID] = i
	}
	return m
}
