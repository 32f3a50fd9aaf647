package epidemic

// MaxStep is the per-axis movement amplitude with no social distancing.
const MaxStep = 5.0

// StepAmplitude returns k, the per-axis bound of one tick's random walk.
func StepAmplitude(socialDistancing float64) float64 {
	return MaxStep * (1 - socialDistancing/100)
}

// Move perturbs every living agent by (dx, dy), each uniform in [-k, k].
// Dead agents stay where they fell. Each agent's step depends only on its
// own position and its own draws (dx then dy, in population order).
func Move(pop Population, socialDistancing float64, rng RandomSource) Population {
	next := pop.Clone()
	k := StepAmplitude(socialDistancing)
	for i := range next {
		if !next[i].Alive() {
			continue
		}
		next[i].Pos.X += uniform(rng, -k, k)
		next[i].Pos.Y += uniform(rng, -k, k)
	}
	return next
}
