package epidemic

// scriptedSource replays fixed draws so a test can force each roll.
// When a script runs out it keeps returning the last value (or 0).
type scriptedSource struct {
	floats []float64
	ints   []int

	floatCalls int
	intCalls   int
}

func (s *scriptedSource) Float64() float64 {
	s.floatCalls++
	if len(s.floats) == 0 {
		return 0
	}
	i := min(s.floatCalls-1, len(s.floats)-1)
	return s.floats[i]
}

func (s *scriptedSource) Intn(n int) int {
	s.intCalls++
	if len(s.ints) == 0 {
		return 0
	}
	i := min(s.intCalls-1, len(s.ints)-1)
	return s.ints[i] % n
}

func agentAt(x, y float64, st Status) Agent {
	return Agent{ID: nextAgentID(), Pos: Point{X: x, Y: y}, Status: st}
}

func susceptible() Status { return Status{Kind: Susceptible} }
