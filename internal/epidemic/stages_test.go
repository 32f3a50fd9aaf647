package epidemic

import (
	"math"
	"math/rand"
	"testing"
)

func TestStepAmplitude(t *testing.T) {
	tests := []struct {
		sd       float64
		expected float64
	}{
		{0, MaxStep},
		{50, MaxStep / 2},
		{100, 0},
	}
	for _, tc := range tests {
		if got := StepAmplitude(tc.sd); got != tc.expected {
			t.Errorf("StepAmplitude(%v) = %v, expected %v", tc.sd, got, tc.expected)
		}
	}
}

func TestMoveScriptedDraws(t *testing.T) {
	pop := Population{
		agentAt(0, 0, susceptible()),
		agentAt(50, 50, Status{Kind: Dead}),
		agentAt(10, 10, InfectedSince(0)),
	}
	rng := &scriptedSource{floats: []float64{0, 0.5, 0.75, 0.25}}

	next := Move(pop, 0, rng)

	expected := []Point{{X: -5, Y: 0}, {X: 50, Y: 50}, {X: 12.5, Y: 7.5}}
	for i, p := range expected {
		if next[i].Pos != p {
			t.Errorf("agent %d pos = %+v, expected %+v", i, next[i].Pos, p)
		}
	}
	if rng.floatCalls != 4 {
		t.Errorf("draws = %d, expected 4 (dead agents draw nothing)", rng.floatCalls)
	}
	if pop[0].Pos != (Point{}) {
		t.Errorf("input was mutated: %+v", pop[0].Pos)
	}
}

func TestMoveStaysWithinAmplitude(t *testing.T) {
	pop := make(Population, 200)
	for i := range pop {
		pop[i] = agentAt(float64(i), float64(i), susceptible())
	}
	rng := rand.New(rand.NewSource(3))

	for _, sd := range []float64{0, 25, 80, 100} {
		k := StepAmplitude(sd)
		next := Move(pop, sd, rng)
		for i := range next {
			dx := math.Abs(next[i].Pos.X - pop[i].Pos.X)
			dy := math.Abs(next[i].Pos.Y - pop[i].Pos.Y)
			if dx > k+1e-9 || dy > k+1e-9 {
				t.Errorf("sd=%v agent %d moved (%v, %v), expected within %v", sd, i, dx, dy, k)
			}
		}
	}
}

func TestInfect(t *testing.T) {
	tests := []struct {
		name     string
		pop      Population
		virality float64
		draws    []float64
		expected []Status
		rolls    int
	}{
		{
			name:     "contact transmits",
			pop:      Population{agentAt(0, 0, InfectedSince(0)), agentAt(5, 0, susceptible())},
			virality: 100,
			expected: []Status{InfectedSince(0), InfectedSince(3)},
			rolls:    1,
		},
		{
			name:     "roll fails",
			pop:      Population{agentAt(0, 0, InfectedSince(0)), agentAt(5, 0, susceptible())},
			virality: 40,
			draws:    []float64{0.4},
			expected: []Status{InfectedSince(0), susceptible()},
			rolls:    1,
		},
		{
			name:     "zero virality never transmits",
			pop:      Population{agentAt(0, 0, InfectedSince(0)), agentAt(5, 0, susceptible())},
			virality: 0,
			expected: []Status{InfectedSince(0), susceptible()},
			rolls:    1,
		},
		{
			name:     "no contact draws nothing",
			pop:      Population{agentAt(0, 0, InfectedSince(0)), agentAt(11, 0, susceptible())},
			virality: 100,
			expected: []Status{InfectedSince(0), susceptible()},
			rolls:    0,
		},
		{
			name:     "dead agents do not transmit",
			pop:      Population{agentAt(0, 0, Status{Kind: Dead}), agentAt(5, 0, susceptible())},
			virality: 100,
			expected: []Status{{Kind: Dead}, susceptible()},
			rolls:    0,
		},
		{
			name: "new infections wait a tick",
			pop: Population{
				agentAt(0, 0, InfectedSince(0)),
				agentAt(8, 0, susceptible()),
				agentAt(16, 0, susceptible()),
			},
			virality: 100,
			expected: []Status{InfectedSince(0), InfectedSince(3), susceptible()},
			rolls:    1,
		},
		{
			name: "shared target transitions once",
			pop: Population{
				agentAt(0, 0, InfectedSince(0)),
				agentAt(8, 0, InfectedSince(1)),
				agentAt(4, 0, susceptible()),
			},
			virality: 100,
			expected: []Status{InfectedSince(0), InfectedSince(1), InfectedSince(3)},
			rolls:    2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := &scriptedSource{floats: tc.draws}
			next := Infect(tc.pop, NewGridIndex(tc.pop, TransmissionRadius), 3, tc.virality, rng)

			for i, st := range tc.expected {
				if next[i].Status != st {
					t.Errorf("agent %d status = %+v, expected %+v", i, next[i].Status, st)
				}
			}
			if rng.floatCalls != tc.rolls {
				t.Errorf("rolls = %d, expected %d", rng.floatCalls, tc.rolls)
			}
		})
	}
}

func TestInfectLeavesInputUntouched(t *testing.T) {
	pop := Population{agentAt(0, 0, InfectedSince(0)), agentAt(5, 0, susceptible())}
	Infect(pop, NewScanIndex(pop), 1, 100, &scriptedSource{})

	if pop[1].Status.Kind != Susceptible {
		t.Errorf("input status = %s, expected Susceptible", pop[1].Status.Kind)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		tick      int
		mortality float64
		length    int
		draw      float64
		expected  Status
	}{
		{"still infectious", InfectedSince(0), 1, 0, 1, 0.5, InfectedSince(0)},
		{"recovers after window", InfectedSince(0), 2, 0, 1, 0.5, Status{Kind: Recovered}},
		{"dies", InfectedSince(4), 5, 50, 10, 0.01, Status{Kind: Dead}},
		{"survives hazard", InfectedSince(4), 5, 50, 10, 0.05, InfectedSince(4)},
		{"death wins the recovery tick", InfectedSince(0), 2, 100, 1, 0.5, Status{Kind: Dead}},
		{"recovered stays", Status{Kind: Recovered}, 9, 100, 1, 0, Status{Kind: Recovered}},
		{"susceptible untouched", susceptible(), 9, 100, 1, 0, susceptible()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pop := Population{agentAt(0, 0, tc.status)}
			rng := &scriptedSource{floats: []float64{tc.draw}}

			next := Progress(pop, tc.tick, tc.mortality, tc.length, rng)
			if next[0].Status != tc.expected {
				t.Errorf("Progress() status = %+v, expected %+v", next[0].Status, tc.expected)
			}
			if tc.status.Kind != Infected && rng.floatCalls != 0 {
				t.Errorf("rolls = %d for a %s agent, expected 0", rng.floatCalls, tc.status.Kind)
			}
		})
	}
}

func TestProgressRecoveryTiming(t *testing.T) {
	const since, length = 3, 5
	pop := Population{agentAt(0, 0, InfectedSince(since))}
	rng := &scriptedSource{floats: []float64{0.5}}

	for tick := since + 1; tick <= since+length+1; tick++ {
		pop = Progress(pop, tick, 0, length, rng)
		recovered := pop[0].Status.Kind == Recovered
		if want := tick-since > length; recovered != want {
			t.Fatalf("tick %d: recovered = %v, expected %v", tick, recovered, want)
		}
	}
}

func TestProgressDeathRate(t *testing.T) {
	const (
		n         = 20000
		mortality = 30.0
		length    = 10
	)
	pop := make(Population, n)
	for i := range pop {
		pop[i] = agentAt(0, 0, InfectedSince(0))
	}
	rng := rand.New(rand.NewSource(11))

	for tick := 1; tick <= length+1; tick++ {
		pop = Progress(pop, tick, mortality, length, rng)
	}

	c := pop.Counts()
	if c.Infected != 0 {
		t.Fatalf("Infected = %d after the full window, expected 0", c.Infected)
	}
	h := mortality / 100 / length
	expected := 1 - math.Pow(1-h, length+1)
	got := float64(c.Dead) / n
	if math.Abs(got-expected) > 0.02 {
		t.Errorf("death fraction = %.4f, expected %.4f within 0.02", got, expected)
	}
}
