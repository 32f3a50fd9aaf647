package epidemic_test

import (
	"math"
	"testing"

	"github.com/vovakirdan/outbreak/internal/epidemic"
)

func newRun(t *testing.T, pop epidemic.Population, params epidemic.Params, seed int64) *epidemic.Engine {
	t.Helper()
	e, err := epidemic.New(pop, params, epidemic.NewSource(seed))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e
}

func canvasPopulation(t *testing.T, w, h float64) epidemic.Population {
	t.Helper()
	pop, err := epidemic.Generate(epidemic.RegionForCanvas(w, h, epidemic.DefaultSpacing), epidemic.DefaultSpacing)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	return pop
}

func TestRunInvariants(t *testing.T) {
	params := epidemic.Params{Mortality: 20, Virality: 60, LengthOfInfection: 15, SocialDistancing: 10}
	pop := canvasPopulation(t, 240, 240)
	e := newRun(t, pop, params, 2024)

	prev := e.Snapshot()
	for tick := 1; tick <= 300; tick++ {
		next := e.Tick()

		c := e.Counts()
		if c.Total() != len(pop) {
			t.Fatalf("tick %d: alive+dead = %d, expected %d", tick, c.Total(), len(pop))
		}
		if c.Alive != c.Susceptible+c.Infected+c.Recovered {
			t.Fatalf("tick %d: alive = %d, expected %d", tick, c.Alive, c.Susceptible+c.Infected+c.Recovered)
		}

		for i := range next {
			before, after := prev[i], next[i]
			if before.Status.Terminal() && after.Status != before.Status {
				t.Fatalf("tick %d: agent %d left %s", tick, after.ID, before.Status.Kind)
			}

			if before.Status.Kind == epidemic.Susceptible && after.Status.Kind == epidemic.Infected {
				if after.Status.Since != tick {
					t.Errorf("tick %d: agent %d infected since %d", tick, after.ID, after.Status.Since)
				}
				if !hasSourceNear(prev, next, i) {
					t.Errorf("tick %d: agent %d infected with no source in range", tick, after.ID)
				}
			}

			if before.Status.Kind == epidemic.Infected && after.Status.Kind == epidemic.Recovered {
				if got := tick - before.Status.Since; got != params.LengthOfInfection+1 {
					t.Errorf("tick %d: agent %d recovered after %d ticks, expected %d",
						tick, after.ID, got, params.LengthOfInfection+1)
				}
			}
		}
		prev = next
	}
}

// hasSourceNear reports whether an agent that was Infected before the tick
// ended the tick within transmission range of agent i. Progression never
// moves anyone, so end-of-tick positions are the contact positions.
func hasSourceNear(prev, next epidemic.Population, i int) bool {
	for j := range next {
		if j == i || prev[j].Status.Kind != epidemic.Infected {
			continue
		}
		if next[j].Pos.Dist(next[i].Pos) <= epidemic.TransmissionRadius {
			return true
		}
	}
	return false
}

func TestRunIsDeterministicWithSeed(t *testing.T) {
	params := epidemic.DefaultParams()
	pop := canvasPopulation(t, 200, 160)

	a := newRun(t, pop, params, 99)
	b := newRun(t, pop, params, 99)
	for tick := 1; tick <= 150; tick++ {
		sa, sb := a.Tick(), b.Tick()
		for i := range sa {
			if sa[i] != sb[i] {
				t.Fatalf("tick %d: agent %d = %+v and %+v, expected identical", tick, i, sa[i], sb[i])
			}
		}
	}
}

func TestMortalityCalibration(t *testing.T) {
	params := epidemic.Params{Mortality: 40, Virality: 80, LengthOfInfection: 12, SocialDistancing: 0}
	pop := canvasPopulation(t, 160, 160)

	var infected, dead int
	for seed := int64(1); seed <= 100; seed++ {
		e := newRun(t, pop, params, seed)
		for n := 0; n < 2000 && !e.Extinct(); n++ {
			e.Tick()
		}
		c := e.Counts()
		infected += c.Dead + c.Recovered
		dead += c.Dead
	}
	if infected == 0 {
		t.Fatal("no infections across all runs")
	}

	// Newly infected agents face the hazard on their infection tick plus
	// LengthOfInfection+1 more, patient zero one tick fewer.
	h := params.DeathChancePerTick()
	expected := 1 - math.Pow(1-h, float64(params.LengthOfInfection+2))
	got := float64(dead) / float64(infected)
	if math.Abs(got-expected) > 0.06 {
		t.Errorf("death fraction = %.3f over %d infections, expected %.3f within 0.06", got, infected, expected)
	}
	if math.Abs(got-params.Mortality/100) > 0.1 {
		t.Errorf("death fraction = %.3f, expected near mortality %.2f", got, params.Mortality/100)
	}
}
