package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/outbreak/internal/epidemic"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func finalCounts(s, i, r, d int) epidemic.Counts {
	return epidemic.Counts{Alive: s + i + r, Susceptible: s, Infected: i, Recovered: r, Dead: d}
}

func sampleOutcome(scenario string, dead, recovered int) Outcome {
	return Outcome{
		Scenario:     scenario,
		Seed:         7,
		Params:       epidemic.DefaultParams(),
		Population:   100,
		Ticks:        250,
		PeakInfected: 30,
		Final:        finalCounts(100-dead-recovered, 0, recovered, dead),
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "outcomes.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieveOutcome(t *testing.T) {
	store := openTestStore(t)

	saved, err := store.SaveOutcome(sampleOutcome("flu", 5, 60))
	if err != nil {
		t.Fatalf("SaveOutcome() failed: %v", err)
	}
	if saved.ID == 0 {
		t.Error("SaveOutcome() returned zero ID")
	}
	if saved.RunID == "" {
		t.Error("SaveOutcome() did not assign a run id")
	}

	got, err := store.OutcomeByRunID(saved.RunID)
	if err != nil {
		t.Fatalf("OutcomeByRunID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("OutcomeByRunID() = nil, expected the saved outcome")
	}
	if got.Scenario != "flu" || got.Seed != 7 || got.Ticks != 250 || got.PeakInfected != 30 {
		t.Errorf("OutcomeByRunID() = %+v, fields do not match", got)
	}
	if got.Params != epidemic.DefaultParams() {
		t.Errorf("Params = %+v, expected %+v", got.Params, epidemic.DefaultParams())
	}
	if got.Final != saved.Final {
		t.Errorf("Final = %+v, expected %+v", got.Final, saved.Final)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	missing, err := store.OutcomeByRunID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("OutcomeByRunID(missing) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestSaveOutcomeRejectsInconsistentCounts(t *testing.T) {
	store := openTestStore(t)

	o := sampleOutcome("flu", 5, 60)
	o.Population = 99
	if _, err := store.SaveOutcome(o); err == nil {
		t.Error("SaveOutcome() accepted counts that do not add up to the population")
	}
}

func TestOutcomeQueries(t *testing.T) {
	store := openTestStore(t)

	for _, o := range []Outcome{
		sampleOutcome("flu", 2, 40),
		sampleOutcome("plague", 50, 30),
		sampleOutcome("flu", 4, 60),
	} {
		if _, err := store.SaveOutcome(o); err != nil {
			t.Fatalf("SaveOutcome() failed: %v", err)
		}
	}

	recent, err := store.RecentOutcomes(2)
	if err != nil {
		t.Fatalf("RecentOutcomes() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentOutcomes(2) returned %d rows", len(recent))
	}
	if recent[0].ID < recent[1].ID {
		t.Errorf("RecentOutcomes() not newest first: ids %d, %d", recent[0].ID, recent[1].ID)
	}

	flu, err := store.OutcomesForScenario("flu", 0)
	if err != nil {
		t.Fatalf("OutcomesForScenario() failed: %v", err)
	}
	if len(flu) != 2 {
		t.Errorf("OutcomesForScenario(flu) returned %d rows, expected 2", len(flu))
	}
	for _, o := range flu {
		if o.Scenario != "flu" {
			t.Errorf("OutcomesForScenario(flu) returned scenario %q", o.Scenario)
		}
	}
}

func TestScenarioStats(t *testing.T) {
	store := openTestStore(t)

	for _, o := range []Outcome{
		sampleOutcome("flu", 2, 38),
		sampleOutcome("flu", 8, 52),
		sampleOutcome("plague", 50, 30),
	} {
		if _, err := store.SaveOutcome(o); err != nil {
			t.Fatalf("SaveOutcome() failed: %v", err)
		}
	}

	stats, err := store.GetScenarioStats("flu")
	if err != nil {
		t.Fatalf("GetScenarioStats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if got := stats.CaseFatality(); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("CaseFatality() = %v, expected 0.1", got)
	}
	// 40 + 60 of 200 agents were ever infected.
	if got := stats.AttackRate(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("AttackRate() = %v, expected 0.5", got)
	}
	if stats.AvgTicks != 250 {
		t.Errorf("AvgTicks = %v, expected 250", stats.AvgTicks)
	}
	if stats.LastRun.IsZero() {
		t.Error("LastRun was not populated")
	}

	empty, err := store.GetScenarioStats("measles")
	if err != nil {
		t.Fatalf("GetScenarioStats(empty) failed: %v", err)
	}
	if empty.Runs != 0 || empty.CaseFatality() != 0 {
		t.Errorf("GetScenarioStats(empty) = %+v, expected zero stats", empty)
	}

	all, err := store.GetAllScenarioStats()
	if err != nil {
		t.Fatalf("GetAllScenarioStats() failed: %v", err)
	}
	if len(all) != 2 || all["plague"] == nil || all["plague"].Runs != 1 {
		t.Errorf("GetAllScenarioStats() = %v, expected flu and plague", all)
	}
}

func TestClearOutcomes(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveOutcome(sampleOutcome("flu", 1, 10)); err != nil {
		t.Fatalf("SaveOutcome() failed: %v", err)
	}
	if _, err := store.SaveOutcome(sampleOutcome("plague", 1, 10)); err != nil {
		t.Fatalf("SaveOutcome() failed: %v", err)
	}

	if err := store.ClearOutcomes("flu"); err != nil {
		t.Fatalf("ClearOutcomes() failed: %v", err)
	}

	flu, _ := store.OutcomesForScenario("flu", 10)
	if len(flu) != 0 {
		t.Errorf("flu outcomes after clear = %d, expected 0", len(flu))
	}
	plague, _ := store.OutcomesForScenario("plague", 10)
	if len(plague) != 1 {
		t.Errorf("plague outcomes after clear = %d, expected 1", len(plague))
	}
}

func TestOutcomeRates(t *testing.T) {
	o := sampleOutcome("flu", 10, 30)
	if got := o.CaseFatality(); got != 0.25 {
		t.Errorf("CaseFatality() = %v, expected 0.25", got)
	}
	if got := o.AttackRate(); got != 0.4 {
		t.Errorf("AttackRate() = %v, expected 0.4", got)
	}
	if got := (Outcome{}).CaseFatality(); got != 0 {
		t.Errorf("empty CaseFatality() = %v, expected 0", got)
	}
}
