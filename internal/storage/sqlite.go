// Package storage provides SQLite-based persistence for finished outbreak
// runs. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only the final tallies of a run are stored, never per-tick state.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/outbreak/internal/epidemic"
)

const timestampLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for outcome persistence.
type Store struct {
	db *sqlx.DB
}

// Outcome is the record of one finished run.
type Outcome struct {
	ID       int64
	RunID    string
	Scenario string
	Seed     int64
	Params   epidemic.Params

	Population   int
	Ticks        int
	PeakInfected int
	Final        epidemic.Counts

	CreatedAt time.Time
}

// CaseFatality returns dead / (dead + recovered), or 0 if nobody resolved.
func (o Outcome) CaseFatality() float64 {
	resolved := o.Final.Dead + o.Final.Recovered
	if resolved == 0 {
		return 0
	}
	return float64(o.Final.Dead) / float64(resolved)
}

// AttackRate returns the fraction of the population that was ever infected.
func (o Outcome) AttackRate() float64 {
	if o.Population == 0 {
		return 0
	}
	return float64(o.Population-o.Final.Susceptible) / float64(o.Population)
}

type outcomeRow struct {
	ID                int64   `db:"id"`
	RunID             string  `db:"run_id"`
	Scenario          string  `db:"scenario"`
	Seed              int64   `db:"seed"`
	Mortality         float64 `db:"mortality"`
	Virality          float64 `db:"virality"`
	LengthOfInfection int     `db:"length_of_infection"`
	SocialDistancing  float64 `db:"social_distancing"`
	Population        int     `db:"population"`
	Ticks             int     `db:"ticks"`
	PeakInfected      int     `db:"peak_infected"`
	Susceptible       int     `db:"susceptible"`
	Infected          int     `db:"infected"`
	Recovered         int     `db:"recovered"`
	Dead              int     `db:"dead"`
	CreatedAt         any     `db:"created_at"`
}

func rowFromOutcome(o Outcome) outcomeRow {
	return outcomeRow{
		RunID:             o.RunID,
		Scenario:          o.Scenario,
		Seed:              o.Seed,
		Mortality:         o.Params.Mortality,
		Virality:          o.Params.Virality,
		LengthOfInfection: o.Params.LengthOfInfection,
		SocialDistancing:  o.Params.SocialDistancing,
		Population:        o.Population,
		Ticks:             o.Ticks,
		PeakInfected:      o.PeakInfected,
		Susceptible:       o.Final.Susceptible,
		Infected:          o.Final.Infected,
		Recovered:         o.Final.Recovered,
		Dead:              o.Final.Dead,
	}
}

func (r outcomeRow) outcome() Outcome {
	final := epidemic.Counts{
		Susceptible: r.Susceptible,
		Infected:    r.Infected,
		Recovered:   r.Recovered,
		Dead:        r.Dead,
	}
	final.Alive = final.Susceptible + final.Infected + final.Recovered
	return Outcome{
		ID:       r.ID,
		RunID:    r.RunID,
		Scenario: r.Scenario,
		Seed:     r.Seed,
		Params: epidemic.Params{
			Mortality:         r.Mortality,
			Virality:          r.Virality,
			LengthOfInfection: r.LengthOfInfection,
			SocialDistancing:  r.SocialDistancing,
		},
		Population:   r.Population,
		Ticks:        r.Ticks,
		PeakInfected: r.PeakInfected,
		Final:        final,
		CreatedAt:    parseTimestamp(r.CreatedAt),
	}
}

// parseTimestamp handles both time.Time and string, depending on how the
// driver decoded the DATETIME column.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(timestampLayout, v); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timestampLayout, string(v)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			mortality REAL NOT NULL,
			virality REAL NOT NULL,
			length_of_infection INTEGER NOT NULL,
			social_distancing REAL NOT NULL,
			population INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			peak_infected INTEGER NOT NULL,
			susceptible INTEGER NOT NULL,
			infected INTEGER NOT NULL,
			recovered INTEGER NOT NULL,
			dead INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_outcomes_scenario ON outcomes(scenario);
		CREATE INDEX IF NOT EXISTS idx_outcomes_created ON outcomes(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveOutcome records a finished run. A missing RunID is filled with a new
// UUID. The stored record is returned with its ID set.
func (s *Store) SaveOutcome(o Outcome) (Outcome, error) {
	if o.RunID == "" {
		o.RunID = uuid.NewString()
	}
	if o.Final.Total() != o.Population {
		return Outcome{}, fmt.Errorf("storage: outcome %s counts %d agents, population is %d",
			o.RunID, o.Final.Total(), o.Population)
	}

	res, err := s.db.NamedExec(
		`INSERT INTO outcomes
		 (run_id, scenario, seed, mortality, virality, length_of_infection, social_distancing,
		  population, ticks, peak_infected, susceptible, infected, recovered, dead)
		 VALUES (:run_id, :scenario, :seed, :mortality, :virality, :length_of_infection, :social_distancing,
		  :population, :ticks, :peak_infected, :susceptible, :infected, :recovered, :dead)`,
		rowFromOutcome(o),
	)
	if err != nil {
		return Outcome{}, fmt.Errorf("storage: cannot save outcome: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Outcome{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	o.ID = id
	return o, nil
}

const selectOutcomes = `SELECT id, run_id, scenario, seed, mortality, virality, length_of_infection,
	social_distancing, population, ticks, peak_infected, susceptible, infected, recovered, dead, created_at
	FROM outcomes`

// RecentOutcomes retrieves the most recent outcomes across all scenarios.
func (s *Store) RecentOutcomes(limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []outcomeRow
	if err := s.db.Select(&rows, selectOutcomes+` ORDER BY created_at DESC, id DESC LIMIT ?`, limit); err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}
	return toOutcomes(rows), nil
}

// OutcomesForScenario retrieves the most recent outcomes of one scenario.
func (s *Store) OutcomesForScenario(scenario string, limit int) ([]Outcome, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []outcomeRow
	err := s.db.Select(&rows,
		selectOutcomes+` WHERE scenario = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcomes: %w", err)
	}
	return toOutcomes(rows), nil
}

// OutcomeByRunID retrieves one outcome. Returns nil, nil if not found.
func (s *Store) OutcomeByRunID(runID string) (*Outcome, error) {
	var row outcomeRow
	err := s.db.Get(&row, selectOutcomes+` WHERE run_id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query outcome: %w", err)
	}
	o := row.outcome()
	return &o, nil
}

func toOutcomes(rows []outcomeRow) []Outcome {
	out := make([]Outcome, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.outcome())
	}
	return out
}

// ClearOutcomes deletes all outcomes for the given scenario.
func (s *Store) ClearOutcomes(scenario string) error {
	_, err := s.db.Exec("DELETE FROM outcomes WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear outcomes: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario     string    `db:"scenario"`
	Runs         int       `db:"runs"`
	AvgTicks     float64   `db:"avg_ticks"`
	AvgPeak      float64   `db:"avg_peak"`
	TotalDead    int64     `db:"total_dead"`
	TotalResolve int64     `db:"total_resolved"`
	TotalInfect  int64     `db:"total_infected"`
	TotalPop     int64     `db:"total_population"`
	LastRunRaw   any       `db:"last_run"`
	LastRun      time.Time `db:"-"`
}

// CaseFatality is dead over resolved infections, pooled over all runs.
func (s ScenarioStats) CaseFatality() float64 {
	if s.TotalResolve == 0 {
		return 0
	}
	return float64(s.TotalDead) / float64(s.TotalResolve)
}

// AttackRate is the pooled fraction of agents ever infected.
func (s ScenarioStats) AttackRate() float64 {
	if s.TotalPop == 0 {
		return 0
	}
	return float64(s.TotalInfect) / float64(s.TotalPop)
}

const selectStats = `SELECT scenario,
	COUNT(*) AS runs,
	COALESCE(AVG(ticks), 0) AS avg_ticks,
	COALESCE(AVG(peak_infected), 0) AS avg_peak,
	COALESCE(SUM(dead), 0) AS total_dead,
	COALESCE(SUM(dead + recovered), 0) AS total_resolved,
	COALESCE(SUM(population - susceptible), 0) AS total_infected,
	COALESCE(SUM(population), 0) AS total_population,
	MAX(created_at) AS last_run
	FROM outcomes`

// GetScenarioStats retrieves aggregated statistics for one scenario.
// A scenario with no stored runs yields zero stats, not an error.
func (s *Store) GetScenarioStats(scenario string) (*ScenarioStats, error) {
	var stats []ScenarioStats
	if err := s.db.Select(&stats, selectStats+` WHERE scenario = ? GROUP BY scenario`, scenario); err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}
	if len(stats) == 0 {
		return &ScenarioStats{Scenario: scenario}, nil
	}
	st := stats[0]
	st.LastRun = parseTimestamp(st.LastRunRaw)
	return &st, nil
}

// GetAllScenarioStats retrieves statistics for every scenario with runs.
func (s *Store) GetAllScenarioStats() (map[string]*ScenarioStats, error) {
	var stats []ScenarioStats
	if err := s.db.Select(&stats, selectStats+` GROUP BY scenario`); err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	out := make(map[string]*ScenarioStats, len(stats))
	for i := range stats {
		st := stats[i]
		st.LastRun = parseTimestamp(st.LastRunRaw)
		out[st.Scenario] = &st
	}
	return out, nil
}
