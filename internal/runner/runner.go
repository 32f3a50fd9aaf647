// Package runner drives the engine without a terminal: single runs to
// extinction or a tick cap, and seed sweeps for calibration.
package runner

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/outbreak/internal/config"
	"github.com/vovakirdan/outbreak/internal/epidemic"
	"github.com/vovakirdan/outbreak/internal/logging"
	"github.com/vovakirdan/outbreak/internal/storage"
)

// DefaultMaxTicks bounds a run whose configuration sets no cap.
const DefaultMaxTicks = 10000

// Sample is the aggregate state after one tick.
type Sample struct {
	Tick   int
	Counts epidemic.Counts
}

// Options control a single run.
type Options struct {
	Scenario string
	Seed     int64 // 0 = derive from the clock
	MaxTicks int   // 0 = config viewer.max_ticks, then DefaultMaxTicks

	// Observer, if set, is called after Start (tick 0) and after every tick.
	Observer func(Sample)

	Logger *log.Logger
}

// Result is the outcome of one run with its full curve.
type Result struct {
	Scenario     string
	Seed         int64
	Params       epidemic.Params
	Population   int
	Ticks        int
	PeakInfected int
	PeakTick     int
	Final        epidemic.Counts
	Extinct      bool
	Curve        []Sample
}

// Outcome converts the result into a storage record.
func (r Result) Outcome() storage.Outcome {
	return storage.Outcome{
		Scenario:     r.Scenario,
		Seed:         r.Seed,
		Params:       r.Params,
		Population:   r.Population,
		Ticks:        r.Ticks,
		PeakInfected: r.PeakInfected,
		Final:        r.Final,
	}
}

// NewEngine generates the population for cfg and builds an engine seeded
// with seed. It returns the effective seed, which differs from seed only
// when seed is 0.
func NewEngine(cfg config.OutbreakConfig, seed int64) (*epidemic.Engine, int64, error) {
	if seed == 0 {
		seed = epidemic.NewSource(0).Int63()
	}
	pop, err := epidemic.Generate(cfg.Population.Region(), cfg.Population.Spacing)
	if err != nil {
		return nil, seed, err
	}
	e, err := epidemic.New(pop, cfg.Simulation.Params(), epidemic.NewSource(seed))
	if err != nil {
		return nil, seed, err
	}
	return e, seed, nil
}

// Run plays one outbreak until no agent is infected or the tick cap is hit.
// The context is checked between ticks.
func Run(ctx context.Context, cfg config.OutbreakConfig, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if cfg.Simulation.Reinfectability > 0 {
		logger.Warn("reinfectability is not modelled; recovered agents stay immune",
			"reinfectability", cfg.Simulation.Reinfectability)
	}

	maxTicks := opts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = cfg.Viewer.MaxTicks
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	e, seed, err := NewEngine(cfg, opts.Seed)
	if err != nil {
		return Result{}, err
	}
	if err := e.Start(); err != nil {
		return Result{}, err
	}

	res := Result{
		Scenario:   opts.Scenario,
		Seed:       seed,
		Params:     e.Params(),
		Population: e.Size(),
	}
	record := func() {
		s := Sample{Tick: e.TickCount(), Counts: e.Counts()}
		res.Curve = append(res.Curve, s)
		if s.Counts.Infected > res.PeakInfected {
			res.PeakInfected = s.Counts.Infected
			res.PeakTick = s.Tick
		}
		if opts.Observer != nil {
			opts.Observer(s)
		}
	}

	logger.Debug("run started", "scenario", opts.Scenario, "seed", seed, "population", e.Size())
	record()
	for !e.Extinct() && e.TickCount() < maxTicks {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("runner: run interrupted at tick %d: %w", e.TickCount(), err)
		}
		e.Tick()
		record()
	}

	res.Ticks = e.TickCount()
	res.Final = e.Counts()
	res.Extinct = e.Extinct()
	logger.Debug("run finished",
		"scenario", opts.Scenario,
		"seed", seed,
		"ticks", res.Ticks,
		"dead", res.Final.Dead,
		"recovered", res.Final.Recovered,
		"extinct", res.Extinct,
	)
	return res, nil
}
