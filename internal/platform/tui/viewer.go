package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/outbreak/internal/config"
	"github.com/vovakirdan/outbreak/internal/core"
	"github.com/vovakirdan/outbreak/internal/epidemic"
	"github.com/vovakirdan/outbreak/internal/logging"
	"github.com/vovakirdan/outbreak/internal/registry"
	"github.com/vovakirdan/outbreak/internal/runner"
	"github.com/vovakirdan/outbreak/internal/storage"
)

// paramSpec describes one parameter the viewer can edit while idle.
type paramSpec struct {
	label  string
	unit   string
	step   float64
	lo, hi float64
	get    func(config.SimulationConfig) float64
	set    func(*config.SimulationConfig, float64)
}

var paramSpecs = []paramSpec{
	{
		label: "Mortality", unit: "%", step: 1, lo: 0, hi: 100,
		get: func(c config.SimulationConfig) float64 { return c.Mortality },
		set: func(c *config.SimulationConfig, v float64) { c.Mortality = v },
	},
	{
		label: "Virality", unit: "%", step: 5, lo: 0, hi: 100,
		get: func(c config.SimulationConfig) float64 { return c.Virality },
		set: func(c *config.SimulationConfig, v float64) { c.Virality = v },
	},
	{
		label: "Length", unit: "t", step: 1, lo: 1, hi: 200,
		get: func(c config.SimulationConfig) float64 { return float64(c.LengthOfInfection) },
		set: func(c *config.SimulationConfig, v float64) { c.LengthOfInfection = int(v) },
	},
	{
		label: "Distancing", unit: "%", step: 5, lo: 0, hi: 100,
		get: func(c config.SimulationConfig) float64 { return c.SocialDistancing },
		set: func(c *config.SimulationConfig, v float64) { c.SocialDistancing = v },
	},
}

// ParamView is one editable parameter as shown in the HUD.
type ParamView struct {
	Label    string
	Value    string
	Selected bool
}

// ViewerOptions carry what every viewer session shares: where the
// configuration comes from, the seed and tick rate overrides, and where
// finished runs are recorded.
type ViewerOptions struct {
	ConfigPath string
	Seed       int64 // 0 = new seed per population
	TickRate   int   // 0 = config pace
	Store      *storage.Store
	Logger     *log.Logger
}

// Controller creates the viewer controller for a scenario. An empty id
// runs the loaded configuration as is.
func (o ViewerOptions) Controller(scenario string) (*Controller, error) {
	cfg, err := registry.Resolve(scenario, o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.TickRate > 0 {
		cfg.Viewer.TickRate = o.TickRate
	}
	return NewController(cfg, scenario, o.Seed, o.Store, o.Logger)
}

// Controller is the terminal-independent part of the viewer: it owns the
// engine, turns actions into engine calls and paces ticks from elapsed
// wall time. Model drives it from Bubble Tea messages.
type Controller struct {
	cfg      config.OutbreakConfig
	scenario string
	seed     int64
	store    *storage.Store
	logger   *log.Logger

	engine  *epidemic.Engine
	runSeed int64
	paused  bool
	cursor  int
	clock   time.Duration // running time the tick target is derived from
	peak    int
	saved   bool
	notice  string
}

// NewController validates cfg and builds an idle engine over a fresh
// population.
func NewController(cfg config.OutbreakConfig, scenario string, seed int64, store *storage.Store, logger *log.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if scenario == "" {
		scenario = registry.CustomScenario
	}
	if cfg.Simulation.Reinfectability > 0 {
		logger.Warn("reinfectability is not modelled; recovered agents stay immune",
			"reinfectability", cfg.Simulation.Reinfectability)
	}
	c := &Controller{
		cfg:      cfg,
		scenario: scenario,
		seed:     seed,
		store:    store,
		logger:   logger,
	}
	if err := c.rebuild(); err != nil {
		return nil, err
	}
	return c, nil
}

// rebuild replaces the engine with an idle one over a new population.
func (c *Controller) rebuild() error {
	e, seed, err := runner.NewEngine(c.cfg, c.seed)
	if err != nil {
		return err
	}
	c.engine = e
	c.runSeed = seed
	c.paused = false
	c.clock = 0
	c.peak = 0
	c.saved = false
	return nil
}

// Apply performs a viewer action. Parameter edits are only honoured while
// the engine is idle. Quit, Back and Screenshot belong to the terminal
// layer and are ignored here.
func (c *Controller) Apply(a core.Action) {
	idle := c.engine.State() == epidemic.StateIdle

	switch a {
	case core.ActionStart:
		if !idle {
			return
		}
		if err := c.engine.Start(); err != nil {
			c.notice = err.Error()
			return
		}
		c.peak = c.engine.Counts().Infected
		c.notice = ""
		c.logger.Info("run started", "scenario", c.scenario, "seed", c.runSeed, "population", c.engine.Size())

	case core.ActionPause:
		if !idle {
			c.paused = !c.paused
		}

	case core.ActionRestart:
		if err := c.rebuild(); err != nil {
			c.notice = err.Error()
			return
		}
		c.notice = ""

	case core.ActionNextParam:
		if idle {
			c.cursor = (c.cursor + 1) % len(paramSpecs)
		}

	case core.ActionPrevParam:
		if idle {
			c.cursor = (c.cursor - 1 + len(paramSpecs)) % len(paramSpecs)
		}

	case core.ActionIncrease, core.ActionDecrease:
		if !idle {
			return
		}
		spec := paramSpecs[c.cursor]
		step := spec.step
		if a == core.ActionDecrease {
			step = -step
		}
		v := core.ClampF(spec.get(c.cfg.Simulation)+step, spec.lo, spec.hi)
		spec.set(&c.cfg.Simulation, v)
		if err := c.rebuild(); err != nil {
			c.notice = err.Error()
		}

	case core.ActionPace:
		tick := c.engine.TickCount()
		config.ApplyPace(&c.cfg, config.NextPace(c.Pace()))
		c.clock = c.clockFor(tick)
	}
}

// Advance adds elapsed wall time to the run clock and ticks the engine up
// to the matching logical tick. If the engine falls more than MaxCatchUp
// ticks behind, the backlog is dropped rather than replayed.
func (c *Controller) Advance(elapsed time.Duration) {
	if c.engine.State() != epidemic.StateRunning || c.paused || elapsed <= 0 {
		return
	}
	rate := c.TickRate()
	c.clock += elapsed
	target := int(math.Round(c.clock.Seconds() * float64(rate)))

	c.engine.AdvanceTo(target)
	if target-c.engine.TickCount() > epidemic.MaxCatchUp {
		c.clock = c.clockFor(c.engine.TickCount())
	}

	if n := c.engine.Counts().Infected; n > c.peak {
		c.peak = n
	}
	c.recordOutcome()
}

func (c *Controller) clockFor(tick int) time.Duration {
	return time.Duration(float64(tick) / float64(c.TickRate()) * float64(time.Second))
}

// recordOutcome saves the run once, the first time the outbreak is over.
func (c *Controller) recordOutcome() {
	if c.saved || c.engine.TickCount() == 0 || !c.engine.Extinct() {
		return
	}
	c.saved = true
	final := c.engine.Counts()
	c.notice = fmt.Sprintf("outbreak over at tick %d", c.engine.TickCount())
	c.logger.Info("outbreak over",
		"scenario", c.scenario,
		"seed", c.runSeed,
		"ticks", c.engine.TickCount(),
		"dead", final.Dead,
		"recovered", final.Recovered,
	)
	if c.store == nil {
		return
	}
	if _, err := c.store.SaveOutcome(c.Outcome()); err != nil {
		c.logger.Warn("could not save outcome", "error", err)
	}
}

// Outcome describes the current run as a storage record.
func (c *Controller) Outcome() storage.Outcome {
	return storage.Outcome{
		Scenario:     c.scenario,
		Seed:         c.runSeed,
		Params:       c.engine.Params(),
		Population:   c.engine.Size(),
		Ticks:        c.engine.TickCount(),
		PeakInfected: c.peak,
		Final:        c.engine.Counts(),
	}
}

// Params lists the editable parameters with their current values.
func (c *Controller) Params() []ParamView {
	out := make([]ParamView, len(paramSpecs))
	for i, spec := range paramSpecs {
		out[i] = ParamView{
			Label:    spec.label,
			Value:    fmt.Sprintf("%g%s", spec.get(c.cfg.Simulation), spec.unit),
			Selected: i == c.cursor,
		}
	}
	return out
}

// TickRate returns the ticks per second the viewer schedules.
func (c *Controller) TickRate() int {
	return c.cfg.Viewer.EffectiveTickRate()
}

// Pace returns the active pace preset.
func (c *Controller) Pace() config.PacePreset {
	if c.cfg.Viewer.Pace == "" {
		return config.PaceNormal
	}
	return c.cfg.Viewer.Pace
}

// Snapshot returns the current population.
func (c *Controller) Snapshot() epidemic.Population { return c.engine.Snapshot() }

// Counts returns aggregate totals of the current population.
func (c *Controller) Counts() epidemic.Counts { return c.engine.Counts() }

// TickCount returns the engine's logical tick.
func (c *Controller) TickCount() int { return c.engine.TickCount() }

// State returns the engine's run state.
func (c *Controller) State() epidemic.State { return c.engine.State() }

// Paused reports whether ticking is suspended.
func (c *Controller) Paused() bool { return c.paused }

// Saved reports whether the current run's outcome has been recorded.
func (c *Controller) Saved() bool { return c.saved }

// Scenario returns the scenario id outcomes are stored under.
func (c *Controller) Scenario() string { return c.scenario }

// Seed returns the seed of the current population and run.
func (c *Controller) Seed() int64 { return c.runSeed }

// Notice returns the last message for the status line, if any.
func (c *Controller) Notice() string { return c.notice }

// Config returns the configuration including idle edits.
func (c *Controller) Config() config.OutbreakConfig { return c.cfg }
