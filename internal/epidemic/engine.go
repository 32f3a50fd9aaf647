package epidemic

import "fmt"

// State is the run state of an Engine.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// MaxCatchUp bounds how many ticks a single AdvanceTo call may run, so a
// stalled scheduler does not freeze the caller while it catches up.
const MaxCatchUp = 8

// Engine owns one run: the current population snapshot, the parameters and
// the tick counter. It is not safe for concurrent use; the scheduler that
// calls Tick is expected to be the only caller.
type Engine struct {
	params Params
	rng    RandomSource
	pop    Population
	size   int
	tick   int
	state  State
}

// New creates an idle engine over pop. The population is copied, so the
// caller may keep using its slice. A nil rng falls back to a time-seeded
// source.
func New(pop Population, params Params, rng RandomSource) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := checkUniqueIDs(pop); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSource(0)
	}
	return &Engine{
		params: params,
		rng:    rng,
		pop:    pop.Clone(),
		size:   len(pop),
		state:  StateIdle,
	}, nil
}

// Start seeds the outbreak by infecting one uniformly chosen agent and
// resets the tick counter. There is no way back to Idle: to change
// parameters or restart, build a new Engine.
func (e *Engine) Start() error {
	if e.state == StateRunning {
		return &InvalidStateError{Op: "start", State: e.state, Reason: "run already in progress"}
	}
	if len(e.pop) == 0 {
		return &InvalidStateError{Op: "start", State: e.state, Reason: "population is empty"}
	}
	next := e.pop.Clone()
	patientZero := e.rng.Intn(len(next))
	next[patientZero].Status = InfectedSince(0)

	e.pop = next
	e.tick = 0
	e.state = StateRunning
	return nil
}

// Tick advances a running simulation by one step: Movement, then
// Infection against a fresh index of the moved population, then
// Progression. The new snapshot is published only once all three stages
// have run. While Idle, Tick changes nothing and returns the current
// snapshot.
func (e *Engine) Tick() Population {
	if e.state != StateRunning {
		return e.Snapshot()
	}
	tick := e.tick + 1

	moved := Move(e.pop, e.params.SocialDistancing, e.rng)
	index := NewGridIndex(moved, TransmissionRadius)
	infected := Infect(moved, index, tick, e.params.Virality, e.rng)
	next := Progress(infected, tick, e.params.Mortality, e.params.LengthOfInfection, e.rng)

	mustBeValidTransition(e.pop, next)

	e.pop = next
	e.tick = tick
	return e.Snapshot()
}

// AdvanceTo runs ticks until the tick counter reaches target, running at
// most MaxCatchUp ticks per call. Schedulers that derive target from
// elapsed wall time get uneven real-time pacing while the model keeps
// counting logical ticks.
func (e *Engine) AdvanceTo(target int) Population {
	for n := 0; e.state == StateRunning && e.tick < target && n < MaxCatchUp; n++ {
		e.Tick()
	}
	return e.Snapshot()
}

// Snapshot returns a copy of the current population. Later ticks never
// modify a returned snapshot.
func (e *Engine) Snapshot() Population {
	return e.pop.Clone()
}

// Counts returns aggregate totals for the current population.
func (e *Engine) Counts() Counts {
	return e.pop.Counts()
}

// Extinct reports whether no agent is currently infected. Callers use it
// as the natural place to stop ticking; the engine itself never stops.
func (e *Engine) Extinct() bool {
	for _, a := range e.pop {
		if a.Status.Kind == Infected {
			return false
		}
	}
	return true
}

// State returns the current run state.
func (e *Engine) State() State {
	return e.state
}

// TickCount returns the logical tick counter.
func (e *Engine) TickCount() int {
	return e.tick
}

// Params returns the run parameters.
func (e *Engine) Params() Params {
	return e.params
}

// Size returns the initial population size.
func (e *Engine) Size() int {
	return e.size
}

func checkUniqueIDs(pop Population) error {
	seen := make(map[AgentID]struct{}, len(pop))
	for _, a := range pop {
		if _, dup := seen[a.ID]; dup {
			return &ConfigurationError{Field: "population", Value: a.ID, Reason: "duplicate agent id"}
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

// mustBeValidTransition panics when a tick broke a model invariant. Such a
// failure is a programming defect, so it aborts before the snapshot is
// published rather than being reported as an error.
func mustBeValidTransition(prev, next Population) {
	if len(prev) != len(next) {
		panic(fmt.Sprintf("epidemic: population size changed from %d to %d", len(prev), len(next)))
	}
	for i := range prev {
		before, after := prev[i], next[i]
		if before.ID != after.ID {
			panic(fmt.Sprintf("epidemic: agent %d replaced by %d at index %d", before.ID, after.ID, i))
		}
		if before.Status.Terminal() && after.Status != before.Status {
			panic(fmt.Sprintf("epidemic: agent %d left terminal status %s", before.ID, before.Status.Kind))
		}
		if !before.Alive() && after.Pos != before.Pos {
			panic(fmt.Sprintf("epidemic: dead agent %d moved", before.ID))
		}
	}
}
