// Package epidemic is the simulation engine: population layout, per-tick
// movement, proximity-based transmission and disease progression.
// It has no external dependencies (no Bubble Tea, no I/O) so the viewer,
// the headless runner and the tests all drive the same pure logic.
package epidemic

import (
	"math"
	"sync/atomic"
)

// AgentRadius is the visual/collision radius of one agent.
const AgentRadius = 5.0

// TransmissionRadius is the contact distance: two touching agents.
const TransmissionRadius = 2 * AgentRadius

// AgentID identifies an agent. IDs are unique within the process and never
// reused; they are not guaranteed to be the same across runs.
type AgentID uint64

var lastAgentID atomic.Uint64

// nextAgentID hands out a fresh AgentID.
func nextAgentID() AgentID {
	return AgentID(lastAgentID.Add(1))
}

// Point is a position in world units.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between two points.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// StatusKind is the disease state of an agent.
type StatusKind uint8

const (
	Susceptible StatusKind = iota
	Infected
	Recovered
	Dead
)

// String returns a human-readable name for the status.
func (k StatusKind) String() string {
	switch k {
	case Susceptible:
		return "Susceptible"
	case Infected:
		return "Infected"
	case Recovered:
		return "Recovered"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Status is an agent's disease state. Since holds the infection tick and is
// only meaningful for Infected.
type Status struct {
	Kind  StatusKind
	Since int
}

// InfectedSince builds an Infected status.
func InfectedSince(tick int) Status {
	return Status{Kind: Infected, Since: tick}
}

// Terminal reports whether the status can never change again.
// Recovered agents are permanently immune in this model.
func (s Status) Terminal() bool {
	return s.Kind == Dead || s.Kind == Recovered
}

// Agent is one simulated person.
type Agent struct {
	ID     AgentID
	Pos    Point
	Status Status
}

// Alive reports whether the agent has not died.
func (a Agent) Alive() bool {
	return a.Status.Kind != Dead
}

// Population is an ordered set of agents. The order carries no meaning for
// the model but is kept stable so renderers can rely on it.
//
// A Population placed in a snapshot is never written to again: every stage
// works on a Clone.
type Population []Agent

// Clone returns an independent copy. Agent holds no pointers, so a slice
// copy is a deep copy.
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	out := make(Population, len(p))
	copy(out, p)
	return out
}

// Counts holds aggregate totals over a population.
type Counts struct {
	Alive       int
	Susceptible int
	Infected    int
	Recovered   int
	Dead        int
}

// Total returns alive + dead, which always equals the population size.
func (c Counts) Total() int {
	return c.Alive + c.Dead
}

// Counts scans the population.
func (p Population) Counts() Counts {
	var c Counts
	for _, a := range p {
		switch a.Status.Kind {
		case Susceptible:
			c.Susceptible++
		case Infected:
			c.Infected++
		case Recovered:
			c.Recovered++
		case Dead:
			c.Dead++
		default:
			panic("epidemic: unknown status kind " + a.Status.Kind.String())
		}
	}
	c.Alive = c.Susceptible + c.Infected + c.Recovered
	return c
}

// Find returns the index of the agent with the given ID, or -1.
func (p Population) Find(id AgentID) int {
	for i := range p {
		if p[i].ID == id {
			return i
		}
	}
	return -1
}
