package epidemic

import "math"

// SpatialIndex answers proximity queries over the Susceptible agents of one
// tick. It is rebuilt every tick from the current positions.
type SpatialIndex interface {
	// FindNearestWithin returns a Susceptible agent within radius of p.
	// Which agent is returned when several qualify is not part of the
	// contract; callers must accept any match.
	FindNearestWithin(p Point, radius float64) (AgentID, bool)
}

type indexEntry struct {
	id  AgentID
	pos Point
}

type cellKey struct {
	X, Y int
}

// GridIndex buckets points into square cells so a radius query only visits
// the cells overlapping the query box.
type GridIndex struct {
	cellSize float64
	cells    map[cellKey][]indexEntry
	all      []indexEntry
}

// NewGridIndex indexes the Susceptible agents of pop. cellSize should be
// close to the typical query radius; non-positive values fall back to
// TransmissionRadius.
func NewGridIndex(pop Population, cellSize float64) *GridIndex {
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		cellSize = TransmissionRadius
	}
	g := &GridIndex{
		cellSize: cellSize,
		cells:    make(map[cellKey][]indexEntry),
	}
	for _, a := range pop {
		if a.Status.Kind != Susceptible {
			continue
		}
		e := indexEntry{id: a.ID, pos: a.Pos}
		k := g.keyFor(a.Pos)
		g.cells[k] = append(g.cells[k], e)
		g.all = append(g.all, e)
	}
	return g
}

// Len returns the number of indexed agents.
func (g *GridIndex) Len() int {
	return len(g.all)
}

func (g *GridIndex) keyFor(p Point) cellKey {
	return cellKey{
		X: int(math.Floor(p.X / g.cellSize)),
		Y: int(math.Floor(p.Y / g.cellSize)),
	}
}

// FindNearestWithin returns the closest indexed agent within radius of p.
// Cells are visited in a fixed order and entries in insertion order, so the
// result is reproducible for identical input; an exact-distance tie keeps
// the first candidate seen.
func (g *GridIndex) FindNearestWithin(p Point, radius float64) (AgentID, bool) {
	if len(g.all) == 0 || radius < 0 || math.IsNaN(radius) {
		return 0, false
	}
	// A query box covering more cells than there are points is cheaper as
	// a plain scan.
	span := (radius*2)/g.cellSize + 1
	if span*span > float64(len(g.all)) {
		return nearestOf(g.all, p, radius)
	}
	lo := g.keyFor(Point{X: p.X - radius, Y: p.Y - radius})
	hi := g.keyFor(Point{X: p.X + radius, Y: p.Y + radius})

	var (
		best     AgentID
		bestDist = math.Inf(1)
		found    bool
	)
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			for _, e := range g.cells[cellKey{X: cx, Y: cy}] {
				d := p.Dist(e.pos)
				if d <= radius && d < bestDist {
					best, bestDist, found = e.id, d, true
				}
			}
		}
	}
	return best, found
}

// ScanIndex is the naive O(n) index. It exists as the reference the grid is
// checked against and as a fallback for tiny populations.
type ScanIndex struct {
	entries []indexEntry
}

// NewScanIndex indexes the Susceptible agents of pop.
func NewScanIndex(pop Population) *ScanIndex {
	s := &ScanIndex{}
	for _, a := range pop {
		if a.Status.Kind == Susceptible {
			s.entries = append(s.entries, indexEntry{id: a.ID, pos: a.Pos})
		}
	}
	return s
}

// FindNearestWithin returns the closest indexed agent within radius of p.
func (s *ScanIndex) FindNearestWithin(p Point, radius float64) (AgentID, bool) {
	return nearestOf(s.entries, p, radius)
}

func nearestOf(entries []indexEntry, p Point, radius float64) (AgentID, bool) {
	var (
		best     AgentID
		bestDist = math.Inf(1)
		found    bool
	)
	for _, e := range entries {
		d := p.Dist(e.pos)
		if d <= radius && d < bestDist {
			best, bestDist, found = e.id, d, true
		}
	}
	return best, found
}
