package epidemic

import (
	"math"
)

// DefaultSpacing is the distance between neighbouring agents in the
// initial layout.
const DefaultSpacing = 15.0

// layoutEpsilon absorbs float error so a row exactly N spacings wide still
// fits N agents.
const layoutEpsilon = 1e-9

// Region is the bounding box the initial population is laid out in.
type Region struct {
	Center Point
	Width  float64
	Height float64
}

// RegionForCanvas returns the layout region for a canvas of the given size:
// centred, inset by one spacing on each axis.
func RegionForCanvas(width, height, spacing float64) Region {
	return Region{
		Center: Point{X: width / 2, Y: height / 2},
		Width:  width - spacing,
		Height: height - spacing,
	}
}

// Generate lays out a fresh, all-Susceptible population in horizontal rows
// filling a roughly elliptical silhouette of the region.
//
// There are ceil(height/spacing) rows spread evenly from the top edge to the
// bottom edge. Row widths follow a triangular profile over the row index:
// spacing wide at the first and last row, the full width at the vertical
// centre. Each row holds floor(rowWidth/spacing) agents spread evenly from
// its left edge to its right edge.
func Generate(region Region, spacing float64) (Population, error) {
	if err := checkPositive("width", region.Width); err != nil {
		return nil, err
	}
	if err := checkPositive("height", region.Height); err != nil {
		return nil, err
	}
	if err := checkPositive("spacing", spacing); err != nil {
		return nil, err
	}

	rows := max(1, int(math.Ceil(region.Height/spacing-layoutEpsilon)))
	top := region.Center.Y - region.Height/2
	bottom := region.Center.Y + region.Height/2

	var pop Population
	for i := 0; i < rows; i++ {
		y := pointScale(i, rows, top, bottom)
		w := rowWidth(i, rows, region.Width, spacing)
		n := int(math.Floor(w/spacing + layoutEpsilon))
		left := region.Center.X - w/2
		right := region.Center.X + w/2
		for j := 0; j < n; j++ {
			pop = append(pop, Agent{
				ID:     nextAgentID(),
				Pos:    Point{X: pointScale(j, n, left, right), Y: y},
				Status: Status{Kind: Susceptible},
			})
		}
	}

	if len(pop) == 0 {
		return nil, &ConfigurationError{
			Field:  "region",
			Value:  region,
			Reason: "layout yields zero agents",
		}
	}
	return pop, nil
}

// rowWidth is the triangular width profile: spacing at both ends, full width
// at the middle row.
func rowWidth(i, rows int, width, spacing float64) float64 {
	if rows == 1 {
		return width
	}
	mid := float64(rows-1) / 2
	t := 1 - math.Abs(float64(i)-mid)/mid
	return spacing + (width-spacing)*t
}

// pointScale places point i of n evenly on [lo, hi], ends included.
// A single point sits at the midpoint.
func pointScale(i, n int, lo, hi float64) float64 {
	if n == 1 {
		return (lo + hi) / 2
	}
	return lo + float64(i)*(hi-lo)/float64(n-1)
}

func checkPositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return &ConfigurationError{Field: field, Value: v, Reason: "must be a positive finite number"}
	}
	return nil
}
