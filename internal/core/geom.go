// Package core provides the rendering primitives of the outbreak viewer: a
// colored character buffer and the mapping from world units to cells.
// It contains no external dependencies (especially no Bubble Tea) so it can
// be tested without a terminal.
package core

import "math"

// Rect represents an axis-aligned rectangle of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Viewport maps a world of WorldW x WorldH units onto a rectangle of cells.
// Agents wander, so points outside the world are reported as not visible
// rather than clamped to the border.
type Viewport struct {
	WorldW, WorldH float64
	Cells          Rect
}

// Project returns the cell for world point (x, y) and whether it falls
// inside the viewport.
func (v Viewport) Project(x, y float64) (cx, cy int, ok bool) {
	if v.WorldW <= 0 || v.WorldH <= 0 || v.Cells.W <= 0 || v.Cells.H <= 0 {
		return 0, 0, false
	}
	fx := math.Floor(x / v.WorldW * float64(v.Cells.W))
	fy := math.Floor(y / v.WorldH * float64(v.Cells.H))
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	cx, cy = v.Cells.X+int(fx), v.Cells.Y+int(fy)
	return cx, cy, v.Cells.Contains(cx, cy)
}
