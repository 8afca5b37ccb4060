// Package geom provides the point, size, and rectangle primitives shared by
// the grid layout and the overlay's local-to-global coordinate conversions.
// All values are in pixels; rectangles are axis-aligned and anchored at
// their top-left corner.
package geom

// Point is a position in window-local or global screen coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// IsZero returns true when both dimensions are zero.
func (s Size) IsZero() bool {
	return s.W == 0 && s.H == 0
}

// Rect is an axis-aligned rectangle anchored at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// NewRect constructs a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectOfSize returns a rectangle of the given size anchored at the origin.
func RectOfSize(s Size) Rect {
	return Rect{W: s.W, H: s.H}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Contains reports whether p lies inside the rectangle. Points on the top
// or left edge are inside; points on the bottom or right edge are not, so
// adjacent cells never share a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Translate returns the rectangle shifted by the given offset.
func (r Rect) Translate(by Point) Rect {
	return Rect{X: r.X + by.X, Y: r.Y + by.Y, W: r.W, H: r.H}
}
