package picture

import (
	"math"
	"strconv"
)

// giantScalar bounds LargestRect. Coordinates beyond it are treated as
// unbounded by consumers that need finite numbers.
const giantScalar = 1e9

// Rect is an axis-aligned rectangle given by its four edges.
//
// A Rect whose Left is greater than Right (or Top greater than Bottom) is
// inverted. Inverted rects are legal values; IsEmpty reports true for them and
// Normalize swaps the edges back.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// LTRB creates a Rect from its edges.
func LTRB(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// LTWH creates a Rect from its top-left corner and size.
func LTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// LargestRect returns the giant rectangle used as the default maximum paint
// area of a recording.
func LargestRect() Rect {
	return Rect{Left: -giantScalar, Top: -giantScalar, Right: giantScalar, Bottom: giantScalar}
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// IsZero reports whether all edges are zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// Inflate returns the rectangle grown by delta on every side.
func (r Rect) Inflate(delta float64) Rect {
	return Rect{Left: r.Left - delta, Top: r.Top - delta, Right: r.Right + delta, Bottom: r.Bottom + delta}
}

// Shift returns the rectangle translated by offset.
func (r Rect) Shift(offset Point) Rect {
	return Rect{Left: r.Left + offset.X, Top: r.Top + offset.Y, Right: r.Right + offset.X, Bottom: r.Bottom + offset.Y}
}

// Intersect returns the overlap of r and o. The result may be empty (or
// inverted) when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
}

// Overlaps reports whether r and o share a region of non-zero area.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right <= o.Left || o.Right <= r.Left {
		return false
	}
	if r.Bottom <= o.Top || o.Bottom <= r.Top {
		return false
	}
	return true
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return r.Left <= o.Left && r.Top <= o.Top && r.Right >= o.Right && r.Bottom >= o.Bottom
}

// ContainsPoint reports whether p lies within r. The right and bottom edges
// are exclusive.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Normalize returns r with Left <= Right and Top <= Bottom.
func (r Rect) Normalize() Rect {
	return Rect{
		Left:   math.Min(r.Left, r.Right),
		Top:    math.Min(r.Top, r.Bottom),
		Right:  math.Max(r.Left, r.Right),
		Bottom: math.Max(r.Top, r.Bottom),
	}
}

// String returns the debug representation of the rectangle.
func (r Rect) String() string {
	return "Rect(" + formatFixed(r.Left) + ", " + formatFixed(r.Top) + ", " +
		formatFixed(r.Right) + ", " + formatFixed(r.Bottom) + ")"
}

// formatFixed formats v with one decimal, the precision used by all debug
// representations in this module.
func formatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
