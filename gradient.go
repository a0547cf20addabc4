package picture

import (
	"math"
	"sort"
)

// Shader computes the source color of a paint per point. Coordinates are in
// the local space of the draw call, before the canvas transform.
//
// Shaders are shared read-only: a recording keeps a reference and may sample
// it during every Apply.
type Shader interface {
	ColorAt(x, y float64) Color
}

// TileMode defines how gradients extend beyond their defined range.
type TileMode uint8

const (
	// TileModeClamp extends the edge colors.
	TileModeClamp TileMode = iota
	// TileModeRepeated repeats the gradient.
	TileModeRepeated
	// TileModeMirror repeats the gradient, reversing every other copy.
	TileModeMirror
)

// ColorStop is a color at a position in [0, 1] along a gradient.
type ColorStop struct {
	Offset float64
	Color  Color
}

// LinearGradient transitions between colors along the line From→To.
type LinearGradient struct {
	From, To Point
	Stops    []ColorStop
	Tile     TileMode
}

// NewLinearGradient creates a linear gradient with evenly spaced stops.
func NewLinearGradient(from, to Point, colors ...Color) *LinearGradient {
	return &LinearGradient{From: from, To: to, Stops: evenStops(colors)}
}

// ColorAt implements Shader.
func (g *LinearGradient) ColorAt(x, y float64) Color {
	dx := g.To.X - g.From.X
	dy := g.To.Y - g.From.Y
	lengthSq := dx*dx + dy*dy
	if lengthSq == 0 {
		return colorAtOffset(g.Stops, 0, g.Tile)
	}
	t := ((x-g.From.X)*dx + (y-g.From.Y)*dy) / lengthSq
	return colorAtOffset(g.Stops, t, g.Tile)
}

// RadialGradient transitions between colors from Center outwards to Radius.
type RadialGradient struct {
	Center Point
	Radius float64
	Stops  []ColorStop
	Tile   TileMode
}

// NewRadialGradient creates a radial gradient with evenly spaced stops.
func NewRadialGradient(center Point, radius float64, colors ...Color) *RadialGradient {
	return &RadialGradient{Center: center, Radius: radius, Stops: evenStops(colors)}
}

// ColorAt implements Shader.
func (g *RadialGradient) ColorAt(x, y float64) Color {
	if g.Radius <= 0 {
		return colorAtOffset(g.Stops, 1, g.Tile)
	}
	t := math.Hypot(x-g.Center.X, y-g.Center.Y) / g.Radius
	return colorAtOffset(g.Stops, t, g.Tile)
}

func evenStops(colors []Color) []ColorStop {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		offset := 0.0
		if len(colors) > 1 {
			offset = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Offset: offset, Color: c}
	}
	return stops
}

// applyTileMode maps t into [0, 1].
func applyTileMode(t float64, mode TileMode) float64 {
	switch mode {
	case TileModeRepeated:
		t -= math.Floor(t)
	case TileModeMirror:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = math.Max(0, math.Min(1, t))
	}
	return t
}

// colorAtOffset returns the interpolated color at t.
func colorAtOffset(stops []ColorStop, t float64, mode TileMode) Color {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}
	sorted := stops
	if !sort.SliceIsSorted(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset }) {
		sorted = make([]ColorStop, len(stops))
		copy(sorted, stops)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	}

	t = applyTileMode(t, mode)
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].Offset >= t })
	if idx == 0 {
		return sorted[0].Color
	}
	if idx >= len(sorted) {
		return sorted[len(sorted)-1].Color
	}
	s1, s2 := sorted[idx-1], sorted[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return LerpColor(s1.Color, s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}
