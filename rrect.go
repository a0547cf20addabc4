package picture

import "math"

// Radius is an elliptical corner radius.
type Radius struct {
	X, Y float64
}

// Circular returns a Radius with equal X and Y.
func Circular(r float64) Radius {
	return Radius{X: r, Y: r}
}

// RRect is a rectangle with independently rounded corners.
type RRect struct {
	Left, Top, Right, Bottom float64

	TopLeft, TopRight, BottomRight, BottomLeft Radius
}

// RRectFromRectXY creates an RRect whose four corners share the same
// elliptical radius.
func RRectFromRectXY(r Rect, rx, ry float64) RRect {
	rad := Radius{X: rx, Y: ry}
	return RRectFromRectAndCorners(r, rad, rad, rad, rad)
}

// RRectFromRectAndCorners creates an RRect with per-corner radii.
func RRectFromRectAndCorners(r Rect, topLeft, topRight, bottomRight, bottomLeft Radius) RRect {
	return RRect{
		Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom,
		TopLeft: topLeft, TopRight: topRight, BottomRight: bottomRight, BottomLeft: bottomLeft,
	}
}

// Outer returns the bounding rectangle.
func (rr RRect) Outer() Rect {
	return Rect{Left: rr.Left, Top: rr.Top, Right: rr.Right, Bottom: rr.Bottom}
}

// Width returns Right - Left.
func (rr RRect) Width() float64 { return rr.Right - rr.Left }

// Height returns Bottom - Top.
func (rr RRect) Height() float64 { return rr.Bottom - rr.Top }

// IsRect reports whether every corner radius is zero.
func (rr RRect) IsRect() bool {
	var zero Radius
	return rr.TopLeft == zero && rr.TopRight == zero && rr.BottomRight == zero && rr.BottomLeft == zero
}

// UniformRadii reports whether all four corners use the same circular
// radius. Backends that can only express a single border radius check this.
func (rr RRect) UniformRadii() bool {
	r := rr.TopLeft.X
	return rr.TopLeft.Y == r &&
		rr.TopRight.X == r && rr.TopRight.Y == r &&
		rr.BottomRight.X == r && rr.BottomRight.Y == r &&
		rr.BottomLeft.X == r && rr.BottomLeft.Y == r
}

// Shift returns the RRect translated by offset.
func (rr RRect) Shift(offset Point) RRect {
	out := rr
	out.Left += offset.X
	out.Right += offset.X
	out.Top += offset.Y
	out.Bottom += offset.Y
	return out
}

// Inflate returns the RRect grown by delta on every side. Radii grow by the
// same amount and never go below zero.
func (rr RRect) Inflate(delta float64) RRect {
	grow := func(r Radius) Radius {
		return Radius{X: math.Max(0, r.X+delta), Y: math.Max(0, r.Y+delta)}
	}
	return RRect{
		Left: rr.Left - delta, Top: rr.Top - delta, Right: rr.Right + delta, Bottom: rr.Bottom + delta,
		TopLeft: grow(rr.TopLeft), TopRight: grow(rr.TopRight),
		BottomRight: grow(rr.BottomRight), BottomLeft: grow(rr.BottomLeft),
	}
}

// ScaleRadii returns the RRect with all radii scaled down uniformly so that
// no two adjacent radii overlap along an edge.
func (rr RRect) ScaleRadii() RRect {
	w := math.Abs(rr.Width())
	h := math.Abs(rr.Height())
	scale := 1.0
	scale = minRadiusScale(scale, rr.BottomLeft.Y, rr.TopLeft.Y, h)
	scale = minRadiusScale(scale, rr.TopLeft.X, rr.TopRight.X, w)
	scale = minRadiusScale(scale, rr.TopRight.Y, rr.BottomRight.Y, h)
	scale = minRadiusScale(scale, rr.BottomRight.X, rr.BottomLeft.X, w)
	if scale >= 1 {
		return rr
	}
	mul := func(r Radius) Radius { return Radius{X: r.X * scale, Y: r.Y * scale} }
	out := rr
	out.TopLeft = mul(rr.TopLeft)
	out.TopRight = mul(rr.TopRight)
	out.BottomRight = mul(rr.BottomRight)
	out.BottomLeft = mul(rr.BottomLeft)
	return out
}

func minRadiusScale(current, r1, r2, limit float64) float64 {
	sum := r1 + r2
	if sum > limit && sum != 0 {
		return math.Min(current, limit/sum)
	}
	return current
}

// String returns the debug representation of the RRect.
func (rr RRect) String() string {
	s := "RRect(" + formatFixed(rr.Left) + ", " + formatFixed(rr.Top) + ", " +
		formatFixed(rr.Right) + ", " + formatFixed(rr.Bottom)
	if rr.UniformRadii() {
		return s + ", radius: " + formatFixed(rr.TopLeft.X) + ")"
	}
	corner := func(r Radius) string { return formatFixed(r.X) + "/" + formatFixed(r.Y) }
	return s + ", tl: " + corner(rr.TopLeft) + ", tr: " + corner(rr.TopRight) +
		", br: " + corner(rr.BottomRight) + ", bl: " + corner(rr.BottomLeft) + ")"
}
