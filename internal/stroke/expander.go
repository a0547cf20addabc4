package stroke

import (
	"math"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/path"
)

// Stroke defines the style for stroke expansion. Width is in the same
// coordinate space as the polylines.
type Stroke struct {
	Width      float64
	Cap        picture.StrokeCap
	Join       picture.StrokeJoin
	MiterLimit float64
}

// DefaultStroke returns a one unit wide butt-capped stroke with miter joins.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        picture.StrokeCapButt,
		Join:       picture.StrokeJoinMiter,
		MiterLimit: 4.0,
	}
}

// FromPaint returns the stroke style of p scaled into device space by
// scale.
func FromPaint(p picture.Paint, scale float64) Stroke {
	return Stroke{
		Width:      p.StrokeWidth * scale,
		Cap:        p.StrokeCap,
		Join:       p.StrokeJoin,
		MiterLimit: 4.0,
	}
}

// StrokeExpander converts polylines to fill polygons.
type StrokeExpander struct {
	style     Stroke
	tolerance float64
	out       [][]picture.Point
}

// NewStrokeExpander creates a new stroke expander with the given style.
func NewStrokeExpander(style Stroke) *StrokeExpander {
	return &StrokeExpander{
		style:     style,
		tolerance: path.Tolerance,
	}
}

// SetTolerance sets the maximum deviation of round caps and joins from a
// true circle.
func (e *StrokeExpander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the polygons covering the stroke of lines. The polygons
// all have negative signed area (clockwise in a y-down space).
func (e *StrokeExpander) Expand(lines []path.Polyline) [][]picture.Point {
	e.out = nil
	if e.style.Width <= 0 {
		return nil
	}
	for _, l := range lines {
		e.polyline(l)
	}
	return e.out
}

func (e *StrokeExpander) polyline(l path.Polyline) {
	pts := dedupe(l.Points)
	if l.Closed && len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	hw := e.style.Width / 2
	if len(pts) == 1 {
		// A zero-length stroke only shows its caps.
		switch e.style.Cap {
		case picture.StrokeCapRound:
			e.emit(e.disc(pts[0], hw))
		case picture.StrokeCapSquare:
			p := pts[0]
			e.emit([]picture.Point{
				picture.Pt(p.X-hw, p.Y-hw), picture.Pt(p.X+hw, p.Y-hw),
				picture.Pt(p.X+hw, p.Y+hw), picture.Pt(p.X-hw, p.Y+hw),
			})
		}
		return
	}
	if len(pts) < 2 {
		return
	}

	n := len(pts)
	segments := n - 1
	if l.Closed && n > 2 {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := pts[i], pts[(i+1)%n]
		nv := normal(a, b, hw)
		e.emit([]picture.Point{a.Add(nv), b.Add(nv), b.Sub(nv), a.Sub(nv)})
	}

	if l.Closed && n > 2 {
		for i := 0; i < n; i++ {
			e.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n], hw)
		}
		return
	}
	for i := 1; i < n-1; i++ {
		e.join(pts[i-1], pts[i], pts[i+1], hw)
	}
	e.cap(pts[1], pts[0], hw)
	e.cap(pts[n-2], pts[n-1], hw)
}

// join covers the outer corner at v between segments prev→v and v→next.
func (e *StrokeExpander) join(prev, v, next picture.Point, hw float64) {
	din, dout := v.Sub(prev), next.Sub(v)
	cross := din.X*dout.Y - din.Y*dout.X
	if math.Abs(cross) < 1e-12 && din.X*dout.X+din.Y*dout.Y > 0 {
		return
	}
	if e.style.Join == picture.StrokeJoinRound {
		e.emit(e.disc(v, hw))
		return
	}
	nin, nout := normal(prev, v, hw), normal(v, next, hw)
	if cross > 0 {
		nin, nout = nin.Mul(-1), nout.Mul(-1)
	}
	if e.style.Join == picture.StrokeJoinMiter {
		if denom := hw*hw + nin.X*nout.X + nin.Y*nout.Y; denom > 1e-12 {
			tip := nin.Add(nout).Mul(hw * hw / denom)
			if math.Hypot(tip.X, tip.Y) <= e.style.MiterLimit*hw {
				e.emit([]picture.Point{v, v.Add(nin), v.Add(tip), v.Add(nout)})
				return
			}
		}
	}
	e.emit([]picture.Point{v, v.Add(nin), v.Add(nout)})
}

// cap covers the end at p of the segment from prev to p.
func (e *StrokeExpander) cap(prev, p picture.Point, hw float64) {
	switch e.style.Cap {
	case picture.StrokeCapRound:
		e.emit(e.disc(p, hw))
	case picture.StrokeCapSquare:
		nv := normal(prev, p, hw)
		ext := picture.Pt(nv.Y, -nv.X) // along prev→p, length hw
		e.emit([]picture.Point{p.Add(nv), p.Add(nv).Add(ext), p.Sub(nv).Add(ext), p.Sub(nv)})
	}
}

func (e *StrokeExpander) disc(c picture.Point, r float64) []picture.Point {
	n := 8
	if r > e.tolerance {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-e.tolerance/r))))
	}
	n = min(n, 512)
	pts := make([]picture.Point, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = picture.Pt(c.X+r*cos, c.Y+r*sin)
	}
	return pts
}

// emit appends poly, reversed if needed so its signed area is negative.
func (e *StrokeExpander) emit(poly []picture.Point) {
	area := SignedArea(poly)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area > 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	e.out = append(e.out, poly)
}

// SignedArea returns the shoelace area of poly.
func SignedArea(poly []picture.Point) float64 {
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// normal returns the left normal of a→b with length hw.
func normal(a, b picture.Point, hw float64) picture.Point {
	d := b.Sub(a)
	l := math.Hypot(d.X, d.Y)
	return picture.Pt(-d.Y/l*hw, d.X/l*hw)
}

func dedupe(pts []picture.Point) []picture.Point {
	out := make([]picture.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) == 0 || out[len(out)-1] != p {
			out = append(out, p)
		}
	}
	return out
}
