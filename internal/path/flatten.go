// Package path flattens picture paths into device-space polylines for the
// rasterizing backends.
package path

import (
	"math"

	"github.com/gogpu/picture"
)

// Tolerance is the maximum device-space distance between a curve and the
// polyline that replaces it.
const Tolerance = 0.1

// Polyline is one flattened subpath.
type Polyline struct {
	Points []picture.Point
	Closed bool
}

// Flatten converts p into polylines in the coordinate space produced by m.
// Control points are transformed before subdivision so tolerance applies in
// device pixels. Polylines with fewer than two points are dropped.
func Flatten(p *picture.Path, m picture.Matrix4, tolerance float64) []Polyline {
	if p == nil {
		return nil
	}
	f := flattener{m: m, tol: tolerance}
	for _, sp := range p.Subpaths {
		f.hasPen = false
		for _, cmd := range sp.Commands {
			f.command(cmd)
		}
		f.finish(false)
	}
	return f.out
}

type flattener struct {
	m   picture.Matrix4
	tol float64
	out []Polyline

	pts     []picture.Point
	start   picture.Point // untransformed subpath start
	current picture.Point // untransformed pen position
	hasPen  bool
}

func (f *flattener) xf(x, y float64) picture.Point {
	return f.m.Apply(picture.Pt(x, y))
}

func (f *flattener) moveTo(x, y float64) {
	f.finish(false)
	f.start = picture.Pt(x, y)
	f.current = f.start
	f.hasPen = true
	f.pts = append(f.pts, f.xf(x, y))
}

// lineTo appends a device-space point, starting a polyline at the pen
// position if none is open. Without a pen the point itself starts it.
func (f *flattener) lineTo(x, y float64, dev picture.Point) {
	if len(f.pts) == 0 && f.hasPen {
		f.pts = append(f.pts, f.xf(f.current.X, f.current.Y))
	}
	if !f.hasPen {
		f.start = picture.Pt(x, y)
		f.hasPen = true
	}
	f.pts = append(f.pts, dev)
	f.current = picture.Pt(x, y)
}

func (f *flattener) finish(closed bool) {
	if len(f.pts) >= 2 {
		f.out = append(f.out, Polyline{Points: f.pts, Closed: closed})
	}
	f.pts = nil
}

func (f *flattener) command(cmd picture.PathCommand) {
	switch c := cmd.(type) {
	case picture.MoveTo:
		f.moveTo(c.X, c.Y)
	case picture.LineTo:
		f.lineTo(c.X, c.Y, f.xf(c.X, c.Y))
	case picture.QuadraticCurveTo:
		p0 := f.xf(f.current.X, f.current.Y)
		p1 := f.xf(c.X1, c.Y1)
		p2 := f.xf(c.X2, c.Y2)
		var pts []picture.Point
		flattenQuadratic(p0, p1, p2, f.tol, 0, &pts)
		for _, pt := range pts {
			f.lineTo(c.X2, c.Y2, pt)
		}
	case picture.BezierCurveTo:
		p0 := f.xf(f.current.X, f.current.Y)
		var pts []picture.Point
		flattenCubic(p0, f.xf(c.X1, c.Y1), f.xf(c.X2, c.Y2), f.xf(c.X3, c.Y3), f.tol, 0, &pts)
		for _, pt := range pts {
			f.lineTo(c.X3, c.Y3, pt)
		}
	case picture.Ellipse:
		f.ellipse(c)
	case picture.RectCommand:
		f.finish(false)
		x0, y0, x1, y1 := c.X, c.Y, c.X+c.Width, c.Y+c.Height
		f.pts = []picture.Point{f.xf(x0, y0), f.xf(x1, y0), f.xf(x1, y1), f.xf(x0, y1)}
		f.finish(true)
		f.start = picture.Pt(x0, y0)
		f.current = f.start
		f.hasPen = true
	case picture.RRectCommand:
		f.finish(false)
		f.rrect(c.RRect)
		f.finish(true)
		f.start = picture.Pt(c.RRect.Left, c.RRect.Top)
		f.current = f.start
		f.hasPen = true
	case picture.Close:
		f.finish(true)
		f.current = f.start
	}
}

// ellipse appends an arc, joined to the pen position by a straight line.
func (f *flattener) ellipse(e picture.Ellipse) {
	sweep := ArcSweep(e.StartAngle, e.EndAngle, e.Anticlockwise)
	n := f.arcSegments(e.RadiusX, e.RadiusY, sweep)
	sinR, cosR := math.Sincos(e.Rotation)
	at := func(a float64) picture.Point {
		sin, cos := math.Sincos(a)
		x, y := e.RadiusX*cos, e.RadiusY*sin
		return picture.Pt(e.X+x*cosR-y*sinR, e.Y+x*sinR+y*cosR)
	}
	full := !f.hasPen && math.Abs(sweep) == 2*math.Pi
	for i := 0; i <= n; i++ {
		pt := at(e.StartAngle + sweep*float64(i)/float64(n))
		f.lineTo(pt.X, pt.Y, f.xf(pt.X, pt.Y))
	}
	if full {
		// A whole ellipse on its own is a closed outline.
		f.pts = f.pts[:len(f.pts)-1]
		f.finish(true)
	}
}

// ArcSweep returns the signed angle swept from start to end. A clockwise
// sweep is in [0, 2π] and an anticlockwise sweep in [-2π, 0].
func ArcSweep(start, end float64, anticlockwise bool) float64 {
	sweep := end - start
	if !anticlockwise {
		if sweep >= 2*math.Pi {
			return 2 * math.Pi
		}
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
		return sweep
	}
	if sweep <= -2*math.Pi {
		return -2 * math.Pi
	}
	for sweep > 0 {
		sweep -= 2 * math.Pi
	}
	return sweep
}

// arcSegments picks a segment count so each chord deviates from the arc by
// at most the tolerance after transformation.
func (f *flattener) arcSegments(rx, ry, sweep float64) int {
	scale := math.Sqrt(math.Abs(f.m[0]*f.m[5] - f.m[1]*f.m[4]))
	r := math.Max(math.Abs(rx), math.Abs(ry)) * math.Max(scale, 1e-6)
	if r <= f.tol {
		return 1
	}
	step := 2 * math.Acos(1-f.tol/r)
	n := int(math.Ceil(math.Abs(sweep) / step))
	return max(1, min(n, 1024))
}

func (f *flattener) rrect(rr picture.RRect) {
	type corner struct {
		cx, cy, rx, ry, from float64
	}
	corners := [4]corner{
		{rr.Right - rr.TopRight.X, rr.Top + rr.TopRight.Y, rr.TopRight.X, rr.TopRight.Y, -math.Pi / 2},
		{rr.Right - rr.BottomRight.X, rr.Bottom - rr.BottomRight.Y, rr.BottomRight.X, rr.BottomRight.Y, 0},
		{rr.Left + rr.BottomLeft.X, rr.Bottom - rr.BottomLeft.Y, rr.BottomLeft.X, rr.BottomLeft.Y, math.Pi / 2},
		{rr.Left + rr.TopLeft.X, rr.Top + rr.TopLeft.Y, rr.TopLeft.X, rr.TopLeft.Y, math.Pi},
	}
	f.pts = append(f.pts, f.xf(rr.Left+rr.TopLeft.X, rr.Top))
	for _, c := range corners {
		n := f.arcSegments(c.rx, c.ry, math.Pi/2)
		for i := 0; i <= n; i++ {
			sin, cos := math.Sincos(c.from + math.Pi/2*float64(i)/float64(n))
			f.pts = append(f.pts, f.xf(c.cx+c.rx*cos, c.cy+c.ry*sin))
		}
	}
}

func lerp(p, q picture.Point, t float64) picture.Point {
	return picture.Pt(p.X+(q.X-p.X)*t, p.Y+(q.Y-p.Y)*t)
}

// maxDepth bounds subdivision for degenerate input such as NaN coordinates.
const maxDepth = 16

// flattenQuadratic recursively subdivides a quadratic Bézier curve and
// appends the end points of the resulting segments.
func flattenQuadratic(p0, p1, p2 picture.Point, tolerance float64, depth int, points *[]picture.Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)
	flattenQuadratic(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadratic(q2, q1, p2, tolerance, depth+1, points)
}

// flattenCubic subdivides a cubic Bézier curve using de Casteljau's
// algorithm.
func flattenCubic(p0, p1, p2, p3 picture.Point, tolerance float64, depth int, points *[]picture.Point) {
	if depth >= maxDepth || math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < tolerance {
		*points = append(*points, p3)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b picture.Point) float64 {
	ab := b.Sub(a)
	abLen2 := ab.X*ab.X + ab.Y*ab.Y
	if abLen2 < 1e-20 {
		return p.Distance(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / abLen2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
