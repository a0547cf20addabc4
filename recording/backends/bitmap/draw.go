package bitmap

import (
	"image"
	"math"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/filter"
	"github.com/gogpu/picture/internal/path"
)

// DrawColor fills the clip with c using mode.
func (b *Backend) DrawColor(c picture.Color, mode picture.BlendMode) error {
	cov := b.surfaceCoverage()
	filter.Intersect(cov, b.stack.Data())
	return b.composite(cov, image.NewUniform(c), mode)
}

// DrawPaint fills the clip with paint.
func (b *Backend) DrawPaint(paint picture.Paint) error {
	return b.paintCoverage(b.surfaceCoverage(), paint)
}

// DrawLine strokes the segment p1-p2. Lines are stroked whatever the
// painting style.
func (b *Backend) DrawLine(p1, p2 picture.Point, paint picture.Paint) error {
	p := picture.NewPath()
	p.MoveTo(p1.X, p1.Y)
	p.LineTo(p2.X, p2.Y)
	paint.Style = picture.PaintingStyleStroke
	return b.paintPath(p, paint)
}

// DrawRect draws r.
func (b *Backend) DrawRect(r picture.Rect, paint picture.Paint) error {
	p := picture.NewPath()
	p.AddRect(r)
	return b.paintPath(p, paint)
}

// DrawRRect draws rr.
func (b *Backend) DrawRRect(rr picture.RRect, paint picture.Paint) error {
	p := picture.NewPath()
	p.AddRRect(rr)
	return b.paintPath(p, paint)
}

// DrawDRRect draws the area between outer and inner. Stroking draws both
// outlines.
func (b *Backend) DrawDRRect(outer, inner picture.RRect, paint picture.Paint) error {
	p := picture.NewPath()
	p.AddRRect(outer)
	p.AddRRect(inner)
	if paint.Style == picture.PaintingStyleStroke {
		return b.paintPath(p, paint)
	}

	// The rasterizer accumulates unsigned area, so the hole is cut by
	// reversing the inner outline.
	m := b.stack.Transform()
	polys := points(path.Flatten(p, m, path.Tolerance))
	if len(polys) == 2 {
		polys[1] = reversed(polys[1])
	}
	return b.paintCoverage(b.rasterize(polys, paint.AntiAlias), paint)
}

// DrawOval draws the ellipse inscribed in r.
func (b *Backend) DrawOval(r picture.Rect, paint picture.Paint) error {
	p := picture.NewPath()
	p.AddOval(r)
	return b.paintPath(p, paint)
}

// DrawCircle draws a circle.
func (b *Backend) DrawCircle(center picture.Point, radius float64, paint picture.Paint) error {
	p := picture.NewPath()
	p.AddOval(picture.LTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius))
	return b.paintPath(p, paint)
}

// DrawPath draws p.
func (b *Backend) DrawPath(p *picture.Path, paint picture.Paint) error {
	return b.paintPath(p, paint)
}

// DrawShadow paints the blurred shadow p casts at elevation. An opaque
// occluder hides the part of the shadow beneath it.
func (b *Backend) DrawShadow(p *picture.Path, c picture.Color, elevation float64, transparentOccluder bool) error {
	m := b.stack.Transform()
	occ := b.fillCoverage(p, true)
	o := picture.ShadowOffset(elevation)
	dx, dy := m.TransformPoint(o.X, o.Y)
	ox, oy := m.TransformPoint(0, 0)
	offset := image.Pt(int(math.Round(dx-ox)), int(math.Round(dy-oy)))
	sigma := filter.ShadowSigma(elevation) * deviceScale(m)

	shadow := filter.Shadow(occ, offset, sigma, transparentOccluder)
	filter.Intersect(shadow, b.stack.Data())
	return b.composite(shadow, image.NewUniform(c), picture.BlendModeSrcOver)
}

func reversed(pts []picture.Point) []picture.Point {
	out := make([]picture.Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
