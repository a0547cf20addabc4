package recording

import (
	"fmt"
	"image"

	"github.com/gogpu/picture"
)

// logBackend records every call as "method(args)" so tests can compare the
// exact call sequence. failOn makes the named method return ErrUnimplemented.
type logBackend struct {
	name          string
	width, height int
	calls         []string
	failOn        string
}

func newLogBackend(name string) *logBackend {
	return &logBackend{name: name}
}

func (b *logBackend) log(method string, args ...any) error {
	call := method + "("
	for i, a := range args {
		if i > 0 {
			call += ", "
		}
		call += fmt.Sprint(a)
	}
	b.calls = append(b.calls, call+")")
	if method == b.failOn {
		return Unimplemented(b.name, method)
	}
	return nil
}

func (b *logBackend) Clear() error                      { return b.log("clear") }
func (b *logBackend) Save() error                       { return b.log("save") }
func (b *logBackend) Restore() error                    { return b.log("restore") }
func (b *logBackend) Translate(dx, dy float64) error    { return b.log("translate", dx, dy) }
func (b *logBackend) Scale(sx, sy float64) error        { return b.log("scale", sx, sy) }
func (b *logBackend) Rotate(radians float64) error      { return b.log("rotate", radians) }
func (b *logBackend) Transform(m picture.Matrix4) error { return b.log("transform", m) }
func (b *logBackend) Skew(sx, sy float64) error         { return b.log("skew", sx, sy) }
func (b *logBackend) ClipRect(r picture.Rect) error     { return b.log("clipRect", r) }
func (b *logBackend) ClipRRect(rr picture.RRect) error  { return b.log("clipRRect", rr) }
func (b *logBackend) ClipPath(p *picture.Path) error    { return b.log("clipPath", p) }

func (b *logBackend) DrawColor(c picture.Color, mode picture.BlendMode) error {
	return b.log("drawColor", c, mode)
}

func (b *logBackend) DrawLine(p1, p2 picture.Point, paint picture.Paint) error {
	return b.log("drawLine", p1, p2, paint)
}

func (b *logBackend) DrawPaint(paint picture.Paint) error { return b.log("drawPaint", paint) }

func (b *logBackend) DrawRect(r picture.Rect, paint picture.Paint) error {
	return b.log("drawRect", r, paint)
}

func (b *logBackend) DrawRRect(rr picture.RRect, paint picture.Paint) error {
	return b.log("drawRRect", rr, paint)
}

func (b *logBackend) DrawDRRect(outer, inner picture.RRect, paint picture.Paint) error {
	return b.log("drawDRRect", outer, inner, paint)
}

func (b *logBackend) DrawOval(r picture.Rect, paint picture.Paint) error {
	return b.log("drawOval", r, paint)
}

func (b *logBackend) DrawCircle(center picture.Point, radius float64, paint picture.Paint) error {
	return b.log("drawCircle", center, radius, paint)
}

func (b *logBackend) DrawPath(p *picture.Path, paint picture.Paint) error {
	return b.log("drawPath", p, paint)
}

func (b *logBackend) DrawShadow(p *picture.Path, c picture.Color, elevation float64, transparentOccluder bool) error {
	return b.log("drawShadow", p, c, elevation, transparentOccluder)
}

func (b *logBackend) DrawImage(img image.Image, offset picture.Point, paint picture.Paint) error {
	return b.log("drawImage", img.Bounds(), offset, paint)
}

func (b *logBackend) DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) error {
	return b.log("drawImageRect", img.Bounds(), src, dst, paint)
}

func (b *logBackend) DrawParagraph(p Paragraph, offset picture.Point) error {
	return b.log("drawParagraph", fmt.Sprintf("%p", p), offset)
}

// fakeParagraph is a Paragraph with fixed answers.
type fakeParagraph struct {
	laidOut   bool
	bounds    picture.Rect
	arbitrary bool
}

func (p *fakeParagraph) IsLaidOut() bool           { return p.laidOut }
func (p *fakeParagraph) PaintBounds() picture.Rect { return p.bounds }
func (p *fakeParagraph) HasArbitraryPaint() bool   { return p.arbitrary }
