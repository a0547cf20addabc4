package recording

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/picture"
)

// ErrUnimplemented is returned by a backend that cannot perform an
// operation. The failure belongs to that backend instance; the recording and
// other backends are unaffected.
var ErrUnimplemented = errors.New("recording: operation not implemented by backend")

// Unimplemented returns an error wrapping ErrUnimplemented that names the
// backend and the operation.
func Unimplemented(backend, op string) error {
	return fmt.Errorf("%w: %s does not support %s", ErrUnimplemented, backend, op)
}

// Backend is the capability interface implemented once per rendering
// technology. Replay invokes exactly one method per recorded command and
// passes the stored operands unchanged.
//
// A backend keeps its own save stack in lock-step with the Save and Restore
// calls it receives. Clear resets the surface and that stack.
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register("bitmap", func(width, height int) recording.Backend {
//	        return New(width, height)
//	    })
//	}
type Backend interface {
	// Clear erases the output and resets the save stack.
	Clear() error

	// State management methods

	Save() error
	Restore() error

	// Transform methods. Each composes in the current local frame.

	Translate(dx, dy float64) error
	Scale(sx, sy float64) error
	Rotate(radians float64) error
	Transform(m picture.Matrix4) error
	Skew(sx, sy float64) error

	// Clipping methods. Each intersects with the active clip.

	ClipRect(r picture.Rect) error
	ClipRRect(rr picture.RRect) error
	ClipPath(p *picture.Path) error

	// Drawing methods

	DrawColor(c picture.Color, mode picture.BlendMode) error
	DrawLine(p1, p2 picture.Point, paint picture.Paint) error
	DrawPaint(paint picture.Paint) error
	DrawRect(r picture.Rect, paint picture.Paint) error
	DrawRRect(rr picture.RRect, paint picture.Paint) error
	DrawDRRect(outer, inner picture.RRect, paint picture.Paint) error
	DrawOval(r picture.Rect, paint picture.Paint) error
	DrawCircle(center picture.Point, radius float64, paint picture.Paint) error
	DrawPath(p *picture.Path, paint picture.Paint) error
	DrawShadow(p *picture.Path, c picture.Color, elevation float64, transparentOccluder bool) error
	DrawImage(img image.Image, offset picture.Point, paint picture.Paint) error
	DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) error

	// DrawParagraph paints a laid-out paragraph with its top-left corner at
	// offset.
	DrawParagraph(p Paragraph, offset picture.Point) error
}

// WriterBackend extends Backend with the ability to write its output to an
// io.Writer (PNG pixels, HTML markup or wire JSON, depending on the backend).
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to w.
	WriteTo(w io.Writer) (int64, error)
}

// ImageBackend extends Backend with access to rasterized pixels.
type ImageBackend interface {
	Backend

	// Image returns the backing surface. The caller must not retain it
	// across a Clear.
	Image() *image.RGBA
}
