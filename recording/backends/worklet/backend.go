// Package worklet provides a paint-worklet backend for the recording system.
//
// Instead of drawing, the backend turns every call back into its command and
// keeps the array wire encoding of it. The encoded list is the payload of a
// CSS paint worklet: Style returns the declarations that paint an element
// with the "flt" worklet, and Replay is the decoding half that drives any
// backend from such a payload.
//
// Images and paragraphs have no wire form; drawing them fails with
// recording.ErrNotSerializable and leaves the payload unchanged.
//
// # Example
//
//	backend := worklet.NewBackend(200, 100)
//	rec.Apply(backend, true)
//	css, _ := backend.Style()
//
//	// elsewhere, from the payload
//	err := worklet.Replay(payload, bitmap.NewBackend(200, 100))
package worklet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/savestack"
	"github.com/gogpu/picture/recording"
)

// Name is the name the backend is registered under.
const Name = "worklet"

// PaintName is the name the paint worklet is registered under in CSS.
const PaintName = "flt"

func init() {
	recording.Register(Name, func(width, height int) recording.Backend {
		return NewBackend(width, height)
	})
}

// Backend accumulates the wire encoding of the calls it receives.
type Backend struct {
	width    int
	height   int
	stack    *savestack.Stack[struct{}]
	commands []recording.Command
	encoded  []any
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ json.Marshaler          = (*Backend)(nil)
)

// NewBackend creates a worklet backend for an element of the given size.
func NewBackend(width, height int) *Backend {
	return &Backend{
		width:   max(width, 0),
		height:  max(height, 0),
		stack:   savestack.New(struct{}{}),
		encoded: []any{},
	}
}

// emit encodes cmd and appends it to the payload.
func (b *Backend) emit(cmd recording.Command) error {
	enc, err := recording.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	b.commands = append(b.commands, cmd)
	b.encoded = append(b.encoded, enc)
	return nil
}

// Commands returns the commands received since the last Clear.
func (b *Backend) Commands() []recording.Command {
	out := make([]recording.Command, len(b.commands))
	copy(out, b.commands)
	return out
}

// Len returns the number of encoded commands.
func (b *Backend) Len() int { return len(b.encoded) }

// Depth returns the number of unmatched saves.
func (b *Backend) Depth() int { return b.stack.Depth() }

// ClipBounds returns the device-space bounds of the current clip within the
// element.
func (b *Backend) ClipBounds() picture.Rect {
	return b.stack.ClipBounds(picture.LTWH(0, 0, float64(b.width), float64(b.height)))
}

// MarshalJSON returns the payload as a JSON array of command arrays.
func (b *Backend) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.encoded)
}

// Style returns the CSS declarations that size an element and paint it with
// the worklet, passing the payload in the --flt custom property.
func (b *Backend) Style() (string, error) {
	payload, err := b.MarshalJSON()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("width: ")
	sb.WriteString(strconv.Itoa(b.width))
	sb.WriteString("px; height: ")
	sb.WriteString(strconv.Itoa(b.height))
	sb.WriteString("px; background-image: paint(")
	sb.WriteString(PaintName)
	sb.WriteString("); --")
	sb.WriteString(PaintName)
	sb.WriteString(": ")
	sb.Write(payload)
	return sb.String(), nil
}

// WriteTo writes the JSON payload to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	payload, err := b.MarshalJSON()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(payload)
	return int64(n), err
}

// Replay decodes a payload produced by MarshalJSON and applies it to
// backend after clearing it.
func Replay(data []byte, backend recording.Backend) error {
	cmds, err := recording.UnmarshalWire(bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	if err := backend.Clear(); err != nil {
		return fmt.Errorf("worklet: clear: %w", err)
	}
	picture.Logger().Debug("worklet: replaying payload", "commands", len(cmds))
	return recording.ApplyAll(cmds, backend)
}

// Clear empties the payload and resets the save stack.
func (b *Backend) Clear() error {
	b.commands = b.commands[:0]
	b.encoded = b.encoded[:0]
	b.stack.Reset(struct{}{})
	return nil
}

// Save records a save.
func (b *Backend) Save() error {
	b.stack.Save()
	return b.emit(recording.SaveCommand{})
}

// Restore records a restore. A restore without a matching save is rejected
// and not recorded.
func (b *Backend) Restore() error {
	if err := b.stack.Restore(); err != nil {
		return recording.ErrUnbalancedRestore
	}
	return b.emit(recording.RestoreCommand{})
}

// Translate records a translation.
func (b *Backend) Translate(dx, dy float64) error {
	b.stack.Translate(dx, dy)
	return b.emit(recording.TranslateCommand{DX: dx, DY: dy})
}

// Scale records a scale.
func (b *Backend) Scale(sx, sy float64) error {
	b.stack.Scale(sx, sy)
	return b.emit(recording.ScaleCommand{SX: sx, SY: sy})
}

// Rotate records a rotation.
func (b *Backend) Rotate(radians float64) error {
	b.stack.Rotate(radians)
	return b.emit(recording.RotateCommand{Radians: radians})
}

// Transform records a matrix multiplication.
func (b *Backend) Transform(m picture.Matrix4) error {
	b.stack.Concat(m)
	return b.emit(recording.TransformCommand{Matrix: m})
}

// Skew records a skew.
func (b *Backend) Skew(sx, sy float64) error {
	b.stack.Skew(sx, sy)
	return b.emit(recording.SkewCommand{SX: sx, SY: sy})
}

// ClipRect records a rect clip.
func (b *Backend) ClipRect(r picture.Rect) error {
	b.stack.ClipRect(r)
	return b.emit(recording.ClipRectCommand{Rect: r})
}

// ClipRRect records a rounded rect clip.
func (b *Backend) ClipRRect(rr picture.RRect) error {
	b.stack.ClipRRect(rr)
	return b.emit(recording.ClipRRectCommand{RRect: rr})
}

// ClipPath records a path clip. Only the path's bounds are tracked by
// ClipBounds.
func (b *Backend) ClipPath(p *picture.Path) error {
	b.stack.ClipRect(p.Bounds())
	return b.emit(recording.ClipPathCommand{Path: p})
}

// DrawColor records a color fill.
func (b *Backend) DrawColor(c picture.Color, mode picture.BlendMode) error {
	return b.emit(recording.DrawColorCommand{Color: c, BlendMode: mode})
}

// DrawLine records a line.
func (b *Backend) DrawLine(p1, p2 picture.Point, paint picture.Paint) error {
	return b.emit(recording.DrawLineCommand{P1: p1, P2: p2, Paint: paint})
}

// DrawPaint records a paint fill.
func (b *Backend) DrawPaint(paint picture.Paint) error {
	return b.emit(recording.DrawPaintCommand{Paint: paint})
}

// DrawRect records a rectangle.
func (b *Backend) DrawRect(r picture.Rect, paint picture.Paint) error {
	return b.emit(recording.DrawRectCommand{Rect: r, Paint: paint})
}

// DrawRRect records a rounded rectangle.
func (b *Backend) DrawRRect(rr picture.RRect, paint picture.Paint) error {
	return b.emit(recording.DrawRRectCommand{RRect: rr, Paint: paint})
}

// DrawDRRect records a rounded ring.
func (b *Backend) DrawDRRect(outer, inner picture.RRect, paint picture.Paint) error {
	return b.emit(recording.DrawDRRectCommand{Outer: outer, Inner: inner, Paint: paint})
}

// DrawOval records an oval.
func (b *Backend) DrawOval(r picture.Rect, paint picture.Paint) error {
	return b.emit(recording.DrawOvalCommand{Rect: r, Paint: paint})
}

// DrawCircle records a circle.
func (b *Backend) DrawCircle(center picture.Point, radius float64, paint picture.Paint) error {
	return b.emit(recording.DrawCircleCommand{Center: center, Radius: radius, Paint: paint})
}

// DrawPath records a path.
func (b *Backend) DrawPath(p *picture.Path, paint picture.Paint) error {
	return b.emit(recording.DrawPathCommand{Path: p, Paint: paint})
}

// DrawShadow records a shadow.
func (b *Backend) DrawShadow(p *picture.Path, c picture.Color, elevation float64, transparentOccluder bool) error {
	return b.emit(recording.DrawShadowCommand{Path: p, Color: c, Elevation: elevation, TransparentOccluder: transparentOccluder})
}

// DrawImage fails with ErrNotSerializable.
func (b *Backend) DrawImage(img image.Image, offset picture.Point, paint picture.Paint) error {
	return b.emit(recording.DrawImageCommand{Image: img, Offset: offset, Paint: paint})
}

// DrawImageRect fails with ErrNotSerializable.
func (b *Backend) DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) error {
	return b.emit(recording.DrawImageRectCommand{Image: img, Src: src, Dst: dst, Paint: paint})
}

// DrawParagraph fails with ErrNotSerializable.
func (b *Backend) DrawParagraph(p recording.Paragraph, offset picture.Point) error {
	return b.emit(recording.DrawParagraphCommand{Paragraph: p, Offset: offset})
}
