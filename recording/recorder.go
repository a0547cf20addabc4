package recording

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/picture"
)

// Recorder captures paint operations as commands and tracks the area they
// paint. Use Apply to replay the commands to any Backend, as often as needed.
//
// Example:
//
//	rec := recording.NewRecorder(picture.LTWH(0, 0, 800, 600))
//	rec.Translate(100, 100)
//	rec.DrawRect(picture.LTWH(0, 0, 10, 10), picture.FillPaint(picture.Red))
//	bounds := rec.EndRecording() // Rect(100.0, 100.0, 110.0, 110.0)
//	err := rec.Apply(backend, true)
//
// The Recorder is not safe for concurrent use. Apply does not modify the
// recorder, so a finished recording may be replayed from several goroutines
// to distinct backends.
type Recorder struct {
	commands []Command
	// culling holds the device-space extent of each command, parallel to
	// commands. Only draw commands have an entry with visible set.
	culling []cullInfo
	bounds  *PaintBounds

	saveCount         int
	didDraw           bool
	hasArbitraryPaint bool

	ended         bool
	pictureBounds picture.Rect

	log *slog.Logger
}

type cullInfo struct {
	bounds  picture.Rect
	visible bool
}

// NewRecorder creates a recorder whose painted bounds are limited to
// maxBounds. Use picture.LargestRect for an unbounded canvas.
func NewRecorder(maxBounds picture.Rect, opts ...Option) *Recorder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Recorder{
		commands:  make([]Command, 0, o.capacity),
		culling:   make([]cullInfo, 0, o.capacity),
		bounds:    NewPaintBounds(maxBounds),
		saveCount: 1,
		log:       o.log(),
	}
}

func (r *Recorder) checkRecording() {
	if r.ended {
		panic(ErrRecordingEnded)
	}
}

func (r *Recorder) add(cmd Command) {
	r.commands = append(r.commands, cmd)
	r.culling = append(r.culling, cullInfo{})
}

func (r *Recorder) addDraw(cmd Command, bounds picture.Rect, visible bool) {
	r.didDraw = true
	r.commands = append(r.commands, cmd)
	r.culling = append(r.culling, cullInfo{bounds: bounds, visible: visible})
}

// --------------------------------------------------------------------------
// State
// --------------------------------------------------------------------------

// Save saves the current transform and clip.
func (r *Recorder) Save() {
	r.checkRecording()
	r.bounds.Save()
	r.add(SaveCommand{})
	r.saveCount++
}

// SaveLayer saves the current state like Save. Layer bounds and paint are
// not recorded; the recording is marked as needing arbitrary paint.
func (r *Recorder) SaveLayer(bounds picture.Rect, paint picture.Paint) {
	r.log.Debug("recording: saveLayer recorded as save", "bounds", bounds, "paint", paint)
	r.saveLayer()
}

// SaveLayerWithoutBounds is SaveLayer for a layer that covers the clip.
func (r *Recorder) SaveLayerWithoutBounds(paint picture.Paint) {
	r.log.Debug("recording: saveLayer recorded as save", "paint", paint)
	r.saveLayer()
}

func (r *Recorder) saveLayer() {
	r.hasArbitraryPaint = true
	r.Save()
}

// Restore restores the most recently saved transform and clip. A restore
// that directly follows its save cancels both commands out of the list.
//
// Restore panics with ErrUnbalancedRestore when nothing was saved.
func (r *Recorder) Restore() {
	r.checkRecording()
	if r.saveCount <= 1 {
		panic(ErrUnbalancedRestore)
	}
	r.bounds.Restore()
	r.saveCount--

	if n := len(r.commands); n > 0 && r.commands[n-1].Type() == CmdSave {
		r.commands = r.commands[:n-1]
		r.culling = r.culling[:n-1]
		r.log.Debug("recording: elided empty save/restore", "saveCount", r.saveCount)
		return
	}
	r.add(RestoreCommand{})
}

// RestoreToCount restores until SaveCount equals count. Counts below one are
// treated as one.
func (r *Recorder) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for r.saveCount > count {
		r.Restore()
	}
}

// SaveCount returns the number of saved states plus one.
func (r *Recorder) SaveCount() int { return r.saveCount }

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

// Translate translates the canvas.
func (r *Recorder) Translate(dx, dy float64) {
	r.checkRecording()
	r.bounds.Translate(dx, dy)
	r.add(TranslateCommand{DX: dx, DY: dy})
}

// Scale scales the canvas.
func (r *Recorder) Scale(sx, sy float64) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	r.bounds.Scale(sx, sy)
	r.add(ScaleCommand{SX: sx, SY: sy})
}

// Rotate rotates the canvas about the z axis.
func (r *Recorder) Rotate(radians float64) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	r.bounds.RotateZ(radians)
	r.add(RotateCommand{Radians: radians})
}

// Transform multiplies the current transform by m.
func (r *Recorder) Transform(m picture.Matrix4) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	r.bounds.TransformBy(m)
	r.add(TransformCommand{Matrix: m})
}

// Skew skews the canvas by the matrix values sx and sy.
func (r *Recorder) Skew(sx, sy float64) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	r.bounds.Skew(sx, sy)
	r.add(SkewCommand{SX: sx, SY: sy})
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

// ClipRect intersects the clip with rect.
func (r *Recorder) ClipRect(rect picture.Rect) {
	r.clip(ClipRectCommand{Rect: rect}, rect)
}

// ClipRRect intersects the clip with rr. Bounds use its outer rect.
func (r *Recorder) ClipRRect(rr picture.RRect) {
	r.clip(ClipRRectCommand{RRect: rr}, rr.Outer())
}

// ClipPath intersects the clip with p. Bounds use the path bounds.
func (r *Recorder) ClipPath(p *picture.Path) {
	r.clip(ClipPathCommand{Path: p.Clone()}, p.Bounds())
}

func (r *Recorder) clip(cmd Command, rect picture.Rect) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	if r.bounds.ClipRect(rect) {
		r.log.Debug("recording: clip is empty", "command", cmd.Type())
	}
	r.add(cmd)
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// DrawColor fills the clip with c. It grows the bounds by the maximum paint
// bounds.
func (r *Recorder) DrawColor(c picture.Color, mode picture.BlendMode) {
	r.checkRecording()
	b, ok := r.bounds.Grow(r.bounds.MaxBounds())
	r.addDraw(DrawColorCommand{Color: c, BlendMode: mode}, b, ok)
}

// DrawPaint fills the clip with paint.
func (r *Recorder) DrawPaint(paint picture.Paint) {
	r.checkRecording()
	if paint.Shader != nil {
		r.hasArbitraryPaint = true
	}
	b, ok := r.bounds.Grow(r.bounds.MaxBounds())
	r.addDraw(DrawPaintCommand{Paint: paint}, b, ok)
}

// DrawLine strokes the segment p1-p2. The bounds are inflated by at least
// one pixel so that hairlines are not degenerate.
func (r *Recorder) DrawLine(p1, p2 picture.Point, paint picture.Paint) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	spread := math.Max(paint.Spread(), 1)
	b, ok := r.bounds.GrowLTRB(
		math.Min(p1.X, p2.X)-spread,
		math.Min(p1.Y, p2.Y)-spread,
		math.Max(p1.X, p2.X)+spread,
		math.Max(p1.Y, p2.Y)+spread,
	)
	r.addDraw(DrawLineCommand{P1: p1, P2: p2, Paint: paint}, b, ok)
}

// DrawRect draws rect.
func (r *Recorder) DrawRect(rect picture.Rect, paint picture.Paint) {
	r.checkRecording()
	if paint.Shader != nil {
		r.hasArbitraryPaint = true
	}
	b, ok := r.growInflated(rect, paint.Spread())
	r.addDraw(DrawRectCommand{Rect: rect, Paint: paint}, b, ok)
}

// DrawRRect draws rr. Non-uniform radii need arbitrary paint.
func (r *Recorder) DrawRRect(rr picture.RRect, paint picture.Paint) {
	r.checkRecording()
	if paint.Shader != nil || !rr.UniformRadii() {
		r.hasArbitraryPaint = true
	}
	b, ok := r.growInflated(rr.Outer().Normalize(), paint.Spread())
	r.addDraw(DrawRRectCommand{RRect: rr, Paint: paint}, b, ok)
}

// DrawDRRect draws the area between outer and inner. Nothing is recorded
// unless inner lies strictly inside outer, including its corner radii.
func (r *Recorder) DrawDRRect(outer, inner picture.RRect, paint picture.Paint) {
	r.checkRecording()
	if !innerFits(outer, inner) {
		r.log.Debug("recording: drawDRRect skipped, inner not inside outer",
			"outer", outer, "inner", inner)
		return
	}
	r.hasArbitraryPaint = true
	b, ok := r.growInflated(outer.Outer(), paint.Spread())
	r.addDraw(DrawDRRectCommand{Outer: outer, Inner: inner, Paint: paint}, b, ok)
}

// innerFits reports whether inner's rect is contained in and different from
// outer's, and no inner corner radius exceeds the matching outer one.
func innerFits(outer, inner picture.RRect) bool {
	o, i := outer.Outer(), inner.Outer()
	if o == i || !o.Contains(i) {
		return false
	}
	so, si := outer.ScaleRadii(), inner.ScaleRadii()
	return si.TopLeft.Y <= so.TopLeft.Y &&
		si.TopRight.Y <= so.TopRight.Y &&
		si.BottomRight.Y <= so.BottomRight.Y &&
		si.BottomLeft.Y <= so.BottomLeft.Y
}

// DrawOval draws the ellipse inscribed in rect.
func (r *Recorder) DrawOval(rect picture.Rect, paint picture.Paint) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	b, ok := r.growInflated(rect, paint.Spread())
	r.addDraw(DrawOvalCommand{Rect: rect, Paint: paint}, b, ok)
}

// DrawCircle draws a circle.
func (r *Recorder) DrawCircle(center picture.Point, radius float64, paint picture.Paint) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	d := radius + paint.Spread()
	b, ok := r.bounds.GrowLTRB(center.X-d, center.Y-d, center.X+d, center.Y+d)
	r.addDraw(DrawCircleCommand{Center: center, Radius: radius, Paint: paint}, b, ok)
}

// DrawPath draws p. Without a shader, a path that is a single rect or
// rounded rect is recorded as DrawRect or DrawRRect. The path is copied.
func (r *Recorder) DrawPath(p *picture.Path, paint picture.Paint) {
	r.checkRecording()
	if paint.Shader == nil {
		if rect, ok := p.ToRect(); ok {
			r.DrawRect(rect, paint)
			return
		}
		if rr, ok := p.ToRRect(); ok {
			r.DrawRRect(rr, paint)
			return
		}
	}
	r.hasArbitraryPaint = true
	b, ok := r.growInflated(p.Bounds(), paint.Spread())
	r.addDraw(DrawPathCommand{Path: p.Clone(), Paint: paint}, b, ok)
}

// DrawShadow draws the shadow cast by p at the given elevation. The path is
// copied.
func (r *Recorder) DrawShadow(p *picture.Path, c picture.Color, elevation float64, transparentOccluder bool) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	b, ok := r.bounds.Grow(picture.PenumbraBounds(p.Bounds(), elevation))
	r.addDraw(DrawShadowCommand{
		Path:                p.Clone(),
		Color:               c,
		Elevation:           elevation,
		TransparentOccluder: transparentOccluder,
	}, b, ok)
}

// DrawImage draws img with its top-left corner at offset. The image is
// referenced, not copied, and must not change while the recording is alive.
func (r *Recorder) DrawImage(img image.Image, offset picture.Point, paint picture.Paint) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	size := img.Bounds().Size()
	b, ok := r.bounds.GrowLTRB(offset.X, offset.Y, offset.X+float64(size.X), offset.Y+float64(size.Y))
	r.addDraw(DrawImageCommand{Image: img, Offset: offset, Paint: paint}, b, ok)
}

// DrawImageRect draws the src region of img into dst.
func (r *Recorder) DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) {
	r.checkRecording()
	r.hasArbitraryPaint = true
	b, ok := r.bounds.Grow(dst)
	r.addDraw(DrawImageRectCommand{Image: img, Src: src, Dst: dst, Paint: paint}, b, ok)
}

// DrawParagraph draws a laid-out paragraph with its top-left corner at
// offset. A paragraph that is not laid out records nothing.
func (r *Recorder) DrawParagraph(p Paragraph, offset picture.Point) {
	r.checkRecording()
	if !p.IsLaidOut() {
		r.log.Debug("recording: drawParagraph skipped, paragraph not laid out")
		return
	}
	if p.HasArbitraryPaint() {
		r.hasArbitraryPaint = true
	}
	b, ok := r.bounds.Grow(p.PaintBounds().Shift(offset))
	r.addDraw(DrawParagraphCommand{Paragraph: p, Offset: offset}, b, ok)
}

func (r *Recorder) growInflated(rect picture.Rect, spread float64) (picture.Rect, bool) {
	if spread == 0 {
		return r.bounds.Grow(rect)
	}
	return r.bounds.GrowLTRB(rect.Left-spread, rect.Top-spread, rect.Right+spread, rect.Bottom+spread)
}

// --------------------------------------------------------------------------
// Results
// --------------------------------------------------------------------------

// Commands returns a copy of the recorded commands in order.
func (r *Recorder) Commands() []Command {
	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// DidDraw reports whether any operation with visual output was recorded.
func (r *Recorder) DidDraw() bool { return r.didDraw }

// HasArbitraryPaint reports whether the recording uses operations that a
// simple backend primitive cannot express.
func (r *Recorder) HasArbitraryPaint() bool { return r.hasArbitraryPaint }

// Bounds returns the bounds tracker.
func (r *Recorder) Bounds() *PaintBounds { return r.bounds }

// ComputeBounds returns the area painted so far. See PaintBounds.ComputeBounds.
func (r *Recorder) ComputeBounds() picture.Rect { return r.bounds.ComputeBounds() }

// EndRecording finishes the recording and returns its bounds. Further
// recording calls panic with ErrRecordingEnded; replay is unaffected.
func (r *Recorder) EndRecording() picture.Rect {
	if !r.ended {
		r.pictureBounds = r.bounds.ComputeBounds()
		r.ended = true
		r.log.Info("recording: ended",
			"commands", len(r.commands), "bounds", r.pictureBounds, "arbitraryPaint", r.hasArbitraryPaint)
	}
	return r.pictureBounds
}

// PictureBounds returns the bounds computed by EndRecording, or the zero
// rect before the recording ended.
func (r *Recorder) PictureBounds() picture.Rect { return r.pictureBounds }

// EncodeWire returns the JSON array wire encoding of the recorded commands.
// It fails with ErrNotSerializable when any command has no wire form.
func (r *Recorder) EncodeWire() ([]byte, error) {
	return MarshalWire(r.commands)
}

// --------------------------------------------------------------------------
// Replay
// --------------------------------------------------------------------------

// Apply replays every recorded command to b in order, clearing b first when
// clearFirst is set. Replay stops at the first backend error.
func (r *Recorder) Apply(b Backend, clearFirst bool) error {
	if clearFirst {
		if err := b.Clear(); err != nil {
			return fmt.Errorf("recording: clear: %w", err)
		}
	}
	err := ApplyAll(r.commands, b)
	if err != nil {
		r.logReplayFailure(err)
	}
	return err
}

// ApplyClipped replays the commands to b, skipping draw commands whose
// recorded extent was clipped out or does not overlap clip. State and clip
// commands are always replayed so the backend's save stack stays balanced.
// b is not cleared.
func (r *Recorder) ApplyClipped(b Backend, clip picture.Rect) error {
	culled := 0
	for i, cmd := range r.commands {
		if cmd.Type().IsDraw() {
			ci := r.culling[i]
			if !ci.visible || !ci.bounds.Overlaps(clip) {
				culled++
				continue
			}
		}
		if err := Apply(cmd, b); err != nil {
			err = fmt.Errorf("recording: command %d (%s): %w", i, cmd.Type(), err)
			r.logReplayFailure(err)
			return err
		}
	}
	if culled > 0 {
		r.log.Debug("recording: culled commands", "count", culled, "clip", clip)
	}
	return nil
}

func (r *Recorder) logReplayFailure(err error) {
	if errors.Is(err, ErrUnimplemented) {
		r.log.Debug("recording: backend lacks operation", "err", err)
		return
	}
	r.log.Debug("recording: replay failed", "err", err)
}
