package recording

import "fmt"

// Apply invokes the one backend method that corresponds to cmd, passing the
// stored operands unchanged. It is the only place that maps command variants
// to backend calls.
func Apply(cmd Command, b Backend) error {
	switch c := cmd.(type) {
	case SaveCommand:
		return b.Save()
	case RestoreCommand:
		return b.Restore()
	case TranslateCommand:
		return b.Translate(c.DX, c.DY)
	case ScaleCommand:
		return b.Scale(c.SX, c.SY)
	case RotateCommand:
		return b.Rotate(c.Radians)
	case TransformCommand:
		return b.Transform(c.Matrix)
	case SkewCommand:
		return b.Skew(c.SX, c.SY)
	case ClipRectCommand:
		return b.ClipRect(c.Rect)
	case ClipRRectCommand:
		return b.ClipRRect(c.RRect)
	case ClipPathCommand:
		return b.ClipPath(c.Path)
	case DrawColorCommand:
		return b.DrawColor(c.Color, c.BlendMode)
	case DrawLineCommand:
		return b.DrawLine(c.P1, c.P2, c.Paint)
	case DrawPaintCommand:
		return b.DrawPaint(c.Paint)
	case DrawRectCommand:
		return b.DrawRect(c.Rect, c.Paint)
	case DrawRRectCommand:
		return b.DrawRRect(c.RRect, c.Paint)
	case DrawDRRectCommand:
		return b.DrawDRRect(c.Outer, c.Inner, c.Paint)
	case DrawOvalCommand:
		return b.DrawOval(c.Rect, c.Paint)
	case DrawCircleCommand:
		return b.DrawCircle(c.Center, c.Radius, c.Paint)
	case DrawPathCommand:
		return b.DrawPath(c.Path, c.Paint)
	case DrawShadowCommand:
		return b.DrawShadow(c.Path, c.Color, c.Elevation, c.TransparentOccluder)
	case DrawImageCommand:
		return b.DrawImage(c.Image, c.Offset, c.Paint)
	case DrawImageRectCommand:
		return b.DrawImageRect(c.Image, c.Src, c.Dst, c.Paint)
	case DrawParagraphCommand:
		return b.DrawParagraph(c.Paragraph, c.Offset)
	}
	return fmt.Errorf("recording: cannot apply command of type %T", cmd)
}

// ApplyAll applies commands to b in order and stops at the first failure.
// The returned error names the index and type of the failing command.
func ApplyAll(commands []Command, b Backend) error {
	for i, cmd := range commands {
		if err := Apply(cmd, b); err != nil {
			return fmt.Errorf("recording: command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}
