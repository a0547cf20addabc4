package recording

import (
	"encoding/json"
	"fmt"

	"github.com/gogpu/picture"
)

// Array wire encoding.
//
// Every serializable command encodes as [opcode, operands...] where opcode is
// its CommandType. Composite operands nest:
//
//	rect   [left, top, right, bottom]
//	rrect  [left, top, right, bottom, tlx, tly, trx, try, brx, bry, blx, bly]
//	path   [[subpath commands]...], each command [verb, operands...]
//	paint  [blend, style, strokeWidth, cap, antiAlias, color, shader, maskFilter, filterQuality, colorFilter]
//
// Colors are CSS strings, except the shadow color which is [a, r, g, b].
// Shaders are ["linear", fx, fy, tx, ty, stops, tile] or
// ["radial", cx, cy, radius, stops, tile] with stops [[offset, color]...].
// Mask filters are [blurStyle, sigma] and color filters [color, blend].
// Stroke join and path fill type are not part of the encoding.

// EncodeCommand returns the wire form of cmd. Commands that carry images or
// paragraphs, and paints with a shader other than the built-in gradients,
// fail with ErrNotSerializable.
func EncodeCommand(cmd Command) ([]any, error) {
	switch c := cmd.(type) {
	case SaveCommand:
		return []any{int(CmdSave)}, nil
	case RestoreCommand:
		return []any{int(CmdRestore)}, nil
	case TranslateCommand:
		return []any{int(CmdTranslate), c.DX, c.DY}, nil
	case ScaleCommand:
		return []any{int(CmdScale), c.SX, c.SY}, nil
	case RotateCommand:
		return []any{int(CmdRotate), c.Radians}, nil
	case TransformCommand:
		out := make([]any, 0, 17)
		out = append(out, int(CmdTransform))
		for _, v := range c.Matrix {
			out = append(out, v)
		}
		return out, nil
	case SkewCommand:
		return []any{int(CmdSkew), c.SX, c.SY}, nil
	case ClipRectCommand:
		return []any{int(CmdClipRect), encodeRect(c.Rect)}, nil
	case ClipRRectCommand:
		return []any{int(CmdClipRRect), encodeRRect(c.RRect)}, nil
	case ClipPathCommand:
		return []any{int(CmdClipPath), encodePath(c.Path)}, nil
	case DrawColorCommand:
		return []any{int(CmdDrawColor), c.Color.CSS(), c.BlendMode.Index()}, nil
	case DrawLineCommand:
		return withPaint(c.Paint, int(CmdDrawLine), c.P1.X, c.P1.Y, c.P2.X, c.P2.Y)
	case DrawPaintCommand:
		return withPaint(c.Paint, int(CmdDrawPaint))
	case DrawRectCommand:
		return withPaint(c.Paint, int(CmdDrawRect), encodeRect(c.Rect))
	case DrawRRectCommand:
		return withPaint(c.Paint, int(CmdDrawRRect), encodeRRect(c.RRect))
	case DrawDRRectCommand:
		return withPaint(c.Paint, int(CmdDrawDRRect), encodeRRect(c.Outer), encodeRRect(c.Inner))
	case DrawOvalCommand:
		return withPaint(c.Paint, int(CmdDrawOval), encodeRect(c.Rect))
	case DrawCircleCommand:
		return withPaint(c.Paint, int(CmdDrawCircle), c.Center.X, c.Center.Y, c.Radius)
	case DrawPathCommand:
		return withPaint(c.Paint, int(CmdDrawPath), encodePath(c.Path))
	case DrawShadowCommand:
		col := []any{int(c.Color.A()), int(c.Color.R()), int(c.Color.G()), int(c.Color.B())}
		return []any{int(CmdDrawShadow), encodePath(c.Path), col, c.Elevation, c.TransparentOccluder}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil command", ErrNotSerializable)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotSerializable, cmd.Type())
}

// EncodeCommands encodes every command. It fails without partial output if
// any command cannot be encoded.
func EncodeCommands(cmds []Command) ([]any, error) {
	out := make([]any, 0, len(cmds))
	for i, cmd := range cmds {
		enc, err := EncodeCommand(cmd)
		if err != nil {
			return nil, fmt.Errorf("recording: encode command %d: %w", i, err)
		}
		out = append(out, enc)
	}
	return out, nil
}

// MarshalWire encodes cmds as a JSON array.
func MarshalWire(cmds []Command) ([]byte, error) {
	enc, err := EncodeCommands(cmds)
	if err != nil {
		return nil, err
	}
	return json.Marshal(enc)
}

func withPaint(p picture.Paint, head ...any) ([]any, error) {
	paint, err := encodePaint(p)
	if err != nil {
		return nil, err
	}
	return append(head, paint), nil
}

func encodeRect(r picture.Rect) []any {
	return []any{r.Left, r.Top, r.Right, r.Bottom}
}

func encodeRRect(rr picture.RRect) []any {
	return []any{
		rr.Left, rr.Top, rr.Right, rr.Bottom,
		rr.TopLeft.X, rr.TopLeft.Y,
		rr.TopRight.X, rr.TopRight.Y,
		rr.BottomRight.X, rr.BottomRight.Y,
		rr.BottomLeft.X, rr.BottomLeft.Y,
	}
}

func encodePath(p *picture.Path) []any {
	if p == nil {
		return []any{}
	}
	subpaths := make([]any, 0, len(p.Subpaths))
	for _, sp := range p.Subpaths {
		cmds := make([]any, 0, len(sp.Commands))
		for _, pc := range sp.Commands {
			cmds = append(cmds, encodePathCommand(pc))
		}
		subpaths = append(subpaths, cmds)
	}
	return subpaths
}

func encodePathCommand(pc picture.PathCommand) []any {
	verb := int(pc.Verb())
	switch c := pc.(type) {
	case picture.MoveTo:
		return []any{verb, c.X, c.Y}
	case picture.LineTo:
		return []any{verb, c.X, c.Y}
	case picture.Ellipse:
		return []any{verb, c.X, c.Y, c.RadiusX, c.RadiusY, c.Rotation, c.StartAngle, c.EndAngle, c.Anticlockwise}
	case picture.QuadraticCurveTo:
		return []any{verb, c.X1, c.Y1, c.X2, c.Y2}
	case picture.BezierCurveTo:
		return []any{verb, c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3}
	case picture.RectCommand:
		return []any{verb, c.X, c.Y, c.Width, c.Height}
	case picture.RRectCommand:
		return append([]any{verb}, encodeRRect(c.RRect)...)
	}
	return []any{verb}
}

func encodePaint(p picture.Paint) ([]any, error) {
	shader, err := encodeShader(p.Shader)
	if err != nil {
		return nil, err
	}
	var mask, colorFilter any
	if p.MaskFilter != nil {
		mask = []any{int(p.MaskFilter.Style), p.MaskFilter.Sigma}
	}
	if p.ColorFilter != nil {
		colorFilter = []any{p.ColorFilter.Color.CSS(), p.ColorFilter.BlendMode.Index()}
	}
	return []any{
		p.BlendMode.Index(),
		int(p.Style),
		p.StrokeWidth,
		int(p.StrokeCap),
		p.AntiAlias,
		p.Color.CSS(),
		shader,
		mask,
		int(p.FilterQuality),
		colorFilter,
	}, nil
}

func encodeShader(s picture.Shader) (any, error) {
	switch g := s.(type) {
	case nil:
		return nil, nil
	case *picture.LinearGradient:
		return []any{"linear", g.From.X, g.From.Y, g.To.X, g.To.Y, encodeStops(g.Stops), int(g.Tile)}, nil
	case *picture.RadialGradient:
		return []any{"radial", g.Center.X, g.Center.Y, g.Radius, encodeStops(g.Stops), int(g.Tile)}, nil
	}
	return nil, fmt.Errorf("%w: shader %T", ErrNotSerializable, s)
}

func encodeStops(stops []picture.ColorStop) []any {
	out := make([]any, len(stops))
	for i, s := range stops {
		out[i] = []any{s.Offset, s.Color.CSS()}
	}
	return out
}
