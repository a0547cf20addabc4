package recording

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/gogpu/picture"
)

// UnmarshalWire decodes a JSON array produced by MarshalWire back into
// commands. Re-encoding the result reproduces the input bytes.
func UnmarshalWire(data []byte) ([]Command, error) {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWire, err)
	}
	return DecodeCommands(raw)
}

// DecodeCommands decodes a list of command arrays as returned by
// EncodeCommands or by a JSON decoder.
func DecodeCommands(raw []any) ([]Command, error) {
	out := make([]Command, 0, len(raw))
	for i, v := range raw {
		cmd, err := DecodeCommand(v)
		if err != nil {
			return nil, fmt.Errorf("recording: decode command %d: %w", i, err)
		}
		out = append(out, cmd)
	}
	return out, nil
}

// DecodeCommand decodes one command array.
func DecodeCommand(v any) (Command, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("%w: command is not a non-empty array", ErrInvalidWire)
	}
	r := &wireReader{vals: list}
	op := CommandType(r.int())

	var cmd Command
	switch op {
	case CmdSave:
		cmd = SaveCommand{}
	case CmdRestore:
		cmd = RestoreCommand{}
	case CmdTranslate:
		cmd = TranslateCommand{DX: r.float(), DY: r.float()}
	case CmdScale:
		cmd = ScaleCommand{SX: r.float(), SY: r.float()}
	case CmdRotate:
		cmd = RotateCommand{Radians: r.float()}
	case CmdTransform:
		var m picture.Matrix4
		for i := range m {
			m[i] = r.float()
		}
		cmd = TransformCommand{Matrix: m}
	case CmdSkew:
		cmd = SkewCommand{SX: r.float(), SY: r.float()}
	case CmdClipRect:
		cmd = ClipRectCommand{Rect: r.rect()}
	case CmdClipRRect:
		cmd = ClipRRectCommand{RRect: r.rrect()}
	case CmdClipPath:
		cmd = ClipPathCommand{Path: r.path()}
	case CmdDrawColor:
		cmd = DrawColorCommand{Color: r.color(), BlendMode: r.blendMode()}
	case CmdDrawLine:
		c := DrawLineCommand{}
		c.P1 = picture.Pt(r.float(), r.float())
		c.P2 = picture.Pt(r.float(), r.float())
		c.Paint = r.paint()
		cmd = c
	case CmdDrawPaint:
		cmd = DrawPaintCommand{Paint: r.paint()}
	case CmdDrawRect:
		cmd = DrawRectCommand{Rect: r.rect(), Paint: r.paint()}
	case CmdDrawRRect:
		cmd = DrawRRectCommand{RRect: r.rrect(), Paint: r.paint()}
	case CmdDrawDRRect:
		cmd = DrawDRRectCommand{Outer: r.rrect(), Inner: r.rrect(), Paint: r.paint()}
	case CmdDrawOval:
		cmd = DrawOvalCommand{Rect: r.rect(), Paint: r.paint()}
	case CmdDrawCircle:
		cmd = DrawCircleCommand{Center: picture.Pt(r.float(), r.float()), Radius: r.float(), Paint: r.paint()}
	case CmdDrawPath:
		cmd = DrawPathCommand{Path: r.path(), Paint: r.paint()}
	case CmdDrawShadow:
		c := DrawShadowCommand{Path: r.path()}
		argb := r.sub()
		c.Color = picture.ARGB(argb.byte(), argb.byte(), argb.byte(), argb.byte())
		r.adopt(argb)
		c.Elevation = r.float()
		c.TransparentOccluder = r.bool()
		cmd = c
	default:
		if r.err == nil {
			return nil, fmt.Errorf("%w: unknown opcode %d", ErrInvalidWire, op)
		}
	}
	if r.err == nil && r.pos != len(r.vals) {
		r.fail("%d trailing values", len(r.vals)-r.pos)
	}
	if r.err != nil {
		return nil, fmt.Errorf("%s: %w", op, r.err)
	}
	return cmd, nil
}

// wireReader consumes a decoded JSON array front to back. The first failure
// is sticky; later reads return zero values.
type wireReader struct {
	vals []any
	pos  int
	err  error
}

func (r *wireReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrInvalidWire}, args...)...)
	}
}

// adopt carries a nested reader's failure into r.
func (r *wireReader) adopt(sub *wireReader) {
	if sub.err != nil && r.err == nil {
		r.err = sub.err
	}
	if r.err == nil && sub.pos != len(sub.vals) {
		r.fail("%d trailing values in nested array", len(sub.vals)-sub.pos)
	}
}

func (r *wireReader) next() (any, bool) {
	if r.err != nil {
		return nil, false
	}
	if r.pos >= len(r.vals) {
		r.fail("missing operand %d", r.pos)
		return nil, false
	}
	v := r.vals[r.pos]
	r.pos++
	return v, true
}

func (r *wireReader) float() float64 {
	v, ok := r.next()
	if !ok {
		return 0
	}
	switch f := v.(type) {
	case float64:
		return f
	case int:
		return float64(f)
	case json.Number:
		x, err := f.Float64()
		if err != nil {
			r.fail("bad number %q", f)
		}
		return x
	}
	r.fail("operand %d is %T, want number", r.pos-1, v)
	return 0
}

func (r *wireReader) int() int {
	f := r.float()
	if f != math.Trunc(f) {
		r.fail("operand %d is %v, want integer", r.pos-1, f)
	}
	return int(f)
}

func (r *wireReader) byte() uint8 {
	i := r.int()
	if i < 0 || i > 255 {
		r.fail("channel %d out of range", i)
	}
	return uint8(i)
}

func (r *wireReader) bool() bool {
	v, ok := r.next()
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		r.fail("operand %d is %T, want bool", r.pos-1, v)
	}
	return b
}

func (r *wireReader) str() string {
	v, ok := r.next()
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		r.fail("operand %d is %T, want string", r.pos-1, v)
	}
	return s
}

// sub returns a reader over the next operand, which must be an array.
func (r *wireReader) sub() *wireReader {
	v, ok := r.next()
	if !ok {
		return &wireReader{err: r.err}
	}
	list, isList := v.([]any)
	if !isList {
		r.fail("operand %d is %T, want array", r.pos-1, v)
		return &wireReader{err: r.err}
	}
	return &wireReader{vals: list}
}

// optional returns nil when the next operand is null, otherwise a reader
// over it.
func (r *wireReader) optional() *wireReader {
	if r.err == nil && r.pos < len(r.vals) && r.vals[r.pos] == nil {
		r.pos++
		return nil
	}
	return r.sub()
}

func (r *wireReader) color() picture.Color {
	s := r.str()
	if r.err != nil {
		return 0
	}
	c, err := picture.ParseCSSColor(s)
	if err != nil {
		r.fail("%v", err)
	}
	return c
}

func (r *wireReader) blendMode() picture.BlendMode {
	i := r.int()
	m, ok := picture.BlendModeFromIndex(i)
	if !ok && r.err == nil {
		r.fail("unknown blend mode %d", i)
	}
	return m
}

func (r *wireReader) enum(limit int, what string) int {
	i := r.int()
	if (i < 0 || i >= limit) && r.err == nil {
		r.fail("unknown %s %d", what, i)
	}
	return i
}

func (r *wireReader) rect() picture.Rect {
	s := r.sub()
	rect := picture.LTRB(s.float(), s.float(), s.float(), s.float())
	r.adopt(s)
	return rect
}

func (r *wireReader) rrect() picture.RRect {
	s := r.sub()
	rr := s.rrectFields()
	r.adopt(s)
	return rr
}

// rrectFields reads the 12 rrect values inline.
func (r *wireReader) rrectFields() picture.RRect {
	rr := picture.RRect{Left: r.float(), Top: r.float(), Right: r.float(), Bottom: r.float()}
	rr.TopLeft = picture.Radius{X: r.float(), Y: r.float()}
	rr.TopRight = picture.Radius{X: r.float(), Y: r.float()}
	rr.BottomRight = picture.Radius{X: r.float(), Y: r.float()}
	rr.BottomLeft = picture.Radius{X: r.float(), Y: r.float()}
	return rr
}

func (r *wireReader) path() *picture.Path {
	s := r.sub()
	p := picture.NewPath()
	for s.err == nil && s.pos < len(s.vals) {
		sp := s.sub()
		var cmds []picture.PathCommand
		for sp.err == nil && sp.pos < len(sp.vals) {
			pc := sp.sub()
			cmds = append(cmds, pc.pathCommand())
			sp.adopt(pc)
		}
		s.adopt(sp)
		p.Subpaths = append(p.Subpaths, picture.SubpathOf(cmds...))
	}
	r.adopt(s)
	return p
}

func (r *wireReader) pathCommand() picture.PathCommand {
	verb := picture.PathVerb(r.int())
	switch verb {
	case picture.VerbMoveTo:
		return picture.MoveTo{X: r.float(), Y: r.float()}
	case picture.VerbLineTo:
		return picture.LineTo{X: r.float(), Y: r.float()}
	case picture.VerbEllipse:
		return picture.Ellipse{
			X: r.float(), Y: r.float(),
			RadiusX: r.float(), RadiusY: r.float(),
			Rotation:   r.float(),
			StartAngle: r.float(), EndAngle: r.float(),
			Anticlockwise: r.bool(),
		}
	case picture.VerbQuadraticCurveTo:
		return picture.QuadraticCurveTo{X1: r.float(), Y1: r.float(), X2: r.float(), Y2: r.float()}
	case picture.VerbBezierCurveTo:
		return picture.BezierCurveTo{X1: r.float(), Y1: r.float(), X2: r.float(), Y2: r.float(), X3: r.float(), Y3: r.float()}
	case picture.VerbRect:
		return picture.RectCommand{X: r.float(), Y: r.float(), Width: r.float(), Height: r.float()}
	case picture.VerbRRect:
		return picture.RRectCommand{RRect: r.rrectFields()}
	case picture.VerbClose:
		return picture.Close{}
	}
	r.fail("unknown path verb %d", verb)
	return picture.Close{}
}

func (r *wireReader) paint() picture.Paint {
	s := r.sub()
	var p picture.Paint
	p.BlendMode = s.blendMode()
	p.Style = picture.PaintingStyle(s.enum(2, "painting style"))
	p.StrokeWidth = s.float()
	p.StrokeCap = picture.StrokeCap(s.enum(3, "stroke cap"))
	p.AntiAlias = s.bool()
	p.Color = s.color()
	if sh := s.optional(); sh != nil {
		p.Shader = sh.shader()
		s.adopt(sh)
	}
	if mf := s.optional(); mf != nil {
		p.MaskFilter = &picture.MaskFilter{
			Style: picture.BlurStyle(mf.enum(4, "blur style")),
			Sigma: mf.float(),
		}
		s.adopt(mf)
	}
	p.FilterQuality = picture.FilterQuality(s.enum(4, "filter quality"))
	if cf := s.optional(); cf != nil {
		p.ColorFilter = &picture.ColorFilter{Color: cf.color(), BlendMode: cf.blendMode()}
		s.adopt(cf)
	}
	r.adopt(s)
	return p
}

func (r *wireReader) shader() picture.Shader {
	switch kind := r.str(); kind {
	case "linear":
		g := &picture.LinearGradient{}
		g.From = picture.Pt(r.float(), r.float())
		g.To = picture.Pt(r.float(), r.float())
		g.Stops = r.stops()
		g.Tile = picture.TileMode(r.enum(3, "tile mode"))
		return g
	case "radial":
		g := &picture.RadialGradient{}
		g.Center = picture.Pt(r.float(), r.float())
		g.Radius = r.float()
		g.Stops = r.stops()
		g.Tile = picture.TileMode(r.enum(3, "tile mode"))
		return g
	default:
		if r.err == nil {
			r.fail("unknown shader %q", kind)
		}
	}
	return nil
}

func (r *wireReader) stops() []picture.ColorStop {
	s := r.sub()
	stops := make([]picture.ColorStop, 0, len(s.vals))
	for s.err == nil && s.pos < len(s.vals) {
		st := s.sub()
		stops = append(stops, picture.ColorStop{Offset: st.float(), Color: st.color()})
		s.adopt(st)
	}
	r.adopt(s)
	return stops
}
