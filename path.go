package picture

import (
	"math"
	"strconv"
)

// PathVerb identifies a path command. The numeric values are the opcodes of
// the path sub-encoding in the array wire format and must never change.
type PathVerb uint8

const (
	VerbMoveTo           PathVerb = 1
	VerbLineTo           PathVerb = 2
	VerbEllipse          PathVerb = 3
	VerbQuadraticCurveTo PathVerb = 4
	VerbBezierCurveTo    PathVerb = 5
	VerbRect             PathVerb = 6
	VerbRRect            PathVerb = 7
	VerbClose            PathVerb = 8
)

var pathVerbNames = [...]string{
	VerbMoveTo:           "MoveTo",
	VerbLineTo:           "LineTo",
	VerbEllipse:          "Ellipse",
	VerbQuadraticCurveTo: "QuadraticCurveTo",
	VerbBezierCurveTo:    "BezierCurveTo",
	VerbRect:             "Rect",
	VerbRRect:            "RRect",
	VerbClose:            "Close",
}

// String returns the name of the verb.
func (v PathVerb) String() string {
	if int(v) < len(pathVerbNames) && pathVerbNames[v] != "" {
		return pathVerbNames[v]
	}
	return "Unknown"
}

// PathCommand is one element of a Subpath. The set of implementations is
// closed: MoveTo, LineTo, QuadraticCurveTo, BezierCurveTo, Ellipse,
// RectCommand, RRectCommand and Close.
type PathCommand interface {
	// Verb returns the command's wire opcode.
	Verb() PathVerb

	// shifted returns a copy translated by off.
	shifted(off Point) PathCommand
}

// MoveTo starts a new contour at (X, Y).
type MoveTo struct{ X, Y float64 }

// LineTo draws a straight line to (X, Y).
type LineTo struct{ X, Y float64 }

// QuadraticCurveTo draws a quadratic Bézier with control point (X1, Y1)
// ending at (X2, Y2).
type QuadraticCurveTo struct{ X1, Y1, X2, Y2 float64 }

// BezierCurveTo draws a cubic Bézier with control points (X1, Y1) and
// (X2, Y2) ending at (X3, Y3).
type BezierCurveTo struct{ X1, Y1, X2, Y2, X3, Y3 float64 }

// Ellipse draws an elliptical arc centered at (X, Y), rotated by Rotation,
// from StartAngle to EndAngle.
type Ellipse struct {
	X, Y             float64
	RadiusX, RadiusY float64
	Rotation         float64
	StartAngle       float64
	EndAngle         float64
	Anticlockwise    bool
}

// RectCommand adds a closed axis-aligned rectangle.
type RectCommand struct{ X, Y, Width, Height float64 }

// RRectCommand adds a closed rounded rectangle.
type RRectCommand struct{ RRect RRect }

// Close closes the current contour.
type Close struct{}

func (MoveTo) Verb() PathVerb           { return VerbMoveTo }
func (LineTo) Verb() PathVerb           { return VerbLineTo }
func (QuadraticCurveTo) Verb() PathVerb { return VerbQuadraticCurveTo }
func (BezierCurveTo) Verb() PathVerb    { return VerbBezierCurveTo }
func (Ellipse) Verb() PathVerb          { return VerbEllipse }
func (RectCommand) Verb() PathVerb      { return VerbRect }
func (RRectCommand) Verb() PathVerb     { return VerbRRect }
func (Close) Verb() PathVerb            { return VerbClose }

func (c MoveTo) shifted(o Point) PathCommand { return MoveTo{X: c.X + o.X, Y: c.Y + o.Y} }
func (c LineTo) shifted(o Point) PathCommand { return LineTo{X: c.X + o.X, Y: c.Y + o.Y} }
func (c QuadraticCurveTo) shifted(o Point) PathCommand {
	return QuadraticCurveTo{X1: c.X1 + o.X, Y1: c.Y1 + o.Y, X2: c.X2 + o.X, Y2: c.Y2 + o.Y}
}
func (c BezierCurveTo) shifted(o Point) PathCommand {
	return BezierCurveTo{
		X1: c.X1 + o.X, Y1: c.Y1 + o.Y,
		X2: c.X2 + o.X, Y2: c.Y2 + o.Y,
		X3: c.X3 + o.X, Y3: c.Y3 + o.Y,
	}
}
func (c Ellipse) shifted(o Point) PathCommand {
	c.X += o.X
	c.Y += o.Y
	return c
}
func (c RectCommand) shifted(o Point) PathCommand {
	c.X += o.X
	c.Y += o.Y
	return c
}
func (c RRectCommand) shifted(o Point) PathCommand { return RRectCommand{RRect: c.RRect.Shift(o)} }
func (c Close) shifted(Point) PathCommand          { return c }

// Subpath is one contour of a Path. StartX/StartY is where the contour began
// and CurrentX/CurrentY the pen position after its last command.
type Subpath struct {
	StartX, StartY     float64
	CurrentX, CurrentY float64
	Commands           []PathCommand
}

// FillType selects how the interior of a self-intersecting path is decided.
type FillType uint8

const (
	// FillNonZero uses the non-zero winding rule.
	FillNonZero FillType = iota
	// FillEvenOdd uses the even-odd rule.
	FillEvenOdd
)

// Path is an ordered sequence of subpaths.
//
// Paths are built with the pointer methods below. Once handed to a recorder
// a path is treated as immutable: the recorder stores a Clone, and Shift
// always returns a new path.
type Path struct {
	Subpaths []Subpath
	FillType FillType
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

func (p *Path) last() *Subpath {
	return &p.Subpaths[len(p.Subpaths)-1]
}

func (p *Path) ensureSubpath() {
	if len(p.Subpaths) == 0 {
		p.MoveTo(0, 0)
	}
}

func (p *Path) startSubpath(x, y float64, cmd PathCommand) {
	p.Subpaths = append(p.Subpaths, Subpath{
		StartX: x, StartY: y,
		CurrentX: x, CurrentY: y,
		Commands: []PathCommand{cmd},
	})
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.startSubpath(x, y, MoveTo{X: x, Y: y})
}

// LineTo adds a line from the current point to (x, y). A path without a
// current point starts at the origin.
func (p *Path) LineTo(x, y float64) {
	p.ensureSubpath()
	sp := p.last()
	sp.Commands = append(sp.Commands, LineTo{X: x, Y: y})
	sp.CurrentX, sp.CurrentY = x, y
}

// QuadraticBezierTo adds a quadratic Bézier curve.
func (p *Path) QuadraticBezierTo(x1, y1, x2, y2 float64) {
	p.ensureSubpath()
	sp := p.last()
	sp.Commands = append(sp.Commands, QuadraticCurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2})
	sp.CurrentX, sp.CurrentY = x2, y2
}

// CubicTo adds a cubic Bézier curve.
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.ensureSubpath()
	sp := p.last()
	sp.Commands = append(sp.Commands, BezierCurveTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3})
	sp.CurrentX, sp.CurrentY = x3, y3
}

// Close closes the current subpath and moves the pen back to its start.
func (p *Path) Close() {
	if len(p.Subpaths) == 0 {
		return
	}
	sp := p.last()
	sp.Commands = append(sp.Commands, Close{})
	sp.CurrentX, sp.CurrentY = sp.StartX, sp.StartY
}

// AddRect adds r as a new closed subpath.
func (p *Path) AddRect(r Rect) {
	p.startSubpath(r.Left, r.Top, RectCommand{X: r.Left, Y: r.Top, Width: r.Width(), Height: r.Height()})
}

// AddRRect adds rr as a new closed subpath.
func (p *Path) AddRRect(rr RRect) {
	p.startSubpath(rr.Left, rr.Top, RRectCommand{RRect: rr})
}

// AddOval adds the ellipse inscribed in r as a new closed subpath.
func (p *Path) AddOval(r Rect) {
	c := r.Center()
	rx, ry := r.Width()/2, r.Height()/2
	p.startSubpath(c.X+rx, c.Y, Ellipse{
		X: c.X, Y: c.Y, RadiusX: rx, RadiusY: ry,
		EndAngle: 2 * math.Pi,
	})
}

// AddArc adds an arc of the ellipse inscribed in oval as a new subpath,
// starting at startAngle and sweeping by sweepAngle radians.
func (p *Path) AddArc(oval Rect, startAngle, sweepAngle float64) {
	c := oval.Center()
	rx, ry := oval.Width()/2, oval.Height()/2
	sin, cos := math.Sincos(startAngle)
	p.MoveTo(c.X+rx*cos, c.Y+ry*sin)
	sp := p.last()
	sp.Commands = append(sp.Commands, Ellipse{
		X: c.X, Y: c.Y, RadiusX: rx, RadiusY: ry,
		StartAngle:    startAngle,
		EndAngle:      startAngle + sweepAngle,
		Anticlockwise: sweepAngle < 0,
	})
	sin, cos = math.Sincos(startAngle + sweepAngle)
	sp.CurrentX, sp.CurrentY = c.X+rx*cos, c.Y+ry*sin
}

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool {
	for i := range p.Subpaths {
		if len(p.Subpaths[i].Commands) > 0 {
			return false
		}
	}
	return true
}

// Bounds returns a conservative axis-aligned bounding box of the path.
// Curves contribute their control points; ellipses contribute the box of the
// full (possibly rotated) ellipse. An empty path has zero bounds.
func (p *Path) Bounds() Rect {
	b := boundsAccumulator{}
	for i := range p.Subpaths {
		for _, cmd := range p.Subpaths[i].Commands {
			switch c := cmd.(type) {
			case MoveTo:
				b.add(c.X, c.Y)
			case LineTo:
				b.add(c.X, c.Y)
			case QuadraticCurveTo:
				b.add(c.X1, c.Y1)
				b.add(c.X2, c.Y2)
			case BezierCurveTo:
				b.add(c.X1, c.Y1)
				b.add(c.X2, c.Y2)
				b.add(c.X3, c.Y3)
			case Ellipse:
				sin, cos := math.Sincos(c.Rotation)
				hw := math.Hypot(c.RadiusX*cos, c.RadiusY*sin)
				hh := math.Hypot(c.RadiusX*sin, c.RadiusY*cos)
				b.add(c.X-hw, c.Y-hh)
				b.add(c.X+hw, c.Y+hh)
			case RectCommand:
				b.add(c.X, c.Y)
				b.add(c.X+c.Width, c.Y+c.Height)
			case RRectCommand:
				b.add(c.RRect.Left, c.RRect.Top)
				b.add(c.RRect.Right, c.RRect.Bottom)
			}
		}
	}
	return b.rect()
}

// ToRect returns the rectangle when the path consists of exactly one
// rectangle command.
func (p *Path) ToRect() (Rect, bool) {
	if len(p.Subpaths) != 1 || len(p.Subpaths[0].Commands) != 1 {
		return Rect{}, false
	}
	c, ok := p.Subpaths[0].Commands[0].(RectCommand)
	if !ok {
		return Rect{}, false
	}
	return LTWH(c.X, c.Y, c.Width, c.Height), true
}

// ToRRect returns the rounded rectangle when the path consists of exactly
// one rounded-rectangle command.
func (p *Path) ToRRect() (RRect, bool) {
	if len(p.Subpaths) != 1 || len(p.Subpaths[0].Commands) != 1 {
		return RRect{}, false
	}
	c, ok := p.Subpaths[0].Commands[0].(RRectCommand)
	if !ok {
		return RRect{}, false
	}
	return c.RRect, true
}

// Shift returns a deep copy of the path translated by offset. The receiver is
// never modified.
func (p *Path) Shift(offset Point) *Path {
	out := &Path{FillType: p.FillType, Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		cmds := make([]PathCommand, len(sp.Commands))
		for j, c := range sp.Commands {
			cmds[j] = c.shifted(offset)
		}
		out.Subpaths[i] = Subpath{
			StartX: sp.StartX + offset.X, StartY: sp.StartY + offset.Y,
			CurrentX: sp.CurrentX + offset.X, CurrentY: sp.CurrentY + offset.Y,
			Commands: cmds,
		}
	}
	return out
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	out := &Path{FillType: p.FillType, Subpaths: make([]Subpath, len(p.Subpaths))}
	for i, sp := range p.Subpaths {
		out.Subpaths[i] = sp
		out.Subpaths[i].Commands = append([]PathCommand(nil), sp.Commands...)
	}
	return out
}

// String returns the debug representation of the path.
func (p *Path) String() string {
	if p == nil {
		return "Path(nil)"
	}
	return "Path(subpaths: " + strconv.Itoa(len(p.Subpaths)) + ", bounds: " + p.Bounds().String() + ")"
}

// boundsAccumulator collects min/max over a point set.
type boundsAccumulator struct {
	seen                   bool
	minX, minY, maxX, maxY float64
}

func (b *boundsAccumulator) add(x, y float64) {
	if !b.seen {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.seen = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *boundsAccumulator) rect() Rect {
	if !b.seen {
		return Rect{}
	}
	return Rect{Left: b.minX, Top: b.minY, Right: b.maxX, Bottom: b.maxY}
}

// SubpathOf builds a subpath from commands, deriving its start and current
// points the same way the path builders do.
func SubpathOf(cmds ...PathCommand) Subpath {
	sp := Subpath{Commands: cmds}
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case MoveTo:
			sp.StartX, sp.StartY = c.X, c.Y
			sp.CurrentX, sp.CurrentY = c.X, c.Y
		case LineTo:
			sp.CurrentX, sp.CurrentY = c.X, c.Y
		case QuadraticCurveTo:
			sp.CurrentX, sp.CurrentY = c.X2, c.Y2
		case BezierCurveTo:
			sp.CurrentX, sp.CurrentY = c.X3, c.Y3
		case Ellipse:
			sinR, cosR := math.Sincos(c.Rotation)
			sinE, cosE := math.Sincos(c.EndAngle)
			sp.CurrentX = c.X + c.RadiusX*cosE*cosR - c.RadiusY*sinE*sinR
			sp.CurrentY = c.Y + c.RadiusX*cosE*sinR + c.RadiusY*sinE*cosR
		case RectCommand:
			sp.StartX, sp.StartY = c.X, c.Y
			sp.CurrentX, sp.CurrentY = c.X, c.Y
		case RRectCommand:
			sp.StartX, sp.StartY = c.RRect.Left, c.RRect.Top
			sp.CurrentX, sp.CurrentY = c.RRect.Left, c.RRect.Top
		case Close:
			sp.CurrentX, sp.CurrentY = sp.StartX, sp.StartY
		}
	}
	return sp
}
