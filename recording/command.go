package recording

import (
	"fmt"
	"image"
	"strconv"

	"github.com/gogpu/picture"
)

// CommandType identifies the variant of a command. Values 1 through 20 are
// the opcodes of the array wire encoding and are never renumbered; the
// remaining variants carry operands that cannot be encoded.
type CommandType uint8

const (
	// State commands
	CmdSave      CommandType = iota + 1 // Save transform and clip
	CmdRestore                          // Restore transform and clip
	CmdTranslate                        // Translate the canvas
	CmdScale                            // Scale the canvas
	CmdRotate                           // Rotate about the z axis
	CmdTransform                        // Multiply by a matrix
	CmdSkew                             // Skew the canvas

	// Clip commands
	CmdClipRect  // Intersect clip with a rectangle
	CmdClipRRect // Intersect clip with a rounded rectangle
	CmdClipPath  // Intersect clip with a path

	// Drawing commands
	CmdDrawColor     // Fill the clip with a color
	CmdDrawLine      // Stroke a line segment
	CmdDrawPaint     // Fill the clip with a paint
	CmdDrawRect      // Draw a rectangle
	CmdDrawRRect     // Draw a rounded rectangle
	CmdDrawDRRect    // Draw the area between two rounded rectangles
	CmdDrawOval      // Draw an ellipse
	CmdDrawCircle    // Draw a circle
	CmdDrawPath      // Draw a path
	CmdDrawShadow    // Draw a material shadow
	CmdDrawImage     // Draw an image at an offset
	CmdDrawImageRect // Draw part of an image into a rectangle
	CmdDrawParagraph // Draw laid-out text
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:          "Save",
	CmdRestore:       "Restore",
	CmdTranslate:     "Translate",
	CmdScale:         "Scale",
	CmdRotate:        "Rotate",
	CmdTransform:     "Transform",
	CmdSkew:          "Skew",
	CmdClipRect:      "ClipRect",
	CmdClipRRect:     "ClipRRect",
	CmdClipPath:      "ClipPath",
	CmdDrawColor:     "DrawColor",
	CmdDrawLine:      "DrawLine",
	CmdDrawPaint:     "DrawPaint",
	CmdDrawRect:      "DrawRect",
	CmdDrawRRect:     "DrawRRect",
	CmdDrawDRRect:    "DrawDRRect",
	CmdDrawOval:      "DrawOval",
	CmdDrawCircle:    "DrawCircle",
	CmdDrawPath:      "DrawPath",
	CmdDrawShadow:    "DrawShadow",
	CmdDrawImage:     "DrawImage",
	CmdDrawImageRect: "DrawImageRect",
	CmdDrawParagraph: "DrawParagraph",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if c > 0 && int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDraw reports whether commands of this type produce visual output.
// Only draw commands are subject to culling.
func (c CommandType) IsDraw() bool {
	return c >= CmdDrawColor && c <= CmdDrawParagraph
}

// IsSerializable reports whether commands of this type have an array wire
// encoding.
func (c CommandType) IsSerializable() bool {
	return c >= CmdSave && c <= CmdDrawShadow
}

// Command is a single recorded paint operation. The set of implementations
// is closed: every variant is declared in this file and handled by Apply and
// the wire codec.
//
// Commands hold their operands by value and are never mutated after
// creation. Pointer operands (paths, shaders, images, paragraphs) are shared
// read-only.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// String returns a human-readable debug representation.
	String() string

	command()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// SaveCommand saves the current transform and clip.
type SaveCommand struct{}

// RestoreCommand restores the most recently saved transform and clip.
type RestoreCommand struct{}

// TranslateCommand translates the canvas.
type TranslateCommand struct {
	DX, DY float64
}

// ScaleCommand scales the canvas.
type ScaleCommand struct {
	SX, SY float64
}

// RotateCommand rotates the canvas about the z axis.
type RotateCommand struct {
	Radians float64
}

// TransformCommand multiplies the current transform by Matrix.
type TransformCommand struct {
	Matrix picture.Matrix4
}

// SkewCommand skews the canvas. SX and SY are matrix values.
type SkewCommand struct {
	SX, SY float64
}

func (SaveCommand) Type() CommandType      { return CmdSave }
func (RestoreCommand) Type() CommandType   { return CmdRestore }
func (TranslateCommand) Type() CommandType { return CmdTranslate }
func (ScaleCommand) Type() CommandType     { return CmdScale }
func (RotateCommand) Type() CommandType    { return CmdRotate }
func (TransformCommand) Type() CommandType { return CmdTransform }
func (SkewCommand) Type() CommandType      { return CmdSkew }

func (SaveCommand) String() string    { return "save()" }
func (RestoreCommand) String() string { return "restore()" }
func (c TranslateCommand) String() string {
	return "translate(" + num(c.DX) + ", " + num(c.DY) + ")"
}
func (c ScaleCommand) String() string { return "scale(" + num(c.SX) + ", " + num(c.SY) + ")" }
func (c RotateCommand) String() string {
	return "rotate(" + strconv.FormatFloat(c.Radians, 'g', -1, 64) + ")"
}
func (c TransformCommand) String() string { return "transform(" + c.Matrix.String() + ")" }
func (c SkewCommand) String() string      { return "skew(" + num(c.SX) + ", " + num(c.SY) + ")" }

// --------------------------------------------------------------------------
// Clip Commands
// --------------------------------------------------------------------------

// ClipRectCommand intersects the clip with a rectangle.
type ClipRectCommand struct {
	Rect picture.Rect
}

// ClipRRectCommand intersects the clip with a rounded rectangle.
type ClipRRectCommand struct {
	RRect picture.RRect
}

// ClipPathCommand intersects the clip with a path.
type ClipPathCommand struct {
	Path *picture.Path
}

func (ClipRectCommand) Type() CommandType  { return CmdClipRect }
func (ClipRRectCommand) Type() CommandType { return CmdClipRRect }
func (ClipPathCommand) Type() CommandType  { return CmdClipPath }

func (c ClipRectCommand) String() string  { return "clipRect(" + c.Rect.String() + ")" }
func (c ClipRRectCommand) String() string { return "clipRRect(" + c.RRect.String() + ")" }
func (c ClipPathCommand) String() string  { return "clipPath(" + c.Path.String() + ")" }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// DrawColorCommand fills the clip with a color.
type DrawColorCommand struct {
	Color     picture.Color
	BlendMode picture.BlendMode
}

// DrawLineCommand strokes the segment P1-P2.
type DrawLineCommand struct {
	P1, P2 picture.Point
	Paint  picture.Paint
}

// DrawPaintCommand fills the clip with a paint.
type DrawPaintCommand struct {
	Paint picture.Paint
}

// DrawRectCommand draws a rectangle.
type DrawRectCommand struct {
	Rect  picture.Rect
	Paint picture.Paint
}

// DrawRRectCommand draws a rounded rectangle.
type DrawRRectCommand struct {
	RRect picture.RRect
	Paint picture.Paint
}

// DrawDRRectCommand draws the area inside Outer and outside Inner.
type DrawDRRectCommand struct {
	Outer, Inner picture.RRect
	Paint        picture.Paint
}

// DrawOvalCommand draws the ellipse inscribed in Rect.
type DrawOvalCommand struct {
	Rect  picture.Rect
	Paint picture.Paint
}

// DrawCircleCommand draws a circle.
type DrawCircleCommand struct {
	Center picture.Point
	Radius float64
	Paint  picture.Paint
}

// DrawPathCommand draws a path.
type DrawPathCommand struct {
	Path  *picture.Path
	Paint picture.Paint
}

// DrawShadowCommand draws the shadow cast by Path at Elevation.
type DrawShadowCommand struct {
	Path                *picture.Path
	Color               picture.Color
	Elevation           float64
	TransparentOccluder bool
}

// DrawImageCommand draws an image with its top-left corner at Offset.
type DrawImageCommand struct {
	Image  image.Image
	Offset picture.Point
	Paint  picture.Paint
}

// DrawImageRectCommand draws the Src region of an image into Dst.
type DrawImageRectCommand struct {
	Image    image.Image
	Src, Dst picture.Rect
	Paint    picture.Paint
}

// DrawParagraphCommand draws a laid-out paragraph at Offset.
type DrawParagraphCommand struct {
	Paragraph Paragraph
	Offset    picture.Point
}

func (DrawColorCommand) Type() CommandType     { return CmdDrawColor }
func (DrawLineCommand) Type() CommandType      { return CmdDrawLine }
func (DrawPaintCommand) Type() CommandType     { return CmdDrawPaint }
func (DrawRectCommand) Type() CommandType      { return CmdDrawRect }
func (DrawRRectCommand) Type() CommandType     { return CmdDrawRRect }
func (DrawDRRectCommand) Type() CommandType    { return CmdDrawDRRect }
func (DrawOvalCommand) Type() CommandType      { return CmdDrawOval }
func (DrawCircleCommand) Type() CommandType    { return CmdDrawCircle }
func (DrawPathCommand) Type() CommandType      { return CmdDrawPath }
func (DrawShadowCommand) Type() CommandType    { return CmdDrawShadow }
func (DrawImageCommand) Type() CommandType     { return CmdDrawImage }
func (DrawImageRectCommand) Type() CommandType { return CmdDrawImageRect }
func (DrawParagraphCommand) Type() CommandType { return CmdDrawParagraph }

func (c DrawColorCommand) String() string {
	return "drawColor(" + c.Color.String() + ", " + c.BlendMode.String() + ")"
}

func (c DrawLineCommand) String() string {
	return "drawLine(" + c.P1.String() + ", " + c.P2.String() + ", " + c.Paint.String() + ")"
}

func (c DrawPaintCommand) String() string { return "drawPaint(" + c.Paint.String() + ")" }

func (c DrawRectCommand) String() string {
	return "drawRect(" + c.Rect.String() + ", " + c.Paint.String() + ")"
}

func (c DrawRRectCommand) String() string {
	return "drawRRect(" + c.RRect.String() + ", " + c.Paint.String() + ")"
}

func (c DrawDRRectCommand) String() string {
	return "drawDRRect(" + c.Outer.String() + ", " + c.Inner.String() + ", " + c.Paint.String() + ")"
}

func (c DrawOvalCommand) String() string {
	return "drawOval(" + c.Rect.String() + ", " + c.Paint.String() + ")"
}

func (c DrawCircleCommand) String() string {
	return "drawCircle(" + c.Center.String() + ", " + num(c.Radius) + ", " + c.Paint.String() + ")"
}

func (c DrawPathCommand) String() string {
	return "drawPath(" + c.Path.String() + ", " + c.Paint.String() + ")"
}

func (c DrawShadowCommand) String() string {
	return fmt.Sprintf("drawShadow(%s, %s, %s, %t)", c.Path, c.Color, num(c.Elevation), c.TransparentOccluder)
}

func (c DrawImageCommand) String() string {
	return fmt.Sprintf("drawImage(%v, %s, %s)", imageSize(c.Image), c.Offset, c.Paint)
}

func (c DrawImageRectCommand) String() string {
	return fmt.Sprintf("drawImageRect(%v, %s, %s, %s)", imageSize(c.Image), c.Src, c.Dst, c.Paint)
}

func (c DrawParagraphCommand) String() string {
	return "drawParagraph(" + c.Paragraph.PaintBounds().String() + ", " + c.Offset.String() + ")"
}

func imageSize(img image.Image) string {
	if img == nil {
		return "Image(nil)"
	}
	b := img.Bounds()
	return "Image(" + strconv.Itoa(b.Dx()) + "x" + strconv.Itoa(b.Dy()) + ")"
}

func (SaveCommand) command()          {}
func (RestoreCommand) command()       {}
func (TranslateCommand) command()     {}
func (ScaleCommand) command()         {}
func (RotateCommand) command()        {}
func (TransformCommand) command()     {}
func (SkewCommand) command()          {}
func (ClipRectCommand) command()      {}
func (ClipRRectCommand) command()     {}
func (ClipPathCommand) command()      {}
func (DrawColorCommand) command()     {}
func (DrawLineCommand) command()      {}
func (DrawPaintCommand) command()     {}
func (DrawRectCommand) command()      {}
func (DrawRRectCommand) command()     {}
func (DrawDRRectCommand) command()    {}
func (DrawOvalCommand) command()      {}
func (DrawCircleCommand) command()    {}
func (DrawPathCommand) command()      {}
func (DrawShadowCommand) command()    {}
func (DrawImageCommand) command()     {}
func (DrawImageRectCommand) command() {}
func (DrawParagraphCommand) command() {}
