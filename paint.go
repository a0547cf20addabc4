package picture

import (
	"strconv"
	"strings"
)

// BlendMode selects how a source color is composited onto the destination.
// The zero value is BlendModeSrcOver. The wire encoding uses Index, which is
// independent of the Go constant values.
type BlendMode uint8

const (
	BlendModeSrcOver BlendMode = iota
	BlendModeClear
	BlendModeSrc
	BlendModeDst
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity

	blendModeCount
)

var blendModeInfo = [blendModeCount]struct {
	index int
	name  string
}{
	BlendModeClear:      {0, "clear"},
	BlendModeSrc:        {1, "src"},
	BlendModeDst:        {2, "dst"},
	BlendModeSrcOver:    {3, "srcOver"},
	BlendModeDstOver:    {4, "dstOver"},
	BlendModeSrcIn:      {5, "srcIn"},
	BlendModeDstIn:      {6, "dstIn"},
	BlendModeSrcOut:     {7, "srcOut"},
	BlendModeDstOut:     {8, "dstOut"},
	BlendModeSrcATop:    {9, "srcATop"},
	BlendModeDstATop:    {10, "dstATop"},
	BlendModeXor:        {11, "xor"},
	BlendModePlus:       {12, "plus"},
	BlendModeModulate:   {13, "modulate"},
	BlendModeScreen:     {14, "screen"},
	BlendModeOverlay:    {15, "overlay"},
	BlendModeDarken:     {16, "darken"},
	BlendModeLighten:    {17, "lighten"},
	BlendModeColorDodge: {18, "colorDodge"},
	BlendModeColorBurn:  {19, "colorBurn"},
	BlendModeHardLight:  {20, "hardLight"},
	BlendModeSoftLight:  {21, "softLight"},
	BlendModeDifference: {22, "difference"},
	BlendModeExclusion:  {23, "exclusion"},
	BlendModeMultiply:   {24, "multiply"},
	BlendModeHue:        {25, "hue"},
	BlendModeSaturation: {26, "saturation"},
	BlendModeColor:      {27, "color"},
	BlendModeLuminosity: {28, "luminosity"},
}

// Index returns the stable wire index of the blend mode (clear=0, src=1,
// dst=2, srcOver=3, ..., luminosity=28).
func (m BlendMode) Index() int {
	if m < blendModeCount {
		return blendModeInfo[m].index
	}
	return -1
}

// BlendModeFromIndex returns the blend mode with the given wire index.
func BlendModeFromIndex(i int) (BlendMode, bool) {
	for m := BlendMode(0); m < blendModeCount; m++ {
		if blendModeInfo[m].index == i {
			return m, true
		}
	}
	return 0, false
}

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	if m < blendModeCount {
		return blendModeInfo[m].name
	}
	return "unknown"
}

// PaintingStyle selects whether shapes are filled or outlined.
type PaintingStyle uint8

const (
	// PaintingStyleFill fills the interior of shapes.
	PaintingStyleFill PaintingStyle = iota
	// PaintingStyleStroke outlines shapes with the stroke width.
	PaintingStyleStroke
)

// String returns the name of the style.
func (s PaintingStyle) String() string {
	if s == PaintingStyleStroke {
		return "stroke"
	}
	return "fill"
}

// StrokeCap specifies the shape of open line endpoints.
type StrokeCap uint8

const (
	StrokeCapButt StrokeCap = iota
	StrokeCapRound
	StrokeCapSquare
)

// StrokeJoin specifies the shape of corners where segments meet.
type StrokeJoin uint8

const (
	StrokeJoinMiter StrokeJoin = iota
	StrokeJoinRound
	StrokeJoinBevel
)

// FilterQuality selects image sampling quality.
type FilterQuality uint8

const (
	FilterQualityNone FilterQuality = iota
	FilterQualityLow
	FilterQualityMedium
	FilterQualityHigh
)

// BlurStyle selects which side of a shape edge a mask-filter blur covers.
type BlurStyle uint8

const (
	BlurStyleNormal BlurStyle = iota
	BlurStyleSolid
	BlurStyleOuter
	BlurStyleInner
)

// MaskFilter blurs the coverage of a shape before it is painted.
// Sigma is the standard deviation of the Gaussian.
type MaskFilter struct {
	Style BlurStyle
	Sigma float64
}

// ColorFilter blends Color into every painted pixel using BlendMode.
type ColorFilter struct {
	Color     Color
	BlendMode BlendMode
}

// Paint describes how a shape is drawn. Paint is a value type; the Shader,
// MaskFilter and ColorFilter it points to are shared and must not be
// modified while a recording referencing them is alive.
type Paint struct {
	BlendMode     BlendMode
	Style         PaintingStyle
	StrokeWidth   float64
	StrokeCap     StrokeCap
	StrokeJoin    StrokeJoin
	AntiAlias     bool
	Color         Color
	Shader        Shader
	MaskFilter    *MaskFilter
	ColorFilter   *ColorFilter
	FilterQuality FilterQuality
}

// DefaultPaint returns an anti-aliased black src-over fill.
func DefaultPaint() Paint {
	return Paint{
		BlendMode: BlendModeSrcOver,
		Style:     PaintingStyleFill,
		AntiAlias: true,
		Color:     Black,
	}
}

// FillPaint returns the default paint with the given color.
func FillPaint(c Color) Paint {
	p := DefaultPaint()
	p.Color = c
	return p
}

// StrokePaint returns a stroking paint with the given color and width.
func StrokePaint(c Color, width float64) Paint {
	p := DefaultPaint()
	p.Color = c
	p.Style = PaintingStyleStroke
	p.StrokeWidth = width
	return p
}

// sqrtOfTwoDivByTwo accounts for miter joins meeting at 90 degrees: half of
// the stroke lies outside the shape, scaled by sqrt(2) at corners.
const sqrtOfTwoDivByTwo = 0.70710678118

// Spread returns how far painting with p may reach beyond the geometric
// outline of a shape: twice the blur sigma of a mask filter plus the outer
// part of a stroke.
func (p Paint) Spread() float64 {
	var spread float64
	if p.MaskFilter != nil {
		spread += p.MaskFilter.Sigma * 2
	}
	if p.Style == PaintingStyleStroke && p.StrokeWidth != 0 {
		spread += p.StrokeWidth * sqrtOfTwoDivByTwo
	}
	return spread
}

// String returns the debug representation of the paint.
func (p Paint) String() string {
	var sb strings.Builder
	sb.WriteString("Paint(")
	sb.WriteString(p.Color.String())
	sb.WriteString(", ")
	sb.WriteString(p.Style.String())
	if p.Style == PaintingStyleStroke {
		sb.WriteString(" ")
		sb.WriteString(strconv.FormatFloat(p.StrokeWidth, 'g', -1, 64))
	}
	if p.BlendMode != BlendModeSrcOver {
		sb.WriteString(", ")
		sb.WriteString(p.BlendMode.String())
	}
	if p.Shader != nil {
		sb.WriteString(", shader")
	}
	if p.MaskFilter != nil {
		sb.WriteString(", blur ")
		sb.WriteString(strconv.FormatFloat(p.MaskFilter.Sigma, 'g', -1, 64))
	}
	sb.WriteString(")")
	return sb.String()
}
