package recording

import "github.com/gogpu/picture"

// Paragraph is the result of laying out text. Layout itself happens outside
// this package; the recorder only needs to know whether layout has run and
// how far the painted glyphs reach.
type Paragraph interface {
	// IsLaidOut reports whether layout has run. Drawing a paragraph that
	// is not laid out records nothing.
	IsLaidOut() bool

	// PaintBounds returns the painted area relative to the paragraph's
	// top-left corner.
	PaintBounds() picture.Rect

	// HasArbitraryPaint reports whether the paragraph uses styling that a
	// simple backend primitive cannot express.
	HasArbitraryPaint() bool
}

// TextLine is one laid-out line of a paragraph. Positions are relative to the
// paragraph's top-left corner.
// Top is the top of the line box and Baseline the y of the glyph baseline.
type TextLine struct {
	Text     string
	Left     float64
	Top      float64
	Baseline float64
	Width    float64
	Height   float64
}

// LineLayout is implemented by paragraphs that expose their lines, which lets
// backends without a text shaper place pre-broken lines.
type LineLayout interface {
	Paragraph
	Lines() []TextLine
	Color() picture.Color
}
