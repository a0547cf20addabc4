// Package paragraph is a minimal text layout engine for recorded pictures.
//
// A Paragraph holds NFC-normalized text in a single face and color. Layout
// breaks it into lines greedily at whitespace and hard newlines, measuring
// with golang.org/x/image/font. The result implements recording.Paragraph
// and recording.LineLayout, and exposes its face so rasterizing backends can
// draw the glyphs.
//
// Example:
//
//	p := paragraph.New("Hello, world", paragraph.Style{
//	    Face:  basicfont.Face7x13,
//	    Color: picture.Black,
//	})
//	p.Layout(200)
//	rec.DrawParagraph(p, picture.Pt(10, 10))
package paragraph

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/recording"
)

// Style is the text style of a whole paragraph.
type Style struct {
	// Face measures and draws glyphs. A nil Face uses basicfont.Face7x13.
	Face font.Face

	// Color is the text color.
	Color picture.Color
}

// Paragraph is a block of text laid out into lines.
type Paragraph struct {
	text    string
	style   Style
	lines   []recording.TextLine
	width   float64
	laidOut bool
}

var _ recording.LineLayout = (*Paragraph)(nil)

// New returns an un-laid-out paragraph of text.
func New(text string, style Style) *Paragraph {
	if style.Face == nil {
		style.Face = basicfont.Face7x13
	}
	return &Paragraph{text: norm.NFC.String(text), style: style}
}

// Text returns the normalized text.
func (p *Paragraph) Text() string { return p.text }

// Face returns the font face.
func (p *Paragraph) Face() font.Face { return p.style.Face }

// Color returns the text color.
func (p *Paragraph) Color() picture.Color { return p.style.Color }

// IsLaidOut reports whether Layout has been called.
func (p *Paragraph) IsLaidOut() bool { return p.laidOut }

// HasArbitraryPaint reports false: a single face in a single color is always
// expressible as plain text.
func (p *Paragraph) HasArbitraryPaint() bool { return false }

// Lines returns the laid-out lines. It is empty before Layout.
func (p *Paragraph) Lines() []recording.TextLine { return p.lines }

// Width returns the width passed to the last Layout.
func (p *Paragraph) Width() float64 { return p.width }

// Height returns the total height of the lines.
func (p *Paragraph) Height() float64 {
	if len(p.lines) == 0 {
		return 0
	}
	last := p.lines[len(p.lines)-1]
	return last.Top + last.Height
}

// LongestLine returns the width of the widest line.
func (p *Paragraph) LongestLine() float64 {
	var w float64
	for _, l := range p.lines {
		w = max(w, l.Left+l.Width)
	}
	return w
}

// PaintBounds returns the box covering every line, relative to the
// paragraph's top-left corner.
func (p *Paragraph) PaintBounds() picture.Rect {
	return picture.LTRB(0, 0, p.LongestLine(), p.Height())
}

// Layout breaks the text into lines no wider than width. A word wider than
// width is placed on its own line and overflows. Runs of whitespace between
// words collapse to a single space.
func (p *Paragraph) Layout(width float64) {
	face := p.style.Face
	m := face.Metrics()
	ascent := toFloat(m.Ascent)
	height := toFloat(m.Height)
	space := toFloat(font.MeasureString(face, " "))

	p.width = width
	p.lines = p.lines[:0]
	add := func(text string, w float64) {
		top := float64(len(p.lines)) * height
		p.lines = append(p.lines, recording.TextLine{
			Text:     text,
			Top:      top,
			Baseline: top + ascent,
			Width:    w,
			Height:   height,
		})
	}

	for _, hard := range strings.Split(p.text, "\n") {
		var line strings.Builder
		var lineWidth float64
		for _, word := range strings.Fields(hard) {
			ww := toFloat(font.MeasureString(face, word))
			if line.Len() > 0 && lineWidth+space+ww > width {
				add(line.String(), lineWidth)
				line.Reset()
				lineWidth = 0
			}
			if line.Len() > 0 {
				line.WriteByte(' ')
				lineWidth += space
			}
			line.WriteString(word)
			lineWidth += ww
		}
		add(line.String(), lineWidth)
	}
	p.laidOut = true
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
