package bitmap

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/filter"
	"github.com/gogpu/picture/recording"
)

// FaceParagraph is a laid-out paragraph whose lines can be drawn with a
// font face.
type FaceParagraph interface {
	recording.LineLayout
	Face() font.Face
}

// DrawParagraph draws each line of p with its face. Only the origin of a
// line is transformed; glyphs keep their natural size and orientation. A
// paragraph that is not laid out draws nothing.
func (b *Backend) DrawParagraph(p recording.Paragraph, offset picture.Point) error {
	if !p.IsLaidOut() {
		return nil
	}
	fp, ok := p.(FaceParagraph)
	if !ok || fp.Face() == nil {
		return recording.Unimplemented(Name, "drawParagraph without a font face")
	}

	mask := image.NewAlpha(b.img.Rect)
	m := b.stack.Transform()
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: fp.Face()}
	for _, line := range fp.Lines() {
		x, y := m.TransformPoint(offset.X+line.Left, offset.Y+line.Baseline)
		d.Dot = fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
		d.DrawString(line.Text)
	}
	filter.Intersect(mask, b.stack.Data())
	return b.composite(mask, image.NewUniform(fp.Color()), picture.BlendModeSrcOver)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
