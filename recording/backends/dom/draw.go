package dom

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"math"
	"reflect"
	"strconv"

	"golang.org/x/image/draw"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/blend"
	"github.com/gogpu/picture/recording"
)

// paintStyle returns the declarations painting a box with paint.
func paintStyle(paint picture.Paint) (*style, error) {
	if paint.Shader != nil {
		return nil, recording.Unimplemented(Name, "shader paint")
	}
	s := &style{}
	c := paint.Color
	if cf := paint.ColorFilter; cf != nil {
		c = blend.Colors(cf.BlendMode, cf.Color, c)
	}
	if paint.Style == picture.PaintingStyleStroke {
		s.set("border", px(strokeWidth(paint))+" solid "+c.CSS())
		s.set("box-sizing", "border-box")
	} else {
		s.set("background-color", c.CSS())
	}
	if err := blendStyle(s, paint.BlendMode); err != nil {
		return nil, err
	}
	if mf := paint.MaskFilter; mf != nil && mf.Sigma > 0 {
		if mf.Style != picture.BlurStyleNormal {
			return nil, recording.Unimplemented(Name, "blur style other than normal")
		}
		s.set("filter", "blur("+px(mf.Sigma)+")")
	}
	return s, nil
}

func blendStyle(s *style, mode picture.BlendMode) error {
	if mode == picture.BlendModeSrcOver {
		return nil
	}
	name, ok := mixBlendModes[mode]
	if !ok {
		return recording.Unimplemented(Name, "blend mode "+mode.String())
	}
	s.set("mix-blend-mode", name)
	return nil
}

// strokeWidth returns the border width of a stroke; zero means a one pixel
// hairline.
func strokeWidth(paint picture.Paint) float64 {
	if paint.StrokeWidth == 0 {
		return 1
	}
	return paint.StrokeWidth
}

// box appends an element covering r painted with paint. Strokes are
// centered on the outline, so the element grows by half the stroke width.
func (b *Backend) box(r picture.Rect, radius func(grow float64) string, paint picture.Paint) error {
	ps, err := paintStyle(paint)
	if err != nil {
		return err
	}
	var grow float64
	if paint.Style == picture.PaintingStyleStroke {
		grow = strokeWidth(paint) / 2
		r = r.Inflate(grow)
	}
	s := &style{}
	b.position(s, r.Left, r.Top)
	s.set("width", px(r.Width()))
	s.set("height", px(r.Height()))
	if radius != nil {
		s.set("border-radius", radius(grow))
	}
	s.decls = append(s.decls, ps.decls...)
	b.append(element("draw-rect", s))
	return nil
}

// cover appends an element covering the whole surface in device space.
func (b *Backend) cover(ps *style) {
	s := &style{}
	b.place(s, b.stack.Data().frame)
	s.set("width", px(float64(b.width)))
	s.set("height", px(float64(b.height)))
	s.decls = append(s.decls, ps.decls...)
	b.append(element("draw-rect", s))
}

// DrawColor fills the clip with c.
func (b *Backend) DrawColor(c picture.Color, mode picture.BlendMode) error {
	s := &style{}
	s.set("background-color", c.CSS())
	if err := blendStyle(s, mode); err != nil {
		return err
	}
	b.cover(s)
	return nil
}

// DrawPaint fills the clip with paint.
func (b *Backend) DrawPaint(paint picture.Paint) error {
	paint.Style = picture.PaintingStyleFill
	ps, err := paintStyle(paint)
	if err != nil {
		return err
	}
	b.cover(ps)
	return nil
}

// DrawLine is not supported.
func (b *Backend) DrawLine(_, _ picture.Point, _ picture.Paint) error {
	return recording.Unimplemented(Name, "drawLine")
}

// DrawRect appends a box element.
func (b *Backend) DrawRect(r picture.Rect, paint picture.Paint) error {
	return b.box(r.Normalize(), nil, paint)
}

// DrawRRect appends a box element with rounded corners.
func (b *Backend) DrawRRect(rr picture.RRect, paint picture.Paint) error {
	return b.box(rr.Outer(), func(grow float64) string {
		if grow == 0 {
			return borderRadius(rr)
		}
		return borderRadius(rr.Inflate(grow))
	}, paint)
}

// DrawDRRect is not supported.
func (b *Backend) DrawDRRect(_, _ picture.RRect, _ picture.Paint) error {
	return recording.Unimplemented(Name, "drawDRRect")
}

// DrawOval appends a box element with elliptical corners.
func (b *Backend) DrawOval(r picture.Rect, paint picture.Paint) error {
	return b.box(r.Normalize(), func(float64) string { return "50%" }, paint)
}

// DrawCircle appends a round box element.
func (b *Backend) DrawCircle(center picture.Point, radius float64, paint picture.Paint) error {
	r := picture.LTRB(center.X-radius, center.Y-radius, center.X+radius, center.Y+radius)
	return b.DrawOval(r, paint)
}

// DrawPath is not supported.
func (b *Backend) DrawPath(*picture.Path, picture.Paint) error {
	return recording.Unimplemented(Name, "drawPath")
}

// DrawShadow is not supported.
func (b *Backend) DrawShadow(*picture.Path, picture.Color, float64, bool) error {
	return recording.Unimplemented(Name, "drawShadow")
}

// DrawImage appends an <img> element showing img at offset.
func (b *Backend) DrawImage(img image.Image, offset picture.Point, paint picture.Paint) error {
	r := img.Bounds()
	w, h := float64(r.Dx()), float64(r.Dy())
	return b.DrawImageRect(img, picture.LTWH(0, 0, w, h), picture.LTWH(offset.X, offset.Y, w, h), paint)
}

// DrawImageRect appends an <img> element showing the src part of img scaled
// into dst. The pixels are embedded as a PNG data URI.
func (b *Backend) DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) error {
	s := &style{}
	b.position(s, dst.Left, dst.Top)
	s.set("width", px(dst.Width()))
	s.set("height", px(dst.Height()))
	if a := paint.Color.A(); a != 0xFF {
		s.set("opacity", strconv.FormatFloat(paint.Color.Opacity(), 'g', -1, 64))
	}
	if paint.FilterQuality == picture.FilterQualityNone {
		s.set("image-rendering", "pixelated")
	}
	if err := blendStyle(s, paint.BlendMode); err != nil {
		return err
	}
	uri, err := b.dataURI(img, src)
	if err != nil || uri == "" {
		return err
	}
	n := element("img", s)
	n.Attr = append(n.Attr, html.Attribute{Key: "src", Val: uri})
	b.append(n)
	return nil
}

// dataURI encodes the src part of img as a PNG data URI. src is relative to
// the image's top-left corner. An empty src yields an empty string.
func (b *Backend) dataURI(img image.Image, src picture.Rect) (string, error) {
	bounds := img.Bounds()
	r := image.Rect(
		int(math.Floor(src.Left)), int(math.Floor(src.Top)),
		int(math.Ceil(src.Right)), int(math.Ceil(src.Bottom)),
	).Add(bounds.Min).Intersect(bounds)
	if r.Empty() {
		return "", nil
	}
	// Map keys panic on incomparable dynamic types.
	if !reflect.TypeOf(img).Comparable() {
		return encodePNG(img, r)
	}
	return b.images.GetOrCreate(imageKey{img: img, r: r}, func() (string, error) {
		return encodePNG(img, r)
	})
}

func encodePNG(img image.Image, r image.Rectangle) (string, error) {
	crop := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(crop, crop.Bounds(), img, r.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DrawParagraph appends a <flt-paragraph> element with one span per line.
// A paragraph that is not laid out draws nothing.
func (b *Backend) DrawParagraph(p recording.Paragraph, offset picture.Point) error {
	if !p.IsLaidOut() {
		return nil
	}
	ll, ok := p.(recording.LineLayout)
	if !ok {
		return recording.Unimplemented(Name, "drawParagraph without line layout")
	}
	s := &style{}
	b.position(s, offset.X, offset.Y)
	s.set("color", ll.Color().CSS())
	s.set("white-space", "pre")
	para := element("flt-paragraph", s)
	for _, line := range ll.Lines() {
		ls := &style{}
		ls.set("position", "absolute")
		ls.set("left", px(line.Left))
		ls.set("top", px(line.Top))
		ls.set("width", px(line.Width))
		ls.set("height", px(line.Height))
		ls.set("line-height", px(line.Height))
		span := element(atom.Span.String(), ls)
		span.AppendChild(&html.Node{Type: html.TextNode, Data: line.Text})
		para.AppendChild(span)
	}
	b.append(para)
	return nil
}
