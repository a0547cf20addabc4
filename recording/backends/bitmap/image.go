package bitmap

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/recording"
)

// interpolator maps a filter quality to the x/image/draw kernel that
// implements it.
func interpolator(q picture.FilterQuality) draw.Transformer {
	switch q {
	case picture.FilterQualityLow:
		return draw.ApproxBiLinear
	case picture.FilterQualityMedium:
		return draw.BiLinear
	case picture.FilterQualityHigh:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// DrawImage draws img unscaled with its top-left corner at offset.
func (b *Backend) DrawImage(img image.Image, offset picture.Point, paint picture.Paint) error {
	r := img.Bounds()
	w, h := float64(r.Dx()), float64(r.Dy())
	return b.DrawImageRect(img, picture.LTWH(0, 0, w, h), picture.LTWH(offset.X, offset.Y, w, h), paint)
}

// DrawImageRect draws the src part of img scaled into dst. The src rectangle
// is relative to the image's top-left corner. The paint's alpha is applied
// as opacity and its filter quality selects the interpolation kernel.
func (b *Backend) DrawImageRect(img image.Image, src, dst picture.Rect, paint picture.Paint) error {
	var op draw.Op
	switch paint.BlendMode {
	case picture.BlendModeSrcOver:
		op = draw.Over
	case picture.BlendModeSrc:
		op = draw.Src
	default:
		return recording.Unimplemented(Name, "image blend mode "+paint.BlendMode.String())
	}
	if src.IsEmpty() || dst.IsEmpty() {
		return nil
	}

	bounds := img.Bounds()
	origin := bounds.Min
	m := b.stack.Transform().
		Multiply(picture.Translate(dst.Left, dst.Top)).
		Multiply(picture.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(picture.Translate(-src.Left-float64(origin.X), -src.Top-float64(origin.Y)))

	sr := image.Rect(
		int(math.Floor(src.Left)), int(math.Floor(src.Top)),
		int(math.Ceil(src.Right)), int(math.Ceil(src.Bottom)),
	).Add(origin).Intersect(bounds)
	if sr.Empty() {
		return nil
	}

	opts := &draw.Options{}
	if mask := b.stack.Data(); mask != nil {
		opts.DstMask = mask
	}
	if a := paint.Color.A(); a != 0xFF {
		opts.SrcMask = image.NewUniform(color.Alpha{A: a})
	}
	interpolator(paint.FilterQuality).Transform(b.img, m.Aff3(), img, sr, op, opts)
	return nil
}
