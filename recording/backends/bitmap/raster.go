package bitmap

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/blend"
	"github.com/gogpu/picture/internal/filter"
	"github.com/gogpu/picture/internal/path"
	"github.com/gogpu/picture/internal/stroke"
	"github.com/gogpu/picture/recording"
)

// coordLimit keeps coordinates inside the range float32 rasterization
// handles without losing all precision.
const coordLimit = 1 << 24

// deviceScale returns the factor by which m scales lengths, averaged over
// both axes.
func deviceScale(m picture.Matrix4) float64 {
	return math.Sqrt(math.Abs(m[0]*m[5] - m[1]*m[4]))
}

// rasterize returns the coverage of the polygons. Without anti-aliasing
// coverage is thresholded to fully on or off.
func (b *Backend) rasterize(polys [][]picture.Point, antiAlias bool) *image.Alpha {
	mask := image.NewAlpha(b.img.Rect)
	if b.width == 0 || b.height == 0 {
		return mask
	}
	z := vector.NewRasterizer(b.width, b.height)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(clampCoord(poly[0].X), clampCoord(poly[0].Y))
		for _, p := range poly[1:] {
			z.LineTo(clampCoord(p.X), clampCoord(p.Y))
		}
		z.ClosePath()
	}
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if !antiAlias {
		for i, c := range mask.Pix {
			if c >= 128 {
				mask.Pix[i] = 0xFF
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}

func clampCoord(v float64) float32 {
	if math.IsNaN(v) {
		return 0
	}
	return float32(math.Max(-coordLimit, math.Min(coordLimit, v)))
}

func points(lines []path.Polyline) [][]picture.Point {
	out := make([][]picture.Point, len(lines))
	for i, l := range lines {
		out[i] = l.Points
	}
	return out
}

// fillCoverage returns the coverage of the interior of p under the current
// transform.
func (b *Backend) fillCoverage(p *picture.Path, antiAlias bool) *image.Alpha {
	lines := path.Flatten(p, b.stack.Transform(), path.Tolerance)
	return b.rasterize(points(lines), antiAlias)
}

// strokeCoverage returns the coverage of the outline of p stroked with
// paint. A zero stroke width draws a one pixel hairline.
func (b *Backend) strokeCoverage(p *picture.Path, paint picture.Paint) *image.Alpha {
	m := b.stack.Transform()
	style := stroke.FromPaint(paint, deviceScale(m))
	if paint.StrokeWidth == 0 {
		style.Width = 1
	}
	lines := path.Flatten(p, m, path.Tolerance)
	return b.rasterize(stroke.NewStrokeExpander(style).Expand(lines), paint.AntiAlias)
}

// coverage returns the coverage of p painted with paint before mask filters
// and clipping.
func (b *Backend) coverage(p *picture.Path, paint picture.Paint) (*image.Alpha, error) {
	if paint.Style == picture.PaintingStyleStroke {
		return b.strokeCoverage(p, paint), nil
	}
	if p.FillType != picture.FillNonZero {
		return nil, recording.Unimplemented(Name, "even-odd fill")
	}
	return b.fillCoverage(p, paint.AntiAlias), nil
}

// paintPath draws p with paint through the mask filter and clip.
func (b *Backend) paintPath(p *picture.Path, paint picture.Paint) error {
	cov, err := b.coverage(p, paint)
	if err != nil {
		return err
	}
	return b.paintCoverage(cov, paint)
}

func (b *Backend) paintCoverage(cov *image.Alpha, paint picture.Paint) error {
	cov = filter.ApplyMaskFilter(cov, paint.MaskFilter)
	filter.Intersect(cov, b.stack.Data())
	return b.composite(cov, b.source(paint), paint.BlendMode)
}

// surfaceCoverage returns full coverage of the surface.
func (b *Backend) surfaceCoverage() *image.Alpha {
	mask := image.NewAlpha(b.img.Rect)
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}
	return mask
}

// composite blends src onto the surface with mode, weighted by cov.
// Pixels with zero coverage are left untouched for every mode.
func (b *Backend) composite(cov *image.Alpha, src image.Image, mode picture.BlendMode) error {
	f := blend.For(mode)
	if f == nil {
		return recording.Unimplemented(Name, "blend mode "+mode.String())
	}
	if mode == picture.BlendModeSrcOver {
		draw.DrawMask(b.img, b.img.Bounds(), src, image.Point{}, cov, image.Point{}, draw.Over)
		return nil
	}
	uniform, isUniform := src.(*image.Uniform)
	var solid [4]byte
	if isUniform {
		solid = premultiplied(uniform.C)
	}
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := cov.Pix[y*cov.Stride+x]
			if c == 0 {
				continue
			}
			s := solid
			if !isUniform {
				s = premultiplied(src.At(x, y))
			}
			i := y*b.img.Stride + x*4
			px := b.img.Pix[i : i+4 : i+4]
			out := blend.Pixel(f, s, [4]byte{px[0], px[1], px[2], px[3]}, c)
			copy(px, out[:])
		}
	}
	return nil
}

func premultiplied(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
}

// source returns the image that paint draws with: a uniform color, or the
// shader sampled in device space.
func (b *Backend) source(paint picture.Paint) image.Image {
	if paint.Shader == nil {
		return image.NewUniform(filtered(paint.Color, paint.ColorFilter))
	}
	inv, ok := b.stack.Transform().Invert()
	if !ok {
		return image.Transparent
	}
	return &shaderImage{
		shader:  paint.Shader,
		inverse: inv,
		alpha:   paint.Color.A(),
		filter:  paint.ColorFilter,
		bounds:  b.img.Rect,
	}
}

func filtered(c picture.Color, cf *picture.ColorFilter) picture.Color {
	if cf == nil {
		return c
	}
	return blend.Colors(cf.BlendMode, cf.Color, c)
}

// shaderImage adapts a Shader to image.Image. Pixel centers are mapped back
// into the local space the shader was defined in. The paint's alpha scales
// the shader output.
type shaderImage struct {
	shader  picture.Shader
	inverse picture.Matrix4
	alpha   uint8
	filter  *picture.ColorFilter
	bounds  image.Rectangle
}

func (s *shaderImage) ColorModel() color.Model { return color.RGBAModel }
func (s *shaderImage) Bounds() image.Rectangle { return s.bounds }

func (s *shaderImage) At(x, y int) color.Color {
	lx, ly := s.inverse.TransformPoint(float64(x)+0.5, float64(y)+0.5)
	c := s.shader.ColorAt(lx, ly)
	if s.alpha != 0xFF {
		c = c.WithAlpha(uint8((uint16(c.A())*uint16(s.alpha) + 127) / 255))
	}
	return filtered(c, s.filter)
}
