package filter

import (
	"image"

	"github.com/gogpu/picture"
)

// ApplyMaskFilter blurs the coverage cov according to f. It returns cov
// itself when f is nil or has no blur.
//
// The blur styles combine the original coverage c and blurred coverage b:
// normal is b, solid is max(c, b), outer is b*(1-c) and inner is b*c.
func ApplyMaskFilter(cov *image.Alpha, f *picture.MaskFilter) *image.Alpha {
	if f == nil || f.Sigma <= 0 {
		return cov
	}
	blurred := Blur(cov, f.Sigma)
	if f.Style == picture.BlurStyleNormal {
		return blurred
	}
	for i, b := range blurred.Pix {
		c := cov.Pix[i]
		switch f.Style {
		case picture.BlurStyleSolid:
			blurred.Pix[i] = max(b, c)
		case picture.BlurStyleOuter:
			blurred.Pix[i] = mul(b, 255-c)
		case picture.BlurStyleInner:
			blurred.Pix[i] = mul(b, c)
		}
	}
	return blurred
}

// Intersect multiplies the coverage of dst by mask in place. A nil mask
// leaves dst unchanged.
func Intersect(dst, mask *image.Alpha) {
	if mask == nil {
		return
	}
	for i := range dst.Pix {
		dst.Pix[i] = mul(dst.Pix[i], mask.Pix[i])
	}
}

func mul(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}
