// Package blend implements the blend modes of picture.BlendMode on
// premultiplied 8-bit RGBA pixels.
//
// Porter-Duff operators follow "Compositing Digital Images" (1984); the
// separable and non-separable modes follow W3C Compositing and Blending
// Level 1.
package blend

import "github.com/gogpu/picture"

// Func blends a premultiplied source pixel onto a premultiplied
// destination pixel.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

var funcs = [...]Func{
	picture.BlendModeClear:      blendClear,
	picture.BlendModeSrc:        blendSource,
	picture.BlendModeDst:        blendDestination,
	picture.BlendModeSrcOver:    blendSourceOver,
	picture.BlendModeDstOver:    blendDestinationOver,
	picture.BlendModeSrcIn:      blendSourceIn,
	picture.BlendModeDstIn:      blendDestinationIn,
	picture.BlendModeSrcOut:     blendSourceOut,
	picture.BlendModeDstOut:     blendDestinationOut,
	picture.BlendModeSrcATop:    blendSourceAtop,
	picture.BlendModeDstATop:    blendDestinationAtop,
	picture.BlendModeXor:        blendXor,
	picture.BlendModePlus:       blendPlus,
	picture.BlendModeModulate:   blendModulate,
	picture.BlendModeScreen:     blendScreen,
	picture.BlendModeOverlay:    blendOverlay,
	picture.BlendModeDarken:     blendDarken,
	picture.BlendModeLighten:    blendLighten,
	picture.BlendModeColorDodge: blendColorDodge,
	picture.BlendModeColorBurn:  blendColorBurn,
	picture.BlendModeHardLight:  blendHardLight,
	picture.BlendModeSoftLight:  blendSoftLight,
	picture.BlendModeDifference: blendDifference,
	picture.BlendModeExclusion:  blendExclusion,
	picture.BlendModeMultiply:   blendMultiply,
	picture.BlendModeHue:        blendHue,
	picture.BlendModeSaturation: blendSaturation,
	picture.BlendModeColor:      blendColor,
	picture.BlendModeLuminosity: blendLuminosity,
}

// For returns the blend function of mode, or nil for an unknown mode.
func For(mode picture.BlendMode) Func {
	if int(mode) >= len(funcs) {
		return nil
	}
	return funcs[mode]
}

// Pixel blends src onto dst with coverage cov: the result is the blended
// pixel where cov is 255 and dst where cov is 0.
func Pixel(f Func, src, dst [4]byte, cov byte) [4]byte {
	if cov == 0 {
		return dst
	}
	r, g, b, a := f(src[0], src[1], src[2], src[3], dst[0], dst[1], dst[2], dst[3])
	if cov == 255 {
		return [4]byte{r, g, b, a}
	}
	return [4]byte{lerp(dst[0], r, cov), lerp(dst[1], g, cov), lerp(dst[2], b, cov), lerp(dst[3], a, cov)}
}

// Premultiply converts c to premultiplied RGBA bytes.
func Premultiply(c picture.Color) [4]byte {
	a := c.A()
	return [4]byte{mulDiv255(c.R(), a), mulDiv255(c.G(), a), mulDiv255(c.B(), a), a}
}

// Unpremultiply converts premultiplied RGBA bytes back to a Color.
func Unpremultiply(p [4]byte) picture.Color {
	a := p[3]
	if a == 0 {
		return picture.Transparent
	}
	un := func(v byte) uint8 { return uint8(min(255, (uint16(v)*255+uint16(a)/2)/uint16(a))) }
	return picture.ARGB(a, un(p[0]), un(p[1]), un(p[2]))
}

// Colors blends the color src onto dst and returns the non-premultiplied
// result. It applies color filters to solid paint colors.
func Colors(mode picture.BlendMode, src, dst picture.Color) picture.Color {
	f := For(mode)
	if f == nil {
		return dst
	}
	return Unpremultiply(Pixel(f, Premultiply(src), Premultiply(dst), 255))
}
