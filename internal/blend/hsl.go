package blend

import "math"

// rgb is an unpremultiplied color with components in [0, 1]. The hue,
// saturation, color and luminosity modes operate on the whole triplet.
type rgb [3]float32

func (c rgb) lum() float32 {
	return 0.30*c[0] + 0.59*c[1] + 0.11*c[2]
}

func (c rgb) sat() float32 {
	return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2])
}

// clip pulls out-of-range components toward the luminance so that the
// result lies in [0, 1] with its luminance unchanged.
func (c rgb) clip() rgb {
	l := c.lum()
	lo, hi := min(c[0], c[1], c[2]), max(c[0], c[1], c[2])
	for i := range c {
		if lo < 0 {
			c[i] = l + (c[i]-l)*l/(l-lo)
		}
	}
	if hi > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(hi-l)
		}
	}
	return c
}

func (c rgb) withLum(l float32) rgb {
	d := l - c.lum()
	return rgb{c[0] + d, c[1] + d, c[2] + d}.clip()
}

// withSat rescales c so that max-min equals s, keeping the order of the
// components. A grey input stays grey.
func (c rgb) withSat(s float32) rgb {
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[hi] <= c[lo] {
		return c
	}
	var out rgb
	out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
	out[hi] = s
	return out
}

func hue(src, dst rgb) rgb        { return src.withSat(dst.sat()).withLum(dst.lum()) }
func saturation(src, dst rgb) rgb { return dst.withSat(src.sat()).withLum(dst.lum()) }
func colorMode(src, dst rgb) rgb  { return src.withLum(dst.lum()) }
func luminosity(src, dst rgb) rgb { return dst.withLum(src.lum()) }

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, saturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, colorMode)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, luminosity)
}

// nonSeparableBlend unpremultiplies both pixels, applies fn and composites
// the result.
func nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da byte, fn func(src, dst rgb) rgb) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}
	fs, fd := float32(sa), float32(da)
	b := fn(
		rgb{float32(sr) / fs, float32(sg) / fs, float32(sb) / fs},
		rgb{float32(dr) / fd, float32(dg) / fd, float32(db) / fd},
	)
	toByte := func(v float32) byte { return byte(math.Round(float64(max(0, min(1, v)) * 255))) }
	return composite(sr, sg, sb, sa, dr, dg, db, da, toByte(b[0]), toByte(b[1]), toByte(b[2]))
}
