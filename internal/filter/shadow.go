package filter

import (
	"image"
)

// Shadow returns the shadow mask cast by the occluder coverage occ: occ
// moved by offset and blurred with sigma. When the occluder is opaque the
// shadow is removed where the occluder itself covers the surface.
func Shadow(occ *image.Alpha, offset image.Point, sigma float64, transparentOccluder bool) *image.Alpha {
	shifted := image.NewAlpha(occ.Rect)
	width, height := occ.Rect.Dx(), occ.Rect.Dy()
	for y := 0; y < height; y++ {
		sy := y - offset.Y
		if sy < 0 || sy >= height {
			continue
		}
		for x := 0; x < width; x++ {
			if sx := x - offset.X; sx >= 0 && sx < width {
				shifted.Pix[y*shifted.Stride+x] = occ.Pix[sy*occ.Stride+sx]
			}
		}
	}
	shadow := Blur(shifted, sigma)
	if !transparentOccluder {
		for i, c := range occ.Pix {
			shadow.Pix[i] = mul(shadow.Pix[i], 255-c)
		}
	}
	return shadow
}

// ShadowSigma returns the blur used for a shadow at elevation.
func ShadowSigma(elevation float64) float64 {
	return elevation / 2
}
