package dom

import (
	"strconv"
	"strings"

	"github.com/gogpu/picture"
)

// style is an ordered list of CSS declarations.
type style struct {
	decls []string
}

func (s *style) set(property, value string) {
	s.decls = append(s.decls, property+": "+value)
}

func (s *style) String() string {
	return strings.Join(s.decls, "; ")
}

// px formats v as a CSS pixel length.
func px(v float64) string {
	if v == 0 {
		return "0px"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// isTranslation reports whether m only moves points.
func isTranslation(m picture.Matrix4) bool {
	id := picture.Identity()
	for i, v := range m {
		if i != 12 && i != 13 && v != id[i] {
			return false
		}
	}
	return true
}

// mixBlendModes maps the blend modes CSS can express to mix-blend-mode
// values. Porter-Duff modes other than src-over have no CSS equivalent.
var mixBlendModes = map[picture.BlendMode]string{
	picture.BlendModeMultiply:   "multiply",
	picture.BlendModeScreen:     "screen",
	picture.BlendModeOverlay:    "overlay",
	picture.BlendModeDarken:     "darken",
	picture.BlendModeLighten:    "lighten",
	picture.BlendModeColorDodge: "color-dodge",
	picture.BlendModeColorBurn:  "color-burn",
	picture.BlendModeHardLight:  "hard-light",
	picture.BlendModeSoftLight:  "soft-light",
	picture.BlendModeDifference: "difference",
	picture.BlendModeExclusion:  "exclusion",
	picture.BlendModeHue:        "hue",
	picture.BlendModeSaturation: "saturation",
	picture.BlendModeColor:      "color",
	picture.BlendModeLuminosity: "luminosity",
}

// borderRadius returns the border-radius value of rr's corners.
func borderRadius(rr picture.RRect) string {
	if rr.UniformRadii() {
		return px(rr.TopLeft.X)
	}
	corners := [4]picture.Radius{rr.TopLeft, rr.TopRight, rr.BottomRight, rr.BottomLeft}
	var xs, ys [4]string
	for i, c := range corners {
		xs[i], ys[i] = px(c.X), px(c.Y)
	}
	return strings.Join(xs[:], " ") + " / " + strings.Join(ys[:], " ")
}
