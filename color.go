package picture

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is a non-premultiplied 32-bit color packed as 0xAARRGGBB.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
)

// ErrInvalidColor is returned by ParseCSSColor for unsupported input.
var ErrInvalidColor = errors.New("picture: invalid css color")

// ARGB packs the four channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha channel.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// Opacity returns the alpha channel in [0, 1].
func (c Color) Opacity() float64 { return float64(c.A()) / 255 }

// IsOpaque reports whether the alpha channel is 255.
func (c Color) IsOpaque() bool { return c.A() == 0xFF }

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	return Color(uint32(c)&0x00FFFFFF | uint32(a)<<24)
}

// RGBA implements image/color.Color. The returned values are alpha
// premultiplied, as that interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * a / 0xFF
	g = uint32(c.G()) * a / 0xFF
	b = uint32(c.B()) * a / 0xFF
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// LerpColor interpolates between two colors channel by channel.
func LerpColor(from, to Color, t float64) Color {
	lerp := func(x, y uint8) uint8 {
		v := float64(x) + (float64(y)-float64(x))*t
		return uint8(math.Round(math.Max(0, math.Min(255, v))))
	}
	return ARGB(lerp(from.A(), to.A()), lerp(from.R(), to.R()), lerp(from.G(), to.G()), lerp(from.B(), to.B()))
}

// CSS returns the color as a CSS color string: #rrggbb for opaque colors and
// rgba(r, g, b, alpha) otherwise.
func (c Color) CSS() string {
	if c.IsOpaque() {
		return fmt.Sprintf("#%06x", uint32(c)&0x00FFFFFF)
	}
	return "rgba(" + strconv.Itoa(int(c.R())) + ", " + strconv.Itoa(int(c.G())) + ", " +
		strconv.Itoa(int(c.B())) + ", " + strconv.FormatFloat(c.Opacity(), 'g', -1, 64) + ")"
}

// String returns the debug representation of the color.
func (c Color) String() string {
	return fmt.Sprintf("Color(0x%08x)", uint32(c))
}

// ParseCSSColor parses the forms produced by Color.CSS plus the short #rgb
// form.
func ParseCSSColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBAFunc(s[len("rgba(") : len(s)-1])
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(hex string) (Color, error) {
	var r, g, b uint32
	switch len(hex) {
	case 3:
		ok := parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		if !ok {
			return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		ok := parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
		if !ok {
			return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
	default:
		return 0, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	return ARGB(0xFF, uint8(r), uint8(g), uint8(b)), nil
}

func parseRGBAFunc(args string) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 4 {
		return 0, fmt.Errorf("%w: rgba(%s)", ErrInvalidColor, args)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return 0, fmt.Errorf("%w: rgba(%s)", ErrInvalidColor, args)
		}
		ch[i] = uint8(v)
	}
	alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || alpha < 0 || alpha > 1 {
		return 0, fmt.Errorf("%w: rgba(%s)", ErrInvalidColor, args)
	}
	return ARGB(uint8(math.Round(alpha*255)), ch[0], ch[1], ch[2]), nil
}

// parseHex accumulates the hex digits of s into val and reports whether all
// of them were valid.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}
