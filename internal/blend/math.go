package blend

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// mul2Div255 returns min(255, 2*a*b/255).
func mul2Div255(a, b byte) byte {
	return clamp255((2*uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two bytes and clamps to 255.
func addDiv255(a, b byte) byte {
	return clamp255(uint16(a) + uint16(b))
}

// clamp255 clamps a uint16 to byte range [0, 255].
func clamp255(x uint16) byte {
	if x > 255 {
		return 255
	}
	return byte(x)
}

// lerp moves from a towards b by t/255.
func lerp(a, b, t byte) byte {
	return byte((int(a)*(255-int(t)) + int(b)*int(t) + 127) / 255)
}

func minByte(a, b byte) byte { return min(a, b) }
func maxByte(a, b byte) byte { return max(a, b) }
