package picture

import "testing"

func TestLinearGradientColorAt(t *testing.T) {
	g := NewLinearGradient(Pt(0, 0), Pt(100, 0), Black, White)
	tests := []struct {
		x    float64
		want Color
	}{
		{-10, Black},
		{0, Black},
		{50, ARGB(255, 128, 128, 128)},
		{100, White},
		{150, White},
	}
	for _, tt := range tests {
		if got := g.ColorAt(tt.x, 7); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestGradientTileModes(t *testing.T) {
	g := NewLinearGradient(Pt(0, 0), Pt(100, 0), Black, White)

	g.Tile = TileModeRepeated
	if got := g.ColorAt(125, 0); got != LerpColor(Black, White, 0.25) {
		t.Errorf("repeated ColorAt(125) = %v", got)
	}
	g.Tile = TileModeMirror
	if got := g.ColorAt(125, 0); got != LerpColor(Black, White, 0.75) {
		t.Errorf("mirror ColorAt(125) = %v", got)
	}
}

func TestRadialGradientColorAt(t *testing.T) {
	g := NewRadialGradient(Pt(50, 50), 10, Red, Blue)
	if got := g.ColorAt(50, 50); got != Red {
		t.Errorf("center = %v, want red", got)
	}
	if got := g.ColorAt(80, 50); got != Blue {
		t.Errorf("outside = %v, want blue", got)
	}
}

func TestGradientUnsortedStops(t *testing.T) {
	g := &LinearGradient{
		From: Pt(0, 0), To: Pt(10, 0),
		Stops: []ColorStop{{Offset: 1, Color: White}, {Offset: 0, Color: Black}},
	}
	if got := g.ColorAt(0, 0); got != Black {
		t.Errorf("ColorAt(0) = %v, want black", got)
	}
	if got := (&LinearGradient{}).ColorAt(0, 0); got != Transparent {
		t.Errorf("gradient without stops = %v, want transparent", got)
	}
}
