package picture

import (
	"math"
	"testing"
)

func TestBlendModeIndex(t *testing.T) {
	tests := []struct {
		mode  BlendMode
		index int
		name  string
	}{
		{BlendModeClear, 0, "clear"},
		{BlendModeSrc, 1, "src"},
		{BlendModeSrcOver, 3, "srcOver"},
		{BlendModeMultiply, 24, "multiply"},
		{BlendModeLuminosity, 28, "luminosity"},
	}
	for _, tt := range tests {
		if got := tt.mode.Index(); got != tt.index {
			t.Errorf("%v.Index() = %d, want %d", tt.mode, got, tt.index)
		}
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		back, ok := BlendModeFromIndex(tt.index)
		if !ok || back != tt.mode {
			t.Errorf("BlendModeFromIndex(%d) = %v, %v", tt.index, back, ok)
		}
	}
	if _, ok := BlendModeFromIndex(29); ok {
		t.Error("BlendModeFromIndex(29) should fail")
	}
}

func TestBlendModeIndicesAreUnique(t *testing.T) {
	seen := make(map[int]BlendMode)
	for m := BlendMode(0); m < blendModeCount; m++ {
		if prev, dup := seen[m.Index()]; dup {
			t.Errorf("%v and %v share index %d", prev, m, m.Index())
		}
		seen[m.Index()] = m
	}
}

func TestPaintSpread(t *testing.T) {
	tests := []struct {
		name  string
		paint Paint
		want  float64
	}{
		{"plain fill", FillPaint(Red), 0},
		{"fill ignores stroke width", Paint{StrokeWidth: 10}, 0},
		{"stroke", StrokePaint(Red, 10), 10 * 0.70710678118},
		{"blur", Paint{MaskFilter: &MaskFilter{Sigma: 3}}, 6},
		{"stroke and blur", Paint{Style: PaintingStyleStroke, StrokeWidth: 2, MaskFilter: &MaskFilter{Sigma: 1}}, 2 + 2*0.70710678118},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.paint.Spread(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Spread() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultPaint(t *testing.T) {
	p := DefaultPaint()
	if p.BlendMode != BlendModeSrcOver || p.Style != PaintingStyleFill || !p.AntiAlias || p.Color != Black {
		t.Errorf("DefaultPaint() = %v", p)
	}
	if got := StrokePaint(Red, 2).String(); got != "Paint(Color(0xffff0000), stroke 2)" {
		t.Errorf("String() = %q", got)
	}
}
