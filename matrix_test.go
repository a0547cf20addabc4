package picture

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestMatrixTransformPoint(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix4
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Translate(10, 20), 1, 2, 11, 22},
		{"scale", Scale(2, 3), 1, 2, 2, 6},
		{"rotate 90deg", RotateZ(math.Pi / 2), 1, 0, 0, 1},
		{"skew x", Skew(0.5, 0), 0, 10, 5, 10},
		{"skew y", Skew(0, 0.5), 10, 0, 10, 5},
		{"translate then scale locally", Translate(10, 20).Multiply(Scale(2, 3)), 1, 1, 12, 23},
		{"scale then translate locally", Scale(2, 3).Multiply(Translate(10, 20)), 1, 1, 22, 63},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.TransformPoint(tt.x, tt.y)
			if !near(x, tt.wx) || !near(y, tt.wy) {
				t.Errorf("TransformPoint(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestMatrixPerspectiveDivide(t *testing.T) {
	m := Identity()
	m[15] = 2
	x, y := m.TransformPoint(4, 6)
	if x != 2 || y != 3 {
		t.Errorf("TransformPoint with w=2 = (%v, %v), want (2, 3)", x, y)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix4
		want bool
	}{
		{"identity", Identity(), true},
		{"zero translation", Translate(0, 0), true},
		{"unit scale", Scale(1, 1), true},
		{"tiny translation", Translate(1e-12, 0), false},
		{"rotation", RotateZ(0.1), false},
		{"zero matrix", Matrix4{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.want {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatrixTransformRectProjectsAllCorners(t *testing.T) {
	got := RotateZ(math.Pi / 4).TransformRect(LTRB(0, 0, 10, 10))
	d := 10 / math.Sqrt2
	if !near(got.Left, -d) || !near(got.Right, d) || !near(got.Top, 0) || !near(got.Bottom, 2*d) {
		t.Errorf("TransformRect = %v, want Rect(%v, 0, %v, %v)", got, -d, d, 2*d)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(5, 7).Multiply(Scale(2, 4)).Multiply(RotateZ(0.3))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular matrix")
	}
	x, y := m.Multiply(inv).TransformPoint(13, -8)
	if !near(x, 13) || !near(y, -8) {
		t.Errorf("m*inv maps (13, -8) to (%v, %v)", x, y)
	}

	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert() of a singular matrix should fail")
	}
}

func TestMatrixAff3(t *testing.T) {
	got := Translate(3, 4).Multiply(Scale(2, 5)).Aff3()
	want := [6]float64{2, 0, 3, 0, 5, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Aff3() = %v, want %v", got, want)
		}
	}
}

func TestMatrixCSS(t *testing.T) {
	if got, want := Identity().CSS(), "matrix3d(1,0,0,0,0,1,0,0,0,0,1,0,0,0,0,1)"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
	if got, want := Translate(1.5, -2).CSS(), "matrix3d(1,0,0,0,0,1,0,0,0,0,1,0,1.5,-2,0,1)"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
}

func TestMatrix4FromSlice(t *testing.T) {
	m, err := Matrix4FromSlice(Translate(1, 2).Slice())
	if err != nil {
		t.Fatalf("Matrix4FromSlice() error = %v", err)
	}
	if m != Translate(1, 2) {
		t.Errorf("Matrix4FromSlice() = %v", m)
	}
	if _, err := Matrix4FromSlice([]float64{1, 2, 3}); !errors.Is(err, ErrMatrixLength) {
		t.Errorf("Matrix4FromSlice(short) error = %v, want ErrMatrixLength", err)
	}
}

func TestMatrixIs2D(t *testing.T) {
	if !Translate(1, 2).Multiply(Skew(0.2, 0.1)).Is2D() {
		t.Error("affine matrix should be 2D")
	}
	m := Identity()
	m[7] = 0.001
	if m.Is2D() {
		t.Error("perspective matrix should not be 2D")
	}
}
