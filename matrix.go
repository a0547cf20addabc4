package picture

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"
)

// Matrix4 is a 4x4 transformation matrix stored in column-major order:
// element (row, col) lives at index col*4+row. This is the order of the CSS
// matrix3d() function and of the array wire encoding.
//
// For a 2D point the transformation is:
//
//	x' = m[0]*x + m[4]*y + m[12]
//	y' = m[1]*x + m[5]*y + m[13]
//	w  = m[3]*x + m[7]*y + m[15]
//
// followed by a perspective divide by w when w is neither 0 nor 1.
type Matrix4 [16]float64

// ErrMatrixLength is returned by Matrix4FromSlice for input that does not
// hold exactly 16 values.
var ErrMatrixLength = errors.New("picture: matrix4 needs 16 values")

// Identity returns the identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(dx, dy float64) Matrix4 {
	m := Identity()
	m[12] = dx
	m[13] = dy
	return m
}

// Scale creates a scaling matrix. The z axis is left unscaled.
func Scale(sx, sy float64) Matrix4 {
	m := Identity()
	m[0] = sx
	m[5] = sy
	return m
}

// RotateZ creates a rotation about the z axis (angle in radians).
func RotateZ(radians float64) Matrix4 {
	sin, cos := math.Sincos(radians)
	m := Identity()
	m[0] = cos
	m[1] = sin
	m[4] = -sin
	m[5] = cos
	return m
}

// Skew creates a skew matrix. sx and sy are matrix values, not angles:
// x' = x + sx*y and y' = sy*x + y.
func Skew(sx, sy float64) Matrix4 {
	m := Identity()
	m[1] = sy
	m[4] = sx
	return m
}

// Matrix4FromSlice creates a matrix from 16 column-major values.
func Matrix4FromSlice(v []float64) (Matrix4, error) {
	var m Matrix4
	if len(v) != len(m) {
		return m, ErrMatrixLength
	}
	copy(m[:], v)
	return m, nil
}

// Multiply returns m * o: o is applied first, in m's local frame.
func (m Matrix4) Multiply(o Matrix4) Matrix4 {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// IsIdentity reports whether m is exactly the identity matrix.
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}

// Is2D reports whether m only touches the x/y affine components, so it can be
// expressed as a 2x3 affine matrix.
func (m Matrix4) Is2D() bool {
	return m[2] == 0 && m[3] == 0 && m[6] == 0 && m[7] == 0 &&
		m[8] == 0 && m[9] == 0 && m[10] == 1 && m[11] == 0 &&
		m[14] == 0 && m[15] == 1
}

// TransformPoint applies the transformation to the point (x, y).
func (m Matrix4) TransformPoint(x, y float64) (float64, float64) {
	tx := m[0]*x + m[4]*y + m[12]
	ty := m[1]*x + m[5]*y + m[13]
	w := m[3]*x + m[7]*y + m[15]
	if w != 1 && w != 0 {
		tx /= w
		ty /= w
	}
	return tx, ty
}

// Apply transforms a Point.
func (m Matrix4) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// TransformRect returns the axis-aligned bounding box of the quad obtained by
// projecting all four corners of r.
func (m Matrix4) TransformRect(r Rect) Rect {
	x0, y0 := m.TransformPoint(r.Left, r.Top)
	x1, y1 := m.TransformPoint(r.Right, r.Top)
	x2, y2 := m.TransformPoint(r.Right, r.Bottom)
	x3, y3 := m.TransformPoint(r.Left, r.Bottom)
	return Rect{
		Left:   math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		Top:    math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		Right:  math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		Bottom: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// Invert returns the inverse of m. The second result is false when m is
// singular, in which case the returned matrix is the identity.
func (m Matrix4) Invert() (Matrix4, bool) {
	var inv Matrix4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 || math.IsNaN(det) {
		return Identity(), false
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}

// Aff3 returns the 2D affine part of m in the row-major layout used by
// golang.org/x/image/draw. Perspective and z components are dropped.
func (m Matrix4) Aff3() f64.Aff3 {
	return f64.Aff3{
		m[0], m[4], m[12],
		m[1], m[5], m[13],
	}
}

// Slice returns the 16 column-major values.
func (m Matrix4) Slice() []float64 {
	out := make([]float64, len(m))
	copy(out, m[:])
	return out
}

// CSS returns the matrix as a CSS matrix3d() transform value.
func (m Matrix4) CSS() string {
	var sb strings.Builder
	sb.WriteString("matrix3d(")
	for i, v := range m {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteString(")")
	return sb.String()
}

// String returns the debug representation of the matrix.
func (m Matrix4) String() string {
	var sb strings.Builder
	sb.WriteString("Matrix4(")
	for i, v := range m {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(formatFixed(v))
	}
	sb.WriteString(")")
	return sb.String()
}
