package recording

import (
	"math"

	"github.com/gogpu/picture"
)

// PaintBounds tracks the transform and clip of a recording session and
// accumulates the device-space area touched by paint calls.
//
// The painted area only grows. Each paint is clamped to the clip that is
// active when it is recorded; later clip changes never shrink earlier paint.
// An inverted input rect is normalized before it is accumulated, so it
// widens the result instead of being dropped.
type PaintBounds struct {
	maxBounds picture.Rect

	transform  picture.Matrix4
	isIdentity bool

	clip    picture.Rect
	hasClip bool

	stack []boundsState

	painted                  bool
	left, top, right, bottom float64
}

// boundsState is one saved transform and clip. hasClip false means no clip
// was active, which is different from an empty clip.
type boundsState struct {
	transform  picture.Matrix4
	isIdentity bool
	clip       picture.Rect
	hasClip    bool
}

// NewPaintBounds creates a tracker whose results are limited to maxBounds.
func NewPaintBounds(maxBounds picture.Rect) *PaintBounds {
	return &PaintBounds{
		maxBounds:  maxBounds,
		transform:  picture.Identity(),
		isIdentity: true,
	}
}

// MaxBounds returns the maximum paintable area given at construction.
func (b *PaintBounds) MaxBounds() picture.Rect { return b.maxBounds }

// Transform returns the current transform.
func (b *PaintBounds) Transform() picture.Matrix4 { return b.transform }

// Clip returns the active device-space clip and whether one is set.
func (b *PaintBounds) Clip() (picture.Rect, bool) { return b.clip, b.hasClip }

// Depth returns the number of saved states.
func (b *PaintBounds) Depth() int { return len(b.stack) }

// Translate composes a translation into the current transform.
func (b *PaintBounds) Translate(dx, dy float64) {
	if dx != 0 || dy != 0 {
		b.isIdentity = false
	}
	b.transform = b.transform.Multiply(picture.Translate(dx, dy))
}

// Scale composes a scale into the current transform.
func (b *PaintBounds) Scale(sx, sy float64) {
	if sx != 1 || sy != 1 {
		b.isIdentity = false
	}
	b.transform = b.transform.Multiply(picture.Scale(sx, sy))
}

// RotateZ composes a rotation into the current transform.
func (b *PaintBounds) RotateZ(radians float64) {
	if radians != 0 {
		b.isIdentity = false
	}
	b.transform = b.transform.Multiply(picture.RotateZ(radians))
}

// TransformBy composes m into the current transform.
func (b *PaintBounds) TransformBy(m picture.Matrix4) {
	b.transform = b.transform.Multiply(m)
	b.isIdentity = b.transform.IsIdentity()
}

// Skew composes a skew into the current transform.
func (b *PaintBounds) Skew(sx, sy float64) {
	b.isIdentity = false
	b.transform = b.transform.Multiply(picture.Skew(sx, sy))
}

// ClipRect intersects the active clip with r projected to device space. It
// reports whether the resulting clip is empty.
func (b *PaintBounds) ClipRect(r picture.Rect) bool {
	if !b.isIdentity {
		r = b.transform.TransformRect(r)
	}
	if b.hasClip {
		b.clip = b.clip.Intersect(r)
	} else {
		b.clip = r
		b.hasClip = true
	}
	return b.clip.IsEmpty()
}

// Grow adds r, given in the current local frame, to the painted area.
// See GrowLTRB.
func (b *PaintBounds) Grow(r picture.Rect) (picture.Rect, bool) {
	return b.GrowLTRB(r.Left, r.Top, r.Right, r.Bottom)
}

// GrowLTRB adds the local rect (left, top, right, bottom) to the painted area
// and returns its device-space extent after clipping. The second result is
// false when the rect is degenerate or lies wholly outside the clip; the
// painted area is unchanged in that case.
func (b *PaintBounds) GrowLTRB(left, top, right, bottom float64) (picture.Rect, bool) {
	if left == right || top == bottom {
		return picture.Rect{}, false
	}

	dev := picture.LTRB(left, top, right, bottom).Normalize()
	if !b.isIdentity {
		dev = b.transform.TransformRect(dev)
	}

	if b.hasClip {
		c := b.clip
		if dev.Left > c.Right || dev.Right < c.Left || dev.Top > c.Bottom || dev.Bottom < c.Top {
			return picture.Rect{}, false
		}
		dev.Left = math.Max(dev.Left, c.Left)
		dev.Top = math.Max(dev.Top, c.Top)
		dev.Right = math.Min(dev.Right, c.Right)
		dev.Bottom = math.Min(dev.Bottom, c.Bottom)
	}

	if !b.painted {
		b.left, b.top, b.right, b.bottom = dev.Left, dev.Top, dev.Right, dev.Bottom
		b.painted = true
		return dev, true
	}
	b.left = math.Min(b.left, dev.Left)
	b.top = math.Min(b.top, dev.Top)
	b.right = math.Max(b.right, dev.Right)
	b.bottom = math.Max(b.bottom, dev.Bottom)
	return dev, true
}

// Save pushes the current transform and clip.
func (b *PaintBounds) Save() {
	b.stack = append(b.stack, boundsState{
		transform:  b.transform,
		isIdentity: b.isIdentity,
		clip:       b.clip,
		hasClip:    b.hasClip,
	})
}

// Restore pops the most recently saved transform and clip. It panics when
// nothing was saved.
func (b *PaintBounds) Restore() {
	if len(b.stack) == 0 {
		panic(ErrUnbalancedRestore)
	}
	s := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	b.transform = s.transform
	b.isIdentity = s.isIdentity
	b.clip = s.clip
	b.hasClip = s.hasClip
}

// DidPaint reports whether any paint reached the painted area.
func (b *PaintBounds) DidPaint() bool { return b.painted }

// ComputeBounds returns the painted area limited to the maximum bounds, or
// the zero rect when nothing was painted or the two do not overlap.
func (b *PaintBounds) ComputeBounds() picture.Rect {
	if !b.painted {
		return picture.Rect{}
	}

	maxLeft, maxTop := b.maxBounds.Left, b.maxBounds.Top
	maxRight, maxBottom := b.maxBounds.Right, b.maxBounds.Bottom
	if math.IsNaN(maxLeft) {
		maxLeft = math.Inf(-1)
	}
	if math.IsNaN(maxTop) {
		maxTop = math.Inf(-1)
	}
	if math.IsNaN(maxRight) {
		maxRight = math.Inf(1)
	}
	if math.IsNaN(maxBottom) {
		maxBottom = math.Inf(1)
	}

	painted := picture.LTRB(b.left, b.top, b.right, b.bottom).Normalize()
	if painted.Left >= maxRight || painted.Right <= maxLeft ||
		painted.Top >= maxBottom || painted.Bottom <= maxTop {
		return picture.Rect{}
	}
	return picture.Rect{
		Left:   math.Max(painted.Left, maxLeft),
		Top:    math.Max(painted.Top, maxTop),
		Right:  math.Min(painted.Right, maxRight),
		Bottom: math.Min(painted.Bottom, maxBottom),
	}
}
