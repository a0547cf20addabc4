// Package savestack tracks the transform and clip state that every backend
// keeps in lock-step with the Save and Restore calls it receives.
package savestack

import (
	"errors"

	"github.com/gogpu/picture"
)

// ErrUnbalanced is returned by Restore when there is no saved state.
var ErrUnbalanced = errors.New("savestack: restore without matching save")

// ClipKind identifies the shape of a clip.
type ClipKind uint8

const (
	ClipRect ClipKind = iota
	ClipRRect
	ClipPath
)

// Clip is one clip operation together with the transform that was current
// when it was applied.
type Clip struct {
	Kind      ClipKind
	Rect      picture.Rect
	RRect     picture.RRect
	Path      *picture.Path
	Transform picture.Matrix4
}

// LocalBounds returns the bounds of the clip shape before transformation.
func (c Clip) LocalBounds() picture.Rect {
	switch c.Kind {
	case ClipRRect:
		return c.RRect.Outer()
	case ClipPath:
		return c.Path.Bounds()
	}
	return c.Rect
}

// Bounds returns the device-space bounds of the clip.
func (c Clip) Bounds() picture.Rect {
	return c.Transform.TransformRect(c.LocalBounds())
}

// State is one level of the stack. Data carries whatever per-level value a
// backend needs, such as the DOM node new children are attached to.
type State[T any] struct {
	Transform picture.Matrix4
	Clips     []Clip
	Data      T
}

// Stack is a save stack of States.
type Stack[T any] struct {
	cur   State[T]
	saved []State[T]
}

// New returns a stack with the identity transform, no clips and data as the
// root level value.
func New[T any](data T) *Stack[T] {
	s := &Stack[T]{}
	s.Reset(data)
	return s
}

// Reset drops every saved level and starts over with data.
func (s *Stack[T]) Reset(data T) {
	s.cur = State[T]{Transform: picture.Identity(), Data: data}
	s.saved = s.saved[:0]
}

// Save pushes a copy of the current state.
func (s *Stack[T]) Save() {
	s.saved = append(s.saved, s.cur)
	// Later clips must not write into the saved level's backing array.
	s.cur.Clips = s.cur.Clips[:len(s.cur.Clips):len(s.cur.Clips)]
}

// Restore pops the most recently saved state.
func (s *Stack[T]) Restore() error {
	n := len(s.saved)
	if n == 0 {
		return ErrUnbalanced
	}
	s.cur = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return nil
}

// Depth returns the number of saved levels.
func (s *Stack[T]) Depth() int { return len(s.saved) }

// Transform returns the current transform.
func (s *Stack[T]) Transform() picture.Matrix4 { return s.cur.Transform }

// Clips returns the clips of the current level, outermost first. The slice
// must not be modified.
func (s *Stack[T]) Clips() []Clip { return s.cur.Clips }

// Data returns the per-level value of the current level.
func (s *Stack[T]) Data() T { return s.cur.Data }

// SetData replaces the per-level value of the current level. Saved levels
// keep their own values.
func (s *Stack[T]) SetData(data T) { s.cur.Data = data }

// Concat multiplies m onto the current transform, so m applies first.
func (s *Stack[T]) Concat(m picture.Matrix4) {
	s.cur.Transform = s.cur.Transform.Multiply(m)
}

func (s *Stack[T]) Translate(dx, dy float64) { s.Concat(picture.Translate(dx, dy)) }
func (s *Stack[T]) Scale(sx, sy float64)     { s.Concat(picture.Scale(sx, sy)) }
func (s *Stack[T]) Rotate(radians float64)   { s.Concat(picture.RotateZ(radians)) }
func (s *Stack[T]) Skew(sx, sy float64)      { s.Concat(picture.Skew(sx, sy)) }

// ClipRect intersects the clip with r in the current coordinate space.
func (s *Stack[T]) ClipRect(r picture.Rect) {
	s.push(Clip{Kind: ClipRect, Rect: r})
}

// ClipRRect intersects the clip with rr in the current coordinate space.
func (s *Stack[T]) ClipRRect(rr picture.RRect) {
	s.push(Clip{Kind: ClipRRect, RRect: rr})
}

// ClipPath intersects the clip with the area of p. The path is cloned.
func (s *Stack[T]) ClipPath(p *picture.Path) {
	s.push(Clip{Kind: ClipPath, Path: p.Clone()})
}

func (s *Stack[T]) push(c Clip) {
	c.Transform = s.cur.Transform
	s.cur.Clips = append(s.cur.Clips, c)
}

// ClipBounds returns the device-space intersection of all current clips
// with limit.
func (s *Stack[T]) ClipBounds(limit picture.Rect) picture.Rect {
	r := limit
	for _, c := range s.cur.Clips {
		r = r.Intersect(c.Bounds())
	}
	return r
}
