// Package dom provides a retained-DOM backend for the recording system.
// Replaying a recording builds a tree of golang.org/x/net/html nodes rooted
// at a <flt-picture> element, one absolutely positioned element per draw
// command, which can be rendered as HTML.
//
// Rect and rounded-rect clips become nested <flt-clip> elements with
// overflow hidden. Elements inside a clip are positioned relative to the
// clip's origin.
//
// # Limitations
//
// clipPath, drawLine, drawDRRect, drawPath, drawShadow, shader paints,
// non-normal blur styles and blend modes CSS cannot express return an
// error wrapping recording.ErrUnimplemented. Paragraphs must expose their
// lines through recording.LineLayout.
//
// # Example
//
//	import _ "github.com/gogpu/picture/recording/backends/dom"
//
//	backend, _ := recording.NewBackend("dom", 800, 600)
//	rec.Apply(backend, true)
//	backend.(*dom.Backend).Render(os.Stdout)
package dom

import (
	"bytes"
	"image"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/cache"
	"github.com/gogpu/picture/internal/savestack"
	"github.com/gogpu/picture/recording"
)

// Name is the name the backend is registered under.
const Name = "dom"

func init() {
	recording.Register(Name, func(width, height int) recording.Backend {
		return NewBackend(width, height)
	})
}

// level is the per-save state of the node tree: the element new children
// are appended to and the matrix mapping device space into its frame.
type level struct {
	parent *html.Node
	frame  picture.Matrix4
}

// imageCacheSize bounds the number of encoded image regions kept per
// backend.
const imageCacheSize = 32

// imageKey identifies an encoded image region.
type imageKey struct {
	img image.Image
	r   image.Rectangle
}

// Backend builds an HTML node tree from drawing calls.
//
// Encoded image regions are cached until the next Clear, so images must not
// change while a recording is being replayed.
type Backend struct {
	root   *html.Node
	width  int
	height int
	stack  *savestack.Stack[level]
	images *cache.Cache[imageKey, string]
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
)

// NewBackend creates a DOM backend for a picture of the given size.
func NewBackend(width, height int) *Backend {
	width, height = max(width, 0), max(height, 0)
	s := &style{}
	s.set("position", "absolute")
	s.set("width", px(float64(width)))
	s.set("height", px(float64(height)))
	s.set("overflow", "hidden")
	b := &Backend{
		root:   element("flt-picture", s),
		width:  width,
		height: height,
		images: cache.New[imageKey, string](imageCacheSize),
	}
	b.stack = savestack.New(b.rootLevel())
	return b
}

func (b *Backend) rootLevel() level {
	return level{parent: b.root, frame: picture.Identity()}
}

func element(tag string, s *style) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if s != nil && len(s.decls) > 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: s.String()})
	}
	return n
}

// Root returns the <flt-picture> element.
func (b *Backend) Root() *html.Node {
	return b.root
}

// Clear removes every drawn element and resets the save stack.
func (b *Backend) Clear() error {
	for c := b.root.FirstChild; c != nil; c = b.root.FirstChild {
		b.root.RemoveChild(c)
	}
	b.stack.Reset(b.rootLevel())
	b.images.Clear()
	return nil
}

// Save saves the current transform and clip element.
func (b *Backend) Save() error {
	b.stack.Save()
	return nil
}

// Restore returns to the transform and clip element of the last Save.
func (b *Backend) Restore() error {
	if err := b.stack.Restore(); err != nil {
		return recording.ErrUnbalancedRestore
	}
	return nil
}

// Translate moves the origin of the current transform.
func (b *Backend) Translate(dx, dy float64) error {
	b.stack.Translate(dx, dy)
	return nil
}

// Scale scales the current transform.
func (b *Backend) Scale(sx, sy float64) error {
	b.stack.Scale(sx, sy)
	return nil
}

// Rotate rotates the current transform.
func (b *Backend) Rotate(radians float64) error {
	b.stack.Rotate(radians)
	return nil
}

// Transform multiplies the current transform by m.
func (b *Backend) Transform(m picture.Matrix4) error {
	b.stack.Concat(m)
	return nil
}

// Skew shears the current transform.
func (b *Backend) Skew(sx, sy float64) error {
	b.stack.Skew(sx, sy)
	return nil
}

// ClipRect nests later elements in a clip element covering r.
func (b *Backend) ClipRect(r picture.Rect) error {
	b.clip(r, "")
	b.stack.ClipRect(r)
	return nil
}

// ClipRRect nests later elements in a rounded clip element covering rr.
func (b *Backend) ClipRRect(rr picture.RRect) error {
	b.clip(rr.Outer(), borderRadius(rr))
	b.stack.ClipRRect(rr)
	return nil
}

// ClipPath is not supported.
func (b *Backend) ClipPath(*picture.Path) error {
	return recording.Unimplemented(Name, "clipPath")
}

func (b *Backend) clip(r picture.Rect, radius string) {
	s := &style{}
	b.position(s, r.Left, r.Top)
	s.set("width", px(r.Width()))
	s.set("height", px(r.Height()))
	s.set("overflow", "hidden")
	if radius != "" {
		s.set("border-radius", radius)
	}
	n := element("flt-clip", s)
	b.stack.Data().parent.AppendChild(n)

	// A singular transform leaves the identity frame; nothing inside such a
	// clip is visible anyway.
	inv, _ := b.stack.Transform().Multiply(picture.Translate(r.Left, r.Top)).Invert()
	b.stack.SetData(level{parent: n, frame: inv})
}

// position places an element whose local origin is (x, y) in the current
// coordinate system.
func (b *Backend) position(s *style, x, y float64) {
	b.place(s, b.stack.Data().frame.Multiply(b.stack.Transform()).Multiply(picture.Translate(x, y)))
}

// place positions an element with m mapping its box into the parent frame.
func (b *Backend) place(s *style, m picture.Matrix4) {
	s.set("position", "absolute")
	if isTranslation(m) {
		s.set("left", px(m[12]))
		s.set("top", px(m[13]))
		return
	}
	s.set("left", "0px")
	s.set("top", "0px")
	s.set("transform-origin", "0 0 0")
	s.set("transform", m.CSS())
}

func (b *Backend) append(n *html.Node) {
	b.stack.Data().parent.AppendChild(n)
}

// Render writes the node tree as HTML to w.
func (b *Backend) Render(w io.Writer) error {
	return html.Render(w, b.root)
}

// String returns the rendered HTML.
func (b *Backend) String() string {
	var buf bytes.Buffer
	if err := b.Render(&buf); err != nil {
		return "<!-- " + strconv.Quote(err.Error()) + " -->"
	}
	return buf.String()
}

// WriteTo writes the rendered HTML to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := b.Render(cw)
	return cw.n, err
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
