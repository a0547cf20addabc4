// Package bitmap provides a pixel backend for the recording system.
// It rasterizes recordings into an *image.RGBA using the vector
// rasterizer from golang.org/x/image.
//
// The bitmap backend serves multiple purposes:
//   - Reference rendering for golden image tests
//   - Thumbnails and offline export of recorded pictures
//   - Pixel comparison between backends
//
// # Supported Features
//
//   - Fills and strokes of every shape, with caps and joins
//   - All 29 blend modes
//   - Linear and radial gradient shaders
//   - Blur mask filters and color filters
//   - Rect, rounded rect and path clips with anti-aliased edges
//   - Material shadows
//   - Images with nearest, bilinear and Catmull-Rom filtering
//   - Paragraphs that expose a font.Face
//   - PNG output
//
// # Limitations
//
// Even-odd path fills and paragraphs without a font face return an error
// wrapping recording.ErrUnimplemented. Text is drawn at the transformed
// origin of each line without scaling or rotating the glyphs.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/picture/recording/backends/bitmap"
//
//	// Create via registry
//	backend, _ := recording.NewBackend("bitmap", 800, 600)
//
//	// Or create directly
//	backend := bitmap.NewBackend(800, 600)
//
//	// Replay a recording
//	rec.Apply(backend, true)
//
//	// Get output
//	backend.SavePNG("output.png")
//	img := backend.Image()
package bitmap

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/internal/filter"
	"github.com/gogpu/picture/internal/savestack"
	"github.com/gogpu/picture/recording"
)

// Name is the name the backend is registered under.
const Name = "bitmap"

func init() {
	recording.Register(Name, func(width, height int) recording.Backend {
		return NewBackend(width, height)
	})
}

// Backend renders recordings to an RGBA image.
// It implements recording.Backend, recording.WriterBackend and
// recording.ImageBackend.
//
// Each save level carries the clip mask accumulated so far; a nil mask means
// nothing is clipped.
type Backend struct {
	img    *image.RGBA
	width  int
	height int
	stack  *savestack.Stack[*image.Alpha]
}

// Ensure Backend implements all required interfaces.
var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a bitmap backend with a transparent surface of the
// given size. Negative sizes are treated as zero.
func NewBackend(width, height int) *Backend {
	width, height = max(width, 0), max(height, 0)
	return &Backend{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		stack:  savestack.New[*image.Alpha](nil),
	}
}

// Clear erases the surface to transparent and resets the save stack.
func (b *Backend) Clear() error {
	clear(b.img.Pix)
	b.stack.Reset(nil)
	return nil
}

// Save saves the current transform and clip.
func (b *Backend) Save() error {
	b.stack.Save()
	return nil
}

// Restore restores the transform and clip from the last Save.
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

// Rotate rotates the current transform clockwise by radians.
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

// ClipRect intersects the clip with r.
func (b *Backend) ClipRect(r picture.Rect) error {
	p := picture.NewPath()
	p.AddRect(r)
	b.clip(p)
	b.stack.ClipRect(r)
	return nil
}

// ClipRRect intersects the clip with rr.
func (b *Backend) ClipRRect(rr picture.RRect) error {
	p := picture.NewPath()
	p.AddRRect(rr)
	b.clip(p)
	b.stack.ClipRRect(rr)
	return nil
}

// ClipPath intersects the clip with the interior of p.
func (b *Backend) ClipPath(p *picture.Path) error {
	if p.FillType != picture.FillNonZero {
		return recording.Unimplemented(Name, "clipPath with even-odd fill")
	}
	b.clip(p)
	b.stack.ClipPath(p)
	return nil
}

// clip rasterizes p under the current transform and folds it into the
// current clip mask.
func (b *Backend) clip(p *picture.Path) {
	mask := b.fillCoverage(p, true)
	filter.Intersect(mask, b.stack.Data())
	b.stack.SetData(mask)
}

// Image returns the rendered surface.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// Width returns the surface width.
func (b *Backend) Width() int {
	return b.width
}

// Height returns the surface height.
func (b *Backend) Height() int {
	return b.height
}

// WriteTo writes the surface as PNG to w.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SavePNG writes the surface as a PNG file.
func (b *Backend) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := b.WriteTo(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
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
