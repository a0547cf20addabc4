package dom

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/recording"
)

func styleOf(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "style" {
			return a.Val
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered(Name) {
		t.Fatal("dom backend not registered")
	}
	backend, err := recording.NewBackend(Name, 100, 50)
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	b, ok := backend.(*Backend)
	if !ok {
		t.Fatalf("backend is %T, want *dom.Backend", backend)
	}
	want := "position: absolute; width: 100px; height: 50px; overflow: hidden"
	if got := styleOf(b.Root()); got != want {
		t.Errorf("root style = %q, want %q", got, want)
	}
	if b.Root().Data != "flt-picture" {
		t.Errorf("root tag = %q, want flt-picture", b.Root().Data)
	}
}

func TestBackendBoxes(t *testing.T) {
	tests := []struct {
		name string
		draw func(b *Backend) error
		want string
	}{
		{
			name: "rect",
			draw: func(b *Backend) error {
				return b.DrawRect(picture.LTWH(2, 3, 10, 5), picture.FillPaint(picture.Red))
			},
			want: "position: absolute; left: 2px; top: 3px; width: 10px; height: 5px; background-color: #ff0000",
		},
		{
			name: "stroked rect",
			draw: func(b *Backend) error {
				return b.DrawRect(picture.LTRB(10, 10, 20, 20), picture.StrokePaint(picture.Black, 2))
			},
			want: "position: absolute; left: 9px; top: 9px; width: 12px; height: 12px; border: 2px solid #000000; box-sizing: border-box",
		},
		{
			name: "hairline",
			draw: func(b *Backend) error {
				return b.DrawRect(picture.LTRB(0, 0, 4, 4), picture.StrokePaint(picture.Black, 0))
			},
			want: "position: absolute; left: -0.5px; top: -0.5px; width: 5px; height: 5px; border: 1px solid #000000; box-sizing: border-box",
		},
		{
			name: "rrect",
			draw: func(b *Backend) error {
				rr := picture.RRectFromRectXY(picture.LTRB(0, 0, 20, 10), 4, 4)
				return b.DrawRRect(rr, picture.FillPaint(picture.Blue))
			},
			want: "position: absolute; left: 0px; top: 0px; width: 20px; height: 10px; border-radius: 4px; background-color: #0000ff",
		},
		{
			name: "elliptical rrect",
			draw: func(b *Backend) error {
				rr := picture.RRectFromRectXY(picture.LTRB(0, 0, 20, 10), 4, 2)
				return b.DrawRRect(rr, picture.FillPaint(picture.Blue))
			},
			want: "position: absolute; left: 0px; top: 0px; width: 20px; height: 10px; border-radius: 4px 4px 4px 4px / 2px 2px 2px 2px; background-color: #0000ff",
		},
		{
			name: "circle",
			draw: func(b *Backend) error {
				return b.DrawCircle(picture.Pt(10, 10), 5, picture.FillPaint(picture.Green))
			},
			want: "position: absolute; left: 5px; top: 5px; width: 10px; height: 10px; border-radius: 50%; background-color: #00ff00",
		},
		{
			name: "translucent multiply",
			draw: func(b *Backend) error {
				paint := picture.FillPaint(picture.ARGB(0x80, 0xFF, 0, 0))
				paint.BlendMode = picture.BlendModeMultiply
				return b.DrawRect(picture.LTWH(0, 0, 1, 1), paint)
			},
			want: "position: absolute; left: 0px; top: 0px; width: 1px; height: 1px; background-color: rgba(255, 0, 0, 0.5019607843137255); mix-blend-mode: multiply",
		},
		{
			name: "blur",
			draw: func(b *Backend) error {
				paint := picture.FillPaint(picture.Black)
				paint.MaskFilter = &picture.MaskFilter{Style: picture.BlurStyleNormal, Sigma: 3}
				return b.DrawRect(picture.LTWH(0, 0, 1, 1), paint)
			},
			want: "position: absolute; left: 0px; top: 0px; width: 1px; height: 1px; background-color: #000000; filter: blur(3px)",
		},
		{
			name: "color filter",
			draw: func(b *Backend) error {
				paint := picture.FillPaint(picture.Black)
				paint.ColorFilter = &picture.ColorFilter{Color: picture.Green, BlendMode: picture.BlendModeSrc}
				return b.DrawRect(picture.LTWH(0, 0, 1, 1), paint)
			},
			want: "position: absolute; left: 0px; top: 0px; width: 1px; height: 1px; background-color: #00ff00",
		},
		{
			name: "scaled",
			draw: func(b *Backend) error {
				_ = b.Scale(2, 2)
				return b.DrawRect(picture.LTWH(1, 1, 3, 3), picture.FillPaint(picture.Red))
			},
			want: "position: absolute; left: 0px; top: 0px; transform-origin: 0 0 0; transform: matrix3d(2,0,0,0,0,2,0,0,0,0,1,0,2,2,0,1); width: 3px; height: 3px; background-color: #ff0000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(100, 100)
			if err := tt.draw(b); err != nil {
				t.Fatalf("draw error = %v", err)
			}
			kids := children(b.Root())
			if len(kids) != 1 {
				t.Fatalf("root has %d children, want 1", len(kids))
			}
			if kids[0].Data != "draw-rect" {
				t.Errorf("tag = %q, want draw-rect", kids[0].Data)
			}
			if got := styleOf(kids[0]); got != tt.want {
				t.Errorf("style =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBackendUnimplemented(t *testing.T) {
	p := picture.NewPath()
	p.AddRect(picture.LTRB(0, 0, 1, 1))
	rr := picture.RRectFromRectXY(picture.LTRB(0, 0, 10, 10), 1, 1)
	shaded := picture.DefaultPaint()
	shaded.Shader = picture.NewLinearGradient(picture.Pt(0, 0), picture.Pt(1, 0), picture.Red, picture.Blue)
	cleared := picture.DefaultPaint()
	cleared.BlendMode = picture.BlendModeClear
	inner := picture.DefaultPaint()
	inner.MaskFilter = &picture.MaskFilter{Style: picture.BlurStyleInner, Sigma: 2}

	tests := []struct {
		name string
		call func(b *Backend) error
	}{
		{"clipPath", func(b *Backend) error { return b.ClipPath(p) }},
		{"drawLine", func(b *Backend) error { return b.DrawLine(picture.Pt(0, 0), picture.Pt(1, 1), picture.DefaultPaint()) }},
		{"drawDRRect", func(b *Backend) error { return b.DrawDRRect(rr, rr.Inflate(-2), picture.DefaultPaint()) }},
		{"drawPath", func(b *Backend) error { return b.DrawPath(p, picture.DefaultPaint()) }},
		{"drawShadow", func(b *Backend) error { return b.DrawShadow(p, picture.Black, 2, false) }},
		{"shader", func(b *Backend) error { return b.DrawRect(picture.LTRB(0, 0, 1, 1), shaded) }},
		{"clear mode", func(b *Backend) error { return b.DrawRect(picture.LTRB(0, 0, 1, 1), cleared) }},
		{"drawColor src", func(b *Backend) error { return b.DrawColor(picture.Red, picture.BlendModeSrc) }},
		{"inner blur", func(b *Backend) error { return b.DrawRect(picture.LTRB(0, 0, 1, 1), inner) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(10, 10)
			if err := tt.call(b); !errors.Is(err, recording.ErrUnimplemented) {
				t.Errorf("error = %v, want ErrUnimplemented", err)
			}
			if b.Root().FirstChild != nil {
				t.Error("failed call appended an element")
			}
		})
	}
}

func TestBackendClipNesting(t *testing.T) {
	b := NewBackend(100, 100)
	_ = b.Save()
	_ = b.Translate(5, 5)
	_ = b.ClipRect(picture.LTRB(0, 0, 10, 10))
	_ = b.DrawRect(picture.LTRB(1, 1, 3, 3), picture.FillPaint(picture.Red))
	_ = b.DrawColor(picture.Blue, picture.BlendModeSrcOver)
	if err := b.Restore(); err != nil {
		t.Fatal(err)
	}
	_ = b.DrawRect(picture.LTRB(50, 50, 60, 60), picture.FillPaint(picture.Green))

	kids := children(b.Root())
	if len(kids) != 2 {
		t.Fatalf("root has %d children, want clip and rect", len(kids))
	}
	clip := kids[0]
	if clip.Data != "flt-clip" {
		t.Fatalf("first child = %q, want flt-clip", clip.Data)
	}
	if got, want := styleOf(clip), "position: absolute; left: 5px; top: 5px; width: 10px; height: 10px; overflow: hidden"; got != want {
		t.Errorf("clip style = %q, want %q", got, want)
	}

	inside := children(clip)
	if len(inside) != 2 {
		t.Fatalf("clip has %d children, want 2", len(inside))
	}
	if got := styleOf(inside[0]); !strings.HasPrefix(got, "position: absolute; left: 1px; top: 1px;") {
		t.Errorf("rect inside clip style = %q, want clip-relative position", got)
	}
	if got := styleOf(inside[1]); !strings.HasPrefix(got, "position: absolute; left: -5px; top: -5px; width: 100px; height: 100px;") {
		t.Errorf("drawColor inside clip style = %q, want the device surface", got)
	}
	if got := styleOf(kids[1]); !strings.HasPrefix(got, "position: absolute; left: 50px; top: 50px;") {
		t.Errorf("rect after restore style = %q", got)
	}
}

func TestBackendClipRRect(t *testing.T) {
	b := NewBackend(100, 100)
	_ = b.ClipRRect(picture.RRectFromRectXY(picture.LTRB(10, 10, 30, 30), 5, 5))
	_ = b.ClipRect(picture.LTRB(12, 12, 20, 20))
	outer := b.Root().FirstChild
	if outer == nil || !strings.HasSuffix(styleOf(outer), "overflow: hidden; border-radius: 5px") {
		t.Fatalf("outer clip = %v", outer)
	}
	inner := outer.FirstChild
	if inner == nil || !strings.HasPrefix(styleOf(inner), "position: absolute; left: 2px; top: 2px; width: 8px; height: 8px") {
		t.Fatalf("inner clip not nested relative to outer: %v", inner)
	}
}

func TestBackendClearAndRestore(t *testing.T) {
	b := NewBackend(10, 10)
	_ = b.Save()
	_ = b.ClipRect(picture.LTRB(0, 0, 5, 5))
	_ = b.DrawPaint(picture.FillPaint(picture.Red))
	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if b.Root().FirstChild != nil {
		t.Error("Clear() left children")
	}
	if err := b.Restore(); !errors.Is(err, recording.ErrUnbalancedRestore) {
		t.Errorf("Restore() after Clear error = %v, want ErrUnbalancedRestore", err)
	}
	_ = b.DrawRect(picture.LTRB(0, 0, 1, 1), picture.DefaultPaint())
	if b.Root().FirstChild == nil || b.Root().FirstChild.Data != "draw-rect" {
		t.Error("drawing after Clear did not append to the root")
	}
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("src = %.40q, want PNG data URI", uri)
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("base64 error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	return img
}

func TestBackendDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(2, 0, color.RGBA{B: 255, A: 255})

	b := NewBackend(100, 100)
	if err := b.DrawImage(img, picture.Pt(4, 5), picture.DefaultPaint()); err != nil {
		t.Fatal(err)
	}
	paint := picture.FillPaint(picture.ARGB(0x80, 0, 0, 0))
	paint.FilterQuality = picture.FilterQualityHigh
	if err := b.DrawImageRect(img, picture.LTRB(1, 0, 2, 1), picture.LTRB(0, 0, 10, 10), paint); err != nil {
		t.Fatal(err)
	}
	if err := b.DrawImageRect(img, picture.LTRB(5, 5, 6, 6), picture.LTRB(0, 0, 10, 10), paint); err != nil {
		t.Fatalf("DrawImageRect() outside the image error = %v", err)
	}

	kids := children(b.Root())
	if len(kids) != 2 {
		t.Fatalf("root has %d children, want 2", len(kids))
	}
	if kids[0].Data != "img" {
		t.Errorf("tag = %q, want img", kids[0].Data)
	}
	want := "position: absolute; left: 4px; top: 5px; width: 3px; height: 1px; image-rendering: pixelated"
	if got := styleOf(kids[0]); got != want {
		t.Errorf("image style = %q, want %q", got, want)
	}
	if got := decodeDataURI(t, attr(kids[0], "src")).Bounds(); got != image.Rect(0, 0, 3, 1) {
		t.Errorf("embedded bounds = %v, want 3x1", got)
	}

	if got := styleOf(kids[1]); !strings.Contains(got, "opacity: 0.50") {
		t.Errorf("image rect style = %q, want opacity", got)
	}
	crop := decodeDataURI(t, attr(kids[1], "src"))
	if got := crop.Bounds(); got != image.Rect(0, 0, 1, 1) {
		t.Fatalf("cropped bounds = %v, want 1x1", got)
	}
	if r, g, _, _ := crop.At(0, 0).RGBA(); r != 0 || g != 0xFFFF {
		t.Errorf("cropped pixel = %v, want green", crop.At(0, 0))
	}
}

func TestBackendImageCache(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := NewBackend(100, 100)
	for i := 0; i < 3; i++ {
		if err := b.DrawImage(img, picture.Pt(float64(i), 0), picture.DefaultPaint()); err != nil {
			t.Fatal(err)
		}
	}
	kids := children(b.Root())
	if len(kids) != 3 {
		t.Fatalf("root has %d children, want 3", len(kids))
	}
	if attr(kids[0], "src") != attr(kids[2], "src") {
		t.Error("repeated image produced different data URIs")
	}
	s := b.images.Stats()
	if s.Len != 1 || s.Hits != 2 || s.Misses != 1 {
		t.Errorf("cache stats = %+v, want 1 entry with 2 hits and 1 miss", s)
	}

	if err := b.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := b.images.Len(); got != 0 {
		t.Errorf("cache entries after Clear = %d, want 0", got)
	}
}

type testParagraph struct {
	lines   []recording.TextLine
	pending bool
}

func (p *testParagraph) IsLaidOut() bool             { return !p.pending }
func (p *testParagraph) PaintBounds() picture.Rect   { return picture.LTWH(0, 0, 50, 26) }
func (p *testParagraph) HasArbitraryPaint() bool     { return false }
func (p *testParagraph) Lines() []recording.TextLine { return p.lines }
func (p *testParagraph) Color() picture.Color        { return picture.Red }

type opaqueParagraph struct{}

func (opaqueParagraph) IsLaidOut() bool           { return true }
func (opaqueParagraph) PaintBounds() picture.Rect { return picture.Rect{} }
func (opaqueParagraph) HasArbitraryPaint() bool   { return true }

func TestBackendDrawParagraph(t *testing.T) {
	b := NewBackend(100, 100)
	p := &testParagraph{lines: []recording.TextLine{
		{Text: "hello", Top: 0, Baseline: 11, Width: 35, Height: 13},
		{Text: "a < b", Top: 13, Baseline: 24, Width: 35, Height: 13},
	}}
	if err := b.DrawParagraph(p, picture.Pt(3, 4)); err != nil {
		t.Fatal(err)
	}
	para := b.Root().FirstChild
	if para == nil || para.Data != "flt-paragraph" {
		t.Fatalf("child = %v, want flt-paragraph", para)
	}
	if got, want := styleOf(para), "position: absolute; left: 3px; top: 4px; color: #ff0000; white-space: pre"; got != want {
		t.Errorf("paragraph style = %q, want %q", got, want)
	}
	spans := children(para)
	if len(spans) != 2 {
		t.Fatalf("paragraph has %d spans, want 2", len(spans))
	}
	if got := spans[1].FirstChild.Data; got != "a < b" {
		t.Errorf("span text = %q, want %q", got, "a < b")
	}
	if !strings.Contains(styleOf(spans[1]), "top: 13px") {
		t.Errorf("second span style = %q, want top: 13px", styleOf(spans[1]))
	}
	if !strings.Contains(b.String(), "a &lt; b") {
		t.Error("rendered HTML does not escape paragraph text")
	}

	if err := b.DrawParagraph(opaqueParagraph{}, picture.Pt(0, 0)); !errors.Is(err, recording.ErrUnimplemented) {
		t.Errorf("DrawParagraph() without lines error = %v, want ErrUnimplemented", err)
	}
}

func TestBackendParagraphNotLaidOut(t *testing.T) {
	b := NewBackend(100, 100)
	before := b.String()
	p := &testParagraph{
		lines:   []recording.TextLine{{Text: "hello", Baseline: 11, Width: 35, Height: 13}},
		pending: true,
	}
	if err := b.DrawParagraph(p, picture.Pt(5, 5)); err != nil {
		t.Fatalf("DrawParagraph() error = %v, want nil", err)
	}
	if b.Root().FirstChild != nil {
		t.Errorf("root has child %q, want none", b.Root().FirstChild.Data)
	}
	if got := b.String(); got != before {
		t.Errorf("String() = %q, want %q", got, before)
	}
}

func TestBackendWriteTo(t *testing.T) {
	b := NewBackend(10, 10)
	_ = b.DrawRect(picture.LTRB(0, 0, 1, 1), picture.DefaultPaint())
	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, want %d", n, buf.Len())
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<flt-picture ") || !strings.HasSuffix(out, "</flt-picture>") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "<draw-rect ") {
		t.Errorf("output = %q, want a draw-rect element", out)
	}
	if out != b.String() {
		t.Error("String() differs from WriteTo output")
	}
}

func TestBackendReplay(t *testing.T) {
	rec := recording.NewRecorder(picture.LargestRect())
	rec.DrawRect(picture.LTRB(0, 0, 10, 10), picture.FillPaint(picture.Red))
	rec.DrawLine(picture.Pt(0, 0), picture.Pt(5, 5), picture.StrokePaint(picture.Black, 1))
	rec.DrawRect(picture.LTRB(10, 10, 20, 20), picture.FillPaint(picture.Blue))
	rec.EndRecording()

	b := NewBackend(20, 20)
	err := rec.Apply(b, true)
	if !errors.Is(err, recording.ErrUnimplemented) {
		t.Fatalf("Apply() error = %v, want ErrUnimplemented from drawLine", err)
	}
	if got := len(children(b.Root())); got != 1 {
		t.Errorf("root has %d children, want 1 (replay stops at the failure)", got)
	}
}
