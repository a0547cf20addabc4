package paragraph

import (
	"testing"

	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/recording"
	"github.com/gogpu/picture/recording/backends/bitmap"
)

var _ bitmap.FaceParagraph = (*Paragraph)(nil)

func newPlain(text string) *Paragraph {
	return New(text, Style{Face: basicfont.Face7x13, Color: picture.Black})
}

func TestNewNormalizesText(t *testing.T) {
	p := newPlain("cafe\u0301")
	if got, want := p.Text(), "caf\u00e9"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNewDefaultFace(t *testing.T) {
	p := New("x", Style{})
	if p.Face() != basicfont.Face7x13 {
		t.Errorf("Face() = %v, want basicfont.Face7x13", p.Face())
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []recording.TextLine
	}{
		{
			name:  "fits",
			text:  "hello",
			width: 100,
			want:  []recording.TextLine{{Text: "hello", Top: 0, Baseline: 11, Width: 35, Height: 13}},
		},
		{
			name:  "wraps",
			text:  "hello world foo",
			width: 80,
			want: []recording.TextLine{
				{Text: "hello world", Top: 0, Baseline: 11, Width: 77, Height: 13},
				{Text: "foo", Top: 13, Baseline: 24, Width: 21, Height: 13},
			},
		},
		{
			name:  "collapses whitespace",
			text:  "  a   b ",
			width: 100,
			want:  []recording.TextLine{{Text: "a b", Baseline: 11, Width: 21, Height: 13}},
		},
		{
			name:  "hard breaks",
			text:  "a\n\nb",
			width: 100,
			want: []recording.TextLine{
				{Text: "a", Top: 0, Baseline: 11, Width: 7, Height: 13},
				{Text: "", Top: 13, Baseline: 24, Width: 0, Height: 13},
				{Text: "b", Top: 26, Baseline: 37, Width: 7, Height: 13},
			},
		},
		{
			name:  "long word overflows",
			text:  "abcdefghij xy",
			width: 20,
			want: []recording.TextLine{
				{Text: "abcdefghij", Top: 0, Baseline: 11, Width: 70, Height: 13},
				{Text: "xy", Top: 13, Baseline: 24, Width: 14, Height: 13},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPlain(tt.text)
			p.Layout(tt.width)
			got := p.Lines()
			if len(got) != len(tt.want) {
				t.Fatalf("Lines() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRelayout(t *testing.T) {
	p := newPlain("one two three")
	p.Layout(30)
	if n := len(p.Lines()); n != 3 {
		t.Fatalf("Layout(30) lines = %d, want 3", n)
	}
	p.Layout(1000)
	if n := len(p.Lines()); n != 1 {
		t.Errorf("Layout(1000) lines = %d, want 1", n)
	}
	if p.Width() != 1000 {
		t.Errorf("Width() = %v, want 1000", p.Width())
	}
}

func TestPaintBounds(t *testing.T) {
	p := newPlain("hello world foo")
	if p.IsLaidOut() {
		t.Error("IsLaidOut() = true before Layout")
	}
	p.Layout(80)
	if !p.IsLaidOut() {
		t.Error("IsLaidOut() = false after Layout")
	}
	if got, want := p.PaintBounds(), picture.LTRB(0, 0, 77, 26); got != want {
		t.Errorf("PaintBounds() = %v, want %v", got, want)
	}
	if p.HasArbitraryPaint() {
		t.Error("HasArbitraryPaint() = true for plain text")
	}
}

func TestRecorderDropsUnlaidParagraph(t *testing.T) {
	p := newPlain("hello")
	rec := recording.NewRecorder(picture.LargestRect())
	rec.DrawParagraph(p, picture.Pt(10, 20))
	if rec.Len() != 0 {
		t.Fatalf("recorded %d commands for an un-laid-out paragraph, want 0", rec.Len())
	}

	p.Layout(100)
	rec.DrawParagraph(p, picture.Pt(10, 20))
	if rec.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rec.Len())
	}
	if got, want := rec.ComputeBounds(), picture.LTRB(10, 20, 45, 33); got != want {
		t.Errorf("ComputeBounds() = %v, want %v", got, want)
	}
}

func TestDrawToBitmap(t *testing.T) {
	p := New("Hi", Style{Color: picture.Red})
	p.Layout(100)
	b := bitmap.NewBackend(20, 16)
	if err := b.DrawParagraph(p, picture.Pt(1, 1)); err != nil {
		t.Fatalf("DrawParagraph() error = %v", err)
	}
	var red int
	img := b.Image()
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 255 && img.Pix[i+3] == 255 {
			red++
		}
	}
	if red == 0 {
		t.Error("no red glyph pixels drawn")
	}
}
