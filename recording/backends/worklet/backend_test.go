package worklet

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/recording"
	"github.com/gogpu/picture/recording/backends/bitmap"
)

func payload(t *testing.T, b *Backend) string {
	t.Helper()
	data, err := b.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	return string(data)
}

func TestBackendRegistration(t *testing.T) {
	if !recording.IsRegistered(Name) {
		t.Fatal("worklet backend not registered")
	}
	backend := recording.MustBackend(Name, 10, 10)
	if _, ok := backend.(*Backend); !ok {
		t.Fatalf("backend is %T, want *worklet.Backend", backend)
	}
}

func TestBackendEncodesCalls(t *testing.T) {
	b := NewBackend(10, 10)
	if got := payload(t, b); got != "[]" {
		t.Errorf("empty payload = %s, want []", got)
	}
	_ = b.Save()
	_ = b.Translate(1.5, -2)
	_ = b.DrawColor(picture.Red, picture.BlendModeSrcOver)
	_ = b.Restore()

	want := `[[1],[3,1.5,-2],[11,"#ff0000",3],[2]]`
	if got := payload(t, b); got != want {
		t.Errorf("payload = %s, want %s", got, want)
	}
	if b.Len() != 4 || len(b.Commands()) != 4 {
		t.Errorf("Len() = %d, Commands() = %d, want 4", b.Len(), len(b.Commands()))
	}
	if _, ok := b.Commands()[1].(recording.TranslateCommand); !ok {
		t.Errorf("Commands()[1] = %T, want TranslateCommand", b.Commands()[1])
	}
}

func TestBackendStyle(t *testing.T) {
	b := NewBackend(20, 10)
	_ = b.Scale(2, 3)
	got, err := b.Style()
	if err != nil {
		t.Fatal(err)
	}
	want := "width: 20px; height: 10px; background-image: paint(flt); --flt: [[4,2,3]]"
	if got != want {
		t.Errorf("Style() = %q, want %q", got, want)
	}
}

func TestBackendNotSerializable(t *testing.T) {
	b := NewBackend(10, 10)
	_ = b.DrawRect(picture.LTRB(0, 0, 1, 1), picture.DefaultPaint())
	before := payload(t, b)

	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	errs := map[string]error{
		"drawImage":     b.DrawImage(img, picture.Pt(0, 0), picture.DefaultPaint()),
		"drawImageRect": b.DrawImageRect(img, picture.LTRB(0, 0, 1, 1), picture.LTRB(0, 0, 2, 2), picture.DefaultPaint()),
		"drawParagraph": b.DrawParagraph(nil, picture.Pt(0, 0)),
	}
	for name, err := range errs {
		if !errors.Is(err, recording.ErrNotSerializable) {
			t.Errorf("%s error = %v, want ErrNotSerializable", name, err)
		}
	}
	if got := payload(t, b); got != before {
		t.Errorf("payload changed to %s after failed calls", got)
	}
}

func TestBackendRestoreUnbalanced(t *testing.T) {
	b := NewBackend(10, 10)
	if err := b.Restore(); !errors.Is(err, recording.ErrUnbalancedRestore) {
		t.Errorf("Restore() error = %v, want ErrUnbalancedRestore", err)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

func TestBackendClipBounds(t *testing.T) {
	b := NewBackend(100, 100)
	if got := b.ClipBounds(); got != picture.LTWH(0, 0, 100, 100) {
		t.Errorf("ClipBounds() = %v, want the element", got)
	}

	tri := picture.NewPath()
	tri.MoveTo(10, 10)
	tri.LineTo(30, 10)
	tri.LineTo(20, 40)
	tri.Close()

	_ = b.Save()
	_ = b.Translate(5, 0)
	if err := b.ClipPath(tri); err != nil {
		t.Fatal(err)
	}
	if got, want := b.ClipBounds(), picture.LTRB(15, 10, 35, 40); got != want {
		t.Errorf("ClipBounds() = %v, want %v", got, want)
	}
	cmds := b.Commands()
	if c, ok := cmds[len(cmds)-1].(recording.ClipPathCommand); !ok || c.Path != tri {
		t.Errorf("last command = %v, want the clipPath", cmds[len(cmds)-1])
	}

	if err := b.Restore(); err != nil {
		t.Fatal(err)
	}
	if got := b.ClipBounds(); got != picture.LTWH(0, 0, 100, 100) {
		t.Errorf("ClipBounds() after Restore = %v, want the element", got)
	}
}

func TestBackendClear(t *testing.T) {
	b := NewBackend(10, 10)
	_ = b.Save()
	_ = b.ClipRect(picture.LTRB(0, 0, 5, 5))
	if b.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", b.Depth())
	}
	_ = b.Clear()
	if b.Depth() != 0 || b.Len() != 0 {
		t.Errorf("after Clear Depth() = %d, Len() = %d, want 0, 0", b.Depth(), b.Len())
	}
	if got := payload(t, b); got != "[]" {
		t.Errorf("payload after Clear = %s, want []", got)
	}
}

func scene() *recording.Recorder {
	rec := recording.NewRecorder(picture.LargestRect())
	rec.DrawColor(picture.White, picture.BlendModeSrc)
	rec.Save()
	rec.Translate(2, 2)
	rec.ClipRect(picture.LTRB(0, 0, 6, 6))
	rec.DrawRect(picture.LTRB(0, 0, 10, 10), picture.FillPaint(picture.Red))
	rec.Restore()
	p := picture.NewPath()
	p.MoveTo(12, 0)
	p.LineTo(16, 0)
	p.LineTo(16, 4)
	p.Close()
	rec.DrawPath(p, picture.FillPaint(picture.Blue))
	rec.EndRecording()
	return rec
}

func TestBackendMatchesRecordingEncoding(t *testing.T) {
	rec := scene()
	want, err := rec.EncodeWire()
	if err != nil {
		t.Fatal(err)
	}
	b := NewBackend(16, 16)
	if err := rec.Apply(b, true); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := payload(t, b); got != string(want) {
		t.Errorf("payload = %s\nwant %s", got, want)
	}
}

func TestReplay(t *testing.T) {
	rec := scene()
	src := NewBackend(16, 16)
	if err := rec.Apply(src, true); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := src.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	dst := NewBackend(16, 16)
	_ = dst.DrawColor(picture.Black, picture.BlendModeSrc)
	if err := Replay(buf.Bytes(), dst); err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if got, want := payload(t, dst), buf.String(); got != want {
		t.Errorf("replayed payload = %s, want %s", got, want)
	}

	direct := bitmap.NewBackend(16, 16)
	_ = rec.Apply(direct, true)
	replayed := bitmap.NewBackend(16, 16)
	if err := Replay(buf.Bytes(), replayed); err != nil {
		t.Fatalf("Replay() to bitmap error = %v", err)
	}
	if !bytes.Equal(direct.Image().Pix, replayed.Image().Pix) {
		t.Error("replayed pixels differ from direct replay")
	}
	if r, g, b, _ := replayed.Image().At(4, 4).RGBA(); r != 0xFFFF || g != 0 || b != 0 {
		t.Errorf("pixel(4, 4) = %v, want red", replayed.Image().At(4, 4))
	}
}

func TestReplayInvalid(t *testing.T) {
	b := NewBackend(4, 4)
	_ = b.Save()
	for _, data := range []string{"", "{}", "[[99]]", "[[3,1]]"} {
		if err := Replay([]byte(data), b); !errors.Is(err, recording.ErrInvalidWire) {
			t.Errorf("Replay(%q) error = %v, want ErrInvalidWire", data, err)
		}
	}
	if b.Len() != 1 {
		t.Errorf("invalid payload touched the backend: Len() = %d, want 1", b.Len())
	}
}
