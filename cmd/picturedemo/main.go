// Command picturedemo records a scene once and replays it to every
// registered backend, writing each backend's output to a file.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/picture"
	"github.com/gogpu/picture/paragraph"
	"github.com/gogpu/picture/recording"
	_ "github.com/gogpu/picture/recording/backends/bitmap"
	_ "github.com/gogpu/picture/recording/backends/dom"
	_ "github.com/gogpu/picture/recording/backends/worklet"
)

// extensions maps backend names to the file extension of their output.
var extensions = map[string]string{
	"bitmap":  ".png",
	"dom":     ".html",
	"worklet": ".json",
}

func main() {
	var (
		width   = flag.Int("width", 640, "picture width")
		height  = flag.Int("height", 480, "picture height")
		outDir  = flag.String("out", ".", "output directory")
		name    = flag.String("name", "picture", "output file name without extension")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	picture.SetLogger(logger)

	rec := recordScene(float64(*width), float64(*height))
	logger.Info("recorded scene",
		"commands", rec.Len(),
		"bounds", rec.PictureBounds(),
		"arbitraryPaint", rec.HasArbitraryPaint())

	if _, err := rec.EncodeWire(); errors.Is(err, recording.ErrNotSerializable) {
		logger.Info("scene has no complete wire form", "err", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Error("create output directory", "err", err)
		os.Exit(1)
	}
	for _, backendName := range recording.Backends() {
		path := filepath.Join(*outDir, *name+extensions[backendName])
		if err := render(logger, rec, backendName, *width, *height, path); err != nil {
			logger.Error("render failed", "backend", backendName, "err", err)
			os.Exit(1)
		}
	}
}

// render replays rec to a fresh backend command by command. Commands the
// backend cannot handle are logged and skipped so the rest of the scene
// still renders.
func render(logger *slog.Logger, rec *recording.Recorder, backendName string, width, height int, path string) error {
	b, err := recording.NewBackend(backendName, width, height)
	if err != nil {
		return err
	}
	if err := b.Clear(); err != nil {
		return err
	}
	skipped := 0
	for i, cmd := range rec.Commands() {
		err := recording.Apply(cmd, b)
		switch {
		case err == nil:
		case errors.Is(err, recording.ErrUnimplemented), errors.Is(err, recording.ErrNotSerializable):
			logger.Warn("backend skipped command", "backend", backendName, "index", i, "command", cmd.Type(), "err", err)
			skipped++
		default:
			return err
		}
	}

	w, ok := b.(recording.WriterBackend)
	if !ok {
		logger.Info("backend has no output", "backend", backendName)
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := w.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	logger.Info("wrote output", "backend", backendName, "path", path, "bytes", n, "skipped", skipped)
	return nil
}

func recordScene(w, h float64) *recording.Recorder {
	rec := recording.NewRecorder(picture.LTWH(0, 0, w, h), recording.WithCapacity(128))

	bg := picture.DefaultPaint()
	bg.Shader = picture.NewLinearGradient(picture.Pt(0, 0), picture.Pt(0, h),
		picture.ARGB(0xFF, 0x1A, 0x33, 0x66), picture.ARGB(0xFF, 0x66, 0x80, 0x99))
	rec.DrawRect(picture.LTWH(0, 0, w, h), bg)

	drawShapes(rec)
	drawTransforms(rec)
	drawPaths(rec)
	drawMedia(rec)

	rec.EndRecording()
	return rec
}

func drawShapes(rec *recording.Recorder) {
	rec.DrawCircle(picture.Pt(120, 120), 50, picture.FillPaint(picture.ARGB(0xCC, 0xFF, 0x4D, 0x4D)))
	rec.DrawCircle(picture.Pt(160, 120), 50, picture.FillPaint(picture.ARGB(0xCC, 0x4D, 0xFF, 0x4D)))
	rec.DrawCircle(picture.Pt(140, 160), 50, picture.FillPaint(picture.ARGB(0xCC, 0x4D, 0x4D, 0xFF)))

	card := picture.RRectFromRectXY(picture.LTWH(260, 70, 120, 80), 15, 15)
	shadow := picture.NewPath()
	shadow.AddRRect(card)
	rec.DrawShadow(shadow, picture.ARGB(0x80, 0, 0, 0), 6, false)
	rec.DrawRRect(card, picture.FillPaint(picture.ARGB(0xFF, 0xFF, 0xCC, 0x00)))
	rec.DrawRect(picture.LTWH(260, 70, 120, 80), picture.StrokePaint(picture.White, 4))

	outer := picture.RRectFromRectXY(picture.LTWH(420, 60, 100, 100), 20, 20)
	rec.DrawDRRect(outer, outer.Inflate(-15), picture.FillPaint(picture.ARGB(0xFF, 0xE0, 0x60, 0xC0)))

	blurred := picture.FillPaint(picture.White)
	blurred.MaskFilter = &picture.MaskFilter{Style: picture.BlurStyleNormal, Sigma: 4}
	rec.DrawOval(picture.LTWH(540, 80, 70, 50), blurred)
}

func drawTransforms(rec *recording.Recorder) {
	for i := 0; i < 8; i++ {
		rec.Save()
		rec.Translate(120, 300)
		rec.Rotate(float64(i) * math.Pi / 4)
		c := picture.LerpColor(picture.ARGB(0xFF, 0xFF, 0x80, 0x40), picture.ARGB(0xFF, 0x40, 0x80, 0xFF), float64(i)/7)
		rec.DrawRect(picture.LTWH(30, -15, 60, 30), picture.FillPaint(c))
		rec.Restore()
	}

	rec.Save()
	rec.ClipRRect(picture.RRectFromRectXY(picture.LTWH(250, 230, 140, 140), 30, 30))
	ring := picture.DefaultPaint()
	ring.Shader = picture.NewRadialGradient(picture.Pt(320, 300), 90, picture.White, picture.Red, picture.Blue)
	rec.DrawPaint(ring)
	rec.DrawLine(picture.Pt(250, 230), picture.Pt(390, 370), picture.StrokePaint(picture.Black, 3))
	rec.Restore()
}

func drawPaths(rec *recording.Recorder) {
	wave := picture.NewPath()
	wave.MoveTo(420, 260)
	wave.CubicTo(450, 210, 480, 310, 510, 260)
	wave.CubicTo(540, 230, 570, 290, 600, 260)
	stroke := picture.StrokePaint(picture.ARGB(0xFF, 0xFF, 0x80, 0), 6)
	stroke.StrokeCap = picture.StrokeCapRound
	rec.DrawPath(wave, stroke)

	star := picture.NewPath()
	const points = 5
	for i := 0; i < points*2; i++ {
		r := 60.0
		if i%2 == 1 {
			r = 30
		}
		angle := float64(i)*math.Pi/points - math.Pi/2
		x, y := 510+r*math.Cos(angle), 380+r*math.Sin(angle)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	multiply := picture.FillPaint(picture.ARGB(0xFF, 0xFF, 0xFF, 0x00))
	multiply.BlendMode = picture.BlendModeMultiply
	rec.DrawPath(star, multiply)
}

func drawMedia(rec *recording.Recorder) {
	rec.DrawImageRect(checkerboard(8), picture.LTWH(0, 0, 8, 8), picture.LTWH(40, 400, 64, 64), picture.DefaultPaint())

	p := paragraph.New("Recorded once, replayed to every backend.", paragraph.Style{Color: picture.White})
	p.Layout(200)
	rec.DrawParagraph(p, picture.Pt(130, 410))
}

func checkerboard(n int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
			if (x+y)%2 == 0 {
				c = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
