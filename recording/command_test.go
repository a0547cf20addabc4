package recording

import (
	"image"
	"strings"
	"testing"

	"github.com/gogpu/picture"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdSave, "Save"},
		{CmdRestore, "Restore"},
		{CmdTranslate, "Translate"},
		{CmdTransform, "Transform"},
		{CmdClipPath, "ClipPath"},
		{CmdDrawColor, "DrawColor"},
		{CmdDrawShadow, "DrawShadow"},
		{CmdDrawParagraph, "DrawParagraph"},
		{CommandType(0), "Unknown"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandTypeOpcodesAreStable(t *testing.T) {
	// The first twenty values are wire opcodes.
	want := map[CommandType]int{
		CmdSave: 1, CmdRestore: 2, CmdTranslate: 3, CmdScale: 4, CmdRotate: 5,
		CmdTransform: 6, CmdSkew: 7, CmdClipRect: 8, CmdClipRRect: 9, CmdClipPath: 10,
		CmdDrawColor: 11, CmdDrawLine: 12, CmdDrawPaint: 13, CmdDrawRect: 14,
		CmdDrawRRect: 15, CmdDrawDRRect: 16, CmdDrawOval: 17, CmdDrawCircle: 18,
		CmdDrawPath: 19, CmdDrawShadow: 20,
	}
	for ct, op := range want {
		if int(ct) != op {
			t.Errorf("%v = %d, want %d", ct, int(ct), op)
		}
	}
}

func TestCommandTypeClasses(t *testing.T) {
	for ct := CmdSave; ct <= CmdDrawParagraph; ct++ {
		wantDraw := ct >= CmdDrawColor
		if ct.IsDraw() != wantDraw {
			t.Errorf("%v.IsDraw() = %v, want %v", ct, ct.IsDraw(), wantDraw)
		}
		wantSerializable := ct <= CmdDrawShadow
		if ct.IsSerializable() != wantSerializable {
			t.Errorf("%v.IsSerializable() = %v, want %v", ct, ct.IsSerializable(), wantSerializable)
		}
	}
}

func TestCommandString(t *testing.T) {
	p := picture.NewPath()
	p.AddRect(picture.LTWH(0, 0, 10, 10))
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	paint := picture.FillPaint(picture.Red)

	tests := []struct {
		cmd  Command
		want string
	}{
		{SaveCommand{}, "save()"},
		{RestoreCommand{}, "restore()"},
		{TranslateCommand{DX: 1, DY: 2}, "translate(1.0, 2.0)"},
		{RotateCommand{Radians: 0.5}, "rotate(0.5)"},
		{ClipRectCommand{Rect: picture.LTRB(0, 0, 1, 2)}, "clipRect(Rect(0.0, 0.0, 1.0, 2.0))"},
		{DrawColorCommand{Color: picture.Red, BlendMode: picture.BlendModeMultiply}, "drawColor(Color(0xffff0000), multiply)"},
		{DrawCircleCommand{Center: picture.Pt(1, 1), Radius: 2, Paint: paint}, "drawCircle(Offset(1.0, 1.0), 2.0, " + paint.String() + ")"},
		{DrawImageCommand{Image: img, Offset: picture.Pt(3, 4), Paint: paint}, "drawImage(Image(8x6), Offset(3.0, 4.0), " + paint.String() + ")"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd.Type().String(), func(t *testing.T) {
			if got := tt.cmd.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := (DrawPathCommand{Path: p, Paint: paint}).String(); !strings.HasPrefix(got, "drawPath(Path(subpaths: 1") {
		t.Errorf("DrawPathCommand.String() = %q", got)
	}
}

// allCommands returns one command of every variant.
func allCommands() []Command {
	p := picture.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.Close()
	rr := picture.RRectFromRectXY(picture.LTWH(0, 0, 20, 20), 3, 3)
	inner := picture.RRectFromRectXY(picture.LTWH(5, 5, 10, 10), 1, 1)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	paint := picture.FillPaint(picture.Green)
	return []Command{
		SaveCommand{},
		RestoreCommand{},
		TranslateCommand{DX: 1, DY: 2},
		ScaleCommand{SX: 2, SY: 3},
		RotateCommand{Radians: 0.25},
		TransformCommand{Matrix: picture.Translate(5, 6)},
		SkewCommand{SX: 0.1, SY: 0.2},
		ClipRectCommand{Rect: picture.LTWH(0, 0, 10, 10)},
		ClipRRectCommand{RRect: rr},
		ClipPathCommand{Path: p},
		DrawColorCommand{Color: picture.Blue, BlendMode: picture.BlendModeSrc},
		DrawLineCommand{P1: picture.Pt(0, 0), P2: picture.Pt(5, 5), Paint: paint},
		DrawPaintCommand{Paint: paint},
		DrawRectCommand{Rect: picture.LTWH(1, 1, 2, 2), Paint: paint},
		DrawRRectCommand{RRect: rr, Paint: paint},
		DrawDRRectCommand{Outer: rr, Inner: inner, Paint: paint},
		DrawOvalCommand{Rect: picture.LTWH(0, 0, 4, 2), Paint: paint},
		DrawCircleCommand{Center: picture.Pt(3, 3), Radius: 1, Paint: paint},
		DrawPathCommand{Path: p, Paint: paint},
		DrawShadowCommand{Path: p, Color: picture.Black, Elevation: 2, TransparentOccluder: true},
		DrawImageCommand{Image: img, Offset: picture.Pt(1, 1), Paint: paint},
		DrawImageRectCommand{Image: img, Src: picture.LTWH(0, 0, 2, 2), Dst: picture.LTWH(0, 0, 4, 4), Paint: paint},
		DrawParagraphCommand{Paragraph: &fakeParagraph{laidOut: true}, Offset: picture.Pt(0, 0)},
	}
}

func TestApplyDispatchesOneCallPerCommand(t *testing.T) {
	cmds := allCommands()
	if len(cmds) != int(CmdDrawParagraph) {
		t.Fatalf("allCommands() has %d variants, want %d", len(cmds), CmdDrawParagraph)
	}
	for _, cmd := range cmds {
		t.Run(cmd.Type().String(), func(t *testing.T) {
			b := newLogBackend("log")
			if err := Apply(cmd, b); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if len(b.calls) != 1 {
				t.Fatalf("Apply() made %d calls, want 1", len(b.calls))
			}
			name := cmd.Type().String()
			method := strings.ToLower(name[:1]) + name[1:]
			if !strings.HasPrefix(b.calls[0], method+"(") {
				t.Errorf("Apply() called %q, want %s", b.calls[0], method)
			}
		})
	}
}

func TestApplyAllWrapsFailure(t *testing.T) {
	b := newLogBackend("log")
	b.failOn = "scale"
	err := ApplyAll([]Command{SaveCommand{}, ScaleCommand{SX: 2, SY: 2}, RestoreCommand{}}, b)
	if err == nil || !strings.Contains(err.Error(), "command 1 (Scale)") {
		t.Errorf("ApplyAll() error = %v, want failure at command 1", err)
	}
	if len(b.calls) != 2 {
		t.Errorf("ApplyAll() made %d calls, want 2", len(b.calls))
	}
}
