// Package recording captures painting calls as an ordered list of commands
// and replays them later onto any rendering backend.
//
// A [Recorder] is the deferred painting surface. Every call is appended as
// a [Command] and, at the same time, fed to a [PaintBounds] tracker that
// maintains the current transform and clip stack. When a recording ends,
// the tracker yields a conservative rectangle containing everything the
// commands paint, and the recorder reports whether anything was drawn and
// whether any paint is too complex for a simple DOM rendition.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(picture.LTWH(0, 0, 800, 600))
//
//	rec.Save()
//	rec.Translate(100, 100)
//	rec.DrawRect(picture.LTWH(0, 0, 200, 150), picture.FillPaint(picture.Red))
//	rec.Restore()
//	rec.DrawCircle(picture.Pt(400, 300), 50, picture.StrokePaint(picture.Blue, 2))
//
//	bounds := rec.EndRecording()
//
// # Replay
//
// A recording replays onto a [Backend] in insertion order. [Recorder.Apply]
// optionally clears the target first; [Recorder.ApplyClipped] skips draw
// commands whose recorded bounds fall outside a clip rectangle:
//
//	b, _ := recording.NewBackend("bitmap", 800, 600)
//	if err := rec.Apply(b, true); err != nil {
//		log.Fatal(err)
//	}
//	b.(recording.ImageBackend).Image()
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/picture/recording"
//	    _ "github.com/gogpu/picture/recording/backends/bitmap" // "bitmap"
//	    _ "github.com/gogpu/picture/recording/backends/dom"    // "dom"
//	)
//
// # Wire Encoding
//
// Commands without images or paragraphs can be flattened to nested arrays
// of numbers, strings, booleans and nulls with [EncodeCommands] or
// [MarshalWire], and rebuilt with [UnmarshalWire]. The encoding is stable:
// the opcode of each command is its [CommandType].
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. After [Recorder.EndRecording]
// the command list is frozen and may be replayed from several goroutines,
// provided each uses its own backend.
package recording
