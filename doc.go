// Package picture provides the value types shared by the deferred painting
// pipeline: geometry (Point, Rect, RRect, Path), the 4x4 transform Matrix4,
// colors and paint attributes.
//
// Drawing itself happens in two phases. A recording.Recorder captures drawing
// calls into an ordered command list and tracks the tight bounding box of
// everything painted. The command list is later applied to any type that
// implements recording.Backend:
//
//	rec := recording.NewRecorder(picture.LTWH(0, 0, 800, 600))
//	rec.Translate(100, 100)
//	rec.DrawRect(picture.LTRB(0, 0, 10, 10), picture.DefaultPaint())
//	bounds := rec.EndRecording() // Rect(100.0, 100.0, 110.0, 110.0)
//
//	b := bitmap.NewBackend(800, 600)
//	if err := rec.Apply(b, true); err != nil {
//	    // the backend lacks an operation
//	}
//
// Three backends ship with the module:
//
//   - recording/backends/bitmap: rasterizes into an *image.RGBA
//   - recording/backends/dom: builds a retained HTML node tree
//   - recording/backends/worklet: emits the compact array wire encoding
//
// # Values and ownership
//
// Rect, RRect, Matrix4, Color and Paint are plain values. Paths are built
// through pointer methods and cloned by the recorder when captured, so the
// caller may keep mutating its own path. Shaders, filters and images referenced
// from a Paint or a command are borrowed read-only and must outlive every
// Apply that uses them.
//
// # Logging
//
// The package logs through log/slog and is silent by default. See SetLogger.
package picture
