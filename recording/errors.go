package recording

import "errors"

var (
	// ErrUnbalancedRestore is the panic value of a restore with nothing
	// saved. It is also returned by backends whose save stack underflows.
	ErrUnbalancedRestore = errors.New("recording: restore without matching save")

	// ErrNotSerializable is returned when encoding a command that has no
	// array wire form (images, paragraphs, foreign shaders).
	ErrNotSerializable = errors.New("recording: command is not serializable")

	// ErrRecordingEnded is the panic value of a recording call made after
	// EndRecording.
	ErrRecordingEnded = errors.New("recording: recording already ended")
)

// ErrInvalidWire is returned when decoding wire data that does not follow
// the array encoding.
var ErrInvalidWire = errors.New("recording: invalid wire data")
