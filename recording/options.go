package recording

import (
	"log/slog"

	"github.com/gogpu/picture"
)

// Option configures a Recorder during creation.
//
// Example:
//
//	rec := recording.NewRecorder(picture.LTWH(0, 0, 800, 600),
//	    recording.WithCapacity(512),
//	    recording.WithLogger(logger))
type Option func(*options)

// options holds optional configuration for Recorder creation.
type options struct {
	logger   *slog.Logger
	capacity int
}

// defaultOptions returns the default recorder options.
func defaultOptions() options {
	return options{
		logger:   nil, // resolved to picture.Logger() at use
		capacity: 64,
	}
}

// WithLogger sets the logger for a single recorder instead of the
// package-wide logger configured with picture.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCapacity preallocates room for n commands.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func (o options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return picture.Logger()
}
