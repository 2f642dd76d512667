package timeline

import (
	"log/slog"
	"time"
)

// OpRecorder receives the outcome of every mutating or aggregate operation.
// It is the hook metrics backends attach to.
type OpRecorder interface {
	RecordOp(op string, elapsed time.Duration, err error)
}

// Operation names reported to an OpRecorder.
const (
	OpNameAdd     = "add"
	OpNameRemove  = "remove"
	OpNameArea    = "area"
	OpNameCombine = "combine"
)

type nopRecorder struct{}

func (nopRecorder) RecordOp(string, time.Duration, error) {}

// Option configures a Handler.
type Option func(*Handler)

// WithLocation tags the origin node with loc. A nil loc means UTC.
func WithLocation(loc *time.Location) Option {
	return func(h *Handler) {
		if loc == nil {
			loc = time.UTC
		}

		h.location = loc
	}
}

// WithLogger sets the logger used for debug output about breakpoint changes.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithRecorder attaches an operation recorder.
func WithRecorder(recorder OpRecorder) Option {
	return func(h *Handler) {
		if recorder != nil {
			h.recorder = recorder
		}
	}
}
