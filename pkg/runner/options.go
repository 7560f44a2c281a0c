package runner

import (
	"log/slog"
	"time"
)

// DefaultInboxSize is the default number of commands buffered between frames.
const DefaultInboxSize = 64

// DefaultFPS is the default frame rate of Run.
const DefaultFPS = 60

// DefaultMaxDelta caps the frame delta after a stall, so a paused process
// does not skip whole transitions on resume.
const DefaultMaxDelta = 100 * time.Millisecond

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithFPS sets the frame rate of Run. Non-positive values are ignored.
func WithFPS(fps int) Option {
	return func(r *Runner) {
		if fps > 0 {
			r.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithInboxSize sets how many submitted commands may wait for the next frame.
func WithInboxSize(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.inboxSize = n
		}
	}
}

// WithMaxDelta caps the delta passed to Engine.Update.
func WithMaxDelta(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.maxDelta = d
		}
	}
}

// WithFrameHook is called on the frame loop after every published snapshot.
func WithFrameHook(hook func(FrameSnapshot)) Option {
	return func(r *Runner) {
		r.onFrame = hook
	}
}

// WithClock sets the time source used to measure frame deltas.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}
