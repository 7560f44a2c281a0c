package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/handik/pkg/domain"
)

// Option configures an Integrator.
type Option func(*Integrator)

// WithLogger sets the structured logger. Accepted transitions are logged at
// Debug and mode changes at Info.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Integrator) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(in *Integrator) {
		in.hooks = hooks
	}
}

// WithTargetSink receives both hand poses at the end of every frame.
func WithTargetSink(sink domain.TargetSink) Option {
	return func(in *Integrator) {
		in.sink = sink
	}
}

// WithModes overrides the startup modes.
func WithModes(m domain.Modes) Option {
	return func(in *Integrator) {
		in.modes.Store(&m)
	}
}

// WithClock sets the time source used to stamp transition events.
func WithClock(now func() time.Time) Option {
	return func(in *Integrator) {
		if now != nil {
			in.now = now
		}
	}
}
