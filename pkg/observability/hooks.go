package observability

import (
	"log/slog"

	"github.com/aretw0/handik/pkg/domain"
)

// Chain calls every hook set in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			for _, s := range sets {
				if s.OnTransition != nil {
					s.OnTransition(e)
				}
			}
		},
		OnModesChanged: func(prev, next domain.Modes) {
			for _, s := range sets {
				if s.OnModesChanged != nil {
					s.OnModesChanged(prev, next)
				}
			}
		},
		OnInput: func(e *domain.InputEvent) {
			for _, s := range sets {
				if s.OnInput != nil {
					s.OnInput(e)
				}
			}
		},
		OnMotion: func(e *domain.MotionEvent) {
			for _, s := range sets {
				if s.OnMotion != nil {
					s.OnMotion(e)
				}
			}
		},
	}
}

// AuditLog logs transitions and motions at Info. Inputs are too frequent
// and are logged at Debug.
func AuditLog(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Info("hand_transition", "hand", e.Hand, "from", e.From, "to", e.To)
		},
		OnInput: func(e *domain.InputEvent) {
			logger.Debug("input", "kind", e.Kind, "forwarded", e.Forwarded)
		},
		OnMotion: func(e *domain.MotionEvent) {
			logger.Info("motion", "clip", e.Clip, "source", e.Source)
		},
	}
}
