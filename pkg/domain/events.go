package domain

import "time"

// TransitionEvent describes an accepted hand target change.
type TransitionEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	Hand      Hand       `json:"hand"`
	From      TargetType `json:"from"`
	To        TargetType `json:"to"`
}

// InputEvent describes a raw input call and whether it reached the generators.
type InputEvent struct {
	Kind      string `json:"kind"`
	Forwarded bool   `json:"forwarded"`
}

// MotionEvent describes a clip started by word-to-motion or by a caller.
type MotionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Clip      string    `json:"clip"`
	// Source is the device category that triggered the clip, or "api".
	Source string `json:"source"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil fields are skipped.
type LifecycleHooks struct {
	OnTransition   func(*TransitionEvent)
	OnModesChanged func(prev, next Modes)
	OnInput        func(*InputEvent)
	OnMotion       func(*MotionEvent)
}

// Snapshot is the persisted view of an integrator for one avatar profile.
// Only Modes is restored; the hand targets are informational.
type Snapshot struct {
	ProfileID   string     `json:"profile_id"`
	Modes       Modes      `json:"modes"`
	LeftTarget  TargetType `json:"left_target"`
	RightTarget TargetType `json:"right_target"`
	SavedAt     time.Time  `json:"saved_at"`
}
