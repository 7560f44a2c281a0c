package domain

// Frame carries the per-frame inputs handed to every generator.
type Frame struct {
	// Dt is the elapsed time since the previous frame, in seconds.
	Dt float64
	// Modes is the snapshot the whole frame is evaluated against.
	Modes Modes
}

// Generator produces hand states for one input device.
//
// Generators never write hand targets. When one decides it should take over a
// hand it pushes its state into the RequestSink it was constructed with, and
// the integrator arbitrates on the next drain.
type Generator interface {
	Name() string
	Capabilities() Capability

	// State returns the generator's state for a hand it is capable of driving.
	State(hand Hand) HandState

	Update(f Frame)
	LateUpdate(f Frame)
}

// RequestSink receives "request to use" commands from generators.
type RequestSink interface {
	RequestToUse(hand Hand, state HandState)
}

// RuntimeView is the read-only slice of the integrator exposed to generators.
type RuntimeView interface {
	Modes() Modes
	TargetType(hand Hand) TargetType
	CheckCoolDown(hand Hand, target TargetType) bool
	CheckTypingOrMouseHandsCanMoveDown() bool
}

// Optional generator capabilities. The integrator type-asserts for these.
type (
	// HIDToggler is notified when HID-driven arm motion is enabled or disabled.
	HIDToggler interface {
		SetHIDEnabled(enabled bool)
	}

	// TimeoutToggler is notified when the idle hand-down timeout is toggled.
	TimeoutToggler interface {
		SetHandDownTimeout(enabled bool)
	}

	// YOffsetSetter receives the global vertical hand offset.
	YOffsetSetter interface {
		SetYOffset(offset float64)
	}

	// TimeoutResetter restarts idle timeouts, e.g. after an avatar load.
	// refresh discards the pose blended before the avatar existed.
	TimeoutResetter interface {
		ResetHandDownTimeout(refresh bool)
	}

	// ImageTracker reports fresh image-based tracking samples per hand.
	ImageTracker interface {
		HasUpdate(hand Hand) bool
		ClearUpdate(hand Hand)
	}

	// TypingTimeouts reports whether a typing hand has been idle long enough.
	TypingTimeouts interface {
		TimeoutReached(hand Hand) bool
	}

	// PointerTimeout reports whether the pointer hand has been idle long enough.
	PointerTimeout interface {
		NoInputTimeoutReached() bool
	}
)
