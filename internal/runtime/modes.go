package runtime

import "github.com/aretw0/handik/pkg/domain"

// Modes returns the current snapshot. Safe to call from any goroutine.
func (in *Integrator) Modes() domain.Modes {
	return *in.modes.Load()
}

// swapModes publishes a modified copy of the current snapshot.
// Only the update goroutine writes, so a plain Store is enough.
func (in *Integrator) swapModes(mutate func(m *domain.Modes)) {
	prev := in.Modes()
	next := prev
	mutate(&next)
	in.modes.Store(&next)

	in.logger.Info("modes changed",
		"always_hand_down", next.AlwaysHandDown,
		"keyboard_and_mouse", next.KeyboardAndMouse,
		"gamepad", next.Gamepad,
		"word_to_motion", next.WordToMotionDevice,
		"hand_down_timeout", next.HandDownTimeout,
	)
	if in.hooks.OnModesChanged != nil {
		in.hooks.OnModesChanged(prev, next)
	}
}

// SetKeyboardAndMouseMotionMode accepts -1 (none) up to pen tablet. The hands
// do not move on change; the next input moves them.
func (in *Integrator) SetKeyboardAndMouseMotionMode(index int) bool {
	cur := in.Modes().KeyboardAndMouse
	if index < int(domain.KeyboardAndMouseNone) ||
		index >= int(domain.KeyboardAndMouseUnknown) ||
		index == int(cur) {
		return false
	}

	mode := domain.KeyboardAndMouseMotionMode(index)
	in.swapModes(func(m *domain.Modes) { m.KeyboardAndMouse = mode })

	enabled := mode != domain.KeyboardAndMouseNone
	for _, g := range in.generators {
		if t, ok := g.(domain.HIDToggler); ok {
			t.SetHIDEnabled(enabled)
		}
	}
	return true
}

// SetGamepadMotionMode accepts the gamepad and arcade stick modes only.
func (in *Integrator) SetGamepadMotionMode(index int) bool {
	cur := in.Modes().Gamepad
	if index == int(cur) ||
		(index != int(domain.GamepadMotionGamepad) && index != int(domain.GamepadMotionArcadeStick)) {
		return false
	}

	in.swapModes(func(m *domain.Modes) { m.Gamepad = domain.GamepadMotionMode(index) })
	return true
}

// SetWordToMotionDevice redirects a device to word-to-motion.
func (in *Integrator) SetWordToMotionDevice(index int) bool {
	assign := domain.WordToMotionDeviceAssign(index)
	if !assign.Valid() || assign == in.Modes().WordToMotionDevice {
		return false
	}

	in.swapModes(func(m *domain.Modes) { m.WordToMotionDevice = assign })
	return true
}

// SetAlwaysHandDown toggles the override that keeps both hands down. The
// always-down generator picks the change up on the next frame.
func (in *Integrator) SetAlwaysHandDown(enabled bool) bool {
	if in.Modes().AlwaysHandDown == enabled {
		return false
	}

	in.swapModes(func(m *domain.Modes) { m.AlwaysHandDown = enabled })
	return true
}

// SetHandDownTimeout toggles lowering idle typing and pointer hands.
func (in *Integrator) SetHandDownTimeout(enabled bool) bool {
	if in.Modes().HandDownTimeout == enabled {
		return false
	}

	in.swapModes(func(m *domain.Modes) { m.HandDownTimeout = enabled })
	for _, g := range in.generators {
		if t, ok := g.(domain.TimeoutToggler); ok {
			t.SetHandDownTimeout(enabled)
		}
	}
	return true
}

// ApplyModes moves every field towards m through its setter and reports
// whether anything changed.
func (in *Integrator) ApplyModes(m domain.Modes) bool {
	changed := in.SetKeyboardAndMouseMotionMode(int(m.KeyboardAndMouse))
	changed = in.SetGamepadMotionMode(int(m.Gamepad)) || changed
	changed = in.SetWordToMotionDevice(int(m.WordToMotionDevice)) || changed
	changed = in.SetAlwaysHandDown(m.AlwaysHandDown) || changed
	changed = in.SetHandDownTimeout(m.HandDownTimeout) || changed
	return changed
}

// SetYOffsetAlways fans a vertical hand offset out to the generators that take one.
func (in *Integrator) SetYOffsetAlways(offset float64) {
	in.yOffset = offset
	for _, g := range in.generators {
		if s, ok := g.(domain.YOffsetSetter); ok {
			s.SetYOffset(offset)
		}
	}
}

func (in *Integrator) YOffsetAlways() float64 {
	return in.yOffset
}
