package runtime

import (
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Input entry points. Each gates the raw event against the current modes and
// cooldowns, raises it on Events when it passes and reports whether it did.

func (in *Integrator) KeyDown(key string) bool {
	ok := in.Modes().EnableHidArmMotion()
	if ok {
		in.events.RaiseKeyDown(key)
	}
	return in.observe("key_down", ok)
}

func (in *Integrator) KeyUp(key string) bool {
	ok := in.Modes().EnableHidArmMotion()
	if ok {
		in.events.RaiseKeyUp(key)
	}
	return in.observe("key_up", ok)
}

// MoveMouse forwards pointer movement to the generator matching the
// keyboard and mouse mode.
func (in *Integrator) MoveMouse(pos r3.Vec) bool {
	m := in.Modes()
	ok := m.EnableHidArmMotion() && in.CheckCoolDown(domain.HandRight, m.PointerTargetType())
	if ok {
		in.events.RaiseMouseMove(pos)
	}
	return in.observe("mouse_move", ok)
}

// OnMouseButton is dropped in presentation mode, where clicks do not move the arm.
func (in *Integrator) OnMouseButton(name string) bool {
	m := in.Modes()
	ok := !m.PresentationMode() && m.EnableHidArmMotion() && !m.AlwaysHandDown
	if ok {
		in.events.RaiseMouseButton(name)
	}
	return in.observe("mouse_button", ok)
}

func (in *Integrator) MoveLeftGamepadStick(v r2.Vec) bool {
	ok := in.gamepadForBody() && in.CheckCoolDown(domain.HandLeft, domain.TargetGamepad)
	if ok {
		in.events.RaiseLeftStick(v)
	}
	return in.observe("left_stick", ok)
}

func (in *Integrator) MoveRightGamepadStick(v r2.Vec) bool {
	ok := in.gamepadForBody() && in.CheckCoolDown(domain.HandRight, domain.TargetGamepad)
	if ok {
		in.events.RaiseRightStick(v)
	}
	return in.observe("right_stick", ok)
}

// GamepadButtonDown is not cooldown-gated: which hand a button moves depends
// on the generator.
func (in *Integrator) GamepadButtonDown(key input.GamepadKey) bool {
	ok := in.gamepadForBody()
	if ok {
		in.events.RaiseButtonDown(key)
	}
	return in.observe("button_down", ok)
}

func (in *Integrator) GamepadButtonUp(key input.GamepadKey) bool {
	ok := in.gamepadForBody()
	if ok {
		in.events.RaiseButtonUp(key)
	}
	return in.observe("button_up", ok)
}

func (in *Integrator) ButtonStick(pos input.StickPosition) bool {
	ok := in.gamepadForBody() && in.CheckCoolDown(domain.HandLeft, domain.TargetGamepad)
	if ok {
		in.events.RaiseButtonStick(pos)
	}
	return in.observe("button_stick", ok)
}

func (in *Integrator) KnobValueChange(knob int, value float64) bool {
	ok := in.Modes().WordToMotionDevice != domain.WordToMotionMidiController
	if ok {
		in.events.RaiseKnobValueChange(knob, value)
	}
	return in.observe("knob_value_change", ok)
}

func (in *Integrator) NoteOn(note int) bool {
	ok := in.Modes().WordToMotionDevice != domain.WordToMotionMidiController
	if ok {
		in.events.RaiseNoteOn(note)
	}
	return in.observe("note_on", ok)
}

func (in *Integrator) gamepadForBody() bool {
	return in.Modes().WordToMotionDevice != domain.WordToMotionGamepad
}

func (in *Integrator) observe(kind string, forwarded bool) bool {
	if in.hooks.OnInput != nil {
		in.hooks.OnInput(&domain.InputEvent{Kind: kind, Forwarded: forwarded})
	}
	return forwarded
}
