package input

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Events fans raw input out to subscribed handlers.
//
// It is not safe for concurrent use. Subscriptions happen while the engine is
// being built and raises happen on the update goroutine.
type Events struct {
	keyDown         []func(key string)
	keyUp           []func(key string)
	mouseMove       []func(pos r3.Vec)
	mouseButton     []func(name string)
	leftStick       []func(v r2.Vec)
	rightStick      []func(v r2.Vec)
	buttonDown      []func(key GamepadKey)
	buttonUp        []func(key GamepadKey)
	buttonStick     []func(pos StickPosition)
	knobValueChange []func(knob int, value float64)
	noteOn          []func(note int)
}

// NewEvents returns an empty dispatcher.
func NewEvents() *Events {
	return &Events{}
}

func (e *Events) OnKeyDown(fn func(key string)) {
	e.keyDown = append(e.keyDown, fn)
}

func (e *Events) OnKeyUp(fn func(key string)) {
	e.keyUp = append(e.keyUp, fn)
}

func (e *Events) OnMouseMove(fn func(pos r3.Vec)) {
	e.mouseMove = append(e.mouseMove, fn)
}

func (e *Events) OnMouseButton(fn func(name string)) {
	e.mouseButton = append(e.mouseButton, fn)
}

func (e *Events) OnLeftStick(fn func(v r2.Vec)) {
	e.leftStick = append(e.leftStick, fn)
}

func (e *Events) OnRightStick(fn func(v r2.Vec)) {
	e.rightStick = append(e.rightStick, fn)
}

func (e *Events) OnButtonDown(fn func(key GamepadKey)) {
	e.buttonDown = append(e.buttonDown, fn)
}

func (e *Events) OnButtonUp(fn func(key GamepadKey)) {
	e.buttonUp = append(e.buttonUp, fn)
}

func (e *Events) OnButtonStick(fn func(pos StickPosition)) {
	e.buttonStick = append(e.buttonStick, fn)
}

func (e *Events) OnKnobValueChange(fn func(knob int, value float64)) {
	e.knobValueChange = append(e.knobValueChange, fn)
}

func (e *Events) OnNoteOn(fn func(note int)) {
	e.noteOn = append(e.noteOn, fn)
}

func (e *Events) RaiseKeyDown(key string) {
	for _, fn := range e.keyDown {
		fn(key)
	}
}

func (e *Events) RaiseKeyUp(key string) {
	for _, fn := range e.keyUp {
		fn(key)
	}
}

func (e *Events) RaiseMouseMove(pos r3.Vec) {
	for _, fn := range e.mouseMove {
		fn(pos)
	}
}

func (e *Events) RaiseMouseButton(name string) {
	for _, fn := range e.mouseButton {
		fn(name)
	}
}

func (e *Events) RaiseLeftStick(v r2.Vec) {
	for _, fn := range e.leftStick {
		fn(v)
	}
}

func (e *Events) RaiseRightStick(v r2.Vec) {
	for _, fn := range e.rightStick {
		fn(v)
	}
}

func (e *Events) RaiseButtonDown(key GamepadKey) {
	for _, fn := range e.buttonDown {
		fn(key)
	}
}

func (e *Events) RaiseButtonUp(key GamepadKey) {
	for _, fn := range e.buttonUp {
		fn(key)
	}
}

func (e *Events) RaiseButtonStick(pos StickPosition) {
	for _, fn := range e.buttonStick {
		fn(pos)
	}
}

func (e *Events) RaiseKnobValueChange(knob int, value float64) {
	for _, fn := range e.knobValueChange {
		fn(knob, value)
	}
}

func (e *Events) RaiseNoteOn(note int) {
	for _, fn := range e.noteOn {
		fn(note)
	}
}
