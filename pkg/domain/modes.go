package domain

import "fmt"

// KeyboardAndMouseMotionMode selects how keyboard and pointer input moves the arms.
type KeyboardAndMouseMotionMode int

const (
	// KeyboardAndMouseNone is the legacy value meaning "no HID arm motion at all".
	KeyboardAndMouseNone KeyboardAndMouseMotionMode = iota - 1
	KeyboardAndTouchPad
	KeyboardAndMousePresentation
	KeyboardAndMousePenTablet
	KeyboardAndMouseUnknown
)

func (m KeyboardAndMouseMotionMode) String() string {
	switch m {
	case KeyboardAndMouseNone:
		return "none"
	case KeyboardAndTouchPad:
		return "keyboard_and_touchpad"
	case KeyboardAndMousePresentation:
		return "presentation"
	case KeyboardAndMousePenTablet:
		return "pen_tablet"
	}
	return fmt.Sprintf("keyboard_and_mouse(%d)", int(m))
}

// GamepadMotionMode selects which gamepad-shaped device the arms hold.
type GamepadMotionMode int

const (
	GamepadMotionGamepad GamepadMotionMode = iota
	GamepadMotionArcadeStick
	GamepadMotionUnknown
)

func (m GamepadMotionMode) String() string {
	switch m {
	case GamepadMotionGamepad:
		return "gamepad"
	case GamepadMotionArcadeStick:
		return "arcade_stick"
	}
	return fmt.Sprintf("gamepad_motion(%d)", int(m))
}

// WordToMotionDeviceAssign redirects one device category to the word-to-motion
// consumer. A redirected device no longer drives body motion.
type WordToMotionDeviceAssign int

const (
	WordToMotionNone WordToMotionDeviceAssign = iota
	WordToMotionKeyboardWord
	WordToMotionKeyboardNumber
	WordToMotionGamepad
	WordToMotionMidiController
)

func (a WordToMotionDeviceAssign) String() string {
	switch a {
	case WordToMotionNone:
		return "none"
	case WordToMotionKeyboardWord:
		return "keyboard_word"
	case WordToMotionKeyboardNumber:
		return "keyboard_number"
	case WordToMotionGamepad:
		return "gamepad"
	case WordToMotionMidiController:
		return "midi_controller"
	}
	return fmt.Sprintf("word_to_motion(%d)", int(a))
}

// Valid reports whether a is one of the declared assignments.
func (a WordToMotionDeviceAssign) Valid() bool {
	return a >= WordToMotionNone && a <= WordToMotionMidiController
}

// Modes is an immutable snapshot of the global mode flags.
// It is replaced as a whole on every accepted change.
type Modes struct {
	AlwaysHandDown     bool                       `json:"always_hand_down" yaml:"always_hand_down"`
	KeyboardAndMouse   KeyboardAndMouseMotionMode `json:"keyboard_and_mouse" yaml:"keyboard_and_mouse"`
	Gamepad            GamepadMotionMode          `json:"gamepad" yaml:"gamepad"`
	WordToMotionDevice WordToMotionDeviceAssign   `json:"word_to_motion_device" yaml:"word_to_motion_device"`
	HandDownTimeout    bool                       `json:"hand_down_timeout" yaml:"hand_down_timeout"`
}

// DefaultModes returns the modes active at startup.
func DefaultModes() Modes {
	return Modes{
		KeyboardAndMouse:   KeyboardAndTouchPad,
		Gamepad:            GamepadMotionGamepad,
		WordToMotionDevice: WordToMotionKeyboardWord,
		HandDownTimeout:    true,
	}
}

// EnableHidArmMotion is false only in the legacy "none" keyboard/mouse mode.
func (m Modes) EnableHidArmMotion() bool {
	return m.KeyboardAndMouse != KeyboardAndMouseNone
}

// PresentationMode reports whether pointer input drives the presentation pose.
func (m Modes) PresentationMode() bool {
	return m.KeyboardAndMouse == KeyboardAndMousePresentation
}

// PointerTargetType is the right-hand target type that pointer movement maps to.
func (m Modes) PointerTargetType() TargetType {
	switch m.KeyboardAndMouse {
	case KeyboardAndTouchPad:
		return TargetMouse
	case KeyboardAndMousePresentation:
		return TargetPresentation
	}
	return TargetPenTablet
}

// GamepadTargetType is the target type that gamepad-shaped input maps to.
func (m Modes) GamepadTargetType() TargetType {
	if m.Gamepad == GamepadMotionArcadeStick {
		return TargetArcadeStick
	}
	return TargetGamepad
}
