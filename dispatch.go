package handik

import (
	"fmt"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Input kinds accepted by Apply. They match the kinds reported to
// LifecycleHooks.OnInput.
const (
	InputKeyDown         = "key_down"
	InputKeyUp           = "key_up"
	InputMouseMove       = "mouse_move"
	InputMouseButton     = "mouse_button"
	InputLeftStick       = "left_stick"
	InputRightStick      = "right_stick"
	InputButtonDown      = "button_down"
	InputButtonUp        = "button_up"
	InputButtonStick     = "button_stick"
	InputKnobValueChange = "knob_value_change"
	InputNoteOn          = "note_on"
)

// InputKinds lists every kind accepted by Apply.
var InputKinds = []string{
	InputKeyDown, InputKeyUp, InputMouseMove, InputMouseButton,
	InputLeftStick, InputRightStick, InputButtonDown, InputButtonUp,
	InputButtonStick, InputKnobValueChange, InputNoteOn,
}

// Command is a serialisable input call used by transports and scenarios.
// Only the fields relevant to Kind are read.
type Command struct {
	Kind string `json:"kind" yaml:"kind" mapstructure:"kind"`
	// Key is a keyboard key, a mouse button or a gamepad key name.
	Key   string  `json:"key,omitempty" yaml:"key,omitempty" mapstructure:"key"`
	X     float64 `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x"`
	Y     float64 `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y"`
	Z     float64 `json:"z,omitempty" yaml:"z,omitempty" mapstructure:"z"`
	Knob  int     `json:"knob,omitempty" yaml:"knob,omitempty" mapstructure:"knob"`
	Value float64 `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
	Note  int     `json:"note,omitempty" yaml:"note,omitempty" mapstructure:"note"`
}

// DecodeCommand builds a Command of the given kind from loosely typed
// arguments, as found in JSON bodies, MCP tool calls and YAML steps.
func DecodeCommand(kind string, args map[string]any) (Command, error) {
	cmd := Command{Kind: kind}
	if err := decodeStrict(args, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode %s: %w", kind, err)
	}
	cmd.Kind = kind
	return cmd, nil
}

// Apply routes a command to the matching input entry point and reports
// whether it was forwarded to the generators.
func (e *Engine) Apply(cmd Command) (bool, error) {
	switch cmd.Kind {
	case InputKeyDown:
		return e.KeyDown(cmd.Key), nil
	case InputKeyUp:
		return e.KeyUp(cmd.Key), nil
	case InputMouseMove:
		return e.MoveMouse(r3.Vec{X: cmd.X, Y: cmd.Y, Z: cmd.Z}), nil
	case InputMouseButton:
		return e.OnMouseButton(cmd.Key), nil
	case InputLeftStick:
		return e.MoveLeftStick(r2.Vec{X: cmd.X, Y: cmd.Y}), nil
	case InputRightStick:
		return e.MoveRightStick(r2.Vec{X: cmd.X, Y: cmd.Y}), nil
	case InputButtonDown, InputButtonUp:
		key, err := input.ParseGamepadKey(cmd.Key)
		if err != nil {
			return false, err
		}
		if cmd.Kind == InputButtonDown {
			return e.GamepadButtonDown(key), nil
		}
		return e.GamepadButtonUp(key), nil
	case InputButtonStick:
		return e.ButtonStick(input.StickPosition{X: int(cmd.X), Y: int(cmd.Y)}), nil
	case InputKnobValueChange:
		return e.KnobValueChange(cmd.Knob, cmd.Value), nil
	case InputNoteOn:
		return e.NoteOn(cmd.Note), nil
	}
	return false, fmt.Errorf("%w: %q", domain.ErrUnknownInput, cmd.Kind)
}

// ModesPatch is a partial mode update. Nil fields are left unchanged.
type ModesPatch struct {
	AlwaysHandDown     *bool    `json:"always_hand_down,omitempty" mapstructure:"always_hand_down"`
	KeyboardAndMouse   *int     `json:"keyboard_and_mouse,omitempty" mapstructure:"keyboard_and_mouse"`
	Gamepad            *int     `json:"gamepad,omitempty" mapstructure:"gamepad"`
	WordToMotionDevice *int     `json:"word_to_motion_device,omitempty" mapstructure:"word_to_motion_device"`
	HandDownTimeout    *bool    `json:"hand_down_timeout,omitempty" mapstructure:"hand_down_timeout"`
	YOffset            *float64 `json:"y_offset,omitempty" mapstructure:"y_offset"`
}

// DecodeModesPatch decodes a loose key/value map. Unknown keys are an error.
func DecodeModesPatch(raw map[string]any) (ModesPatch, error) {
	var p ModesPatch
	if err := decodeStrict(raw, &p); err != nil {
		return ModesPatch{}, fmt.Errorf("decode modes: %w", err)
	}
	return p, nil
}

// PatchModes applies each set field through its setter, so invalid indices
// are ignored. It returns the resulting modes.
func (e *Engine) PatchModes(p ModesPatch) domain.Modes {
	if p.KeyboardAndMouse != nil {
		e.SetKeyboardAndMouseMotionMode(*p.KeyboardAndMouse)
	}
	if p.Gamepad != nil {
		e.SetGamepadMotionMode(*p.Gamepad)
	}
	if p.WordToMotionDevice != nil {
		e.SetWordToMotionDevice(*p.WordToMotionDevice)
	}
	if p.AlwaysHandDown != nil {
		e.SetAlwaysHandDown(*p.AlwaysHandDown)
	}
	if p.HandDownTimeout != nil {
		e.SetHandDownTimeout(*p.HandDownTimeout)
	}
	if p.YOffset != nil {
		e.SetYOffsetAlways(*p.YOffset)
	}
	return e.Modes()
}

func decodeStrict(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
