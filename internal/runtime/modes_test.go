package runtime_test

import (
	"testing"

	"github.com/aretw0/handik/internal/runtime"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestIntegrator_SetKeyboardAndMouseMotionMode(t *testing.T) {
	tests := []struct {
		index    int
		accepted bool
	}{
		{-2, false},
		{int(domain.KeyboardAndTouchPad), false}, // already active
		{int(domain.KeyboardAndMouseUnknown), false},
		{4, false},
		{int(domain.KeyboardAndMousePresentation), true},
		{int(domain.KeyboardAndMousePenTablet), true},
		{int(domain.KeyboardAndMouseNone), true},
	}

	r := newRig(t)
	for _, tt := range tests {
		before := r.in.Modes()
		got := r.in.SetKeyboardAndMouseMotionMode(tt.index)
		assert.Equal(t, tt.accepted, got, "index %d", tt.index)
		if tt.accepted {
			assert.Equal(t, domain.KeyboardAndMouseMotionMode(tt.index), r.in.Modes().KeyboardAndMouse)
		} else {
			assert.Equal(t, before, r.in.Modes())
		}
	}

	// HID toggles are pushed on every accepted change.
	assert.Equal(t, []bool{true, true, false}, r.pointer.hid)
	assert.False(t, r.in.Modes().EnableHidArmMotion())
	assert.Len(t, r.modes, 3)
}

func TestIntegrator_SetGamepadMotionMode(t *testing.T) {
	r := newRig(t)

	assert.False(t, r.in.SetGamepadMotionMode(int(domain.GamepadMotionGamepad)))
	assert.False(t, r.in.SetGamepadMotionMode(int(domain.GamepadMotionUnknown)))
	assert.False(t, r.in.SetGamepadMotionMode(-1))
	assert.True(t, r.in.SetGamepadMotionMode(int(domain.GamepadMotionArcadeStick)))
	assert.Equal(t, domain.GamepadMotionArcadeStick, r.in.Modes().Gamepad)
	assert.Equal(t, domain.TargetArcadeStick, r.in.Modes().GamepadTargetType())
	assert.True(t, r.in.SetGamepadMotionMode(int(domain.GamepadMotionGamepad)))
}

func TestIntegrator_SetWordToMotionDevice(t *testing.T) {
	r := newRig(t)

	assert.False(t, r.in.SetWordToMotionDevice(int(domain.WordToMotionKeyboardWord)))
	assert.False(t, r.in.SetWordToMotionDevice(7))
	assert.False(t, r.in.SetWordToMotionDevice(-1))
	assert.True(t, r.in.SetWordToMotionDevice(int(domain.WordToMotionGamepad)))
	assert.Equal(t, domain.WordToMotionGamepad, r.in.Modes().WordToMotionDevice)
}

func TestIntegrator_SetHandDownTimeout(t *testing.T) {
	r := newRig(t)

	assert.False(t, r.in.SetHandDownTimeout(true))
	assert.True(t, r.in.SetHandDownTimeout(false))
	assert.True(t, r.in.SetHandDownTimeout(true))
	assert.Equal(t, []bool{false, true}, r.typing.timeout)
}

func TestIntegrator_ModesSnapshotIsImmutable(t *testing.T) {
	r := newRig(t)
	before := r.in.Modes()
	require.True(t, r.in.SetAlwaysHandDown(true))

	assert.False(t, before.AlwaysHandDown, "a held snapshot never changes")
	assert.True(t, r.in.Modes().AlwaysHandDown)
}

func TestIntegrator_WithModes(t *testing.T) {
	m := domain.DefaultModes()
	m.WordToMotionDevice = domain.WordToMotionMidiController
	in := runtime.New(runtime.WithModes(m))
	assert.Equal(t, m, in.Modes())
}

// counters subscribes to every event and counts what reaches the generators.
type counters map[string]int

func subscribe(ev *input.Events) counters {
	c := counters{}
	ev.OnKeyDown(func(string) { c["key_down"]++ })
	ev.OnKeyUp(func(string) { c["key_up"]++ })
	ev.OnMouseMove(func(r3.Vec) { c["mouse_move"]++ })
	ev.OnMouseButton(func(string) { c["mouse_button"]++ })
	ev.OnLeftStick(func(r2.Vec) { c["left_stick"]++ })
	ev.OnRightStick(func(r2.Vec) { c["right_stick"]++ })
	ev.OnButtonDown(func(input.GamepadKey) { c["button_down"]++ })
	ev.OnButtonUp(func(input.GamepadKey) { c["button_up"]++ })
	ev.OnButtonStick(func(input.StickPosition) { c["button_stick"]++ })
	ev.OnKnobValueChange(func(int, float64) { c["knob_value_change"]++ })
	ev.OnNoteOn(func(int) { c["note_on"]++ })
	return c
}

func fireAll(in *runtime.Integrator) map[string]bool {
	return map[string]bool{
		"key_down":          in.KeyDown("A"),
		"key_up":            in.KeyUp("A"),
		"mouse_move":        in.MoveMouse(r3.Vec{X: 0.5}),
		"mouse_button":      in.OnMouseButton("left"),
		"left_stick":        in.MoveLeftGamepadStick(r2.Vec{X: 1}),
		"right_stick":       in.MoveRightGamepadStick(r2.Vec{Y: 1}),
		"button_down":       in.GamepadButtonDown(input.GamepadKeyA),
		"button_up":         in.GamepadButtonUp(input.GamepadKeyA),
		"button_stick":      in.ButtonStick(input.StickPosition{X: 1}),
		"knob_value_change": in.KnobValueChange(1, 0.5),
		"note_on":           in.NoteOn(60),
	}
}

func TestIntegrator_InputGating(t *testing.T) {
	all := []string{
		"key_down", "key_up", "mouse_move", "mouse_button", "left_stick", "right_stick",
		"button_down", "button_up", "button_stick", "knob_value_change", "note_on",
	}
	except := func(blocked ...string) map[string]bool {
		want := map[string]bool{}
		for _, k := range all {
			want[k] = true
		}
		for _, k := range blocked {
			want[k] = false
		}
		return want
	}

	tests := []struct {
		name  string
		setup func(r *rig)
		want  map[string]bool
	}{
		{
			name:  "defaults forward everything",
			setup: func(*rig) {},
			want:  except(),
		},
		{
			name:  "none mode drops HID input",
			setup: func(r *rig) { r.in.SetKeyboardAndMouseMotionMode(int(domain.KeyboardAndMouseNone)) },
			want:  except("key_down", "key_up", "mouse_move", "mouse_button"),
		},
		{
			name:  "presentation drops mouse buttons only",
			setup: func(r *rig) { r.in.SetKeyboardAndMouseMotionMode(int(domain.KeyboardAndMousePresentation)) },
			want:  except("mouse_button"),
		},
		{
			name:  "always down drops mouse buttons",
			setup: func(r *rig) { r.in.SetAlwaysHandDown(true) },
			want:  except("mouse_button"),
		},
		{
			name:  "gamepad assigned to word to motion",
			setup: func(r *rig) { r.in.SetWordToMotionDevice(int(domain.WordToMotionGamepad)) },
			want:  except("left_stick", "right_stick", "button_down", "button_up", "button_stick"),
		},
		{
			name:  "midi assigned to word to motion",
			setup: func(r *rig) { r.in.SetWordToMotionDevice(int(domain.WordToMotionMidiController)) },
			want:  except("knob_value_change", "note_on"),
		},
		{
			name: "right hand cooling down on the gamepad",
			setup: func(r *rig) {
				require.True(t, r.in.RequestState(domain.HandRight, r.gamepad.State(domain.HandRight)))
			},
			// The stick of the holding device passes and buttons are never gated.
			want: except("mouse_move"),
		},
		{
			name: "left hand cooling down on midi",
			setup: func(r *rig) {
				require.True(t, r.in.RequestState(domain.HandLeft, r.midi.State(domain.HandLeft)))
			},
			want: except("left_stick", "button_stick"),
		},
		{
			name: "pointer already holding the right hand",
			setup: func(r *rig) {
				require.True(t, r.in.RequestState(domain.HandRight, r.pointer.State(domain.HandRight)))
			},
			want: except("right_stick"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			c := subscribe(r.in.Events())
			tt.setup(r)

			got := fireAll(r.in)

			assert.Equal(t, tt.want, got)
			for kind, forwarded := range tt.want {
				if forwarded {
					assert.Equal(t, 1, c[kind], kind)
				} else {
					assert.Zero(t, c[kind], kind)
				}
			}
		})
	}
}

func TestIntegrator_OnInputHook(t *testing.T) {
	var events []domain.InputEvent
	in := runtime.New(runtime.WithLifecycleHooks(domain.LifecycleHooks{
		OnInput: func(e *domain.InputEvent) { events = append(events, *e) },
	}))
	in.SetKeyboardAndMouseMotionMode(int(domain.KeyboardAndMouseNone))

	in.KeyDown("A")
	in.NoteOn(64)

	assert.Equal(t, []domain.InputEvent{
		{Kind: "key_down", Forwarded: false},
		{Kind: "note_on", Forwarded: true},
	}, events)
}
