package handik_test

import (
	"testing"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_RoutesEveryKind(t *testing.T) {
	var seen []string
	eng := newEngine(t, handik.WithLifecycleHooks(domain.LifecycleHooks{
		OnInput: func(e *domain.InputEvent) { seen = append(seen, e.Kind) },
	}))

	for _, kind := range handik.InputKinds {
		cmd := handik.Command{Kind: kind, Key: "a"}
		_, err := eng.Apply(cmd)
		require.NoError(t, err, kind)
	}
	assert.Equal(t, handik.InputKinds, seen)
}

func TestApply_Errors(t *testing.T) {
	eng := newEngine(t)

	_, err := eng.Apply(handik.Command{Kind: "jump"})
	assert.ErrorIs(t, err, domain.ErrUnknownInput)

	_, err = eng.Apply(handik.Command{Kind: handik.InputButtonDown, Key: "turbo"})
	assert.Error(t, err)
}

func TestDecodeCommand(t *testing.T) {
	cmd, err := handik.DecodeCommand(handik.InputMouseMove, map[string]any{"x": 0.5, "y": "0.25"})
	require.NoError(t, err)
	assert.Equal(t, handik.Command{Kind: handik.InputMouseMove, X: 0.5, Y: 0.25}, cmd)

	cmd, err = handik.DecodeCommand(handik.InputNoteOn, map[string]any{"note": float64(61)})
	require.NoError(t, err)
	assert.Equal(t, 61, cmd.Note)

	_, err = handik.DecodeCommand(handik.InputNoteOn, map[string]any{"pitch": 61})
	assert.Error(t, err)
}

func TestPatchModes(t *testing.T) {
	eng := newEngine(t)

	p, err := handik.DecodeModesPatch(map[string]any{
		"keyboard_and_mouse": float64(domain.KeyboardAndMousePresentation),
		"always_hand_down":   true,
		"y_offset":           0.05,
	})
	require.NoError(t, err)

	m := eng.PatchModes(p)
	assert.Equal(t, domain.KeyboardAndMousePresentation, m.KeyboardAndMouse)
	assert.True(t, m.AlwaysHandDown)
	assert.Equal(t, domain.GamepadMotionGamepad, m.Gamepad)
	assert.Equal(t, 0.05, eng.YOffsetAlways())

	bad := 7
	m = eng.PatchModes(handik.ModesPatch{Gamepad: &bad})
	assert.Equal(t, domain.GamepadMotionGamepad, m.Gamepad, "invalid indices are ignored")

	_, err = handik.DecodeModesPatch(map[string]any{"volume": 3})
	assert.Error(t, err)
}
