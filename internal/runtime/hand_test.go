package runtime_test

import (
	"math"
	"testing"

	"github.com/aretw0/handik/internal/runtime"
	"github.com/aretw0/handik/pkg/blend"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestHandMachine_StartsSteady(t *testing.T) {
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	m := runtime.NewHandMachine(domain.HandLeft, keyboard)

	assert.Equal(t, domain.TargetKeyboard, m.TargetType())
	assert.Nil(t, m.Previous())
	assert.False(t, m.Blending())
	assert.True(t, m.CanSwitch())

	pose := m.Advance(0.016)
	assert.Equal(t, keyboard.pos, pose.Position)
}

func TestHandMachine_RequestState_Accepts(t *testing.T) {
	rec := &recorder{}
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, rec)
	mouse := newState("mouse", domain.TargetMouse, 1, rec)
	m := runtime.NewHandMachine(domain.HandRight, keyboard)

	require.True(t, m.RequestState(mouse, false))

	assert.Equal(t, domain.TargetMouse, m.TargetType())
	assert.Same(t, mouse, m.Current())
	assert.Same(t, keyboard, m.Previous())
	assert.Equal(t, 0.0, m.BlendElapsed())
	assert.Equal(t, runtime.TypeChangeCoolDown, m.Cooldown())
	assert.True(t, m.Blending())

	// Quit on the outgoing state strictly before Enter on the incoming one.
	assert.Equal(t, []string{"quit:keyboard", "enter:mouse"}, rec.calls)
	require.Len(t, keyboard.quit, 1)
	assert.Same(t, mouse, keyboard.quit[0])
	require.Len(t, mouse.entered, 1)
	assert.Same(t, keyboard, mouse.entered[0])
}

func TestHandMachine_RequestState_SelfTransitionIsNoop(t *testing.T) {
	rec := &recorder{}
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, rec)
	mouse := newState("mouse", domain.TargetMouse, 1, rec)
	otherMouse := newState("other-mouse", domain.TargetMouse, 2, rec)
	m := runtime.NewHandMachine(domain.HandRight, keyboard)
	require.True(t, m.RequestState(mouse, false))
	m.Advance(0.125)
	rec.calls = nil

	elapsed, cooldown := m.BlendElapsed(), m.Cooldown()

	// Same target type, even from a different state object.
	assert.False(t, m.RequestState(otherMouse, false))
	assert.False(t, m.RequestState(mouse, false))

	assert.Equal(t, elapsed, m.BlendElapsed())
	assert.Equal(t, cooldown, m.Cooldown())
	assert.Same(t, mouse, m.Current())
	assert.Empty(t, rec.calls)
}

func TestHandMachine_RequestState_AlwaysHandDown(t *testing.T) {
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	mouse := newState("mouse", domain.TargetMouse, 1, nil)
	down := newState("down", domain.TargetAlwaysDown, -1, nil)
	m := runtime.NewHandMachine(domain.HandRight, keyboard)

	assert.False(t, m.RequestState(mouse, true))
	assert.Equal(t, domain.TargetKeyboard, m.TargetType())

	assert.True(t, m.RequestState(down, true))
	assert.Equal(t, domain.TargetAlwaysDown, m.TargetType())

	// Nothing but always-down while the override holds.
	assert.False(t, m.RequestState(keyboard, true))
	assert.False(t, m.RequestState(mouse, true))

	// Clearing the override allows transitions again.
	assert.True(t, m.RequestState(mouse, false))
}

func TestHandMachine_CooldownMonotonic(t *testing.T) {
	gamepad := newState("gamepad", domain.TargetGamepad, 0, nil)
	midi := newState("midi", domain.TargetMidiController, 1, nil)
	keyboard := newState("keyboard", domain.TargetKeyboard, 2, nil)
	m := runtime.NewHandMachine(domain.HandLeft, keyboard)
	require.True(t, m.RequestState(gamepad, false))

	prev := m.Cooldown()
	assert.False(t, m.CheckCoolDown(domain.TargetMidiController))
	assert.True(t, m.CheckCoolDown(domain.TargetGamepad), "the holding device always passes")

	m.Advance(0.125)
	assert.Less(t, m.Cooldown(), prev)
	assert.False(t, m.CheckCoolDown(domain.TargetMidiController))
	prev = m.Cooldown()

	m.Advance(0.125)
	assert.Less(t, m.Cooldown(), prev)
	assert.False(t, m.CheckCoolDown(domain.TargetMidiController), "0.25 elapsed is still inside the cooldown")

	m.Advance(0.125)
	assert.True(t, m.CheckCoolDown(domain.TargetMidiController))
	assert.True(t, m.CanSwitch())

	// Once expired the timer stops moving.
	expired := m.Cooldown()
	m.Advance(0.125)
	assert.Equal(t, expired, m.Cooldown())

	assert.True(t, m.RequestState(midi, false))
}

func TestHandMachine_BlendCompletion(t *testing.T) {
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	mouse := newState("mouse", domain.TargetMouse, 0, nil)
	mouse.pos = r3.Vec{X: 0.3, Y: 1.2, Z: -0.4}
	m := runtime.NewHandMachine(domain.HandRight, keyboard)
	require.True(t, m.RequestState(mouse, false))

	m.Advance(0.125)
	assert.True(t, m.Blending())

	pose := m.Advance(0.125)
	assert.False(t, m.Blending())
	assert.GreaterOrEqual(t, m.BlendElapsed(), runtime.ToggleDuration)
	assert.Equal(t, mouse.pos, pose.Position)
	assert.Equal(t, mouse.rot, pose.Rotation)

	// Steady state follows the live sample.
	mouse.pos = r3.Vec{X: 0.5}
	assert.Equal(t, mouse.pos, m.Advance(0.016).Position)
}

func TestHandMachine_KeyboardToMouseIsEaseWeighted(t *testing.T) {
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	mouse := newState("mouse", domain.TargetMouse, 1, nil)
	m := runtime.NewHandMachine(domain.HandRight, keyboard)
	require.True(t, m.RequestState(mouse, false))
	require.Same(t, keyboard, m.Previous())

	tests := []struct {
		dt   float64
		want float64
	}{
		{0.0625, 0.15625},
		{0.0625, 0.5},
		{0.0625, 0.84375},
		{0.0625, 1},
	}
	for i, tt := range tests {
		pose := m.Advance(tt.dt)
		assert.InDelta(t, tt.want, pose.Position.X, 1e-12, "step %d", i)
	}

	// The first quarter is well below a linear mix.
	assert.Less(t, blend.Ease(0.25), 0.25)
}

func TestHandMachine_RotationIsSlerped(t *testing.T) {
	half := math.Sqrt2 / 2
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	mouse := newState("mouse", domain.TargetMouse, 0, nil)
	mouse.rot = quat.Number{Real: half, Jmag: half}
	m := runtime.NewHandMachine(domain.HandRight, keyboard)
	require.True(t, m.RequestState(mouse, false))

	// Ease(0.5) = 0.5, so halfway through the blend is a 45 degree turn.
	pose := m.Advance(0.125)
	assert.InDelta(t, math.Cos(math.Pi/8), pose.Rotation.Real, 1e-9)
	assert.InDelta(t, math.Sin(math.Pi/8), pose.Rotation.Jmag, 1e-9)
}

func TestHandMachine_MidBlendRequestRestartsFromCurrent(t *testing.T) {
	keyboard := newState("keyboard", domain.TargetKeyboard, 0, nil)
	mouse := newState("mouse", domain.TargetMouse, 1, nil)
	gamepad := newState("gamepad", domain.TargetGamepad, 3, nil)
	m := runtime.NewHandMachine(domain.HandRight, keyboard)
	require.True(t, m.RequestState(mouse, false))
	m.Advance(0.0625)

	require.True(t, m.RequestState(gamepad, false))
	assert.Same(t, mouse, m.Previous(), "blend restarts from the pre-request state, not the displayed pose")
	assert.Equal(t, 0.0, m.BlendElapsed())
	assert.Equal(t, runtime.TypeChangeCoolDown, m.Cooldown())

	pose := m.Advance(0.125)
	assert.InDelta(t, 2, pose.Position.X, 1e-12)
}

func TestHandMachine_PreviousNeverNilWhileBlending(t *testing.T) {
	states := []*fakeState{
		newState("keyboard", domain.TargetKeyboard, 0, nil),
		newState("mouse", domain.TargetMouse, 1, nil),
		newState("gamepad", domain.TargetGamepad, 2, nil),
		newState("down", domain.TargetAlwaysDown, 3, nil),
	}
	m := runtime.NewHandMachine(domain.HandRight, states[0])

	for i := 0; i < 64; i++ {
		m.RequestState(states[(i*7)%len(states)], i%5 == 0)
		m.Advance(0.0625)
		if m.Blending() {
			require.NotNil(t, m.Previous(), "iteration %d", i)
		}
		assert.Equal(t, m.Current().TargetType(), m.TargetType())
	}
}
