package input_test

import (
	"testing"

	"github.com/aretw0/handik/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEvents_DispatchInSubscriptionOrder(t *testing.T) {
	ev := input.NewEvents()
	var got []string
	ev.OnKeyDown(func(key string) { got = append(got, "first:"+key) })
	ev.OnKeyDown(func(key string) { got = append(got, "second:"+key) })

	ev.RaiseKeyDown("A")

	assert.Equal(t, []string{"first:A", "second:A"}, got)
}

func TestEvents_RaiseWithoutSubscribers(t *testing.T) {
	ev := input.NewEvents()
	assert.NotPanics(t, func() {
		ev.RaiseKeyUp("A")
		ev.RaiseMouseMove(r3.Vec{X: 1})
		ev.RaiseNoteOn(60)
	})
}

func TestEvents_TypedPayloads(t *testing.T) {
	ev := input.NewEvents()

	var (
		pos   r3.Vec
		stick r2.Vec
		btn   input.GamepadKey
		knob  int
		value float64
		dir   input.StickPosition
	)
	ev.OnMouseMove(func(p r3.Vec) { pos = p })
	ev.OnRightStick(func(v r2.Vec) { stick = v })
	ev.OnButtonDown(func(k input.GamepadKey) { btn = k })
	ev.OnKnobValueChange(func(k int, v float64) { knob, value = k, v })
	ev.OnButtonStick(func(p input.StickPosition) { dir = p })

	ev.RaiseMouseMove(r3.Vec{X: 0.5, Y: 0.25})
	ev.RaiseRightStick(r2.Vec{X: -1})
	ev.RaiseButtonDown(input.GamepadKeyB)
	ev.RaiseKnobValueChange(3, 0.75)
	ev.RaiseButtonStick(input.StickPosition{X: 1, Y: -1})

	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.25}, pos)
	assert.Equal(t, r2.Vec{X: -1}, stick)
	assert.Equal(t, input.GamepadKeyB, btn)
	assert.Equal(t, 3, knob)
	assert.Equal(t, 0.75, value)
	assert.Equal(t, input.StickPosition{X: 1, Y: -1}, dir)
	assert.False(t, dir.Neutral())
}

func TestParseGamepadKey(t *testing.T) {
	k, err := input.ParseGamepadKey(" R_Shoulder ")
	require.NoError(t, err)
	assert.Equal(t, input.GamepadKeyRShoulder, k)
	assert.Equal(t, "r_shoulder", k.String())

	_, err = input.ParseGamepadKey("unknown")
	assert.Error(t, err)
	_, err = input.ParseGamepadKey("turbo")
	assert.Error(t, err)
}

func TestStickFromRaw(t *testing.T) {
	x, y := input.StickFromRaw(-32768, 16384)
	assert.Equal(t, -1.0, x)
	assert.Equal(t, 0.5, y)
}
