package observability_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMetrics_FromEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	var buf bytes.Buffer
	hooks := observability.Chain(m.Hooks(), observability.AuditLog(logging.NewWithWriter(&buf, 0)))
	eng, err := handik.New(handik.WithLifecycleHooks(hooks))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		eng.Update(0.125)
	}
	eng.MoveMouse(r3.Vec{X: 0.1})
	eng.Update(0.125)
	m.ObserveFrame(0.125)
	eng.SetAlwaysHandDown(true)
	eng.OnMouseButton("left")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("right", "keyboard", "mouse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Target.WithLabelValues("right", "mouse")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inputs.WithLabelValues("mouse_move", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inputs.WithLabelValues("mouse_button", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ModeChanges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Frames))
	assert.Contains(t, buf.String(), "hand_transition")
}

func TestMetrics_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestChain_SkipsNilHooks(t *testing.T) {
	var calls int
	hooks := observability.Chain(
		domain.LifecycleHooks{},
		domain.LifecycleHooks{OnInput: func(*domain.InputEvent) { calls++ }},
	)
	hooks.OnInput(&domain.InputEvent{Kind: "key_down"})
	hooks.OnTransition(&domain.TransitionEvent{})
	assert.Equal(t, 1, calls)
}
