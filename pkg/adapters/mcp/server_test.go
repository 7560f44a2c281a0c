package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/adapters/memory"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	eng, err := handik.New()
	require.NoError(t, err)
	r := runner.New(eng)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		tick := time.NewTicker(time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				r.Step(0.125)
			}
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		r.Stop()
	})

	require.Eventually(t, func() bool { return r.Snapshot().Frame >= 4 }, time.Second, time.Millisecond)
	return NewServer(r, opts...)
}

func TestSendInput(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	resp, err := s.handleSendInput(ctx, mcp.CallToolRequest{}, map[string]any{
		"kind": "mouse_move",
		"args": map[string]any{"x": 0.1, "y": 0.2},
	})
	require.NoError(t, err)
	assert.Equal(t, InputResponse{Kind: "mouse_move", Forwarded: true}, resp)

	require.Eventually(t, func() bool {
		st, err := s.handleGetState(ctx, mcp.CallToolRequest{}, nil)
		return err == nil && st.State.Right.Target == domain.TargetMouse
	}, time.Second, time.Millisecond)
}

func TestSendInput_StringArgs(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleSendInput(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"kind": "key_down",
		"args": `{"key":"a"}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Forwarded)
}

func TestSendInput_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSendInput(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "teleport"})
	assert.ErrorIs(t, err, domain.ErrUnknownInput)

	_, err = s.handleSendInput(ctx, mcp.CallToolRequest{}, map[string]any{"kind": "key_down", "args": 3})
	assert.Error(t, err)

	_, err = s.handleSendInput(ctx, mcp.CallToolRequest{}, map[string]any{
		"kind": "mouse_move",
		"args": map[string]any{"w": 1},
	})
	assert.Error(t, err)
}

func TestSetModes(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.handleSetModes(context.Background(), mcp.CallToolRequest{}, map[string]any{
		"always_hand_down": true,
		"gamepad":          float64(1),
	})
	require.NoError(t, err)
	assert.True(t, resp.Modes.AlwaysHandDown)
	assert.Equal(t, domain.GamepadMotionArcadeStick, resp.Modes.Gamepad)

	_, err = s.handleSetModes(context.Background(), mcp.CallToolRequest{}, map[string]any{"bogus": true})
	assert.Error(t, err)
}

func TestSnapshots(t *testing.T) {
	s := newTestServer(t, WithStore(memory.NewStore()))
	ctx := context.Background()

	_, err := s.handleRestoreSnapshot(ctx, mcp.CallToolRequest{}, map[string]any{"profile": "alice"})
	assert.Error(t, err)

	snap, err := s.handleSaveSnapshot(ctx, mcp.CallToolRequest{}, map[string]any{"profile": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", snap.ProfileID)

	_, err = s.handleSetModes(ctx, mcp.CallToolRequest{}, map[string]any{"always_hand_down": true})
	require.NoError(t, err)

	resp, err := s.handleRestoreSnapshot(ctx, mcp.CallToolRequest{}, map[string]any{"profile": "alice"})
	require.NoError(t, err)
	assert.False(t, resp.Modes.AlwaysHandDown)
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t)

	msg := s.mcpServer.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	out := string(data)
	for _, name := range []string{"get_state", "set_modes", "send_input"} {
		assert.Contains(t, out, `"`+name+`"`)
	}
	assert.NotContains(t, out, "save_snapshot")
}

func TestStateResource(t *testing.T) {
	s := newTestServer(t)

	msg := s.mcpServer.HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"handik://state"}}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `handik://state`)
	assert.Contains(t, string(data), `keyboard`)
}
