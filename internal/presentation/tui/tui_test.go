package tui_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/internal/presentation/tui"
	"github.com/aretw0/handik/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const takeover = `
name: takeover
fps: 8
steps:
  - {at: 0.5, action: mouse_move, args: {x: 0.2}}
  - {at: 1.0, action: expect, args: {hand: right, target: keyboard}}
`

func TestScenarioReport(t *testing.T) {
	s, err := scenario.Parse([]byte(takeover))
	require.NoError(t, err)
	res, err := scenario.Run(context.Background(), s)
	require.NoError(t, err)

	out := tui.ScenarioReport(res)
	assert.Contains(t, out, "# takeover: FAIL")
	assert.Contains(t, out, "| 0.500 | 4 | `mouse_move` x=0.2 | yes |")
	assert.Contains(t, out, "| right | keyboard | mouse |")
	assert.Contains(t, out, "## Failures")
}

func TestStateReport(t *testing.T) {
	eng, err := handik.New()
	require.NoError(t, err)

	out := tui.StateReport(eng.State())
	assert.Contains(t, out, "| left | keyboard |")
	assert.Contains(t, out, "word_to_motion=keyboard_word")
}

func TestPrint_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.Print(&buf, "# title\n"))
	assert.Equal(t, "# title\n", buf.String())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_| |_|")
}
