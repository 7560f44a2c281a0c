package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/scenario"
)

// ScenarioReport renders a replay result as markdown.
func ScenarioReport(res *scenario.Result) string {
	var sb strings.Builder

	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(&sb, "# %s: %s\n\n", res.Name, status)
	fmt.Fprintf(&sb, "%d frames, %d steps, %d transitions", len(res.Frames), len(res.Steps), len(res.Transitions))
	if n := len(res.Motions); n > 0 {
		fmt.Fprintf(&sb, ", %d motions", n)
	}
	sb.WriteString("\n\n")

	if len(res.Steps) > 0 {
		sb.WriteString("## Steps\n\n")
		sb.WriteString("| at | frame | action | forwarded |\n|---:|---:|---|:---:|\n")
		for _, st := range res.Steps {
			fwd := ""
			if st.Forwarded {
				fwd = "yes"
			}
			fmt.Fprintf(&sb, "| %.3f | %d | %s | %s |\n", st.At, st.Frame, describe(st.Action, st.Args), fwd)
		}
		sb.WriteString("\n")
	}

	if len(res.Transitions) > 0 {
		sb.WriteString("## Transitions\n\n")
		sb.WriteString("| time | hand | from | to |\n|---:|---|---|---|\n")
		for _, tr := range res.Transitions {
			fmt.Fprintf(&sb, "| %.3f | %s | %s | %s |\n",
				tr.Timestamp.Sub(scenario.Epoch).Seconds(), tr.Hand, tr.From, tr.To)
		}
		sb.WriteString("\n")
	}

	if len(res.Motions) > 0 {
		sb.WriteString("## Motions\n\n")
		for _, m := range res.Motions {
			fmt.Fprintf(&sb, "- `%s` from %s\n", m.Clip, m.Source)
		}
		sb.WriteString("\n")
	}

	if len(res.Failures) > 0 {
		sb.WriteString("## Failures\n\n")
		for _, f := range res.Failures {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// StateReport renders an engine state as markdown.
func StateReport(st handik.State) string {
	var sb strings.Builder
	sb.WriteString("| hand | target | cooldown | blending |\n|---|---|---:|:---:|\n")
	for _, h := range []struct {
		name string
		s    handik.HandStatus
	}{{"left", st.Left}, {"right", st.Right}} {
		blend := ""
		if h.s.Blending {
			blend = "yes"
		}
		fmt.Fprintf(&sb, "| %s | %s | %.2f | %s |\n", h.name, h.s.Target, h.s.Cooldown, blend)
	}
	fmt.Fprintf(&sb, "\nModes: keyboard_and_mouse=%s gamepad=%s word_to_motion=%s always_hand_down=%t hand_down_timeout=%t\n",
		st.Modes.KeyboardAndMouse, st.Modes.Gamepad, st.Modes.WordToMotionDevice,
		st.Modes.AlwaysHandDown, st.Modes.HandDownTimeout)
	return sb.String()
}

func describe(action string, args map[string]any) string {
	if len(args) == 0 {
		return "`" + action + "`"
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, args[k])
	}
	return fmt.Sprintf("`%s` %s", action, strings.Join(parts, " "))
}
