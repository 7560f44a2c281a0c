package dsl

import (
	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/input"
	"github.com/aretw0/handik/pkg/scenario"
	"gonum.org/v1/gonum/spatial/r3"
)

// StepBuilder adds one action at a fixed time. Every method returns the
// scenario builder so steps can be chained.
type StepBuilder struct {
	at      float64
	builder *Builder
}

func (s *StepBuilder) KeyDown(key string) *Builder {
	return s.builder.add(s.at, handik.InputKeyDown, map[string]any{"key": key})
}

func (s *StepBuilder) KeyUp(key string) *Builder {
	return s.builder.add(s.at, handik.InputKeyUp, map[string]any{"key": key})
}

func (s *StepBuilder) MouseMove(x, y float64) *Builder {
	return s.builder.add(s.at, handik.InputMouseMove, map[string]any{"x": x, "y": y})
}

func (s *StepBuilder) MouseButton(button string) *Builder {
	return s.builder.add(s.at, handik.InputMouseButton, map[string]any{"key": button})
}

func (s *StepBuilder) LeftStick(x, y float64) *Builder {
	return s.builder.add(s.at, handik.InputLeftStick, map[string]any{"x": x, "y": y})
}

func (s *StepBuilder) RightStick(x, y float64) *Builder {
	return s.builder.add(s.at, handik.InputRightStick, map[string]any{"x": x, "y": y})
}

func (s *StepBuilder) ButtonDown(key input.GamepadKey) *Builder {
	return s.builder.add(s.at, handik.InputButtonDown, map[string]any{"key": key.String()})
}

func (s *StepBuilder) ButtonUp(key input.GamepadKey) *Builder {
	return s.builder.add(s.at, handik.InputButtonUp, map[string]any{"key": key.String()})
}

// ButtonStick presses the arcade stick towards (x, y), each in -1..1.
func (s *StepBuilder) ButtonStick(x, y int) *Builder {
	return s.builder.add(s.at, handik.InputButtonStick, map[string]any{"x": x, "y": y})
}

func (s *StepBuilder) Knob(knob int, value float64) *Builder {
	return s.builder.add(s.at, handik.InputKnobValueChange, map[string]any{"knob": knob, "value": value})
}

func (s *StepBuilder) NoteOn(note int) *Builder {
	return s.builder.add(s.at, handik.InputNoteOn, map[string]any{"note": note})
}

// Type presses and releases every rune of text at the same time.
func (s *StepBuilder) Type(text string) *Builder {
	for _, r := range text {
		s.KeyDown(string(r))
		s.KeyUp(string(r))
	}
	return s.builder
}

func (s *StepBuilder) SetModes(p handik.ModesPatch) *Builder {
	return s.builder.add(s.at, scenario.ActionSetModes, patchArgs(p))
}

func (s *StepBuilder) AvatarLoaded() *Builder {
	return s.builder.add(s.at, scenario.ActionAvatarLoaded, nil)
}

func (s *StepBuilder) AvatarUnloaded() *Builder {
	return s.builder.add(s.at, scenario.ActionAvatarUnloaded, nil)
}

// Feed reports a tracked hand position from the image tracker.
func (s *StepBuilder) Feed(h domain.Hand, pos r3.Vec) *Builder {
	return s.builder.add(s.at, scenario.ActionFeed, map[string]any{
		"hand": h.String(), "x": pos.X, "y": pos.Y, "z": pos.Z,
	})
}

func (s *StepBuilder) Lost(h domain.Hand) *Builder {
	return s.builder.add(s.at, scenario.ActionLost, map[string]any{"hand": h.String()})
}

func (s *StepBuilder) PlayMotion(clip string) *Builder {
	return s.builder.add(s.at, scenario.ActionPlayMotion, map[string]any{"clip": clip})
}

// Expect asserts the target holding a hand once the step runs.
func (s *StepBuilder) Expect(h domain.Hand, target domain.TargetType) *Builder {
	return s.builder.add(s.at, scenario.ActionExpect, map[string]any{
		"hand": h.String(), "target": target.String(),
	})
}
