package dsl

import (
	"fmt"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/adapters/memory"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/aretw0/handik/pkg/scenario"
)

// Builder manages the scenario construction.
type Builder struct {
	s scenario.Scenario
}

// New creates a builder for a scenario called name.
func New(name string) *Builder {
	return &Builder{s: scenario.Scenario{Name: name}}
}

func (b *Builder) Describe(text string) *Builder {
	b.s.Description = text
	return b
}

func (b *Builder) FPS(fps int) *Builder {
	b.s.FPS = fps
	return b
}

// Duration sets the replay length. Without it the last step ends the replay.
func (b *Builder) Duration(seconds float64) *Builder {
	b.s.Duration = seconds
	return b
}

// Modes sets the starting modes.
func (b *Builder) Modes(p handik.ModesPatch) *Builder {
	b.s.Modes = patchArgs(p)
	return b
}

func (b *Builder) Clips(clips ...motion.Clip) *Builder {
	b.s.Clips = append(b.s.Clips, clips...)
	return b
}

func (b *Builder) Word(word, clip string) *Builder {
	if b.s.Words == nil {
		b.s.Words = map[string]string{}
	}
	b.s.Words[word] = clip
	return b
}

func (b *Builder) Slots(clips ...string) *Builder {
	b.s.Slots = append(b.s.Slots, clips...)
	return b
}

// At starts a step at t seconds.
func (b *Builder) At(t float64) *StepBuilder {
	return &StepBuilder{at: t, builder: b}
}

// Build normalizes and validates the scenario. The builder can keep adding
// steps afterwards; the returned scenario is a copy.
func (b *Builder) Build() (*scenario.Scenario, error) {
	s := b.s
	s.Steps = append([]scenario.Step(nil), b.s.Steps...)
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Loader compiles the scenario into a one-entry MemoryLoader.
func (b *Builder) Loader() (*memory.Loader, error) {
	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	loader, err := memory.NewFromScenarios(*s)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

func (b *Builder) add(at float64, action string, args map[string]any) *Builder {
	b.s.Steps = append(b.s.Steps, scenario.Step{At: at, Action: action, Args: args})
	return b
}

func patchArgs(p handik.ModesPatch) map[string]any {
	args := map[string]any{}
	if p.AlwaysHandDown != nil {
		args["always_hand_down"] = *p.AlwaysHandDown
	}
	if p.KeyboardAndMouse != nil {
		args["keyboard_and_mouse"] = *p.KeyboardAndMouse
	}
	if p.Gamepad != nil {
		args["gamepad"] = *p.Gamepad
	}
	if p.WordToMotionDevice != nil {
		args["word_to_motion_device"] = *p.WordToMotionDevice
	}
	if p.HandDownTimeout != nil {
		args["hand_down_timeout"] = *p.HandDownTimeout
	}
	if p.YOffset != nil {
		args["y_offset"] = *p.YOffset
	}
	return args
}
