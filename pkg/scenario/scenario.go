package scenario

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/aretw0/handik"
	"github.com/aretw0/handik/pkg/motion"
	"gopkg.in/yaml.v3"
)

// DefaultFPS is used when a scenario does not set one.
const DefaultFPS = 60

// Actions besides the input kinds.
const (
	ActionSetModes       = "set_modes"
	ActionAvatarLoaded   = "avatar_loaded"
	ActionAvatarUnloaded = "avatar_unloaded"
	ActionFeed           = "feed"
	ActionLost           = "lost"
	ActionPlayMotion     = "play_motion"
	ActionExpect         = "expect"
)

var engineActions = []string{
	ActionSetModes, ActionAvatarLoaded, ActionAvatarUnloaded,
	ActionFeed, ActionLost, ActionPlayMotion, ActionExpect,
}

// ErrInvalidScenario wraps every validation problem.
var ErrInvalidScenario = errors.New("invalid scenario")

// Step is one scripted action at a point in simulated time.
type Step struct {
	At     float64        `yaml:"at" json:"at"`
	Action string         `yaml:"action" json:"action"`
	Args   map[string]any `yaml:"args,omitempty" json:"args,omitempty"`
}

// Scenario is a scripted session.
type Scenario struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	FPS         int               `yaml:"fps,omitempty" json:"fps,omitempty"`
	Duration    float64           `yaml:"duration,omitempty" json:"duration,omitempty"`
	Modes       map[string]any    `yaml:"modes,omitempty" json:"modes,omitempty"`
	Clips       []motion.Clip     `yaml:"clips,omitempty" json:"clips,omitempty"`
	Words       map[string]string `yaml:"words,omitempty" json:"words,omitempty"`
	Slots       []string          `yaml:"slots,omitempty" json:"slots,omitempty"`
	Steps       []Step            `yaml:"steps" json:"steps"`
}

// Parse decodes and validates a YAML scenario. Steps are sorted by time,
// keeping the written order for equal times.
func Parse(data []byte) (*Scenario, error) {
	return ParseNamed("", data)
}

// ParseNamed is Parse for documents stored under a name, which is used
// when the document does not set one.
func ParseNamed(name string, data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if s.Name == "" {
		s.Name = name
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Marshal encodes a scenario as YAML.
func Marshal(s *Scenario) ([]byte, error) {
	return yaml.Marshal(s)
}

// Normalize fills defaults, sorts the steps and validates the result.
func (s *Scenario) Normalize() error {
	if s.FPS == 0 {
		s.FPS = DefaultFPS
	}
	sort.SliceStable(s.Steps, func(i, j int) bool { return s.Steps[i].At < s.Steps[j].At })
	if s.Duration == 0 && len(s.Steps) > 0 {
		s.Duration = s.Steps[len(s.Steps)-1].At
	}
	return s.Validate()
}

// Validate reports every problem at once.
func (s *Scenario) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if s.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", s.FPS))
	}
	if s.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %g", s.Duration))
	}
	if len(s.Modes) > 0 {
		if _, err := handik.DecodeModesPatch(s.Modes); err != nil {
			errs = append(errs, err)
		}
	}
	for i, st := range s.Steps {
		if st.At < 0 {
			errs = append(errs, fmt.Errorf("step %d: at must not be negative", i))
		}
		if st.At > s.Duration {
			errs = append(errs, fmt.Errorf("step %d: at %g is past the duration %g", i, st.At, s.Duration))
		}
		if !KnownAction(st.Action) {
			errs = append(errs, fmt.Errorf("step %d: unknown action %q", i, st.Action))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidScenario, s.Name, errors.Join(errs...))
	}
	return nil
}

// KnownAction reports whether a step action can be replayed.
func KnownAction(action string) bool {
	return slices.Contains(handik.InputKinds, action) || slices.Contains(engineActions, action)
}

// Frames is the number of frames needed to cover the duration.
func (s *Scenario) Frames() int {
	n := int(s.Duration*float64(s.FPS) + 0.5)
	if n < 1 {
		n = 1
	}
	return n
}
