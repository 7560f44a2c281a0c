package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/scenario"
)

// Loader implements ports.ScenarioLoader using an in-memory map.
type Loader struct {
	scenarios map[string][]byte
}

// NewLoader creates a new Loader from raw YAML documents keyed by name.
func NewLoader(data map[string]string) *Loader {
	scenarios := make(map[string][]byte)
	for k, v := range data {
		scenarios[k] = []byte(v)
	}
	return &Loader{scenarios: scenarios}
}

// NewFromScenarios creates a Loader from scenario values.
// This handles serialization automatically, improving DX for tests.
func NewFromScenarios(list ...scenario.Scenario) (*Loader, error) {
	data := make(map[string][]byte)
	for _, s := range list {
		if s.Name == "" {
			return nil, fmt.Errorf("scenario missing name")
		}
		raw, err := scenario.Marshal(&s)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal scenario %s: %w", s.Name, err)
		}
		data[s.Name] = raw
	}
	return &Loader{scenarios: data}, nil
}

// Load parses the scenario stored under name. The stored document decides
// the scenario's name only when it sets none.
func (l *Loader) Load(ctx context.Context, name string) (*scenario.Scenario, error) {
	raw, ok := l.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
	}
	s, err := scenario.ParseNamed(name, raw)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List returns all available scenario names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.scenarios))
	for k := range l.scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
