package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/ports"
)

// ScenarioLoaderContractTest is a reusable test suite that verifies if an
// adapter complies with ports.ScenarioLoader. want maps scenario names to
// their step count.
func ScenarioLoaderContractTest(t *testing.T, loader ports.ScenarioLoader, want map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, steps := range want {
			s, err := loader.Load(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading scenario %s: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("name mismatch: got %q, want %q", s.Name, name)
			}
			if len(s.Steps) != steps {
				t.Errorf("%s: got %d steps, want %d", name, len(s.Steps), steps)
			}
			if s.FPS <= 0 {
				t.Errorf("%s: scenario was not normalized (fps %d)", name, s.FPS)
			}
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-scenario")
		if !errors.Is(err, domain.ErrScenarioNotFound) {
			t.Errorf("expected ErrScenarioNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing scenarios: %v", err)
		}
		if len(names) != len(want) {
			t.Errorf("expected %d scenarios, got %d", len(want), len(names))
		}
		lookup := make(map[string]bool)
		for _, n := range names {
			lookup[n] = true
		}
		for name := range want {
			if !lookup[name] {
				t.Errorf("scenario %s missing from list", name)
			}
		}
	})
}
