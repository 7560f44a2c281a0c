package ports

import (
	"context"

	"github.com/aretw0/handik/pkg/scenario"
)

// ScenarioLoader retrieves scripted scenarios.
type ScenarioLoader interface {
	// Load returns the normalized scenario with the given name.
	// Returns domain.ErrScenarioNotFound if there is none.
	Load(ctx context.Context, name string) (*scenario.Scenario, error)

	// List returns the names of all available scenarios, sorted.
	List(ctx context.Context) ([]string, error)
}
