package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/handik/pkg/adapters/loam"
	"github.com/aretw0/handik/pkg/adapters/memory"
	"github.com/aretw0/handik/pkg/ports"
)

// OpenScenarios returns a loader for path. A directory is opened as a Loam
// repository; a single YAML file becomes a one-entry loader named after the
// file.
func OpenScenarios(path string) (ports.ScenarioLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	if info.IsDir() {
		return loam.Open(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenarios: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return memory.NewLoader(map[string]string{name: string(data)}), nil
}

// SelectScenarios resolves names against loader. No names selects every
// scenario in listing order.
func SelectScenarios(ctx context.Context, loader ports.ScenarioLoader, names []string) ([]string, error) {
	if len(names) > 0 {
		return names, nil
	}
	all, err := loader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no scenarios found")
	}
	return all, nil
}
