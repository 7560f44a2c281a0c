package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/scenario"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to the ScenarioLoader port.
type Loader struct {
	Repo *loam.TypedRepository[ScenarioMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ScenarioMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository at path.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric types consistent across adapters. Read-only
	// mode avoids Loam's dev sandbox, since scenarios are never written.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ScenarioMetadata](repo)), nil
}

// Load finds the document whose name (frontmatter name, or the document ID
// without extension) matches and parses its body.
func (l *Loader) Load(ctx context.Context, name string) (*scenario.Scenario, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	for _, doc := range docs {
		if docName(doc.ID, doc.Data) != name {
			continue
		}
		full, err := l.Repo.Get(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", doc.ID, err)
		}
		s, err := scenario.ParseNamed(name, []byte(full.Content))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", doc.ID, err)
		}
		// The frontmatter wins over the body.
		s.Name = name
		if doc.Data.Description != "" {
			s.Description = doc.Data.Description
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrScenarioNotFound, name)
}

// List returns the names of every scenario document.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := docName(doc.ID, doc.Data)
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: scenario '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func docName(id string, meta ScenarioMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return trimExtension(id)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
