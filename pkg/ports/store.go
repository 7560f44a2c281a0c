package ports

import (
	"context"

	"github.com/aretw0/handik/pkg/domain"
)

// SnapshotStore persists mode snapshots keyed by avatar profile.
type SnapshotStore interface {
	// Save persists the snapshot under its ProfileID, replacing any previous one.
	Save(ctx context.Context, snap domain.Snapshot) error

	// Load retrieves the snapshot of a profile.
	// Returns domain.ErrSnapshotNotFound if the profile has none.
	Load(ctx context.Context, profileID string) (domain.Snapshot, error)

	// Delete removes the snapshot of a profile. Deleting a missing profile is not an error.
	Delete(ctx context.Context, profileID string) error

	// List returns the profiles that have a snapshot.
	List(ctx context.Context) ([]string, error)
}
