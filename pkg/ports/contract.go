package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/handik/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a SnapshotStore
// implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	profileID := "contract-profile-" + time.Now().Format("20060102150405")

	snapshot := func(id string) domain.Snapshot {
		m := domain.DefaultModes()
		m.KeyboardAndMouse = domain.KeyboardAndMousePresentation
		m.AlwaysHandDown = true
		return domain.Snapshot{
			ProfileID:   id,
			Modes:       m,
			LeftTarget:  domain.TargetKeyboard,
			RightTarget: domain.TargetPresentation,
			SavedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		want := snapshot(profileID)
		require.NoError(t, store.Save(ctx, want), "Save should not return error")

		got, err := store.Load(ctx, profileID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, want.Modes, got.Modes)
		assert.Equal(t, want.RightTarget, got.RightTarget)
		assert.True(t, want.SavedAt.Equal(got.SavedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		next := snapshot(profileID)
		next.Modes.AlwaysHandDown = false
		require.NoError(t, store.Save(ctx, next))

		got, err := store.Load(ctx, profileID)
		require.NoError(t, err)
		assert.False(t, got.Modes.AlwaysHandDown)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+profileID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, snapshot(profileID)))
		require.NoError(t, store.Delete(ctx, profileID), "Delete should not return error")

		_, err := store.Load(ctx, profileID)
		assert.ErrorIs(t, err, domain.ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
		assert.NoError(t, store.Delete(ctx, profileID), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := profileID + "-1"
		id2 := profileID + "-2"
		require.NoError(t, store.Save(ctx, snapshot(id1)))
		require.NoError(t, store.Save(ctx, snapshot(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		profiles, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, profiles, id1)
		assert.Contains(t, profiles, id2)
	})
}
