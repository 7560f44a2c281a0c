package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/handik/pkg/adapters/file"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/aretw0/handik/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.SnapshotStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSnapshotStoreContract(t, file.New(filepath.Join(t.TempDir(), "snapshots")))
}

func TestFileStore_EmptyDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))

	profiles, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestFileStore_RejectsPaths(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, store.Save(ctx, domain.Snapshot{ProfileID: id}), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
	}
}

func TestFileStore_WritesJSON(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	require.NoError(t, store.Save(context.Background(), domain.Snapshot{
		ProfileID:  "alice",
		LeftTarget: domain.TargetGamepad,
	}))

	data, err := os.ReadFile(filepath.Join(dir, "alice.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"left_target": "gamepad"`)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}
