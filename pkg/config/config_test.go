package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/handik/pkg/config"
	"github.com/aretw0/handik/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "handik.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, config.StoreMemory, cfg.Store.Driver)
	assert.Equal(t, domain.DefaultModes(), cfg.Modes.Modes())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
fps: 30
log_level: debug
modes:
  keyboard_and_mouse: 1
  hand_down_timeout: false
store:
  driver: redis
  ttl: 90s
motions:
  clips:
    - {name: wave, length: 2}
  words: {hi: wave}
`)
	t.Setenv("HANDIK_FPS", "120")
	t.Setenv("HANDIK_MODES_GAMEPAD", "1")
	t.Setenv("HANDIK_MOTIONS_SLOTS", "wave,bow")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 120, cfg.FPS, "env wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 90*time.Second, cfg.Store.TTL)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr, "unset keys keep their defaults")

	m := cfg.Modes.Modes()
	assert.Equal(t, domain.KeyboardAndMousePresentation, m.KeyboardAndMouse)
	assert.Equal(t, domain.GamepadMotionArcadeStick, m.Gamepad)
	assert.False(t, m.HandDownTimeout)

	assert.Equal(t, map[string]string{"hi": "wave"}, cfg.Motions.Words)
	assert.Equal(t, []string{"wave", "bow"}, cfg.Motions.Slots)
	require.Len(t, cfg.Motions.Clips, 1)
	assert.Equal(t, 2.0, cfg.Motions.Clips[0].Length)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, t.TempDir(), "fps: [")
	_, err = config.Load(path)
	assert.Error(t, err)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.FPS = 0
	cfg.LogLevel = "loud"
	cfg.Modes.Gamepad = 5
	cfg.Store.Driver = "etcd"

	err := cfg.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidConfig)
	for _, want := range []string{"fps", "loud", "modes.gamepad", "etcd"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestWatcher_Reloads(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "fps: 30\n")
	w, err := config.NewWatcher(path)
	require.NoError(t, err)
	assert.Equal(t, 30, w.Config().FPS)

	changed := make(chan int, 4)
	w.OnChange(func(c *config.Config) { changed <- c.FPS })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Watch(ctx))

	// An invalid file is reported and ignored.
	require.NoError(t, os.WriteFile(path, []byte("fps: 0\n"), 0o644))
	select {
	case err := <-w.Errors():
		assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload error reported")
	}
	assert.Equal(t, 30, w.Config().FPS)

	require.NoError(t, os.WriteFile(path, []byte("fps: 90\n"), 0o644))
	select {
	case fps := <-changed:
		assert.Equal(t, 90, fps)
	case <-time.After(3 * time.Second):
		t.Fatal("config was not reloaded")
	}
	assert.Equal(t, 90, w.Config().FPS)
}
