package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 7500*time.Millisecond, cfg.NotificationTimeout())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notifications:\n  timeout_ms: 3000\nlog:\n  file: /tmp/todo.log\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.NotificationTimeout())
	assert.Equal(t, "/tmp/todo.log", cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "default", cfg.Display.Theme)
	assert.Equal(t, Default().Database.Path, cfg.Database.Path)
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("notifications:\n  timeout_ms: -1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	for name, body := range map[string]string{
		"timeout above max": "notifications:\n  timeout_ms: 30001\n",
		"unknown log level": "log:\n  level: loud\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			_, err := Load(path)
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Database.Path = "/data/todo.db"
	cfg.Display.ShowCompleted = true
	cfg.Notifications.TimeoutMS = 1200

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/todo.db", got.Database.Path)
	assert.True(t, got.Display.ShowCompleted)
	assert.Equal(t, 1200, got.Notifications.TimeoutMS)
}
