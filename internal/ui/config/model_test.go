package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/nhle/todo/internal/config"
)

func TestStartPrefillsFromConfig(t *testing.T) {
	m := New("", 80, 24)
	cfg := *appconfig.Default()
	cfg.Notifications.TimeoutMS = 3000
	cfg.Display.ShowCompleted = true

	m.Start(cfg)

	assert.Equal(t, "3000", m.fb.timeoutMS)
	assert.True(t, m.fb.showCompleted)
	assert.Equal(t, "info", m.fb.logLevel)
	assert.Contains(t, m.View(), "Settings")
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, validateTimeout("0"))
	assert.NoError(t, validateTimeout(" 7500 "))
	assert.NoError(t, validateTimeout("30000"))
	assert.Error(t, validateTimeout("30001"))
	assert.Error(t, validateTimeout("-1"))
	assert.Error(t, validateTimeout("soon"))
}

func TestSaveInMemory(t *testing.T) {
	m := New("", 80, 24)
	m.Start(*appconfig.Default())
	m.fb.timeoutMS = "1200"
	m.fb.logLevel = "debug"

	msg, ok := m.save()().(SavedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.Equal(t, 1200, msg.Config.Notifications.TimeoutMS)
	assert.Equal(t, "debug", msg.Config.Log.Level)
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := New(path, 80, 24)
	m.Start(*appconfig.Default())
	m.fb.timeoutMS = "2500"
	m.fb.showCompleted = true

	msg := m.save()().(SavedMsg)
	require.NoError(t, msg.Err)

	loaded, err := appconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2500, loaded.Notifications.TimeoutMS)
	assert.True(t, loaded.Display.ShowCompleted)
}
