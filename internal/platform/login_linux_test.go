//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginService_EnableDisable(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	service := NewLoginService()
	item := LoginItem{Name: "Pomodoro", Command: []string{"/opt/my apps/pomodoro", "tray"}}

	enabled, err := service.Enabled(item.Name)
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.Enable(item))

	path := filepath.Join(configHome, "autostart", "pomodoro.desktop")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Name=Pomodoro\n")
	assert.Contains(t, string(content), `Exec="/opt/my apps/pomodoro" tray`)

	enabled, err = service.Enabled(item.Name)
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, service.Disable(item.Name))
	require.NoError(t, service.Disable(item.Name))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoginService_EnableRejectsEmptyItem(t *testing.T) {
	service := NewLoginService()

	err := service.Enable(LoginItem{Command: []string{"pomodoro"}})
	assert.ErrorContains(t, err, "name is empty")

	err = service.Enable(LoginItem{Name: "pomodoro"})
	assert.ErrorContains(t, err, "command is empty")
}
