package cli

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/platform"
)

type fakeLoginService struct {
	items map[string]platform.LoginItem
	err   error
}

func (service *fakeLoginService) Enable(item platform.LoginItem) error {
	if service.err != nil {
		return service.err
	}
	service.items[item.Name] = item
	return nil
}

func (service *fakeLoginService) Disable(name string) error {
	delete(service.items, name)
	return service.err
}

func (service *fakeLoginService) Enabled(name string) (bool, error) {
	_, ok := service.items[name]
	return ok, service.err
}

func useFakeLogin(t *testing.T) *fakeLoginService {
	t.Helper()
	fake := &fakeLoginService{items: map[string]platform.LoginItem{}}
	previous := newLoginService
	newLoginService = func() platform.LoginService { return fake }
	t.Cleanup(func() { newLoginService = previous })
	return fake
}

func TestLoginCommand_EnableStatusDisable(t *testing.T) {
	fake := useFakeLogin(t)

	out, err := executeCommand(t, "login", "status")
	require.NoError(t, err)
	assert.Equal(t, "launch at login: disabled\n", out)

	out, err = executeCommand(t, "login", "enable")
	require.NoError(t, err)
	assert.Equal(t, "launch at login: enabled\n", out)

	item, ok := fake.items[appName]
	require.True(t, ok)
	require.Len(t, item.Command, 2)
	assert.Equal(t, "tray", item.Command[1])

	out, err = executeCommand(t, "login", "status")
	require.NoError(t, err)
	assert.Equal(t, "launch at login: enabled\n", out)

	_, err = executeCommand(t, "login", "disable")
	require.NoError(t, err)
	assert.Empty(t, fake.items)
}

func TestLoginCommand_EnableKeepsSettingsPath(t *testing.T) {
	fake := useFakeLogin(t)
	path := tempSettingsPath(t)

	out, err := executeCommand(t, "login", "enable", "--settings", path, "--output", "json")
	require.NoError(t, err)

	var status loginStatus
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Enabled)
	assert.Equal(t, appName, status.Name)

	command := fake.items[appName].Command
	require.Len(t, command, 4)
	assert.Equal(t, []string{"tray", "--settings"}, command[1:3])
	assert.True(t, filepath.IsAbs(command[3]))
}

func TestLoginCommand_ServiceError(t *testing.T) {
	fake := useFakeLogin(t)
	fake.err = errors.New("registry locked")

	_, err := executeCommand(t, "login", "enable")
	assert.ErrorContains(t, err, "registry locked")
}
