package platform

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrLoginUnsupported indicates launch-at-login is not available on this system.
var ErrLoginUnsupported = errors.New("launch at login unsupported")

// LoginItem is a command started when the user logs in.
type LoginItem struct {
	Name    string
	Command []string
}

func (item LoginItem) validate(action string) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%s login item: name is empty", action)
	}
	if len(item.Command) == 0 || item.Command[0] == "" {
		return fmt.Errorf("%s login item: command is empty", action)
	}
	return nil
}

// LoginService registers and removes login items.
type LoginService interface {
	Enable(item LoginItem) error
	Disable(name string) error
	Enabled(name string) (bool, error)
}

type loginService struct{}

// NewLoginService returns the launch-at-login implementation for this OS.
func NewLoginService() LoginService {
	return &loginService{}
}

func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err == nil && dir != "" {
		return dir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return fallbackConfigDir(homeDir), nil
}

func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "pomodoro"
	}
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
