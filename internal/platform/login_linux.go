//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *loginService) Enable(item LoginItem) error {
	if err := item.validate("enable"); err != nil {
		return err
	}

	path, err := desktopEntryPath(item.Name)
	if err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable login item: create autostart dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildDesktopEntry(item)), 0o644); err != nil {
		return fmt.Errorf("enable login item: write desktop entry: %w", err)
	}
	return nil
}

func (service *loginService) Disable(name string) error {
	path, err := desktopEntryPath(name)
	if err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable login item: remove desktop entry: %w", err)
	}
	return nil
}

func (service *loginService) Enabled(name string) (bool, error) {
	path, err := desktopEntryPath(name)
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopEntryPath(name string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "autostart", slug(name)+".desktop"), nil
}

func buildDesktopEntry(item LoginItem) string {
	args := make([]string, 0, len(item.Command))
	for _, arg := range item.Command {
		if strings.ContainsAny(arg, " \t") && !strings.HasPrefix(arg, `"`) {
			arg = `"` + arg + `"`
		}
		args = append(args, arg)
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		item.Name,
		strings.Join(args, " "),
	)
}
