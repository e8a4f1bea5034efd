//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *loginService) Enable(item LoginItem) error {
	if err := item.validate("enable"); err != nil {
		return err
	}

	output, err := exec.Command(
		"reg", "add", registryRunKey,
		"/v", item.Name,
		"/t", "REG_SZ",
		"/d", windowsCommandLine(item.Command),
		"/f",
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("enable login item: reg add failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *loginService) Disable(name string) error {
	enabled, err := service.Enabled(name)
	if err != nil || !enabled {
		return err
	}

	output, err := exec.Command("reg", "delete", registryRunKey, "/v", name, "/f").CombinedOutput()
	if err != nil {
		return fmt.Errorf("disable login item: reg delete failed: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (service *loginService) Enabled(name string) (bool, error) {
	// reg query exits non-zero when the value is absent.
	if err := exec.Command("reg", "query", registryRunKey, "/v", name).Run(); err != nil {
		return false, nil
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func windowsCommandLine(command []string) string {
	args := make([]string, 0, len(command))
	for index, arg := range command {
		trimmed := strings.Trim(arg, `"`)
		if index == 0 || strings.ContainsAny(trimmed, " \t") {
			trimmed = `"` + trimmed + `"`
		}
		args = append(args, trimmed)
	}
	return strings.Join(args, " ")
}
