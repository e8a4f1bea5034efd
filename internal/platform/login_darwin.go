//go:build darwin

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

	path, err := launchAgentPath(item.Name)
	if err != nil {
		return fmt.Errorf("enable login item: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("enable login item: create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(buildLaunchAgentPlist(launchAgentLabel(item.Name), item.Command)), 0o644); err != nil {
		return fmt.Errorf("enable login item: write plist: %w", err)
	}
	return nil
}

func (service *loginService) Disable(name string) error {
	path, err := launchAgentPath(name)
	if err != nil {
		return fmt.Errorf("disable login item: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable login item: remove plist: %w", err)
	}
	return nil
}

func (service *loginService) Enabled(name string) (bool, error) {
	path, err := launchAgentPath(name)
	if err != nil {
		return false, err
	}
	return fileExists(path)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}

func launchAgentPath(name string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, "Library", "LaunchAgents", launchAgentLabel(name)+".plist"), nil
}

func launchAgentLabel(name string) string {
	return "com.pomodoro." + slug(name)
}

func buildLaunchAgentPlist(label string, command []string) string {
	var args strings.Builder
	for _, arg := range command {
		fmt.Fprintf(&args, "\t\t<string>%s</string>\n", xmlEscape(arg))
	}

	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`,
		xmlEscape(label),
		args.String(),
	)
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
