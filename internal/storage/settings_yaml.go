package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes           int    `yaml:"work_minutes"`
	ShortBreakMinutes     int    `yaml:"short_break_minutes"`
	LongBreakMinutes      int    `yaml:"long_break_minutes"`
	RolloverSeconds       int    `yaml:"rollover_seconds"`
	LongBreakInterval     int    `yaml:"long_break_interval"`
	Bell                  *bool  `yaml:"bell,omitempty"`
	Notifications         *bool  `yaml:"notifications,omitempty"`
	IdlePause             bool   `yaml:"idle_pause"`
	IdlePauseAfterMinutes int    `yaml:"idle_pause_after_minutes"`
	AutostartSchedule     string `yaml:"autostart_schedule"`
	HTTPAddr              string `yaml:"http_addr"`
}

// DefaultPath returns the settings file location for appName.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadFile reads user preferences from path. A missing file or missing keys
// keep the defaults.
func LoadFile(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml %s: %w", path, err)
	}

	applyYamlSettings(&settings, fileData)
	if err := settings.Validate(); err != nil {
		return preferences.DefaultSettings(), fmt.Errorf("settings file %s: %w", path, err)
	}
	return settings, nil
}

// SaveFile writes user preferences to path, creating parent directories.
func SaveFile(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := Marshal(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Marshal renders settings in the file format.
func Marshal(settings preferences.Settings) ([]byte, error) {
	bell := settings.Bell
	notifications := settings.Notifications
	fileData := yamlSettings{
		WorkMinutes:           int(settings.Work / time.Minute),
		ShortBreakMinutes:     int(settings.ShortBreak / time.Minute),
		LongBreakMinutes:      int(settings.LongBreak / time.Minute),
		RolloverSeconds:       int(settings.Rollover / time.Second),
		LongBreakInterval:     settings.LongBreakInterval,
		Bell:                  &bell,
		Notifications:         &notifications,
		IdlePause:             settings.IdlePause,
		IdlePauseAfterMinutes: int(settings.IdlePauseAfter / time.Minute),
		AutostartSchedule:     settings.AutostartSchedule,
		HTTPAddr:              settings.HTTPAddr,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkMinutes > 0 {
		settings.Work = time.Duration(fileData.WorkMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreak = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreak = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.RolloverSeconds > 0 {
		settings.Rollover = time.Duration(fileData.RolloverSeconds) * time.Second
	}
	if fileData.LongBreakInterval > 0 {
		settings.LongBreakInterval = fileData.LongBreakInterval
	}
	if fileData.IdlePauseAfterMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseAfterMinutes) * time.Minute
	}
	if fileData.Bell != nil {
		settings.Bell = *fileData.Bell
	}
	if fileData.Notifications != nil {
		settings.Notifications = *fileData.Notifications
	}
	if addr := strings.TrimSpace(fileData.HTTPAddr); addr != "" {
		settings.HTTPAddr = addr
	}

	settings.IdlePause = fileData.IdlePause
	settings.AutostartSchedule = strings.TrimSpace(fileData.AutostartSchedule)
}
