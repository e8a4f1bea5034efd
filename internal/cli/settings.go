package cli

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

// timerOverrides are the settings that flags and POMODORO_* variables can override.
type timerOverrides struct {
	Work              time.Duration `mapstructure:"work"`
	ShortBreak        time.Duration `mapstructure:"short_break"`
	LongBreak         time.Duration `mapstructure:"long_break"`
	Rollover          time.Duration `mapstructure:"rollover"`
	LongBreakInterval int           `mapstructure:"long_break_interval"`
	Schedule          string        `mapstructure:"schedule"`
	Addr              string        `mapstructure:"addr"`
}

var timerFlagKeys = map[string]string{
	"work":                "work",
	"short-break":         "short_break",
	"long-break":          "long_break",
	"rollover":            "rollover",
	"long-break-interval": "long_break_interval",
	"schedule":            "schedule",
	"addr":                "addr",
}

// AddTimerFlags adds the settings override flags shared by every host.
func AddTimerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.Duration("work", 0, "work session length (e.g. 25m)")
	flags.Duration("short-break", 0, "short break earned per session")
	flags.Duration("long-break", 0, "long break earned every --long-break-interval sessions")
	flags.Duration("rollover", 0, "window for taking a break before work restarts")
	flags.Int("long-break-interval", 0, "sessions per long break")
	flags.String("schedule", "", "cron expression that starts work sessions (e.g. \"0 9 * * 1-5\")")
	flags.String("addr", "", "listen address for the HTTP API")
	flags.String("settings", "", "settings file (default: user config dir)")
}

// settingsPath returns --settings, POMODORO_SETTINGS, or the default location.
func settingsPath(cmd *cobra.Command) (string, error) {
	v := viper.New()
	v.SetEnvPrefix("POMODORO")
	if err := v.BindEnv("settings"); err != nil {
		return "", err
	}
	if flag := cmd.Flags().Lookup("settings"); flag != nil {
		if err := v.BindPFlag("settings", flag); err != nil {
			return "", err
		}
	}
	if path := v.GetString("settings"); path != "" {
		return path, nil
	}
	return storage.DefaultPath(appName)
}

// resolveSettings loads the settings file and applies environment and flag
// overrides. Precedence: flag > env > file > default.
func resolveSettings(cmd *cobra.Command) (preferences.Settings, string, error) {
	path, err := settingsPath(cmd)
	if err != nil {
		return preferences.Settings{}, "", err
	}

	base, err := storage.LoadFile(path)
	if err != nil {
		return preferences.Settings{}, path, err
	}

	settings, err := applyOverrides(base, cmd.Flags())
	if err != nil {
		return preferences.Settings{}, path, err
	}
	if err := settings.Validate(); err != nil {
		return preferences.Settings{}, path, err
	}
	return settings, path, nil
}

func applyOverrides(base preferences.Settings, flags *pflag.FlagSet) (preferences.Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("POMODORO")
	v.AutomaticEnv()

	v.SetDefault("work", base.Work)
	v.SetDefault("short_break", base.ShortBreak)
	v.SetDefault("long_break", base.LongBreak)
	v.SetDefault("rollover", base.Rollover)
	v.SetDefault("long_break_interval", base.LongBreakInterval)
	v.SetDefault("schedule", base.AutostartSchedule)
	v.SetDefault("addr", base.HTTPAddr)

	for flagName, key := range timerFlagKeys {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return base, fmt.Errorf("bind --%s: %w", flagName, err)
		}
	}

	var overrides timerOverrides
	if err := v.Unmarshal(&overrides, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)); err != nil {
		return base, fmt.Errorf("%w: %w", preferences.ErrInvalidSettings, err)
	}

	settings := base
	settings.Work = overrides.Work
	settings.ShortBreak = overrides.ShortBreak
	settings.LongBreak = overrides.LongBreak
	settings.Rollover = overrides.Rollover
	settings.LongBreakInterval = overrides.LongBreakInterval
	settings.AutostartSchedule = overrides.Schedule
	settings.HTTPAddr = overrides.Addr
	return settings, nil
}
