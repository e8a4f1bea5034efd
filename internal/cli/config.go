package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

// ErrSettingsExist indicates config init would overwrite a file.
var ErrSettingsExist = errors.New("settings file already exists")

// settingsView is the JSON form of config show.
type settingsView struct {
	Path                  string `json:"path"`
	WorkMinutes           int    `json:"work_minutes"`
	ShortBreakMinutes     int    `json:"short_break_minutes"`
	LongBreakMinutes      int    `json:"long_break_minutes"`
	RolloverSeconds       int    `json:"rollover_seconds"`
	LongBreakInterval     int    `json:"long_break_interval"`
	Bell                  bool   `json:"bell"`
	Notifications         bool   `json:"notifications"`
	IdlePause             bool   `json:"idle_pause"`
	IdlePauseAfterMinutes int    `json:"idle_pause_after_minutes"`
	AutostartSchedule     string `json:"autostart_schedule"`
	HTTPAddr              string `json:"http_addr"`
}

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create the settings file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, path, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			if flags.Output == OutputJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(newSettingsView(path, settings))
			}
			serialized, err := storage.Marshal(settings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, serialized)
			return err
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := settingsPath(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%w: %s (use --force to overwrite)", ErrSettingsExist, path)
			}
			if err := storage.SaveFile(path, preferences.DefaultSettings()); err != nil {
				return err
			}
			GetLogger().Info().Str("path", path).Msg("settings written")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := settingsPath(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	})

	root.AddCommand(cmd)
}

func newSettingsView(path string, settings preferences.Settings) settingsView {
	return settingsView{
		Path:                  path,
		WorkMinutes:           int(settings.Work.Minutes()),
		ShortBreakMinutes:     int(settings.ShortBreak.Minutes()),
		LongBreakMinutes:      int(settings.LongBreak.Minutes()),
		RolloverSeconds:       int(settings.Rollover.Seconds()),
		LongBreakInterval:     settings.LongBreakInterval,
		Bell:                  settings.Bell,
		Notifications:         settings.Notifications,
		IdlePause:             settings.IdlePause,
		IdlePauseAfterMinutes: int(settings.IdlePauseAfter.Minutes()),
		AutostartSchedule:     settings.AutostartSchedule,
		HTTPAddr:              settings.HTTPAddr,
	}
}
