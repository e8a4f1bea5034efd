package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pomodoro/internal/platform"
)

//nolint:gochecknoglobals // swapped in tests
var newLoginService = platform.NewLoginService

type loginStatus struct {
	Name    string   `json:"name"`
	Enabled bool     `json:"enabled"`
	Command []string `json:"command,omitempty"`
}

// AddLoginCommand adds the login command group to the root command.
func AddLoginCommand(root *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start the tray timer when you log in",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Launch the tray timer at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			item, err := trayLoginItem(cmd)
			if err != nil {
				return err
			}
			if err := newLoginService().Enable(item); err != nil {
				return err
			}
			GetLogger().Info().Strs("command", item.Command).Msg("login item enabled")
			return printLoginStatus(cmd, flags, loginStatus{Name: item.Name, Enabled: true, Command: item.Command})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Stop launching the tray timer at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := newLoginService().Disable(appName); err != nil {
				return err
			}
			GetLogger().Info().Msg("login item disabled")
			return printLoginStatus(cmd, flags, loginStatus{Name: appName})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Report whether the tray timer launches at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enabled, err := newLoginService().Enabled(appName)
			if err != nil {
				return err
			}
			return printLoginStatus(cmd, flags, loginStatus{Name: appName, Enabled: enabled})
		},
	})

	root.AddCommand(cmd)
}

// trayLoginItem builds the command that starts the tray, keeping an explicit settings file.
func trayLoginItem(cmd *cobra.Command) (platform.LoginItem, error) {
	executable, err := os.Executable()
	if err != nil {
		return platform.LoginItem{}, fmt.Errorf("resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}

	command := []string{executable, "tray"}
	if cmd.Flags().Changed("settings") {
		path, err := cmd.Flags().GetString("settings")
		if err != nil {
			return platform.LoginItem{}, err
		}
		if absolute, err := filepath.Abs(path); err == nil {
			path = absolute
		}
		command = append(command, "--settings", path)
	}
	return platform.LoginItem{Name: appName, Command: command}, nil
}

func printLoginStatus(cmd *cobra.Command, flags *GlobalFlags, status loginStatus) error {
	if flags.Output == OutputJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(status)
	}
	state := "disabled"
	if status.Enabled {
		state = "enabled"
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "launch at login: %s\n", state)
	return err
}
