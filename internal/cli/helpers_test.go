package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

// executeCommand runs the root command with args against a temporary home.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(homeEnv, t.TempDir())
	t.Cleanup(CloseLogFile)

	var out bytes.Buffer
	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "1.2.3"})
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func tempSettingsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.yaml")
}
