package platform

import (
	"os"
	"os/exec"
	"strings"
)

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	// xprintidle only sees X11 input; under Wayland it needs XWayland to be meaningful.
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") && os.Getenv("DISPLAY") == "" {
		return unsupportedIdleProvider{}
	}
	return &commandIdleProvider{path: path, parse: parseIdleMillis}
}
