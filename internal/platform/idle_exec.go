//go:build linux || darwin

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"time"
)

// commandIdleProvider runs an external tool and parses its output.
type commandIdleProvider struct {
	path  string
	args  []string
	parse func(string) (time.Duration, error)
}

func (provider *commandIdleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path, provider.args...).Output()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", filepath.Base(provider.path), err)
	}
	return provider.parse(string(output))
}
