//go:build !linux && !darwin && !windows

package platform

import "path/filepath"

func (service *loginService) Enable(LoginItem) error {
	return ErrLoginUnsupported
}

func (service *loginService) Disable(string) error {
	return ErrLoginUnsupported
}

func (service *loginService) Enabled(string) (bool, error) {
	return false, ErrLoginUnsupported
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
