package platform

import "os/exec"

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &commandIdleProvider{
		path:  path,
		args:  []string{"-c", "IOHIDSystem", "-d", "4"},
		parse: parseHIDIdleTime,
	}
}
