package platform

import (
	"fmt"
	"os/exec"
	"time"
)

type idleProvider struct {
	run cmdExecutor
}

func newIdleProvider() IdleProvider {
	return &idleProvider{run: func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).Output()
	}}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := provider.run("ioreg", "-c", "IOHIDSystem", "-d", "4")
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseHIDIdleTime(output)
}
