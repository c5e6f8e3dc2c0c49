package platform

import (
	"fmt"
	"os/exec"
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
)

type idleProvider struct {
	xprintidlePath string
	run            cmdExecutor
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{xprintidlePath: path, run: defaultCmdExecutor}
}

func defaultCmdExecutor(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	output, err := provider.run(provider.xprintidlePath)
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseXprintidle(output)
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, timekeeper.ErrIdleUnsupported
}
