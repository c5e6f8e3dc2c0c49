//go:build !linux

package platform

import (
	"time"

	"github.com/KayraNafi/TouchGrass/internal/core/timekeeper"
)

func subscribeIdleWatch(time.Duration) (*idleWatch, error) {
	return nil, timekeeper.ErrIdleUnsupported
}
