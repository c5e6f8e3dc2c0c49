package platform

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var errHIDIdleTimeMissing = errors.New("HIDIdleTime not found in ioreg output")

type cmdExecutor func(name string, args ...string) ([]byte, error)

// parseXprintidle reads the millisecond counter printed by xprintidle.
func parseXprintidle(output []byte) (time.Duration, error) {
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

// parseHIDIdleTime extracts the nanosecond HIDIdleTime from ioreg output.
// Format: "HIDIdleTime" = 123456789
func parseHIDIdleTime(output []byte) (time.Duration, error) {
	for _, line := range bytes.Split(output, []byte("\n")) {
		text := string(bytes.TrimSpace(line))
		if !strings.Contains(text, "HIDIdleTime") {
			continue
		}
		parts := strings.Split(text, "=")
		if len(parts) != 2 {
			continue
		}
		value := strings.TrimSpace(strings.Trim(strings.TrimSpace(parts[1]), "\""))
		nanos, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse idle time value: %w", err)
		}
		if nanos < 0 {
			nanos = 0
		}
		return time.Duration(nanos), nil
	}
	return 0, errHIDIdleTimeMissing
}
