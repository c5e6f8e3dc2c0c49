package platform

import (
	"errors"
	"testing"
)

func TestAcquireSingleInstance(t *testing.T) {
	name := "TouchGrass-test-" + t.Name()

	guard, err := AcquireSingleInstance(name)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer guard.Release()

	if guard.Address() != InstanceAddress(name) {
		t.Errorf("Address() = %q, want %q", guard.Address(), InstanceAddress(name))
	}
	if guard.Listener() == nil {
		t.Fatal("expected listener")
	}

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second acquire error = %v, want %v", err, ErrAlreadyRunning)
	}

	if err := guard.Release(); err != nil {
		t.Errorf("Release() error = %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Errorf("second Release() error = %v", err)
	}
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("TouchGrass")
	if first != portFromName("TouchGrass") {
		t.Error("port changed between calls")
	}
	if first < 20000 || first > 39999 {
		t.Errorf("port %d out of range", first)
	}
}
