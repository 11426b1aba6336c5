package keyboard

import (
	"testing"
	"time"

	"ringzero/internal/cpuctl"
	"ringzero/internal/portbus"
)

func newTestManager() *Manager {
	bus := portbus.New()
	ctrl := NewController(bus)
	cpu := cpuctl.New(time.Now())
	return NewManager(cpu, ctrl)
}

func TestGetKeyFalseWhenEmpty(t *testing.T) {
	m := newTestManager()
	_, ok := m.GetKey()
	if ok {
		t.Fatal("GetKey on an empty queue must report false, not true")
	}
}

func TestPostScanCodeDeliversKey(t *testing.T) {
	m := newTestManager()
	m.PostScanCode(0x1E) // 'a' make code
	kd, ok := m.GetKey()
	if !ok {
		t.Fatal("expected a queued key")
	}
	if kd.ASCII != 'a' {
		t.Fatalf("got %q, want 'a'", kd.ASCII)
	}
}

func TestControllerHandshakeACKs(t *testing.T) {
	bus := portbus.New()
	ctrl := NewController(bus)
	if !ctrl.Activate() {
		t.Fatal("expected Activate to receive an ACK from the simulated controller")
	}
	if !ctrl.ChangeLED(LEDCapsLock) {
		t.Fatal("expected ChangeLED to receive an ACK")
	}
}
