package kernel

import (
	"testing"
	"time"

	"ringzero/internal/console"
)

func TestBootWiresUpWithoutError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickIntervalMS = 5

	m := New(cfg)
	m.AttachConsole(console.NewBufferConsole(nil))
	if err := m.Boot(); err != nil {
		t.Fatalf("Boot() error: %v", err)
	}
	defer m.Shutdown()

	// Give the scheduler a few ticks to run the idle and shell tasks at
	// least once each without deadlocking.
	time.Sleep(50 * time.Millisecond)
}

func TestBootRequiresConsole(t *testing.T) {
	m := New(DefaultConfig())
	if err := m.Boot(); err == nil {
		t.Fatal("expected Boot to fail without AttachConsole")
	}
}
