package console

import (
	"testing"
	"time"

	"ringzero/internal/cpuctl"
	"ringzero/internal/keyboard"
	"ringzero/internal/portbus"
)

func TestBufferConsolePrintTracksCursor(t *testing.T) {
	c := NewBufferConsole(nil)
	c.Print("hi\nthere")
	if got := c.Output(); got != "hi\nthere" {
		t.Fatalf("Output() = %q", got)
	}
	col, row := c.GetCursor()
	if col != len("there") || row != 1 {
		t.Fatalf("cursor = (%d,%d), want (%d,1)", col, row, len("there"))
	}
}

func TestBufferConsoleGetchDrainsKeyboardManager(t *testing.T) {
	bus := portbus.New()
	ctrl := keyboard.NewController(bus)
	cpu := cpuctl.New(time.Now())
	mgr := keyboard.NewManager(cpu, ctrl)
	mgr.PostScanCode(0x1E) // 'a'

	c := NewBufferConsole(mgr)
	if got := c.Getch(); got != 'a' {
		t.Fatalf("Getch() = %q, want 'a'", got)
	}
}
