package console

import (
	"strings"

	"ringzero/internal/keyboard"
)

// BufferConsole is an in-memory Console used by package tests and
// headless boots, grounded on terminal_io.go's output ring buffer but
// backed by a plain strings.Builder since nothing here needs the MMIO
// register shape the original terminal device exposes.
type BufferConsole struct {
	out      strings.Builder
	col, row int
	keys     *keyboard.Manager
}

// NewBufferConsole returns a console that records output and pulls key
// events from manager (which may be nil for output-only tests).
func NewBufferConsole(manager *keyboard.Manager) *BufferConsole {
	return &BufferConsole{keys: manager}
}

func (c *BufferConsole) Print(s string) {
	c.out.WriteString(s)
	for _, r := range s {
		if r == '\n' {
			c.col = 0
			c.row++
		} else {
			c.col++
		}
	}
}

func (c *BufferConsole) Println(s string) { c.Print(s + "\n") }

func (c *BufferConsole) SetCursor(col, row int) { c.col, c.row = col, row }

func (c *BufferConsole) GetCursor() (int, int) { return c.col, c.row }

func (c *BufferConsole) Clear() {
	c.out.Reset()
	c.col, c.row = 0, 0
}

// Getch returns the next queued key event's ASCII byte. Unlike the
// Console contract it does not block: it returns 0 when no manager was
// given or no key with an ASCII byte is queued.
func (c *BufferConsole) Getch() byte {
	if c.keys == nil {
		return 0
	}
	for {
		kd, ok := c.keys.GetKey()
		if ok && kd.ASCII != 0 {
			return kd.ASCII
		}
		if !ok {
			return 0
		}
	}
}

// Output returns everything printed so far, for test assertions.
func (c *BufferConsole) Output() string { return c.out.String() }
