package console

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"ringzero/internal/keyboard"
)

// HostConsole adapts a real terminal to the Console interface: raw mode
// via golang.org/x/term, a background goroutine reading stdin bytes
// non-blockingly via golang.org/x/sys/unix and feeding them through a
// keyboard.HostFeed, and ANSI cursor escapes standing in for direct VGA
// cell writes. Grounded directly on terminal_host.go's TerminalHost.
type HostConsole struct {
	fd       int
	oldState *term.State

	col, row int
	mu       sync.Mutex

	feed *keyboard.HostFeed
	keys *keyboard.Manager

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewHostConsole puts stdin into raw mode and starts the read-and-feed
// goroutine that routes host key presses into manager.
func NewHostConsole(manager *keyboard.Manager) (*HostConsole, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("console: failed to enter raw mode: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		term.Restore(fd, oldState)
		return nil, fmt.Errorf("console: failed to set stdin non-blocking: %w", err)
	}

	c := &HostConsole{
		fd:       fd,
		oldState: oldState,
		feed:     keyboard.NewHostFeed(manager),
		keys:     manager,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *HostConsole) readLoop() {
	defer close(c.doneCh)
	buf := make([]byte, 1)
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}
		n, err := unix.Read(c.fd, buf)
		if err != nil || n == 0 {
			time.Sleep(time.Millisecond)
			continue
		}
		b := buf[0]
		switch b {
		case '\r':
			b = '\n'
		case 0x7F:
			b = '\b'
		}
		c.feed.Feed(b)
	}
}

// Stop restores the terminal's original mode and stops the read loop.
func (c *HostConsole) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
		<-c.doneCh
		term.Restore(c.fd, c.oldState)
	})
}

func (c *HostConsole) Print(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(os.Stdout, s)
	for _, r := range s {
		if r == '\n' {
			c.col = 0
			c.row++
		} else {
			c.col++
		}
	}
}

func (c *HostConsole) Println(s string) { c.Print(s + "\n") }

func (c *HostConsole) SetCursor(col, row int) {
	c.mu.Lock()
	c.col, c.row = col, row
	c.mu.Unlock()
	fmt.Fprintf(os.Stdout, "\x1b[%d;%dH", row+1, col+1)
}

func (c *HostConsole) GetCursor() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.col, c.row
}

func (c *HostConsole) Clear() {
	c.mu.Lock()
	c.col, c.row = 0, 0
	c.mu.Unlock()
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H")
}

func (c *HostConsole) Getch() byte {
	for {
		kd, ok := c.keys.GetKey()
		if !ok {
			time.Sleep(time.Millisecond)
			continue
		}
		if kd.ASCII != 0 {
			return kd.ASCII
		}
	}
}
