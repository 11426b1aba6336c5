// Package console defines the print/cursor surface the kernel core
// consumes (the VGA text-mode renderer itself is a separate concern and
// is not implemented here) and provides two implementations: HostConsole,
// a real terminal adapter grounded on terminal_host.go/terminal_io.go, and
// BufferConsole, an in-memory stand-in used by tests and headless boots.
package console

// Console is the boundary the kernel's shell and fault reporter consume.
// Cursor coordinates are 0-indexed (column, row) over an 80x25 grid, the
// conventional VGA text-mode dimensions.
type Console interface {
	Print(s string)
	Println(s string)
	SetCursor(col, row int)
	GetCursor() (col, row int)
	Clear()
	// Getch blocks for the next decoded key event's ASCII byte; callers
	// that need special keys use the keyboard.Manager directly.
	Getch() byte
}

const (
	Columns = 80
	Rows    = 25
)
