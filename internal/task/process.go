package task

// Priority levels, 0 (highest) through 4 (lowest), plus the WAIT
// pseudo-priority used for blocked processes.
const (
	PriorityHighest = 0
	PriorityLowest  = 4
	PriorityCount   = 5

	PriorityWait = 0xFF
)

// Flag bits packed into Process.Flags; priority occupies the low byte.
const (
	FlagEndTask  = 0x8000000000000000
	FlagIdleTask = 0x0800000000000000
)

// Process is one task's control block: its saved register context, pool
// identity, scheduling flags, and stack bounds.
type Process struct {
	ID         uint64
	Context    Context
	Flags      uint64
	StackBase  uint64
	StackSize  uint64
	used       bool
	generation uint32
}

// Priority extracts the priority encoded in the low byte of Flags.
func (p *Process) Priority() int {
	return int(p.Flags & 0xFF)
}

// SetPriority replaces the priority bits, leaving the rest of Flags intact.
func (p *Process) SetPriority(priority int) {
	p.Flags = p.Flags&^0xFF | uint64(priority&0xFF)
}

// IsEndTask reports whether the end-task flag is set.
func (p *Process) IsEndTask() bool { return p.Flags&FlagEndTask != 0 }

// IsIdleTask reports whether the idle-task flag is set.
func (p *Process) IsIdleTask() bool { return p.Flags&FlagIdleTask != 0 }

// Set installs entry/stack fields and priority flags for a freshly
// allocated process, matching process/mod.rs's Process::set.
func (p *Process) Set(priority int, entry, stackBase, stackSize uint64) {
	p.Flags = uint64(priority & 0xFF)
	p.StackBase = stackBase
	p.StackSize = stackSize
	p.Context = Context{
		RIP:     entry,
		RSP:     stackBase + stackSize,
		RBP:     stackBase + stackSize,
		RFlags:  0x202, // IF set, reserved bit 1 set
		CS:      0x08,
		SS:      0x10,
	}
}
