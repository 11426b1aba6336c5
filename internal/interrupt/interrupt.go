// Package interrupt is the vector dispatch table: the single chokepoint
// every simulated hardware event (a PIT tick, a keyboard IRQ, a raised
// exception) routes through, standing in for the IDT's per-vector entry
// stubs on a hosted runtime where there is no real CPU frame to push and
// pop. Vector naming follows gopheros's gate_amd64.go style.
package interrupt

// Number identifies an interrupt vector, either a CPU exception (0-19) or
// a remapped IRQ (0x20 and up).
type Number int

// CPU exception vectors, named the way gopheros's gate_amd64.go names its
// InterruptNumber constants.
const (
	DivideByZero Number = iota
	Debug
	NMI
	Breakpoint
	Overflow
	BoundRangeExceeded
	InvalidOpcode
	DeviceNotAvailable
	DoubleFault
	CoprocessorSegmentOverrun
	InvalidTSS
	SegmentNotPresent
	StackSegmentFault
	GeneralProtectionFault
	PageFault
	_reserved15
	X87FloatingPoint
	AlignmentCheck
	MachineCheck
	SIMDFloatingPoint
)

// IRQ vectors, after PIC remapping places them at 0x20.
const (
	IRQBase  Number = 0x20
	IRQTimer        = IRQBase + 0
	IRQKeyboard     = IRQBase + 1
)

func (n Number) String() string {
	if name, ok := exceptionNames[n]; ok {
		return name
	}
	if n >= IRQBase {
		return "IRQ"
	}
	return "unknown"
}

var exceptionNames = map[Number]string{
	DivideByZero:              "divide-by-zero",
	Debug:                     "debug",
	NMI:                       "non-maskable-interrupt",
	Breakpoint:                "breakpoint",
	Overflow:                  "overflow",
	BoundRangeExceeded:        "bound-range-exceeded",
	InvalidOpcode:             "invalid-opcode",
	DeviceNotAvailable:        "device-not-available",
	DoubleFault:               "double-fault",
	CoprocessorSegmentOverrun: "coprocessor-segment-overrun",
	InvalidTSS:                "invalid-tss",
	SegmentNotPresent:         "segment-not-present",
	StackSegmentFault:         "stack-segment-fault",
	GeneralProtectionFault:    "general-protection-fault",
	PageFault:                 "page-fault",
	X87FloatingPoint:          "x87-floating-point",
	AlignmentCheck:            "alignment-check",
	MachineCheck:              "machine-check",
	SIMDFloatingPoint:         "simd-floating-point",
}

// Handler services one vector. Dispatch calls it directly: the CPU's
// interrupt flag is left as it is and no register state is saved or
// restored around the call.
type Handler func(vector Number)

// Table is the vector dispatch table, the software stand-in for the IDT's
// handler addresses.
type Table struct {
	handlers [256]Handler
}

// NewTable returns an empty dispatch table.
func NewTable() *Table {
	return &Table{}
}

// Install registers handler for vector, overwriting any previous handler.
func (t *Table) Install(vector Number, handler Handler) {
	t.handlers[vector&0xFF] = handler
}

// Dispatch invokes the handler installed for vector, if any. Unhandled
// vectors are silently ignored rather than panicking, matching a real IDT
// with a present bit left clear simply faulting elsewhere; here there is
// nothing further to fault into, so it is a no-op.
func (t *Table) Dispatch(vector Number) {
	if h := t.handlers[vector&0xFF]; h != nil {
		h(vector)
	}
}
