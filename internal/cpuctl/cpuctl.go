// Package cpuctl models the small set of CPU-level controls the rest of
// the kernel needs: the interrupt-enable flag, a monotonic cycle counter,
// and HLT. cpu_ie64.go keeps equivalent state (running, interruptsEnabled,
// a cycle counter) as atomics read from multiple goroutines; this package
// follows the same shape.
package cpuctl

import (
	"sync/atomic"
	"time"
)

// CPU holds the simulated control-register state for the one virtual core
// this kernel runs on.
type CPU struct {
	interruptsEnabled atomic.Bool
	halted            atomic.Bool
	wake              chan struct{}
	start             time.Time
}

// New returns a CPU with interrupts enabled, matching the state the kernel
// reaches once boot finishes enabling interrupts.
func New(start time.Time) *CPU {
	c := &CPU{wake: make(chan struct{}, 1), start: start}
	c.interruptsEnabled.Store(true)
	return c
}

// SetInterruptFlag sets RFLAGS.IF to enable and returns its previous value.
func (c *CPU) SetInterruptFlag(enable bool) (previous bool) {
	return c.interruptsEnabled.Swap(enable)
}

// InterruptsEnabled reports the current value of RFLAGS.IF.
func (c *CPU) InterruptsEnabled() bool {
	return c.interruptsEnabled.Load()
}

// Without runs f with interrupts disabled, restoring the previous flag
// value afterward, matching the kernel's without_interrupt idiom.
func (c *CPU) Without(f func()) {
	prev := c.SetInterruptFlag(false)
	defer c.SetInterruptFlag(prev)
	f()
}

// ReadTSC returns a monotonically increasing cycle count standing in for
// RDTSC, derived from wall-clock time the way cpu_ie64.go derives its
// instruction/cycle counters from time.Now().
func (c *CPU) ReadTSC() uint64 {
	const assumedHz = 1_000_000_000
	elapsed := time.Since(c.start)
	secs := uint64(elapsed / time.Second)
	frac := uint64(elapsed % time.Second)
	return secs*assumedHz + frac*assumedHz/uint64(time.Second)
}

// Halt parks the calling goroutine until Wake is called, standing in for
// HLT waiting on the next interrupt.
func (c *CPU) Halt() {
	c.halted.Store(true)
	<-c.wake
	c.halted.Store(false)
}

// Wake resumes a goroutine blocked in Halt. It is safe to call even when
// nothing is halted.
func (c *CPU) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Halted reports whether the CPU is currently parked in Halt.
func (c *CPU) Halted() bool {
	return c.halted.Load()
}
