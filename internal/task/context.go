// Package task implements the process/context model: a fixed-size saved
// register context, the process control block, and the fixed-capacity
// process pool, transcribed from process/mod.rs's Context/Process/
// ProcessPool.
package task

import "ringzero/internal/physmem"

// Context is the saved register frame swapped in and out of the IST
// region on every context switch: general-purpose registers, then the
// interrupt-frame tail (RIP/CS/RFLAGS/RSP/SS) in the order the CPU expects
// to find them for IRETQ.
type Context struct {
	R15, R14, R13, R12, R11, R10, R9, R8 uint64
	RDI, RSI, RBP, RDX, RCX, RBX, RAX    uint64
	IntVector, ErrorCode                 uint64
	RIP, CS, RFlags, RSP, SS             uint64
}

// Size is the byte length of a serialized Context (22 quadwords).
const Size = 22 * 8

// WriteTo serializes c into mem at offset addr.
func (c *Context) WriteTo(mem *physmem.Region, addr uint64) {
	fields := c.fields()
	for i, v := range fields {
		mem.WriteUint64(addr+uint64(i)*8, v)
	}
}

// ReadContext deserializes a Context from mem at offset addr.
func ReadContext(mem *physmem.Region, addr uint64) Context {
	var c Context
	ptrs := c.fieldPtrs()
	for i, p := range ptrs {
		*p = mem.ReadUint64(addr + uint64(i)*8)
	}
	return c
}

func (c *Context) fields() []uint64 {
	return []uint64{
		c.R15, c.R14, c.R13, c.R12, c.R11, c.R10, c.R9, c.R8,
		c.RDI, c.RSI, c.RBP, c.RDX, c.RCX, c.RBX, c.RAX,
		c.IntVector, c.ErrorCode,
		c.RIP, c.CS, c.RFlags, c.RSP, c.SS,
	}
}

func (c *Context) fieldPtrs() []*uint64 {
	return []*uint64{
		&c.R15, &c.R14, &c.R13, &c.R12, &c.R11, &c.R10, &c.R9, &c.R8,
		&c.RDI, &c.RSI, &c.RBP, &c.RDX, &c.RCX, &c.RBX, &c.RAX,
		&c.IntVector, &c.ErrorCode,
		&c.RIP, &c.CS, &c.RFlags, &c.RSP, &c.SS,
	}
}
