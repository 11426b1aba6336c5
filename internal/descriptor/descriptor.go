// Package descriptor builds the GDT, TSS and IDT byte layouts the x86-64
// CPU reads to know its segments and interrupt handlers, writing them into
// a physmem.Region at the fixed addresses the kernel boots with, the way
// descriptor.rs packs the same structures into physical memory.
package descriptor

import "ringzero/internal/physmem"

// Fixed addresses and selectors, carried from the reference kernel.
const (
	GDTRStartAddress = 0x142000
	IDTRStartAddress = 0x143000

	KernelCodeSegment = 0x08
	KernelDataSegment = 0x10
	TSSSegment        = 0x18

	ISTStartAddress = 0x700000
	ISTSize         = 0x100000

	gdtEntrySize  = 8
	tssDescSize   = 16
	idtEntrySize  = 16
	idtEntryCount = 100

	gdtrSize = 10 // 2-byte limit + 8-byte base
	idtrSize = 10
)

// GDT access byte flags for a present, ring-0 code/data/TSS descriptor.
const (
	accessCode = 0x9A
	accessData = 0x92
	accessTSS  = 0x89
	flagsLong  = 0xA0 // granularity=1, long-mode(L)=1 for code/data
)

// Tables writes the GDT, TSS and IDT into region at fixed addresses.
type Tables struct {
	region *physmem.Region
}

// New constructs descriptor tables writer bound to region.
func New(region *physmem.Region) *Tables {
	return &Tables{region: region}
}

// BuildGDT writes the null, kernel-code, kernel-data and TSS descriptors,
// then the GDTR, at GDTRStartAddress.
func (t *Tables) BuildGDT() {
	base := uint64(GDTRStartAddress) + gdtrSize
	entries := base

	// entry 0: null descriptor
	t.writeGDTEntry(entries, 0, 0, 0, 0)
	entries += gdtEntrySize

	// entry 1: kernel code (selector 0x08)
	t.writeGDTEntry(entries, 0, 0xFFFFF, accessCode, flagsLong)
	entries += gdtEntrySize

	// entry 2: kernel data (selector 0x10)
	t.writeGDTEntry(entries, 0, 0xFFFFF, accessData, flagsLong)
	entries += gdtEntrySize

	// entry 3: TSS descriptor (selector 0x18), 16 bytes wide, pointing at
	// the TSS body that directly follows the GDT
	const tssSize = 104
	tss := entries + tssDescSize
	t.writeTSSDescriptor(entries, tss, tssSize-1)
	entries += tssDescSize

	limit := uint16(entries - base - 1)
	t.writeGDTR(uint64(GDTRStartAddress), limit, base)

	// TSS body: zeroed except IST[0] (offset 36), which points one byte
	// past the end of the IST region, and the I/O map base (offset 102).
	for off := uint64(0); off < tssSize; off += 8 {
		t.region.WriteUint64(tss+off, 0)
	}
	t.region.WriteUint64(tss+36, ISTStartAddress+ISTSize)
	t.region.WriteUint16(tss+102, 0xFFFF)
}

func (t *Tables) writeGDTR(addr uint64, limit uint16, tableBase uint64) {
	t.region.WriteUint16(addr, limit)
	t.region.WriteUint64(addr+2, tableBase)
}

func (t *Tables) writeGDTEntry(addr uint64, base uint32, limit uint32, access, flags byte) {
	t.region.WriteUint16(addr, uint16(limit&0xFFFF))
	t.region.WriteUint16(addr+2, uint16(base&0xFFFF))
	t.region.WriteUint8(addr+4, uint8((base>>16)&0xFF))
	t.region.WriteUint8(addr+5, access)
	t.region.WriteUint8(addr+6, flags|uint8((limit>>16)&0x0F))
	t.region.WriteUint8(addr+7, uint8((base>>24)&0xFF))
}

func (t *Tables) writeTSSDescriptor(addr uint64, base uint64, limit uint32) {
	t.region.WriteUint16(addr, uint16(limit&0xFFFF))
	t.region.WriteUint16(addr+2, uint16(base&0xFFFF))
	t.region.WriteUint8(addr+4, uint8((base>>16)&0xFF))
	t.region.WriteUint8(addr+5, accessTSS)
	t.region.WriteUint8(addr+6, uint8((limit>>16)&0x0F))
	t.region.WriteUint8(addr+7, uint8((base>>24)&0xFF))
	t.region.WriteUint32(addr+8, uint32(base>>32))
	t.region.WriteUint32(addr+12, 0) // reserved
}

// BuildIDT zeroes out idtEntryCount gates pointing nowhere (present=0)
// and writes the IDTR; callers install real handlers with SetGate.
func (t *Tables) BuildIDT() {
	base := uint64(IDTRStartAddress) + idtrSize
	for i := 0; i < idtEntryCount; i++ {
		t.clearGate(base + uint64(i)*idtEntrySize)
	}
	limit := uint16(idtEntryCount*idtEntrySize - 1)
	t.writeGDTR(uint64(IDTRStartAddress), limit, base)
}

func (t *Tables) clearGate(addr uint64) {
	for i := uint64(0); i < idtEntrySize; i += 8 {
		t.region.WriteUint64(addr+i, 0)
	}
}

// SetGate installs an interrupt gate for vector pointing at handlerAddr,
// selecting the kernel code segment and always IST index 1.
func (t *Tables) SetGate(vector int, handlerAddr uint64) {
	addr := uint64(IDTRStartAddress) + idtrSize + uint64(vector)*idtEntrySize
	const istIndex = 1
	const typeAttr = 0x8E // present, DPL=0, 64-bit interrupt gate

	t.region.WriteUint16(addr, uint16(handlerAddr&0xFFFF))
	t.region.WriteUint16(addr+2, KernelCodeSegment)
	t.region.WriteUint8(addr+4, istIndex)
	t.region.WriteUint8(addr+5, typeAttr)
	t.region.WriteUint16(addr+6, uint16((handlerAddr>>16)&0xFFFF))
	t.region.WriteUint32(addr+8, uint32(handlerAddr>>32))
	t.region.WriteUint32(addr+12, 0)
}

// Gate describes a decoded IDT entry, used by tests to verify SetGate's
// encoding round-trips.
type Gate struct {
	HandlerAddr uint64
	Selector    uint16
	IST         uint8
	TypeAttr    uint8
	Present     bool
}

// Gate decodes the IDT entry for vector.
func (t *Tables) Gate(vector int) Gate {
	addr := uint64(IDTRStartAddress) + idtrSize + uint64(vector)*idtEntrySize
	low := uint64(t.region.ReadUint16(addr))
	mid := uint64(t.region.ReadUint16(addr + 6))
	high := uint64(t.region.ReadUint32(addr + 8))
	typeAttr := t.region.ReadUint8(addr + 5)
	return Gate{
		HandlerAddr: low | mid<<16 | high<<32,
		Selector:    t.region.ReadUint16(addr + 2),
		IST:         t.region.ReadUint8(addr + 4),
		TypeAttr:    typeAttr,
		Present:     typeAttr&0x80 != 0,
	}
}
