package pic

import (
	"testing"

	"ringzero/internal/portbus"
)

func TestRemapUnmasksAfterInit(t *testing.T) {
	bus := portbus.New()
	p := New(bus)
	p.Remap(0x20, 0x28)

	if p.Master.imr != 0 || p.Slave.imr != 0 {
		t.Fatalf("expected both IMRs unmasked after remap, got master=%#x slave=%#x", p.Master.imr, p.Slave.imr)
	}
}

func TestMaskAndUnmask(t *testing.T) {
	bus := portbus.New()
	p := New(bus)
	p.Remap(0x20, 0x28)

	p.Mask(0xFFFF)
	if p.Master.imr != 0xFF || p.Slave.imr != 0xFF {
		t.Fatal("expected all IRQs masked")
	}
	p.Unmask(0)
	if p.Master.imr&0x01 != 0 {
		t.Fatal("IRQ0 should be unmasked")
	}
}

type eoiRecorder struct{ ports []uint16 }

func (r *eoiRecorder) In(port uint16) byte { return 0 }
func (r *eoiRecorder) Out(port uint16, v byte) {
	if v == eoiCode {
		r.ports = append(r.ports, port)
	}
}

func TestEOICascadesToSlave(t *testing.T) {
	bus := portbus.New()
	p := New(bus)
	rec := &eoiRecorder{}
	bus.Map(masterCommand, masterCommand, rec)
	bus.Map(slaveCommand, slaveCommand, rec)
	// IRQ >= 8 must still send EOI to the master too (cascade identity).
	p.EOI(9)
	if len(rec.ports) != 2 || rec.ports[0] != slaveCommand || rec.ports[1] != masterCommand {
		t.Fatalf("EOI(9) wrote to ports %#x, want slave then master", rec.ports)
	}
	rec.ports = nil
	p.EOI(1)
	if len(rec.ports) != 1 || rec.ports[0] != masterCommand {
		t.Fatalf("EOI(1) wrote to ports %#x, want master only", rec.ports)
	}
}
