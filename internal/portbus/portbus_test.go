package portbus

import "testing"

type fakeDevice struct {
	reg byte
}

func (d *fakeDevice) In(port uint16) byte   { return d.reg }
func (d *fakeDevice) Out(port uint16, v byte) { d.reg = v }

func TestMapAndDispatch(t *testing.T) {
	bus := New()
	dev := &fakeDevice{}
	bus.Map(0x60, 0x64, dev)

	bus.Out(0x60, 0x42)
	if got := bus.In(0x60); got != 0x42 {
		t.Fatalf("expected 0x42, got %#x", got)
	}
}

func TestUnmappedPortReadsOpenBus(t *testing.T) {
	bus := New()
	if got := bus.In(0x1234); got != 0xFF {
		t.Fatalf("expected open-bus 0xFF, got %#x", got)
	}
}

func TestLaterMappingWins(t *testing.T) {
	bus := New()
	first := &fakeDevice{reg: 1}
	second := &fakeDevice{reg: 2}
	bus.Map(0x70, 0x71, first)
	bus.Map(0x70, 0x71, second)
	if got := bus.In(0x70); got != 2 {
		t.Fatalf("expected second mapping to win, got %#x", got)
	}
}
