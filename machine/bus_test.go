package machine

import (
	"testing"

	"github.com/vc64/core/mem"
)

type fakeDeck struct {
	motor  bool
	sensed bool
}

func (f *fakeDeck) SetMotor(on bool) { f.motor = on }
func (f *fakeDeck) Sense() bool      { return f.sensed }

func TestProcessorPortPowerOnDefaults(t *testing.T) {
	m := mem.New()
	p := newProcessorPort(m, &fakeDeck{sensed: true})

	// power-on default (DDR $2F, latch $37): LORAM/HIRAM/CHAREN all set.
	if p.Peek(0x0000) != 0x2F {
		t.Fatalf("got ddr %#02x, want %#02x", p.Peek(0x0000), 0x2F)
	}
}

func TestProcessorPortWritesReachUnderlyingMemory(t *testing.T) {
	m := mem.New()
	p := newProcessorPort(m, &fakeDeck{sensed: true})

	p.Poke(0x0400, 0x42)
	if got := m.Peek(0x0400); got != 0x42 {
		t.Fatalf("got %#02x, want %#02x", got, 0x42)
	}
	if got := p.Peek(0x0400); got != 0x42 {
		t.Fatalf("Peek did not forward to underlying memory, got %#02x", got)
	}
}

func TestProcessorPortDrivesMotorOnBit5Write(t *testing.T) {
	m := mem.New()
	deck := &fakeDeck{sensed: true}
	p := newProcessorPort(m, deck)

	p.Poke(0x0000, 0xFF) // all bits output
	p.Poke(0x0001, 0x20) // bit 5 set -> motor on
	if !deck.motor {
		t.Fatalf("expected motor on after bit 5 set")
	}

	p.Poke(0x0001, 0x00)
	if deck.motor {
		t.Fatalf("expected motor off after bit 5 cleared")
	}
}

func TestProcessorPortReflectsCassetteSenseOnBit4(t *testing.T) {
	m := mem.New()
	deck := &fakeDeck{sensed: false} // a key is held down: sense pulled low
	p := newProcessorPort(m, deck)

	p.Poke(0x0000, 0x2F) // bit 4 is an input (DDR bit clear)
	if p.Peek(0x0001)&0x10 != 0 {
		t.Fatalf("expected sense bit clear when a datasette key is held")
	}

	deck.sensed = true
	if p.Peek(0x0001)&0x10 == 0 {
		t.Fatalf("expected sense bit set when no datasette key is held")
	}
}

func TestProcessorPortUndrivenBitsFloatHigh(t *testing.T) {
	m := mem.New()
	p := newProcessorPort(m, &fakeDeck{sensed: true})

	p.Poke(0x0000, 0x00) // every bit an input
	if p.Peek(0x0001) != 0xFF {
		t.Fatalf("got %#02x, want 0xFF with every bit floating", p.Peek(0x0001))
	}
}
