package vc1541

import "testing"

type fakePorts struct {
	pa, pb     uint8
	wroteA, wroteB uint8
}

func (p *fakePorts) ReadPA(ddr, latch uint8) uint8 { return (latch & ddr) | (p.pa &^ ddr) }
func (p *fakePorts) ReadPB(ddr, latch uint8) uint8 { return (latch & ddr) | (p.pb &^ ddr) }
func (p *fakePorts) WritePA(value uint8)           { p.wroteA = value }
func (p *fakePorts) WritePB(value uint8)           { p.wroteB = value }

type fakeIRQ struct{ pulled, released int }

func (f *fakeIRQ) Pull()    { f.pulled++ }
func (f *fakeIRQ) Release() { f.released++ }

func TestT1OneShotFiresAndReloadsFreeRun(t *testing.T) {
	v := NewVIA()
	irq := &fakeIRQ{}
	v.Plumb(&fakePorts{}, irq)
	v.Poke(0x4, 0x02) // T1C-L latch
	v.Poke(0x5, 0x00) // T1C-H, loads counter: t1c = 2
	v.acr = 0x40      // free-run mode

	v.Cycle() // t1c: 2 -> 1
	v.Cycle() // t1c: 1 -> 0
	v.Cycle() // underflow -> IFR set, reload from latch
	if v.ifr&ifrT1 == 0 {
		t.Fatalf("timer 1 underflow should set IFR bit 6")
	}
	if irq.pulled != 0 {
		t.Fatalf("IER has not enabled timer 1, so Pull() should not have been called, got %d calls", irq.pulled)
	}
}

func TestIERHighBitSetsMaskBitsInsteadOfReplacing(t *testing.T) {
	v := NewVIA()
	v.Plumb(&fakePorts{}, &fakeIRQ{})
	v.Poke(0xE, 0x80|ifrT1)
	v.Poke(0xE, 0x80|ifrCA1)
	if v.ier&ifrT1 == 0 || v.ier&ifrCA1 == 0 {
		t.Fatalf("writing IER with bit7 set should OR in new bits, not replace, got %#02x", v.ier)
	}
}

func TestIERLowBitClearsMaskBits(t *testing.T) {
	v := NewVIA()
	v.Plumb(&fakePorts{}, &fakeIRQ{})
	v.Poke(0xE, 0x80|ifrT1|ifrCA1)
	v.Poke(0xE, ifrT1) // bit7 clear: clears ifrT1 from the mask
	if v.ier&ifrT1 != 0 {
		t.Fatalf("writing IER with bit7 clear should clear the named bits")
	}
	if v.ier&ifrCA1 == 0 {
		t.Fatalf("unrelated mask bits should be untouched")
	}
}

func TestCA1NegativeEdgeSetsIFRAndPullsIRQ(t *testing.T) {
	v := NewVIA()
	irq := &fakeIRQ{}
	v.Plumb(&fakePorts{}, irq)
	v.Poke(0xE, 0x80|ifrCA1) // enable CA1 interrupt

	v.SetCA1(true)
	if edge := v.SetCA1(false); !edge {
		t.Fatalf("high-to-low transition on CA1 should report a negative edge")
	}
	if v.ifr&ifrCA1 == 0 {
		t.Fatalf("CA1 negative edge should set IFR bit 1")
	}
	if irq.pulled != 1 {
		t.Fatalf("Pull() should have been called once, got %d", irq.pulled)
	}
}

func TestPeekORBClearsCB1CB2Flags(t *testing.T) {
	v := NewVIA()
	v.Plumb(&fakePorts{}, &fakeIRQ{})
	v.Poke(0xE, 0x80|ifrCB1)
	v.SetCB1(true)
	v.SetCB1(false)
	if v.ifr&ifrCB1 == 0 {
		t.Fatalf("setup: CB1 edge should have set the flag")
	}
	v.Peek(0x0) // reading ORB/IRB clears CB1/CB2 flags
	if v.ifr&ifrCB1 != 0 {
		t.Fatalf("reading port B should clear the CB1 interrupt flag")
	}
}
