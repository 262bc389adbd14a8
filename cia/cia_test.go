package cia

import "testing"

type pulledInterrupts struct{ pulled, released int }

func (p *pulledInterrupts) Pull()    { p.pulled++ }
func (p *pulledInterrupts) Release() { p.released++ }

func TestTimerACountsDownAndFiresIRQ(t *testing.T) {
	c := New()
	irq := &pulledInterrupts{}
	c.Plumb(floatingPorts{}, irq)
	c.Reset()

	c.Poke(0x04, 0x03) // latch low = 3
	c.Poke(0x05, 0x00) // latch high = 0, also forces counter=latch
	c.Poke(0x0D, 0x81) // unmask timer A interrupt
	c.Poke(0x0E, 0x01) // start timer A, continuous

	for i := 0; i < 10 && irq.pulled == 0; i++ {
		c.Cycle()
	}
	if irq.pulled == 0 {
		t.Fatalf("timer A underflow should have pulled the interrupt line")
	}
}

func TestICRReadClearsPendingFlags(t *testing.T) {
	c := New()
	c.Plumb(floatingPorts{}, &pulledInterrupts{})
	c.Reset()
	c.icr = 0x81
	if got := c.Peek(0x0D); got != 0x81 {
		t.Fatalf("Peek(ICR) = %#02x, want 81", got)
	}
	if c.icr != 0 {
		t.Fatalf("reading ICR should clear it, got %#02x", c.icr)
	}
}

func TestPortDDRMasksWrites(t *testing.T) {
	c := New()
	var lastA uint8
	ports := writeRecordingPorts{onWriteA: func(v uint8) { lastA = v }}
	c.Plumb(&ports, &pulledInterrupts{})
	c.Reset()
	c.Poke(0x02, 0x0F) // DDRA: low nibble output
	c.Poke(0x00, 0xFF) // write all 1s to PA
	if lastA != 0x0F {
		t.Fatalf("WritePA saw %#02x, want 0F (masked by DDR)", lastA)
	}
}

type writeRecordingPorts struct {
	onWriteA func(uint8)
}

func (p *writeRecordingPorts) ReadPA(ddr, latch uint8) uint8 { return latch }
func (p *writeRecordingPorts) ReadPB(ddr, latch uint8) uint8 { return latch }
func (p *writeRecordingPorts) WritePA(value uint8) {
	if p.onWriteA != nil {
		p.onWriteA(value)
	}
}
func (p *writeRecordingPorts) WritePB(value uint8) {}

func TestTODWriteHoursStopsClock(t *testing.T) {
	c := New()
	c.Plumb(floatingPorts{}, &pulledInterrupts{})
	c.Reset()
	c.tod.cyclesPerTenth = 1
	c.Poke(0x0B, 0x01) // write hours: stops the clock
	before := c.tod.tenths
	c.Cycle()
	c.Cycle()
	if c.tod.tenths != before {
		t.Fatalf("TOD should be stopped after a write to the hours register")
	}
	c.Poke(0x08, 0x00) // write tenths: restarts it
	c.Cycle()
	if c.tod.tenths == before {
		t.Fatalf("TOD should resume once tenths is written")
	}
}

func TestIdleSleepEntersAndWakesAcrossLongCount(t *testing.T) {
	c := New()
	c.Plumb(floatingPorts{}, &pulledInterrupts{})
	c.Reset()

	c.Poke(0x04, 0x00) // latch low
	c.Poke(0x05, 0x01) // latch high = 0x0100 = 256, also loads counterA
	c.Poke(0x0D, 0x81) // unmask timer A interrupt
	c.Poke(0x0E, 0x01) // start timer A, continuous

	for i := 0; i < idleThreshold+1; i++ {
		c.Cycle()
	}
	if c.awake {
		t.Fatalf("CIA should have gone idle after %d stable cycles", idleThreshold)
	}

	for i := 0; i < 256+idleUnderflowMargin+4; i++ {
		c.Cycle()
	}
	if c.icr&0x01 == 0 {
		t.Fatalf("timer A underflow must still set ICR bit 0 despite having idled")
	}
}

func TestIdleSleepMatchesAlwaysAwakeReference(t *testing.T) {
	idle := New()
	idle.Plumb(floatingPorts{}, &pulledInterrupts{})
	idle.Reset()
	idle.Poke(0x04, 0x0A)
	idle.Poke(0x05, 0x00) // latchA = 10
	idle.Poke(0x0D, 0x81)
	idle.Poke(0x0E, 0x01)

	ref := New()
	ref.Plumb(floatingPorts{}, &pulledInterrupts{})
	ref.Reset()
	ref.Poke(0x04, 0x0A)
	ref.Poke(0x05, 0x00)
	ref.Poke(0x0D, 0x81)
	ref.Poke(0x0E, 0x01)

	for i := 0; i < 40; i++ {
		idle.Cycle()
		ref.cycleAwake() // never allowed to idle: always takes the full path
		if idle.counterA != ref.counterA {
			t.Fatalf("cycle %d: counterA = %d, reference = %d", i, idle.counterA, ref.counterA)
		}
		if idle.icr != ref.icr {
			t.Fatalf("cycle %d: icr = %#02x, reference = %#02x", i, idle.icr, ref.icr)
		}
	}
}
