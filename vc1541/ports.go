package vc1541

// via1Ports wires VIA1's port B to the IEC serial bus. Per spec's IEC
// line inversion decision: VIA1's view of bits 0 (DATA IN), 2 (CLK IN),
// and 7 (ATN IN) is inverted relative to the bus's true electrical
// level, while the output bits (1 = DATA OUT, 3 = CLK OUT) are not.
type via1Ports struct {
	drive      *Drive
	driven     uint8 // last masked output value written to PB
}

func (p *via1Ports) ReadPA(ddr, latch uint8) uint8 { return latch | ^ddr }

func (p *via1Ports) ReadPB(ddr, latch uint8) uint8 {
	// DATA IN, CLK IN and ATN IN read 1 while the bus line is pulled low.
	var in uint8 = 0xFF &^ (0x01 | 0x04 | 0x80)
	if p.drive.bus != nil {
		if p.drive.bus.DATA() {
			in |= 0x01
		}
		if p.drive.bus.CLK() {
			in |= 0x04
		}
		if p.drive.bus.ATN() {
			in |= 0x80
		}
	}
	return (latch & ddr) | (in &^ ddr)
}

func (p *via1Ports) WritePA(value uint8) {}

func (p *via1Ports) WritePB(value uint8) {
	p.driven = value
	if p.drive.bus != nil {
		p.drive.bus.Update()
	}
}

// Pulls implements iec.Device: PB1 drives DATA, PB3 drives CLK; this
// drive never pulls ATN.
func (p *via1Ports) Pulls() (atn, clk, data bool) {
	return false, p.driven&0x08 != 0, p.driven&0x02 != 0
}

// BusChanged implements iec.Device; an ATN transition is visible to the
// drive program the next time it reads port B, so nothing further to do
// here beyond what ReadPB already derives live from the bus.
func (p *via1Ports) BusChanged(atn, clk, data bool) {}

// via2Ports wires VIA2's ports to the head/motor hardware: port A is the
// GCR data byte (read shift register latch on read, write shift register
// source on write), port B carries the stepper-motor phase (bits 0-1),
// motor on/off (bit 2), drive LED (bit 3), write-protect sense (bit 4,
// input), and the density/zone bits (bits 5-6), per
// original_source/Emulator/Drive/Drive.h's zone/LED/stepper fields.
type via2Ports struct {
	drive *Drive
}

func (p *via2Ports) ReadPA(ddr, latch uint8) uint8 {
	return (latch & ddr) | (uint8(p.drive.readShiftReg) &^ ddr)
}

func (p *via2Ports) WritePA(value uint8) {}

func (p *via2Ports) ReadPB(ddr, latch uint8) uint8 {
	var in uint8 = 0xFF
	if p.drive.Disk == nil || p.drive.Disk.WriteProtected {
		in &^= 0x10
	}
	return (latch & ddr) | (in &^ ddr)
}

func (p *via2Ports) WritePB(value uint8) {
	prevPhase := p.drive.stepperPhase
	phase := value & 0x03
	if phase != prevPhase {
		if (prevPhase+1)&0x03 == phase {
			p.drive.moveHeadUp()
		} else if (phase+1)&0x03 == prevPhase {
			p.drive.moveHeadDown()
		}
		p.drive.stepperPhase = phase
	}
	p.drive.spinning = value&0x04 != 0
	p.drive.redLED = value&0x08 != 0
	p.drive.setZone((value >> 5) & 0x03)
}
