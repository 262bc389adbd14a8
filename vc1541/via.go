// Package vc1541 emulates the 1541 disk drive: its own 6502, VIA1 (the
// serial-bus side), VIA2 (the head/motor side), and the GCR bit-stream
// head logic that ties them to a disk.Disk, grounded on
// original_source/Emulator/Drive/Drive.h and its sibling VIA model
// (HoxsVIA.cpp/.hpp), per spec's Open Question directing the
// timing-accurate ("Hoxs") VIA over a coarser polled one.
package vc1541

// VIA implements a MOS 6522 Versatile Interface Adapter: two 8-bit ports
// with data-direction registers, two timers, a control-register-driven
// handshake pair (CA1/CA2, CB1/CB2), and an interrupt flag/enable
// register pair. Register layout matches the 4-bit RS address space
// other 6522 cores expose (ORB/IRB 0x0, ORA/IRA 0x1, DDRB 0x2, DDRA 0x3,
// T1C-L/H 0x4/0x5, T1L-L/H 0x6/0x7, T2C-L/H 0x8/0x9, SR 0xA, ACR 0xB,
// PCR 0xC, IFR 0xD, IER 0xE, ORA-no-handshake 0xF), and the timer/IFR
// semantics follow HoxsVIA.hpp's delay/feed pipeline fields
// (timer1_counter/latch, timer2_counter/latch, acr, pcr, ifr, ier).
type VIA struct {
	ora, orb   uint8
	ira, irb   uint8
	ddra, ddrb uint8

	t1c, t1l uint16
	t2c, t2l uint16
	t2PulseCounting bool // ACR bit5

	acr uint8
	pcr uint8

	ifr uint8
	ier uint8

	pb7 bool // toggled output when ACR bit7 (PB7 timer-out mode) is set

	ca1, ca2, cb1, cb2 bool // current input/output line levels

	Ports Ports
	irq   Interrupts
}

// Ports is the peripheral wiring a VIA drives: port A/B reads consult the
// connected hardware (IEC bus lines for VIA1, disk head/motor lines for
// VIA2) masked by the data direction register the same way cia.Ports
// does for the two CIAs.
type Ports interface {
	ReadPA(ddr, latch uint8) uint8
	ReadPB(ddr, latch uint8) uint8
	WritePA(value uint8)
	WritePB(value uint8)
}

type floatingPorts struct{}

func (floatingPorts) ReadPA(ddr, latch uint8) uint8 { return latch | ^ddr }
func (floatingPorts) ReadPB(ddr, latch uint8) uint8 { return latch | ^ddr }
func (floatingPorts) WritePA(value uint8)           {}
func (floatingPorts) WritePB(value uint8)           {}

// Interrupts is how a VIA asserts the drive CPU's IRQ line.
type Interrupts interface {
	Pull()
	Release()
}

type noopInterrupts struct{}

func (noopInterrupts) Pull()    {}
func (noopInterrupts) Release() {}

const (
	ifrCA2 = 1 << 0
	ifrCA1 = 1 << 1
	ifrSR  = 1 << 2
	ifrCB2 = 1 << 3
	ifrCB1 = 1 << 4
	ifrT2  = 1 << 5
	ifrT1  = 1 << 6
	ifrIRQ = 1 << 7
)

// NewVIA returns a VIA with floating ports and no interrupt sink; wire
// real ones in with Plumb.
func NewVIA() *VIA {
	return &VIA{Ports: floatingPorts{}, irq: noopInterrupts{}}
}

// Plumb attaches the host-specific port wiring and interrupt sink.
func (v *VIA) Plumb(ports Ports, irq Interrupts) {
	v.Ports = ports
	v.irq = irq
}

// Reset returns the VIA to its power-on state (6522 reset clears
// everything except the two timer counters/latches).
func (v *VIA) Reset() {
	ports, irq := v.Ports, v.irq
	*v = VIA{Ports: ports, irq: irq, t1c: v.t1c, t1l: v.t1l, t2c: v.t2c, t2l: v.t2l}
	v.acr, v.pcr, v.ifr, v.ier = 0, 0, 0, 0
}

func (v *VIA) setIFR(bit uint8) {
	v.ifr |= bit
	if v.ifr&v.ier&0x7F != 0 {
		v.ifr |= ifrIRQ
		v.irq.Pull()
	}
}

// Cycle advances both timers by one clock cycle and updates IFR/IRQ.
func (v *VIA) Cycle() {
	if v.t1c == 0 {
		v.t1c = 0xFFFF
		v.setIFR(ifrT1)
		if v.acr&0x80 != 0 {
			v.pb7 = !v.pb7
		}
		if v.acr&0x40 != 0 { // free-run mode: reload from latch
			v.t1c = v.t1l
		}
	} else {
		v.t1c--
	}

	if !v.t2PulseCounting {
		if v.t2c == 0 {
			v.t2c = 0xFFFF
			v.setIFR(ifrT2)
		} else {
			v.t2c--
		}
	}
}

// PulseT2 decrements timer 2 once when it is configured in pulse-
// counting mode (ACR bit5), driven by an external signal (PB6 edges)
// rather than phi2. vc1541.Drive does not call it.
func (v *VIA) PulseT2() {
	if !v.t2PulseCounting {
		return
	}
	if v.t2c == 0 {
		v.t2c = 0xFFFF
		v.setIFR(ifrT2)
	} else {
		v.t2c--
	}
}

// SetCA1/SetCA2/SetCB1/SetCB2 drive the VIA's handshake input lines;
// each reports whether a negative (high-to-low) edge occurred so the
// caller can use it as a control-line strobe the way byte-ready/SYNC
// pulses drive VIA2's CA1.
func (v *VIA) SetCA1(level bool) (negEdge bool) {
	negEdge = v.ca1 && !level
	v.ca1 = level
	if negEdge {
		v.setIFR(ifrCA1)
	}
	return negEdge
}

func (v *VIA) SetCA2(level bool) (negEdge bool) {
	negEdge = v.ca2 && !level
	v.ca2 = level
	if negEdge {
		v.setIFR(ifrCA2)
	}
	return negEdge
}

func (v *VIA) SetCB1(level bool) (negEdge bool) {
	negEdge = v.cb1 && !level
	v.cb1 = level
	if negEdge {
		v.setIFR(ifrCB1)
	}
	return negEdge
}

func (v *VIA) SetCB2(level bool) (negEdge bool) {
	negEdge = v.cb2 && !level
	v.cb2 = level
	if negEdge {
		v.setIFR(ifrCB2)
	}
	return negEdge
}

// GetCB2 reports CB2's current level; vc1541.Drive reads this as the
// read/write mode line (CB2 high = read mode).
func (v *VIA) GetCB2() bool { return v.cb2 }

// Peek reads one of the 16 VIA registers at addr&0x0F.
func (v *VIA) Peek(addr uint16) uint8 {
	switch addr & 0x0F {
	case 0x0:
		v.clearCB1CB2OnRead()
		return v.Ports.ReadPB(v.ddrb, v.orb)
	case 0x1:
		v.clearCA1CA2OnRead()
		return v.Ports.ReadPA(v.ddra, v.ora)
	case 0x2:
		return v.ddrb
	case 0x3:
		return v.ddra
	case 0x4:
		v.ifr &^= ifrT1
		return uint8(v.t1c)
	case 0x5:
		return uint8(v.t1c >> 8)
	case 0x6:
		return uint8(v.t1l)
	case 0x7:
		return uint8(v.t1l >> 8)
	case 0x8:
		v.ifr &^= ifrT2
		return uint8(v.t2c)
	case 0x9:
		return uint8(v.t2c >> 8)
	case 0xA:
		return 0 // shift register: no serial shifting modeled
	case 0xB:
		return v.acr
	case 0xC:
		return v.pcr
	case 0xD:
		return v.ifr
	case 0xE:
		return v.ier | 0x80
	case 0xF:
		return v.Ports.ReadPA(v.ddra, v.ora)
	}
	return 0xFF
}

func (v *VIA) clearCA1CA2OnRead() {
	if v.pcr&0x0E != 0x0A { // not independent-interrupt CA2 mode
		v.ifr &^= ifrCA2
	}
	v.ifr &^= ifrCA1
}

func (v *VIA) clearCB1CB2OnRead() {
	if v.pcr&0xE0 != 0xA0 {
		v.ifr &^= ifrCB2
	}
	v.ifr &^= ifrCB1
}

// Poke writes one of the 16 VIA registers at addr&0x0F.
func (v *VIA) Poke(addr uint16, value uint8) {
	switch addr & 0x0F {
	case 0x0:
		v.orb = value
		v.Ports.WritePB(v.orb & v.ddrb)
		v.clearCB1CB2OnRead()
	case 0x1:
		v.ora = value
		v.Ports.WritePA(v.ora & v.ddra)
		v.clearCA1CA2OnRead()
	case 0x2:
		v.ddrb = value
	case 0x3:
		v.ddra = value
	case 0x4:
		v.t1l = (v.t1l & 0xFF00) | uint16(value)
	case 0x5:
		v.t1l = (v.t1l & 0x00FF) | uint16(value)<<8
		v.t1c = v.t1l
		v.ifr &^= ifrT1
		v.pb7 = false
	case 0x6:
		v.t1l = (v.t1l & 0xFF00) | uint16(value)
	case 0x7:
		v.t1l = (v.t1l & 0x00FF) | uint16(value)<<8
	case 0x8:
		v.t2l = (v.t2l & 0xFF00) | uint16(value)
	case 0x9:
		v.t2l = (v.t2l & 0x00FF) | uint16(value)<<8
		v.t2c = v.t2l
		v.ifr &^= ifrT2
	case 0xA:
		// shift register: writes accepted, no serial shifting modeled
	case 0xB:
		v.acr = value
		v.t2PulseCounting = value&0x20 != 0
	case 0xC:
		v.pcr = value
	case 0xD:
		v.ifr &^= (value &^ ifrIRQ)
		if v.ifr&v.ier&0x7F == 0 {
			v.ifr &^= ifrIRQ
			v.irq.Release()
		}
	case 0xE:
		if value&0x80 != 0 {
			v.ier |= value & 0x7F
		} else {
			v.ier &^= value & 0x7F
		}
	case 0xF:
		v.ora = value
		v.Ports.WritePA(v.ora & v.ddra)
	}
}

type viaState struct {
	ORA, ORB, DDRA, DDRB uint8
	T1C, T1L, T2C, T2L   uint16
	ACR, PCR, IFR, IER   uint8
	PB7                  bool
}

// SaveState/RestoreState support machine.Snapshot.
func (v *VIA) SaveState() interface{} {
	return viaState{v.ora, v.orb, v.ddra, v.ddrb, v.t1c, v.t1l, v.t2c, v.t2l, v.acr, v.pcr, v.ifr, v.ier, v.pb7}
}

func (v *VIA) RestoreState(state interface{}) error {
	if s, ok := state.(viaState); ok {
		v.ora, v.orb, v.ddra, v.ddrb = s.ORA, s.ORB, s.DDRA, s.DDRB
		v.t1c, v.t1l, v.t2c, v.t2l = s.T1C, s.T1L, s.T2C, s.T2L
		v.acr, v.pcr, v.ifr, v.ier, v.pb7 = s.ACR, s.PCR, s.IFR, s.IER, s.PB7
		v.t2PulseCounting = v.acr&0x20 != 0
	}
	return nil
}
