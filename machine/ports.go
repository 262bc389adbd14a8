package machine

import (
	"github.com/vc64/core/cia"
	"github.com/vc64/core/cpu"
	"github.com/vc64/core/iec"
)

// cia1Ports wires CIA1's port A (keyboard matrix columns, joystick 2) and
// port B (keyboard matrix rows, joystick 1) with no keys held and no
// joystick plugged in: every input bit floats high, matching an idle,
// unattended machine. Input beyond spec.md's scope (no keyboard module is
// named) is intentionally not modeled.
type cia1Ports struct{}

func (cia1Ports) ReadPA(ddr, latch uint8) uint8 { return latch | ^ddr }
func (cia1Ports) ReadPB(ddr, latch uint8) uint8 { return latch | ^ddr }
func (cia1Ports) WritePA(value uint8)           {}
func (cia1Ports) WritePB(value uint8)           {}

// cia2Ports wires CIA2's port A to the IEC serial bus, following the
// same "true bit means actively pulling" convention vc1541.via1Ports uses
// for VIA1's side: bit 3 drives ATN, bit 4 drives CLK, bit 5 drives DATA;
// bits 6-7 (CLK IN/DATA IN) read back the bus's combined level. Bits 0-1
// (VIC bank select) have no VIC-II in this core and float high.
type cia2Ports struct {
	bus    *iec.Bus
	driven uint8
}

func (p *cia2Ports) ReadPA(ddr, latch uint8) uint8 {
	var in uint8 = 0xFF
	if p.bus != nil {
		if p.bus.CLK() {
			in &^= 0x40
		}
		if p.bus.DATA() {
			in &^= 0x80
		}
	}
	return (latch & ddr) | (in &^ ddr)
}

func (cia2Ports) ReadPB(ddr, latch uint8) uint8 { return latch | ^ddr }
func (cia2Ports) WritePB(value uint8)           {}

func (p *cia2Ports) WritePA(value uint8) {
	p.driven = value
	if p.bus != nil {
		p.bus.Update()
	}
}

// Pulls implements iec.Device.
func (p *cia2Ports) Pulls() (atn, clk, data bool) {
	return p.driven&0x08 != 0, p.driven&0x10 != 0, p.driven&0x20 != 0
}

// BusChanged implements iec.Device; the C64 side has no dedicated input
// latch beyond what ReadPA already derives live from the bus each read.
func (p *cia2Ports) BusChanged(atn, clk, data bool) {}

// cia1Interrupts pulls the CPU's IRQ line; cia2Interrupts pulls NMI,
// matching spec.md §4.3 ("CIA1 ... feeds the CPU's IRQ line ... CIA2
// ... feeds NMI").
type cia1Interrupts struct{ c *cpu.CPU }

func (i cia1Interrupts) Pull()    { i.c.PullIRQ(cpu.SourceCIA) }
func (i cia1Interrupts) Release() { i.c.ReleaseIRQ(cpu.SourceCIA) }

type cia2Interrupts struct{ c *cpu.CPU }

func (i cia2Interrupts) Pull()    { i.c.PullNMI(cpu.SourceCIA) }
func (i cia2Interrupts) Release() { i.c.ReleaseNMI(cpu.SourceCIA) }

var _ cia.Ports = (*cia1Ports)(nil)
var _ cia.Ports = (*cia2Ports)(nil)
var _ cia.Interrupts = cia1Interrupts{}
var _ cia.Interrupts = cia2Interrupts{}
