package machine

import "github.com/vc64/core/mem"

// processorPort wraps mem.Memory with the one piece of address decode the
// memory package deliberately leaves to its caller (mem/memory.go's
// SetProcessorPort doc comment): the 6510's own $0000/$0001 registers,
// which never reach RAM. $0000 is the data-direction register, $0001 the
// output latch; an undriven (input) bit floats high, so bits 0-2
// (LORAM/HIRAM/CHAREN) resolve to the latch value where the DDR bit is
// set and to 1 otherwise. Bit 4 (cassette sense, input-only) and bit 5
// (cassette motor, output-only) are wired to the datasette deck per
// spec.md §4.7.
type processorPort struct {
	mem *mem.Memory
	deck motorSense

	ddr   uint8
	latch uint8
}

// motorSense is the subset of *datasette.Deck the processor port drives.
type motorSense interface {
	SetMotor(on bool)
	Sense() bool
}

func newProcessorPort(m *mem.Memory, deck motorSense) *processorPort {
	p := &processorPort{mem: m, deck: deck, ddr: 0x2F, latch: 0x37}
	p.updateBanking()
	return p
}

func (p *processorPort) Peek(addr uint16) uint8 {
	switch addr {
	case 0x0000:
		return p.ddr
	case 0x0001:
		return p.readLatch()
	default:
		return p.mem.Peek(addr)
	}
}

func (p *processorPort) Poke(addr uint16, value uint8) {
	switch addr {
	case 0x0000:
		p.ddr = value
		p.updateBanking()
	case 0x0001:
		p.latch = value
		p.updateBanking()
		if p.deck != nil {
			p.deck.SetMotor(p.bit(5))
		}
	default:
		p.mem.Poke(addr, value)
	}
}

// bit reports the effective (driven-or-floating) value of port bit n.
func (p *processorPort) bit(n uint) bool {
	if p.ddr&(1<<n) != 0 {
		return p.latch&(1<<n) != 0
	}
	return true // undriven input bits float high
}

func (p *processorPort) readLatch() uint8 {
	v := p.latch & p.ddr
	v |= ^p.ddr // floating input bits read back high
	if p.ddr&0x10 == 0 && p.deck != nil && !p.deck.Sense() {
		v &^= 0x10
	}
	return v
}

func (p *processorPort) updateBanking() {
	p.mem.SetProcessorPort(p.bit(0), p.bit(1), p.bit(2))
}
