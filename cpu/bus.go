package cpu

// Memory is the bus a CPU is plumbed into. The C64's mem.Memory and the
// VC1541's drive memory both implement it.
type Memory interface {
	Peek(addr uint16) uint8
	Poke(addr uint16, value uint8)
}

// Plumb replaces the bus the CPU talks to. Used when a snapshot is
// restored, or when the VC1541 drive's CPU is wired up after its memory is
// constructed.
func (c *CPU) Plumb(mem Memory) {
	c.mem = mem
}

func (c *CPU) read(addr uint16) uint8 {
	return c.mem.Peek(addr)
}

func (c *CPU) write(addr uint16, value uint8) {
	c.mem.Poke(addr, value)
}
