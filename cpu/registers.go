package cpu

import "fmt"

// Status bit positions, named as in the original hardware documentation and
// in spec.md's description of the status byte.
const (
	nFlag = 0x80
	vFlag = 0x40
	uFlag = 0x20 // unused bit, always reads as 1
	bFlag = 0x10
	dFlag = 0x08
	iFlag = 0x04
	zFlag = 0x02
	cFlag = 0x01
)

// Status reconstitutes the 8 bit status register from the individual flag
// booleans: P = N|V|0x20|B|D|I|Z|C (spec.md §3.1, §8).
func (c *CPU) Status() uint8 {
	var p uint8 = uFlag
	if c.N {
		p |= nFlag
	}
	if c.V {
		p |= vFlag
	}
	if c.B {
		p |= bFlag
	}
	if c.D {
		p |= dFlag
	}
	if c.I {
		p |= iFlag
	}
	if c.Z {
		p |= zFlag
	}
	if c.C {
		p |= cFlag
	}
	return p
}

// SetStatus loads the individual flag booleans from an 8 bit value, as read
// from a PLP or an interrupt return.
func (c *CPU) SetStatus(p uint8) {
	c.N = p&nFlag != 0
	c.V = p&vFlag != 0
	c.B = p&bFlag != 0
	c.D = p&dFlag != 0
	c.I = p&iFlag != 0
	c.Z = p&zFlag != 0
	c.C = p&cFlag != 0
}

// setNZ sets the N and Z flags from the given result, as almost every
// load/transfer/ALU operation does.
func (c *CPU) setNZ(v uint8) {
	c.N = v&0x80 != 0
	c.Z = v == 0
}

// GetPC and PCSet exist for callers (like the conformance harness) that
// need to seed or observe PC without going through Reset's vector load.
func (c *CPU) GetPC() uint16    { return c.PC }
func (c *CPU) PCSet(pc uint16)  { c.PC = pc }

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%04x A=%02x X=%02x Y=%02x SP=%02x P=%02x",
		c.PC, c.A, c.X, c.Y, c.SP, c.Status())
}
