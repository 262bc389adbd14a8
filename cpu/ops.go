package cpu

// This file holds the actual ALU/load/store/compare semantics referenced
// by opcodeTable's entries. Each function's signature matches one of the
// readOp/writeOp/rmwOp shapes declared in opcodes.go.

func oraOp(c *CPU, v uint8) { c.A |= v; c.setNZ(c.A) }
func andOp(c *CPU, v uint8) { c.A &= v; c.setNZ(c.A) }
func eorOp(c *CPU, v uint8) { c.A ^= v; c.setNZ(c.A) }
func adcOp(c *CPU, v uint8) { c.adc(v) }
func sbcOp(c *CPU, v uint8) { c.sbc(v) }
func ldaOp(c *CPU, v uint8) { c.A = v; c.setNZ(c.A) }
func ldxOp(c *CPU, v uint8) { c.X = v; c.setNZ(c.X) }
func ldyOp(c *CPU, v uint8) { c.Y = v; c.setNZ(c.Y) }

func compare(c *CPU, reg, v uint8) {
	result := reg - v
	c.C = reg >= v
	c.setNZ(result)
}

func cmpOp(c *CPU, v uint8) { compare(c, c.A, v) }
func cpxOp(c *CPU, v uint8) { compare(c, c.X, v) }
func cpyOp(c *CPU, v uint8) { compare(c, c.Y, v) }

func bitOp(c *CPU, v uint8) {
	c.Z = (c.A & v) == 0
	c.N = v&0x80 != 0
	c.V = v&0x40 != 0
}

func aslOp(c *CPU, v uint8) uint8 {
	c.C = v&0x80 != 0
	v <<= 1
	c.setNZ(v)
	return v
}

func lsrOp(c *CPU, v uint8) uint8 {
	c.C = v&0x01 != 0
	v >>= 1
	c.setNZ(v)
	return v
}

func rolOp(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 1
	}
	c.C = v&0x80 != 0
	v = (v << 1) | carryIn
	c.setNZ(v)
	return v
}

func rorOp(c *CPU, v uint8) uint8 {
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.C = v&0x01 != 0
	v = (v >> 1) | carryIn
	c.setNZ(v)
	return v
}

func incOp(c *CPU, v uint8) uint8 {
	v++
	c.setNZ(v)
	return v
}

func decOp(c *CPU, v uint8) uint8 {
	v--
	c.setNZ(v)
	return v
}

// --- illegal/unstable opcode semantics, grounded on the widely documented
// NMOS 6510 quirks (see spec.md §4.2 and the "no 6502 illegal opcode"
// reference behaviour listed in original_source's Instructions.h comments) ---

func laxOp(c *CPU, v uint8) {
	c.A = v
	c.X = v
	c.setNZ(v)
}

func dcpOp(c *CPU, v uint8) uint8 {
	v--
	c.C = c.A >= v
	c.setNZ(c.A - v)
	return v
}

func iscOp(c *CPU, v uint8) uint8 {
	v++
	c.sbc(v)
	return v
}

func rlaOp(c *CPU, v uint8) uint8 {
	v = rolOp(c, v)
	c.A &= v
	c.setNZ(c.A)
	return v
}

func rraOp(c *CPU, v uint8) uint8 {
	v = rorOp(c, v)
	c.adc(v)
	return v
}

func sloOp(c *CPU, v uint8) uint8 {
	v = aslOp(c, v)
	c.A |= v
	c.setNZ(c.A)
	return v
}

func sreOp(c *CPU, v uint8) uint8 {
	v = lsrOp(c, v)
	c.A ^= v
	c.setNZ(c.A)
	return v
}

func ancOp(c *CPU, v uint8) {
	c.A &= v
	c.setNZ(c.A)
	c.C = c.N
}

func alrOp(c *CPU, v uint8) {
	c.A &= v
	c.A = lsrOp(c, c.A)
}

func arrOp(c *CPU, v uint8) {
	c.A &= v
	carryIn := uint8(0)
	if c.C {
		carryIn = 0x80
	}
	c.A = (c.A >> 1) | carryIn
	c.setNZ(c.A)
	c.C = c.A&0x40 != 0
	c.V = (c.A&0x40 != 0) != (c.A&0x20 != 0)
}

func aneOp(c *CPU, v uint8) {
	// unstable on real silicon; the stable approximation most emulators
	// use treats the "magic" constant as 0xFF.
	c.A = (c.A | 0xFF) & c.X & v
	c.setNZ(c.A)
}

func lxaOp(c *CPU, v uint8) {
	c.A = (c.A | 0xFF) & v
	c.X = c.A
	c.setNZ(c.A)
}

func axsOp(c *CPU, v uint8) {
	result := (c.A & c.X) - v
	c.C = (c.A & c.X) >= v
	c.X = result
	c.setNZ(c.X)
}

func shyOp(c *CPU) uint8 { return c.Y & uint8(c.operandAddr>>8+1) }
func shxOp(c *CPU) uint8 { return c.X & uint8(c.operandAddr>>8+1) }
func shaOp(c *CPU) uint8 { return c.A & c.X & uint8(c.operandAddr>>8+1) }
func lasOp(c *CPU, v uint8) {
	result := v & c.SP
	c.A = result
	c.X = result
	c.SP = result
	c.setNZ(result)
}
