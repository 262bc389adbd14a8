package cpu

// adc performs ADC, including the documented decimal-mode oddity noted in
// spec.md §4.2: when D is set, N, V and Z are computed from the *binary*
// intermediate result, not from the BCD-corrected one, matching real NMOS
// 6502 behavior.
func (c *CPU) adc(value uint8) {
	carryIn := uint16(0)
	if c.C {
		carryIn = 1
	}

	binSum := uint16(c.A) + uint16(value) + carryIn
	c.N = binSum&0x80 != 0
	c.Z = uint8(binSum) == 0
	c.V = (^(uint16(c.A) ^ uint16(value)) & (uint16(c.A) ^ binSum) & 0x80) != 0

	if !c.D {
		c.C = binSum > 0xFF
		c.A = uint8(binSum)
		return
	}

	lo := (c.A & 0x0F) + (value & 0x0F) + uint8(carryIn)
	hi := (c.A >> 4) + (value >> 4)
	if lo > 9 {
		lo += 6
		hi++
	}
	if hi > 9 {
		hi += 6
	}
	c.C = hi > 15
	c.A = (hi << 4) | (lo & 0x0F)
}

// sbc performs SBC with the same decimal-mode flag oddity as adc.
func (c *CPU) sbc(value uint8) {
	borrowIn := uint16(0)
	if !c.C {
		borrowIn = 1
	}

	binDiff := uint16(c.A) - uint16(value) - borrowIn
	c.N = binDiff&0x80 != 0
	c.Z = uint8(binDiff) == 0
	c.V = ((uint16(c.A) ^ uint16(value)) & (uint16(c.A) ^ binDiff) & 0x80) != 0
	c.C = binDiff < 0x100

	if !c.D {
		c.A = uint8(binDiff)
		return
	}

	lo := int16(c.A&0x0F) - int16(value&0x0F) - int16(borrowIn)
	hi := int16(c.A>>4) - int16(value>>4)
	if lo < 0 {
		lo -= 6
		hi--
	}
	if hi < 0 {
		hi -= 6
	}
	c.A = uint8((hi<<4)&0xF0) | uint8(lo&0x0F)
}
