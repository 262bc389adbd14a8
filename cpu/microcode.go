package cpu

// microStep is one clock cycle's worth of work. write marks cycles that
// assert the 6502's R/W pin low; RDY only ever stalls cycles where write
// is false (spec.md §4.2).
type microStep struct {
	write bool
	fn    func(c *CPU)
}

func rd(fn func(c *CPU)) microStep { return microStep{write: false, fn: fn} }
func wr(fn func(c *CPU)) microStep { return microStep{write: true, fn: fn} }

// buildQueue returns the micro-steps remaining after the opcode fetch
// cycle for the given (already-decoded) instruction.
func buildQueue(def opcodeDef) []microStep {
	switch def.mode {
	case modeImplied:
		return []microStep{rd(func(c *CPU) { def.implied(c) })}

	case modeAccumulator:
		return []microStep{rd(func(c *CPU) { c.A = def.rmw(c, c.A) })}

	case modeImmediate:
		return []microStep{rd(func(c *CPU) {
			v := c.read(c.PC)
			c.PC++
			def.read(c, v)
		})}

	case modeZeroPage:
		return zeroPageQueue(def)
	case modeZeroPageX:
		return zeroPageIndexedQueue(def, func(c *CPU) uint8 { return c.X })
	case modeZeroPageY:
		return zeroPageIndexedQueue(def, func(c *CPU) uint8 { return c.Y })

	case modeAbsolute:
		return absoluteQueue(def)
	case modeAbsoluteX:
		return absoluteIndexedQueue(def, func(c *CPU) uint8 { return c.X })
	case modeAbsoluteY:
		return absoluteIndexedQueue(def, func(c *CPU) uint8 { return c.Y })

	case modeIndirectX:
		return indirectXQueue(def)
	case modeIndirectY:
		return indirectYQueue(def)

	case modeRelative:
		return branchQueue(def)

	case modeJSR:
		return jsrQueue()
	case modeRTS:
		return rtsQueue()
	case modeRTI:
		return rtiQueue()
	case modeBRK:
		return brkQueue()
	case modePush:
		return pushQueue(def)
	case modePull:
		return pullQueue(def)

	case modeJMPAbsolute:
		return absoluteJumpQueue()
	case modeJMPIndirect:
		return jmpIndirectQueue()
	}

	// unreachable for a correctly populated table
	return []microStep{rd(func(c *CPU) {})}
}

func dispatch(c *CPU, def opcodeDef, v uint8, addr uint16) {
	switch def.kind {
	case accessRead:
		def.read(c, v)
	case accessWrite:
		c.operandAddr = addr
		c.write(addr, def.write(c))
	case accessRMW:
		c.operandAddr = addr
		c.write(addr, v) // dummy write-back of the unmodified value
		c.write(addr, def.rmw(c, v))
	}
}

func zeroPageQueue(def opcodeDef) []microStep {
	var addr uint16
	switch def.kind {
	case accessRead:
		return []microStep{
			rd(func(c *CPU) { addr = uint16(c.read(c.PC)); c.PC++ }),
			rd(func(c *CPU) { def.read(c, c.read(addr)) }),
		}
	case accessWrite:
		return []microStep{
			rd(func(c *CPU) { addr = uint16(c.read(c.PC)); c.PC++ }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.write(c)) }),
		}
	case accessRMW:
		var v uint8
		return []microStep{
			rd(func(c *CPU) { addr = uint16(c.read(c.PC)); c.PC++ }),
			rd(func(c *CPU) { v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

func zeroPageIndexedQueue(def opcodeDef, index func(c *CPU) uint8) []microStep {
	var base uint8
	var addr uint16
	fetch := rd(func(c *CPU) { base = c.read(c.PC); c.PC++ })
	dummy := rd(func(c *CPU) { c.read(uint16(base)) })

	switch def.kind {
	case accessRead:
		return []microStep{
			fetch,
			dummy,
			rd(func(c *CPU) { addr = uint16(base + index(c)); def.read(c, c.read(addr)) }),
		}
	case accessWrite:
		return []microStep{
			fetch,
			dummy,
			wr(func(c *CPU) { addr = uint16(base + index(c)); c.operandAddr = addr; c.write(addr, def.write(c)) }),
		}
	case accessRMW:
		var v uint8
		return []microStep{
			fetch,
			dummy,
			rd(func(c *CPU) { addr = uint16(base + index(c)); v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

func absoluteQueue(def opcodeDef) []microStep {
	var lo, hi uint8
	var addr uint16
	switch def.kind {
	case accessRead:
		return []microStep{
			rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ }),
			rd(func(c *CPU) { hi = c.read(c.PC); c.PC++ }),
			rd(func(c *CPU) { addr = uint16(hi)<<8 | uint16(lo); def.read(c, c.read(addr)) }),
		}
	case accessWrite:
		return []microStep{
			rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ }),
			rd(func(c *CPU) { hi = c.read(c.PC); c.PC++ }),
			wr(func(c *CPU) { addr = uint16(hi)<<8 | uint16(lo); c.operandAddr = addr; c.write(addr, def.write(c)) }),
		}
	case accessRMW:
		var v uint8
		return []microStep{
			rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ }),
			rd(func(c *CPU) { hi = c.read(c.PC); c.PC++ }),
			rd(func(c *CPU) { addr = uint16(hi)<<8 | uint16(lo); v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

// absoluteIndexedQueue implements the page-crossing extra-cycle rule for
// reads and the unconditional-extra-cycle rule for writes/RMW (spec.md
// §4.2): a step may truncate the remainder of c.queue at runtime once it
// knows whether the access actually crossed a page, since by the time a
// step's fn runs, c.queue already holds only what comes after it.
func absoluteIndexedQueue(def opcodeDef, index func(c *CPU) uint8) []microStep {
	var lo, hi, idx uint8
	var base, addr uint16
	var crossed bool

	fetchLo := rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ })
	fetchHi := rd(func(c *CPU) {
		hi = c.read(c.PC)
		c.PC++
		idx = index(c)
		base = uint16(hi)<<8 | uint16(lo)
		crossed = uint16(lo)+uint16(idx) > 0xFF
	})

	switch def.kind {
	case accessRead:
		maybeFinal := rd(func(c *CPU) {
			wrongAddr := uint16(hi)<<8 | uint16(uint8(lo+idx))
			v := c.read(wrongAddr)
			if !crossed {
				def.read(c, v)
				c.queue = c.queue[:0]
			}
		})
		final := rd(func(c *CPU) {
			addr = base + uint16(idx)
			def.read(c, c.read(addr))
		})
		return []microStep{fetchLo, fetchHi, maybeFinal, final}

	case accessWrite:
		return []microStep{
			fetchLo, fetchHi,
			rd(func(c *CPU) { addr = base + uint16(idx); c.read(uint16(hi)<<8 | uint16(uint8(lo+idx))) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.write(c)) }),
		}
	case accessRMW:
		var v uint8
		return []microStep{
			fetchLo, fetchHi,
			rd(func(c *CPU) { addr = base + uint16(idx); c.read(uint16(hi)<<8 | uint16(uint8(lo+idx))) }),
			rd(func(c *CPU) { v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

func indirectXQueue(def opcodeDef) []microStep {
	var zp, ptr, lo, hi uint8
	var addr uint16

	fetch := rd(func(c *CPU) { zp = c.read(c.PC); c.PC++ })
	dummy := rd(func(c *CPU) { c.read(uint16(zp)) })
	readLo := rd(func(c *CPU) { ptr = zp + c.X; lo = c.read(uint16(ptr)) })
	readHi := rd(func(c *CPU) { hi = c.read(uint16(ptr + 1)); addr = uint16(hi)<<8 | uint16(lo) })

	switch def.kind {
	case accessRead:
		return []microStep{fetch, dummy, readLo, readHi, rd(func(c *CPU) { def.read(c, c.read(addr)) })}
	case accessWrite:
		return []microStep{fetch, dummy, readLo, readHi, wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.write(c)) })}
	case accessRMW:
		var v uint8
		return []microStep{
			fetch, dummy, readLo, readHi,
			rd(func(c *CPU) { v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

func indirectYQueue(def opcodeDef) []microStep {
	var zp, lo, hi uint8
	var base, addr uint16
	var crossed bool

	fetch := rd(func(c *CPU) { zp = c.read(c.PC); c.PC++ })
	readLo := rd(func(c *CPU) { lo = c.read(uint16(zp)) })
	readHi := rd(func(c *CPU) {
		hi = c.read(uint16(zp + 1))
		base = uint16(hi)<<8 | uint16(lo)
		crossed = uint16(lo)+uint16(c.Y) > 0xFF
	})

	switch def.kind {
	case accessRead:
		maybeFinal := rd(func(c *CPU) {
			wrongAddr := uint16(hi)<<8 | uint16(uint8(lo+c.Y))
			v := c.read(wrongAddr)
			if !crossed {
				def.read(c, v)
				c.queue = c.queue[:0]
			}
		})
		final := rd(func(c *CPU) { addr = base + uint16(c.Y); def.read(c, c.read(addr)) })
		return []microStep{fetch, readLo, readHi, maybeFinal, final}

	case accessWrite:
		return []microStep{
			fetch, readLo, readHi,
			rd(func(c *CPU) { addr = base + uint16(c.Y); c.read(uint16(hi)<<8 | uint16(uint8(lo+c.Y))) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.write(c)) }),
		}
	case accessRMW:
		var v uint8
		return []microStep{
			fetch, readLo, readHi,
			rd(func(c *CPU) { addr = base + uint16(c.Y); c.read(uint16(hi)<<8 | uint16(uint8(lo+c.Y))) }),
			rd(func(c *CPU) { v = c.read(addr) }),
			wr(func(c *CPU) { c.write(addr, v) }),
			wr(func(c *CPU) { c.operandAddr = addr; c.write(addr, def.rmw(c, v)) }),
		}
	}
	return nil
}

// branchQueue implements the three possible branch-instruction lengths
// (not taken: 1 remaining cycle, taken same page: 2, taken crossing a
// page: 3) via the same runtime-truncation technique as the indexed
// addressing modes.
func branchQueue(def opcodeDef) []microStep {
	var offset int8
	var newPC uint16
	var crossed bool

	fetch := rd(func(c *CPU) {
		offset = int8(c.read(c.PC))
		c.PC++
		if !def.branchCond(c) {
			c.queue = c.queue[:0]
			return
		}
		oldPC := c.PC
		newPC = uint16(int32(oldPC) + int32(offset))
		crossed = (oldPC & 0xFF00) != (newPC & 0xFF00)
	})
	commit := rd(func(c *CPU) {
		c.PC = newPC
		if !crossed {
			c.queue = c.queue[:0]
		}
	})
	fixup := rd(func(c *CPU) {})

	return []microStep{fetch, commit, fixup}
}

func jsrQueue() []microStep {
	var lo uint8
	return []microStep{
		rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ }),
		rd(func(c *CPU) {}), // internal operation (stack peek)
		wr(func(c *CPU) { c.write(0x0100+uint16(c.SP), uint8(c.PC>>8)); c.SP-- }),
		wr(func(c *CPU) { c.write(0x0100+uint16(c.SP), uint8(c.PC)); c.SP-- }),
		rd(func(c *CPU) {
			hi := c.read(c.PC)
			c.pushCallStack(c.PC + 1)
			c.PC = uint16(hi)<<8 | uint16(lo)
		}),
	}
}

func rtsQueue() []microStep {
	return []microStep{
		rd(func(c *CPU) { c.read(c.PC) }),
		rd(func(c *CPU) {}), // internal: increment S
		rd(func(c *CPU) { c.SP++ }),
		rd(func(c *CPU) {
			lo := c.read(0x0100 + uint16(c.SP))
			c.SP++
			hi := c.read(0x0100 + uint16(c.SP))
			c.PC = uint16(hi)<<8 | uint16(lo)
		}),
		rd(func(c *CPU) { c.PC++ }),
	}
}

func rtiQueue() []microStep {
	return []microStep{
		rd(func(c *CPU) { c.read(c.PC) }),
		rd(func(c *CPU) { c.SP++ }),
		rd(func(c *CPU) { c.SetStatus(c.read(0x0100 + uint16(c.SP))); c.SP++ }),
		rd(func(c *CPU) {
			lo := c.read(0x0100 + uint16(c.SP))
			c.SP++
			hi := c.read(0x0100 + uint16(c.SP))
			c.PC = uint16(hi)<<8 | uint16(lo)
		}),
		rd(func(c *CPU) {}),
	}
}

func brkQueue() []microStep {
	return interruptSequence(true, 0xFFFE)
}

// buildInterruptQueue builds the full 7-cycle NMI/IRQ response (the first
// of the 7 is consumed directly by beginInstruction like an opcode fetch,
// so this returns the remaining 6).
func buildInterruptQueue(c *CPU, kind interruptKind) []microStep {
	vector := uint16(0xFFFE)
	if kind == interruptNMI {
		vector = 0xFFFA
	}
	c.read(c.PC) // opcode-fetch-shaped dummy read, PC not advanced
	return interruptSequence(false, vector)
}

func interruptSequence(isBRK bool, vector uint16) []microStep {
	return []microStep{
		rd(func(c *CPU) {
			if isBRK {
				c.read(c.PC)
				c.PC++
			}
		}),
		wr(func(c *CPU) { c.write(0x0100+uint16(c.SP), uint8(c.PC>>8)); c.SP-- }),
		wr(func(c *CPU) { c.write(0x0100+uint16(c.SP), uint8(c.PC)); c.SP-- }),
		wr(func(c *CPU) {
			p := c.Status()
			if isBRK {
				p |= bFlag
			} else {
				p &^= bFlag
			}
			c.write(0x0100+uint16(c.SP), p)
			c.SP--
			c.I = true
		}),
		rd(func(c *CPU) {}),
		rd(func(c *CPU) {
			lo := c.read(vector)
			hi := c.read(vector + 1)
			c.PC = uint16(hi)<<8 | uint16(lo)
		}),
	}
}

func pushQueue(def opcodeDef) []microStep {
	return []microStep{
		rd(func(c *CPU) { c.read(c.PC) }),
		wr(func(c *CPU) {
			var v uint8
			if def.mnemonic == "PHP" {
				v = c.Status() | bFlag
			} else {
				v = c.A
			}
			c.write(0x0100+uint16(c.SP), v)
			c.SP--
		}),
	}
}

func pullQueue(def opcodeDef) []microStep {
	return []microStep{
		rd(func(c *CPU) { c.read(c.PC) }),
		rd(func(c *CPU) { c.SP++ }),
		rd(func(c *CPU) {
			v := c.read(0x0100 + uint16(c.SP))
			if def.mnemonic == "PLP" {
				c.SetStatus(v)
			} else {
				c.A = v
				c.setNZ(c.A)
			}
		}),
	}
}

func absoluteJumpQueue() []microStep {
	var lo uint8
	return []microStep{
		rd(func(c *CPU) { lo = c.read(c.PC); c.PC++ }),
		rd(func(c *CPU) { hi := c.read(c.PC); c.PC = uint16(hi)<<8 | uint16(lo) }),
	}
}

// jmpIndirectQueue reproduces the classic 6502 indirect-JMP page-wrap bug:
// if the low byte of the pointer is $FF, the high byte of the target is
// read from the start of the SAME page rather than the next one.
func jmpIndirectQueue() []microStep {
	var ptrLo, ptrHi, lo uint8
	return []microStep{
		rd(func(c *CPU) { ptrLo = c.read(c.PC); c.PC++ }),
		rd(func(c *CPU) { ptrHi = c.read(c.PC); c.PC++ }),
		rd(func(c *CPU) { lo = c.read(uint16(ptrHi)<<8 | uint16(ptrLo)) }),
		rd(func(c *CPU) {
			hi := c.read(uint16(ptrHi)<<8 | uint16(ptrLo+1))
			c.PC = uint16(hi)<<8 | uint16(lo)
		}),
	}
}
