package cpu

// addrMode names the 6502 addressing modes, plus a handful of "modes" that
// are really control-flow shapes (branch, jsr, rts, rti, brk, the two jmp
// forms, and the four stack ops) that don't fit the regular read/write/rmw
// generic builders and are special-cased in microcode.go.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndirectX
	modeIndirectY
	modeRelative
	modeJMPAbsolute
	modeJMPIndirect
	modeJSR
	modeRTS
	modeRTI
	modeBRK
	modePush
	modePull
	modeKIL
)

// accessKind says how an opcode touches its operand, which decides the
// cycle-count shape the generic builders in microcode.go generate.
type accessKind int

const (
	accessNone  accessKind = iota // implied/register-only op
	accessRead                    // operand read, result consumed (LDA, CMP, ...)
	accessWrite                   // operand written, never read back (STA, ...)
	accessRMW                     // operand read, modified, written back (INC, ASL, ...)
)

type readOp func(c *CPU, v uint8)
type writeOp func(c *CPU) uint8
type rmwOp func(c *CPU, v uint8) uint8
type impliedOp func(c *CPU)

// opcodeDef is the compact declarative description of one opcode, from
// which microcode.go's buildQueue generates the actual per-cycle micro-step
// schedule. This is the "table instead of 256 methods" design spec.md §9
// asks for.
type opcodeDef struct {
	mnemonic string
	mode     addrMode
	kind     accessKind
	read     readOp
	write    writeOp
	rmw      rmwOp
	implied  impliedOp
	illegal  bool

	// branchCond is set only for modeRelative opcodes: it reports whether
	// the branch is taken from the current flag state.
	branchCond func(c *CPU) bool
}

// opcodeTable is populated once, at package init, by buildOpcodeTable.
var opcodeTable [256]opcodeDef

func init() {
	opcodeTable = buildOpcodeTable()
}

// group01 lists the eight accumulator-class operations selected by the
// "aaa" bits of a cc=01 opcode (ORA AND EOR ADC STA LDA CMP SBC), in the
// bit-pattern order the real 6502 decoder uses.
var group01 = []string{"ORA", "AND", "EOR", "ADC", "STA", "LDA", "CMP", "SBC"}

// group01Modes gives the addressing mode for each of the eight "bbb"
// values of a cc=01 opcode.
var group01Modes = []addrMode{
	modeIndirectX, modeZeroPage, modeImmediate, modeAbsolute,
	modeIndirectY, modeZeroPageX, modeAbsoluteY, modeAbsoluteX,
}

// group10 lists the cc=10 "aaa" operations (ASL ROL LSR ROR STX LDX DEC INC).
var group10 = []string{"ASL", "ROL", "LSR", "ROR", "STX", "LDX", "DEC", "INC"}

var group10Modes = []addrMode{
	modeImmediate, modeZeroPage, modeAccumulator, modeAbsolute,
	modeImplied /* invalid */, modeZeroPageX, modeImplied /* invalid */, modeAbsoluteX,
}

// group00 lists the cc=00 "aaa" operations (BIT JMP JMP() STY LDY CPY CPX).
// index 0 and 1 (in real silicon, used by branches/misc) are not used here.
var group00 = []string{"", "BIT", "JMP", "JMP", "STY", "LDY", "CPY", "CPX"}

var group00Modes = []addrMode{
	modeImmediate, modeZeroPage, modeImplied, modeAbsolute,
	modeImplied, modeZeroPageX, modeImplied, modeAbsoluteX,
}

func buildOpcodeTable() [256]opcodeDef {
	var t [256]opcodeDef
	for i := range t {
		t[i] = opcodeDef{mnemonic: "???", mode: modeImplied, kind: accessNone, implied: nopImplied, illegal: true}
	}

	// --- cc=01 group: ORA AND EOR ADC STA LDA CMP SBC ---
	for aaa := 0; aaa < 8; aaa++ {
		for bbb := 0; bbb < 8; bbb++ {
			op := byte((aaa << 5) | (bbb << 2) | 0x01)
			mnem := group01[aaa]
			mode := group01Modes[bbb]

			if mnem == "STA" && mode == modeImmediate {
				// $89: no such thing as STA #imm on real silicon; this slot
				// is one of the documented 2-byte NOPs.
				t[op] = nopImmediate()
				continue
			}

			switch mnem {
			case "ORA":
				t[op] = readDef("ORA", mode, oraOp)
			case "AND":
				t[op] = readDef("AND", mode, andOp)
			case "EOR":
				t[op] = readDef("EOR", mode, eorOp)
			case "ADC":
				t[op] = readDef("ADC", mode, adcOp)
			case "STA":
				t[op] = writeDef("STA", mode, func(c *CPU) uint8 { return c.A })
			case "LDA":
				t[op] = readDef("LDA", mode, ldaOp)
			case "CMP":
				t[op] = readDef("CMP", mode, cmpOp)
			case "SBC":
				t[op] = readDef("SBC", mode, sbcOp)
			}
		}
	}

	// --- cc=10 group: ASL ROL LSR ROR STX LDX DEC INC ---
	for aaa := 0; aaa < 8; aaa++ {
		for bbb := 0; bbb < 8; bbb++ {
			op := byte((aaa << 5) | (bbb << 2) | 0x02)
			mnem := group10[aaa]
			mode := group10Modes[bbb]

			// STX/LDX use the Y-indexed zero-page/absolute forms where the
			// generic table has X-indexed ones.
			if mnem == "STX" || mnem == "LDX" {
				if mode == modeZeroPageX {
					mode = modeZeroPageY
				} else if mode == modeAbsoluteX {
					mode = modeAbsoluteY
				}
			}

			switch {
			case mnem == "STX" && mode == modeImmediate:
				t[op] = nopImmediate()
				continue
			case (mnem == "ASL" || mnem == "ROL" || mnem == "LSR" || mnem == "ROR") && mode == modeImmediate:
				t[op] = nopImmediate()
				continue
			case (mnem == "DEC" || mnem == "INC") && (mode == modeImmediate || mode == modeAccumulator):
				t[op] = nopImmediate()
				continue
			case mode == modeImplied:
				// unused slot in the 8-column layout; filled by illegal
				// opcode overrides below.
				continue
			}

			switch mnem {
			case "ASL":
				if mode == modeAccumulator {
					t[op] = accDef("ASL", aslOp)
				} else {
					t[op] = rmwDef("ASL", mode, aslOp)
				}
			case "ROL":
				if mode == modeAccumulator {
					t[op] = accDef("ROL", rolOp)
				} else {
					t[op] = rmwDef("ROL", mode, rolOp)
				}
			case "LSR":
				if mode == modeAccumulator {
					t[op] = accDef("LSR", lsrOp)
				} else {
					t[op] = rmwDef("LSR", mode, lsrOp)
				}
			case "ROR":
				if mode == modeAccumulator {
					t[op] = accDef("ROR", rorOp)
				} else {
					t[op] = rmwDef("ROR", mode, rorOp)
				}
			case "STX":
				t[op] = writeDef("STX", mode, func(c *CPU) uint8 { return c.X })
			case "LDX":
				t[op] = readDef("LDX", mode, ldxOp)
			case "DEC":
				t[op] = rmwDef("DEC", mode, decOp)
			case "INC":
				t[op] = rmwDef("INC", mode, incOp)
			}
		}
	}

	// --- cc=00 group: BIT JMP JMP() STY LDY CPY CPX ---
	for aaa := 1; aaa < 8; aaa++ {
		for bbb := 0; bbb < 8; bbb++ {
			op := byte((aaa << 5) | (bbb << 2) | 0x00)
			mnem := group00[aaa]
			mode := group00Modes[bbb]
			if mode == modeImplied {
				continue
			}

			switch mnem {
			case "BIT":
				if mode == modeImmediate {
					continue // $89-style slot doesn't exist for BIT; left as illegal NOP below
				}
				t[op] = readDef("BIT", mode, bitOp)
			case "JMP":
				if aaa == 2 {
					t[op] = opcodeDef{mnemonic: "JMP", mode: modeJMPAbsolute, kind: accessNone}
				} else {
					t[op] = opcodeDef{mnemonic: "JMP", mode: modeJMPIndirect, kind: accessNone}
				}
			case "STY":
				if mode == modeImmediate {
					continue
				}
				t[op] = writeDef("STY", mode, func(c *CPU) uint8 { return c.Y })
			case "LDY":
				t[op] = readDef("LDY", mode, ldyOp)
			case "CPY":
				if mode != modeImmediate && mode != modeZeroPage && mode != modeAbsolute {
					continue
				}
				t[op] = readDef("CPY", mode, cpyOp)
			case "CPX":
				if mode != modeImmediate && mode != modeZeroPage && mode != modeAbsolute {
					continue
				}
				t[op] = readDef("CPX", mode, cpxOp)
			}
		}
	}

	applySingleByteOps(&t)
	applyBranches(&t)
	applyIllegalOpcodes(&t)

	return t
}

func readDef(mnem string, mode addrMode, fn readOp) opcodeDef {
	return opcodeDef{mnemonic: mnem, mode: mode, kind: accessRead, read: fn}
}

func writeDef(mnem string, mode addrMode, fn writeOp) opcodeDef {
	return opcodeDef{mnemonic: mnem, mode: mode, kind: accessWrite, write: fn}
}

func rmwDef(mnem string, mode addrMode, fn rmwOp) opcodeDef {
	return opcodeDef{mnemonic: mnem, mode: mode, kind: accessRMW, rmw: fn}
}

func accDef(mnem string, fn rmwOp) opcodeDef {
	return opcodeDef{mnemonic: mnem, mode: modeAccumulator, kind: accessRMW, rmw: fn}
}

func impliedDef(mnem string, fn impliedOp) opcodeDef {
	return opcodeDef{mnemonic: mnem, mode: modeImplied, kind: accessNone, implied: fn}
}

func nopImplied(c *CPU) {}

func nopImmediate() opcodeDef {
	return opcodeDef{mnemonic: "NOP", mode: modeImmediate, kind: accessRead, read: func(c *CPU, v uint8) {}, illegal: true}
}

func nopZeroPage() opcodeDef {
	return opcodeDef{mnemonic: "NOP", mode: modeZeroPage, kind: accessRead, read: func(c *CPU, v uint8) {}, illegal: true}
}

func nopZeroPageX() opcodeDef {
	return opcodeDef{mnemonic: "NOP", mode: modeZeroPageX, kind: accessRead, read: func(c *CPU, v uint8) {}, illegal: true}
}

func nopAbsolute() opcodeDef {
	return opcodeDef{mnemonic: "NOP", mode: modeAbsolute, kind: accessRead, read: func(c *CPU, v uint8) {}, illegal: true}
}

func nopAbsoluteX() opcodeDef {
	return opcodeDef{mnemonic: "NOP", mode: modeAbsoluteX, kind: accessRead, read: func(c *CPU, v uint8) {}, illegal: true}
}

func applySingleByteOps(t *[256]opcodeDef) {
	singleByte := map[byte]opcodeDef{
		0x00: {mnemonic: "BRK", mode: modeBRK, kind: accessNone},
		0x08: {mnemonic: "PHP", mode: modePush, kind: accessNone},
		0x28: {mnemonic: "PLP", mode: modePull, kind: accessNone},
		0x48: {mnemonic: "PHA", mode: modePush, kind: accessNone},
		0x68: {mnemonic: "PLA", mode: modePull, kind: accessNone},
		0x20: {mnemonic: "JSR", mode: modeJSR, kind: accessNone},
		0x40: {mnemonic: "RTI", mode: modeRTI, kind: accessNone},
		0x60: {mnemonic: "RTS", mode: modeRTS, kind: accessNone},

		0x18: impliedDef("CLC", func(c *CPU) { c.C = false }),
		0x38: impliedDef("SEC", func(c *CPU) { c.C = true }),
		0x58: impliedDef("CLI", func(c *CPU) { c.I = false }),
		0x78: impliedDef("SEI", func(c *CPU) { c.I = true }),
		0xB8: impliedDef("CLV", func(c *CPU) { c.V = false }),
		0xD8: impliedDef("CLD", func(c *CPU) { c.D = false }),
		0xF8: impliedDef("SED", func(c *CPU) { c.D = true }),

		0xAA: impliedDef("TAX", func(c *CPU) { c.X = c.A; c.setNZ(c.X) }),
		0xA8: impliedDef("TAY", func(c *CPU) { c.Y = c.A; c.setNZ(c.Y) }),
		0x8A: impliedDef("TXA", func(c *CPU) { c.A = c.X; c.setNZ(c.A) }),
		0x98: impliedDef("TYA", func(c *CPU) { c.A = c.Y; c.setNZ(c.A) }),
		0x9A: impliedDef("TXS", func(c *CPU) { c.SP = c.X }),
		0xBA: impliedDef("TSX", func(c *CPU) { c.X = c.SP; c.setNZ(c.X) }),
		0xE8: impliedDef("INX", func(c *CPU) { c.X++; c.setNZ(c.X) }),
		0xC8: impliedDef("INY", func(c *CPU) { c.Y++; c.setNZ(c.Y) }),
		0xCA: impliedDef("DEX", func(c *CPU) { c.X--; c.setNZ(c.X) }),
		0x88: impliedDef("DEY", func(c *CPU) { c.Y--; c.setNZ(c.Y) }),
		0xEA: impliedDef("NOP", nopImplied),
	}
	for op, def := range singleByte {
		t[op] = def
	}
}

func applyBranches(t *[256]opcodeDef) {
	branches := map[byte]func(c *CPU) bool{
		0x10: func(c *CPU) bool { return !c.N },
		0x30: func(c *CPU) bool { return c.N },
		0x50: func(c *CPU) bool { return !c.V },
		0x70: func(c *CPU) bool { return c.V },
		0x90: func(c *CPU) bool { return !c.C },
		0xB0: func(c *CPU) bool { return c.C },
		0xD0: func(c *CPU) bool { return !c.Z },
		0xF0: func(c *CPU) bool { return c.Z },
	}
	names := map[byte]string{
		0x10: "BPL", 0x30: "BMI", 0x50: "BVC", 0x70: "BVS",
		0x90: "BCC", 0xB0: "BCS", 0xD0: "BNE", 0xF0: "BEQ",
	}
	for op, cond := range branches {
		t[op] = opcodeDef{mnemonic: names[op], mode: modeRelative, kind: accessNone, branchCond: cond}
	}
}

func applyIllegalOpcodes(t *[256]opcodeDef) {
	// KIL / JAM: any access halts the CPU permanently (requires Reset()).
	for _, op := range []byte{0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2} {
		t[op] = opcodeDef{mnemonic: "KIL", mode: modeKIL, kind: accessNone}
	}

	// documented 1-byte NOPs
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		t[op] = impliedDef("NOP", nopImplied)
		t[op].illegal = true
	}

	// documented 2-byte NOPs (immediate operand, discarded)
	for _, op := range []byte{0x80, 0x82, 0xC2, 0xE2} {
		t[op] = nopImmediate()
	}
	// zero page NOPs
	for _, op := range []byte{0x04, 0x44, 0x64} {
		t[op] = nopZeroPage()
	}
	// zero page,X NOPs
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		t[op] = nopZeroPageX()
	}
	// absolute NOP
	t[0x0C] = nopAbsolute()
	// absolute,X NOPs (these do pay the page-cross cycle like LDA would)
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		t[op] = nopAbsoluteX()
	}

	// stable illegal opcodes: LAX, SAX, DCP, ISC, RLA, RRA, SLO, SRE
	laxModes := map[byte]addrMode{0xA3: modeIndirectX, 0xA7: modeZeroPage, 0xAF: modeAbsolute, 0xB3: modeIndirectY, 0xB7: modeZeroPageY, 0xBF: modeAbsoluteY}
	for op, mode := range laxModes {
		t[op] = readDef("LAX", mode, laxOp)
		t[op].illegal = true
	}

	saxModes := map[byte]addrMode{0x83: modeIndirectX, 0x87: modeZeroPage, 0x8F: modeAbsolute, 0x97: modeZeroPageY}
	for op, mode := range saxModes {
		t[op] = writeDef("SAX", mode, func(c *CPU) uint8 { return c.A & c.X })
		t[op].illegal = true
	}

	dcpModes := map[byte]addrMode{0xC3: modeIndirectX, 0xC7: modeZeroPage, 0xCF: modeAbsolute, 0xD3: modeIndirectY, 0xD7: modeZeroPageX, 0xDB: modeAbsoluteY, 0xDF: modeAbsoluteX}
	for op, mode := range dcpModes {
		t[op] = rmwDef("DCP", mode, dcpOp)
		t[op].illegal = true
	}

	iscModes := map[byte]addrMode{0xE3: modeIndirectX, 0xE7: modeZeroPage, 0xEF: modeAbsolute, 0xF3: modeIndirectY, 0xF7: modeZeroPageX, 0xFB: modeAbsoluteY, 0xFF: modeAbsoluteX}
	for op, mode := range iscModes {
		t[op] = rmwDef("ISC", mode, iscOp)
		t[op].illegal = true
	}

	rlaModes := map[byte]addrMode{0x23: modeIndirectX, 0x27: modeZeroPage, 0x2F: modeAbsolute, 0x33: modeIndirectY, 0x37: modeZeroPageX, 0x3B: modeAbsoluteY, 0x3F: modeAbsoluteX}
	for op, mode := range rlaModes {
		t[op] = rmwDef("RLA", mode, rlaOp)
		t[op].illegal = true
	}

	rraModes := map[byte]addrMode{0x63: modeIndirectX, 0x67: modeZeroPage, 0x6F: modeAbsolute, 0x73: modeIndirectY, 0x77: modeZeroPageX, 0x7B: modeAbsoluteY, 0x7F: modeAbsoluteX}
	for op, mode := range rraModes {
		t[op] = rmwDef("RRA", mode, rraOp)
		t[op].illegal = true
	}

	sloModes := map[byte]addrMode{0x03: modeIndirectX, 0x07: modeZeroPage, 0x0F: modeAbsolute, 0x13: modeIndirectY, 0x17: modeZeroPageX, 0x1B: modeAbsoluteY, 0x1F: modeAbsoluteX}
	for op, mode := range sloModes {
		t[op] = rmwDef("SLO", mode, sloOp)
		t[op].illegal = true
	}

	sreModes := map[byte]addrMode{0x43: modeIndirectX, 0x47: modeZeroPage, 0x4F: modeAbsolute, 0x53: modeIndirectY, 0x57: modeZeroPageX, 0x5B: modeAbsoluteY, 0x5F: modeAbsoluteX}
	for op, mode := range sreModes {
		t[op] = rmwDef("SRE", mode, sreOp)
		t[op].illegal = true
	}

	// immediate-only illegal opcodes
	t[0x0B] = readDef("ANC", modeImmediate, ancOp)
	t[0x0B].illegal = true
	t[0x2B] = readDef("ANC", modeImmediate, ancOp)
	t[0x2B].illegal = true
	t[0x4B] = readDef("ALR", modeImmediate, alrOp)
	t[0x4B].illegal = true
	t[0x6B] = readDef("ARR", modeImmediate, arrOp)
	t[0x6B].illegal = true
	t[0x8B] = readDef("ANE", modeImmediate, aneOp)
	t[0x8B].illegal = true
	t[0xAB] = readDef("LXA", modeImmediate, lxaOp)
	t[0xAB].illegal = true
	t[0xCB] = readDef("AXS", modeImmediate, axsOp)
	t[0xCB].illegal = true
	t[0xEB] = readDef("SBC", modeImmediate, sbcOp) // duplicate of the documented SBC
	t[0xEB].illegal = true

	// unstable "magic" opcodes, standard approximation (no randomisation
	// per spec.md §4.2).
	t[0x9C] = writeDef("SHY", modeAbsoluteX, shyOp)
	t[0x9C].illegal = true
	t[0x9E] = writeDef("SHX", modeAbsoluteY, shxOp)
	t[0x9E].illegal = true
	t[0x9F] = writeDef("SHA", modeAbsoluteY, shaOp)
	t[0x9F].illegal = true
	t[0x93] = writeDef("SHA", modeIndirectY, shaOp)
	t[0x93].illegal = true
	t[0x9B] = impliedDef("TAS", func(c *CPU) {})
	t[0x9B].mode = modeAbsoluteY
	t[0x9B].kind = accessWrite
	t[0x9B].write = func(c *CPU) uint8 { c.SP = c.A & c.X; return c.SP }
	t[0x9B].illegal = true
	t[0xBB] = readDef("LAS", modeAbsoluteY, lasOp)
	t[0xBB].illegal = true
}
