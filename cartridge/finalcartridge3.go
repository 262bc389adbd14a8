package cartridge

// finalCartridgeIII implements CRT hardware type 3: 4 banks of 16KiB ROM
// (8KiB ROML + 8KiB ROMH per bank), a control register at $DFFF, and a
// freeze button whose GAME-line transition is delayed a handful of cycles
// (qD, a 4-bit countdown) so the CPU's NMI-vector fetch still sees the
// banking that was active before the button was pressed, per spec.md
// §4.4: "control register at $DFFF; hidden bit disables subsequent
// writes; a 4-bit counter (qD) delays the grounding of GAME when the
// freeze button is pressed so that the CPU can read the NMI vector with
// the old configuration."
type finalCartridgeIII struct {
	banks [][]byte

	bank   int
	game   bool
	exrom  bool
	hidden bool

	freezeRequested bool
	qd              int
}

// finalCartridgeIIIFreezeDelay is qD's full 4-bit range.
const finalCartridgeIIIFreezeDelay = 15

func newFinalCartridgeIII(banks [][]byte) *finalCartridgeIII {
	return &finalCartridgeIII{banks: banks, game: true, exrom: true}
}

func (f *finalCartridgeIII) PeekRomL(addr uint16) uint8 {
	off := int(addr - 0x8000)
	if f.bank < len(f.banks) && off < len(f.banks[f.bank]) {
		return f.banks[f.bank][off]
	}
	return 0xFF
}

func (f *finalCartridgeIII) PeekRomH(addr uint16) uint8 {
	base := uint16(0xA000)
	if !f.game && f.exrom {
		base = 0xE000
	}
	off := 0x2000 + int(addr-base)
	if f.bank < len(f.banks) && off < len(f.banks[f.bank]) {
		return f.banks[f.bank][off]
	}
	return 0xFF
}

func (f *finalCartridgeIII) PokeRomL(addr uint16, value uint8) {}
func (f *finalCartridgeIII) PokeRomH(addr uint16, value uint8) {}

func (f *finalCartridgeIII) PeekIO1(addr uint16) uint8        { return 0xFF }
func (f *finalCartridgeIII) PokeIO1(addr uint16, value uint8) {}

func (f *finalCartridgeIII) PeekIO2(addr uint16) uint8 { return 0xFF }

// PokeIO2 handles the control register at $DFFF (the last byte of IO2).
// Bits 0-1 select the bank, bit 4 drives GAME, bit 5 drives EXROM, and
// bit 6 is the hidden bit: once set, every later write to this register
// is ignored until the next reset.
func (f *finalCartridgeIII) PokeIO2(addr uint16, value uint8) {
	if f.hidden || addr&0xFF != 0xFF {
		return
	}
	f.bank = int(value & 0x03)
	f.game = value&0x10 == 0
	f.exrom = value&0x20 == 0
	if value&0x40 != 0 {
		f.hidden = true
	}
}

func (f *finalCartridgeIII) NumBanks() int { return len(f.banks) }
func (f *finalCartridgeIII) GetBank() int  { return f.bank }
func (f *finalCartridgeIII) SetBank(b int) { f.bank = b }
func (f *finalCartridgeIII) Game() bool    { return f.game }
func (f *finalCartridgeIII) Exrom() bool   { return f.exrom }

func (f *finalCartridgeIII) Reset() {
	f.bank, f.hidden, f.qd, f.freezeRequested = 0, false, 0, false
	f.game, f.exrom = true, true
}

// RequestFreeze is called by the host when the user presses the
// cartridge's freeze button. GAME isn't grounded immediately: qD starts
// counting down so the CPU's next NMI-vector fetch still sees the
// pre-freeze banking.
func (f *finalCartridgeIII) RequestFreeze() {
	f.freezeRequested = true
	f.qd = finalCartridgeIIIFreezeDelay
}

func (f *finalCartridgeIII) Freeze() bool {
	if !f.freezeRequested {
		return false
	}
	f.freezeRequested = false
	return true
}

// Execute counts qD down once a freeze has been requested; at zero, GAME
// is grounded and EXROM released, mapping the freezer's own bank 0 in.
func (f *finalCartridgeIII) Execute() {
	if f.qd == 0 {
		return
	}
	f.qd--
	if f.qd == 0 {
		f.game, f.exrom, f.bank = false, true, 0
	}
}

type finalCartridgeIIIState struct {
	Bank            int
	Game, Exrom     bool
	Hidden          bool
	QD              int
	FreezeRequested bool
}

func (f *finalCartridgeIII) SaveState() interface{} {
	return finalCartridgeIIIState{f.bank, f.game, f.exrom, f.hidden, f.qd, f.freezeRequested}
}

func (f *finalCartridgeIII) RestoreState(state interface{}) error {
	if s, ok := state.(finalCartridgeIIIState); ok {
		f.bank, f.game, f.exrom, f.hidden, f.qd, f.freezeRequested =
			s.Bank, s.Game, s.Exrom, s.Hidden, s.QD, s.FreezeRequested
	}
	return nil
}
