package cartridge

// actionReplay implements CRT hardware type 1: a freezer cartridge with
// 4 banks of 8KiB ROM, 8KiB of battery-backed RAM mapped into the same
// ROML window when enabled, and a control register at $DE00 that selects
// the bank and the GAME/EXROM lines. Pressing the cartridge's physical
// freeze button asserts NMI and forces bank 0 with both ROML and ROMH
// visible, regardless of what software last wrote to the control
// register — modeled here via the Freezable interface rather than a
// literal button line, since nothing in this core drives a real GPIO.
type actionReplay struct {
	banks [][]byte
	ram   [8192]byte

	bank       int
	exromHigh  bool
	game       bool
	ramEnabled bool
	disabled   bool

	freezeRequested bool
}

func newActionReplay(banks [][]byte) *actionReplay {
	return &actionReplay{banks: banks, game: true}
}

func (a *actionReplay) PeekRomL(addr uint16) uint8 {
	if a.disabled {
		return 0xFF
	}
	off := int(addr - 0x8000)
	if a.ramEnabled {
		return a.ram[off]
	}
	if a.bank < len(a.banks) && off < len(a.banks[a.bank]) {
		return a.banks[a.bank][off]
	}
	return 0xFF
}

func (a *actionReplay) PeekRomH(addr uint16) uint8 {
	if a.disabled || a.game {
		return 0xFF
	}
	off := 0x2000 + int(addr-0xA000)
	if a.bank < len(a.banks) && off < len(a.banks[a.bank]) {
		return a.banks[a.bank][off]
	}
	return 0xFF
}

func (a *actionReplay) PokeRomL(addr uint16, value uint8) {
	if a.ramEnabled {
		a.ram[addr-0x8000] = value
	}
}
func (a *actionReplay) PokeRomH(addr uint16, value uint8) {}

func (a *actionReplay) PeekIO1(addr uint16) uint8 { return 0xFF }

func (a *actionReplay) PokeIO1(addr uint16, value uint8) {
	if a.disabled {
		return
	}
	a.bank = int(value & 0x03)
	a.exromHigh = value&0x04 != 0
	a.game = value&0x08 == 0
	a.ramEnabled = value&0x20 != 0
	if value&0x40 != 0 {
		a.disabled = true
	}
}

func (a *actionReplay) PeekIO2(addr uint16) uint8        { return 0xFF }
func (a *actionReplay) PokeIO2(addr uint16, value uint8) {}

func (a *actionReplay) NumBanks() int { return len(a.banks) }
func (a *actionReplay) GetBank() int  { return a.bank }
func (a *actionReplay) SetBank(b int) { a.bank = b }
func (a *actionReplay) Game() bool    { return a.game }
func (a *actionReplay) Exrom() bool   { return a.exromHigh }

func (a *actionReplay) Reset() {
	a.bank, a.exromHigh, a.ramEnabled, a.disabled = 0, false, false, false
	a.game = true
}

// RequestFreeze is called by the host when the user presses the
// cartridge's freeze button.
func (a *actionReplay) RequestFreeze() { a.freezeRequested = true }

func (a *actionReplay) Freeze() bool {
	if !a.freezeRequested {
		return false
	}
	a.freezeRequested = false
	a.bank, a.exromHigh, a.game, a.disabled = 0, false, false, false
	return true
}

type actionReplayState struct {
	Bank                          int
	ExromHigh, Game, RAMEnabled   bool
	Disabled                      bool
	RAM                           [8192]byte
}

func (a *actionReplay) SaveState() interface{} {
	return actionReplayState{a.bank, a.exromHigh, a.game, a.ramEnabled, a.disabled, a.ram}
}

func (a *actionReplay) RestoreState(state interface{}) error {
	if s, ok := state.(actionReplayState); ok {
		a.bank, a.exromHigh, a.game, a.ramEnabled, a.disabled, a.ram =
			s.Bank, s.ExromHigh, s.Game, s.RAMEnabled, s.Disabled, s.RAM
	}
	return nil
}
