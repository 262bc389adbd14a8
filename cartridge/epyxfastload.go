package cartridge

// epyxFastLoad implements CRT hardware type 8: an 8KiB cartridge mapped
// into ROML only (GAME held high, EXROM held low while active), whose
// presence is gated by an on-board capacitor rather than a register, per
// spec.md §4.4: "an on-board capacitor that discharges on ROM or IO1
// reads and charges otherwise, disabling itself after approximately 512
// cycles of inactivity. The capacitor is modeled as a cycle count since
// last discharge."
type epyxFastLoad struct {
	rom []byte

	enabled    bool
	idleCycles int
}

// epyxFastLoadDischargeCycles is the capacitor's approximate hold time.
const epyxFastLoadDischargeCycles = 512

func newEpyxFastLoad(banks [][]byte) *epyxFastLoad {
	e := &epyxFastLoad{enabled: true}
	if len(banks) > 0 {
		e.rom = banks[0]
	}
	return e
}

func (e *epyxFastLoad) discharge() { e.idleCycles = 0 }

func (e *epyxFastLoad) PeekRomL(addr uint16) uint8 {
	e.discharge()
	if !e.enabled {
		return 0xFF
	}
	off := int(addr - 0x8000)
	if off < len(e.rom) {
		return e.rom[off]
	}
	return 0xFF
}

func (e *epyxFastLoad) PeekRomH(addr uint16) uint8        { return 0xFF }
func (e *epyxFastLoad) PokeRomL(addr uint16, value uint8) {}
func (e *epyxFastLoad) PokeRomH(addr uint16, value uint8) {}

func (e *epyxFastLoad) PeekIO1(addr uint16) uint8 {
	e.discharge()
	return 0xFF
}
func (e *epyxFastLoad) PokeIO1(addr uint16, value uint8) { e.discharge() }

func (e *epyxFastLoad) PeekIO2(addr uint16) uint8        { return 0xFF }
func (e *epyxFastLoad) PokeIO2(addr uint16, value uint8) {}

func (e *epyxFastLoad) NumBanks() int { return 1 }
func (e *epyxFastLoad) GetBank() int  { return 0 }
func (e *epyxFastLoad) SetBank(b int) {}
func (e *epyxFastLoad) Game() bool    { return true }
func (e *epyxFastLoad) Exrom() bool   { return !e.enabled }

func (e *epyxFastLoad) Reset() { e.enabled, e.idleCycles = true, 0 }

// Execute ticks the capacitor's charge once per cycle; once
// epyxFastLoadDischargeCycles have passed since the last discharging
// ROML/IO1 access, the cartridge disables itself until the next reset.
func (e *epyxFastLoad) Execute() {
	if !e.enabled {
		return
	}
	e.idleCycles++
	if e.idleCycles >= epyxFastLoadDischargeCycles {
		e.enabled = false
	}
}

type epyxFastLoadState struct {
	Enabled    bool
	IdleCycles int
}

func (e *epyxFastLoad) SaveState() interface{} {
	return epyxFastLoadState{e.enabled, e.idleCycles}
}

func (e *epyxFastLoad) RestoreState(state interface{}) error {
	if s, ok := state.(epyxFastLoadState); ok {
		e.enabled, e.idleCycles = s.Enabled, s.IdleCycles
	}
	return nil
}
