package cartridge

// magicDesk implements CRT hardware type 19: 8KiB ROML banks selected by
// writes to $DE00 (low bits choose the bank), with bit 7 of that same
// write additionally able to switch EXROM high to disable the cartridge
// entirely under software control, which the game's own exit code uses.
type magicDesk struct {
	banks  [][]byte
	bank   int
	exromHigh bool
}

func newMagicDesk(banks [][]byte) *magicDesk {
	return &magicDesk{banks: banks}
}

func (m *magicDesk) PeekRomL(addr uint16) uint8 {
	if m.exromHigh || m.bank >= len(m.banks) {
		return 0xFF
	}
	off := int(addr - 0x8000)
	bank := m.banks[m.bank]
	if off < len(bank) {
		return bank[off]
	}
	return 0xFF
}

func (m *magicDesk) PeekRomH(addr uint16) uint8    { return 0xFF }
func (m *magicDesk) PokeRomL(addr uint16, value uint8) {}
func (m *magicDesk) PokeRomH(addr uint16, value uint8) {}

func (m *magicDesk) PeekIO1(addr uint16) uint8 { return 0xFF }

func (m *magicDesk) PokeIO1(addr uint16, value uint8) {
	m.bank = int(value & 0x3F)
	m.exromHigh = value&0x80 != 0
}

func (m *magicDesk) PeekIO2(addr uint16) uint8        { return 0xFF }
func (m *magicDesk) PokeIO2(addr uint16, value uint8) {}

func (m *magicDesk) NumBanks() int { return len(m.banks) }
func (m *magicDesk) GetBank() int  { return m.bank }
func (m *magicDesk) SetBank(b int) { m.bank = b }
func (m *magicDesk) Game() bool    { return true }
func (m *magicDesk) Exrom() bool   { return m.exromHigh }

func (m *magicDesk) Reset() { m.bank = 0; m.exromHigh = false }

func (m *magicDesk) SaveState() interface{} {
	return [2]int{m.bank, boolToInt(m.exromHigh)}
}

func (m *magicDesk) RestoreState(state interface{}) error {
	if s, ok := state.([2]int); ok {
		m.bank = s[0]
		m.exromHigh = s[1] != 0
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
