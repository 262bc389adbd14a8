package cartridge

// easyFlash implements CRT hardware type 32: 64 banks of 8KiB ROML plus
// 64 banks of 8KiB ROMH, each bank independently selectable, backed by
// flash chips the real hardware can reprogram but which this core treats
// as read-only images loaded from the CRT file. Two memory-mapped
// registers at $DE00 (bank number, shared by both ROML and ROMH) and
// $DE02 (mode: bit0 GAME, bit1 EXROM boot-time override, bit7 LED) gate
// visibility, mirroring the jumperless control scheme the real cartridge
// uses in place of hardwired GAME/EXROM pins.
type easyFlash struct {
	roml [][]byte
	romh [][]byte

	bank int
	mode uint8 // bit0: set = GAME low, bit1: set = EXROM high, bit7: LED
}

func newEasyFlash(banks [][]byte) *easyFlash {
	e := &easyFlash{}
	for i, b := range banks {
		if i%2 == 0 {
			e.roml = append(e.roml, b)
		} else {
			e.romh = append(e.romh, b)
		}
	}
	return e
}

func (e *easyFlash) PeekRomL(addr uint16) uint8 {
	if e.bank >= len(e.roml) {
		return 0xFF
	}
	off := int(addr - 0x8000)
	bank := e.roml[e.bank]
	if off < len(bank) {
		return bank[off]
	}
	return 0xFF
}

func (e *easyFlash) PeekRomH(addr uint16) uint8 {
	if e.bank >= len(e.romh) {
		return 0xFF
	}
	base := uint16(0xA000)
	if e.Game() == false && e.Exrom() == true {
		base = 0xE000
	}
	off := int(addr - base)
	bank := e.romh[e.bank]
	if off < len(bank) {
		return bank[off]
	}
	return 0xFF
}

func (e *easyFlash) PokeRomL(addr uint16, value uint8) {}
func (e *easyFlash) PokeRomH(addr uint16, value uint8) {}

func (e *easyFlash) PeekIO1(addr uint16) uint8 { return 0xFF }

func (e *easyFlash) PokeIO1(addr uint16, value uint8) {
	switch addr & 0x00FF {
	case 0x00:
		e.bank = int(value & 0x3F)
	case 0x02:
		e.mode = value & 0x83
	}
}

func (e *easyFlash) PeekIO2(addr uint16) uint8        { return 0xFF }
func (e *easyFlash) PokeIO2(addr uint16, value uint8) {}

func (e *easyFlash) NumBanks() int { return len(e.roml) }
func (e *easyFlash) GetBank() int  { return e.bank }
func (e *easyFlash) SetBank(b int) { e.bank = b }
func (e *easyFlash) Game() bool    { return e.mode&0x01 == 0 }
func (e *easyFlash) Exrom() bool   { return e.mode&0x02 != 0 }

func (e *easyFlash) Reset() { e.bank, e.mode = 0, 0 }

type easyFlashState struct {
	Bank int
	Mode uint8
}

func (e *easyFlash) SaveState() interface{} {
	return easyFlashState{e.bank, e.mode}
}

func (e *easyFlash) RestoreState(state interface{}) error {
	if s, ok := state.(easyFlashState); ok {
		e.bank, e.mode = s.Bank, s.Mode
	}
	return nil
}
