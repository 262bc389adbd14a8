package cartridge

// ocean implements CRT hardware type 5, used by most Ocean-published
// titles (Robocop 2, Battle Command, ...): up to 64 banks of 8KiB each,
// bank selected by the low 6 bits of any write to $DE00, ROML only, GAME
// and EXROM held fixed at their 8KiB-cartridge values.
type ocean struct {
	banks [][]byte
	bank  int
}

func newOcean(banks [][]byte) *ocean {
	return &ocean{banks: banks}
}

func (o *ocean) PeekRomL(addr uint16) uint8 {
	if o.bank >= len(o.banks) {
		return 0xFF
	}
	off := int(addr - 0x8000)
	bank := o.banks[o.bank]
	if off < len(bank) {
		return bank[off]
	}
	return 0xFF
}

func (o *ocean) PeekRomH(addr uint16) uint8 { return 0xFF }
func (o *ocean) PokeRomL(addr uint16, value uint8) {}
func (o *ocean) PokeRomH(addr uint16, value uint8) {}

func (o *ocean) PeekIO1(addr uint16) uint8 { return 0xFF }

func (o *ocean) PokeIO1(addr uint16, value uint8) {
	o.bank = int(value & 0x3F)
}

func (o *ocean) PeekIO2(addr uint16) uint8        { return 0xFF }
func (o *ocean) PokeIO2(addr uint16, value uint8) {}

func (o *ocean) NumBanks() int { return len(o.banks) }
func (o *ocean) GetBank() int  { return o.bank }
func (o *ocean) SetBank(b int) { o.bank = b }
func (o *ocean) Game() bool    { return true }
func (o *ocean) Exrom() bool   { return false }

func (o *ocean) Reset() { o.bank = 0 }

func (o *ocean) SaveState() interface{} { return o.bank }
func (o *ocean) RestoreState(state interface{}) error {
	if b, ok := state.(int); ok {
		o.bank = b
	}
	return nil
}
