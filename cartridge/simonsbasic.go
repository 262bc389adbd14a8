package cartridge

// simonsBasic implements CRT hardware type 4. It powers up in 16KiB mode
// (ROML $8000-$9FFF and ROMH $A000-$BFFF both visible, GAME=0, EXROM=0),
// the way Simons' BASIC needs to expose its extension vectors. A write to
// $DE00 drops it to 8KiB mode (GAME=1) so the BASIC program can use
// $A000-$BFFF as ordinary RAM; a read of $DE00 switches back to 16KiB
// mode.
type simonsBasic struct {
	rom      []byte // 16KiB total: first 8K is ROML, second 8K is ROMH
	wide     bool
}

func newSimonsBasic(banks [][]byte) *simonsBasic {
	s := &simonsBasic{wide: true}
	for _, b := range banks {
		s.rom = append(s.rom, b...)
	}
	return s
}

func (s *simonsBasic) PeekRomL(addr uint16) uint8 {
	off := int(addr - 0x8000)
	if off < len(s.rom) && off < 0x2000 {
		return s.rom[off]
	}
	return 0xFF
}

func (s *simonsBasic) PeekRomH(addr uint16) uint8 {
	if !s.wide {
		return 0xFF
	}
	off := 0x2000 + int(addr-0xA000)
	if off < len(s.rom) {
		return s.rom[off]
	}
	return 0xFF
}

func (s *simonsBasic) PokeRomL(addr uint16, value uint8) {}
func (s *simonsBasic) PokeRomH(addr uint16, value uint8) {}

func (s *simonsBasic) PeekIO1(addr uint16) uint8 {
	s.wide = true
	return 0xFF
}

func (s *simonsBasic) PokeIO1(addr uint16, value uint8) {
	s.wide = false
}

func (s *simonsBasic) PeekIO2(addr uint16) uint8        { return 0xFF }
func (s *simonsBasic) PokeIO2(addr uint16, value uint8) {}

func (s *simonsBasic) NumBanks() int { return 1 }
func (s *simonsBasic) GetBank() int  { return 0 }
func (s *simonsBasic) SetBank(b int) {}
func (s *simonsBasic) Game() bool    { return !s.wide }
func (s *simonsBasic) Exrom() bool   { return false }

func (s *simonsBasic) Reset() { s.wide = true }

func (s *simonsBasic) SaveState() interface{} { return s.wide }
func (s *simonsBasic) RestoreState(state interface{}) error {
	if w, ok := state.(bool); ok {
		s.wide = w
	}
	return nil
}
