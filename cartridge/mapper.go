// Package cartridge implements the C64 expansion port's polymorphic
// bank-switching hardware: the dozens of distinct cartridge circuits sold
// over the machine's life, modeled as implementations of a shared Mapper
// interface (spec.md's expansion module), grounded on the teacher's
// hardware/memory/cartridge.cartMapper design generalized from Atari bank
// switching schemes to C64 ones.
package cartridge

import "github.com/vc64/core/errors"

// Mapper is the polymorphic cartridge interface every hardware variant
// implements. All addresses are the full C64 address ($8000-$9FFF for
// ROML, $A000-$BFFF or $E000-$FFFF for ROMH depending on GAME/EXROM,
// $DE00-$DEFF for IO1, $DF00-$DFFF for IO2), matching what mem.Cartridge
// expects.
type Mapper interface {
	PeekRomL(addr uint16) uint8
	PeekRomH(addr uint16) uint8
	PokeRomL(addr uint16, value uint8)
	PokeRomH(addr uint16, value uint8)
	PeekIO1(addr uint16) uint8
	PokeIO1(addr uint16, value uint8)
	PeekIO2(addr uint16) uint8
	PokeIO2(addr uint16, value uint8)

	// NumBanks and GetBank/SetBank expose the current mapping for the
	// debugger and for snapshotting.
	NumBanks() int
	GetBank() int
	SetBank(bank int)

	// Game and Exrom report the cartridge port lines this mapper is
	// currently driving; mem.Memory re-derives its bank-map row whenever
	// either changes.
	Game() bool
	Exrom() bool

	SaveState() interface{}
	RestoreState(state interface{}) error
}

// Resettable mappers reinitialise their banking state on a C64 reset
// (most hardware with a hardwired bank-select latch does this);
// machine.Machine.Reset calls Reset on any installed mapper that has it.
type Resettable interface {
	Reset()
}

// Freezable mappers have a front-panel freeze button (Action Replay,
// Final Cartridge III, ...) that pulls NMI and forces a bank/mode.
type Freezable interface {
	Freeze() bool // returns true if a freeze NMI should be asserted
}

// Executable mappers run per-cycle logic independent of the CPU's own
// memory accesses (Epyx FastLoad's capacitor-discharge timeout is the
// canonical example: it keeps ROML mapped in for a fixed number of
// cycles after the last access, counted down regardless of what the CPU
// is doing). machine.Machine.Tick calls Execute once per cycle, step 5
// of spec.md's dispatch order, whenever the installed mapper implements
// this.
type Executable interface {
	Execute()
}

// HardwareType is this package's own cartridge-variant enum; NewMapper
// dispatches on it. Its values are not the CRT file format's numeric
// hardware-type codes: the crt package translates those into it.
type HardwareType int

const (
	TypeNormal HardwareType = iota
	TypeActionReplay
	TypeSimonsBasic
	TypeOcean
	TypeMagicDesk
	TypeEasyFlash
	TypeFinalCartridgeIII
	TypeEpyxFastLoad
)

// NewMapper builds the Mapper for the given hardware type from raw CHIP
// bank data (already split by the crt package into one []byte per bank).
func NewMapper(kind HardwareType, banks [][]byte) (Mapper, error) {
	switch kind {
	case TypeNormal:
		return newGeneric(banks), nil
	case TypeActionReplay:
		return newActionReplay(banks), nil
	case TypeSimonsBasic:
		return newSimonsBasic(banks), nil
	case TypeOcean:
		return newOcean(banks), nil
	case TypeMagicDesk:
		return newMagicDesk(banks), nil
	case TypeEasyFlash:
		return newEasyFlash(banks), nil
	case TypeFinalCartridgeIII:
		return newFinalCartridgeIII(banks), nil
	case TypeEpyxFastLoad:
		return newEpyxFastLoad(banks), nil
	default:
		return nil, errors.Errorf(errors.CartridgeUnsupported, int(kind))
	}
}
