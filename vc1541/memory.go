package vc1541

import "github.com/vc64/core/errors"

// driveMemory is the 1541's address map as seen by its own 6502: 2KiB of
// RAM mirrored every 2KiB up to $17FF, VIA1 at $1800-$180F (mirrored
// through $1BFF), VIA2 at $1C00-$1C0F (mirrored through $1FFF), and
// 16KiB of ROM at $C000-$FFFF, grounded on
// original_source/Emulator/Memory/DriveMemory.h's region layout.
type driveMemory struct {
	ram  [2048]uint8
	rom  [16384]uint8
	romLoaded bool

	via1 *VIA
	via2 *VIA
}

func newDriveMemory(via1, via2 *VIA) *driveMemory {
	return &driveMemory{via1: via1, via2: via2}
}

// LoadROM installs the 1541's DOS ROM image (exactly 16KiB).
func (m *driveMemory) LoadROM(image []byte) error {
	if len(image) != len(m.rom) {
		return errors.Errorf(errors.ROMSizeMismatch, len(image))
	}
	copy(m.rom[:], image)
	m.romLoaded = true
	return nil
}

func (m *driveMemory) Peek(addr uint16) uint8 {
	switch {
	case addr < 0x1800:
		return m.ram[addr&0x07FF]
	case addr < 0x1C00:
		return m.via1.Peek(addr)
	case addr < 0x2000:
		return m.via2.Peek(addr)
	case addr >= 0xC000:
		return m.rom[addr-0xC000]
	default:
		return 0xFF
	}
}

func (m *driveMemory) Poke(addr uint16, value uint8) {
	switch {
	case addr < 0x1800:
		m.ram[addr&0x07FF] = value
	case addr < 0x1C00:
		m.via1.Poke(addr, value)
	case addr < 0x2000:
		m.via2.Poke(addr, value)
	}
}
