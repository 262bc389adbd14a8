// Package mem implements the C64's banked 64KiB address space: the
// superposition of RAM, the three mask ROMs, colour RAM, I/O space, and a
// cartridge's ROML/ROMH windows, selected by the processor port bits and
// the cartridge's EXROM/GAME lines (spec.md's memory module, grounded on
// original_source's C64Memory).
package mem

import "github.com/vc64/core/errors"

// Cartridge is the subset of the expansion port a Memory needs: reads and
// writes into the ROML/ROMH windows and the IO1/IO2 register windows.
// The concrete implementation lives in package cartridge; Memory only
// depends on this interface to avoid an import cycle.
type Cartridge interface {
	PeekRomL(addr uint16) uint8
	PeekRomH(addr uint16) uint8
	PokeRomL(addr uint16, value uint8)
	PokeRomH(addr uint16, value uint8)
	PeekIO1(addr uint16) uint8
	PokeIO1(addr uint16, value uint8)
	PeekIO2(addr uint16) uint8
	PokeIO2(addr uint16, value uint8)
}

// IODevice answers reads/writes in one of the four $D000-$DFFF quadrants
// (VIC-II, SID, CIA1, CIA2). VIC-II and SID are out of scope for this core
// (spec.md's non-goals: they are external collaborators); Memory still
// needs *somewhere* to route those quadrants, so a no-op openBusDevice is
// wired in by default and machine.Machine replaces the CIA ones with the
// real cia.CIA Peek/Poke methods.
type IODevice interface {
	Peek(addr uint16) uint8
	Poke(addr uint16, value uint8)
}

type openBusDevice struct{ last uint8 }

func (d *openBusDevice) Peek(addr uint16) uint8 {
	return d.last
}
func (d *openBusDevice) Poke(addr uint16, value uint8) {
	d.last = value
}

// Memory is the C64's full address space plus banking state.
type Memory struct {
	RAM      [65536]uint8
	ColorRAM [1024]uint8

	basicROM  [8192]uint8
	kernalROM [8192]uint8
	charROM   [4096]uint8

	basicLoaded, kernalLoaded, charLoaded bool

	exrom, game, charen, hiram, loram bool

	peekSrc    [16]Source
	pokeTarget [16]Source

	cart Cartridge

	// vic/sid quadrants ($D000-$D3FF, $D400-$D7FF) have no real device in
	// this core; cia1/cia2 cover $DC00-$DCFF and $DD00-$DDFF.
	vicSid  IODevice
	cia1    IODevice
	cia2    IODevice

	// lastBus is what an un-driven address reads back as: the last byte
	// that appeared on the bus, approximating the real floating-bus
	// behaviour of unmapped regions like $1000-$7FFF when a cartridge game
	// line maps nothing there.
	lastBus uint8
}

// New returns a Memory with no cartridge and no ROMs loaded, processor
// port bits at their power-on default (everything mapped in).
func New() *Memory {
	m := &Memory{
		exrom: true, game: true, // no cartridge present: both lines high
		charen: true, hiram: true, loram: true,
		vicSid: &openBusDevice{},
		cia1:   &openBusDevice{},
		cia2:   &openBusDevice{},
	}
	m.updateLookupTables()
	return m
}

// PlumbCartridge attaches (or detaches, with nil) the expansion port
// cartridge currently inserted.
func (m *Memory) PlumbCartridge(cart Cartridge) {
	m.cart = cart
	m.updateLookupTables()
}

// PlumbCIA attaches the two CIA chips' register windows.
func (m *Memory) PlumbCIA(cia1, cia2 IODevice) {
	m.cia1 = cia1
	m.cia2 = cia2
}

// SetExrom and SetGame are driven by the currently inserted cartridge,
// re-read every cycle by machine.Machine.Tick since a mapper can change
// either line from a register write or its own Execute (not just at
// install time); SetProcessorPort is driven by the CPU writing to
// $0000/$0001.
func (m *Memory) SetExrom(v bool) {
	if m.exrom == v {
		return
	}
	m.exrom = v
	m.updateLookupTables()
}

func (m *Memory) SetGame(v bool) {
	if m.game == v {
		return
	}
	m.game = v
	m.updateLookupTables()
}

// Game and Exrom report the cartridge port lines mem.Memory is currently
// banking against.
func (m *Memory) Game() bool  { return m.game }
func (m *Memory) Exrom() bool { return m.exrom }

// SetProcessorPort updates LORAM/HIRAM/CHAREN from the 6510's data
// direction-masked port value (bits 0-2).
func (m *Memory) SetProcessorPort(loram, hiram, charen bool) {
	m.loram, m.hiram, m.charen = loram, hiram, charen
	m.updateLookupTables()
}

// LoadBasicROM, LoadKernalROM, LoadCharROM flash a ROM image of the
// expected size into memory (spec.md §6: ROMs are accepted or rejected by
// exact size/hash, not merely "best effort").
func (m *Memory) LoadBasicROM(image []byte) error {
	if len(image) != len(m.basicROM) {
		return errors.Errorf(errors.ROMSizeMismatch, len(image))
	}
	copy(m.basicROM[:], image)
	m.basicLoaded = true
	return nil
}

func (m *Memory) LoadKernalROM(image []byte) error {
	if len(image) != len(m.kernalROM) {
		return errors.Errorf(errors.ROMSizeMismatch, len(image))
	}
	copy(m.kernalROM[:], image)
	m.kernalLoaded = true
	return nil
}

func (m *Memory) LoadCharROM(image []byte) error {
	if len(image) != len(m.charROM) {
		return errors.Errorf(errors.ROMSizeMismatch, len(image))
	}
	copy(m.charROM[:], image)
	m.charLoaded = true
	return nil
}

func (m *Memory) ROMsLoaded() bool {
	return m.basicLoaded && m.kernalLoaded && m.charLoaded
}

// Peek implements cpu.Memory: a CPU-side read of addr.
func (m *Memory) Peek(addr uint16) uint8 {
	v := m.peek(addr)
	m.lastBus = v
	return v
}

func (m *Memory) peek(addr uint16) uint8 {
	if addr < 0x1000 {
		return m.RAM[addr]
	}

	switch m.peekSrc[addr>>12] {
	case SourceRAM:
		return m.RAM[addr]
	case SourceBasic:
		return m.basicROM[addr-0xA000]
	case SourceKernal:
		return m.kernalROM[addr-0xE000]
	case SourceChar:
		return m.charROM[addr-0xD000]
	case SourceCartLo:
		if m.cart != nil {
			return m.cart.PeekRomL(addr)
		}
		return m.lastBus
	case SourceCartHi:
		if m.cart != nil {
			return m.cart.PeekRomH(addr)
		}
		return m.lastBus
	case SourceIO:
		return m.peekIO(addr)
	default:
		return m.lastBus
	}
}

func (m *Memory) peekIO(addr uint16) uint8 {
	switch {
	case addr >= 0xD800 && addr < 0xDC00:
		return m.ColorRAM[addr-0xD800] & 0x0F
	case addr >= 0xDC00 && addr < 0xDD00:
		return m.cia1.Peek(addr)
	case addr >= 0xDD00 && addr < 0xDE00:
		return m.cia2.Peek(addr)
	case addr >= 0xDE00 && addr < 0xDF00:
		if m.cart != nil {
			return m.cart.PeekIO1(addr)
		}
		return m.lastBus
	case addr >= 0xDF00:
		if m.cart != nil {
			return m.cart.PeekIO2(addr)
		}
		return m.lastBus
	default: // $D000-$D7FF: VIC-II / SID, out of scope
		return m.vicSid.Peek(addr)
	}
}

// Poke implements cpu.Memory: a CPU-side write of addr.
func (m *Memory) Poke(addr uint16, value uint8) {
	m.lastBus = value

	if addr < 0x1000 {
		m.RAM[addr] = value
		return
	}

	switch m.pokeTarget[addr>>12] {
	case SourceRAM:
		m.RAM[addr] = value
	case SourceCartLo:
		if m.cart != nil {
			m.cart.PokeRomL(addr, value)
		}
	case SourceCartHi:
		if m.cart != nil {
			m.cart.PokeRomH(addr, value)
		}
	case SourceIO:
		m.pokeIO(addr, value)
	case SourceNone:
		// open bus: write sinks nowhere
	}
}

func (m *Memory) pokeIO(addr uint16, value uint8) {
	switch {
	case addr >= 0xD800 && addr < 0xDC00:
		m.ColorRAM[addr-0xD800] = value & 0x0F
	case addr >= 0xDC00 && addr < 0xDD00:
		m.cia1.Poke(addr, value)
	case addr >= 0xDD00 && addr < 0xDE00:
		m.cia2.Poke(addr, value)
	case addr >= 0xDE00 && addr < 0xDF00:
		if m.cart != nil {
			m.cart.PokeIO1(addr, value)
		}
	case addr >= 0xDF00:
		if m.cart != nil {
			m.cart.PokeIO2(addr, value)
		}
	default:
		m.vicSid.Poke(addr, value)
	}
}

// PeekRaw bypasses banking entirely, reading straight from the RAM array;
// used by the debugger/memviz adapter and by snapshot save/restore.
func (m *Memory) PeekRaw(addr uint16) uint8 { return m.RAM[addr] }
func (m *Memory) PokeRaw(addr uint16, value uint8) { m.RAM[addr] = value }
