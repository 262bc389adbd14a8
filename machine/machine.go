// Package machine is the root aggregate: it owns every chip and peripheral
// package in this module, wires them to each other exactly once at
// construction, and drives them cycle-by-cycle in the fixed dispatch
// order spec.md §5 requires, matching the teacher's hardware.VCS as the
// single owning struct a host program talks to.
package machine

import (
	"github.com/vc64/core/cartridge"
	"github.com/vc64/core/cia"
	"github.com/vc64/core/config"
	"github.com/vc64/core/cpu"
	"github.com/vc64/core/datasette"
	"github.com/vc64/core/disk"
	"github.com/vc64/core/errors"
	"github.com/vc64/core/hostio"
	"github.com/vc64/core/iec"
	"github.com/vc64/core/mem"
	"github.com/vc64/core/romloader"
	"github.com/vc64/core/vc1541"
)

// Machine is a complete C64 plus one attached VC1541 drive and datasette.
type Machine struct {
	cfg *config.Config

	cycle uint64

	cpu *cpu.CPU
	mem *mem.Memory
	bus *processorPort

	cia1 *cia.CIA
	cia2 *cia.CIA

	iecBus    *iec.Bus
	c64Serial *cia2Ports

	drive *vc1541.Drive
	deck  *datasette.Deck

	cart cartridge.Mapper

	// cartFreezeHeld is true for the one cycle following a Freezable
	// cartridge's freeze NMI pulse, so ReleaseNMI runs on the following
	// Tick before the CPU samples its edge detector again.
	cartFreezeHeld bool

	Queue *hostio.Queue

	suspendDepth int
}

// New builds a Machine wired per cfg. The VC1541 drive is always present;
// cfg.VC1541Attached only controls whether it ticks (spec.md §3.2: the
// drive's connectedness is a boolean, not its existence).
func New(cfg *config.Config) (*Machine, error) {
	m := &Machine{
		cfg:   cfg,
		Queue: hostio.New(),
	}

	m.mem = mem.New()
	m.cpu = cpu.NewCPU()

	m.cia1 = cia.New()
	m.cia1.Plumb(cia1Ports{}, cia1Interrupts{c: m.cpu})

	m.iecBus = iec.New()
	m.c64Serial = &cia2Ports{bus: m.iecBus}
	m.cia2 = cia.New()
	m.cia2.Plumb(m.c64Serial, cia2Interrupts{c: m.cpu})
	m.iecBus.Attach(m.c64Serial)

	m.mem.PlumbCIA(m.cia1, m.cia2)

	m.deck = datasette.New()
	m.deck.Plumb(func() { m.cia1.SignalFlag() })

	m.bus = newProcessorPort(m.mem, m.deck)
	m.cpu.Plumb(m.bus)

	m.drive = vc1541.New(8, m.iecBus)
	m.drive.Connected = cfg.VC1541Attached.Get()

	m.cpu.Reset()

	return m, nil
}

// LoadROM verifies image against the known-good table for kind and, if
// accepted, installs it into the component that owns that ROM (BASIC,
// KERNAL and the character generator live in mem.Memory; the drive DOS
// ROM lives in the VC1541).
func (m *Machine) LoadROM(k romloader.Kind, image []byte) error {
	if _, err := romloader.Verify(k, image); err != nil {
		return err
	}

	var err error
	switch k {
	case romloader.KindBasic:
		err = m.mem.LoadBasicROM(image)
	case romloader.KindKernal:
		err = m.mem.LoadKernalROM(image)
	case romloader.KindChargen:
		err = m.mem.LoadCharROM(image)
	case romloader.KindDriveDOS:
		err = m.drive.LoadROM(image)
	}
	if err != nil {
		return err
	}

	m.Queue.Put(hostio.MsgROMLoaded, uint64(k))
	return nil
}

// InstallCartridge plugs cart into the expansion port, replacing whatever
// was there before, and re-derives GAME/EXROM-driven banking.
func (m *Machine) InstallCartridge(cart cartridge.Mapper) error {
	m.cart = cart
	m.mem.PlumbCartridge(cart)
	m.mem.SetGame(cart.Game())
	m.mem.SetExrom(cart.Exrom())
	m.Queue.Put(hostio.MsgCartridgeAttached, 0)
	return nil
}

// EjectCartridge removes whatever cartridge is installed, if any,
// restoring the no-cartridge GAME/EXROM state (both lines high).
func (m *Machine) EjectCartridge() {
	if m.cart == nil {
		return
	}
	m.cart = nil
	m.mem.PlumbCartridge(nil)
	m.mem.SetGame(true)
	m.mem.SetExrom(true)
	m.Queue.Put(hostio.MsgCartridgeDetached, 0)
}

// InsertDisk mounts dsk (already GCR-encoded by d64.Encode or g64.Load)
// into the attached drive.
func (m *Machine) InsertDisk(dsk *disk.Disk) {
	m.drive.InsertDisk(dsk)
	m.Queue.Put(hostio.MsgDiskInserted, 0)
}

// EjectDisk removes whatever disk is in the drive, if any.
func (m *Machine) EjectDisk() {
	m.drive.EjectDisk()
	m.Queue.Put(hostio.MsgDiskEjected, 0)
}

// InsertTape loads a TAP image into the datasette deck.
func (m *Machine) InsertTape(image []byte) error {
	if err := m.deck.InsertTape(image); err != nil {
		return err
	}
	m.Queue.Put(hostio.MsgTapeInserted, 0)
	return nil
}

// EjectTape removes whatever tape is in the deck, if any.
func (m *Machine) EjectTape() {
	m.deck.EjectTape()
	m.Queue.Put(hostio.MsgTapeEjected, 0)
}

// Reset pulses the CPU's reset line and reinitialises both CIAs. It is
// rejected while the machine is suspended, since a reset mid-inspection
// would invalidate whatever the caller suspended to look at.
func (m *Machine) Reset() error {
	if m.suspendDepth > 0 {
		return errors.Errorf(errors.SuspendedTwice, m.suspendDepth)
	}
	m.cpu.Reset()
	m.cia1.Reset()
	m.cia2.Reset()
	if r, ok := m.cart.(cartridge.Resettable); ok {
		r.Reset()
	}
	m.Queue.Put(hostio.MsgReset, 0)
	return nil
}

// Suspend blocks cycle advancement for host-side observation (snapshot,
// debugger inspection). Calls nest; Tick is a no-op while suspended.
func (m *Machine) Suspend() {
	m.suspendDepth++
}

// Resume undoes one Suspend call.
func (m *Machine) Resume() error {
	if m.suspendDepth == 0 {
		return errors.Errorf(errors.ResumedTooMany)
	}
	m.suspendDepth--
	return nil
}

// Tick advances the machine by exactly one cycle, in the dispatch order
// spec.md §5 requires: CIA1/CIA2, CPU, the cartridge's execute() hook (if
// any), the VC1541 drive (if connected), and the datasette. The serial
// bus has no separate per-cycle step: it recomputes reactively whenever a
// device's port write changes what it pulls, which can only happen as a
// side effect of the CPU or drive CPU step that just ran.
func (m *Machine) Tick() error {
	if m.suspendDepth > 0 {
		return nil
	}

	m.cycle++

	m.cia1.Cycle()
	m.cia2.Cycle()

	if m.cartFreezeHeld {
		m.cpu.ReleaseNMI(cpu.SourceExpansion)
		m.cartFreezeHeld = false
	}

	if err := m.cpu.Cycle(); err != nil {
		return err
	}

	if ex, ok := m.cart.(cartridge.Executable); ok {
		ex.Execute()
	}

	// Re-derive the banking lines every cycle: a cartridge can change
	// GAME/EXROM from a register write (Poke*) or from its own Execute
	// (Final Cartridge III's delayed freeze grounds GAME a fixed number
	// of cycles after the button is pressed), and mem.Memory's bank-map
	// row needs to follow either, not just the state at install time.
	if m.cart != nil {
		m.mem.SetGame(m.cart.Game())
		m.mem.SetExrom(m.cart.Exrom())
	}

	// A Freezable cartridge's button press asserts NMI for exactly the
	// next cycle; cartFreezeHeld releases it again at the top of the
	// following Tick.
	if fz, ok := m.cart.(cartridge.Freezable); ok && fz.Freeze() {
		m.cpu.PullNMI(cpu.SourceExpansion)
		m.cartFreezeHeld = true
	}

	if m.drive.Connected {
		if err := m.drive.Tick(); err != nil {
			return err
		}
	}

	m.deck.Tick()

	return nil
}

// Run advances the machine by the given number of cycles, stopping early
// on the first error.
func (m *Machine) Run(cycles uint64) error {
	for i := uint64(0); i < cycles; i++ {
		if err := m.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Cycles reports the total number of cycles ticked since construction.
func (m *Machine) Cycles() uint64 { return m.cycle }

// CPU, Memory, CIA1, CIA2 and Drive expose the owned components for
// callers that need direct access (the debugger, conformance harness,
// or a host UI).
func (m *Machine) CPU() *cpu.CPU       { return m.cpu }
func (m *Machine) Memory() *mem.Memory { return m.mem }
func (m *Machine) CIA1() *cia.CIA      { return m.cia1 }
func (m *Machine) CIA2() *cia.CIA      { return m.cia2 }
func (m *Machine) Drive() *vc1541.Drive { return m.drive }
func (m *Machine) Datasette() *datasette.Deck { return m.deck }
