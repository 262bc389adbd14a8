package vc1541

import (
	"github.com/vc64/core/cpu"
	"github.com/vc64/core/disk"
	"github.com/vc64/core/iec"
)

// bitPeriodQuarters gives the number of quarter-drive-cycles between
// successive bits for each of the four speed zones (density bits 00-11),
// derived from original_source/Emulator/Drive/Drive.h's
// delayBetweenTwoCarryPulses comment: "approx. 3.25 CPU cycles in the
// fastest zone and approx. 4 CPU cycles in the slowest zone."
var bitPeriodQuarters = [4]int{16, 15, 14, 13}

// Drive is a single 1541 floppy drive: its own 6502 with no processor
// port, 2KiB RAM + 16KiB ROM, VIA1 (serial bus side) and VIA2 (head/motor
// side), and the GCR head logic that reads and writes a disk.Disk one
// bit at a time, grounded on original_source/Emulator/Drive/Drive.h.
type Drive struct {
	DeviceNumber int
	Connected    bool

	CPU  *cpu.CPU
	mem  *driveMemory
	VIA1 *VIA
	VIA2 *VIA

	Disk *disk.Disk

	halftrack int
	offset    int
	zone      uint8

	readShiftReg  uint16 // low 10 bits hold the most recently read bits
	writeShiftReg uint8
	writeBitsLeft int

	bitReadyTimer int
	byteReadyCounter uint8
	byteReady        bool
	sync             bool

	spinning     bool
	redLED       bool
	stepperPhase uint8

	bus       *iec.Bus
	via1Ports *via1Ports
	via2Ports *via2Ports
}

// New builds a drive with device number id (8 or 9), wired onto the
// given IEC bus.
func New(id int, bus *iec.Bus) *Drive {
	d := &Drive{DeviceNumber: id, bus: bus, halftrack: 1, zone: 3}

	d.VIA1 = NewVIA()
	d.VIA2 = NewVIA()

	d.via1Ports = &via1Ports{drive: d}
	d.via2Ports = &via2Ports{drive: d}
	d.VIA1.Plumb(d.via1Ports, &viaIRQ{source: cpu.SourceVIA1, drive: d})
	d.VIA2.Plumb(d.via2Ports, &viaIRQ{source: cpu.SourceVIA2, drive: d})

	d.mem = newDriveMemory(d.VIA1, d.VIA2)
	d.CPU = cpu.NewCPU()
	d.CPU.Plumb(d.mem)

	if bus != nil {
		bus.Attach(d.via1Ports)
	}
	return d
}

// LoadROM installs the drive's 16KiB DOS ROM.
func (d *Drive) LoadROM(image []byte) error {
	return d.mem.LoadROM(image)
}

// InsertDisk mounts a disk.Disk (already GCR-encoded by d64 or g64). The
// head only actually turns once the drive program energizes the motor
// (VIA2 PB2), reflected in d.spinning.
func (d *Drive) InsertDisk(dsk *disk.Disk) {
	d.Disk = dsk
}

// EjectDisk removes the current disk.
func (d *Drive) EjectDisk() {
	d.Disk = nil
}

// ReadMode reports whether the head is configured to read (VIA2's CB2
// high) rather than write.
func (d *Drive) ReadMode() bool { return d.VIA2.GetCB2() }

// Track returns the current track number (1-42).
func (d *Drive) Track() int { return disk.Track(d.halftrack) }

// setZone updates the speed zone from VIA2 PB5/PB6 (the density bits)
// whenever the drive program writes them.
func (d *Drive) setZone(z uint8) { d.zone = z & 0x03 }

func (d *Drive) moveHeadUp() {
	if d.halftrack < disk.NumHalftracks {
		d.halftrack++
	}
}

func (d *Drive) moveHeadDown() {
	if d.halftrack > 1 {
		d.halftrack--
	}
}

// Tick advances the drive by one of its own clock cycles: the CPU, both
// VIAs, and (when a disk is spinning) the head bit timer.
func (d *Drive) Tick() error {
	if !d.Connected {
		return nil
	}
	if err := d.CPU.Cycle(); err != nil {
		return err
	}
	d.VIA1.Cycle()
	d.VIA2.Cycle()

	if d.spinning && d.Disk != nil {
		d.bitReadyTimer -= 4
		if d.bitReadyTimer <= 0 {
			d.bitReadyTimer += bitPeriodQuarters[d.zone]
			d.processBit()
		}
	}
	return nil
}

func (d *Drive) processBit() {
	ht := d.halftrack
	if d.ReadMode() {
		bit := d.Disk.ReadBit(ht, d.offset)
		d.readShiftReg = (d.readShiftReg<<1 | uint16(bit)) & 0x3FF

		if d.readShiftReg == 0x3FF {
			d.sync = true
			d.byteReadyCounter = 0
		} else if bit == 0 && !d.sync {
			d.byteReadyCounter = 0
		} else {
			d.byteReadyCounter++
			if d.byteReadyCounter == 8 {
				d.byteReadyCounter = 0
				d.latchByteReady()
			}
		}
	} else {
		if d.writeBitsLeft == 0 {
			d.writeShiftReg = d.VIA2.ora
			d.writeBitsLeft = 8
		}
		bit := (d.writeShiftReg >> 7) & 1
		d.writeShiftReg <<= 1
		d.writeBitsLeft--
		d.Disk.WriteBit(ht, d.offset, bit)
		d.byteReadyCounter++
		if d.byteReadyCounter == 8 {
			d.byteReadyCounter = 0
			d.latchByteReady()
		}
	}

	d.offset++
	if d.offset >= d.Disk.LengthOfHalftrack(ht) {
		d.offset = 0
	}
}

// latchByteReady pulses VIA2's CA1 low, the signal that causes a byte
// to be considered ready (per Drive.h's updateByteReady doc: "Pulling
// this signal low causes...the contents of the read shift register [to
// be] latched into the input register of VIA2").
func (d *Drive) latchByteReady() {
	d.byteReady = true
	d.VIA2.SetCA1(true) // guarantee the line is high before the pulse
	d.VIA2.SetCA1(false)
	d.VIA2.SetCA1(true)
	d.byteReady = false
}

type viaIRQ struct {
	source uint8
	drive  *Drive
}

func (v *viaIRQ) Pull()    { v.drive.CPU.PullIRQ(v.source) }
func (v *viaIRQ) Release() { v.drive.CPU.ReleaseIRQ(v.source) }
