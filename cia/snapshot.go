package cia

import (
	"encoding/binary"
	"errors"
)

var errShortCIAState = errors.New("cia: snapshot data too short")

// MarshalBinary encodes the CIA's timers, port latches, interrupt
// registers, the delay/feed pipeline, the shift register, and the TOD
// clock. Ports/Interrupts wiring is not included — like the CPU's
// micro-step queue, it is reattached by the machine doing the restoring,
// not carried in the file.
func (c *CIA) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 64)
	var u16 [2]byte
	put16 := func(v uint16) { binary.LittleEndian.PutUint16(u16[:], v); b = append(b, u16[:]...) }
	var u64 [8]byte
	put64 := func(v uint64) { binary.LittleEndian.PutUint64(u64[:], v); b = append(b, u64[:]...) }

	put16(c.counterA)
	put16(c.latchA)
	put16(c.counterB)
	put16(c.latchB)
	b = append(b, c.ddrA, c.ddrB, c.outA, c.outB, c.cra, c.crb, c.imr, c.icr)
	put64(uint64(c.delay))
	put64(uint64(c.feed))
	b = append(b, c.sdr, uint8(c.sdrBits))

	t := &c.tod
	b = append(b, t.tenths, t.seconds, t.minutes, t.hours, boolByte(t.pm))
	b = append(b, t.alarmTenths, t.alarmSeconds, t.alarmMinutes, t.alarmHours, boolByte(t.alarmPM))
	b = append(b, boolByte(t.frozen))
	b = append(b, t.frozenTenths, t.frozenSeconds, t.frozenMinutes, t.frozenHours, boolByte(t.frozenPM))
	b = append(b, boolByte(t.writingAlarm), boolByte(t.stopped))
	put64(uint64(int64(t.cyclesPerTenth)))
	put64(uint64(int64(t.cycleCount)))

	return b, nil
}

const marshaledCIASize = 2*4 + 8 + 8 + 8 + 2 + 5 + 5 + 1 + 5 + 2 + 8 + 8

// UnmarshalBinary restores state written by MarshalBinary.
func (c *CIA) UnmarshalBinary(data []byte) error {
	if len(data) < marshaledCIASize {
		return errShortCIAState
	}
	pos := 0
	get16 := func() uint16 { v := binary.LittleEndian.Uint16(data[pos:]); pos += 2; return v }
	get64 := func() uint64 { v := binary.LittleEndian.Uint64(data[pos:]); pos += 8; return v }

	c.counterA = get16()
	c.latchA = get16()
	c.counterB = get16()
	c.latchB = get16()
	c.ddrA, c.ddrB, c.outA, c.outB = data[pos], data[pos+1], data[pos+2], data[pos+3]
	pos += 4
	c.cra, c.crb, c.imr, c.icr = data[pos], data[pos+1], data[pos+2], data[pos+3]
	pos += 4
	c.delay = action(get64())
	c.feed = action(get64())
	c.sdr, c.sdrBits = data[pos], int(data[pos+1])
	pos += 2

	t := &c.tod
	t.tenths, t.seconds, t.minutes, t.hours, t.pm = data[pos], data[pos+1], data[pos+2], data[pos+3], data[pos+4] != 0
	pos += 5
	t.alarmTenths, t.alarmSeconds, t.alarmMinutes, t.alarmHours, t.alarmPM =
		data[pos], data[pos+1], data[pos+2], data[pos+3], data[pos+4] != 0
	pos += 5
	t.frozen = data[pos] != 0
	pos++
	t.frozenTenths, t.frozenSeconds, t.frozenMinutes, t.frozenHours, t.frozenPM =
		data[pos], data[pos+1], data[pos+2], data[pos+3], data[pos+4] != 0
	pos += 5
	t.writingAlarm, t.stopped = data[pos] != 0, data[pos+1] != 0
	pos += 2
	t.cyclesPerTenth = int(int64(get64()))
	t.cycleCount = int(int64(get64()))

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
