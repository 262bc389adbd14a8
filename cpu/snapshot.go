package cpu

import (
	"encoding/binary"
	"errors"
)

var errShortCPUState = errors.New("cpu: snapshot data too short")

// MarshalBinary encodes the CPU's architectural and edge-detector state
// (everything snapshot.Component needs to resume mid-instruction), not
// the micro-step queue — a restored CPU always resumes at an instruction
// boundary via pollInterrupts/beginInstruction, matching how
// original_source's Snapshot only ever captures the C64 between
// instructions.
func (c *CPU) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 32)
	var u16 [2]byte

	binary.LittleEndian.PutUint16(u16[:], c.PC)
	b = append(b, u16[:]...)
	b = append(b, c.A, c.X, c.Y, c.SP, c.Status())
	b = append(b, c.IRQLine, c.NMILine)
	b = append(b, boolByte(c.RdyLine), boolByte(c.nmiLineWasLow))
	b = append(b, boolByte(c.nmiPipeline[0]), boolByte(c.nmiPipeline[1]))
	b = append(b, boolByte(c.irqPipeline[0]), boolByte(c.irqPipeline[1]))
	b = append(b, boolByte(c.nmiPending), boolByte(c.irqAsserted))
	b = append(b, uint8(c.pendingInterrupt))
	b = append(b, uint8(c.State))

	var u64 [8]byte
	binary.LittleEndian.PutUint64(u64[:], c.TotalCycles)
	b = append(b, u64[:]...)
	return b, nil
}

// UnmarshalBinary restores state written by MarshalBinary. It leaves the
// micro-step queue empty, so the next Cycle() call starts a fresh
// instruction fetch (or interrupt sequence, if IRQLine/NMILine are set).
func (c *CPU) UnmarshalBinary(data []byte) error {
	if len(data) < 27 {
		return errShortCPUState
	}
	c.PC = binary.LittleEndian.Uint16(data[0:2])
	c.A, c.X, c.Y, c.SP = data[2], data[3], data[4], data[5]
	c.SetStatus(data[6])
	c.IRQLine, c.NMILine = data[7], data[8]
	c.RdyLine = data[9] != 0
	c.nmiLineWasLow = data[10] != 0
	c.nmiPipeline[0], c.nmiPipeline[1] = data[11] != 0, data[12] != 0
	c.irqPipeline[0], c.irqPipeline[1] = data[13] != 0, data[14] != 0
	c.nmiPending, c.irqAsserted = data[15] != 0, data[16] != 0
	c.pendingInterrupt = interruptKind(data[17])
	c.State = ErrorState(data[18])
	c.TotalCycles = binary.LittleEndian.Uint64(data[19:27])
	c.queue = nil
	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
