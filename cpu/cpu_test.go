package cpu

import "testing"

type flatMemory struct {
	ram [65536]uint8
}

func (m *flatMemory) Peek(addr uint16) uint8        { return m.ram[addr] }
func (m *flatMemory) Poke(addr uint16, value uint8) { m.ram[addr] = value }

func newTestCPU() (*CPU, *flatMemory) {
	mem := &flatMemory{}
	c := NewCPU()
	c.Plumb(mem)
	mem.ram[0xFFFC] = 0x00
	mem.ram[0xFFFD] = 0x80
	c.Reset()
	return c, mem
}

func runCycles(c *CPU, n int) {
	for i := 0; i < n; i++ {
		c.Cycle()
	}
}

func TestResetVector(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x8000 {
		t.Fatalf("PC after reset = %04x, want 8000", c.PC)
	}
	if !c.I {
		t.Fatalf("I flag should be set after reset")
	}
}

func TestLDAImmediate(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xA9 // LDA #$42
	mem.ram[0x8001] = 0x42
	runCycles(c, 2)
	if c.A != 0x42 {
		t.Fatalf("A = %02x, want 42", c.A)
	}
	if c.Z {
		t.Fatalf("Z should be clear")
	}
}

func TestLDAAbsoluteXPageCross(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xBD // LDA $80FF,X
	mem.ram[0x8001] = 0xFF
	mem.ram[0x8002] = 0x80
	mem.ram[0x8101] = 0x99
	c.X = 0x02 // crosses from page 80 to page 81
	runCycles(c, 5)
	if c.A != 0x99 {
		t.Fatalf("A = %02x, want 99 (page-crossing read)", c.A)
	}
}

func TestINCZeroPage(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xE6 // INC $10
	mem.ram[0x8001] = 0x10
	mem.ram[0x0010] = 0x7F
	runCycles(c, 5)
	if mem.ram[0x0010] != 0x80 {
		t.Fatalf("ram[0x10] = %02x, want 80", mem.ram[0x0010])
	}
	if !c.N {
		t.Fatalf("N should be set")
	}
}

func TestJSRRTS(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0x20 // JSR $9000
	mem.ram[0x8001] = 0x00
	mem.ram[0x8002] = 0x90
	mem.ram[0x9000] = 0x60 // RTS
	runCycles(c, 6)
	if c.PC != 0x9000 {
		t.Fatalf("PC after JSR = %04x, want 9000", c.PC)
	}
	runCycles(c, 6)
	if c.PC != 0x8003 {
		t.Fatalf("PC after RTS = %04x, want 8003", c.PC)
	}
}

func TestBranchTakenCrossesPage(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x80F0] = 0xA9 // LDA #0 to set Z
	mem.ram[0x80F1] = 0x00
	mem.ram[0x80F2] = 0xF0 // BEQ +$20 -> crosses page from 80F4 to 8114
	mem.ram[0x80F3] = 0x20
	c.PC = 0x80F0
	runCycles(c, 2) // LDA #0
	runCycles(c, 4) // BEQ taken, page crossed: 4 cycles total
	if c.PC != 0x8114 {
		t.Fatalf("PC after branch = %04x, want 8114", c.PC)
	}
}

func TestDecimalAdc(t *testing.T) {
	c, _ := newTestCPU()
	c.D = true
	c.C = false
	c.A = 0x58
	c.adc(0x46) // 58 + 46 BCD = 104 -> A=0x04, C set
	if c.A != 0x04 || !c.C {
		t.Fatalf("A=%02x C=%v, want 04/true", c.A, c.C)
	}
}

func TestRdyStallsReadsNotWrites(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xA9 // LDA #$01 (all read cycles)
	mem.ram[0x8001] = 0x01
	c.RdyLine = false
	c.Cycle() // fetch is itself a read; stalled opcode fetch means queue stays empty
	if c.A != 0 {
		t.Fatalf("A should not have changed while RDY low")
	}
	c.RdyLine = true
	runCycles(c, 2)
	if c.A != 0x01 {
		t.Fatalf("A = %02x, want 01 once RDY released", c.A)
	}
}

func TestHardBreakpointHalts(t *testing.T) {
	c, mem := newTestCPU()
	mem.ram[0x8000] = 0xEA // NOP
	c.SetBreakpoint(0x8000, BreakpointHard)
	if err := c.Cycle(); err != nil {
		t.Fatalf("unexpected error on first cycle: %v", err)
	}
	if c.State != StateHardBreakpoint {
		t.Fatalf("State = %v, want hard breakpoint", c.State)
	}
}
