package mem

import "testing"

func loadedMemory(t *testing.T) *Memory {
	t.Helper()
	m := New()
	if err := m.LoadBasicROM(make([]byte, 8192)); err != nil {
		t.Fatalf("LoadBasicROM: %v", err)
	}
	if err := m.LoadKernalROM(make([]byte, 8192)); err != nil {
		t.Fatalf("LoadKernalROM: %v", err)
	}
	if err := m.LoadCharROM(make([]byte, 4096)); err != nil {
		t.Fatalf("LoadCharROM: %v", err)
	}
	return m
}

func TestDefaultBankingMapsKernalAndBasic(t *testing.T) {
	m := loadedMemory(t)
	m.kernalROM[0x1FFF] = 0xAB // $FFFF
	if got := m.Peek(0xFFFF); got != 0xAB {
		t.Fatalf("Peek($FFFF) = %#02x, want AB (kernal mapped in by default)", got)
	}
	m.basicROM[0] = 0xCD // $A000
	if got := m.Peek(0xA000); got != 0xCD {
		t.Fatalf("Peek($A000) = %#02x, want CD (basic mapped in by default)", got)
	}
}

func TestProcessorPortAllRAM(t *testing.T) {
	m := loadedMemory(t)
	m.SetProcessorPort(false, false, false)
	m.RAM[0xE000] = 0x11
	if got := m.Peek(0xE000); got != 0x11 {
		t.Fatalf("Peek($E000) = %#02x, want 11 (all-RAM config)", got)
	}
}

func TestROMWritesGoToUnderlyingRAM(t *testing.T) {
	m := loadedMemory(t)
	m.Poke(0xE000, 0x42) // kernal mapped in, but writes always hit RAM
	if m.RAM[0xE000] != 0x42 {
		t.Fatalf("RAM[$E000] = %#02x, want 42", m.RAM[0xE000])
	}
	if got := m.Peek(0xE000); got == 0x42 {
		t.Fatalf("Peek($E000) should still read kernal ROM, not the RAM just written")
	}
}

func TestColorRAMMasksToFourBits(t *testing.T) {
	m := loadedMemory(t)
	m.Poke(0xD800, 0xFF)
	if got := m.Peek(0xD800); got != 0x0F {
		t.Fatalf("Peek($D800) = %#02x, want 0F (colour RAM is 4 bits wide)", got)
	}
}

type stubIO struct{ pokes int }

func (s *stubIO) Peek(addr uint16) uint8 { return 0x42 }
func (s *stubIO) Poke(addr uint16, value uint8) { s.pokes++ }

func TestCIARouting(t *testing.T) {
	m := loadedMemory(t)
	cia1 := &stubIO{}
	m.PlumbCIA(cia1, &stubIO{})
	if got := m.Peek(0xDC00); got != 0x42 {
		t.Fatalf("Peek($DC00) = %#02x, want 42 from CIA1 stub", got)
	}
	m.Poke(0xDC01, 0x00)
	if cia1.pokes != 1 {
		t.Fatalf("CIA1 stub should have seen 1 poke, saw %d", cia1.pokes)
	}
}

func TestBadROMSizeRejected(t *testing.T) {
	m := New()
	if err := m.LoadKernalROM(make([]byte, 100)); err == nil {
		t.Fatalf("expected an error loading an undersized kernal ROM")
	}
}
