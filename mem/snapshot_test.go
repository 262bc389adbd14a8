package mem

import "testing"

func TestMemoryMarshalUnmarshalRoundTrip(t *testing.T) {
	m := New()
	m.RAM[0x1000] = 0xAB
	m.ColorRAM[5] = 0x0F
	m.SetExrom(false)
	m.SetGame(false)

	data, err := m.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	other := New()
	if err := other.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if other.RAM[0x1000] != 0xAB {
		t.Fatalf("RAM did not round-trip")
	}
	if other.ColorRAM[5] != 0x0F {
		t.Fatalf("ColorRAM did not round-trip")
	}
	if other.exrom != false || other.game != false {
		t.Fatalf("cartridge lines did not round-trip")
	}
}

func TestMemoryUnmarshalRejectsWrongSize(t *testing.T) {
	m := New()
	if err := m.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for wrong-size snapshot data")
	}
}
