package tap

import "testing"

func buildImage(version uint8, data []byte) []byte {
	out := make([]byte, headerSize+len(data))
	copy(out, signature[:])
	out[12] = version
	out[16] = byte(len(data))
	out[17] = byte(len(data) >> 8)
	out[18] = byte(len(data) >> 16)
	out[19] = byte(len(data) >> 24)
	copy(out[headerSize:], data)
	return out
}

func TestLoadRejectsBadSignature(t *testing.T) {
	image := buildImage(1, []byte{0x10})
	image[0] = 'X'
	if _, _, err := Load(image); err == nil {
		t.Fatalf("expected error for bad signature")
	}
}

func TestLoadVersion0LongPulse(t *testing.T) {
	image := buildImage(0, []byte{0x20, 0x00})
	pulses, version, err := Load(image)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if version != 0 {
		t.Fatalf("version = %d, want 0", version)
	}
	if len(pulses) != 2 {
		t.Fatalf("len(pulses) = %d, want 2", len(pulses))
	}
	if pulses[0] != 0x20*8 {
		t.Fatalf("pulses[0] = %d, want %d", pulses[0], 0x20*8)
	}
	if pulses[1] != 256*8 {
		t.Fatalf("pulses[1] = %d, want %d (placeholder long pulse)", pulses[1], 256*8)
	}
}

func TestLoadVersion1PreciseLongPulse(t *testing.T) {
	image := buildImage(1, []byte{0x00, 0x34, 0x12, 0x00})
	pulses, version, err := Load(image)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}
	if len(pulses) != 1 || pulses[0] != 0x1234 {
		t.Fatalf("pulses = %v, want [0x1234]", pulses)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := []int32{8, 800, 1600, 100000}
	image := Save(original)
	pulses, version, err := Load(image)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if version != 1 {
		t.Fatalf("Save should always emit version 1, got %d", version)
	}
	if len(pulses) != len(original) {
		t.Fatalf("len(pulses) = %d, want %d", len(pulses), len(original))
	}
	for i := range original {
		if pulses[i] != original[i] {
			t.Fatalf("pulses[%d] = %d, want %d", i, pulses[i], original[i])
		}
	}
}
