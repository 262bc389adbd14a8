package snapshot

import "testing"

type fakeComponent struct {
	tag   string
	state []byte
}

func (f *fakeComponent) Tag() string { return f.tag }

func (f *fakeComponent) MarshalBinary() ([]byte, error) { return f.state, nil }

func (f *fakeComponent) UnmarshalBinary(b []byte) error {
	f.state = append([]byte(nil), b...)
	return nil
}

func TestWriteReadRoundTrip(t *testing.T) {
	cpu := &fakeComponent{tag: "cpu", state: []byte{0x01, 0x02, 0x03}}
	mem := &fakeComponent{tag: "mem", state: []byte{0xFF}}

	w := NewWriter()
	w.Put(cpu)
	w.Put(mem)
	image := w.Bytes()

	r, err := NewReader(image)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}

	restoredCPU := &fakeComponent{tag: "cpu"}
	if err := r.Restore(restoredCPU); err != nil {
		t.Fatalf("Restore(cpu): %v", err)
	}
	if string(restoredCPU.state) != string(cpu.state) {
		t.Fatalf("restored cpu state = %v, want %v", restoredCPU.state, cpu.state)
	}

	restoredMem := &fakeComponent{tag: "mem"}
	if err := r.Restore(restoredMem); err != nil {
		t.Fatalf("Restore(mem): %v", err)
	}
	if string(restoredMem.state) != string(mem.state) {
		t.Fatalf("restored mem state = %v, want %v", restoredMem.state, mem.state)
	}
}

func TestRestoreMissingSectionIsNotAnError(t *testing.T) {
	w := NewWriter()
	w.Put(&fakeComponent{tag: "cpu", state: []byte{1}})
	image := w.Bytes()

	r, err := NewReader(image)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	drive := &fakeComponent{tag: "drive", state: []byte{9, 9}}
	if err := r.Restore(drive); err != nil {
		t.Fatalf("Restore of missing section should not error: %v", err)
	}
	if drive.state[0] != 9 {
		t.Fatalf("missing section should leave component state untouched")
	}
}

func TestNewReaderRejectsBadMagic(t *testing.T) {
	if _, err := NewReader([]byte{0, 0, 0, 0, 1, 0, 0}); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestNewReaderRejectsVersionMismatch(t *testing.T) {
	w := NewWriter()
	image := w.Bytes()
	image[4] = Major + 1
	if _, err := NewReader(image); err == nil {
		t.Fatalf("expected version mismatch error")
	}
}
