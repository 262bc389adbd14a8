package datasette

import "testing"

func tapImage(version uint8, data []byte) []byte {
	const headerSize = 20
	out := make([]byte, headerSize+len(data))
	sig := [12]byte{'C', '6', '4', '-', 'T', 'A', 'P', 'E', '-', 'R', 'A', 'W'}
	copy(out, sig[:])
	out[12] = version
	out[16] = byte(len(data))
	copy(out[headerSize:], data)
	return out
}

func TestInsertTapeAndHasTape(t *testing.T) {
	d := New()
	if d.HasTape() {
		t.Fatalf("fresh deck should report no tape")
	}
	if err := d.InsertTape(tapImage(1, []byte{0x10, 0x20})); err != nil {
		t.Fatalf("InsertTape: %v", err)
	}
	if !d.HasTape() {
		t.Fatalf("deck should report a tape after InsertTape")
	}
}

func TestSenseFollowsPlayKey(t *testing.T) {
	d := New()
	if !d.Sense() {
		t.Fatalf("Sense should be high (true) when play key is up")
	}
	d.PressPlay()
	if d.Sense() {
		t.Fatalf("Sense should be low (false) once play key is down")
	}
	d.PressStop()
	if !d.Sense() {
		t.Fatalf("Sense should return high after stop")
	}
}

func TestTickRequiresPlayAndMotor(t *testing.T) {
	d := New()
	_ = d.InsertTape(tapImage(1, []byte{0x01}))
	start := d.Counter()

	d.Tick() // neither play nor motor engaged
	if d.Counter() != start {
		t.Fatalf("tape should not advance without play+motor")
	}

	d.PressPlay()
	d.Tick() // motor still off
	if d.Counter() != start {
		t.Fatalf("tape should not advance with motor off")
	}

	d.SetMotor(true)
	pulseLen := int(d.pulses[0])
	for i := 0; i < pulseLen; i++ {
		d.Tick()
	}
	if d.Counter() == start {
		t.Fatalf("tape should have advanced past the first pulse")
	}
}

func TestFallingEdgeCallbackFires(t *testing.T) {
	d := New()
	_ = d.InsertTape(tapImage(1, []byte{0x01, 0x01}))
	fired := 0
	d.Plumb(func() { fired++ })
	d.PressPlay()
	d.SetMotor(true)

	pulseLen := int(d.pulses[0])
	for i := 0; i < pulseLen; i++ {
		d.Tick()
	}
	if fired != 1 {
		t.Fatalf("falling-edge callback should have fired once, got %d", fired)
	}
}

func TestPlaybackStopsAtEndOfTape(t *testing.T) {
	d := New()
	_ = d.InsertTape(tapImage(1, []byte{0x01}))
	d.PressPlay()
	d.SetMotor(true)

	for i := 0; i < int(d.pulses[0])+1; i++ {
		d.Tick()
	}
	if d.PlayKey() {
		t.Fatalf("play key should release once the tape runs out")
	}
}
