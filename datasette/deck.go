// Package datasette models a Commodore 1530 Datasette tape drive: a
// pulse-stream tape read by the processor port's flag/motor lines,
// grounded on
// original_source/Emulator/Peripherals/Datasette/Datasette.h.
package datasette

import "github.com/vc64/core/tap"

// FlagCallback is invoked on every falling edge the tape head produces
// while playing, the event that drives the C64's CIA1 FLAG line (and,
// through it, an IRQ if the CIA has been configured to want one).
type FlagCallback func()

// Deck is a single Datasette unit: a pulse stream, a read/write head
// position into it, and the play/motor controls the C64's processor
// port lines operate.
type Deck struct {
	pulses []int32
	format uint8

	head    int   // index of the next pulse to emit
	counter int32 // cycles remaining in the current pulse

	playKey bool
	motor   bool

	onFallingEdge FlagCallback
}

// New returns an empty deck with no tape inserted.
func New() *Deck {
	return &Deck{}
}

// Plumb installs the callback invoked on every falling edge produced
// while the tape plays.
func (d *Deck) Plumb(onFallingEdge FlagCallback) {
	d.onFallingEdge = onFallingEdge
}

// HasTape reports whether a tape image is currently inserted.
func (d *Deck) HasTape() bool { return len(d.pulses) > 0 }

// InsertTape loads a TAP image as a virtual tape, replacing any tape
// already in the deck.
func (d *Deck) InsertTape(image []byte) error {
	pulses, format, err := tap.Load(image)
	if err != nil {
		return err
	}
	d.pulses = pulses
	d.format = format
	d.Rewind()
	return nil
}

// EjectTape removes the tape from the deck.
func (d *Deck) EjectTape() {
	d.pulses = nil
	d.format = 0
	d.head = 0
	d.counter = 0
	d.playKey = false
}

// Rewind returns the read/write head to the beginning of the tape.
func (d *Deck) Rewind() {
	d.head = 0
	if len(d.pulses) > 0 {
		d.counter = d.pulses[0]
	} else {
		d.counter = 0
	}
}

// PressPlay engages the play key. Playback only actually advances the
// tape once the motor is also switched on, mirroring the real device's
// mechanical interlock between the two controls.
func (d *Deck) PressPlay() { d.playKey = true }

// PressStop disengages the play key.
func (d *Deck) PressStop() { d.playKey = false }

// SetMotor switches the capstan motor on or off, as driven by the
// processor port.
func (d *Deck) SetMotor(on bool) { d.motor = on }

// Motor reports whether the capstan motor is currently engaged.
func (d *Deck) Motor() bool { return d.motor }

// PlayKey reports whether the play key is currently pressed.
func (d *Deck) PlayKey() bool { return d.playKey }

// Sense implements the read/write head's mechanical sense line: pulled
// low (false) whenever the play key is down, regardless of motor state,
// matching a real 1530's microswitch.
func (d *Deck) Sense() bool { return !d.playKey }

// Tick advances the tape by one CPU cycle. While playing it counts down
// the current pulse's length and, on expiry, advances to the next pulse
// and fires the falling-edge callback.
func (d *Deck) Tick() {
	if !d.playKey || !d.motor || len(d.pulses) == 0 {
		return
	}
	d.counter--
	if d.counter > 0 {
		return
	}
	d.advanceHead()
	if d.onFallingEdge != nil {
		d.onFallingEdge()
	}
}

func (d *Deck) advanceHead() {
	d.head++
	if d.head >= len(d.pulses) {
		d.playKey = false
		d.head = len(d.pulses)
		d.counter = 0
		return
	}
	d.counter = d.pulses[d.head]
}

// Counter returns the current head position as a pulse index, the unit
// the original used for its on-screen tape counter.
func (d *Deck) Counter() int { return d.head }
