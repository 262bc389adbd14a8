// Package iec models the C64's IEC serial bus: three open-collector
// lines (ATN, CLK, DATA) that every attached device pulls low or
// releases, with the bus settling to the wired-AND of all devices'
// pulls, the same combination logic the teacher's hardware/riot ports
// package uses for joystick/controller line combination (no device can
// drive a line high; it can only stop pulling it low).
package iec

// Device is anything attached to the serial bus: the C64 side (CIA2's
// serial port) and a vc1541.Drive's VIA1 both implement this by
// reporting what they are currently pulling and being notified when the
// bus-wide level changes.
type Device interface {
	// Pulls reports which lines this device is currently pulling low.
	Pulls() (atn, clk, data bool)
	// BusChanged is called whenever the combined bus level changes, so
	// the device can react (e.g. ATN going low forces a drive to listen).
	BusChanged(atn, clk, data bool)
}

// Bus combines every attached Device's pulls; true means the line is
// pulled low (electrically active), matching the sense the teacher and
// original_source both use for IEC/ATN modeling.
type Bus struct {
	devices       []Device
	atn, clk, data bool
}

// New returns an idle bus (all lines released).
func New() *Bus { return &Bus{} }

// Attach adds a device to the bus and immediately recomputes the
// combined level.
func (b *Bus) Attach(d Device) {
	b.devices = append(b.devices, d)
	b.recompute()
}

// Detach removes a previously attached device.
func (b *Bus) Detach(d Device) {
	for i, dev := range b.devices {
		if dev == d {
			b.devices = append(b.devices[:i], b.devices[i+1:]...)
			break
		}
	}
	b.recompute()
}

// Update is called by a device after its own pull state changes; it
// recomputes the bus and notifies every device if the combined level
// moved.
func (b *Bus) Update() { b.recompute() }

func (b *Bus) recompute() {
	var atn, clk, data bool
	for _, d := range b.devices {
		a, c, dt := d.Pulls()
		atn = atn || a
		clk = clk || c
		data = data || dt
	}
	if atn == b.atn && clk == b.clk && data == b.data {
		return
	}
	b.atn, b.clk, b.data = atn, clk, data
	for _, d := range b.devices {
		d.BusChanged(atn, clk, data)
	}
}

// ATN, CLK, DATA report the bus's current combined (true = pulled low)
// level.
func (b *Bus) ATN() bool  { return b.atn }
func (b *Bus) CLK() bool  { return b.clk }
func (b *Bus) DATA() bool { return b.data }
