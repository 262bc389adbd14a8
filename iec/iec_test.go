package iec

import "testing"

type fakeDevice struct {
	atn, clk, data bool
	lastATN, lastCLK, lastDATA bool
	notified       bool
}

func (f *fakeDevice) Pulls() (atn, clk, data bool) { return f.atn, f.clk, f.data }
func (f *fakeDevice) BusChanged(atn, clk, data bool) {
	f.lastATN, f.lastCLK, f.lastDATA = atn, clk, data
	f.notified = true
}

func TestBusIsWiredAndOfAllPulls(t *testing.T) {
	b := New()
	a := &fakeDevice{}
	c := &fakeDevice{clk: true}
	b.Attach(a)
	b.Attach(c)

	if b.CLK() != true {
		t.Fatalf("CLK should be pulled low because device c pulls it")
	}
	if b.ATN() != false {
		t.Fatalf("ATN should be released, no device pulls it")
	}
}

func TestUpdateNotifiesAllDevicesOnChange(t *testing.T) {
	b := New()
	a := &fakeDevice{}
	c := &fakeDevice{}
	b.Attach(a)
	b.Attach(c)

	c.data = true
	b.Update()

	if !a.notified {
		t.Fatalf("all devices should be notified when the combined level changes")
	}
	if !a.lastDATA {
		t.Fatalf("notified level should reflect DATA now pulled low")
	}
}

func TestNoNotificationWhenLevelUnchanged(t *testing.T) {
	b := New()
	a := &fakeDevice{}
	b.Attach(a)
	a.notified = false
	b.Update()
	if a.notified {
		t.Fatalf("Update with no actual level change should not renotify")
	}
}

func TestDetachRemovesInfluence(t *testing.T) {
	b := New()
	a := &fakeDevice{}
	c := &fakeDevice{clk: true}
	b.Attach(a)
	b.Attach(c)
	b.Detach(c)
	if b.CLK() {
		t.Fatalf("CLK should release once the only device pulling it is detached")
	}
}
