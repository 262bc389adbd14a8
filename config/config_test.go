package config

import (
	"path/filepath"
	"testing"
)

func TestNewDefaultsToPAL(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "vc64.conf"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.GetRegion() != PAL {
		t.Fatalf("got %v, want PAL", c.GetRegion())
	}
	if c.Frequency() != 985248 {
		t.Fatalf("got %v, want 985248", c.Frequency())
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "vc64.conf")

	c, err := New(fn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Region.Set("NTSC"); err != nil {
		t.Fatalf("Set region: %v", err)
	}
	if err := c.Warp.Set(true); err != nil {
		t.Fatalf("Set warp: %v", err)
	}
	if err := c.KernalPath.Set("/roms/kernal.901227-03.bin"); err != nil {
		t.Fatalf("Set kernal path: %v", err)
	}
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	c2, err := New(fn)
	if err != nil {
		t.Fatalf("New (reload): %v", err)
	}
	if c2.GetRegion() != NTSC {
		t.Fatalf("got %v, want NTSC", c2.GetRegion())
	}
	if c2.Frequency() != 1022700 {
		t.Fatalf("got %v, want 1022700", c2.Frequency())
	}
	if !c2.Warp.Get() {
		t.Fatalf("expected warp to round-trip as true")
	}
	if c2.KernalPath.Get() != "/roms/kernal.901227-03.bin" {
		t.Fatalf("got %q, want kernal path to round-trip", c2.KernalPath.Get())
	}
}
