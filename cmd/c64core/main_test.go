package main

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	f, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.cycles != 3_000_000 {
		t.Fatalf("got default cycles %d, want 3000000", f.cycles)
	}
	if f.quiet {
		t.Fatalf("expected quiet to default false")
	}
	if f.kernal != "" || f.basic != "" || f.chargen != "" {
		t.Fatalf("expected ROM paths to default empty")
	}
}

func TestParseFlagsOverridesCycles(t *testing.T) {
	f, err := parseFlags([]string{"-cycles", "100", "-quiet", "-screen"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if f.cycles != 100 {
		t.Fatalf("got cycles %d, want 100", f.cycles)
	}
	if !f.quiet || !f.dumpText {
		t.Fatalf("expected quiet and screen flags to be set")
	}
}

func TestParseFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseFlags([]string{"-nonsense"}); err == nil {
		t.Fatalf("expected an error for an unrecognised flag")
	}
}

func TestLoadROMSkipsEmptyPath(t *testing.T) {
	if err := loadROM(nil, "", 0); err != nil {
		t.Fatalf("expected no-op for an empty path, got %v", err)
	}
}

func TestLoadROMRejectsMissingFile(t *testing.T) {
	if err := loadROM(nil, "/nonexistent/path/kernal.bin", 0); err == nil {
		t.Fatalf("expected an error reading a missing ROM file")
	}
}
