package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func tmpConfigFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vc64_config_test")
}

func cmpFile(t *testing.T, fn string, expected string) {
	t.Helper()

	f, err := os.Open(fn)
	if err != nil {
		t.Fatalf("error opening tmp file: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("error reading tmp file: %v", err)
	}

	expected = fmt.Sprintf("%s\n%s", WarningBoilerPlate, expected)
	if expected != string(data) {
		t.Fatalf("expected data and data in file do not match\nexpected:\n%s\ngot:\n%s", expected, string(data))
	}
}

func TestDiskSaveBool(t *testing.T) {
	fn := tmpConfigFile(t)

	dsk, err := NewDisk(fn)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	var v, w, x Bool
	if err := dsk.Add("test", &v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := dsk.Add("testB", &w); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := dsk.Add("testC", &x); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := v.Set(true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := w.Set("foo"); err == nil {
		t.Fatalf("Set(\"foo\") should be rejected, leaving the value false")
	}
	if err := x.Set("true"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if err := dsk.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cmpFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")
}

func TestDiskAddRejectsDuplicateKey(t *testing.T) {
	dsk, err := NewDisk(tmpConfigFile(t))
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	var v, w Bool
	if err := dsk.Add("dup", &v); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := dsk.Add("dup", &w); err == nil {
		t.Fatalf("expected error adding duplicate key")
	}
}

func TestDiskLoadRoundTrip(t *testing.T) {
	fn := tmpConfigFile(t)

	dsk, err := NewDisk(fn)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	var s String
	if err := dsk.Add("greeting", &s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Set("hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := dsk.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	dsk2, err := NewDisk(fn)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	var s2 String
	if err := dsk2.Add("greeting", &s2); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := dsk2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s2.Get() != "hello" {
		t.Fatalf("got %q, want %q", s2.Get(), "hello")
	}
}

func TestDiskLoadMissingFileIsNotAnError(t *testing.T) {
	dsk, err := NewDisk(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if err := dsk.Load(); err != nil {
		t.Fatalf("Load on missing file should not error, got: %v", err)
	}
}

func TestDiskLoadIgnoresUnregisteredKeys(t *testing.T) {
	fn := tmpConfigFile(t)
	if err := os.WriteFile(fn, []byte(WarningBoilerPlate+"\nunknown :: whatever\nfoo :: bar\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	dsk, err := NewDisk(fn)
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	var s String
	if err := dsk.Add("foo", &s); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := dsk.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Get() != "bar" {
		t.Fatalf("got %q, want %q", s.Get(), "bar")
	}
}
