package config

import "testing"

func TestBoolSetAcceptsBoolAndString(t *testing.T) {
	var v Bool
	if err := v.Set(true); err != nil {
		t.Fatalf("Set(true): %v", err)
	}
	if v.String() != "true" {
		t.Fatalf("got %q, want true", v.String())
	}
	if err := v.Set("0"); err != nil {
		t.Fatalf("Set(\"0\"): %v", err)
	}
	if v.Get() {
		t.Fatalf("expected false after Set(\"0\")")
	}
	if err := v.Set(42); err == nil {
		t.Fatalf("expected error for non-bool, non-string value")
	}
}

func TestStringSetMaxLenCropsValue(t *testing.T) {
	var s String
	s.SetMaxLen(3)
	if err := s.Set("hello"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.Get() != "hel" {
		t.Fatalf("got %q, want %q", s.Get(), "hel")
	}

	// lowering the cap back to zero does not restore already-cropped content
	s.SetMaxLen(0)
	if s.Get() != "hel" {
		t.Fatalf("got %q, want cropped value to persist", s.Get())
	}
}

func TestFloatRejectsString(t *testing.T) {
	var f Float
	if err := f.Set("bar"); err == nil {
		t.Fatalf("expected error setting Float from string")
	}
	if err := f.Set(1.5); err != nil {
		t.Fatalf("Set(1.5): %v", err)
	}
	if f.Get() != 1.5 {
		t.Fatalf("got %v, want 1.5", f.Get())
	}
}

func TestIntRejectsFloat(t *testing.T) {
	var i Int
	if err := i.Set(1.0); err == nil {
		t.Fatalf("expected error setting Int from float64")
	}
	if err := i.Set("42"); err != nil {
		t.Fatalf("Set(\"42\"): %v", err)
	}
	if i.Get() != 42 {
		t.Fatalf("got %d, want 42", i.Get())
	}
}

func TestGenericDelegatesToCallbacks(t *testing.T) {
	var stored string
	g := NewGeneric(
		func(v Value) error {
			s, ok := v.(string)
			if !ok {
				t.Fatalf("expected string value")
			}
			stored = s
			return nil
		},
		func() Value { return stored },
	)

	if err := g.Set("hi"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if g.String() != "hi" {
		t.Fatalf("got %q, want %q", g.String(), "hi")
	}
}
