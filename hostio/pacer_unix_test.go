//go:build unix

package hostio

import (
	"testing"
	"time"
)

func TestWaitReturnsImmediatelyWhenBehindSchedule(t *testing.T) {
	p := NewPacer(1_000_000)
	p.last = p.last.Add(-time.Second) // pretend a full second has already elapsed
	if err := p.Wait(1); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestNewPacerStartsWithNoDebt(t *testing.T) {
	p := NewPacer(1_000_000)
	if p.cyclesPerSecond != 1_000_000 {
		t.Fatalf("cyclesPerSecond = %v, want 1000000", p.cyclesPerSecond)
	}
	if time.Since(p.last) > time.Second {
		t.Fatalf("last = %v, want the construction time", p.last)
	}
}
