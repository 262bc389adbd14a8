package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vc64/core/logger"
)

func TestLoggerOrderingAndWrap(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Write(w)
	if w.String() != "" {
		t.Fatalf("expected empty log, got %q", w.String())
	}

	log.Log("a", "one")
	log.Log("b", "two")
	log.Log("c", "three") // wraps, evicting "a: one"

	w.Reset()
	log.Write(w)
	want := "b: two\nc: three\n"
	if w.String() != want {
		t.Fatalf("got %q, want %q", w.String(), want)
	}
}

func TestLoggerTail(t *testing.T) {
	log := logger.NewLogger(10)
	log.Log("x", "1")
	log.Log("x", "2")
	log.Log("x", "3")

	w := &strings.Builder{}
	log.Tail(w, 2)
	if w.String() != "x: 2\nx: 3\n" {
		t.Fatalf("got %q", w.String())
	}

	w.Reset()
	log.Tail(w, 0)
	if w.String() != "" {
		t.Fatalf("expected empty tail, got %q", w.String())
	}

	w.Reset()
	log.Tail(w, 100)
	if w.String() != "x: 1\nx: 2\nx: 3\n" {
		t.Fatalf("got %q", w.String())
	}
}

func TestLoggerErrorDetail(t *testing.T) {
	log := logger.NewLogger(4)
	log.Log("tag", errors.New("boom"))

	w := &strings.Builder{}
	log.Write(w)
	if w.String() != "tag: boom\n" {
		t.Fatalf("got %q", w.String())
	}
}

func TestLoggerClear(t *testing.T) {
	log := logger.NewLogger(4)
	log.Log("tag", "detail")
	log.Clear()

	w := &strings.Builder{}
	log.Write(w)
	if w.String() != "" {
		t.Fatalf("expected empty log after Clear, got %q", w.String())
	}
}
