package debug

import (
	"strings"
	"testing"
)

func blankScreen() []byte {
	s := make([]byte, ScreenBytes)
	for i := range s {
		s[i] = 0x20 // space
	}
	return s
}

func TestDecodeTextRejectsWrongSize(t *testing.T) {
	if _, err := DecodeText(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short screen buffer")
	}
}

func TestDecodeTextSpacesAndLetters(t *testing.T) {
	s := blankScreen()
	// "READY." at the start of row 0, screen-code scheme: 'A'-'Z' -> 1-26.
	word := []byte{18, 5, 1, 4, 25, 0x2e} // R E A D Y .
	copy(s, word)

	text, err := DecodeText(s)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 1 {
		t.Fatalf("expected at least one line")
	}
	got := lines[0][:6]
	if got != "READY." {
		t.Fatalf("got %q, want %q", got, "READY.")
	}
}

func TestRenderImageProducesNonEmptyBitmap(t *testing.T) {
	s := blankScreen()
	copy(s, []byte{8, 9}) // "HI"

	img, err := RenderImage(s)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		t.Fatalf("expected non-empty image, got bounds %v", b)
	}
}
