// Package debug provides development-time introspection helpers that sit
// outside the emulated machine's critical path: a PETSCII screen-code
// decoder for turning the $0400-$07E7 character matrix into readable text
// or a rendered image, and a data-structure graph dumper for the
// suspended-machine inspector.
package debug

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ScreenColumns and ScreenRows are the VIC-II text matrix dimensions.
const (
	ScreenColumns = 40
	ScreenRows    = 25
	ScreenBytes   = ScreenColumns * ScreenRows
)

// screenCodeToRune maps an unshifted (uppercase/graphics) PETSCII screen
// code to the character it visually represents. Codes 0-26 are '@' and
// 'A'-'Z'; 32-63 mirror ASCII punctuation and digits directly; 27-31 and
// the graphics codes 64-127 decode as '?'. Codes 128-255 are the reverse
// (inverse) video forms of 0-127 and decode to the same character, since
// this is a text dump, not a pixel-accurate render.
func screenCodeToRune(code byte) rune {
	code &= 0x7f
	switch {
	case code == 0:
		return '@'
	case code >= 1 && code <= 26:
		return rune('A' + code - 1)
	case code >= 32 && code <= 63:
		return rune(code)
	default:
		return '?'
	}
}

// DecodeText converts a screen RAM snapshot (1000 bytes, row-major, as
// found at $0400-$07E7) into its text representation, one line per row.
// Trailing screen-code 0x20 (space) on each line is preserved; callers
// that want trimmed output should strings.TrimRight the result.
func DecodeText(screen []byte) (string, error) {
	if len(screen) != ScreenBytes {
		return "", errScreenSize
	}

	var buf bytes.Buffer
	for row := 0; row < ScreenRows; row++ {
		for col := 0; col < ScreenColumns; col++ {
			buf.WriteRune(screenCodeToRune(screen[row*ScreenColumns+col]))
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

var errScreenSize = decodeError{"screen snapshot must be exactly 1000 bytes"}

type decodeError struct{ msg string }

func (e decodeError) Error() string { return "debug: " + e.msg }

// RenderImage rasterises a screen RAM snapshot into an *image.RGBA using
// a fixed-width bitmap face, for dumping to a PNG during the startup
// end-to-end scenario so assertions can be made against decoded text
// rather than raw screen-code bytes.
func RenderImage(screen []byte) (*image.RGBA, error) {
	text, err := DecodeText(screen)
	if err != nil {
		return nil, err
	}

	face := basicfont.Face7x13
	cellW := face.Advance
	cellH := 16

	img := image.NewRGBA(image.Rect(0, 0, ScreenColumns*cellW, ScreenRows*cellH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	lines := bytes.Split([]byte(text), []byte{'\n'})
	for row, line := range lines {
		if row >= ScreenRows {
			break
		}
		drawer.Dot = fixed.Point26_6{
			X: fixed.I(0),
			Y: fixed.I((row + 1) * cellH),
		}
		drawer.DrawString(string(line))
	}

	return img, nil
}
