// Package gcr implements the Commodore 1541's group-code-recording
// nibble codec: the fixed 4-bit-to-5-bit lookup table the drive's logic
// board uses to turn 4 data bits into a 5-bit pattern with no more than
// two consecutive zero bits, so the pattern can be recovered from the
// analog flux transitions on the disk surface without a separate clock
// track, grounded on original_source/Emulator/Drive/Disk.h's `gcr`/
// `invgcr` tables.
package gcr

// Encode maps a 4-bit nibble (0-15) to its 5-bit GCR codeword.
var Encode = [16]uint8{
	0x0a, 0x0b, 0x12, 0x13,
	0x0e, 0x0f, 0x16, 0x17,
	0x09, 0x19, 0x1a, 0x1b,
	0x0d, 0x1d, 0x1e, 0x15,
}

// invalid marks a 5-bit pattern that is not a legal GCR codeword.
const invalid = 0xFF

// Decode maps a 5-bit GCR codeword (0-31) back to its 4-bit nibble, or
// invalid if the pattern never appears in Encode.
var Decode = [32]uint8{
	invalid, invalid, invalid, invalid,
	invalid, invalid, invalid, invalid,
	invalid, 8, 0, 1,
	invalid, 12, 4, 5,
	invalid, invalid, 2, 3,
	invalid, 15, 6, 7,
	invalid, 9, 10, 11,
	invalid, 13, 14, invalid,
}

// EncodeByte packs a single byte into its 10-bit GCR form, returned as
// the low 10 bits of a uint16 (high nibble's 5 bits in bits 9-5, low
// nibble's 5 bits in bits 4-0).
func EncodeByte(b uint8) uint16 {
	hi := Encode[b>>4]
	lo := Encode[b&0x0F]
	return uint16(hi)<<5 | uint16(lo)
}

// EncodeBlock GCR-encodes src into a bitstream-ready byte slice: every 4
// source bytes become 5 GCR bytes (32 data bits become 40 GCR bits).
func EncodeBlock(src []uint8) []uint8 {
	out := make([]uint8, 0, (len(src)*5+3)/4)
	var acc uint64
	var bits int
	for _, b := range src {
		acc = acc<<10 | uint64(EncodeByte(b))
		bits += 10
		for bits >= 8 {
			bits -= 8
			out = append(out, uint8(acc>>bits))
		}
	}
	if bits > 0 {
		out = append(out, uint8(acc<<(8-bits)))
	}
	return out
}

// DecodeByte unpacks a 10-bit GCR codeword (low 10 bits of v) back to its
// source byte. ok is false if either nibble's codeword is invalid.
func DecodeByte(v uint16) (b uint8, ok bool) {
	hi := Decode[(v>>5)&0x1F]
	lo := Decode[v&0x1F]
	if hi == invalid || lo == invalid {
		return 0, false
	}
	return hi<<4 | lo, true
}

// DecodeBlock is the inverse of EncodeBlock: it reads byteCount source
// bytes (10 GCR bits each) out of src and returns the decoded bytes. ok is false if any 5-bit group fails to decode.
func DecodeBlock(src []uint8, byteCount int) (out []uint8, ok bool) {
	out = make([]uint8, 0, byteCount)
	var acc uint64
	var bits int
	pos := 0
	for len(out) < byteCount {
		for bits < 10 && pos < len(src)*8 {
			byteIdx := pos / 8
			bitIdx := 7 - pos%8
			bit := (src[byteIdx] >> bitIdx) & 1
			acc = acc<<1 | uint64(bit)
			bits++
			pos++
		}
		if bits < 10 {
			return out, false
		}
		bits -= 10
		codeword := uint16(acc>>bits) & 0x3FF
		b, good := DecodeByte(codeword)
		if !good {
			return out, false
		}
		out = append(out, b)
	}
	return out, true
}
