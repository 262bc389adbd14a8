// Package tap loads the Commodore TAP tape-image format: a header
// followed by a stream of pulse lengths, grounded on
// original_source/Emulator/Peripherals/Datasette/Datasette.h's
// documented TAP v0/v1 distinction ("In TAP format 0, data byte 0
// signals a long pulse without stating its length precisely. In TAP
// format 1, each 0 is followed by three bytes stating the precise
// length in LO_LO_HI_00 format").
package tap

import (
	"encoding/binary"

	"github.com/vc64/core/errors"
)

var signature = [12]byte{'C', '6', '4', '-', 'T', 'A', 'P', 'E', '-', 'R', 'A', 'W'}

const headerSize = 20

// Load parses a TAP image into a slice of pulse lengths expressed in C64
// clock cycles (the unit datasette.Deck's pulse stream uses). version
// reports the TAP file format version (0 or 1) found in the header.
func Load(image []byte) (pulses []int32, version uint8, err error) {
	if len(image) < headerSize {
		return nil, 0, errors.Errorf(errors.TAPFileError, "image shorter than header")
	}
	for i, b := range signature {
		if image[i] != b {
			return nil, 0, errors.Errorf(errors.TAPFileError, "bad signature")
		}
	}
	version = image[12]
	dataSize := binary.LittleEndian.Uint32(image[16:20])
	data := image[headerSize:]
	if uint32(len(data)) < dataSize {
		return nil, 0, errors.Errorf(errors.TAPFileError, "truncated pulse data")
	}
	data = data[:dataSize]

	pulses = make([]int32, 0, len(data))
	for i := 0; i < len(data); {
		b := data[i]
		if b != 0 {
			// One data byte times 8 is the pulse length in cycles, per
			// the well-known TAP encoding both versions share for
			// non-zero bytes.
			pulses = append(pulses, int32(b)*8)
			i++
			continue
		}
		if version == 0 {
			// format 0: an undetermined long pulse; approximate with the
			// conventional 256*8 cycle placeholder real loaders use.
			pulses = append(pulses, 256*8)
			i++
			continue
		}
		if i+3 >= len(data) {
			return nil, 0, errors.Errorf(errors.TAPFileError, "truncated long-pulse record")
		}
		length := uint32(data[i+1]) | uint32(data[i+2])<<8 | uint32(data[i+3])<<16
		pulses = append(pulses, int32(length))
		i += 4
	}
	return pulses, version, nil
}

// Save serialises a pulse stream back into a TAP v1 image.
func Save(pulses []int32) []byte {
	var data []byte
	for _, p := range pulses {
		if p > 0 && p < 256*8 && p%8 == 0 {
			data = append(data, byte(p/8))
			continue
		}
		data = append(data, 0, byte(p), byte(p>>8), byte(p>>16))
	}

	out := make([]byte, headerSize+len(data))
	copy(out, signature[:])
	out[12] = 1 // version
	binary.LittleEndian.PutUint32(out[16:20], uint32(len(data)))
	copy(out[headerSize:], data)
	return out
}
