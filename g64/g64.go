// Package g64 loads and saves the G64 archive format: a direct,
// already-GCR-encoded per-track bit-stream dump that needs no sector
// re-encoding, unlike d64. Grounded on spec's carried-forward file-format
// scope and the track-data/speed-zone layout documented in the VICE
// emulator's G64 format note, which original_source's Disk.h's
// DiskData/DiskLength per-halftrack storage maps onto directly.
package g64

import (
	"encoding/binary"

	"github.com/vc64/core/disk"
	"github.com/vc64/core/errors"
)

var signature = [8]byte{'G', 'C', 'R', '-', '1', '5', '4', '1'}

const (
	headerSize    = 12 // signature(8) + version(1) + numHalftracks(1) + trackSize(2, unused, always maxTrackSize)
	maxTrackSize  = 7928
	offsetTableSz = NumHalftracksMax * 4
)

// NumHalftracksMax is the widest halftrack range this package writes
// (tracks 1-42 => halftracks 1-84, matching disk.NumHalftracks).
const NumHalftracksMax = disk.NumHalftracks

// Load parses a G64 image into a disk.Disk, placing each track's raw
// bit-stream directly without any GCR re-encoding.
func Load(image []byte) (*disk.Disk, error) {
	if len(image) < headerSize {
		return nil, errors.Errorf(errors.DiskFileError, "g64 image too short")
	}
	for i, b := range signature {
		if image[i] != b {
			return nil, errors.Errorf(errors.DiskFileError, "bad g64 signature")
		}
	}
	numHalftracks := int(image[9])
	trackOffsetStart := headerSize
	speedZoneStart := trackOffsetStart + numHalftracks*4

	if speedZoneStart+numHalftracks*4 > len(image) {
		return nil, errors.Errorf(errors.DiskFileError, "g64 offset tables truncated")
	}

	d := disk.New()
	for ht := 1; ht <= numHalftracks && ht <= disk.NumHalftracks; ht++ {
		offsetPos := trackOffsetStart + (ht-1)*4
		offset := binary.LittleEndian.Uint32(image[offsetPos : offsetPos+4])
		if offset == 0 {
			continue // halftrack not present on this disk
		}
		if int(offset)+2 > len(image) {
			return nil, errors.Errorf(errors.DiskFileError, "track data pointer out of range")
		}
		trackLen := int(binary.LittleEndian.Uint16(image[offset : offset+2]))
		start := int(offset) + 2
		if start+trackLen > len(image) {
			return nil, errors.Errorf(errors.DiskFileError, "track data runs past end of image")
		}
		raw := image[start : start+trackLen]
		bits := trackLen * 8
		d.SetLength(ht, bits)
		for i := 0; i < bits; i++ {
			bit := (raw[i/8] >> (7 - uint(i%8))) & 1
			d.WriteBit(ht, i, bit)
		}
	}
	return d, nil
}

// Save serialises the given halftrack range of a disk.Disk into a G64
// image, padding every track's bit-stream to a whole number of bytes.
func Save(d *disk.Disk, numHalftracks int) []byte {
	if numHalftracks > disk.NumHalftracks {
		numHalftracks = disk.NumHalftracks
	}

	header := make([]byte, headerSize)
	copy(header, signature[:])
	header[8] = 0 // version
	header[9] = byte(numHalftracks)
	binary.LittleEndian.PutUint16(header[10:12], maxTrackSize)

	offsets := make([]byte, numHalftracks*4)
	speedZones := make([]byte, numHalftracks*4)
	var trackData []byte

	cursor := uint32(headerSize + numHalftracks*4*2)
	for i := 0; i < numHalftracks; i++ {
		ht := i + 1
		bits := d.LengthOfHalftrack(ht)
		if bits == 0 {
			binary.LittleEndian.PutUint32(offsets[i*4:i*4+4], 0)
			continue
		}
		byteLen := (bits + 7) / 8
		raw := make([]byte, byteLen)
		for b := 0; b < bits; b++ {
			if d.ReadBit(ht, b) != 0 {
				raw[b/8] |= 0x80 >> uint(b%8)
			}
		}
		lenPrefix := make([]byte, 2)
		binary.LittleEndian.PutUint16(lenPrefix, uint16(byteLen))

		binary.LittleEndian.PutUint32(offsets[i*4:i*4+4], cursor)
		binary.LittleEndian.PutUint32(speedZones[i*4:i*4+4], uint32(disk.Zone(disk.Track(ht))))
		trackData = append(trackData, lenPrefix...)
		trackData = append(trackData, raw...)
		cursor += uint32(2 + byteLen)
	}

	out := make([]byte, 0, int(cursor))
	out = append(out, header...)
	out = append(out, offsets...)
	out = append(out, speedZones...)
	out = append(out, trackData...)
	return out
}
