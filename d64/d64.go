// Package d64 converts between the classic 35/40-track D64 sector image
// format and a disk.Disk's GCR bit-stream representation: sync marks,
// header and data blocks, and the inter-block gaps, grounded on
// original_source/Emulator/Drive/Disk.h's encodeGcr/decodeGcr family and
// the header/data block layout implied by its DiskErrorCode constants
// (HEADER_BLOCK_NOT_FOUND, DATA_BLOCK_CHECKSUM_ERROR, ...).
package d64

import (
	"github.com/vc64/core/disk"
	"github.com/vc64/core/errors"
	"github.com/vc64/core/gcr"
)

const (
	bytesPerSector = 256
	syncBits       = 40
	headerGapBytes = 9
	dataGapBytes   = 8
)

// sectorsInImage reports the total 256-byte blocks in a D64 image with
// the given track count (35 or 40), following the standard zone layout.
func sectorsInImage(tracks int) int {
	n := 0
	for t := 1; t <= tracks; t++ {
		n += int(disk.SectorsPerTrack(t))
	}
	return n
}

// Tracks35Size and Tracks40Size are the canonical D64 file sizes this
// package accepts.
const (
	Tracks35Size = 683 * bytesPerSector
	Tracks40Size = 768 * bytesPerSector
)

type bitWriter struct {
	bits []uint8 // one bit per entry, MSB-first semantics preserved by order
}

func (w *bitWriter) writeBit(b uint8) { w.bits = append(w.bits, b&1) }

func (w *bitWriter) writeBits(value uint32, count int) {
	for i := count - 1; i >= 0; i-- {
		w.writeBit(uint8((value >> uint(i)) & 1))
	}
}

func (w *bitWriter) writeBytes(data []uint8) {
	for _, b := range data {
		w.writeBits(uint32(b), 8)
	}
}

func (w *bitWriter) writeSync() {
	for i := 0; i < syncBits; i++ {
		w.writeBit(1)
	}
}

func (w *bitWriter) writeGap(n int, fill uint8) {
	for i := 0; i < n; i++ {
		w.writeBits(uint32(fill), 8)
	}
}

func checksum(data []uint8) uint8 {
	var c uint8
	for _, b := range data {
		c ^= b
	}
	return c
}

func diskID(image []uint8, tracks int) (id1, id2 uint8) {
	// The BAM sector (18/0) stores the two disk ID bytes at offset
	// 0xA2/0xA3; fall back to a fixed pair if the image is too short to
	// contain a BAM (shouldn't happen for a validly sized D64).
	bamOffset := 0
	for t := 1; t < 18; t++ {
		bamOffset += int(disk.SectorsPerTrack(t)) * bytesPerSector
	}
	if bamOffset+0xA4 <= len(image) {
		return image[bamOffset+0xA2], image[bamOffset+0xA3]
	}
	return 0x41, 0x41
}

// Encode GCR-encodes a raw D64 sector image onto a fresh disk.Disk.
func Encode(image []uint8) (*disk.Disk, error) {
	var tracks int
	switch len(image) {
	case Tracks35Size:
		tracks = 35
	case Tracks40Size:
		tracks = 40
	default:
		return nil, errors.Errorf(errors.DiskImageSizeMismatch, len(image))
	}

	d := disk.New()
	id1, id2 := diskID(image, tracks)
	offset := 0

	for t := 1; t <= tracks; t++ {
		numSectors := int(disk.SectorsPerTrack(t))
		w := &bitWriter{}
		for s := 0; s < numSectors; s++ {
			sector := image[offset : offset+bytesPerSector]
			offset += bytesPerSector

			header := []uint8{0x08, 0, uint8(s), uint8(t), id2, id1, 0x0F, 0x0F}
			header[1] = checksum([]uint8{header[2], header[3], header[4], header[5]})
			w.writeSync()
			w.writeBytes(gcr.EncodeBlock(header))
			w.writeGap(headerGapBytes, 0x55)

			data := make([]uint8, 0, 260)
			data = append(data, 0x07)
			data = append(data, sector...)
			data = append(data, checksum(sector), 0x00, 0x00)
			w.writeSync()
			w.writeBytes(gcr.EncodeBlock(data))
			w.writeGap(dataGapBytes, 0x55)
		}

		ht := disk.Halftrack(t)
		d.SetLength(ht, len(w.bits))
		for i, bit := range w.bits {
			d.WriteBit(ht, i, bit)
		}
	}
	return d, nil
}

type bitReader struct {
	d         *disk.Disk
	halftrack int
	pos       int
	length    int
}

func (r *bitReader) readBit() uint8 {
	b := r.d.ReadBit(r.halftrack, r.pos)
	r.pos++
	if r.pos >= r.length {
		r.pos = 0
	}
	return b
}

func (r *bitReader) readBits(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v = v<<1 | uint32(r.readBit())
	}
	return v
}

// skipToSync advances past the next run of at least 10 consecutive 1
// bits (the minimum a real drive's UE7/UF4 divider needs to recognise a
// sync mark), leaving the reader positioned on the first data bit after
// the sync. Returns false if a full revolution passes with none found.
func (r *bitReader) skipToSync() bool {
	ones := 0
	for i := 0; i < r.length+10; i++ {
		if r.readBit() == 1 {
			ones++
		} else {
			if ones >= 10 {
				// the 0 just read is the first data bit: step back onto it
				r.pos--
				if r.pos < 0 {
					r.pos = r.length - 1
				}
				return true
			}
			ones = 0
		}
	}
	return ones >= 10
}

func (r *bitReader) readGCRBytes(n int) []uint8 {
	raw := make([]uint8, n)
	for i := range raw {
		raw[i] = uint8(r.readBits(8))
	}
	return raw
}

// Decode reads every track's GCR bit-stream back into a raw D64 sector
// image. trackCount must be 35 or 40, matching how the disk was
// originally formatted.
func Decode(d *disk.Disk, trackCount int) ([]uint8, error) {
	out := make([]uint8, 0, sectorsInImage(trackCount)*bytesPerSector)
	for t := 1; t <= trackCount; t++ {
		ht := disk.Halftrack(t)
		length := d.LengthOfHalftrack(ht)
		if length == 0 {
			return nil, errors.Errorf(errors.DiskTrackUnformatted, t)
		}
		numSectors := int(disk.SectorsPerTrack(t))
		sectors := make([][]uint8, numSectors)
		found := 0

		r := &bitReader{d: d, halftrack: ht, length: length}
		for attempt := 0; attempt < numSectors*2 && found < numSectors; attempt++ {
			if !r.skipToSync() {
				break
			}
			headerGCR := r.readGCRBytes(10)
			header, ok := gcr.DecodeBlock(headerGCR, 8)
			if !ok || header[0] != 0x08 {
				continue
			}
			sectorNum := int(header[2])
			if sectorNum < 0 || sectorNum >= numSectors {
				continue
			}

			if !r.skipToSync() {
				break
			}
			dataGCR := r.readGCRBytes(325)
			dataBlock, ok := gcr.DecodeBlock(dataGCR, 260)
			if !ok || dataBlock[0] != 0x07 {
				continue
			}
			if sectors[sectorNum] == nil {
				sectors[sectorNum] = dataBlock[1:257]
				found++
			}
		}

		for s := 0; s < numSectors; s++ {
			if sectors[s] == nil {
				return nil, errors.Errorf(errors.DiskSectorNotFound, t, s)
			}
			out = append(out, sectors[s]...)
		}
	}
	return out, nil
}
