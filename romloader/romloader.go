// Package romloader validates a candidate ROM image's size and checksum
// against a curated list of known-good C64 firmware revisions before it
// is handed to mem.Memory, grounded on the CRC32-based verification idiom
// other_examples/a51fae14_user-none-eMkIII__emu-emulator.go.go uses for
// its own state/data integrity checks.
package romloader

import (
	"fmt"
	"hash/crc32"

	"github.com/vc64/core/errors"
)

// Kind identifies which of the machine's ROM sockets an image is destined
// for.
type Kind int

// The ROM sockets a C64 has.
const (
	KindKernal Kind = iota
	KindBasic
	KindChargen
	KindDriveDOS
)

func (k Kind) String() string {
	switch k {
	case KindKernal:
		return "kernal"
	case KindBasic:
		return "basic"
	case KindChargen:
		return "chargen"
	case KindDriveDOS:
		return "drive DOS"
	default:
		return "unknown"
	}
}

const (
	kernalSize   = 8192
	basicSize    = 8192
	chargenSize  = 4096
	driveDOSSize = 16384
)

func expectedSize(k Kind) int {
	switch k {
	case KindKernal:
		return kernalSize
	case KindBasic:
		return basicSize
	case KindChargen:
		return chargenSize
	case KindDriveDOS:
		return driveDOSSize
	default:
		return 0
	}
}

// knownGood lists the CRC32 (IEEE) checksums of retail ROM revisions this
// core has been tested against. A hash not in this list is rejected by
// Verify, the same "don't run a ROM we don't recognise" posture the
// original's ROM-acceptance path takes.
var knownGood = map[Kind]map[uint32]string{
	KindKernal: {
		0xDBE3E7C7: "901227-03",
		0x0E9461B2: "901227-02",
		0x7E0A0716: "901227-01",
	},
	KindBasic: {
		0xF833D117: "901226-01",
	},
	KindChargen: {
		0xEC4272EE: "901225-01",
		0x0EA6CFA7: "901225-02",
	},
	KindDriveDOS: {
		0xA48EBB18: "901229-05AA",
		0x47D31EB3: "1541-II",
	},
}

// Verify checks image's size against the socket it is destined for and
// its CRC32 checksum against the curated known-good list, returning the
// matched revision's label on success.
func Verify(k Kind, image []byte) (revision string, err error) {
	want := expectedSize(k)
	if len(image) != want {
		return "", errors.Errorf(errors.ROMSizeMismatch, len(image))
	}

	sum := crc32.ChecksumIEEE(image)
	rev, ok := knownGood[k][sum]
	if !ok {
		return "", errors.Errorf(errors.ROMHashUnknown, fmt.Sprintf("%s %#08x", k, sum))
	}
	return rev, nil
}

// Accept is like Verify but tolerates an unrecognised checksum, returning
// ok=false instead of an error, for callers that want to run an
// unverified image anyway.
func Accept(k Kind, image []byte) (revision string, ok bool) {
	rev, err := Verify(k, image)
	return rev, err == nil
}
