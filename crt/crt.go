// Package crt parses the CRT cartridge file format — an ASCII-signed
// header naming the hardware type and initial GAME/EXROM lines, followed
// by a sequence of CHIP packets each holding one ROM/RAM bank — into the
// [][]byte bank data cartridge.NewMapper expects. Grounded on
// cartridge/mapper.go's HardwareType enum and generic.go/ocean.go's
// existing "one []byte per bank" bank-data convention.
package crt

import (
	"encoding/binary"
	"sort"

	"github.com/vc64/core/cartridge"
	"github.com/vc64/core/errors"
)

var headerSignature = [16]byte{'C', '6', '4', ' ', 'C', 'A', 'R', 'T', 'R', 'I', 'D', 'G', 'E', ' ', ' ', ' '}

const (
	headerLength = 0x40
	chipSignature0 = 'C'
	chipSignature1 = 'H'
	chipSignature2 = 'I'
	chipSignature3 = 'P'
)

// ChipType identifies the kind of data a CHIP packet carries.
type ChipType uint16

const (
	ChipROM ChipType = iota
	ChipRAMNoData
	ChipFlashROM
)

// Header is the CRT file's fixed-size preamble.
type Header struct {
	Version  uint16
	HWType   uint16
	Exrom    bool // true = EXROM line held high (inactive) at power-on
	Game     bool // true = GAME line held high (inactive) at power-on
	Name     string
}

// Image is a fully parsed CRT file: its header plus the ordered bank
// data ready to be handed to cartridge.NewMapper.
type Image struct {
	Header Header
	Kind   cartridge.HardwareType
	Banks  [][]byte
}

type chipPacket struct {
	bank      uint16
	loadAddr  uint16
	size      uint16
	chipType  ChipType
	data      []byte
}

// knownHardwareTypes maps the CRT format's numeric hardware-type field to
// the subset of cartridge.HardwareType this core implements. A type not
// present here is reported as unsupported by Load, mirroring
// cartridge.NewMapper's own default case.
var knownHardwareTypes = map[uint16]cartridge.HardwareType{
	0:  cartridge.TypeNormal,
	1:  cartridge.TypeActionReplay,
	3:  cartridge.TypeFinalCartridgeIII,
	4:  cartridge.TypeSimonsBasic,
	5:  cartridge.TypeOcean,
	8:  cartridge.TypeEpyxFastLoad,
	19: cartridge.TypeMagicDesk,
	32: cartridge.TypeEasyFlash,
}

// Load parses a complete CRT file image.
func Load(raw []byte) (*Image, error) {
	if len(raw) < headerLength {
		return nil, errors.Errorf(errors.CartridgeFileError, "file shorter than CRT header")
	}
	for i, b := range headerSignature {
		if raw[i] != b {
			return nil, errors.Errorf(errors.CartridgeFileError, "bad CRT signature")
		}
	}

	hdrLen := binary.BigEndian.Uint32(raw[16:20])
	if uint32(len(raw)) < hdrLen {
		return nil, errors.Errorf(errors.CartridgeFileError, "truncated CRT header")
	}

	h := Header{
		Version: binary.BigEndian.Uint16(raw[20:22]),
		HWType:  binary.BigEndian.Uint16(raw[22:24]),
		Exrom:   raw[24] != 0,
		Game:    raw[25] != 0,
		Name:    trimNulName(raw[32:64]),
	}

	kind, ok := knownHardwareTypes[h.HWType]
	if !ok {
		return nil, errors.Errorf(errors.CartridgeUnsupported, int(h.HWType))
	}

	var chips []chipPacket
	pos := int(hdrLen)
	for pos+16 <= len(raw) {
		if raw[pos] != chipSignature0 || raw[pos+1] != chipSignature1 ||
			raw[pos+2] != chipSignature2 || raw[pos+3] != chipSignature3 {
			break
		}
		packetLen := binary.BigEndian.Uint32(raw[pos+4 : pos+8])
		chipType := ChipType(binary.BigEndian.Uint16(raw[pos+8 : pos+10]))
		bank := binary.BigEndian.Uint16(raw[pos+10 : pos+12])
		loadAddr := binary.BigEndian.Uint16(raw[pos+12 : pos+14])
		size := binary.BigEndian.Uint16(raw[pos+14 : pos+16])

		dataStart := pos + 16
		dataEnd := dataStart + int(size)
		if dataEnd > len(raw) {
			return nil, errors.Errorf(errors.CartridgeFileError, "truncated CHIP packet data")
		}

		chips = append(chips, chipPacket{
			bank:     bank,
			loadAddr: loadAddr,
			size:     size,
			chipType: chipType,
			data:     raw[dataStart:dataEnd],
		})

		if packetLen == 0 {
			break
		}
		pos += int(packetLen)
	}

	sort.Slice(chips, func(i, j int) bool {
		if chips[i].bank != chips[j].bank {
			return chips[i].bank < chips[j].bank
		}
		return chips[i].loadAddr < chips[j].loadAddr
	})

	banks := make([][]byte, 0, len(chips))
	for _, c := range chips {
		banks = append(banks, c.data)
	}

	return &Image{Header: h, Kind: kind, Banks: banks}, nil
}

// BuildMapper parses raw and constructs the cartridge.Mapper for it.
func BuildMapper(raw []byte) (cartridge.Mapper, *Header, error) {
	img, err := Load(raw)
	if err != nil {
		return nil, nil, err
	}
	m, err := cartridge.NewMapper(img.Kind, img.Banks)
	if err != nil {
		return nil, nil, err
	}
	return m, &img.Header, nil
}

func trimNulName(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}
