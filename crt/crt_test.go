package crt

import (
	"encoding/binary"
	"testing"
)

func buildCRT(hwType uint16, chips [][]byte, loadAddrs []uint16) []byte {
	header := make([]byte, headerLength)
	copy(header, headerSignature[:])
	binary.BigEndian.PutUint32(header[16:20], uint32(headerLength))
	binary.BigEndian.PutUint16(header[20:22], 1) // version
	binary.BigEndian.PutUint16(header[22:24], hwType)
	header[24] = 1 // EXROM high
	header[25] = 0 // GAME low

	var body []byte
	for i, data := range chips {
		packet := make([]byte, 16+len(data))
		copy(packet, "CHIP")
		binary.BigEndian.PutUint32(packet[4:8], uint32(16+len(data)))
		binary.BigEndian.PutUint16(packet[8:10], 0) // ROM
		binary.BigEndian.PutUint16(packet[10:12], uint16(i))
		binary.BigEndian.PutUint16(packet[12:14], loadAddrs[i])
		binary.BigEndian.PutUint16(packet[14:16], uint16(len(data)))
		copy(packet[16:], data)
		body = append(body, packet...)
	}

	return append(header, body...)
}

func eightK(fill uint8) []byte {
	b := make([]byte, 8192)
	for i := range b {
		b[i] = fill
	}
	return b
}

func TestLoadParsesGenericCartridge(t *testing.T) {
	raw := buildCRT(0, [][]byte{eightK(0xAA)}, []uint16{0x8000})
	img, err := Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(img.Banks) != 1 {
		t.Fatalf("len(Banks) = %d, want 1", len(img.Banks))
	}
	if img.Banks[0][0] != 0xAA {
		t.Fatalf("bank data not preserved")
	}
}

func TestLoadOrdersChipsByBankThenLoadAddress(t *testing.T) {
	raw := buildCRT(32, [][]byte{eightK(2), eightK(1)}, []uint16{0xA000, 0x8000})
	// buildCRT numbers banks by position; put the second chip in bank 0 as
	// well, so only the load address decides the order
	binary.BigEndian.PutUint16(raw[headerLength+16+8192+10:], 0)
	img, err := Load(raw)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Banks[0][0] != 1 || img.Banks[1][0] != 2 {
		t.Fatalf("chips not sorted by load address: got %v, %v", img.Banks[0][0], img.Banks[1][0])
	}
}

func TestLoadRejectsBadSignature(t *testing.T) {
	raw := buildCRT(0, [][]byte{eightK(0)}, []uint16{0x8000})
	raw[0] = 'X'
	if _, err := Load(raw); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestLoadRejectsUnknownHardwareType(t *testing.T) {
	raw := buildCRT(9999, [][]byte{eightK(0)}, []uint16{0x8000})
	if _, err := Load(raw); err == nil {
		t.Fatalf("expected unsupported hardware type error")
	}
}

func TestBuildMapperConstructsWorkingMapper(t *testing.T) {
	raw := buildCRT(0, [][]byte{eightK(0x42)}, []uint16{0x8000})
	m, hdr, err := BuildMapper(raw)
	if err != nil {
		t.Fatalf("BuildMapper: %v", err)
	}
	if m.PeekRomL(0x8000) != 0x42 {
		t.Fatalf("mapper did not receive parsed bank data")
	}
	if hdr.HWType != 0 {
		t.Fatalf("HWType = %d, want 0", hdr.HWType)
	}
}
