package ines

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildRom(flags6, flags7 byte, prgBanks, chrBanks int) []byte {
	hdr := make([]byte, headerSize)
	copy(hdr, []byte{Magic0, Magic1, Magic2, Magic3})
	hdr[4] = byte(prgBanks)
	hdr[5] = byte(chrBanks)
	hdr[6] = flags6
	hdr[7] = flags7

	buf := bytes.NewBuffer(hdr)
	buf.Write(make([]byte, prgBanks*prgUnit))
	buf.Write(make([]byte, chrBanks*chrUnit))
	return buf.Bytes()
}

func TestDecodeMapperNumber(t *testing.T) {
	// mapper 66 (GxROM) = 0x42: flags7 high nibble 0x40, flags6 high nibble 0x20.
	raw := buildRom(0x20, 0x40, 1, 1)
	rom, err := decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rom.Mapper != 66 {
		t.Fatalf("mapper = %d, want 66", rom.Mapper)
	}
}

func TestDecodeMirroring(t *testing.T) {
	tests := []struct {
		flags6 byte
		want   Mirroring
	}{
		{0x00, Horizontal},
		{0x01, Vertical},
		{0x08, FourScreen},
		{0x09, FourScreen}, // four-screen bit wins regardless of bit 0
	}
	for _, tt := range tests {
		raw := buildRom(tt.flags6, 0x00, 1, 1)
		rom, err := decode(raw)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if rom.Mirroring != tt.want {
			t.Errorf("flags6=%#x: mirroring = %v, want %v", tt.flags6, rom.Mirroring, tt.want)
		}
	}
}

func TestDecodeCHRRAM(t *testing.T) {
	raw := buildRom(0x00, 0x00, 1, 0)
	rom, err := decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !rom.CHRIsRAM {
		t.Fatal("expected CHR-RAM when header CHR size is 0")
	}
	if len(rom.CHR) != chrUnit {
		t.Fatalf("CHR-RAM size = %d, want %d", len(rom.CHR), chrUnit)
	}
}

func TestDecodeBadMagic(t *testing.T) {
	raw := buildRom(0, 0, 1, 1)
	raw[0] = 'X'
	if _, err := decode(raw); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestDecodeTruncated(t *testing.T) {
	raw := buildRom(0, 0, 2, 1)
	raw = raw[:len(raw)-100]
	if _, err := decode(raw); err == nil {
		t.Fatal("expected error for truncated CHR section")
	}
}

func TestDecodeTrainer(t *testing.T) {
	hdr := make([]byte, headerSize)
	copy(hdr, []byte{Magic0, Magic1, Magic2, Magic3})
	hdr[4], hdr[5] = 1, 1
	hdr[6] = 0x04 // has trainer

	var buf bytes.Buffer
	buf.Write(hdr)
	trainer := bytes.Repeat([]byte{0xAB}, trainerSize)
	buf.Write(trainer)
	buf.Write(make([]byte, prgUnit))
	buf.Write(make([]byte, chrUnit))

	rom, err := decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !cmp.Equal(rom.Trainer, trainer) {
		t.Fatalf("trainer mismatch: %s", cmp.Diff(rom.Trainer, trainer))
	}
}
