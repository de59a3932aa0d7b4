// Package ines decodes ROM images in the iNES file format, the on-disk
// container used to distribute NES binary programs (spec.md §6).
//
// This is the "out-of-scope loader" spec.md §1 assumes: the core never
// parses ROM files itself, it only consumes the Cartridge that a Rom builds
// (see the mapper package). Load-time header errors (bad magic, truncated
// data) are surfaced here, before the core ever runs; an unsupported mapper
// number is reported by mapper.New.
package ines

import (
	"io"
	"os"

	"github.com/go-faster/errors"

	"nescore/log"
)

// Mirroring is the nametable mirroring mode a cartridge selects.
type Mirroring int

const (
	Horizontal Mirroring = iota
	Vertical
	SingleScreenA
	SingleScreenB
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case SingleScreenA:
		return "single-A"
	case SingleScreenB:
		return "single-B"
	case FourScreen:
		return "four-screen"
	default:
		return "unknown"
	}
}

const (
	Magic0, Magic1, Magic2, Magic3 = 'N', 'E', 'S', 0x1A

	headerSize  = 16
	trainerSize = 512
	prgUnit     = 16 * 1024
	chrUnit     = 8 * 1024
)

// Rom is a fully decoded iNES image: header fields plus the raw PRG/CHR
// data slices, ready to be handed to mapper.New.
type Rom struct {
	Mapper       uint8
	Mirroring    Mirroring
	Battery      bool
	HasTrainer   bool
	FourScreen   bool
	PRG          []byte // multiple of 16 KiB
	CHR          []byte // multiple of 8 KiB; empty means CHR-RAM
	CHRIsRAM     bool
	Trainer      []byte // 512 bytes, or nil
	PRGRAMBanks  int    // from an NES 2.0-ignorant guess: always at least 1 (8 KiB)
}

// Open reads and decodes a ROM file from disk.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open rom")
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a full iNES image from r.
func Decode(r io.Reader) (*Rom, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read rom")
	}
	return decode(buf)
}

func decode(buf []byte) (*Rom, error) {
	if len(buf) < headerSize {
		return nil, errors.New("ines: file shorter than 16-byte header")
	}
	hdr := buf[:headerSize]
	if hdr[0] != Magic0 || hdr[1] != Magic1 || hdr[2] != Magic2 || hdr[3] != Magic3 {
		return nil, errors.New("ines: bad magic, not an iNES file")
	}

	prgSize := int(hdr[4]) * prgUnit
	chrSize := int(hdr[5]) * chrUnit
	flags6 := hdr[6]
	flags7 := hdr[7]

	rom := &Rom{
		Mapper:     (flags7 & 0xF0) | (flags6 >> 4),
		Battery:    flags6&0x02 != 0,
		HasTrainer: flags6&0x04 != 0,
		FourScreen: flags6&0x08 != 0,
	}
	switch {
	case rom.FourScreen:
		rom.Mirroring = FourScreen
	case flags6&0x01 != 0:
		rom.Mirroring = Vertical
	default:
		rom.Mirroring = Horizontal
	}

	off := headerSize
	if rom.HasTrainer {
		if len(buf) < off+trainerSize {
			return nil, errors.New("ines: truncated trainer section")
		}
		rom.Trainer = buf[off : off+trainerSize]
		off += trainerSize
	}

	if len(buf) < off+prgSize {
		return nil, errors.Errorf("ines: truncated PRG-ROM section, want %d bytes have %d", prgSize, len(buf)-off)
	}
	rom.PRG = buf[off : off+prgSize]
	off += prgSize

	if chrSize == 0 {
		rom.CHRIsRAM = true
		rom.CHR = make([]byte, chrUnit)
	} else {
		if len(buf) < off+chrSize {
			return nil, errors.Errorf("ines: truncated CHR-ROM section, want %d bytes have %d", chrSize, len(buf)-off)
		}
		rom.CHR = buf[off : off+chrSize]
		off += chrSize
	}

	rom.PRGRAMBanks = 1

	log.ModIRES.Debugf("decoded rom: mapper=%d mirroring=%s prg=%dKiB chr=%dKiB battery=%v",
		rom.Mapper, rom.Mirroring, len(rom.PRG)/1024, len(rom.CHR)/1024, rom.Battery)
	return rom, nil
}
