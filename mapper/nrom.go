package mapper

import "nescore/ines"

// nrom (mapper 0) has no bank registers: PRG-ROM is 16 or 32 KiB mapped
// directly, CHR is a single fixed 8 KiB bank (ROM or RAM).
//
// Grounded on arl-nestor/hw/mappers/nrom.go.
type nrom struct {
	prg       []byte // 16 or 32 KiB, mirrored if 16 KiB
	chr       []byte // 8 KiB
	chrIsRAM  bool
	prgRAM    [0x2000]byte
	mirroring ines.Mirroring
}

func newNROM(rom *ines.Rom) Mapper {
	return &nrom{prg: rom.PRG, chr: rom.CHR, chrIsRAM: rom.CHRIsRAM, mirroring: rom.Mirroring}
}

func (m *nrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000], true
	case addr >= 0x8000:
		off := int(addr-0x8000) % len(m.prg)
		return m.prg[off], true
	}
	return 0, false
}

func (m *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF have no register to hit; NROM silently drops them.
}

func (m *nrom) PPURead(addr uint16) (uint8, bool) {
	if addr < 0x2000 {
		return m.chr[int(addr)%len(m.chr)], true
	}
	return 0, false
}

func (m *nrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.chrIsRAM {
		m.chr[int(addr)%len(m.chr)] = val
	}
}

func (m *nrom) Mirroring() ines.Mirroring { return m.mirroring }
