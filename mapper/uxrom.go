package mapper

import "nescore/ines"

// uxrom (mapper 2): 16 KiB switchable PRG bank at $8000, 16 KiB fixed to the
// last bank at $C000. CHR is always RAM (8 KiB, unbanked).
//
// Grounded on arl-nestor/hw/mappers/uxrom.go and
// original_source/src/cartridge/uxrom.rs.
type uxrom struct {
	prg       []byte
	chr       []byte
	chrIsRAM  bool
	prgRAM    [0x2000]byte
	bank      int
	mirroring ines.Mirroring
}

func newUxROM(rom *ines.Rom) Mapper {
	return &uxrom{prg: rom.PRG, chr: rom.CHR, chrIsRAM: rom.CHRIsRAM, mirroring: rom.Mirroring}
}

func (m *uxrom) CPURead(addr uint16) (uint8, bool) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.prgRAM[addr-0x6000], true
	case addr >= 0x8000 && addr < 0xC000:
		return prgBank16k(m.prg, m.bank)[addr-0x8000], true
	case addr >= 0xC000:
		return prgBank16k(m.prg, -1)[addr-0xC000], true
	}
	return 0, false
}

func (m *uxrom) CPUWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.prgRAM[addr-0x6000] = val
	case addr >= 0x8000:
		m.bank = int(val & 0x0F)
	}
}

func (m *uxrom) PPURead(addr uint16) (uint8, bool) {
	if addr < 0x2000 {
		return m.chr[int(addr)%len(m.chr)], true
	}
	return 0, false
}

func (m *uxrom) PPUWrite(addr uint16, val uint8) {
	if addr < 0x2000 && m.chrIsRAM {
		m.chr[int(addr)%len(m.chr)] = val
	}
}

func (m *uxrom) Mirroring() ines.Mirroring { return m.mirroring }
