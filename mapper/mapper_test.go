package mapper

import (
	"testing"

	"nescore/ines"
)

func makeRom(mapperNum uint8, prgBanks, chrBanks int, mirroring ines.Mirroring) *ines.Rom {
	prg := make([]byte, prgBanks*0x4000)
	for i := range prg {
		prg[i] = byte(i / 0x4000) // tag each 16KiB bank with its index
	}
	chr := make([]byte, chrBanks*0x2000)
	for i := range chr {
		chr[i] = byte(i/0x1000) + 0x80
	}
	return &ines.Rom{Mapper: mapperNum, PRG: prg, CHR: chr, Mirroring: mirroring}
}

func TestNROMFixedMapping(t *testing.T) {
	rom := makeRom(0, 2, 1, ines.Horizontal)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.CPURead(0x8000)
	if !ok || v != 0 {
		t.Fatalf("read $8000 = %d,%v want 0,true", v, ok)
	}
	v, _ = m.CPURead(0xC000)
	if v != 1 {
		t.Fatalf("read $C000 = %d want 1", v)
	}
}

func TestUxROMBankSwitch(t *testing.T) {
	rom := makeRom(2, 4, 0, ines.Vertical)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	// $C000 always fixed to last bank (3).
	v, _ := m.CPURead(0xC000)
	if v != 3 {
		t.Fatalf("fixed bank = %d, want 3", v)
	}
	m.CPUWrite(0x8000, 2)
	v, _ = m.CPURead(0x8000)
	if v != 2 {
		t.Fatalf("switchable bank after select(2) = %d, want 2", v)
	}
	// Last bank stays fixed regardless of the select register.
	v, _ = m.CPURead(0xC000)
	if v != 3 {
		t.Fatalf("fixed bank after switch = %d, want 3", v)
	}
}

func TestMMC1SerialLoad(t *testing.T) {
	rom := makeRom(1, 4, 2, ines.Horizontal)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*mmc1)

	// Select PRG bank 2, mode 3 ($8000 switchable / $C000 fixed-last):
	// control reg already defaults to mode 3 (ctrl=0x0C). Write bank number 2
	// to $E000 across 5 single-bit writes, spacing cycles so the
	// consecutive-write guard doesn't eat them.
	write5 := func(addr uint16, val uint8) {
		for i := 0; i < 5; i++ {
			mm.TickCPUCycle()
			mm.TickCPUCycle()
			m.CPUWrite(addr, (val>>i)&1)
		}
	}
	write5(0xE000, 2)

	v, _ := m.CPURead(0x8000)
	if v != 2 {
		t.Fatalf("prg bank after select = %d, want 2", v)
	}
	v, _ = m.CPURead(0xC000)
	if v != 3 {
		t.Fatalf("fixed last bank = %d, want 3", v)
	}
}

func TestMMC1ResetBit(t *testing.T) {
	rom := makeRom(1, 2, 1, ines.Horizontal)
	m, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	mm := m.(*mmc1)
	mm.shift = 0x1F
	mm.shiftN = 3
	m.CPUWrite(0x8000, 0x80)
	if mm.shiftN != 0 || mm.shift != 0 {
		t.Fatalf("reset bit did not clear shift register: shift=%x n=%d", mm.shift, mm.shiftN)
	}
	if mm.ctrl&0x0C != 0x0C {
		t.Fatalf("reset bit did not force 16KiB PRG mode: ctrl=%x", mm.ctrl)
	}
}
