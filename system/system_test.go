package system

import (
	"testing"

	"nescore/ines"
	"nescore/ppu"
)

type flatMapper struct {
	prg [0x8000]byte
	chr [0x2000]byte
}

func (m *flatMapper) CPURead(addr uint16) (uint8, bool) {
	if addr >= 0x8000 {
		return m.prg[addr-0x8000], true
	}
	return 0, false
}
func (m *flatMapper) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x8000 {
		m.prg[addr-0x8000] = val
	}
}
func (m *flatMapper) PPURead(addr uint16) (uint8, bool) { return m.chr[addr], true }
func (m *flatMapper) PPUWrite(addr uint16, val uint8)   { m.chr[addr] = val }
func (m *flatMapper) Mirroring() ines.Mirroring         { return ines.Horizontal }

func newTestSystem() (*System, *flatMapper) {
	cart := &flatMapper{}
	cart.prg[0x7FFC] = 0x00 // reset vector -> $8000
	cart.prg[0x7FFD] = 0x80
	s := New(cart, ppu.NTSC)
	s.PowerOn()
	return s, cart
}

func TestOAMDMAEvenStartTakes513Cycles(t *testing.T) {
	s, _ := newTestSystem()

	for i := 0; i < 256; i++ {
		s.ram[i] = uint8(i)
	}

	if s.cpuCycleCount%2 != 0 {
		t.Fatalf("test setup expected even cpuCycleCount, got %d", s.cpuCycleCount)
	}

	s.Write(0x4014, 0x00) // page $00 -> RAM itself

	cycles := 0
	for s.dma.active || s.genericStall > 0 {
		s.RunCPUCycle()
		cycles++
	}

	if cycles != 513 {
		t.Fatalf("OAM DMA from an even cycle took %d cycles, want 513", cycles)
	}
	for i := 0; i < 256; i++ {
		if got := s.PPU.OAMByte(uint8(i)); got != uint8(i) {
			t.Fatalf("OAM[%d] = %d, want %d", i, got, i)
		}
	}
}

func TestOAMDMAOddStartTakes514Cycles(t *testing.T) {
	s, _ := newTestSystem()
	s.cpuCycleCount = 1 // force odd parity
	s.Write(0x4014, 0x00)

	cycles := 0
	for s.dma.active {
		s.RunCPUCycle()
		cycles++
	}
	if cycles != 514 {
		t.Fatalf("OAM DMA from an odd cycle took %d cycles, want 514", cycles)
	}
}

func TestControllerStrobeAndSerialRead(t *testing.T) {
	s, _ := newTestSystem()
	s.Pad1.SetButton(0, true) // A
	s.Pad1.SetButton(3, true) // Start

	s.Write(0x4016, 1) // strobe high, continuously re-latches A
	if v := s.Read(0x4016); v&1 != 1 {
		t.Fatalf("controller bit 0 while strobed high = %d, want 1 (A pressed)", v&1)
	}
	s.Write(0x4016, 0) // latch

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0} // A,B,Select,Start,Up,Down,Left,Right
	for i, w := range want {
		if got := s.Read(0x4016) & 1; got != w {
			t.Fatalf("serial read %d = %d, want %d", i, got, w)
		}
	}
	// exhausted register reads back as 1s
	if v := s.Read(0x4016) & 1; v != 1 {
		t.Fatalf("read past 8th bit = %d, want 1", v)
	}
}
