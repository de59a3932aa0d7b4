// Package system wires the CPU, PPU, APU, mapper and controllers into one
// bus and drives them with the master scheduler: spec.md §4.3/§4.5. This
// is the redesigned "message passing through the scheduler" architecture
// spec.md §9 calls for, replacing arl-nestor's cyclic CPU<->PPU<->APU
// ownership (hw/cpu.go pulling hw/ppu.go forward from inside bus reads)
// with a scheduler that owns every cross-component signal.
package system

import (
	"nescore/apu"
	"nescore/cpu"
	"nescore/cpubus"
	"nescore/input"
	"nescore/log"
	"nescore/mapper"
	"nescore/ppu"
)

type System struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Cart mapper.Mapper

	Pad1, Pad2 input.Controller

	ram [0x0800]byte

	cpuOpenBus cpubus.Latch

	dma dmaState

	cpuCycleCount  int64
	palAccumulator int
	genericStall   int // CPU stall cycles requested by the DMC unit's sample fetch

	cycleTicker mapper.CycleTicker // non-nil if the cartridge wants a per-CPU-cycle hook
}

func New(cart mapper.Mapper, region ppu.Region) *System {
	s := &System{Cart: cart}
	s.PPU = ppu.New(cart, region)
	s.APU = apu.New(s)
	s.CPU = cpu.New(s)
	if t, ok := cart.(mapper.CycleTicker); ok {
		s.cycleTicker = t
	}
	return s
}

// PowerOn brings every component to its hardware power-on state and runs
// the CPU's 7-cycle RESET sequence (spec.md §3).
func (s *System) PowerOn() {
	s.PPU.PowerOn()
	s.APU.PowerOn()
	s.CPU.PowerOn()
}

// Reset performs a synchronous warm reset of every component in place
// (spec.md §5).
func (s *System) Reset() {
	s.PPU.Reset()
	s.APU.Reset()
	s.CPU.Reset()
}

// Read implements cpu.Bus, decoding the full $0000-$FFFF CPU address map
// (spec.md §4.3).
func (s *System) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return s.cpuOpenBus.Drive(s.ram[addr&0x07FF])
	case addr < 0x4000:
		return s.cpuOpenBus.Drive(s.PPU.ReadRegister(uint8(addr & 7)))
	case addr == 0x4015:
		return s.cpuOpenBus.Drive(s.APU.ReadStatus())
	case addr == 0x4016:
		return s.cpuOpenBus.DriveMasked(s.Pad1.Read(), 0x01)
	case addr == 0x4017:
		return s.cpuOpenBus.DriveMasked(s.Pad2.Read(), 0x01)
	case addr < 0x4018:
		return s.cpuOpenBus.Value() // write-only APU registers: open bus
	case addr < 0x4020:
		return s.cpuOpenBus.Value() // test-mode registers: open bus
	default:
		if v, ok := s.Cart.CPURead(addr); ok {
			return s.cpuOpenBus.Drive(v)
		}
		return s.cpuOpenBus.Value()
	}
}

// Write implements cpu.Bus.
func (s *System) Write(addr uint16, val uint8) {
	s.cpuOpenBus.Drive(val)
	switch {
	case addr < 0x2000:
		s.ram[addr&0x07FF] = val
	case addr < 0x4000:
		s.PPU.WriteRegister(uint8(addr&7), val)
	case addr == 0x4014:
		s.triggerOAMDMA(val)
	case addr == 0x4015:
		s.APU.WriteStatus(val)
	case addr == 0x4016:
		s.Pad1.Write(val)
		s.Pad2.Write(val)
	case addr == 0x4017:
		s.APU.WriteFrameCounter(val)
	case addr >= 0x4010 && addr <= 0x4013:
		s.APU.WriteDMC(uint8(addr-0x4010), val)
	case addr < 0x4018:
		// remaining pulse/triangle/noise registers: accepted and ignored,
		// audio synthesis is out of scope.
		log.ModAPU.Debugf("ignoring synthesis register write $%04X=$%02X", addr, val)
	case addr < 0x4020:
		// test-mode registers: no-op
	default:
		s.Cart.CPUWrite(addr, val)
	}
}
