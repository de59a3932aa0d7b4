package system

import (
	"nescore/mapper"
	"nescore/ppu"
)

// RunCPUCycle advances the whole machine by exactly one CPU cycle:
// spec.md §4.5's scheduler contract. PPU dots are ticked before the CPU
// cycle executes so that a PPU event within this window (e.g. the NMI
// line rising) is visible to the CPU's interrupt poll at the end of the
// same cycle -- spec.md §5's ordering guarantee.
func (s *System) RunCPUCycle() {
	if s.PPU.Region == ppu.PAL {
		s.tickPALDots()
	} else {
		for i := 0; i < 3; i++ {
			s.PPU.TickDot()
		}
	}

	s.APU.Tick()

	if stall := s.APU.StallCyclesRequested(); stall > 0 {
		s.genericStall += stall
	}

	switch {
	case s.genericStall > 0:
		s.genericStall--
	case s.stepDMA():
		// OAM DMA consumed this cycle
	default:
		s.CPU.TickCycle()
	}
	s.cpuCycleCount++

	if s.cycleTicker != nil {
		s.cycleTicker.TickCPUCycle()
	}

	s.CPU.SetNMILine(s.PPU.NMILine())

	irq := s.APU.IRQLine()
	if src, ok := s.Cart.(mapper.IRQSource); ok {
		irq = irq || src.IRQLine()
	}
	s.CPU.SetIRQLine(irq)

	s.CPU.PollInterruptLines()
}

// tickPALDots advances PPU dots using PAL's rational 3.2 dots-per-CPU-cycle
// ratio (16/5) via an integer accumulator, per spec.md §4.5 -- never
// floating point.
func (s *System) tickPALDots() {
	s.palAccumulator += 16
	for s.palAccumulator >= 5 {
		s.palAccumulator -= 5
		s.PPU.TickDot()
	}
}
