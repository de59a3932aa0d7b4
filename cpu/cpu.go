// Package cpu implements a cycle-accurate 6502 (2A03) core: spec.md §4.1.
//
// Every CPU cycle is exactly one bus access, dispatched through TickCycle.
// The core never advances the PPU or APU itself -- per spec.md §9's
// "message passing through the scheduler" redesign, it only ever touches
// the Bus it is given and reports its interrupt-relevant state back to
// whoever calls it one cycle at a time. This is a structural departure
// from arl-nestor/hw/cpu.go, which pulls the PPU/APU forward from inside
// Read8/Write8; the register layout, flag semantics, addressing-mode
// dummy-read rules and interrupt-hijack behavior are all grounded on that
// file and on hw/status.go, but the control flow is re-architected into a
// resumable micro-op sequencer (spec.md §9's "Instruction dispatch" note)
// so that a scheduler can interleave exactly 3 PPU dots per CPU cycle.
package cpu

import "nescore/log"

const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// Bus is the CPU's view of the system bus: exactly one byte read or written
// per call, matching the "every cycle is a bus access" invariant.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
}

// microOp performs the bus access (or internal computation) for exactly one
// CPU cycle.
type microOp func(c *CPU)

type CPU struct {
	Bus Bus

	A, X, Y, SP uint8
	PC          uint16
	P           Flags

	Cycles int64 // total CPU cycles executed, for tests/tracing

	halted bool

	// interrupt line state
	nmiLine     bool // current level of the NMI input (edge-triggered internally)
	prevNMILine bool
	nmiPending  bool // edge-latched, cleared when consumed by an interrupt sequence

	irqLine bool // level-sensitive OR of all IRQ sources

	// one-cycle-behind snapshots, sampled every cycle; interrupt dispatch
	// decisions at instruction boundaries use these, not the live values.
	// This is what makes CLI/SEI/PLP's IRQ-enable take effect one
	// instruction later than RTI's, purely from where in each instruction's
	// cycle sequence the flag changes -- see the CLI/SEI/PLP entries and
	// buildRTI in opcodes.go.
	prevIRQReady bool
	irqReady     bool
	prevNMIReady bool
	nmiReady     bool

	inInterruptSequence bool // true for the duration of a BRK/IRQ/NMI/RESET 7-cycle sequence

	queue []microOp

	// scratch latches used by addressing-mode microops
	opcode      uint8
	addr        uint16
	ptr         uint8
	fetched     uint8
	pageCrossed bool

	trace func(pc uint16, opcode uint8)
}

// New creates a CPU wired to bus. Callers must call PowerOn (or Reset)
// before the first TickCycle.
func New(bus Bus) *CPU {
	return &CPU{Bus: bus}
}

// SetTraceHook installs a callback invoked once per instruction fetch, for
// disassembly/logging harnesses; nil disables it.
func (c *CPU) SetTraceHook(fn func(pc uint16, opcode uint8)) { c.trace = fn }

func (c *CPU) read(addr uint16) uint8 {
	return c.Bus.Read(addr)
}

func (c *CPU) write(addr uint16, val uint8) {
	c.Bus.Write(addr, val)
}

// PowerOn brings the CPU to hardware power-on state (spec.md §3) and runs
// the 7-cycle reset sequence via TickCycle so that callers observe the same
// cycle-by-cycle behavior a cold power-on produces on hardware.
func (c *CPU) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0x00
	c.P = Flags(0x24) // I and Unused(bit5) set; bit5 is not user-visible but kept internally consistent
	c.PC = 0
	c.halted = false
	c.nmiLine, c.prevNMILine, c.nmiPending = false, false, false
	c.irqLine = false
	c.prevIRQReady, c.irqReady, c.prevNMIReady, c.nmiReady = false, false, false, false
	c.queue = nil
	c.beginReset(false)
}

// Reset performs a warm reset (spec.md §3): A/X/Y and flags C/Z/D/V/N are
// preserved, I is set, SP decrements by 3 via dummy stack reads (no
// writes), and PC reloads from the reset vector.
func (c *CPU) Reset() {
	c.beginReset(true)
}

func (c *CPU) IsHalted() bool { return c.halted }

// SetNMILine reports the current level of the PPU's NMI output. The core
// tracks the falling->rising edge itself.
func (c *CPU) SetNMILine(level bool) { c.nmiLine = level }

// SetIRQLine reports the level-OR of all IRQ sources (APU frame counter,
// APU DMC, mapper). It is level-sensitive: as long as it's high and I=0,
// IRQ dispatch keeps re-triggering once per handled sequence.
func (c *CPU) SetIRQLine(level bool) { c.irqLine = level }

// PollInterruptLines must be called by the scheduler exactly once per CPU
// cycle, after SetNMILine/SetIRQLine reflect this cycle's state and after
// TickCycle has run. It performs the edge detection and one-cycle-behind
// snapshotting spec.md §4.1 describes.
func (c *CPU) PollInterruptLines() {
	if !c.prevNMILine && c.nmiLine {
		c.nmiPending = true
	}
	c.prevNMILine = c.nmiLine

	c.prevIRQReady = c.irqReady
	c.irqReady = c.irqLine && !c.P.InterruptDisable()

	c.prevNMIReady = c.nmiReady
	c.nmiReady = c.nmiPending
}

// TickCycle advances the CPU by exactly one bus cycle: spec.md §4.1's
// tick_cycle contract. It performs one read or write, never neither.
func (c *CPU) TickCycle() {
	if c.halted {
		return
	}
	c.Cycles++
	if len(c.queue) == 0 {
		c.beginNext()
	}
	op := c.queue[0]
	c.queue = c.queue[1:]
	op(c)
}

// beginNext decides, at an instruction boundary, whether to start an
// interrupt sequence or fetch the next opcode, then queues that
// instruction's full micro-op program up front (spec.md §9's fixed
// per-opcode micro-op program, built lazily instead of code-generated).
func (c *CPU) beginNext() {
	if !c.inInterruptSequence {
		if c.prevNMIReady {
			c.nmiPending = false
			c.beginInterrupt(NMIVector, false)
			return
		}
		if c.prevIRQReady {
			c.beginInterrupt(IRQVector, false)
			return
		}
	}
	c.fetchOpcode()
}

func (c *CPU) fetchOpcode() {
	pc := c.PC
	c.queue = append(c.queue, func(c *CPU) {
		c.opcode = c.read(pc)
		c.PC++
		if c.trace != nil {
			c.trace(pc, c.opcode)
		}
		desc := table[c.opcode]
		if desc.jam {
			log.ModCPU.WarnZ("CPU halted on JAM/KIL opcode").Hex16("pc", pc).Hex8("opcode", c.opcode).End()
			c.halted = true
			return
		}
		desc.build(c)
	})
}
