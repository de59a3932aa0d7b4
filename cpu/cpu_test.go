package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// flatBus is a 64KiB RAM used to drive the CPU in isolation, the way
// nestest-style harnesses do.
type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, val uint8) { b.mem[addr] = val }

func newTestCPU(program []byte, at uint16) (*CPU, *flatBus) {
	bus := &flatBus{}
	copy(bus.mem[at:], program)
	bus.mem[0xFFFC] = uint8(at)
	bus.mem[0xFFFD] = uint8(at >> 8)
	c := New(bus)
	c.PowerOn()
	for i := 0; i < 7; i++ {
		c.TickCycle()
		c.PollInterruptLines()
	}
	return c, bus
}

func run(c *CPU, cycles int) {
	for i := 0; i < cycles; i++ {
		c.TickCycle()
		c.PollInterruptLines()
	}
}

func TestResetVectorLoad(t *testing.T) {
	c, _ := newTestCPU([]byte{0xEA}, 0x8000)
	if c.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want 0x8000", c.PC)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP after reset = %#02x, want 0xFD", c.SP)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, _ := newTestCPU([]byte{0xA9, 0x00, 0xA9, 0x80, 0xA9, 0x7F}, 0x8000)
	run(c, 2)
	if c.A != 0 || !c.P.Zero() || c.P.Negative() {
		t.Fatalf("LDA #0: A=%d Z=%v N=%v", c.A, c.P.Zero(), c.P.Negative())
	}
	run(c, 2)
	if c.A != 0x80 || c.P.Zero() || !c.P.Negative() {
		t.Fatalf("LDA #$80: A=%#02x Z=%v N=%v", c.A, c.P.Zero(), c.P.Negative())
	}
	run(c, 2)
	if c.A != 0x7F || c.P.Zero() || c.P.Negative() {
		t.Fatalf("LDA #$7F: A=%#02x Z=%v N=%v", c.A, c.P.Zero(), c.P.Negative())
	}
}

func TestBRKPushesBreakFlagSet(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x8000] = 0x00 // BRK
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0x80
	bus.mem[0xFFFE], bus.mem[0xFFFF] = 0x00, 0x90 // IRQ/BRK vector -> $9000
	c := New(bus)
	c.PowerOn()
	run(c, 7) // consume reset
	run(c, 7) // BRK sequence
	if c.PC != 0x9000 {
		t.Fatalf("PC after BRK = %#04x, want 0x9000", c.PC)
	}
	pushedP := bus.mem[0x01FB] // SP was $FD: PCH -> $01FD, PCL -> $01FC, P -> $01FB
	if pushedP&0x10 == 0 {
		t.Fatalf("BRK did not push B=1: pushed P = %#02x", pushedP)
	}
	if pushedP&0x20 == 0 {
		t.Fatalf("BRK did not push Unused=1: pushed P = %#02x", pushedP)
	}
}

func TestNMIHijacksInFlightBRK(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x8000] = 0x00 // BRK
	bus.mem[0xFFFA], bus.mem[0xFFFB] = 0x00, 0xA0 // NMI vector -> $A000
	bus.mem[0xFFFE], bus.mem[0xFFFF] = 0x00, 0x90 // IRQ/BRK vector -> $9000
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0x80
	c := New(bus)
	c.PowerOn()
	run(c, 7)

	c.TickCycle() // fetch BRK opcode
	c.PollInterruptLines()
	c.SetNMILine(true)
	c.PollInterruptLines() // edge latched into nmiPending this cycle

	for i := 0; i < 6; i++ {
		c.TickCycle()
		c.PollInterruptLines()
	}

	if c.PC != 0xA000 {
		t.Fatalf("PC after NMI-hijacked BRK = %#04x, want 0xA000 (NMI vector)", c.PC)
	}
}

func TestHardwareIRQDispatchTakes7Cycles(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x8000] = 0xEA // NOP, must never be fetched: IRQ preempts it
	bus.mem[0xFFFC], bus.mem[0xFFFD] = 0x00, 0x80
	bus.mem[0xFFFE], bus.mem[0xFFFF] = 0x00, 0x90 // IRQ/BRK vector -> $9000
	c := New(bus)
	c.PowerOn()
	run(c, 7) // consume reset

	c.P.SetInterruptDisable(false)
	c.SetIRQLine(true)
	c.PollInterruptLines() // irqReady latched
	c.PollInterruptLines() // prevIRQReady latched: ready at the next instruction boundary

	before := c.Cycles
	for i := 0; i < 7; i++ {
		c.TickCycle()
		c.PollInterruptLines()
	}
	if got := c.Cycles - before; got != 7 {
		t.Fatalf("hardware IRQ dispatch took %d cycles, want 7", got)
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC after hardware IRQ dispatch = %#04x, want 0x9000", c.PC)
	}
}

func TestAbsoluteXPageCrossPenalty(t *testing.T) {
	c, _ := newTestCPU([]byte{0xBD, 0xFF, 0x00}, 0x8000) // LDA $00FF,X
	c.X = 1                                              // crosses into $0100
	before := c.Cycles
	run(c, 5)
	if c.Cycles-before != 5 {
		t.Fatalf("page-crossing LDA abs,X took %d cycles, want 5", c.Cycles-before)
	}
	before = c.Cycles
	c.X = 0
	c.PC = 0x8000
	run(c, 4)
	if c.Cycles-before != 4 {
		t.Fatalf("non-crossing LDA abs,X took %d cycles, want 4", c.Cycles-before)
	}
}

func TestBranchTakenCyclePenalty(t *testing.T) {
	// BEQ +2 with Z=1 taken and no page cross: 3 cycles.
	c, _ := newTestCPU([]byte{0xA9, 0x00, 0xF0, 0x02, 0xEA, 0xEA, 0xEA}, 0x8000)
	run(c, 2) // LDA #0
	before := c.Cycles
	run(c, 3)
	if c.Cycles-before != 3 {
		t.Fatalf("taken branch (no page cross) took %d cycles, want 3", c.Cycles-before)
	}
	if c.PC != 0x8006 {
		t.Fatalf("PC after branch = %#04x, want 0x8006", c.PC)
	}
}

func TestStackPushPullRoundTrip(t *testing.T) {
	c, _ := newTestCPU([]byte{0xA9, 0x42, 0x48, 0xA9, 0x00, 0x68}, 0x8000)
	run(c, 2) // LDA #$42
	run(c, 3) // PHA
	run(c, 2) // LDA #0
	run(c, 4) // PLA
	if c.A != 0x42 {
		t.Fatalf("PLA after PHA = %#02x, want 0x42", c.A)
	}
}

func TestFlagsStringDiff(t *testing.T) {
	var p Flags
	p.SetCarry(true)
	p.SetNegative(true)
	got := p.String()
	if diff := cmp.Diff("N", string(got[0])); diff != "" {
		t.Fatalf("negative bit not uppercase (-want +got):\n%s", diff)
	}
	if got[7] != 'C' {
		t.Fatalf("carry bit not uppercase: %s", got)
	}
}
