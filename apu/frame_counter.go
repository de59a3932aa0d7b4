package apu

// FrameType classifies a frame-counter clock: spec.md's Non-goals exclude
// audio synthesis, so quarter/half-frame clocks exist only to drive IRQ
// timing here, not envelope/sweep/length units.
type FrameType uint8

const (
	NoFrame FrameType = iota
	QuarterFrame
	HalfFrame
)

// stepCycles/frameType mirror the 2A03's two sequencer modes (4-step with
// IRQ, 5-step without), grounded on arl-nestor/hw/apu_frame_counter.go,
// adapted from a batched cycles-to-run loop into a straight per-CPU-cycle
// counter to match this core's scheduler-driven tick model.
var stepCycles = [2][6]uint32{
	{7457, 14913, 22371, 29828, 29829, 29830},
	{7457, 14913, 22371, 29829, 37281, 37282},
}

var stepFrameType = [2][6]FrameType{
	{QuarterFrame, HalfFrame, QuarterFrame, NoFrame, HalfFrame, NoFrame},
	{QuarterFrame, HalfFrame, QuarterFrame, NoFrame, HalfFrame, NoFrame},
}

type frameCounter struct {
	cycle      uint32
	step       int
	mode       uint8 // 0: 4-step, 1: 5-step
	inhibitIRQ bool
	irq        bool

	pendingMode      int8 // -1: no pending write
	writeDelay       int8
}

func newFrameCounter() *frameCounter {
	fc := &frameCounter{pendingMode: -1}
	return fc
}

func (fc *frameCounter) reset() {
	fc.cycle, fc.step = 0, 0
	fc.pendingMode, fc.writeDelay = -1, 0
}

// Write handles a $4017 write: bit 7 selects 5-step mode, bit 6 inhibits
// the frame IRQ (and immediately clears any pending one). The mode change
// takes effect after a fixed 3 CPU-cycle delay; the 4-cycle delay hardware
// shows for writes between APU cycles is not modeled.
func (fc *frameCounter) Write(val uint8) {
	fc.inhibitIRQ = val&0x40 != 0
	if fc.inhibitIRQ {
		fc.irq = false
	}
	mode := int8(0)
	if val&0x80 != 0 {
		mode = 1
	}
	fc.pendingMode = mode
	fc.writeDelay = 3
}

// Tick advances the sequencer by one CPU cycle and reports the clock type
// generated on this cycle, if any.
func (fc *frameCounter) Tick() FrameType {
	result := NoFrame

	if fc.cycle >= stepCycles[fc.mode][fc.step] {
		if fc.mode == 0 && fc.step >= 3 && !fc.inhibitIRQ {
			fc.irq = true
		}
		result = stepFrameType[fc.mode][fc.step]
		fc.step++
		if fc.step == 6 {
			fc.step = 0
			fc.cycle = 0
		}
	}
	fc.cycle++

	if fc.pendingMode >= 0 {
		fc.writeDelay--
		if fc.writeDelay <= 0 {
			fc.mode = uint8(fc.pendingMode)
			fc.pendingMode = -1
			fc.step, fc.cycle = 0, 0
			if fc.mode == 1 {
				result = HalfFrame
			}
		}
	}

	return result
}

// IRQPending reports and does not clear the frame IRQ line; it stays
// asserted until $4015 is read or $4017 disables it, matching hardware.
func (fc *frameCounter) IRQPending() bool { return fc.irq }

func (fc *frameCounter) ClearIRQ() { fc.irq = false }
