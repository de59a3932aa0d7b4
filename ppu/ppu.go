// Package ppu implements the dot-accurate NES picture processing unit:
// spec.md §4.2. Grounded on arl-nestor/hw/ppu.go for register naming and
// bus-facing API shape (that file stops short of a real rendering
// pipeline, so the background/sprite pixel logic here is built directly
// from the timing spec rather than adapted line-by-line).
package ppu

import (
	"nescore/mapper"
)

const (
	dotsPerScanline = 341
)

// Region selects NTSC or PAL frame geometry.
type Region uint8

const (
	NTSC Region = iota
	PAL
)

func (r Region) scanlinesPerFrame() int {
	if r == PAL {
		return 312
	}
	return 262
}

func (r Region) vblankEnd() int {
	if r == PAL {
		return 310
	}
	return 260
}

type PPU struct {
	Region Region

	Cart mapper.Mapper

	// register-visible state
	ctrl, mask, status, oamAddr uint8
	oamData                     [256]byte
	secondaryOAM                [32]byte
	palette                     [32]byte
	nametable                   [2048]byte

	readBuffer uint8
	openBus    uint8

	// loopy registers
	v, t uint16
	x    uint8
	w    bool

	scanline, dot int
	frameOdd      bool
	frameDone     bool

	// background pipeline
	bgShiftLo, bgShiftHi     uint16
	attrShiftLo, attrShiftHi uint16
	attrLatchLo, attrLatchHi bool
	ntByte, atByte           uint8
	patternLo, patternHi     uint8

	// sprite pipeline
	spritePatternLo [8]uint8
	spritePatternHi [8]uint8
	spriteAttr      [8]uint8
	spriteX         [8]uint8
	spriteCount     int
	sprite0OnLine   bool
	sprite0InSlot   bool

	spriteOverflowSeen bool

	// NMI edge output
	nmiLine     bool
	prevNmiLine bool

	// PPU warm-up window: writes to CTRL/MASK/SCROLL/ADDR ignored until this
	// many CPU cycle-equivalents (3 dots each) have elapsed since reset.
	warmupDotsLeft int

	Frame [256 * 240]uint8 // palette indices, one per pixel

	traceHook func(scanline, dot int)
}

func New(cart mapper.Mapper, region Region) *PPU {
	p := &PPU{Cart: cart, Region: region}
	p.PowerOn()
	return p
}

func (p *PPU) PowerOn() {
	p.ctrl, p.mask, p.status, p.oamAddr = 0, 0, 0, 0
	p.v, p.t, p.x, p.w = 0, 0, 0, false
	p.scanline, p.dot = 0, 0
	p.frameOdd = false
	p.warmupDotsLeft = 29658 * 3
}

// Reset preserves OAM and palette contents but re-runs the warm-up window,
// matching hardware.
func (p *PPU) Reset() {
	p.ctrl, p.mask = 0, 0
	p.w = false
	p.warmupDotsLeft = 29658 * 3
}

// NMILine reports the PPU's NMI output line for scheduler edge detection.
func (p *PPU) NMILine() bool { return p.nmiLine }

func (p *PPU) renderingEnabled() bool { return p.mask&0x18 != 0 }

// TickDot advances exactly one PPU dot: spec.md §4.2's tick_dot contract.
func (p *PPU) TickDot() {
	if p.warmupDotsLeft > 0 {
		p.warmupDotsLeft--
	}

	visible := p.scanline >= 0 && p.scanline <= 239
	preRender := p.scanline == p.Region.scanlinesPerFrame()-1

	if visible || preRender {
		p.tickBackground(preRender)
		if visible {
			p.tickSpriteEvaluation()
		}
	}

	if p.dot >= 1 && p.dot <= 256 && visible {
		p.renderPixel()
	}

	if preRender && p.dot == 1 {
		p.status &^= 0xE0 // clear vblank, sprite-0 hit, sprite overflow
		p.spriteOverflowSeen = false
	}
	if p.scanline == 241 && p.dot == 1 {
		p.status |= 0x80
		p.frameDone = true
	}

	p.updateNMILine()

	p.dot++

	// Odd-frame dot skip: dot 340 of the pre-render scanline is never
	// ticked at all, wrapping 339 straight to (0,0) -- spec.md §4.2.
	if preRender && p.dot == dotsPerScanline-1 && p.frameOdd && p.renderingEnabled() && p.Region == NTSC {
		p.dot = 0
		p.scanline = 0
		p.frameOdd = !p.frameOdd
		return
	}

	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= p.Region.scanlinesPerFrame() {
			p.scanline = 0
			p.frameOdd = !p.frameOdd
		}
	}
}

// FrameDone reports and clears the frame-complete signal.
func (p *PPU) FrameDone() bool {
	d := p.frameDone
	p.frameDone = false
	return d
}

func (p *PPU) updateNMILine() {
	level := p.status&0x80 != 0 && p.ctrl&0x80 != 0
	p.prevNmiLine = p.nmiLine
	p.nmiLine = level
}

// NMIEdge reports whether NMI rose since the last call, for the scheduler
// to latch into the CPU.
func (p *PPU) NMIEdge() bool {
	return !p.prevNmiLine && p.nmiLine
}
