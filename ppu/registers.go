package ppu

import "nescore/log"

// ReadRegister services a CPU read of $2000-$2007 (already demodulated to
// 0-7 by the bus's every-8-bytes mirroring, spec.md §4.3).
func (p *PPU) ReadRegister(reg uint8) uint8 {
	switch reg & 7 {
	case 2: // PPUSTATUS
		v := (p.status & 0xE0) | (p.openBus & 0x1F)
		p.status &^= 0x80
		p.w = false
		p.openBus = v
		return v
	case 4: // OAMDATA
		v := p.oamData[p.oamAddr]
		p.openBus = v
		return v
	case 7: // PPUDATA
		return p.readPPUDATA()
	default:
		return p.openBus
	}
}

// WriteRegister services a CPU write to $2000-$2007.
func (p *PPU) WriteRegister(reg uint8, val uint8) {
	p.openBus = val
	warmingUp := p.warmupDotsLeft > 0

	switch reg & 7 {
	case 0: // PPUCTRL
		if warmingUp {
			return
		}
		p.ctrl = val
		p.t = (p.t &^ 0x0C00) | (uint16(val&0x03) << 10)
	case 1: // PPUMASK
		if warmingUp {
			return
		}
		p.mask = val
	case 3: // OAMADDR
		p.oamAddr = val
	case 4: // OAMDATA
		if p.renderingActive() {
			// Writes during rendering don't touch OAM; they only glitch
			// OAMADDR by bumping its high 6 bits, spec.md §6.
			p.oamAddr += 4
			return
		}
		p.oamData[p.oamAddr] = val
		p.oamAddr++
	case 5: // PPUSCROLL
		if warmingUp {
			return
		}
		if !p.w {
			p.t = (p.t &^ 0x001F) | uint16(val>>3)
			p.x = val & 0x07
		} else {
			p.t = (p.t &^ 0x73E0) | (uint16(val&0x07) << 12) | (uint16(val&0xF8) << 2)
		}
		p.w = !p.w
	case 6: // PPUADDR
		if warmingUp {
			return
		}
		if !p.w {
			p.t = (p.t &^ 0x7F00) | (uint16(val&0x3F) << 8)
		} else {
			p.t = (p.t &^ 0x00FF) | uint16(val)
			p.v = p.t
		}
		p.w = !p.w
	case 7: // PPUDATA
		p.writePPUDATA(val)
	}
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readPPUDATA() uint8 {
	addr := p.v & 0x3FFF
	var result uint8
	if addr >= 0x3F00 {
		result = p.readPalette(paletteIndex(addr))
		p.readBuffer = p.ppuMemRead(addr - 0x1000) // underlying nametable mirror still refills the buffer
	} else {
		result = p.readBuffer
		p.readBuffer = p.ppuMemRead(addr)
	}
	p.advanceVRAMAddr()
	p.openBus = result
	return result
}

func (p *PPU) writePPUDATA(val uint8) {
	p.ppuMemWrite(p.v&0x3FFF, val)
	p.advanceVRAMAddr()
}

// renderingActive reports whether the PPU is on a visible or pre-render
// scanline with background or sprite rendering enabled -- the window during
// which $2004/$2007 accesses glitch instead of behaving normally.
func (p *PPU) renderingActive() bool {
	return p.renderingEnabled() && (p.scanline < 240 || p.scanline == p.Region.scanlinesPerFrame()-1)
}

// advanceVRAMAddr applies the normal +1/+32 increment, except during active
// rendering when a $2007 access glitches v by incrementing both its coarse
// components (spec.md §4.2's "VRAM access during rendering" note).
func (p *PPU) advanceVRAMAddr() {
	if p.renderingActive() {
		p.incrementCoarseX()
		p.incrementY()
		return
	}
	p.v = (p.v + p.vramIncrement()) & 0x7FFF
}

// WriteOAMByte is used by OAM DMA (system package): each transferred byte
// is stored at OAMADDR, which then increments, as a $2004 write outside
// rendering does; the rendering-time $2004 glitch is not applied here.
func (p *PPU) WriteOAMByte(val uint8) {
	log.ModPPU.Debugf("OAM DMA byte %#02x -> OAM[%#02x]", val, p.oamAddr)
	p.oamData[p.oamAddr] = val
	p.oamAddr++
}

// OAMByte returns primary OAM's contents for read-back / debugging.
func (p *PPU) OAMByte(idx uint8) uint8 { return p.oamData[idx] }
