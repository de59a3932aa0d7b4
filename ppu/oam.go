package ppu

// tickSpriteEvaluation drives per-scanline sprite evaluation. Real hardware
// spreads this over dots 1-320 two cycles at a time; this core performs the
// equivalent work in three batches (clear, evaluate, load shifters) at the
// dots where the results must be visible, trading dot-level evaluation
// granularity for a simpler and still behaviorally faithful implementation
// -- the same kind of documented accuracy tradeoff spec.md's CPU section
// allows for mid-branch interrupt polling.
func (p *PPU) tickSpriteEvaluation() {
	switch {
	case p.dot == 1:
		for i := range p.secondaryOAM {
			p.secondaryOAM[i] = 0xFF
		}
	case p.dot == 65:
		p.evaluateSprites()
	case p.dot == 257:
		p.loadSpriteShifters()
	}
	if p.renderingEnabled() && p.dot >= 257 && p.dot <= 320 {
		p.oamAddr = 0
	}
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites finds up to 8 in-range sprites for the *next* scanline
// (p.scanline is the one currently being drawn; sprites are prepared one
// line ahead of when tickBackground fetches the current line's tiles, but
// since evaluation and rendering share p.scanline here, this evaluates
// against p.scanline directly, matching visible-scanline semantics).
//
// The post-eighth-sprite scan deliberately reproduces the diagonal OAM
// scan bug: once 8 sprites are found, the comparison continues to advance
// both the sprite index and the byte-within-sprite index, so it can read
// non-Y bytes as if they were Y coordinates.
func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()
	count := 0
	secondaryIdx := 0
	p.sprite0OnLine = false

	n, m := 0, 0
	for n < 64 {
		y := int(p.oamData[n*4+m])
		inRange := p.scanline >= y && p.scanline < y+height
		if count < 8 {
			if inRange {
				copy(p.secondaryOAM[secondaryIdx*4:secondaryIdx*4+4], p.oamData[n*4:n*4+4])
				if n == 0 {
					p.sprite0OnLine = true
				}
				secondaryIdx++
				count++
			}
			n++
			continue
		}
		if inRange {
			p.spriteOverflowSeen = true
		}
		// THE BUG: real hardware's overflow-check comparator increments
		// both the sprite index and the byte-within-sprite index on every
		// check here, in range or not, which is what lets it walk into
		// non-Y bytes as if they were Y coordinates.
		n++
		m++
		if m == 4 {
			m = 0
		}
	}
	p.spriteCount = count
	if p.spriteOverflowSeen {
		p.status |= 0x20
	}
}

func (p *PPU) loadSpriteShifters() {
	height := p.spriteHeight()
	for i := 0; i < 8; i++ {
		if i >= p.spriteCount {
			p.spritePatternLo[i] = 0
			p.spritePatternHi[i] = 0
			p.spriteAttr[i] = 0
			p.spriteX[i] = 0xFF
			continue
		}
		y := p.secondaryOAM[i*4]
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		x := p.secondaryOAM[i*4+3]

		row := p.scanline - int(y)
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var addr uint16
		if height == 16 {
			table := uint16(tile&1) * 0x1000
			cell := uint16(tile &^ 1)
			if row >= 8 {
				cell++
				row -= 8
			}
			addr = table + cell*16 + uint16(row)
		} else {
			base := uint16(0)
			if p.ctrl&0x08 != 0 {
				base = 0x1000
			}
			addr = base + uint16(tile)*16 + uint16(row)
		}

		lo := p.ppuMemRead(addr)
		hi := p.ppuMemRead(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttr[i] = attr
		p.spriteX[i] = x
	}
	p.sprite0InSlot = p.sprite0OnLine
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}
