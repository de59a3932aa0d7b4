package ppu

import "nescore/mapper"

// ppuMemRead resolves any PPU-bus address (spec.md §4.3's PPU address map)
// down to pattern-table (mapper CHR), nametable (mapper-mirrored 2 KiB
// RAM), or palette RAM.
func (p *PPU) ppuMemRead(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if v, ok := p.Cart.PPURead(addr); ok {
			p.openBus = v
			return v
		}
		return p.openBus
	case addr < 0x3F00:
		return p.readVRAM(addr)
	default:
		return p.readPalette(paletteIndex(addr))
	}
}

func (p *PPU) ppuMemWrite(addr uint16, val uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		p.Cart.PPUWrite(addr, val)
	case addr < 0x3F00:
		p.writeVRAM(addr, val)
	default:
		p.palette[paletteMirror(paletteIndex(addr))] = val & 0x3F
	}
}

// readVRAM resolves a $2000-$3EFF address through the mapper's nametable
// mirroring into the 2 KiB physical nametable RAM.
func (p *PPU) readVRAM(addr uint16) uint8 {
	if addr >= 0x3000 {
		addr -= 0x1000
	}
	off := mapper.ResolveNametable(p.Cart.Mirroring(), addr)
	return p.nametable[off]
}

func (p *PPU) writeVRAM(addr uint16, val uint8) {
	if addr >= 0x3000 {
		addr -= 0x1000
	}
	off := mapper.ResolveNametable(p.Cart.Mirroring(), addr)
	p.nametable[off] = val
}

// paletteIndex maps a $3F00-$3FFF address into 0..31 before mirroring.
func paletteIndex(addr uint16) uint8 { return uint8((addr - 0x3F00) & 0x1F) }

// paletteMirror aliases $3F10/$3F14/$3F18/$3F1C to $3F00/$3F04/$3F08/$3F0C,
// per spec.md §3.
func paletteMirror(idx uint8) uint8 {
	if idx&0x13 == 0x10 {
		return idx &^ 0x10
	}
	return idx
}

func (p *PPU) readPalette(idx uint8) uint8 {
	return p.palette[paletteMirror(idx)]
}
