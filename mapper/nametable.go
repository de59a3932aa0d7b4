package mapper

import "nescore/ines"

// ResolveNametable maps a PPU address in $2000-$2FFF to a byte offset in the
// PPU's 2 KiB physical nametable RAM, according to mirroring. The PPU
// resolves every nametable access through this function. There is no extra
// VRAM for four-screen cartridges: FourScreen maps like Vertical (tables
// 0,2 -> A; 1,3 -> B), so only two distinct nametables exist.
//
// Grounded on arl-nestor/hw/mappers/base.go's setNametableMirroring, which
// aliases logical nametables 0-3 onto two physical 1 KiB halves (A, B) of
// the console's VRAM.
func ResolveNametable(m ines.Mirroring, addr uint16) uint16 {
	logical := (addr - 0x2000) % 0x1000 // 0..0xFFF, four 1KiB tables
	table := logical / 0x400            // 0..3
	within := logical % 0x400

	var half uint16 // 0 = physical bank A, 1 = physical bank B
	switch m {
	case ines.Horizontal:
		// 0,1 -> A; 2,3 -> B
		half = table / 2
	case ines.Vertical:
		// 0,2 -> A; 1,3 -> B
		half = table % 2
	case ines.SingleScreenA:
		half = 0
	case ines.SingleScreenB:
		half = 1
	default:
		half = table % 2
	}
	return half*0x400 + within
}
