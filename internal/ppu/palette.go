package ppu

// hardwarePalette is the NES 2C02's fixed 64-color NTSC output
// palette. Palette RAM stores indices (0x00-0x3F) into this table;
// it is a hardware constant, not design prose, so it is reproduced
// verbatim rather than re-derived.
var hardwarePalette = [64][3]uint8{
	{84, 84, 84}, {0, 30, 116}, {8, 16, 144}, {48, 0, 136},
	{68, 0, 100}, {92, 0, 48}, {84, 4, 0}, {60, 24, 0},
	{32, 42, 0}, {8, 58, 0}, {0, 64, 0}, {0, 60, 0},
	{0, 50, 60}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},

	{152, 150, 152}, {8, 76, 196}, {48, 50, 236}, {92, 30, 228},
	{136, 20, 176}, {160, 20, 100}, {152, 34, 32}, {120, 60, 0},
	{84, 90, 0}, {40, 114, 0}, {8, 124, 0}, {0, 118, 40},
	{0, 102, 120}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0},

	{236, 238, 236}, {76, 154, 236}, {120, 124, 236}, {176, 98, 236},
	{228, 84, 236}, {236, 88, 180}, {236, 106, 100}, {212, 136, 32},
	{160, 170, 0}, {116, 196, 0}, {76, 208, 32}, {56, 204, 108},
	{56, 180, 204}, {60, 60, 60}, {0, 0, 0}, {0, 0, 0},

	{236, 238, 236}, {168, 204, 236}, {188, 188, 236}, {212, 178, 236},
	{236, 174, 236}, {236, 174, 212}, {236, 180, 176}, {228, 196, 144},
	{204, 210, 120}, {180, 222, 120}, {168, 226, 144}, {152, 226, 180},
	{160, 214, 228}, {160, 162, 160}, {0, 0, 0}, {0, 0, 0},
}

// paletteAddr folds palette RAM mirrors: 0x3F10/14/18/1C alias
// 0x3F00/04/08/0C, and the table repeats every 32 bytes.
func paletteAddr(addr uint16) uint16 {
	a := addr & 0x1F
	if a&0x13 == 0x10 {
		a &^= 0x10
	}
	return a
}

// colorAt reads palette RAM entry at paletteIndex (0-7: 0-3
// background, 4-7 sprite) and pixelValue (0-3) and returns it as the
// RGBA hardware color.
func (p *PPU) colorAt(paletteIndex, pixelValue uint8) (r, g, b, a uint8) {
	if pixelValue == 0 {
		paletteIndex = 0
	}
	entry := p.paletteRAM[paletteAddr(uint16(paletteIndex)<<2|uint16(pixelValue))]
	c := hardwarePalette[entry&0x3F]
	return c[0], c[1], c[2], 0xFF
}
