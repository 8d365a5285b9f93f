package ppu

import "gones/internal/cartridge"

// readVRAM and writeVRAM implement the 14-bit PPU address space:
// 0x0000-0x1FFF pattern tables (cartridge CHR), 0x2000-0x2FFF
// nametables (mirrored per cartridge mirroring), 0x3000-0x3EFF
// mirrors 0x2000-0x2EFF, 0x3F00-0x3FFF palette RAM with entry
// folding.
func (p *PPU) readVRAM(addr uint16) uint8 {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.cart != nil {
			return p.cart.ReadCHR(addr)
		}
		return 0
	case addr < 0x3F00:
		return p.nametableRAM[p.nametableIndex(addr)]
	default:
		return p.paletteRAM[paletteAddr(addr)]
	}
}

func (p *PPU) writeVRAM(addr uint16, value uint8) {
	addr &= 0x3FFF
	switch {
	case addr < 0x2000:
		if p.cart != nil {
			p.cart.WriteCHR(addr, value)
		}
	case addr < 0x3F00:
		p.nametableRAM[p.nametableIndex(addr)] = value
	default:
		p.paletteRAM[paletteAddr(addr)] = value
	}
}

// nametableIndex folds a 0x2000-0x3EFF address into one of the two
// 1KB physical nametable banks the console's 2KB VRAM provides,
// according to the cartridge's mirroring mode.
func (p *PPU) nametableIndex(addr uint16) uint16 {
	offset := (addr - 0x2000) % 0x1000 // fold 0x3000-0x3EFF mirror onto 0x2000-0x2EFF
	quadrant := offset / 0x0400
	within := offset % 0x0400

	var bank uint16
	mode := cartridge.MirrorHorizontal
	if p.cart != nil {
		mode = p.cart.Mirror()
	}
	switch mode {
	case cartridge.MirrorVertical:
		bank = quadrant & 1
	case cartridge.MirrorSingleScreen0:
		bank = 0
	case cartridge.MirrorSingleScreen1:
		bank = 1
	default: // Horizontal and FourScreen (no fourth bank available in 2KB VRAM)
		bank = quadrant >> 1
	}
	return bank*0x0400 + within
}

// renderPixel computes the composited background+sprite pixel at
// (x, y) for the current frame and writes it into the RGBA frame
// buffer. This is the minimum pixel-composition pipeline spec.md
// calls for: a tile-and-attribute fetch driven by v, combined with
// fine-x, without a cycle-accurate 8-dot fetch pipeline.
func (p *PPU) renderPixel(x, y int) {
	bgR, bgG, bgB, bgOpaque := uint8(0), uint8(0), uint8(0), false
	if p.backgroundEnabled() {
		bgR, bgG, bgB, bgOpaque = p.backgroundPixel(x)
	}

	spR, spG, spB, spOpaque, spPriority := uint8(0), uint8(0), uint8(0), false, false
	if p.spritesEnabled() {
		spR, spG, spB, spOpaque, spPriority = p.spritePixel(x, y)
	}

	var r, g, b uint8
	switch {
	case spOpaque && (!bgOpaque || !spPriority):
		r, g, b = spR, spG, spB
	case bgOpaque:
		r, g, b = bgR, bgG, bgB
	default:
		r, g, b, _ = p.colorAt(0, 0) // universal background color
	}

	idx := (y*ScreenWidth + x) * 4
	p.frameBuffer[idx+0] = r
	p.frameBuffer[idx+1] = g
	p.frameBuffer[idx+2] = b
	p.frameBuffer[idx+3] = 0xFF
}

// backgroundPixel fetches the background tile covering screen column
// x on the current scanline from v, combined with fineX, and returns
// its color plus whether it is opaque (color index != 0).
func (p *PPU) backgroundPixel(x int) (r, g, b uint8, opaque bool) {
	fineX := (int(p.fineX) + x) % 8
	// updateScrollCounters has already advanced v's coarse X once per
	// 8 dots of this scanline (x/8 times); only the rest is added here.
	coarseAdvance := (int(p.fineX)+x)/8 - x/8

	v := p.v
	for i := 0; i < coarseAdvance; i++ {
		v.incrementCoarseX()
	}

	ntAddr := 0x2000 | (v.data & 0x0FFF)
	tileIndex := p.readVRAM(ntAddr)

	attrAddr := 0x23C0 | (v.data & 0x0C00) | ((v.coarseY() >> 2) << 3) | (v.coarseX() >> 2)
	attrByte := p.readVRAM(attrAddr)
	shift := ((v.coarseY() & 0x02) << 1) | (v.coarseX() & 0x02)
	quadrant := (attrByte >> shift) & 0x03

	patternTable := uint16(0)
	if p.ctrl&0x10 != 0 {
		patternTable = 0x1000
	}
	patternAddr := patternTable + uint16(tileIndex)*16 + v.fineY()
	lo := p.readVRAM(patternAddr)
	hi := p.readVRAM(patternAddr + 8)

	bit := 7 - uint8(fineX)
	pixelValue := ((lo>>bit)&1) | (((hi>>bit)&1)<<1)
	if pixelValue == 0 {
		return 0, 0, 0, false
	}
	r, g, b, _ = p.colorAt(quadrant, pixelValue)
	return r, g, b, true
}

type spriteSlot struct {
	x, y     uint8
	tile     uint8
	attr     uint8
	oamIndex int
}

// spritesOnScanline evaluates up to the first 8 matching sprites for
// scanline y, in OAM order, the way hardware's secondary-OAM
// evaluation does (without modeling the sprite-overflow bug).
func (p *PPU) spritesOnScanline(y int) []spriteSlot {
	height := 8
	if p.ctrl&0x20 != 0 {
		height = 16
	}
	var slots []spriteSlot
	for i := 0; i < 64 && len(slots) < 8; i++ {
		base := i * 4
		sy := int(p.oam[base])
		if y < sy+1 || y >= sy+1+height {
			continue
		}
		slots = append(slots, spriteSlot{
			y:        p.oam[base],
			tile:     p.oam[base+1],
			attr:     p.oam[base+2],
			x:        p.oam[base+3],
			oamIndex: i,
		})
	}
	return slots
}

func (p *PPU) spritePixel(x, y int) (r, g, b uint8, opaque, priority bool) {
	for _, s := range p.spritesOnScanline(y) {
		col := x - int(s.x)
		if col < 0 || col >= 8 {
			continue
		}
		row := y - int(s.y) - 1
		if s.attr&0x40 != 0 {
			col = 7 - col
		}
		flipV := s.attr&0x80 != 0

		height := 8
		if p.ctrl&0x20 != 0 {
			height = 16
		}
		if flipV {
			row = height - 1 - row
		}

		patternTable := uint16(0)
		tile := uint16(s.tile)
		if height == 16 {
			patternTable = uint16(s.tile&0x01) * 0x1000
			tile = uint16(s.tile &^ 0x01)
			if row >= 8 {
				tile++
				row -= 8
			}
		} else if p.ctrl&0x08 != 0 {
			patternTable = 0x1000
		}

		addr := patternTable + tile*16 + uint16(row)
		lo := p.readVRAM(addr)
		hi := p.readVRAM(addr + 8)
		bit := 7 - uint8(col)
		pixelValue := ((lo>>bit)&1) | (((hi>>bit)&1)<<1)
		if pixelValue == 0 {
			continue
		}
		if s.oamIndex == 0 && p.backgroundEnabled() {
			p.status |= 0x40 // sprite 0 hit
		}
		palette := 4 + (s.attr & 0x03)
		r, g, b, _ = p.colorAt(palette, pixelValue)
		return r, g, b, true, s.attr&0x20 != 0
	}
	return 0, 0, 0, false, false
}

// CHRImage renders pattern table 0 or 1 as a 128x128 RGBA image using
// the current background palette (palette index 0), for inspection
// rather than in-frame compositing.
func (p *PPU) CHRImage(table int) [128 * 128 * 4]uint8 {
	var img [128 * 128 * 4]uint8
	base := uint16(table&1) * 0x1000

	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			tileAddr := base + uint16(tileY*16+tileX)*16
			for row := 0; row < 8; row++ {
				lo := p.readVRAM(tileAddr + uint16(row))
				hi := p.readVRAM(tileAddr + uint16(row) + 8)
				for col := 0; col < 8; col++ {
					bit := 7 - uint8(col)
					pixelValue := ((lo>>bit)&1) | (((hi>>bit)&1)<<1)
					r, g, b, a := p.colorAt(0, pixelValue)

					px := tileX*8 + col
					py := tileY*8 + row
					idx := (py*128 + px) * 4
					img[idx+0] = r
					img[idx+1] = g
					img[idx+2] = b
					img[idx+3] = a
				}
			}
		}
	}
	return img
}

// Palette returns all 32 palette RAM entries expanded to RGBA, for
// inspection.
func (p *PPU) Palette() [32 * 4]uint8 {
	var out [32 * 4]uint8
	for i := 0; i < 32; i++ {
		c := hardwarePalette[p.paletteRAM[paletteAddr(uint16(i))]&0x3F]
		out[i*4+0] = c[0]
		out[i*4+1] = c[1]
		out[i*4+2] = c[2]
		out[i*4+3] = 0xFF
	}
	return out
}
