package ppu

// ReadRegister reads the CPU-visible register selected by addr&7
// (the $2000-$2007 window, mirrored every 8 bytes by the bus).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr & 0x0007 {
	case 0x0002: // PPUSTATUS
		value := p.status
		p.status &^= 0x80 // clear VBlank
		p.w = false
		return value
	case 0x0004: // OAMDATA
		return p.oam[p.oamAddr]
	case 0x0007: // PPUDATA
		return p.readData()
	default: // write-only registers read back as open bus; 0 is the design's best-effort value
		return 0
	}
}

// WriteRegister writes the CPU-visible register selected by addr&7.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr & 0x0007 {
	case 0x0000: // PPUCTRL
		wasVBlank := p.status&0x80 != 0
		nmiNowEnabled := value&0x80 != 0 && p.ctrl&0x80 == 0
		p.ctrl = value
		p.t.data = (p.t.data & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		if nmiNowEnabled && wasVBlank {
			p.nmiPending = true
		}
	case 0x0001: // PPUMASK
		p.mask = value
	case 0x0002: // PPUSTATUS is read-only
	case 0x0003: // OAMADDR
		p.oamAddr = value
	case 0x0004: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x0005: // PPUSCROLL
		if !p.w {
			p.t.setCoarseX(uint16(value) >> 3)
			p.fineX = value & 0x07
		} else {
			p.t.setFineY(uint16(value) & 0x07)
			p.t.setCoarseY(uint16(value) >> 3)
		}
		p.w = !p.w
	case 0x0006: // PPUADDR
		if !p.w {
			p.t.data = (p.t.data & 0x00FF) | ((uint16(value) & 0x3F) << 8)
		} else {
			p.t.data = (p.t.data & 0xFF00) | uint16(value)
			p.v = p.t
		}
		p.w = !p.w
	case 0x0007: // PPUDATA
		p.writeData(value)
	}
}

// vramIncrement returns the PPUADDR auto-increment (PPUCTRL bit 2
// selects 32 for vertical writes, else 1).
func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&0x04 != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	addr := p.v.data & 0x3FFF
	var value uint8
	if addr >= 0x3F00 {
		value = p.readVRAM(addr) // palette reads bypass the read buffer
		p.readBuf = p.readVRAM(addr - 0x1000)
	} else {
		value = p.readBuf
		p.readBuf = p.readVRAM(addr)
	}
	p.v.data += p.vramIncrement()
	return value
}

func (p *PPU) writeData(value uint8) {
	p.writeVRAM(p.v.data&0x3FFF, value)
	p.v.data += p.vramIncrement()
}

// WriteOAMByte writes directly into OAM at addr, without reading or
// changing OAMADDR. OAM DMA ($4014) uses it to fill OAM from index 0.
func (p *PPU) WriteOAMByte(addr uint8, value uint8) { p.oam[addr] = value }
