// Package ppu implements the NES Picture Processing Unit (2C02): the
// 341-dot/262-scanline timing grid, the loopy scroll/address
// registers, OAM, palette and nametable RAM, the CPU-visible register
// window at $2000-$2007, and frame/pattern-table rendering into an
// RGBA buffer.
package ppu

import "gones/internal/cartridge"

// ScreenWidth and ScreenHeight are the NES's visible picture
// dimensions in pixels.
const (
	ScreenWidth  = 256
	ScreenHeight = 240
)

const (
	dotsPerScanline    = 341
	scanlinesPerFrame  = 262
	preRenderScanline  = 261
	vblankScanline     = 241
	lastVisibleScanline = 239
)

// Cartridge is the subset of *cartridge.Cartridge the PPU needs to
// reach CHR storage and the mirroring mode.
type Cartridge interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
	Mirror() cartridge.MirrorMode
}

// PPU is the NES's picture processing unit.
type PPU struct {
	// CPU-visible registers.
	ctrl    uint8 // $2000
	mask    uint8 // $2001
	status  uint8 // $2002
	oamAddr uint8 // $2003

	// Internal scroll/address state.
	v, t    loopy
	fineX   uint8
	w       bool
	readBuf uint8

	oam          [256]uint8
	paletteRAM   [32]uint8
	nametableRAM [2048]uint8

	cart Cartridge

	scanline int
	cycle    int

	frameComplete bool
	nmiPending    bool
	prevNMIInput  bool // cleared by Reset and not otherwise used; WriteRegister detects the NMI-enable edge from ctrl

	frameBuffer [ScreenWidth * ScreenHeight * 4]uint8
}

// New creates a PPU with no cartridge attached; AttachCartridge must
// be called before rendering can read CHR or apply mirroring.
func New() *PPU {
	p := &PPU{}
	p.Reset()
	return p
}

// AttachCartridge gives the PPU the shared cartridge handle used for
// CHR reads/writes and nametable mirroring.
func (p *PPU) AttachCartridge(c Cartridge) { p.cart = c }

// Reset returns the PPU to its power-up state.
func (p *PPU) Reset() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v = loopy{}
	p.t = loopy{}
	p.fineX = 0
	p.w = false
	p.readBuf = 0
	p.scanline = 0
	p.cycle = 0
	p.frameComplete = false
	p.nmiPending = false
	p.prevNMIInput = false
	for i := range p.oam {
		p.oam[i] = 0
	}
	for i := range p.paletteRAM {
		p.paletteRAM[i] = 0
	}
	for i := range p.nametableRAM {
		p.nametableRAM[i] = 0
	}
	for i := range p.frameBuffer {
		p.frameBuffer[i] = 0
	}
}

// NMIPending reports whether the PPU has raised an NMI request since
// the last time it was consumed, and clears it.
func (p *PPU) NMIPending() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// FrameComplete reports whether a full frame finished rendering since
// the last call, clearing the flag.
func (p *PPU) FrameComplete() bool {
	done := p.frameComplete
	p.frameComplete = false
	return done
}

// FrameBuffer returns the current RGBA frame buffer, 256x240 pixels.
func (p *PPU) FrameBuffer() *[ScreenWidth * ScreenHeight * 4]uint8 {
	return &p.frameBuffer
}

func (p *PPU) backgroundEnabled() bool { return p.mask&0x08 != 0 }
func (p *PPU) spritesEnabled() bool    { return p.mask&0x10 != 0 }
func (p *PPU) renderingEnabled() bool  { return p.backgroundEnabled() || p.spritesEnabled() }

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	if p.scanline <= lastVisibleScanline && p.cycle >= 1 && p.cycle <= ScreenWidth {
		p.renderPixel(p.cycle-1, p.scanline)
	}

	if p.renderingEnabled() && (p.scanline <= lastVisibleScanline || p.scanline == preRenderScanline) {
		p.updateScrollCounters()
	}

	if p.scanline == vblankScanline && p.cycle == 1 {
		p.status |= 0x80
		if p.ctrl&0x80 != 0 {
			p.nmiPending = true
		}
		p.frameComplete = true
	}

	if p.scanline == preRenderScanline && p.cycle == 1 {
		p.status &^= 0xE0 // clear VBlank, sprite 0 hit, sprite overflow
	}

	p.cycle++
	if p.cycle >= dotsPerScanline {
		p.cycle = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
		}
	}
}

func (p *PPU) updateScrollCounters() {
	if p.cycle >= 1 && p.cycle <= 256 && p.cycle%8 == 0 {
		p.v.incrementCoarseX()
	}
	if p.cycle == 256 {
		p.v.incrementY()
	}
	if p.cycle == 257 {
		p.v.copyHorizontalBits(&p.t)
	}
	if p.scanline == preRenderScanline && p.cycle >= 280 && p.cycle <= 304 {
		p.v.copyVerticalBits(&p.t)
	}
}
