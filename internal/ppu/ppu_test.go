package ppu

import "testing"

func TestVBlankSetsStatusAndNMI(t *testing.T) {
	p := New()
	p.ctrl = 0x80 // NMI enable

	advanceTo(p, 241, 1)

	if p.status&0x80 == 0 {
		t.Error("VBlank flag should be set at scanline 241 cycle 1")
	}
	if !p.NMIPending() {
		t.Error("expected NMI pending at VBlank start with NMI enabled")
	}
}

func TestPreRenderClearsStatusBits(t *testing.T) {
	p := New()
	p.status = 0xE0

	advanceTo(p, preRenderScanline, 1)

	if p.status&0xE0 != 0 {
		t.Errorf("status = 0x%02X, want bits 5-7 cleared", p.status)
	}
}

func TestPPUSTATUSReadClearsVBlankAndLatch(t *testing.T) {
	p := New()
	p.status = 0x80
	p.w = true

	v := p.ReadRegister(0x2002)
	if v&0x80 == 0 {
		t.Error("read should return the VBlank bit as set")
	}
	if p.status&0x80 != 0 {
		t.Error("VBlank bit should clear after the read")
	}
	if p.w {
		t.Error("write latch should reset to false after PPUSTATUS read")
	}
}

func TestPPUCTRLSetsTNametableBits(t *testing.T) {
	p := New()
	p.WriteRegister(0x2000, 0x03)
	if p.t.data&0x0C00 != 0x0C00 {
		t.Errorf("t = 0x%04X, want nametable bits set", p.t.data)
	}
}

func TestPPUCTRLEdgeTriggersNMIDuringVBlank(t *testing.T) {
	p := New()
	p.status = 0x80 // already in VBlank
	p.ctrl = 0x00

	p.WriteRegister(0x2000, 0x80)

	if !p.NMIPending() {
		t.Error("enabling NMI while VBlank flag is set should raise nmi_pending immediately")
	}
}

func TestPPUSCROLLWriteSequence(t *testing.T) {
	p := New()
	p.WriteRegister(0x2005, 0x7D) // coarse X = 15, fine X = 5
	if p.t.coarseX() != 15 || p.fineX != 5 {
		t.Errorf("coarseX=%d fineX=%d, want 15/5", p.t.coarseX(), p.fineX)
	}
	p.WriteRegister(0x2005, 0x5E) // fine Y = 6, coarse Y = 11
	if p.t.fineY() != 6 || p.t.coarseY() != 11 {
		t.Errorf("fineY=%d coarseY=%d, want 6/11", p.t.fineY(), p.t.coarseY())
	}
}

func TestPPUADDRLoadsVOnSecondWrite(t *testing.T) {
	p := New()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x05)
	if p.v.data != 0x2105 {
		t.Errorf("v = 0x%04X, want 0x2105", p.v.data)
	}
}

func TestPPUDATAAutoIncrementNametableWrites(t *testing.T) {
	p := New()
	p.WriteRegister(0x2000, 0x00) // increment by 1
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00) // v = 0x2000

	for i := 0; i < 4; i++ {
		p.WriteRegister(0x2007, uint8(0x10+i))
	}
	if p.v.data != 0x2004 {
		t.Errorf("v = 0x%04X, want 0x2004 after 4 writes", p.v.data)
	}
}

func TestPPUDATAReadIsBufferedExceptPalette(t *testing.T) {
	p := New()
	p.nametableRAM[0] = 0x42
	p.WriteRegister(0x2006, 0x20)
	p.WriteRegister(0x2006, 0x00)

	first := p.ReadRegister(0x2007)
	if first != 0 {
		t.Errorf("first buffered read = 0x%02X, want 0x00 (stale buffer)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0x42 {
		t.Errorf("second read = 0x%02X, want 0x42", second)
	}

	p.paletteRAM[0x01] = 0x2A
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x01)
	if palette := p.ReadRegister(0x2007); palette != 0x2A {
		t.Errorf("palette read = 0x%02X, want 0x2A (not buffered)", palette)
	}
}

func TestPaletteMirroring(t *testing.T) {
	p := New()
	p.paletteRAM[0x00] = 0x0F
	if p.paletteRAM[paletteAddr(0x3F10)] != 0x0F {
		t.Error("0x3F10 should mirror 0x3F00")
	}
}

// advanceTo steps the PPU until it has executed the dot at (scanline,
// cycle), leaving its counters on the following dot.
func advanceTo(p *PPU, scanline, cycle int) {
	for !(p.scanline == scanline && p.cycle == cycle) {
		p.Step()
	}
	p.Step()
}
