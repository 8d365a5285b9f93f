// Package bus implements the NES system bus: the single aggregator
// that owns CPU RAM and holds non-owning references to the PPU,
// cartridge, and APU stub, so the CPU, PPU, and cartridge never need
// to reference each other directly.
package bus

import (
	"fmt"

	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/ppu"
	"gones/internal/ram"
)

// MapperOutOfRangeError is recorded, not returned, when a CPU read
// falls into an address range nothing claims; the bus answers with a
// best-effort 0 and appends one of these to its diagnostic ring.
type MapperOutOfRangeError struct {
	Addr  uint16
	Write bool
}

func (e *MapperOutOfRangeError) Error() string {
	verb := "read"
	if e.Write {
		verb = "write"
	}
	return fmt.Sprintf("bus: unmapped %s at 0x%04X", verb, e.Addr)
}

const diagnosticRingSize = 64

// Bus routes CPU reads and writes to RAM, the PPU register window,
// the APU/IO stub, and the cartridge, per the CPU address map.
type Bus struct {
	ram  *ram.RAM
	ppu  *ppu.PPU
	apu  *apu.APU
	cart *cartridge.Cartridge

	oamDMAPage  uint8
	diagnostics []error
}

// New builds a Bus around an already-constructed cartridge, PPU, and
// APU stub. The cartridge is constructed first by the caller and
// shared with the PPU before the bus is built, avoiding a
// construction-time reference cycle.
func New(cart *cartridge.Cartridge, p *ppu.PPU, a *apu.APU) *Bus {
	return &Bus{
		ram:  ram.New(),
		ppu:  p,
		apu:  a,
		cart: cart,
	}
}

// Reset clears RAM, the PPU, the APU stub, and the cartridge's
// battery-backed RAM.
func (b *Bus) Reset() {
	b.ram.Reset()
	b.ppu.Reset()
	b.apu.Reset()
	b.cart.Reset()
	b.diagnostics = nil
}

// Diagnostics returns the bounded ring of address-range errors
// recorded since the last Reset, oldest first.
func (b *Bus) Diagnostics() []error { return b.diagnostics }

func (b *Bus) recordDiagnostic(err error) {
	b.diagnostics = append(b.diagnostics, err)
	if len(b.diagnostics) > diagnosticRingSize {
		b.diagnostics = b.diagnostics[len(b.diagnostics)-diagnosticRingSize:]
	}
}

// Read implements cpu.Memory.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr < 0x2000:
		return b.ram.Read(addr & 0x07FF)
	case addr < 0x4000:
		return b.ppu.ReadRegister(0x2000 + (addr & 0x0007))
	case addr == 0x4014:
		return 0 // OAMDMA is write-only
	case addr < 0x4018:
		return b.apu.Read(addr)
	case addr < 0x4020:
		return 0 // normally-disabled test-mode range
	case addr < 0x6000:
		b.recordDiagnostic(&MapperOutOfRangeError{Addr: addr})
		return 0 // NROM claims no PRG RAM/ROM below $6000
	default:
		return b.cart.ReadPRG(addr)
	}
}

// Write implements cpu.Memory.
func (b *Bus) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		b.ram.Write(addr&0x07FF, value)
	case addr < 0x4000:
		b.ppu.WriteRegister(0x2000+(addr&0x0007), value)
	case addr == 0x4014:
		b.oamDMA(value)
	case addr < 0x4018:
		b.apu.Write(addr, value)
	case addr < 0x4020:
		// normally-disabled test-mode range; writes silently ignored
	case addr < 0x6000:
		b.recordDiagnostic(&MapperOutOfRangeError{Addr: addr, Write: true})
	default:
		b.cart.WritePRG(addr, value)
	}
}

// oamDMA copies the 256-byte page starting at page<<8 from CPU RAM
// into OAM, as triggered by a write to $4014.
func (b *Bus) oamDMA(page uint8) {
	b.oamDMAPage = page
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(uint8(i), b.Read(base+uint16(i)))
	}
}

// PPU exposes the bus's PPU for the engine's rendering/inspection
// calls.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// Cartridge exposes the bus's cartridge handle for inspection.
func (b *Bus) Cartridge() *cartridge.Cartridge { return b.cart }
