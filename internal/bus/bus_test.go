package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/ppu"
)

func buildNROM(t *testing.T, fill uint8) *cartridge.Cartridge {
	t.Helper()
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	data := append([]byte{}, header...)
	prg := make([]byte, 16*1024)
	for i := range prg {
		prg[i] = fill
	}
	data = append(data, prg...)
	chr := make([]byte, 8*1024)
	data = append(data, chr...)

	cart, err := cartridge.Load(data)
	require.NoError(t, err)
	return cart
}

func newTestBus(t *testing.T) *Bus {
	cart := buildNROM(t, 0xEA)
	p := ppu.New()
	p.AttachCartridge(cart)
	return New(cart, p, apu.New())
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	assert.Equal(t, uint8(0x42), b.Read(0x0800))
	assert.Equal(t, uint8(0x42), b.Read(0x1000))
	assert.Equal(t, uint8(0x42), b.Read(0x1800))
}

func TestPPURegisterMirrorEvery8Bytes(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x2003, 0x10) // OAMADDR
	b.Write(0x2004, 0x80) // OAMDATA
	b.ppu.WriteRegister(0x2003, 0x10)
	assert.Equal(t, uint8(0x80), b.ppu.ReadRegister(0x2004))
	b.Write(0x200B, 0x10) // mirrors $2003 again
	b.Write(0x200C, 0x01) // mirrors $2004 again
	b.ppu.WriteRegister(0x2003, 0x10)
	assert.Equal(t, uint8(0x01), b.ppu.ReadRegister(0x2004))
}

func TestAPUStubReadsZeroAndAcceptsWrites(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x4000, 0xFF)
	assert.Equal(t, uint8(0), b.Read(0x4000))
}

func TestCartridgePRGReachableAt8000(t *testing.T) {
	b := newTestBus(t)
	assert.Equal(t, uint8(0xEA), b.Read(0x8000))
	assert.Equal(t, uint8(0xEA), b.Read(0xC000)) // 16K PRG mirrors C000 from 8000
}

func TestUnmappedLowCartridgeRangeRecordsDiagnostic(t *testing.T) {
	b := newTestBus(t)
	v := b.Read(0x4020)
	assert.Equal(t, uint8(0), v)
	require.Len(t, b.Diagnostics(), 1)
	var oor *MapperOutOfRangeError
	require.ErrorAs(t, b.Diagnostics()[0], &oor)
	assert.Equal(t, uint16(0x4020), oor.Addr)
}

func TestOAMDMACopiesPageFromRAM(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.Write(uint16(i), uint8(i))
	}
	b.Write(0x4014, 0x00) // DMA from page 0x00

	for _, oamAddr := range []uint8{0x00, 0x10, 0xFF} {
		b.ppu.WriteRegister(0x2003, oamAddr)
		assert.Equal(t, oamAddr, b.ppu.ReadRegister(0x2004))
	}
}
