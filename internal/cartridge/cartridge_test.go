package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildINES assembles a minimal iNES byte stream: header, optional
// trainer, PRG filled with fill, CHR filled with fill+1.
func buildINES(prgBanks, chrBanks int, flags6, flags7 uint8, trainer bool, fill uint8) []byte {
	header := make([]byte, headerSize)
	copy(header, []byte("NES\x1A"))
	header[4] = uint8(prgBanks)
	header[5] = uint8(chrBanks)
	header[6] = flags6
	header[7] = flags7

	var buf []byte
	buf = append(buf, header...)
	if trainer {
		buf = append(buf, make([]byte, trainerSize)...)
	}
	prg := make([]byte, prgBanks*prgUnit)
	for i := range prg {
		prg[i] = fill
	}
	buf = append(buf, prg...)

	if chrBanks > 0 {
		chr := make([]byte, chrBanks*chrUnit)
		for i := range chr {
			chr[i] = fill + 1
		}
		buf = append(buf, chr...)
	}
	return buf
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false, 0xAA)
	data[0] = 'X'
	_, err := Load(data)
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestLoadRejectsUnsupportedMapper(t *testing.T) {
	data := buildINES(1, 1, 0x10, 0, false, 0xAA) // mapper 1 low nibble
	_, err := Load(data)
	assert.ErrorIs(t, err, ErrUnsupportedMapper)
}

func TestLoadRejectsTruncated(t *testing.T) {
	data := buildINES(1, 1, 0, 0, false, 0xAA)
	_, err := Load(data[:len(data)-100])
	assert.ErrorIs(t, err, ErrTruncatedFile)
}

func TestLoadSkipsTrainer(t *testing.T) {
	data := buildINES(1, 0, 0x04, 0, true, 0x77)
	cart, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x77), cart.ReadPRG(0x8000))
}

func TestChrAllocatesRAMWhenHeaderCHRIsZero(t *testing.T) {
	data := buildINES(1, 0, 0, 0, false, 0x11)
	cart, err := Load(data)
	require.NoError(t, err)
	assert.True(t, cart.chrIsRAM)
	cart.WriteCHR(0x0000, 0x55)
	assert.Equal(t, uint8(0x55), cart.ReadCHR(0x0000))
}

func TestMirroringModes(t *testing.T) {
	cases := []struct {
		name   string
		flags6 uint8
		want   MirrorMode
	}{
		{"horizontal", 0x00, MirrorHorizontal},
		{"vertical", 0x01, MirrorVertical},
		{"four screen overrides vertical bit", 0x09, MirrorFourScreen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := buildINES(1, 1, tc.flags6, 0, false, 0)
			cart, err := Load(data)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cart.Mirror())
		})
	}
}

func TestResetZeroesPRGAndCHRRAM(t *testing.T) {
	data := buildINES(1, 0, 0, 0, false, 0)
	cart, err := Load(data)
	require.NoError(t, err)

	cart.WritePRG(0x6000, 0xAB)
	cart.WriteCHR(0x0000, 0xCD)
	cart.Reset()

	assert.Equal(t, uint8(0), cart.ReadPRG(0x6000))
	assert.Equal(t, uint8(0), cart.ReadCHR(0x0000))
}
