package ppu

// loopy packs the scroll/address register layout named after its
// documenter:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X scroll
//	||| || +++++-------- coarse Y scroll
//	||| ++-------------- nametable select
//	+++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

func (l *loopy) setCoarseX(n uint16) { l.data = (l.data & 0xFFE0) | (n & 0x001F) }

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) setCoarseY(n uint16) { l.data = (l.data & 0xFC1F) | ((n & 0x001F) << 5) }

func (l *loopy) nametableX() uint16 { return (l.data & 0x0400) >> 10 }

func (l *loopy) nametableY() uint16 { return (l.data & 0x0800) >> 11 }

func (l *loopy) toggleNametableX() { l.data ^= 0x0400 }

func (l *loopy) toggleNametableY() { l.data ^= 0x0800 }

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

func (l *loopy) setFineY(n uint16) { l.data = (l.data & 0x8FFF) | ((n & 0x0007) << 12) }

// incrementCoarseX implements the dot-by-8 horizontal scroll advance:
// wrap coarse X at 31 and flip the horizontal nametable bit.
func (l *loopy) incrementCoarseX() {
	if l.coarseX() == 31 {
		l.setCoarseX(0)
		l.toggleNametableX()
	} else {
		l.setCoarseX(l.coarseX() + 1)
	}
}

// incrementY implements the dot-256 vertical scroll advance: fine Y
// increments first, carrying into coarse Y (with the NES-specific
// 29/31 wraparound) only on fine-Y overflow.
func (l *loopy) incrementY() {
	if l.fineY() < 7 {
		l.setFineY(l.fineY() + 1)
		return
	}
	l.setFineY(0)
	switch l.coarseY() {
	case 29:
		l.setCoarseY(0)
		l.toggleNametableY()
	case 31:
		l.setCoarseY(0)
	default:
		l.setCoarseY(l.coarseY() + 1)
	}
}

const (
	horizontalBitsMask = 0x041F // nametable-X + coarse X
	verticalBitsMask   = 0x7BE0 // fine Y + nametable-Y + coarse Y
)

// copyHorizontalBits copies t's nametable-X and coarse-X bits into v,
// performed at dot 257 of each rendered scanline.
func (v *loopy) copyHorizontalBits(t *loopy) {
	v.data = (v.data &^ horizontalBitsMask) | (t.data & horizontalBitsMask)
}

// copyVerticalBits copies t's fine-Y, nametable-Y and coarse-Y bits
// into v, performed at dots 280-304 of the pre-render scanline.
func (v *loopy) copyVerticalBits(t *loopy) {
	v.data = (v.data &^ verticalBitsMask) | (t.data & verticalBitsMask)
}
