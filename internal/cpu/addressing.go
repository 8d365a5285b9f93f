package cpu

// Mode is one of the 13 6502 addressing modes.
type Mode int

const (
	Implicit Mode = iota
	Immediate
	Accumulator
	ZeroPage
	ZeroPageX
	ZeroPageY
	Absolute
	AbsoluteX
	AbsoluteY
	Relative
	Indirect
	IndirectX
	IndirectY
)

// operand is the result of evaluating an addressing mode: the
// resolved value (for modes that read one), the effective address
// (for modes that have one), and whether forming that address crossed
// a page boundary.
type operand struct {
	value     uint8
	addr      uint16
	hasAddr   bool
	pageCross bool
}

// evaluate resolves mode's operand with PC still pointing at the
// opcode byte (pc). It never advances PC; the caller advances PC by
// the instruction's declared byte count after calling this.
func (c *CPU) evaluate(mode Mode, pc uint16) operand {
	switch mode {
	case Implicit:
		return operand{}

	case Accumulator:
		return operand{value: c.A}

	case Immediate:
		return operand{value: c.bus.Read(pc + 1)}

	case ZeroPage:
		addr := uint16(c.bus.Read(pc + 1))
		return operand{addr: addr, hasAddr: true, value: c.bus.Read(addr)}

	case ZeroPageX:
		addr := uint16(uint8(c.bus.Read(pc+1)) + c.X)
		return operand{addr: addr, hasAddr: true, value: c.bus.Read(addr)}

	case ZeroPageY:
		addr := uint16(uint8(c.bus.Read(pc+1)) + c.Y)
		return operand{addr: addr, hasAddr: true, value: c.bus.Read(addr)}

	case Relative:
		offset := int8(c.bus.Read(pc + 1))
		addr := uint16(int32(pc) + 2 + int32(offset))
		return operand{addr: addr, hasAddr: true}

	case Absolute:
		addr := c.readWord(pc + 1)
		return operand{addr: addr, hasAddr: true, value: c.bus.Read(addr)}

	case AbsoluteX:
		base := c.readWord(pc + 1)
		addr := base + uint16(c.X)
		return operand{
			addr:      addr,
			hasAddr:   true,
			value:     c.bus.Read(addr),
			pageCross: base&0xFF00 != addr&0xFF00,
		}

	case AbsoluteY:
		base := c.readWord(pc + 1)
		addr := base + uint16(c.Y)
		return operand{
			addr:      addr,
			hasAddr:   true,
			value:     c.bus.Read(addr),
			pageCross: base&0xFF00 != addr&0xFF00,
		}

	case Indirect:
		ptr := c.readWord(pc + 1)
		addr := c.readWordBugged(ptr)
		return operand{addr: addr, hasAddr: true}

	case IndirectX:
		zp := uint8(c.bus.Read(pc+1)) + c.X
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(uint8(zp + 1)))
		addr := uint16(hi)<<8 | uint16(lo)
		return operand{addr: addr, hasAddr: true, value: c.bus.Read(addr)}

	case IndirectY:
		zp := c.bus.Read(pc + 1)
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(uint8(zp + 1)))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.Y)
		return operand{
			addr:      addr,
			hasAddr:   true,
			value:     c.bus.Read(addr),
			pageCross: base&0xFF00 != addr&0xFF00,
		}

	default:
		return operand{}
	}
}
