// Package cpu implements the NES's 6502 (Ricoh 2A03, decimal mode
// disabled) CPU core: registers, status flags, stack, interrupt
// handling, and the addressing-mode/instruction evaluator.
package cpu

// Memory is the address-bus interface the CPU fetches and stores
// through. internal/bus.Bus satisfies it.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

const (
	stackBase   = 0x0100
	nmiVector   = 0xFFFA
	resetVector = 0xFFFC
	irqVector   = 0xFFFE
)

// Register names addressable via CPU.Register, used by the debug
// inspection surface.
type Register int

const (
	RegA Register = iota
	RegX
	RegY
	RegS
)

// Flag names addressable via CPU.Flag.
type Flag int

const (
	FlagC Flag = iota
	FlagZ
	FlagI
	FlagD
	FlagB
	FlagU
	FlagV
	FlagN
)

// CPU is the 6502 register file and execution engine. It holds no
// memory of its own; all reads and writes go through Memory.
type CPU struct {
	A, X, Y, S uint8
	PC         uint16

	C, Z, I, D, V, N bool

	bus Memory

	cycles uint64

	// deferredI holds the new I-flag value queued by a PLP
	// instruction. It is applied after the instruction that follows
	// PLP completes, not immediately (spec's deferred-interrupt
	// mechanism).
	deferredI *bool
}

// New returns a CPU driven through mem.
func New(mem Memory) *CPU {
	c := &CPU{bus: mem}
	c.Reset()
	return c
}

// Reset puts the CPU in its power-on/reset state: registers zeroed
// (S=0xFD), I and the unused status bit set, PC loaded from the reset
// vector.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.C, c.Z, c.D, c.V, c.N = false, false, false, false, false
	c.I = true
	c.deferredI = nil
	c.cycles = 0
	c.PC = c.readWord(resetVector)
}

// Cycles returns the total number of CPU cycles executed since Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// InterruptDeferred reports whether a PLP-queued I-flag change is
// still waiting to take effect after the instruction that follows it.
// The orchestrator must not dispatch an NMI while this is true: doing
// so would let the interrupt sequence's own I=true be clobbered when
// the queued value is later applied.
func (c *CPU) InterruptDeferred() bool { return c.deferredI != nil }

// Register reads one of the 8-bit general registers.
func (c *CPU) Register(r Register) uint8 {
	switch r {
	case RegA:
		return c.A
	case RegX:
		return c.X
	case RegY:
		return c.Y
	case RegS:
		return c.S
	default:
		return 0
	}
}

// Flag reads one status bit. FlagU always reads true (the unused bit
// is stuck at 1). FlagB always reads false: B is not a live register
// and exists only in copies of P pushed by BRK/PHP (see pushStatus).
func (c *CPU) Flag(f Flag) bool {
	switch f {
	case FlagC:
		return c.C
	case FlagZ:
		return c.Z
	case FlagI:
		return c.I
	case FlagD:
		return c.D
	case FlagB:
		return false
	case FlagU:
		return true
	case FlagV:
		return c.V
	case FlagN:
		return c.N
	default:
		return false
	}
}

// StatusByte packs the live flags into a P byte for display purposes,
// with U forced to 1 and B forced to 0 (see Flag's doc comment).
func (c *CPU) StatusByte() uint8 {
	return c.statusByte(false)
}

func (c *CPU) statusByte(b bool) uint8 {
	var p uint8
	if c.C {
		p |= 0x01
	}
	if c.Z {
		p |= 0x02
	}
	if c.I {
		p |= 0x04
	}
	if c.D {
		p |= 0x08
	}
	p |= 0x20 // U stuck at 1
	if b {
		p |= 0x10
	}
	if c.V {
		p |= 0x40
	}
	if c.N {
		p |= 0x80
	}
	return p
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

func (c *CPU) readWord(addr uint16) uint16 {
	lo := c.bus.Read(addr)
	hi := c.bus.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// readWordBugged reads a 16-bit pointer honoring the indirect-JMP
// hardware bug: if the low byte of the pointer is 0xFF, the high byte
// is fetched from the start of the same page, not the next page.
func (c *CPU) readWordBugged(ptr uint16) uint16 {
	lo := c.bus.Read(ptr)
	var hiAddr uint16
	if ptr&0x00FF == 0x00FF {
		hiAddr = ptr & 0xFF00
	} else {
		hiAddr = ptr + 1
	}
	hi := c.bus.Read(hiAddr)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(stackBase+uint16(c.S), v)
	c.S--
}

func (c *CPU) pull() uint8 {
	c.S++
	return c.bus.Read(stackBase + uint16(c.S))
}

func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pullWord() uint16 {
	lo := c.pull()
	hi := c.pull()
	return uint16(hi)<<8 | uint16(lo)
}

// pushStatus pushes P with U always 1 and B set per b (true for
// BRK/PHP, false for hardware interrupts).
func (c *CPU) pushStatus(b bool) {
	c.push(c.statusByte(b))
}

// applyStatus loads C,Z,I,D,V,N from a pulled P byte, discarding the
// B bit (RTI/PLP never honor a pulled B).
func (c *CPU) applyStatus(p uint8) {
	c.C = p&0x01 != 0
	c.Z = p&0x02 != 0
	c.I = p&0x04 != 0
	c.D = p&0x08 != 0
	c.V = p&0x40 != 0
	c.N = p&0x80 != 0
}

// Step fetches, decodes, and executes one instruction, returning the
// number of CPU cycles it took.
func (c *CPU) Step() (int, error) {
	pending := c.deferredI
	c.deferredI = nil

	pcBefore := c.PC
	opcode := c.bus.Read(pcBefore)
	instr, ok := decodeTable[opcode]
	if !ok {
		if pending != nil {
			c.I = *pending
		}
		return 0, &InvalidOpcodeError{PC: pcBefore, Opcode: opcode}
	}

	op := c.evaluate(instr.Mode, pcBefore)
	c.PC = pcBefore + uint16(instr.Bytes)

	extra := instr.Exec(c, instr.Mode, op)
	cycles := int(instr.Cycles) + extra
	if instr.PageCrossExtra && op.pageCross {
		cycles++
	}

	if pending != nil {
		c.I = *pending
	}

	c.cycles += uint64(cycles)
	return cycles, nil
}

// NMI runs the non-maskable-interrupt sequence: push PC then P (B=0,
// U=1), set I, load PC from the NMI vector. It always takes 7 cycles.
func (c *CPU) NMI() int {
	c.pushWord(c.PC)
	c.pushStatus(false)
	c.I = true
	c.PC = c.readWord(nmiVector)
	c.cycles += 7
	return 7
}
