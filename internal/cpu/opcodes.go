package cpu

// Instruction describes one decoded opcode: its mnemonic, addressing
// mode, instruction length, base cycle cost, whether an indexed-load
// page-cross adds one more cycle, and the executor that performs it.
type Instruction struct {
	Mnemonic       string
	Mode           Mode
	Bytes          uint8
	Cycles         uint8
	PageCrossExtra bool
	Exec           func(c *CPU, mode Mode, op operand) int
}

// decodeTable maps each of the 256 possible opcode bytes to its
// Instruction. Entries absent from the map are illegal/undocumented
// opcodes (spec.md excludes them); Step reports them via
// InvalidOpcodeError.
var decodeTable = buildDecodeTable()

// Lookup returns the Instruction for opcode, used by the
// disassembler.
func Lookup(opcode uint8) (Instruction, bool) {
	instr, ok := decodeTable[opcode]
	return instr, ok
}

type entry struct {
	opcode  uint8
	mode    Mode
	bytes   uint8
	cycles  uint8
	pageExt bool
}

func buildDecodeTable() map[uint8]Instruction {
	table := make(map[uint8]Instruction, 256)

	def := func(mnemonic string, exec func(*CPU, Mode, operand) int, entries ...entry) {
		for _, e := range entries {
			table[e.opcode] = Instruction{
				Mnemonic:       mnemonic,
				Mode:           e.mode,
				Bytes:          e.bytes,
				Cycles:         e.cycles,
				PageCrossExtra: e.pageExt,
				Exec:           exec,
			}
		}
	}

	def("ADC", execADC,
		entry{0x69, Immediate, 2, 2, false},
		entry{0x65, ZeroPage, 2, 3, false},
		entry{0x75, ZeroPageX, 2, 4, false},
		entry{0x6D, Absolute, 3, 4, false},
		entry{0x7D, AbsoluteX, 3, 4, true},
		entry{0x79, AbsoluteY, 3, 4, true},
		entry{0x61, IndirectX, 2, 6, false},
		entry{0x71, IndirectY, 2, 5, true},
	)
	def("SBC", execSBC,
		entry{0xE9, Immediate, 2, 2, false},
		entry{0xE5, ZeroPage, 2, 3, false},
		entry{0xF5, ZeroPageX, 2, 4, false},
		entry{0xED, Absolute, 3, 4, false},
		entry{0xFD, AbsoluteX, 3, 4, true},
		entry{0xF9, AbsoluteY, 3, 4, true},
		entry{0xE1, IndirectX, 2, 6, false},
		entry{0xF1, IndirectY, 2, 5, true},
	)
	def("AND", execAND,
		entry{0x29, Immediate, 2, 2, false},
		entry{0x25, ZeroPage, 2, 3, false},
		entry{0x35, ZeroPageX, 2, 4, false},
		entry{0x2D, Absolute, 3, 4, false},
		entry{0x3D, AbsoluteX, 3, 4, true},
		entry{0x39, AbsoluteY, 3, 4, true},
		entry{0x21, IndirectX, 2, 6, false},
		entry{0x31, IndirectY, 2, 5, true},
	)
	def("ORA", execORA,
		entry{0x09, Immediate, 2, 2, false},
		entry{0x05, ZeroPage, 2, 3, false},
		entry{0x15, ZeroPageX, 2, 4, false},
		entry{0x0D, Absolute, 3, 4, false},
		entry{0x1D, AbsoluteX, 3, 4, true},
		entry{0x19, AbsoluteY, 3, 4, true},
		entry{0x01, IndirectX, 2, 6, false},
		entry{0x11, IndirectY, 2, 5, true},
	)
	def("EOR", execEOR,
		entry{0x49, Immediate, 2, 2, false},
		entry{0x45, ZeroPage, 2, 3, false},
		entry{0x55, ZeroPageX, 2, 4, false},
		entry{0x4D, Absolute, 3, 4, false},
		entry{0x5D, AbsoluteX, 3, 4, true},
		entry{0x59, AbsoluteY, 3, 4, true},
		entry{0x41, IndirectX, 2, 6, false},
		entry{0x51, IndirectY, 2, 5, true},
	)
	def("CMP", execCMP,
		entry{0xC9, Immediate, 2, 2, false},
		entry{0xC5, ZeroPage, 2, 3, false},
		entry{0xD5, ZeroPageX, 2, 4, false},
		entry{0xCD, Absolute, 3, 4, false},
		entry{0xDD, AbsoluteX, 3, 4, true},
		entry{0xD9, AbsoluteY, 3, 4, true},
		entry{0xC1, IndirectX, 2, 6, false},
		entry{0xD1, IndirectY, 2, 5, true},
	)
	def("CPX", execCPX,
		entry{0xE0, Immediate, 2, 2, false},
		entry{0xE4, ZeroPage, 2, 3, false},
		entry{0xEC, Absolute, 3, 4, false},
	)
	def("CPY", execCPY,
		entry{0xC0, Immediate, 2, 2, false},
		entry{0xC4, ZeroPage, 2, 3, false},
		entry{0xCC, Absolute, 3, 4, false},
	)

	def("ASL", execASL,
		entry{0x0A, Accumulator, 1, 2, false},
		entry{0x06, ZeroPage, 2, 5, false},
		entry{0x16, ZeroPageX, 2, 6, false},
		entry{0x0E, Absolute, 3, 6, false},
		entry{0x1E, AbsoluteX, 3, 7, false},
	)
	def("LSR", execLSR,
		entry{0x4A, Accumulator, 1, 2, false},
		entry{0x46, ZeroPage, 2, 5, false},
		entry{0x56, ZeroPageX, 2, 6, false},
		entry{0x4E, Absolute, 3, 6, false},
		entry{0x5E, AbsoluteX, 3, 7, false},
	)
	def("ROL", execROL,
		entry{0x2A, Accumulator, 1, 2, false},
		entry{0x26, ZeroPage, 2, 5, false},
		entry{0x36, ZeroPageX, 2, 6, false},
		entry{0x2E, Absolute, 3, 6, false},
		entry{0x3E, AbsoluteX, 3, 7, false},
	)
	def("ROR", execROR,
		entry{0x6A, Accumulator, 1, 2, false},
		entry{0x66, ZeroPage, 2, 5, false},
		entry{0x76, ZeroPageX, 2, 6, false},
		entry{0x6E, Absolute, 3, 6, false},
		entry{0x7E, AbsoluteX, 3, 7, false},
	)

	def("INC", execINC,
		entry{0xE6, ZeroPage, 2, 5, false},
		entry{0xF6, ZeroPageX, 2, 6, false},
		entry{0xEE, Absolute, 3, 6, false},
		entry{0xFE, AbsoluteX, 3, 7, false},
	)
	def("DEC", execDEC,
		entry{0xC6, ZeroPage, 2, 5, false},
		entry{0xD6, ZeroPageX, 2, 6, false},
		entry{0xCE, Absolute, 3, 6, false},
		entry{0xDE, AbsoluteX, 3, 7, false},
	)
	def("INX", execINX, entry{0xE8, Implicit, 1, 2, false})
	def("INY", execINY, entry{0xC8, Implicit, 1, 2, false})
	def("DEX", execDEX, entry{0xCA, Implicit, 1, 2, false})
	def("DEY", execDEY, entry{0x88, Implicit, 1, 2, false})

	def("BIT", execBIT,
		entry{0x24, ZeroPage, 2, 3, false},
		entry{0x2C, Absolute, 3, 4, false},
	)

	def("BCC", execBCC, entry{0x90, Relative, 2, 2, false})
	def("BCS", execBCS, entry{0xB0, Relative, 2, 2, false})
	def("BEQ", execBEQ, entry{0xF0, Relative, 2, 2, false})
	def("BNE", execBNE, entry{0xD0, Relative, 2, 2, false})
	def("BMI", execBMI, entry{0x30, Relative, 2, 2, false})
	def("BPL", execBPL, entry{0x10, Relative, 2, 2, false})
	def("BVC", execBVC, entry{0x50, Relative, 2, 2, false})
	def("BVS", execBVS, entry{0x70, Relative, 2, 2, false})

	def("JMP", execJMP,
		entry{0x4C, Absolute, 3, 3, false},
		entry{0x6C, Indirect, 3, 5, false},
	)
	def("JSR", execJSR, entry{0x20, Absolute, 3, 6, false})
	def("RTS", execRTS, entry{0x60, Implicit, 1, 6, false})
	def("BRK", execBRK, entry{0x00, Implicit, 1, 7, false})
	def("RTI", execRTI, entry{0x40, Implicit, 1, 6, false})

	def("PHA", execPHA, entry{0x48, Implicit, 1, 3, false})
	def("PHP", execPHP, entry{0x08, Implicit, 1, 3, false})
	def("PLA", execPLA, entry{0x68, Implicit, 1, 4, false})
	def("PLP", execPLP, entry{0x28, Implicit, 1, 4, false})

	def("TAX", execTAX, entry{0xAA, Implicit, 1, 2, false})
	def("TAY", execTAY, entry{0xA8, Implicit, 1, 2, false})
	def("TXA", execTXA, entry{0x8A, Implicit, 1, 2, false})
	def("TYA", execTYA, entry{0x98, Implicit, 1, 2, false})
	def("TSX", execTSX, entry{0xBA, Implicit, 1, 2, false})
	def("TXS", execTXS, entry{0x9A, Implicit, 1, 2, false})

	def("STA", execSTA,
		entry{0x85, ZeroPage, 2, 3, false},
		entry{0x95, ZeroPageX, 2, 4, false},
		entry{0x8D, Absolute, 3, 4, false},
		entry{0x9D, AbsoluteX, 3, 5, false},
		entry{0x99, AbsoluteY, 3, 5, false},
		entry{0x81, IndirectX, 2, 6, false},
		entry{0x91, IndirectY, 2, 6, false},
	)
	def("STX", execSTX,
		entry{0x86, ZeroPage, 2, 3, false},
		entry{0x96, ZeroPageY, 2, 4, false},
		entry{0x8E, Absolute, 3, 4, false},
	)
	def("STY", execSTY,
		entry{0x84, ZeroPage, 2, 3, false},
		entry{0x94, ZeroPageX, 2, 4, false},
		entry{0x8C, Absolute, 3, 4, false},
	)

	def("LDA", execLDA,
		entry{0xA9, Immediate, 2, 2, false},
		entry{0xA5, ZeroPage, 2, 3, false},
		entry{0xB5, ZeroPageX, 2, 4, false},
		entry{0xAD, Absolute, 3, 4, false},
		entry{0xBD, AbsoluteX, 3, 4, true},
		entry{0xB9, AbsoluteY, 3, 4, true},
		entry{0xA1, IndirectX, 2, 6, false},
		entry{0xB1, IndirectY, 2, 5, true},
	)
	def("LDX", execLDX,
		entry{0xA2, Immediate, 2, 2, false},
		entry{0xA6, ZeroPage, 2, 3, false},
		entry{0xB6, ZeroPageY, 2, 4, false},
		entry{0xAE, Absolute, 3, 4, false},
		entry{0xBE, AbsoluteY, 3, 4, true},
	)
	def("LDY", execLDY,
		entry{0xA0, Immediate, 2, 2, false},
		entry{0xA4, ZeroPage, 2, 3, false},
		entry{0xB4, ZeroPageX, 2, 4, false},
		entry{0xAC, Absolute, 3, 4, false},
		entry{0xBC, AbsoluteX, 3, 4, true},
	)

	def("CLC", execCLC, entry{0x18, Implicit, 1, 2, false})
	def("SEC", execSEC, entry{0x38, Implicit, 1, 2, false})
	def("CLD", execCLD, entry{0xD8, Implicit, 1, 2, false})
	def("SED", execSED, entry{0xF8, Implicit, 1, 2, false})
	def("CLI", execCLI, entry{0x58, Implicit, 1, 2, false})
	def("SEI", execSEI, entry{0x78, Implicit, 1, 2, false})
	def("CLV", execCLV, entry{0xB8, Implicit, 1, 2, false})

	def("NOP", execNOP, entry{0xEA, Implicit, 1, 2, false})

	return table
}
