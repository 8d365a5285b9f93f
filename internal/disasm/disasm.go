// Package disasm renders 6502 instructions as assembly text for the
// inspectable-state surface of the engine, in the traditional
// "PC  bytes  mnemonic operand" layout.
package disasm

import (
	"fmt"

	"gones/internal/cpu"
)

// Memory is the subset of cpu.Memory the disassembler needs to read
// instruction bytes without executing them.
type Memory interface {
	Read(addr uint16) uint8
}

var operandFormat = map[cpu.Mode]string{
	cpu.Implicit:    "",
	cpu.Accumulator: "A",
	cpu.Immediate:   "#$%02X",
	cpu.ZeroPage:    "$%02X",
	cpu.ZeroPageX:   "$%02X,X",
	cpu.ZeroPageY:   "$%02X,Y",
	cpu.Absolute:    "$%04X",
	cpu.AbsoluteX:   "$%04X,X",
	cpu.AbsoluteY:   "$%04X,Y",
	cpu.Relative:    "$%04X",
	cpu.Indirect:    "($%04X)",
	cpu.IndirectX:   "($%02X,X)",
	cpu.IndirectY:   "($%02X),Y",
}

// Disassemble decodes the instruction at pc and returns its text and
// the PC of the instruction that follows it. An opcode byte with no
// decode-table entry renders as a raw data directive rather than
// erroring, since the disassembler must stay usable over CHR/data
// regions and after a halting InvalidOpcodeError.
func Disassemble(mem Memory, pc uint16) (text string, nextPC uint16) {
	opcode := mem.Read(pc)
	instr, ok := cpu.Lookup(opcode)
	if !ok {
		return fmt.Sprintf("%04X  %02X        .byte $%02X", pc, opcode, opcode), pc + 1
	}

	var bytesCol string
	var operand string
	switch instr.Bytes {
	case 1:
		bytesCol = fmt.Sprintf("%02X      ", opcode)
		operand = operandFormat[instr.Mode]
	case 2:
		arg := mem.Read(pc + 1)
		bytesCol = fmt.Sprintf("%02X %02X   ", opcode, arg)
		if instr.Mode == cpu.Relative {
			target := uint16(int32(pc) + 2 + int32(int8(arg)))
			operand = fmt.Sprintf(operandFormat[instr.Mode], target)
		} else {
			operand = fmt.Sprintf(operandFormat[instr.Mode], arg)
		}
	case 3:
		lo := mem.Read(pc + 1)
		hi := mem.Read(pc + 2)
		word := uint16(lo) | uint16(hi)<<8
		bytesCol = fmt.Sprintf("%02X %02X %02X", opcode, lo, hi)
		operand = fmt.Sprintf(operandFormat[instr.Mode], word)
	}

	line := fmt.Sprintf("%04X  %s  %s %s", pc, bytesCol, instr.Mnemonic, operand)
	return line, pc + uint16(instr.Bytes)
}

// Window returns count consecutive disassembled lines, starting from
// the instruction at or after (around - a small lookback) so the
// instruction at/after `around` lands in the middle of the window,
// matching the centered instruction list a debugger front end shows
// around the current PC. currentIndex is the index of that
// instruction within the returned slice.
func Window(mem Memory, around uint16, count int) (lines []string, currentIndex int) {
	if count <= 0 {
		return nil, 0
	}

	before := count / 2
	pc, steps := rewind(mem, around, before)
	currentIndex = steps

	lines = make([]string, 0, count)
	for len(lines) < count {
		var text string
		text, pc = Disassemble(mem, pc)
		lines = append(lines, text)
	}
	return lines, currentIndex
}

// rewind walks backward from pc by attempting to find `steps`
// preceding instruction boundaries. 6502 code has no reliable way to
// re-synchronize backward through variable-length instructions in
// general, so this scans forward from a generous lookback window and
// picks the decode path that lands exactly on pc — the same approach
// a disassembler-based debugger view uses to build a "current
// instruction centered" list.
func rewind(mem Memory, pc uint16, steps int) (start uint16, actualSteps int) {
	if steps <= 0 {
		return pc, 0
	}
	const maxLookback = 3 * 16 // widest plausible run of `steps` 3-byte instructions, with margin
	candidate := pc - uint16(maxLookback)
	if candidate > pc {
		candidate = 0 // uint16 underflow near address 0
	}

	bestStart, bestSteps := pc, 0
	for tryStart := candidate; tryStart != pc; tryStart++ {
		p := tryStart
		count := 0
		for p < pc {
			_, next := Disassemble(mem, p)
			p = next
			count++
		}
		if p != pc {
			continue
		}
		// Prefer the candidate giving the most lookback without
		// overshooting the requested step count.
		if count <= steps && count > bestSteps {
			bestStart, bestSteps = tryStart, count
		}
	}
	return bestStart, bestSteps
}
