package disasm

import (
	"strings"
	"testing"
)

type flatMemory struct {
	data [0x10000]uint8
}

func (m *flatMemory) Read(addr uint16) uint8 { return m.data[addr] }

func (m *flatMemory) load(addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.data[int(addr)+i] = b
	}
}

func TestDisassembleImmediate(t *testing.T) {
	mem := &flatMemory{}
	mem.load(0x8000, 0xA9, 0x7F) // LDA #$7F

	text, next := Disassemble(mem, 0x8000)
	if next != 0x8002 {
		t.Errorf("next = 0x%04X, want 0x8002", next)
	}
	if !strings.Contains(text, "LDA") || !strings.Contains(text, "#$7F") {
		t.Errorf("text = %q, want LDA #$7F", text)
	}
}

func TestDisassembleRelativeShowsAbsoluteTarget(t *testing.T) {
	mem := &flatMemory{}
	mem.load(0x80F0, 0xF0, 0x10) // BEQ +0x10 -> target 0x8102

	text, next := Disassemble(mem, 0x80F0)
	if next != 0x80F2 {
		t.Errorf("next = 0x%04X, want 0x80F2", next)
	}
	if !strings.Contains(text, "$8102") {
		t.Errorf("text = %q, want target $8102", text)
	}
}

func TestDisassembleUnknownOpcodeIsDataDirective(t *testing.T) {
	mem := &flatMemory{}
	mem.load(0x8000, 0x02) // never a legal opcode

	text, next := Disassemble(mem, 0x8000)
	if next != 0x8001 {
		t.Errorf("next = 0x%04X, want 0x8001", next)
	}
	if !strings.Contains(text, ".byte $02") {
		t.Errorf("text = %q, want a .byte directive", text)
	}
}

func TestWindowCentersOnCurrentInstruction(t *testing.T) {
	mem := &flatMemory{}
	addr := uint16(0x8000)
	for i := 0; i < 20; i++ {
		mem.load(addr, 0xEA) // NOP, fixed 1-byte width simplifies indexing
		addr++
	}
	current := uint16(0x8000 + 10)

	lines, idx := Window(mem, current, 9)
	if len(lines) != 9 {
		t.Fatalf("len(lines) = %d, want 9", len(lines))
	}
	if idx != 4 {
		t.Errorf("currentIndex = %d, want 4 (centered)", idx)
	}
}
