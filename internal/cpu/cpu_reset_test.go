package cpu

import (
	"errors"
	"testing"
)

func TestResetState(t *testing.T) {
	c, _ := newTestCPU(0x8000)

	if c.PC != 0x8000 {
		t.Errorf("PC = 0x%04X, want 0x8000", c.PC)
	}
	if c.S != 0xFD {
		t.Errorf("S = 0x%02X, want 0xFD", c.S)
	}
	if c.A != 0 || c.X != 0 || c.Y != 0 {
		t.Errorf("A/X/Y = %d/%d/%d, want 0/0/0", c.A, c.X, c.Y)
	}
	if !c.Flag(FlagI) {
		t.Error("I flag should be set on reset")
	}
	if !c.Flag(FlagU) {
		t.Error("U flag should always read 1")
	}
}

func TestNOPAdvancesOneByte(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.load(0x8000, 0xEA) // NOP

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.PC != 0x8001 {
		t.Errorf("PC = 0x%04X, want 0x8001", c.PC)
	}
	if cycles != 2 {
		t.Errorf("cycles = %d, want 2", cycles)
	}
}

func TestInvalidOpcodeError(t *testing.T) {
	c, mem := newTestCPU(0x8000)
	mem.load(0x8000, 0x02) // never a legal opcode

	_, err := c.Step()
	var invalid *InvalidOpcodeError
	if err == nil {
		t.Fatal("expected InvalidOpcodeError, got nil")
	}
	if !errors.As(err, &invalid) {
		t.Fatalf("error %v is not *InvalidOpcodeError", err)
	}
	if invalid.PC != 0x8000 || invalid.Opcode != 0x02 {
		t.Errorf("got PC=0x%04X opcode=0x%02X, want PC=0x8000 opcode=0x02", invalid.PC, invalid.Opcode)
	}
}
