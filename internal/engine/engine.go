// Package engine implements the CPU/PPU timing orchestrator and the
// Engine API the presentation layer drives: load a ROM, advance it
// one instruction or one frame at a time, and inspect its state
// (registers, disassembly, pattern tables, palette, frame buffer).
package engine

import (
	"fmt"
	"strings"

	"gones/internal/apu"
	"gones/internal/bus"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/disasm"
	"gones/internal/ppu"
)

// CyclesPerFrame is the NTSC CPU cycle budget of one video frame:
// 341 dots/scanline * 262 scanlines / 3 dots per CPU cycle = 29,780.67,
// rounded down to 29780 (the real console's odd-frame dot skip brings
// the average to 29,780.5). Tick uses it as the frame boundary;
// callers driving their own instruction-by-instruction loop (e.g.
// cmd/gones's -trace mode) use it to replicate that same boundary.
const CyclesPerFrame = 29780

const traceRingSize = 256

// TraceEntry records one executed instruction for Step(log=true)
// callers (e.g. a debugger's instruction history panel).
type TraceEntry struct {
	PC     uint16
	Text   string
	Cycles int
}

// Engine owns one NES system: CPU, PPU, APU stub, cartridge, and bus.
// It is not safe for concurrent use; the design is single-threaded
// cooperative, matching the hardware it emulates.
type Engine struct {
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
	cart *cartridge.Cartridge
	bus  *bus.Bus

	halted    bool
	haltError error

	// nmiLatched remembers a PPU NMI request that arrived while a
	// PLP-queued I-flag change was still pending, since
	// ppu.PPU.NMIPending clears the flag it reports. It is held until
	// the deferred change is consumed and the interrupt can actually
	// be dispatched.
	nmiLatched bool

	trace []TraceEntry
}

// New creates an Engine with no ROM loaded. LoadROM must be called
// before Tick or Step will do anything meaningful.
func New() *Engine {
	return &Engine{}
}

// LoadROM parses an iNES byte stream and wires a fresh CPU/PPU/bus
// around it. Construction order follows the cartridge-first rule
// that avoids a CPU<->Bus<->PPU<->Cartridge reference cycle: the
// cartridge is built, then the PPU and bus are built around it, then
// the CPU around the bus.
func (e *Engine) LoadROM(data []byte) error {
	cart, err := cartridge.Load(data)
	if err != nil {
		return fmt.Errorf("engine: load rom: %w", err)
	}

	p := ppu.New()
	p.AttachCartridge(cart)
	a := apu.New()
	b := bus.New(cart, p, a)
	c := cpu.New(b)

	e.cart = cart
	e.ppu = p
	e.apu = a
	e.bus = b
	e.cpu = c
	e.halted = false
	e.haltError = nil
	e.nmiLatched = false
	e.trace = nil
	return nil
}

// Reset resets the CPU, PPU, APU stub, and cartridge RAM in place,
// keeping the currently loaded ROM.
func (e *Engine) Reset() {
	if e.bus == nil {
		return
	}
	e.bus.Reset()
	e.cpu.Reset()
	e.halted = false
	e.haltError = nil
	e.nmiLatched = false
	e.trace = nil
}

// Tick advances the system by exactly one frame's worth of CPU
// cycles (and, transitively, 3x that many PPU dots), the way a
// presentation-layer game loop calls it once per vsync.
func (e *Engine) Tick() error {
	if e.halted {
		return e.haltError
	}
	startCycles := e.cpu.Cycles()
	target := startCycles + CyclesPerFrame
	for e.cpu.Cycles() < target {
		if _, err := e.Step(false); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one CPU instruction, ticks the PPU 3x per
// CPU cycle consumed, and dispatches a pending NMI between
// instructions. If log is true, the executed instruction is appended
// to the bounded trace ring. A decode-time error halts the engine:
// subsequent Step/Tick calls return the same error without advancing,
// though the engine's state remains inspectable.
func (e *Engine) Step(log bool) (cycles int, err error) {
	if e.halted {
		return 0, e.haltError
	}

	pcBefore := e.cpu.PC
	var text string
	if log {
		text, _ = disasm.Disassemble(e.bus, pcBefore)
	}

	cycles, err = e.cpu.Step()
	if err != nil {
		e.halted = true
		e.haltError = err
		return cycles, err
	}

	for i := 0; i < cycles*3; i++ {
		e.ppu.Step()
	}

	// ppu.PPU.NMIPending clears the flag it reports, so a request
	// that arrives while a PLP-queued I-flag change is still pending
	// is latched rather than dropped: dispatching the NMI now would
	// let its I=true be overwritten when the queued value lands one
	// instruction later (spec's deferred-interrupt gate). The latch
	// is rechecked every Step until cpu.CPU.Step consumes the queued
	// change, then the interrupt fires with its own 7-cycle, 21-dot
	// tick accounted for like any other instruction.
	if e.ppu.NMIPending() {
		e.nmiLatched = true
	}
	if e.nmiLatched && !e.cpu.InterruptDeferred() {
		e.nmiLatched = false
		nmiCycles := e.cpu.NMI()
		for i := 0; i < nmiCycles*3; i++ {
			e.ppu.Step()
		}
	}

	if log {
		e.trace = append(e.trace, TraceEntry{PC: pcBefore, Text: text, Cycles: cycles})
		if len(e.trace) > traceRingSize {
			e.trace = e.trace[len(e.trace)-traceRingSize:]
		}
	}
	return cycles, nil
}

// Trace returns the bounded ring of instructions executed with
// Step(log=true), oldest first.
func (e *Engine) Trace() []TraceEntry { return e.trace }

// CPURegister returns the current value of an 8-bit CPU register.
func (e *Engine) CPURegister(r cpu.Register) uint8 { return e.cpu.Register(r) }

// PC returns the current program counter.
func (e *Engine) PC() uint16 { return e.cpu.PC }

// Flag returns the current value of a processor status flag.
func (e *Engine) Flag(f cpu.Flag) bool { return e.cpu.Flag(f) }

// Cycle returns the total CPU cycle count since the last Reset.
func (e *Engine) Cycle() uint64 { return e.cpu.Cycles() }

// MemoryDump returns length bytes starting at start, formatted as
// textual hex rows of 16 bytes each, address-prefixed.
func (e *Engine) MemoryDump(start uint16, length int) string {
	var b strings.Builder
	for i := 0; i < length; i += 16 {
		fmt.Fprintf(&b, "%04X: ", int(start)+i)
		for j := 0; j < 16 && i+j < length; j++ {
			fmt.Fprintf(&b, "%02X ", e.bus.Read(start+uint16(i+j)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Assembly returns count disassembled instruction lines centered on
// the current PC, plus the index of the current instruction within
// that slice.
func (e *Engine) Assembly(count int) (lines []string, currentIndex int) {
	return disasm.Window(e.bus, e.cpu.PC, count)
}

// CHRImage renders CHR pattern table 0 or 1 as a 128x128 RGBA image.
func (e *Engine) CHRImage(table int) [128 * 128 * 4]uint8 { return e.ppu.CHRImage(table) }

// Palette returns the 32 palette RAM entries expanded to RGBA.
func (e *Engine) Palette() [32 * 4]uint8 { return e.ppu.Palette() }

// FrameBuffer returns the current 256x240 RGBA frame buffer.
func (e *Engine) FrameBuffer() *[256 * 240 * 4]uint8 { return e.ppu.FrameBuffer() }

// Diagnostics returns the bus's bounded ring of address-range errors.
func (e *Engine) Diagnostics() []error { return e.bus.Diagnostics() }
