// Package main implements the gones NES emulator executable: an
// ebiten window that drives the engine one frame per Update call and
// blits its RGBA frame buffer to the screen.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"

	"gones/internal/engine"
	"gones/internal/ppu"
	"gones/internal/version"
)

const windowScale = 3

type game struct {
	eng    *engine.Engine
	screen *ebiten.Image
	debug  bool
	trace  bool
}

func newGame(eng *engine.Engine, debug, trace bool) *game {
	return &game{
		eng:    eng,
		screen: ebiten.NewImage(ppu.ScreenWidth, ppu.ScreenHeight),
		debug:  debug,
		trace:  trace,
	}
}

func (g *game) Update() error {
	if err := g.tickFrame(); err != nil {
		return fmt.Errorf("emulation halted: %w", err)
	}
	fb := g.eng.FrameBuffer()
	g.screen.WritePixels(fb[:])
	if g.debug {
		fmt.Printf("gones: pc=%04X cycle=%d\n", g.eng.PC(), g.eng.Cycle())
	}
	return nil
}

// tickFrame advances one frame. With tracing off it's exactly
// Engine.Tick. With tracing on it drives the same cycle budget one
// instruction at a time through Step(log=true), printing each
// instruction engine.Trace() just recorded as it executes.
func (g *game) tickFrame() error {
	if !g.trace {
		return g.eng.Tick()
	}
	target := g.eng.Cycle() + engine.CyclesPerFrame
	for g.eng.Cycle() < target {
		if _, err := g.eng.Step(true); err != nil {
			return err
		}
		if trace := g.eng.Trace(); len(trace) > 0 {
			t := trace[len(trace)-1]
			fmt.Printf("gones: %04X  %s  (%d cyc)\n", t.PC, t.Text, t.Cycles)
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.screen, opts)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ppu.ScreenWidth * windowScale, ppu.ScreenHeight * windowScale
}

func main() {
	var (
		romFile = flag.String("rom", "", "Path to NES ROM file (required)")
		debug   = flag.Bool("debug", false, "Print PC and cycle count once per frame to stdout")
		trace   = flag.Bool("trace", false, "Print every executed instruction to stdout")
		showVer = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}

	if *romFile == "" {
		log.Fatal("gones: -rom is required")
	}

	setupGracefulShutdown()

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("gones: reading rom: %v", err)
	}

	eng := engine.New()
	if err := eng.LoadROM(data); err != nil {
		log.Fatalf("gones: loading rom: %v", err)
	}
	fmt.Printf("gones: loaded %s\n", *romFile)

	ebiten.SetWindowSize(ppu.ScreenWidth*windowScale, ppu.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("gones")

	if err := ebiten.RunGame(newGame(eng, *debug, *trace)); err != nil {
		log.Fatalf("gones: %v", err)
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Println("gones: interrupt received, shutting down")
		os.Exit(0)
	}()
}
