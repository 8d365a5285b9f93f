// Command nestrace is an interactive terminal debugger for the gones
// engine: a paged hex dump, a centered disassembly window, and a
// register/flag panel, driven one instruction (or one frame) at a
// time. It exists for the inspectable-state surface spec.md §6
// requires that isn't pixels on a screen.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gones/internal/cpu"
	"gones/internal/engine"
	"gones/internal/version"
)

var (
	registerPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	asmPanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	currentLineStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	haltedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

const (
	asmWindow  = 15
	memRows    = 8
	memPerRow  = 16
	helpText   = "space/j: step   f: step frame   r: reset   m: mem page   d: dump last op   e: last diagnostic   q: quit"
)

type model struct {
	eng      *engine.Engine
	romPath  string
	memPage  uint16
	lastSpew string
	err      error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if _, err := m.eng.Step(true); err != nil {
				m.err = err
			}
		case "f":
			if err := m.eng.Tick(); err != nil {
				m.err = err
			}
		case "r":
			m.eng.Reset()
			m.err = nil
			m.lastSpew = ""
		case "m":
			m.memPage += uint16(memRows * memPerRow)
		case "d":
			trace := m.eng.Trace()
			if len(trace) > 0 {
				m.lastSpew = spew.Sdump(trace[len(trace)-1])
			}
		case "e":
			diags := m.eng.Diagnostics()
			if len(diags) > 0 {
				m.lastSpew = spew.Sdump(diags[len(diags)-1])
			}
		}
	}
	return m, nil
}

func (m model) registerPanel() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC: %04X   CYC: %d\n", m.eng.PC(), m.eng.Cycle())
	fmt.Fprintf(&b, "A:  %02X\n", m.eng.CPURegister(cpu.RegA))
	fmt.Fprintf(&b, "X:  %02X\n", m.eng.CPURegister(cpu.RegX))
	fmt.Fprintf(&b, "Y:  %02X\n", m.eng.CPURegister(cpu.RegY))
	fmt.Fprintf(&b, "S:  %02X\n", m.eng.CPURegister(cpu.RegS))
	b.WriteString("N V U B D I Z C\n")
	for _, f := range []cpu.Flag{cpu.FlagN, cpu.FlagV, cpu.FlagU, cpu.FlagB, cpu.FlagD, cpu.FlagI, cpu.FlagZ, cpu.FlagC} {
		if m.eng.Flag(f) {
			b.WriteString("1 ")
		} else {
			b.WriteString("0 ")
		}
	}
	b.WriteByte('\n')
	if m.err != nil {
		b.WriteString(haltedStyle.Render("HALTED: " + m.err.Error()))
	}
	return registerPanelStyle.Render(b.String())
}

func (m model) asmPanel() string {
	lines, current := m.eng.Assembly(asmWindow)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		if i == current {
			rendered[i] = currentLineStyle.Render("> " + line)
		} else {
			rendered[i] = "  " + line
		}
	}
	return asmPanelStyle.Render(strings.Join(rendered, "\n"))
}

func (m model) memPanel() string {
	return registerPanelStyle.Render(strings.TrimRight(m.eng.MemoryDump(m.memPage, memRows*memPerRow), "\n"))
}

func (m model) View() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top, m.asmPanel(), m.registerPanel())
	sections := []string{top, m.memPanel()}
	if m.lastSpew != "" {
		sections = append(sections, registerPanelStyle.Render(strings.TrimRight(m.lastSpew, "\n")))
	}
	sections = append(sections, helpStyle.Render(helpText))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func main() {
	var (
		romFile = flag.String("rom", "", "Path to NES ROM file (required)")
		showVer = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVer {
		version.PrintBuildInfo()
		os.Exit(0)
	}
	if *romFile == "" {
		log.Fatal("nestrace: -rom is required")
	}

	data, err := os.ReadFile(*romFile)
	if err != nil {
		log.Fatalf("nestrace: reading rom: %v", err)
	}

	eng := engine.New()
	if err := eng.LoadROM(data); err != nil {
		log.Fatalf("nestrace: loading rom: %v", err)
	}

	if _, err := tea.NewProgram(model{eng: eng, romPath: *romFile}).Run(); err != nil {
		log.Fatalf("nestrace: %v", err)
	}
}
