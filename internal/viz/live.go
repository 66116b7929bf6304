// Package viz renders a running simulation in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cnwave/internal/sim"
)

const (
	graphWidth  = 72
	graphHeight = 12
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the simulation between frames and draws the pp profile.
type Model struct {
	simulation *sim.Simulation
	totalSteps int
	perFrame   int
	frameRate  int
	running    bool
	done       bool
	err        error
}

func NewModel(s *sim.Simulation, perFrame, frameRate int) Model {
	if perFrame < 1 {
		perFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		simulation: s,
		totalSteps: s.PlannedSteps(),
		perFrame:   perFrame,
		frameRate:  frameRate,
		running:    true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done && m.err == nil {
				m.running = !m.running
			}
		}

	case TickMsg:
		if m.running && !m.done && m.err == nil {
			for i := 0; i < m.perFrame; i++ {
				if m.simulation.StepCount() >= m.totalSteps {
					m.done = true
					m.running = false
					break
				}
				if err := m.simulation.Step(); err != nil {
					m.err = err
					m.running = false
					break
				}
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("cnwave live"))
	b.WriteString("\n")

	snap := m.simulation.Snapshot()
	graph := asciigraph.Plot(snap.PP,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("pp profile"),
	)
	b.WriteString(graphStyle.Render(graph))
	b.WriteString("\n")

	stat := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	stat("time", fmt.Sprintf("%.4f", m.simulation.Time()))
	stat("step", fmt.Sprintf("%d / %d", m.simulation.StepCount(), m.totalSteps))
	stat("sweeps", fmt.Sprintf("%d", m.simulation.LastStats().Sweeps))
	stat("phase", m.simulation.Phase().String())

	if m.err != nil {
		b.WriteString(failStyle.Render(fmt.Sprintf("aborted: %v", m.err)))
		b.WriteString("\n")
	} else if m.done {
		b.WriteString(valueStyle.Render("finished"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause/resume • q quit"))
	b.WriteString("\n")

	return b.String()
}

// Run drives the live view until the simulation finishes or the user quits.
func Run(s *sim.Simulation, perFrame, frameRate int) error {
	p := tea.NewProgram(NewModel(s, perFrame, frameRate))
	_, err := p.Run()
	return err
}
