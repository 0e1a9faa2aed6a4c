package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/plus3/grainfall/grain"
)

// stoppedTickRate paces redraws once the grid is full.
const stoppedTickRate = 10

// cellWidth is the number of terminal columns per grid cell.
const cellWidth = 2

var (
	smallStyle  = kindStyle(grain.Small)
	bigStyle    = kindStyle(grain.Big)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)

func kindStyle(k grain.Kind) lipgloss.Style {
	c := k.Color()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
}

type tickMsg time.Time

func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// model advances the simulation once per tick message.
type model struct {
	sim      *grain.Simulation
	tickRate int
	paused   bool
}

func newModel(sim *grain.Simulation, tickRate int) model {
	return model{sim: sim, tickRate: tickRate}
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.sim.Reset()
			m.paused = false
		}
		return m, nil

	case tickMsg:
		if !m.sim.IsRunning() {
			return m, tickCmd(stoppedTickRate)
		}
		if !m.paused {
			m.sim.Advance()
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderGrid(m.sim))
	b.WriteString(m.status())
	return b.String()
}

func (m model) status() string {
	stats := m.sim.Stats()
	line := statusStyle.Render(fmt.Sprintf("tick %d  particles %d  active %d  drop column %d",
		stats.Tick, stats.Particles, stats.Active, stats.DropColumn))

	switch {
	case m.paused:
		line += "  " + pausedStyle.Render("paused")
	case !stats.Running:
		line += "  " + pausedStyle.Render("stopped")
	}
	return line + "\n" + statusStyle.Render("q quit  space pause  r restart") + "\n"
}

// renderGrid draws one line per row. Runs of cells with the same content are
// styled together.
func renderGrid(sim *grain.Simulation) string {
	var b strings.Builder

	for row := range sim.Rows() {
		var (
			runKind grain.Kind
			runLen  int
		)
		flush := func() {
			if runLen == 0 {
				return
			}
			switch runKind {
			case grain.Small:
				b.WriteString(smallStyle.Render(strings.Repeat("█", runLen*cellWidth)))
			case grain.Big:
				b.WriteString(bigStyle.Render(strings.Repeat("█", runLen*cellWidth)))
			default:
				b.WriteString(strings.Repeat(" ", runLen*cellWidth))
			}
			runLen = 0
		}

		for col := range sim.Cols() {
			var kind grain.Kind
			if occ, ok := sim.OccupancyAt(grain.Cell{Row: row, Col: col}); ok {
				kind = occ.Kind
			}
			if kind != runKind {
				flush()
				runKind = kind
			}
			runLen++
		}
		flush()
		b.WriteByte('\n')
	}

	return b.String()
}
