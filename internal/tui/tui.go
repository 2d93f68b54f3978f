// Package tui renders an auto-played race as a Bubble Tea program: the
// board and standings up top, a scrolling race log underneath, stepped by
// a timer so spectators can follow each turn.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/display"
	"github.com/lox/camelup/internal/game"
)

// stepMsg ticks the race forward one turn.
type stepMsg time.Time

// WatchModel is the Bubble Tea model for watch mode. All seats are driven
// by bots; the human only spectates, pauses, and scrolls the log.
type WatchModel struct {
	mgr    *game.Manager
	agents map[string]game.Agent
	logger *log.Logger

	logViewport viewport.Model
	raceLog     []string

	delay    time.Duration
	paused   bool
	finished bool
	quitting bool

	width       int
	height      int
	initialized bool
}

// NewWatchModel builds a watch-mode model over an already set-up game.
// delay is the pause between automatic turns.
func NewWatchModel(mgr *game.Manager, agents map[string]game.Agent, delay time.Duration, logger *log.Logger) *WatchModel {
	// Sized properly once the first WindowSizeMsg arrives.
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &WatchModel{
		mgr:         mgr,
		agents:      agents,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		raceLog:     []string{},
		delay:       delay,
	}
}

// Init starts the turn timer.
func (m *WatchModel) Init() tea.Cmd {
	return m.tick()
}

func (m *WatchModel) tick() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return stepMsg(t) })
}

// Update handles messages in the TUI.
func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case " ", "p":
			m.paused = !m.paused
		case "n":
			// Single-step while paused.
			if m.paused {
				m.Step()
			}
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup", "b":
			m.logViewport.HalfPageUp()
		case "pgdown", "f":
			m.logViewport.HalfPageDown()
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}

	case stepMsg:
		if !m.paused {
			m.Step()
		}
		if m.finished {
			return m, nil
		}
		return m, m.tick()
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// Step advances the race by one frame: open a leg, play a turn, or settle
// whichever boundary the race has reached.
func (m *WatchModel) Step() {
	if m.finished {
		return
	}

	if m.mgr.Leg() == 0 {
		m.mgr.BeginLeg()
		m.addEntry(display.HeaderStyle.Render(fmt.Sprintf("=== Leg %d ===", m.mgr.Leg())))
		return
	}

	desc, running, err := m.mgr.PlayTurn(m.agents)
	if err != nil {
		m.addEntry(display.ErrorStyle.Render(err.Error()))
		m.finished = true
		return
	}
	if desc != "" {
		m.addEntry(desc)
	}
	if running {
		return
	}

	m.settleLeg()
}

// settleLeg runs leg-end scoring, and race-end scoring when a camel has
// crossed the line.
func (m *WatchModel) settleLeg() {
	legBets := m.mgr.ResolveLegEnd()
	m.addEntry(display.InfoStyle.Render(fmt.Sprintf("--- Leg %d scored ---", m.mgr.Leg())))
	for _, b := range legBets {
		m.addEntry(fmt.Sprintf("  %s: %+d coins", b, b.Payout))
	}

	if !m.mgr.IsFinished() {
		m.mgr.BeginLeg()
		m.addEntry(display.HeaderStyle.Render(fmt.Sprintf("=== Leg %d ===", m.mgr.Leg())))
		return
	}

	raceBets := m.mgr.ResolveRaceEnd()
	winner := m.mgr.Winner()
	m.addEntry(display.SuccessStyle.Render(fmt.Sprintf("*** %s wins the race! ***", display.CamelName(winner.Name))))
	for _, b := range raceBets {
		m.addEntry(fmt.Sprintf("  %s: %+d coins", b, b.Payout))
	}
	m.addEntry(display.InfoStyle.Render("press q to quit"))
	m.finished = true
	m.logger.Info("race over", "winner", winner.Name, "legs", m.mgr.Leg())
}

// Finished reports whether the race has been fully settled.
func (m *WatchModel) Finished() bool {
	return m.finished
}

// RaceLog returns a copy of the log entries rendered so far.
func (m *WatchModel) RaceLog() []string {
	out := make([]string, len(m.raceLog))
	copy(out, m.raceLog)
	return out
}

func (m *WatchModel) addEntry(entry string) {
	m.raceLog = append(m.raceLog, entry)
	m.logViewport.SetContent(strings.Join(m.raceLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI.
func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	boardPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(maxInt(m.width-2, 1)).
		Render(display.Board(m.mgr.Board(), m.mgr.Tiles()))

	standingsPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(maxInt(m.width-2, 1)).
		Render(display.Standings(m.mgr.Players))

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Render(
		"space pause • n step • ↑↓ scroll • q quit")

	chromeHeight := lipgloss.Height(boardPane) + lipgloss.Height(standingsPane) + lipgloss.Height(help) + 2
	m.logViewport.Width = maxInt(m.width-2, 1)
	m.logViewport.Height = maxInt(m.height-chromeHeight, 1)

	if !m.initialized && m.logViewport.Height > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Top, boardPane, standingsPane, logPane, help)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
