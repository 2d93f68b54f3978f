package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/camelup/internal/bot"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
)

func newWatchFixture(t *testing.T, seed int64) *WatchModel {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	players := []*game.Player{game.NewPlayer("alice"), game.NewPlayer("bob")}
	mgr := game.NewManager(players, race.DefaultTrackLength, randutil.New(seed), logger)
	mgr.SetupBoard()

	agents := map[string]game.Agent{}
	for i, p := range players {
		agent, err := bot.New("rand", mgr, randutil.Derive(seed, i), logger)
		require.NoError(t, err)
		agents[p.Name] = agent
	}

	return NewWatchModel(mgr, agents, time.Millisecond, logger)
}

func TestWatchModelStepsThroughRace(t *testing.T) {
	m := newWatchFixture(t, 42)

	// First step opens leg 1 before any turns are played.
	m.Step()
	assert.Equal(t, 1, m.mgr.Leg())
	require.NotEmpty(t, m.RaceLog())
	assert.Contains(t, m.RaceLog()[0], "Leg 1")

	for i := 0; i < 10000 && !m.Finished(); i++ {
		m.Step()
	}

	require.True(t, m.Finished())
	assert.True(t, m.mgr.IsFinished())
	assert.NotNil(t, m.mgr.Winner())

	joined := strings.Join(m.RaceLog(), "\n")
	assert.Contains(t, joined, "wins the race")
	assert.Contains(t, joined, "Leg 1 scored")
}

func TestWatchModelStepAfterFinishIsNoop(t *testing.T) {
	m := newWatchFixture(t, 7)
	for i := 0; i < 10000 && !m.Finished(); i++ {
		m.Step()
	}
	require.True(t, m.Finished())

	before := len(m.RaceLog())
	m.Step()
	assert.Equal(t, before, len(m.RaceLog()))
}

func TestWatchModelPauseBlocksTicks(t *testing.T) {
	m := newWatchFixture(t, 42)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	assert.True(t, m.paused)

	before := len(m.RaceLog())
	_, cmd := m.Update(stepMsg(time.Now()))
	assert.Equal(t, before, len(m.RaceLog()))
	assert.NotNil(t, cmd, "timer keeps running while paused")

	// n single-steps while paused.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	assert.Greater(t, len(m.RaceLog()), before)
}

func TestWatchModelQuitKey(t *testing.T) {
	m := newWatchFixture(t, 42)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, model.(*WatchModel).quitting)
	assert.Equal(t, "", model.View())
}

func TestWatchModelViewNeedsDimensions(t *testing.T) {
	m := newWatchFixture(t, 42)
	assert.Equal(t, "Loading...", m.View())

	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Step()

	view := m.View()
	assert.NotEmpty(t, view)
	assert.Contains(t, view, "space pause")
}
