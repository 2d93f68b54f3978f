package main

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/bot"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
	"github.com/lox/camelup/internal/tui"
)

// WatchCmd races bots against each other in the terminal UI.
type WatchCmd struct {
	Strategies []string      `kong:"default='greedy,ev,rand',help='Bot strategy per seat'"`
	Delay      time.Duration `kong:"default='400ms',help='Pause between turns'"`
	Seed       *int64        `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *WatchCmd) Run() error {
	// Log output would corrupt the alternate screen.
	logger := log.NewWithOptions(io.Discard, log.Options{})

	seed := resolveSeed(c.Seed)
	players := make([]*game.Player, len(c.Strategies))
	for i := range c.Strategies {
		players[i] = game.NewPlayer(fmt.Sprintf("%s-%d", c.Strategies[i], i+1))
	}

	mgr := game.NewManager(players, race.DefaultTrackLength, randutil.New(seed), logger)
	mgr.SetupBoard()

	agents := map[string]game.Agent{}
	for i, p := range players {
		agent, err := bot.New(c.Strategies[i], mgr, randutil.Derive(seed, i), logger)
		if err != nil {
			return err
		}
		agents[p.Name] = agent
	}

	model := tui.NewWatchModel(mgr, agents, c.Delay, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
