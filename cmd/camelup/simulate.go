package main

import (
	"fmt"
	"time"

	"github.com/lox/camelup/internal/simulator"
)

// SimulateCmd runs many bot-vs-bot games and reports how the first
// seat's strategy performed.
type SimulateCmd struct {
	Games      int           `kong:"default='1000',help='Number of games to play'"`
	Strategies []string      `kong:"default='greedy,rand,rand',help='Strategy per seat; first seat is measured'"`
	Seed       *int64        `kong:"help='Deterministic RNG seed (optional)'"`
	Deadline   time.Duration `kong:"default='0',help='Stop early after this much wall time (0 = unbounded)'"`
	Scenario   string        `kong:"help='Load games/strategies/seed from a TOML scenario file'"`
	Output     string        `kong:"help='Write a TOML report to this path'"`
	Debug      bool          `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger("", c.Debug)

	config := simulator.Config{
		Games:      c.Games,
		Strategies: c.Strategies,
		Seed:       resolveSeed(c.Seed),
		Deadline:   c.Deadline,
		Logger:     logger,
	}
	if c.Scenario != "" {
		scenario, err := simulator.LoadScenario(c.Scenario)
		if err != nil {
			return err
		}
		config = scenario.Config(logger)
	}

	sim, err := simulator.New(config)
	if err != nil {
		return err
	}

	logger.Info("simulating", "games", config.Games, "strategies", config.Strategies, "seed", config.Seed)

	start := time.Now()
	stats, err := sim.Run()
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Println(simulator.Summary(stats, config.Strategies, elapsed))

	if c.Output != "" {
		report := simulator.NewReport(stats, config.Strategies, config.Seed, elapsed)
		if err := report.Write(c.Output); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Output)
	}
	return nil
}
