// Package config loads game configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/camelup/internal/race"
)

// GameConfig represents the complete game configuration.
type GameConfig struct {
	Game    GameSettings   `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// GameSettings contains game-level configuration.
type GameSettings struct {
	TrackLength int    `hcl:"track_length,optional"`
	Trials      int    `hcl:"trials,optional"` // Monte Carlo sample size per EV query
	LogLevel    string `hcl:"log_level,optional"`
}

// PlayerConfig defines one seat at the table.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"` // "human" or a bot strategy name
}

// DefaultConfig returns the default game configuration: one human seat
// against two bots on a standard track.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Game: GameSettings{
			TrackLength: race.DefaultTrackLength,
			Trials:      10000,
			LogLevel:    "info",
		},
		Players: []PlayerConfig{
			{Name: "you", Strategy: "human"},
			{Name: "greedy-bot", Strategy: "greedy"},
			{Name: "ev-bot", Strategy: "ev"},
		},
	}
}

// Load loads game configuration from an HCL file. A missing file yields
// the defaults.
func Load(filename string) (*GameConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config GameConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Game.TrackLength == 0 {
		config.Game.TrackLength = race.DefaultTrackLength
	}
	if config.Game.Trials == 0 {
		config.Game.Trials = 10000
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = "info"
	}
	if len(config.Players) == 0 {
		config.Players = DefaultConfig().Players
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration for internal consistency.
func (c *GameConfig) Validate() error {
	if c.Game.TrackLength < 4 {
		return fmt.Errorf("track_length %d is too short", c.Game.TrackLength)
	}
	if c.Game.Trials < 0 {
		return fmt.Errorf("trials must not be negative, got %d", c.Game.Trials)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("need at least 2 players, got %d", len(c.Players))
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player with empty name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Strategy == "" {
			return fmt.Errorf("player %q has no strategy", p.Name)
		}
	}
	return nil
}
