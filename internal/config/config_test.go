package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/camelup/internal/race"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "camelup.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.TrackLength != race.DefaultTrackLength {
		t.Errorf("TrackLength = %d, want %d", cfg.Game.TrackLength, race.DefaultTrackLength)
	}
	if len(cfg.Players) != 3 {
		t.Errorf("Players = %d, want 3 defaults", len(cfg.Players))
	}
	if cfg.Players[0].Strategy != "human" {
		t.Errorf("first default seat strategy = %q, want human", cfg.Players[0].Strategy)
	}
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
game {
  track_length = 12
  trials       = 5000
  log_level    = "debug"
}

player "alice" {
  strategy = "human"
}

player "hal" {
  strategy = "ev"
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.TrackLength != 12 {
		t.Errorf("TrackLength = %d, want 12", cfg.Game.TrackLength)
	}
	if cfg.Game.Trials != 5000 {
		t.Errorf("Trials = %d, want 5000", cfg.Game.Trials)
	}
	if cfg.Game.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Game.LogLevel)
	}
	if len(cfg.Players) != 2 || cfg.Players[1].Name != "hal" || cfg.Players[1].Strategy != "ev" {
		t.Errorf("unexpected players: %+v", cfg.Players)
	}
}

func TestLoadAppliesDefaultsForOmittedValues(t *testing.T) {
	path := writeConfig(t, `
game {}

player "a" {
  strategy = "rand"
}

player "b" {
  strategy = "greedy"
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.TrackLength != race.DefaultTrackLength {
		t.Errorf("TrackLength = %d, want default %d", cfg.Game.TrackLength, race.DefaultTrackLength)
	}
	if cfg.Game.Trials != 10000 {
		t.Errorf("Trials = %d, want default 10000", cfg.Game.Trials)
	}
	if cfg.Game.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Game.LogLevel)
	}
}

func TestLoadRejectsInvalidHCL(t *testing.T) {
	path := writeConfig(t, `game {`)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameConfig)
		wantErr bool
	}{
		{name: "defaults are valid"},
		{name: "short track", mutate: func(c *GameConfig) { c.Game.TrackLength = 2 }, wantErr: true},
		{name: "negative trials", mutate: func(c *GameConfig) { c.Game.Trials = -1 }, wantErr: true},
		{name: "single player", mutate: func(c *GameConfig) { c.Players = c.Players[:1] }, wantErr: true},
		{name: "duplicate names", mutate: func(c *GameConfig) { c.Players[1].Name = c.Players[0].Name }, wantErr: true},
		{name: "missing strategy", mutate: func(c *GameConfig) { c.Players[1].Strategy = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
