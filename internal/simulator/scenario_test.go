package simulator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/camelup/internal/statistics"
)

func TestLoadScenario(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scenario.toml")
	body := `
games = 50
strategies = ["greedy", "rand", "rand"]
seed = 1234
deadline = "30s"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if s.Games != 50 {
		t.Errorf("expected 50 games, got %d", s.Games)
	}
	if len(s.Strategies) != 3 || s.Strategies[0] != "greedy" {
		t.Errorf("unexpected strategies %v", s.Strategies)
	}
	if s.Deadline.Duration != 30*time.Second {
		t.Errorf("expected 30s deadline, got %v", s.Deadline.Duration)
	}

	config := s.Config(testLogger())
	if config.Seed != 1234 || config.Deadline != 30*time.Second {
		t.Errorf("scenario not carried into config: %+v", config)
	}
}

func TestLoadScenarioBadDuration(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(`deadline = "soon"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Fatal("expected error for unparseable deadline")
	}
}

func TestReportRoundTrip(t *testing.T) {
	t.Parallel()

	stats := &statistics.Statistics{}
	stats.Add(statistics.GameResult{NetCoins: 4, Legs: 3, Winner: "Red", TookFirst: true, BetsPlaced: 2, BetsWon: 1})
	stats.Add(statistics.GameResult{NetCoins: -2, Legs: 5, Winner: "Blue", BetsPlaced: 1})

	report := NewReport(stats, []string{"greedy", "rand"}, 99, 1500*time.Millisecond)
	if report.Games != 2 || report.MeanCoins != 1 {
		t.Errorf("unexpected report numbers: %+v", report)
	}

	path := filepath.Join(t.TempDir(), "report.toml")
	if err := report.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded Report
	if _, err := toml.DecodeFile(path, &decoded); err != nil {
		t.Fatalf("decoding written report: %v", err)
	}
	if decoded.Games != 2 || decoded.Winners["Red"] != 1 || decoded.Elapsed != "1.5s" {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
