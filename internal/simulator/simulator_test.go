package simulator

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/camelup/internal/statistics"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestNew(t *testing.T) {
	sim, err := New(Config{
		Games:      10,
		Strategies: []string{"rand", "rand", "greedy"},
		Seed:       12345,
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if sim.config.Games != 10 {
		t.Errorf("Expected 10 games, got %d", sim.config.Games)
	}
	if sim.config.Clock == nil {
		t.Error("Expected a real clock to be defaulted")
	}

	if _, err := New(Config{Games: 0, Strategies: []string{"rand", "rand"}, Logger: testLogger()}); err == nil {
		t.Error("Expected error for zero games")
	}
	if _, err := New(Config{Games: 1, Strategies: []string{"rand"}, Logger: testLogger()}); err == nil {
		t.Error("Expected error for a single seat")
	}
}

func TestSimulator_Run_RandBots(t *testing.T) {
	sim, err := New(Config{
		Games:      5,
		Strategies: []string{"rand", "rand", "rand"},
		Seed:       12345,
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	stats, err := sim.Run()
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Games != 5 {
		t.Errorf("Expected 5 games, got %d", stats.Games)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("statistics invalid: %v", err)
	}
	winners := 0
	for _, count := range stats.WinnerCounts {
		winners += count
	}
	if winners != 5 {
		t.Errorf("Expected a winning camel per game, got %d", winners)
	}
	if stats.MeanLegs() < 1 {
		t.Errorf("Expected at least one leg per game, got %f", stats.MeanLegs())
	}
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	config := Config{
		Games:      3,
		Strategies: []string{"greedy", "rand"},
		Seed:       777,
		Logger:     testLogger(),
	}

	first, err := mustRun(t, config)
	if err != nil {
		t.Fatal(err)
	}
	second, err := mustRun(t, config)
	if err != nil {
		t.Fatal(err)
	}

	if first.SumCoins != second.SumCoins || first.GamesWon != second.GamesWon {
		t.Errorf("Same seed produced different results: %+v vs %+v", first, second)
	}
}

func TestSimulator_Run_UnknownStrategy(t *testing.T) {
	sim, err := New(Config{
		Games:      1,
		Strategies: []string{"bluff", "rand"},
		Seed:       1,
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sim.Run(); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestSimulator_DeadlineStopsRun(t *testing.T) {
	mock := quartz.NewMock(t)
	trap := mock.Trap().Since()

	sim, err := New(Config{
		Games:      100,
		Strategies: []string{"rand", "rand"},
		Seed:       1,
		Deadline:   time.Second,
		Logger:     testLogger(),
		Clock:      mock,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Advance the mock clock 600ms on every deadline check: the first
	// game plays, the second check trips the one-second deadline.
	done := make(chan struct{})
	go func() {
		defer close(done)
		var advanced time.Duration
		for advanced <= time.Second {
			call, err := trap.Wait(context.Background())
			if err != nil {
				return
			}
			mock.Advance(600 * time.Millisecond)
			advanced += 600 * time.Millisecond
			call.Release(context.Background())
		}
	}()

	stats, err := sim.Run()
	<-done
	trap.Close()

	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if stats.Games != 1 {
		t.Errorf("Expected 1 game before the deadline, got %d", stats.Games)
	}
}

func TestSummary(t *testing.T) {
	sim, err := New(Config{
		Games:      2,
		Strategies: []string{"rand", "rand"},
		Seed:       42,
		Logger:     testLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}
	stats, err := sim.Run()
	if err != nil {
		t.Fatal(err)
	}

	out := Summary(stats, []string{"rand", "rand"}, 3*time.Second)
	for _, want := range []string{"Completed 2 games", "Net coins/game", "Winning camels"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}

func mustRun(t *testing.T, config Config) (*statistics.Statistics, error) {
	t.Helper()
	sim, err := New(config)
	if err != nil {
		return nil, err
	}
	return sim.Run()
}
