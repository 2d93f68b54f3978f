// Package simulator runs bot-vs-bot Camel Up races in bulk and collects
// result statistics for the first seat's strategy.
package simulator

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/camelup/internal/bot"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
	"github.com/lox/camelup/internal/statistics"
)

// maxLegsPerGame bounds a single race. Every leg moves each racer at
// least one slot forward, so a standard track finishes well within it.
const maxLegsPerGame = 32

// Config holds configuration for running simulations.
type Config struct {
	Games      int
	Strategies []string // one per seat; the first seat is the focal player
	Seed       int64
	Deadline   time.Duration // zero means unbounded
	Logger     *log.Logger
	Clock      quartz.Clock // nil means the real clock
}

// Simulator runs race simulations.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration.
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("simulator: games must be positive, got %d", config.Games)
	}
	if len(config.Strategies) < 2 {
		return nil, fmt.Errorf("simulator: need at least 2 seats, got %d", len(config.Strategies))
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}, nil
}

// Run executes the simulation and returns the focal player's statistics.
// A configured deadline stops the run early with whatever games finished.
func (s *Simulator) Run() (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	start := s.config.Clock.Now()

	for g := 0; g < s.config.Games; g++ {
		if s.config.Deadline > 0 && s.config.Clock.Since(start) > s.config.Deadline {
			s.config.Logger.Warn("deadline reached", "games_played", g, "games_requested", s.config.Games)
			break
		}

		gameSeed := s.config.Seed + int64(g)
		result, err := s.playGame(gameSeed)
		if err != nil {
			return nil, fmt.Errorf("game %d (seed %d): %w", g+1, gameSeed, err)
		}
		stats.Add(result)
	}

	if stats.Games > 0 {
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed: %w", err)
		}
	}
	return stats, nil
}

// playGame runs one full race with a derived seed and reports the first
// seat's result.
func (s *Simulator) playGame(gameSeed int64) (statistics.GameResult, error) {
	rng := randutil.New(gameSeed)

	players := make([]*game.Player, len(s.config.Strategies))
	for i, strategy := range s.config.Strategies {
		players[i] = game.NewPlayer(fmt.Sprintf("%s-%d", strategy, i+1))
	}

	m := game.NewManager(players, race.DefaultTrackLength, rng, s.config.Logger)
	m.SetupBoard()

	agents := make(map[string]game.Agent, len(players))
	for i, strategy := range s.config.Strategies {
		agent, err := bot.New(strategy, m, randutil.Derive(gameSeed, i), s.config.Logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		agents[players[i].Name] = agent
	}

	for {
		if err := m.PlayLeg(agents); err != nil {
			return statistics.GameResult{}, err
		}
		// The final leg is scored before the race decks are revealed.
		m.ResolveLegEnd()
		if m.IsFinished() {
			break
		}
		if m.Leg() >= maxLegsPerGame {
			return statistics.GameResult{}, fmt.Errorf("race still running after %d legs", maxLegsPerGame)
		}
	}
	m.ResolveRaceEnd()

	focal := players[0]
	tookFirst := true
	for _, p := range players[1:] {
		if p.Money > focal.Money {
			tookFirst = false
		}
	}

	perf := m.Statistics().Performances[focal.Name]
	return statistics.GameResult{
		NetCoins:   float64(focal.Money - game.StartingMoney),
		Seed:       gameSeed,
		Legs:       m.Leg(),
		Winner:     m.Winner().Name,
		TookFirst:  tookFirst,
		BetsPlaced: perf.BetsPlaced,
		BetsWon:    perf.BetsWon,
	}, nil
}

// Summary formats the run for terminal output.
func Summary(stats *statistics.Statistics, strategies []string, elapsed time.Duration) string {
	var b strings.Builder
	focal := strategies[0]
	opponents := strings.Join(strategies[1:], ",")

	fmt.Fprintf(&b, "Completed %d games in %.1f seconds\n", stats.Games, elapsed.Seconds())
	fmt.Fprintf(&b, "Focal strategy %s vs [%s]\n\n", focal, opponents)
	lo, hi := stats.ConfidenceInterval95()
	fmt.Fprintf(&b, "Net coins/game: %+.2f (95%% CI %+.2f to %+.2f)\n", stats.Mean(), lo, hi)
	fmt.Fprintf(&b, "Median: %+.2f  StdDev: %.2f\n", stats.Median(), stats.StdDev())
	fmt.Fprintf(&b, "Table wins: %.1f%%  Bet hit rate: %.1f%%\n", stats.WinRate()*100, stats.BetHitRate()*100)
	fmt.Fprintf(&b, "Race length: %.1f legs on average (max %d)\n", stats.MeanLegs(), stats.MaxLegs)

	if len(stats.WinnerCounts) > 0 {
		fmt.Fprintf(&b, "Winning camels:")
		for _, camel := range race.Racers() {
			if count := stats.WinnerCounts[camel]; count > 0 {
				fmt.Fprintf(&b, " %s=%d", camel, count)
			}
		}
		fmt.Fprintf(&b, "\n")
	}
	return b.String()
}
