package main

import (
	"context"
	"fmt"
	"strings"

	rand "math/rand/v2"

	"github.com/lox/camelup/internal/analysis"
	"github.com/lox/camelup/internal/display"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
)

// OddsCmd deals an opening board and prints the exact chance of each
// camel leading once the next die is drawn.
type OddsCmd struct {
	Rolls int    `kong:"default='0',help='Fast-forward this many dice before computing odds'"`
	Seed  *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *OddsCmd) Run() error {
	mgr, rng := setupDemoGame(resolveSeed(c.Seed), c.Debug)
	fastForward(mgr, rng, c.Rolls)

	fmt.Println(display.Board(mgr.Board(), mgr.Tiles()))
	fmt.Println(display.ProbabilityTable(mgr.LeadingProbabilities()))
	return nil
}

// EVCmd deals an opening board and estimates each leg ticket's expected
// value by Monte Carlo playout, with a greedy take-while-positive
// suggestion.
type EVCmd struct {
	Trials int    `kong:"default='10000',help='Monte Carlo trials per estimate'"`
	Rolls  int    `kong:"default='0',help='Fast-forward this many dice before estimating'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *EVCmd) Run() error {
	seed := resolveSeed(c.Seed)
	mgr, rng := setupDemoGame(seed, c.Debug)
	fastForward(mgr, rng, c.Rolls)

	ctx := context.Background()
	evs, err := mgr.LegBetExpectedValues(ctx, c.Trials)
	if err != nil {
		return err
	}

	fmt.Println(display.Board(mgr.Board(), mgr.Tiles()))
	fmt.Println(display.EVTable(evs))

	calc := analysis.NewEVCalculator(mgr.Board(), mgr.Pyramid(), race.Racers())
	rates, err := calc.LegWinRates(ctx, c.Trials, rng.Int64())
	if err != nil {
		return err
	}
	if picks := calc.GreedyTickets(rates); len(picks) > 0 {
		fmt.Println(display.InfoStyle.Render("Worth taking now: " + strings.Join(picks, ", ")))
	} else {
		fmt.Println(display.InfoStyle.Render("No ticket beats drawing from the pyramid"))
	}
	return nil
}

// setupDemoGame builds a two-seat game with the opening dice rolled, for
// commands that only inspect the board state.
func setupDemoGame(seed int64, debug bool) (*game.Manager, *rand.Rand) {
	logger := setupLogger("", debug)
	logger.Debug("dealing board", "seed", seed)

	rng := randutil.New(seed)
	players := []*game.Player{game.NewPlayer("a"), game.NewPlayer("b")}
	mgr := game.NewManager(players, race.DefaultTrackLength, rng, logger)
	mgr.SetupBoard()
	return mgr, rng
}

// fastForward draws n leg dice and applies the moves, so odds can be
// inspected mid-leg.
func fastForward(mgr *game.Manager, rng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		_, face, ok := mgr.Pyramid().DrawRandom(rng)
		if !ok {
			return
		}
		if camel := mgr.Board().Camel(face.Camel); camel != nil {
			mgr.Board().MoveStack(camel, face.Steps)
		}
	}
}
