package analysis

import (
	"context"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
)

// PyramidTicketEV is the fixed baseline value of taking a pyramid ticket
// instead of a betting ticket: one coin at leg end, guaranteed.
const PyramidTicketEV = 1.0

// EVCalculator estimates leg-winner ticket values by Monte Carlo
// completion of the current leg. It keeps its own per-camel ticket
// position bookkeeping, separate from the shared betting inventory, so
// repeated queries answer "what if I take the next ticket now".
type EVCalculator struct {
	board     *race.Board
	pyramid   *dice.Pyramid
	racers    []string
	remaining map[string]int
	taken     map[string]int
}

// NewEVCalculator wraps the live board and pyramid. Neither is ever
// mutated; every trial runs on clones.
func NewEVCalculator(board *race.Board, pyramid *dice.Pyramid, racers []string) *EVCalculator {
	e := &EVCalculator{
		board:     board,
		pyramid:   pyramid,
		racers:    racers,
		remaining: make(map[string]int, len(racers)),
		taken:     make(map[string]int, len(racers)),
	}
	for _, camel := range racers {
		e.remaining[camel] = len(race.TicketValues)
	}
	return e
}

// TicketsRemaining returns how many tickets the estimator still considers
// available for camel.
func (e *EVCalculator) TicketsRemaining(camel string) int {
	return e.remaining[camel]
}

// NextTicketPosition returns the 1-based position the next ticket taken
// for camel would occupy.
func (e *EVCalculator) NextTicketPosition(camel string) int {
	return e.taken[camel] + 1
}

// TakeTicket consumes one ticket position for camel. Returns false when
// the estimator's pool for that camel is exhausted.
func (e *EVCalculator) TakeTicket(camel string) bool {
	if e.remaining[camel] <= 0 {
		return false
	}
	e.remaining[camel]--
	e.taken[camel]++
	return true
}

// ticketPayout is the per-ticket payout for a winning camel by ticket
// position; positions past the schedule pay nothing.
func ticketPayout(position int) int {
	if position >= 1 && position <= len(race.TicketValues) {
		return race.TicketValues[position-1]
	}
	return 0
}

// LegWinRates estimates, for each racer, the probability of leading when
// the current leg ends, from trials independent completions of the leg.
// Each trial clones the board and undrawn dice, draws uniformly without
// replacement until the pyramid empties or the race ends, then reads the
// leader. Trials are split across parallel workers with independent RNG
// streams derived from seed; zero trials or an empty pyramid yields an
// all-zero map.
func (e *EVCalculator) LegWinRates(ctx context.Context, trials int, seed int64) (map[string]float64, error) {
	rates := make(map[string]float64, len(e.racers))
	for _, camel := range e.racers {
		rates[camel] = 0
	}
	if trials <= 0 || e.pyramid.IsEmpty() {
		return rates, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > trials {
		workers = trials
	}

	counts := make([]map[string]int, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		share := trials / workers
		if w < trials%workers {
			share++
		}
		g.Go(func() error {
			rng := randutil.Derive(seed, w)
			local := make(map[string]int, len(e.racers))
			for i := 0; i < share; i++ {
				if i%256 == 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					default:
					}
				}
				if leader := e.runTrial(rng); leader != "" {
					local[leader]++
				}
			}
			counts[w] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, local := range counts {
		for camel, n := range local {
			rates[camel] += float64(n) / float64(trials)
		}
	}
	return rates, nil
}

// runTrial completes one leg on disposable state and returns the leading
// racer's name, or "" when no racer is on the board.
func (e *EVCalculator) runTrial(rng *rand.Rand) string {
	board := e.board.Clone()
	pyramid := e.pyramid.Clone()

	for {
		_, face, ok := pyramid.DrawRandom(rng)
		if !ok {
			break
		}
		camel := board.Camel(face.Camel)
		if camel == nil {
			continue
		}
		board.MoveStack(camel, face.Steps)
		if board.IsRaceOver() {
			break
		}
	}

	if leader := board.LeadingRacer(); leader != nil {
		return leader.Name
	}
	return ""
}

// LegBetEVs converts win rates into per-ticket expected values using each
// camel's next available ticket position.
func (e *EVCalculator) LegBetEVs(ctx context.Context, trials int, seed int64) (map[string]float64, error) {
	rates, err := e.LegWinRates(ctx, trials, seed)
	if err != nil {
		return nil, err
	}
	evs := make(map[string]float64, len(rates))
	for camel, rate := range rates {
		evs[camel] = rate * float64(ticketPayout(e.NextTicketPosition(camel)))
	}
	return evs, nil
}

// GreedyTickets repeatedly takes the highest-EV still-available ticket
// while its expected value beats the pyramid-ticket baseline, consuming
// the estimator's own positions as it goes. Returns the camels taken, in
// order.
func (e *EVCalculator) GreedyTickets(winRates map[string]float64) []string {
	var picks []string
	for {
		best := ""
		bestEV := PyramidTicketEV
		for _, camel := range e.racers {
			if e.remaining[camel] <= 0 {
				continue
			}
			ev := winRates[camel] * float64(ticketPayout(e.NextTicketPosition(camel)))
			if ev > bestEV {
				best, bestEV = camel, ev
			}
		}
		if best == "" {
			return picks
		}
		e.TakeTicket(best)
		picks = append(picks, best)
	}
}
