package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/race"
)

func TestLegWinRatesConvergeToEnumeration(t *testing.T) {
	t.Parallel()

	// Same scenario as the enumeration test: only Blue's die remains,
	// exact leading probabilities are Red 4/6 and Blue 2/6.
	board := twoCamelBoard(t)
	pyramid := dice.NewPyramidWith(dice.ColoredDie(race.Blue))
	calc := NewEVCalculator(board, pyramid, race.Racers())

	rates, err := calc.LegWinRates(context.Background(), 20000, 1)
	if err != nil {
		t.Fatal(err)
	}

	exact := LeadingOdds(board, pyramid.Remaining()).Probabilities()
	for _, camel := range []string{race.Red, race.Blue} {
		if diff := math.Abs(rates[camel] - exact[camel]); diff > 0.02 {
			t.Errorf("%s: Monte Carlo %f should converge to exact %f", camel, rates[camel], exact[camel])
		}
	}
}

func TestLegBetEVsUseNextTicketPosition(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	pyramid := dice.NewPyramidWith(dice.ColoredDie(race.Blue))
	calc := NewEVCalculator(board, pyramid, race.Racers())

	first, err := calc.LegBetEVs(context.Background(), 20000, 2)
	if err != nil {
		t.Fatal(err)
	}

	if !calc.TakeTicket(race.Red) {
		t.Fatal("first Red ticket should be takeable")
	}
	second, err := calc.LegBetEVs(context.Background(), 20000, 2)
	if err != nil {
		t.Fatal(err)
	}

	// Same win rate, second ticket pays 3 instead of 5
	want := first[race.Red] * 3 / 5
	if diff := math.Abs(second[race.Red] - want); diff > 0.05 {
		t.Errorf("second ticket EV %f should scale to %f", second[race.Red], want)
	}
}

func TestLegBetEVsDegenerateCases(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	empty := dice.NewPyramidWith()
	calc := NewEVCalculator(board, empty, race.Racers())

	evs, err := calc.LegBetEVs(context.Background(), 1000, 3)
	if err != nil {
		t.Fatal(err)
	}
	for camel, ev := range evs {
		if ev != 0 {
			t.Errorf("empty pyramid should yield 0 EV, got %s=%f", camel, ev)
		}
	}

	pyramid := dice.NewPyramidWith(dice.ColoredDie(race.Blue))
	calc = NewEVCalculator(board, pyramid, race.Racers())
	evs, err = calc.LegBetEVs(context.Background(), 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	for camel, ev := range evs {
		if ev != 0 {
			t.Errorf("zero trials should yield 0 EV, got %s=%f", camel, ev)
		}
	}
}

func TestLegWinRatesLeaveLiveStateUntouched(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	pyramid := dice.NewPyramid(race.Racers(), race.Black, race.White)
	calc := NewEVCalculator(board, pyramid, race.Racers())

	if _, err := calc.LegWinRates(context.Background(), 500, 4); err != nil {
		t.Fatal(err)
	}

	if board.Camel(race.Red).Position != 4 || board.Camel(race.Blue).Position != 1 {
		t.Error("trials must not move live camels")
	}
	if pyramid.RemainingCount() != dice.LegDiceCount {
		t.Errorf("trials must not consume live dice, %d remaining", pyramid.RemainingCount())
	}
}

func TestLegWinRatesCancellation(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	pyramid := dice.NewPyramid(race.Racers(), race.Black, race.White)
	calc := NewEVCalculator(board, pyramid, race.Racers())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := calc.LegWinRates(ctx, 1_000_000, 5); err == nil {
		t.Error("cancelled context should abort the estimate")
	}
}

func TestTicketConsumption(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	pyramid := dice.NewPyramidWith(dice.ColoredDie(race.Blue))
	calc := NewEVCalculator(board, pyramid, race.Racers())

	for i := 0; i < len(race.TicketValues); i++ {
		if calc.NextTicketPosition(race.Red) != i+1 {
			t.Errorf("next position should be %d, got %d", i+1, calc.NextTicketPosition(race.Red))
		}
		if !calc.TakeTicket(race.Red) {
			t.Fatalf("ticket %d should be available", i+1)
		}
	}
	if calc.TakeTicket(race.Red) {
		t.Error("exhausted pool should refuse tickets")
	}

	// Position past the schedule pays nothing
	evs, err := calc.LegBetEVs(context.Background(), 1000, 6)
	if err != nil {
		t.Fatal(err)
	}
	if evs[race.Red] != 0 {
		t.Errorf("camel with no positions left should have 0 EV, got %f", evs[race.Red])
	}
}

func TestGreedyTicketsStopAtBaseline(t *testing.T) {
	t.Parallel()

	board := twoCamelBoard(t)
	pyramid := dice.NewPyramidWith(dice.ColoredDie(race.Blue))
	calc := NewEVCalculator(board, pyramid, race.Racers())

	rates := map[string]float64{
		race.Red:    0.9,
		race.Blue:   0.05,
		race.Green:  0.02,
		race.Yellow: 0.02,
		race.Purple: 0.01,
	}

	picks := calc.GreedyTickets(rates)

	// Red tickets are worth 4.5, 2.7 and 1.8; the fourth (0.9) loses to
	// the pyramid-ticket baseline of 1.0, as does everything else.
	if len(picks) != 3 {
		t.Fatalf("expected 3 picks, got %v", picks)
	}
	for _, camel := range picks {
		if camel != race.Red {
			t.Errorf("every pick should be Red, got %v", picks)
		}
	}
	if calc.TicketsRemaining(race.Red) != 1 {
		t.Errorf("one Red ticket should remain, got %d", calc.TicketsRemaining(race.Red))
	}
}
