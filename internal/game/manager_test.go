package game

import (
	"context"
	"testing"

	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/gameid"
	"github.com/lox/camelup/internal/race"
	"github.com/lox/camelup/internal/randutil"
)

// drawAgent always takes a pyramid ticket when offered.
type drawAgent struct{}

func (drawAgent) ChooseAction(p *Player, actions []Action) (ActionID, ActionParams, bool) {
	for _, a := range actions {
		if a.ID == ActionPyramidTicket {
			return ActionPyramidTicket, ActionParams{}, true
		}
	}
	return 0, ActionParams{}, false
}

func newTestManager(t *testing.T, seed int64, names ...string) *Manager {
	t.Helper()
	players := make([]*Player, len(names))
	for i, name := range names {
		players[i] = NewPlayer(name)
	}
	return NewManager(players, race.DefaultTrackLength, randutil.New(seed), testLogger())
}

// placeCamels puts the racers on fixed slots and the crazy camels on slot
// 14 so tests control the ranking.
func placeCamels(m *Manager, racerSlots map[string]int) {
	for _, c := range race.NewCamels(race.DefaultTrackLength) {
		if c.Crazy {
			m.Board().PlaceCamel(c, 14)
			continue
		}
		m.Board().PlaceCamel(c, racerSlots[c.Name])
	}
}

func TestSetupBoardPlacesEveryCamel(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 42, "alice", "bob")
	m.SetupBoard()

	if err := gameid.Validate(m.ID()); err != nil {
		t.Errorf("manager minted a bad race ID: %v", err)
	}
	if got := m.Board().CamelCount(); got != 7 {
		t.Fatalf("CamelCount = %d, want 7", got)
	}
	for _, name := range race.Racers() {
		c := m.Board().Camel(name)
		if c.Position < 1 || c.Position > 3 {
			t.Errorf("%s setup at slot %d, want 1..3", name, c.Position)
		}
	}
	for _, name := range []string{race.Black, race.White} {
		c := m.Board().Camel(name)
		if c.Position < 14 || c.Position > 16 {
			t.Errorf("%s setup at slot %d, want 14..16", name, c.Position)
		}
	}
}

func TestPlayLegDrawsAllSixDice(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 9, "alice", "bob")
	placeCamels(m, map[string]int{})

	agents := map[string]Agent{"alice": drawAgent{}, "bob": drawAgent{}}
	if err := m.PlayLeg(agents); err != nil {
		t.Fatal(err)
	}

	if got := m.Pyramid().DrawnCount(); got != dice.LegDiceCount {
		t.Errorf("DrawnCount = %d, want %d", got, dice.LegDiceCount)
	}
	if !m.Turns().IsLegOver() {
		t.Error("leg not marked over")
	}
	if m.IsFinished() {
		t.Error("race finished from the back of the track")
	}
	if got := m.Leg(); got != 1 {
		t.Errorf("Leg = %d, want 1", got)
	}
}

func TestPlayLegStopsWhenRaceEnds(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 5, "alice", "bob")
	// Every racer one step from the finish: the first colored die ends it.
	for _, c := range race.NewCamels(race.DefaultTrackLength) {
		if c.Crazy {
			m.Board().PlaceCamel(c, 3)
		} else {
			m.Board().PlaceCamel(c, 15)
		}
	}

	agents := map[string]Agent{"alice": drawAgent{}, "bob": drawAgent{}}
	if err := m.PlayLeg(agents); err != nil {
		t.Fatal(err)
	}

	if !m.IsFinished() {
		t.Fatal("race not finished")
	}
	if got := m.Pyramid().DrawnCount(); got > 2 {
		t.Errorf("DrawnCount = %d, want the leg interrupted within 2 draws", got)
	}
	w := m.Winner()
	if w == nil || w.Crazy {
		t.Fatalf("Winner = %v, want a forward racer", w)
	}
	if w.Position < 16 {
		t.Errorf("winner at slot %d, want the finish", w.Position)
	}
}

func TestResolveLegEndPaysAndResets(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 1, "alice", "bob")
	placeCamels(m, map[string]int{race.Red: 5, race.Blue: 3})
	alice, bob := m.Players[0], m.Players[1]

	m.Turns().ExecuteAction(alice, ActionTakeLegTicket, ActionParams{Camel: race.Red})
	m.Turns().ExecuteAction(bob, ActionTakeLegTicket, ActionParams{Camel: race.Blue})
	alice.PyramidTickets = 2

	settled := m.ResolveLegEnd()
	if len(settled) != 2 {
		t.Fatalf("settled %d bets, want 2", len(settled))
	}

	// Red won the leg: ticket value 5. Blue was second: flat 1. Plus two
	// pyramid tickets at a coin each for alice.
	if got, want := alice.Money, StartingMoney+5+2; got != want {
		t.Errorf("alice money = %d, want %d", got, want)
	}
	if got, want := bob.Money, StartingMoney+1; got != want {
		t.Errorf("bob money = %d, want %d", got, want)
	}
	if got := m.Bank().Balance(); got != BankReserve-2 {
		t.Errorf("bank = %d, want %d", got, BankReserve-2)
	}

	if alice.PyramidTickets != 0 {
		t.Error("pyramid tickets not cleared at leg end")
	}
	if got := m.bets.TicketsRemaining(race.Red); got != len(race.TicketValues) {
		t.Errorf("Red pool = %d tickets after reset, want %d", got, len(race.TicketValues))
	}
	if len(alice.Bets) != 0 {
		t.Error("resolved leg bet still active on alice")
	}
	if got := m.supply.Available(); got != PyramidTicketsPerLeg {
		t.Errorf("pyramid supply = %d after reset, want %d", got, PyramidTicketsPerLeg)
	}
}

func TestResolveRaceEndSettlesDecks(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 1, "alice", "bob", "carol")
	placeCamels(m, map[string]int{race.Red: 16, race.Blue: 3})
	alice, bob, carol := m.Players[0], m.Players[1], m.Players[2]

	m.Turns().ExecuteAction(alice, ActionRaceBet, ActionParams{Camel: race.Red, Variant: betting.RaceWinner})
	m.Turns().ExecuteAction(bob, ActionRaceBet, ActionParams{Camel: race.Green, Variant: betting.RaceWinner})
	m.Turns().ExecuteAction(carol, ActionRaceBet, ActionParams{Camel: race.Blue, Variant: betting.RaceLoser})

	settled := m.ResolveRaceEnd()
	if len(settled) != 3 {
		t.Fatalf("settled %d bets, want 3", len(settled))
	}

	// Alice's card is alone in the winning deck: top payout 8. The wrong
	// decks pay -1, floored at zero coins overall.
	if got, want := alice.Money, StartingMoney+8; got != want {
		t.Errorf("alice money = %d, want %d", got, want)
	}
	if got, want := bob.Money, StartingMoney-1; got != want {
		t.Errorf("bob money = %d, want %d", got, want)
	}
	if got, want := carol.Money, StartingMoney-1; got != want {
		t.Errorf("carol money = %d, want %d", got, want)
	}

	stats := m.Statistics()
	if perf := stats.Performances["alice"]; perf.BetsWon != 1 || perf.FinalMoney != alice.Money {
		t.Errorf("alice performance = %+v", perf)
	}
}

func TestDecisionHelpers(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, 21, "alice")
	placeCamels(m, map[string]int{race.Red: 4, race.Blue: 1})

	report := m.LeadingProbabilities()
	probs := report.Probabilities()
	sum := 0.0
	for name, p := range probs {
		sum += p
		if (name == race.Black || name == race.White) && p > 0 {
			t.Errorf("crazy camel %s has leading probability %f", name, p)
		}
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}

	evs, err := m.LegBetExpectedValues(context.Background(), 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(evs) != len(race.Racers()) {
		t.Errorf("EVs for %d camels, want %d", len(evs), len(race.Racers()))
	}
}
