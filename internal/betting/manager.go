package betting

import (
	rand "math/rand/v2"

	"github.com/lox/camelup/internal/race"
)

// LegBetOffer is one takeable leg-winner ticket: the camel and the value
// currently on top of its pool.
type LegBetOffer struct {
	Camel       string
	TicketValue int
}

// Manager owns the shared betting inventory: per-camel leg ticket pools
// (reset every leg) and the face-down race winner/loser decks. Finish-card
// limits are the caller's concern; the manager deals only in player names.
type Manager struct {
	racers      []string
	legTickets  map[string][]int
	winnerDecks map[string][]*Bet
	loserDecks  map[string][]*Bet
	active      []*Bet
	resolved    []*Bet
}

// NewManager creates the betting inventory for the given racers.
func NewManager(racers []string) *Manager {
	m := &Manager{
		racers:      racers,
		winnerDecks: make(map[string][]*Bet),
		loserDecks:  make(map[string][]*Bet),
	}
	m.ResetLegTickets()
	return m
}

// ResetLegTickets refills every camel's leg ticket pool for a new leg.
func (m *Manager) ResetLegTickets() {
	m.legTickets = make(map[string][]int, len(m.racers))
	for _, camel := range m.racers {
		pool := make([]int, len(race.TicketValues))
		copy(pool, race.TicketValues)
		m.legTickets[camel] = pool
	}
}

// AvailableLegBets lists the top ticket of every camel pool that still has
// tickets.
func (m *Manager) AvailableLegBets() []LegBetOffer {
	var offers []LegBetOffer
	for _, camel := range m.racers {
		if pool := m.legTickets[camel]; len(pool) > 0 {
			offers = append(offers, LegBetOffer{Camel: camel, TicketValue: pool[0]})
		}
	}
	return offers
}

// TicketsRemaining returns the count left in camel's leg ticket pool.
func (m *Manager) TicketsRemaining(camel string) int {
	return len(m.legTickets[camel])
}

// TakeLegTicket removes the top ticket from camel's pool and records the
// bet. Returns false when the pool is empty, an ordinary unavailable
// outcome.
func (m *Manager) TakeLegTicket(player, camel string) (*Bet, bool) {
	pool := m.legTickets[camel]
	if len(pool) == 0 {
		return nil, false
	}
	m.legTickets[camel] = pool[1:]

	bet := &Bet{Variant: LegWinner, Player: player, Camel: camel, TicketValue: pool[0]}
	m.active = append(m.active, bet)
	return bet, true
}

// PlaceRaceBet appends a face-down card to camel's deck for the variant.
// There is no upfront cost and no pool limit here; the caller gates on the
// player's finish cards.
func (m *Manager) PlaceRaceBet(player, camel string, variant Variant) (*Bet, bool) {
	if variant != RaceWinner && variant != RaceLoser {
		return nil, false
	}
	bet := &Bet{Variant: variant, Player: player, Camel: camel}
	if variant == RaceWinner {
		m.winnerDecks[camel] = append(m.winnerDecks[camel], bet)
	} else {
		m.loserDecks[camel] = append(m.loserDecks[camel], bet)
	}
	m.active = append(m.active, bet)
	return bet, true
}

// DeckSize returns the number of face-down cards in camel's deck for the
// variant.
func (m *Manager) DeckSize(camel string, variant Variant) int {
	if variant == RaceWinner {
		return len(m.winnerDecks[camel])
	}
	return len(m.loserDecks[camel])
}

// ResolveLeg settles all active leg-winner bets against the leg's
// finishing order (furthest camel first). Returns the bets it resolved.
func (m *Manager) ResolveLeg(order []string) []*Bet {
	position := make(map[string]int, len(order))
	for i, camel := range order {
		position[camel] = i + 1
	}

	var settled []*Bet
	for _, bet := range m.active {
		if bet.Variant != LegWinner || bet.Resolved {
			continue
		}
		pos := position[bet.Camel] // 0 when the camel never ranked
		bet.Payout = legPayout(pos, bet.TicketValue)
		bet.Won = bet.Payout > 0
		bet.Resolved = true
		settled = append(settled, bet)
	}
	m.retire(settled)
	return settled
}

// ResolveRace settles every race winner and loser deck against the final
// order. The deck belonging to the actual winner (resp. last camel) is
// shuffled with a fresh permutation and revealed; everything else pays -1.
func (m *Manager) ResolveRace(order []string, rng *rand.Rand) []*Bet {
	if len(order) == 0 {
		return nil
	}
	winner := order[0]
	loser := order[len(order)-1]

	var settled []*Bet
	settled = append(settled, resolveDecks(m.winnerDecks, winner, rng)...)
	settled = append(settled, resolveDecks(m.loserDecks, loser, rng)...)
	m.retire(settled)
	return settled
}

// resolveDecks settles one variant's decks given the camel whose deck pays
// out.
func resolveDecks(decks map[string][]*Bet, correct string, rng *rand.Rand) []*Bet {
	var settled []*Bet

	winning := make([]*Bet, len(decks[correct]))
	copy(winning, decks[correct])
	rng.Shuffle(len(winning), func(i, j int) {
		winning[i], winning[j] = winning[j], winning[i]
	})
	for i, bet := range winning {
		bet.DeckPosition = i + 1
		bet.Won = true
		bet.Payout = racePayout(true, bet.DeckPosition)
		bet.Resolved = true
		settled = append(settled, bet)
	}

	for camel, deck := range decks {
		if camel == correct {
			continue
		}
		for _, bet := range deck {
			bet.Won = false
			bet.Payout = racePayout(false, 0)
			bet.Resolved = true
			settled = append(settled, bet)
		}
	}
	return settled
}

// retire moves settled bets out of the active list.
func (m *Manager) retire(settled []*Bet) {
	if len(settled) == 0 {
		return
	}
	done := make(map[*Bet]bool, len(settled))
	for _, bet := range settled {
		done[bet] = true
	}
	remaining := m.active[:0]
	for _, bet := range m.active {
		if done[bet] {
			m.resolved = append(m.resolved, bet)
		} else {
			remaining = append(remaining, bet)
		}
	}
	m.active = remaining
}

// ActiveBets returns the unresolved bets.
func (m *Manager) ActiveBets() []*Bet {
	return m.active
}

// ResolvedBets returns every settled bet, in resolution order.
func (m *Manager) ResolvedBets() []*Bet {
	return m.resolved
}
