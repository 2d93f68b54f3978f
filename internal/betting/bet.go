// Package betting holds bet lifecycle and payout resolution: leg-winner
// tickets with fixed values, and deck-based race winner/loser bets settled
// by shuffled reveal order.
package betting

import "fmt"

// Variant tags the bet kind. Variant-specific payout logic hangs off the
// tag rather than a type hierarchy.
type Variant int

const (
	LegWinner Variant = iota
	RaceWinner
	RaceLoser
)

func (v Variant) String() string {
	switch v {
	case LegWinner:
		return "leg winner"
	case RaceWinner:
		return "race winner"
	case RaceLoser:
		return "race loser"
	default:
		return "unknown"
	}
}

// RaceDeckPayouts pays the i-th card revealed from the correct camel's
// deck; every later card, and every card in a wrong deck, pays -1.
var RaceDeckPayouts = []int{8, 5, 3, 2, 1}

// Bet is a single placed bet. Race bets live face down in a per-camel deck
// until resolution assigns their DeckPosition.
type Bet struct {
	Variant      Variant
	Player       string
	Camel        string
	TicketValue  int // leg bets only, fixed at placement
	DeckPosition int // race bets only, assigned at reveal
	Resolved     bool
	Won          bool
	Payout       int
}

func (b *Bet) String() string {
	status := "active"
	switch {
	case b.Resolved && b.Won:
		status = "won"
	case b.Resolved:
		status = "lost"
	}
	return fmt.Sprintf("%s bet by %s on %s (%s)", b.Variant, b.Player, b.Camel, status)
}

// legPayout settles a leg-winner bet from the target camel's finishing
// position (1-based).
func legPayout(position, ticketValue int) int {
	switch position {
	case 1:
		return ticketValue
	case 2:
		return 1
	default:
		return -1
	}
}

// racePayout settles a race deck card from its reveal position. Cards in
// the wrong camel's deck pass won=false.
func racePayout(won bool, deckPosition int) int {
	if !won {
		return -1
	}
	if deckPosition >= 1 && deckPosition <= len(RaceDeckPayouts) {
		return RaceDeckPayouts[deckPosition-1]
	}
	return -1
}
