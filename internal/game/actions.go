package game

import (
	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/race"
)

// ActionID identifies one of the four turn actions.
type ActionID int

const (
	ActionTakeLegTicket ActionID = iota + 1
	ActionSpectatorTile
	ActionPyramidTicket
	ActionRaceBet
)

func (a ActionID) String() string {
	switch a {
	case ActionTakeLegTicket:
		return "take leg winner ticket"
	case ActionSpectatorTile:
		return "place spectator tile"
	case ActionPyramidTicket:
		return "take pyramid ticket"
	case ActionRaceBet:
		return "place race bet"
	default:
		return "unknown action"
	}
}

// Action is a gated action descriptor offered to a player, carrying the
// legal parameter ranges for that action this turn.
type Action struct {
	ID          ActionID
	Description string

	// ActionTakeLegTicket: the takeable tickets.
	LegBets []betting.LegBetOffer

	// ActionSpectatorTile: legal empty slots, plus the player's current
	// tile when this would be a relocation.
	Positions    []int
	ExistingTile *race.SpectatorTile

	// ActionRaceBet: camels accepting winner/loser cards.
	RaceTargets []string
}

// ActionParams carries a player's choice for ExecuteAction. Only the
// fields relevant to the chosen action are read.
type ActionParams struct {
	Camel    string
	Position int
	Cheering bool
	Variant  betting.Variant
}
