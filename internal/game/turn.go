package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/race"
)

// TurnManager runs the per-leg action state machine: it offers each player
// their gated actions, executes the chosen one, and tracks leg end and the
// starting-player marker. Action unavailability is an ordinary outcome
// reported as (false, reason); only corrupted board state panics.
type TurnManager struct {
	players []*Player
	board   *race.Board
	tiles   *race.SpectatorTiles
	pyramid *dice.Pyramid
	supply  *PyramidSupply
	bets    *betting.Manager
	bank    *Bank
	rng     *rand.Rand
	logger  *log.Logger

	currentIdx  int
	startingIdx int
	legEnded    bool

	// lastPyramidTaker drives the starting-player rotation at leg end.
	lastPyramidTaker string
}

// NewTurnManager wires the shared state objects together. The first
// player in order holds the starting marker.
func NewTurnManager(players []*Player, board *race.Board, tiles *race.SpectatorTiles,
	pyramid *dice.Pyramid, supply *PyramidSupply, bets *betting.Manager,
	bank *Bank, rng *rand.Rand, logger *log.Logger) *TurnManager {
	return &TurnManager{
		players: players,
		board:   board,
		tiles:   tiles,
		pyramid: pyramid,
		supply:  supply,
		bets:    bets,
		bank:    bank,
		rng:     rng,
		logger:  logger,
	}
}

// CurrentPlayer returns the player whose turn it is.
func (tm *TurnManager) CurrentPlayer() *Player {
	return tm.players[tm.currentIdx]
}

// StartingPlayer returns the holder of the starting-player marker.
func (tm *TurnManager) StartingPlayer() *Player {
	return tm.players[tm.startingIdx]
}

// AdvanceTurn moves to the next player in order.
func (tm *TurnManager) AdvanceTurn() {
	tm.currentIdx = (tm.currentIdx + 1) % len(tm.players)
}

// IsLegOver reports whether all dice for the leg have been drawn.
func (tm *TurnManager) IsLegOver() bool {
	return tm.legEnded
}

// IsRaceOver reports whether a racer has reached the finish.
func (tm *TurnManager) IsRaceOver() bool {
	return tm.board.IsRaceOver()
}

// LastPyramidTaker returns the name of the player who took this leg's
// last pyramid ticket, "" if none was taken.
func (tm *TurnManager) LastPyramidTaker() string {
	return tm.lastPyramidTaker
}

// AvailableActions returns the gated action descriptors legal for the
// player this turn, with embedded parameter ranges.
func (tm *TurnManager) AvailableActions(p *Player) []Action {
	var actions []Action

	if offers := tm.bets.AvailableLegBets(); len(offers) > 0 {
		actions = append(actions, Action{
			ID:          ActionTakeLegTicket,
			Description: "take a leg winner betting ticket",
			LegBets:     offers,
		})
	}

	positions := tm.tiles.AvailablePositions(tm.board)
	existing := tm.tiles.OwnerTile(p.Name)
	if len(positions) > 0 || existing != nil {
		desc := "place a spectator tile on an empty slot"
		if existing != nil {
			desc = "move your spectator tile to another slot"
		}
		actions = append(actions, Action{
			ID:           ActionSpectatorTile,
			Description:  desc,
			Positions:    positions,
			ExistingTile: existing,
		})
	}

	if !tm.pyramid.IsEmpty() {
		desc := "take a pyramid ticket and move a camel immediately"
		if !tm.supply.CanTake() {
			desc = "draw a die and move a camel immediately (no tickets left)"
		}
		actions = append(actions, Action{
			ID:          ActionPyramidTicket,
			Description: desc,
		})
	}

	if p.CanPlaceRaceBet() {
		actions = append(actions, Action{
			ID:          ActionRaceBet,
			Description: "place a race winner or race loser card",
			RaceTargets: race.Racers(),
		})
	}

	return actions
}

// ExecuteAction applies the player's chosen action. The boolean reports
// whether the action took effect; the string is a human-readable result
// or refusal reason.
func (tm *TurnManager) ExecuteAction(p *Player, id ActionID, params ActionParams) (bool, string) {
	switch id {
	case ActionTakeLegTicket:
		return tm.takeLegTicket(p, params.Camel)
	case ActionSpectatorTile:
		return tm.placeTile(p, params.Position, params.Cheering)
	case ActionPyramidTicket:
		return tm.takePyramidTicket(p)
	case ActionRaceBet:
		return tm.placeRaceBet(p, params.Camel, params.Variant)
	default:
		return false, fmt.Sprintf("unknown action %d", id)
	}
}

func (tm *TurnManager) takeLegTicket(p *Player, camel string) (bool, string) {
	bet, ok := tm.bets.TakeLegTicket(p.Name, camel)
	if !ok {
		return false, fmt.Sprintf("no leg tickets left for %s", camel)
	}
	p.RecordBet(bet)
	tm.logger.Info("leg ticket taken", "player", p.Name, "camel", camel, "value", bet.TicketValue)
	return true, fmt.Sprintf("took %s ticket worth %d", camel, bet.TicketValue)
}

func (tm *TurnManager) placeTile(p *Player, pos int, cheering bool) (bool, string) {
	if len(tm.board.Slot(pos)) > 0 {
		return false, fmt.Sprintf("slot %d is occupied by camels", pos)
	}
	existing := tm.tiles.OwnerTile(p.Name)
	if !tm.tiles.Place(p.Name, pos, cheering) {
		return false, fmt.Sprintf("slot %d cannot take a tile", pos)
	}
	side := "booing"
	if cheering {
		side = "cheering"
	}
	tm.logger.Info("spectator tile placed", "player", p.Name, "slot", pos, "side", side)
	if existing != nil {
		return true, fmt.Sprintf("moved %s tile from slot %d to %d", side, existing.Position, pos)
	}
	return true, fmt.Sprintf("placed %s tile on slot %d", side, pos)
}

func (tm *TurnManager) takePyramidTicket(p *Player) (bool, string) {
	die, face, ok := tm.pyramid.DrawRandom(tm.rng)
	if !ok {
		return false, "no dice left to draw"
	}
	// The ticket pool caps rewards at five per leg; the final die of the
	// leg can still be drawn after the pool empties, just unrewarded.
	if tm.supply.Take() {
		p.AddPyramidTicket()
	}
	tm.lastPyramidTaker = p.Name

	camel := tm.board.Camel(face.Camel)
	if camel == nil {
		panic(fmt.Sprintf("game: die %s names unknown camel %s", die.Name, face.Camel))
	}
	from := camel.Position
	settlement := tm.board.MoveStack(camel, face.Steps)
	tm.logger.Info("pyramid ticket taken",
		"player", p.Name, "die", die.Name, "camel", face.Camel,
		"steps", face.Steps, "from", from, "to", camel.Position)

	if settlement != nil {
		tm.settleTile(settlement)
	}

	if tm.pyramid.DrawnCount() == dice.LegDiceCount {
		tm.legEnded = true
		tm.logger.Info("leg ended, all dice drawn")
	}

	return true, fmt.Sprintf("drew %s die, %s moved %d steps", die.Name, face.Camel, face.Steps)
}

// settleTile pays a spectator-tile hit from the bank to the tile's owner.
func (tm *TurnManager) settleTile(s *race.TileSettlement) {
	for _, player := range tm.players {
		if player.Name == s.Owner {
			tm.bank.Pay(player, s.Amount)
			tm.logger.Info("spectator tile payout", "owner", s.Owner, "amount", s.Amount, "slot", s.Position)
			return
		}
	}
}

func (tm *TurnManager) placeRaceBet(p *Player, camel string, variant betting.Variant) (bool, string) {
	if !p.CanPlaceRaceBet() {
		return false, "no finish cards remaining"
	}
	bet, ok := tm.bets.PlaceRaceBet(p.Name, camel, variant)
	if !ok {
		return false, fmt.Sprintf("cannot place a %s bet", variant)
	}
	p.UseFinishCard()
	p.RecordBet(bet)
	tm.logger.Info("race bet placed", "player", p.Name, "camel", camel, "variant", variant.String(),
		"finish_cards_left", p.FinishCards)
	return true, fmt.Sprintf("placed %s card on %s", variant, camel)
}

// RotateStartingPlayer moves the marker to the player before whoever took
// the leg's last pyramid ticket; no pyramid ticket leaves it in place.
// Either way the next leg opens on the marker holder.
func (tm *TurnManager) RotateStartingPlayer() {
	if tm.lastPyramidTaker != "" {
		for i, player := range tm.players {
			if player.Name == tm.lastPyramidTaker {
				tm.startingIdx = (i - 1 + len(tm.players)) % len(tm.players)
				tm.logger.Info("starting player marker moved", "player", tm.players[tm.startingIdx].Name)
				break
			}
		}
	}
	tm.currentIdx = tm.startingIdx
}

// ResetForNewLeg clears leg-scoped turn state after rotation.
func (tm *TurnManager) ResetForNewLeg() {
	tm.legEnded = false
	tm.lastPyramidTaker = ""
}
