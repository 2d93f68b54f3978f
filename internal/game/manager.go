package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/analysis"
	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/gameid"
	"github.com/lox/camelup/internal/race"
)

// BankReserve is the bank's opening balance for tile and pyramid payouts.
const BankReserve = 1000

// maxTurnsPerLeg guards the leg loop against an agent that never draws a
// die.
const maxTurnsPerLeg = 200

// PlayerPerformance captures one player's results for post-game analysis.
type PlayerPerformance struct {
	StartingMoney int
	FinalMoney    int
	BetsPlaced    int
	BetsWon       int
	ROI           float64
}

// Stats aggregates game-level numbers as play progresses.
type Stats struct {
	LegsPlayed   int
	BetsPlaced   int
	Performances map[string]*PlayerPerformance
}

// Manager orchestrates the whole game: initial setup, the leg loop, and
// bet resolution applied to player balances.
type Manager struct {
	Players []*Player

	id      string
	board   *race.Board
	tiles   *race.SpectatorTiles
	pyramid *dice.Pyramid
	supply  *PyramidSupply
	bets    *betting.Manager
	bank    *Bank
	turns   *TurnManager
	rng     *rand.Rand
	logger  *log.Logger

	leg      int
	finished bool
	winner   *race.Camel
	stats    Stats
}

// NewManager assembles a game for the given players on a standard board.
func NewManager(players []*Player, trackLength int, rng *rand.Rand, logger *log.Logger) *Manager {
	board := race.NewBoard(trackLength)
	tiles := race.NewSpectatorTiles(trackLength)
	board.AttachTiles(tiles)

	id := gameid.New(rng).Generate()
	m := &Manager{
		Players: players,
		id:      id,
		board:   board,
		tiles:   tiles,
		pyramid: dice.NewPyramid(race.Racers(), race.Black, race.White),
		supply:  NewPyramidSupply(),
		bets:    betting.NewManager(race.Racers()),
		bank:    NewBank(BankReserve),
		rng:     rng,
		logger:  logger.With("game", id),
		stats:   Stats{Performances: make(map[string]*PlayerPerformance)},
	}
	m.turns = NewTurnManager(players, board, tiles, m.pyramid, m.supply, m.bets, m.bank, rng, m.logger)

	for _, p := range players {
		m.stats.Performances[p.Name] = &PlayerPerformance{StartingMoney: p.Money}
	}
	return m
}

// ID returns the race identifier minted at construction.
func (m *Manager) ID() string {
	return m.id
}

// Board exposes the live board to the presentation layer.
func (m *Manager) Board() *race.Board {
	return m.board
}

// Tiles exposes the spectator-tile state.
func (m *Manager) Tiles() *race.SpectatorTiles {
	return m.tiles
}

// Pyramid exposes the leg's dice state.
func (m *Manager) Pyramid() *dice.Pyramid {
	return m.pyramid
}

// Bank exposes the shared reserve.
func (m *Manager) Bank() *Bank {
	return m.bank
}

// Turns exposes the action state machine.
func (m *Manager) Turns() *TurnManager {
	return m.turns
}

// Leg returns the current leg number, 1-based once play starts.
func (m *Manager) Leg() int {
	return m.leg
}

// IsFinished reports whether the race has been decided.
func (m *Manager) IsFinished() bool {
	return m.finished
}

// Winner returns the winning camel once the race is over, nil before.
func (m *Manager) Winner() *race.Camel {
	return m.winner
}

// SetupBoard rolls every camel's setup die in shuffled order and places
// them, racers from the near end and crazy camels from the far end.
func (m *Manager) SetupBoard() {
	camels := race.NewCamels(m.board.TrackLength())
	m.rng.Shuffle(len(camels), func(i, j int) {
		camels[i], camels[j] = camels[j], camels[i]
	})
	for _, c := range camels {
		steps := dice.SetupRoll(m.rng)
		m.board.SetupRoll(c, steps)
		m.logger.Info("setup roll", "camel", c.Name, "steps", steps, "slot", c.Position)
	}
}

// LeadingProbabilities enumerates the exact leading-camel distribution
// over the dice still in the pyramid.
func (m *Manager) LeadingProbabilities() analysis.Report {
	return analysis.LeadingOdds(m.board, m.pyramid.Remaining())
}

// LegBetExpectedValues runs a fresh Monte Carlo estimate of per-camel leg
// ticket values against the shared betting inventory's consumption.
func (m *Manager) LegBetExpectedValues(ctx context.Context, trials int) (map[string]float64, error) {
	calc := analysis.NewEVCalculator(m.board, m.pyramid, race.Racers())
	for _, camel := range race.Racers() {
		taken := len(race.TicketValues) - m.bets.TicketsRemaining(camel)
		for i := 0; i < taken; i++ {
			calc.TakeTicket(camel)
		}
	}
	return calc.LegBetEVs(ctx, trials, m.rng.Int64())
}

// BeginLeg opens a new leg.
func (m *Manager) BeginLeg() {
	m.leg++
	m.logger.Info("leg started", "leg", m.leg, "starting_player", m.turns.StartingPlayer().Name)
}

// PlayTurn runs the current player's single turn and advances the
// rotation. It returns a short description of what happened, and whether
// the leg is still running afterwards.
func (m *Manager) PlayTurn(agents map[string]Agent) (string, bool, error) {
	if m.finished || m.turns.IsLegOver() {
		return "", false, nil
	}

	p := m.turns.CurrentPlayer()
	agent, ok := agents[p.Name]
	if !ok {
		return "", false, fmt.Errorf("game: no agent for player %s", p.Name)
	}

	desc := fmt.Sprintf("%s passes", p.Name)
	if actions := m.turns.AvailableActions(p); len(actions) > 0 {
		id, params, chose := agent.ChooseAction(p, actions)
		if chose {
			done, msg := m.turns.ExecuteAction(p, id, params)
			if done {
				m.recordAction(p, id)
			}
			desc = fmt.Sprintf("%s: %s", p.Name, msg)
			m.logger.Debug("turn", "player", p.Name, "ok", done, "result", msg)
		} else {
			m.logger.Debug("turn passed", "player", p.Name)
		}
	}

	if m.board.IsRaceOver() {
		m.winner = m.board.LeadingRacer()
		m.finished = true
		m.logger.Info("race finished", "winner", m.winner.Name)
		return desc, false, nil
	}
	if m.turns.IsLegOver() {
		return desc, false, nil
	}
	m.turns.AdvanceTurn()
	return desc, true, nil
}

// PlayLeg runs turns until the leg's dice are exhausted or a camel
// finishes the race, consulting each player's agent in order.
func (m *Manager) PlayLeg(agents map[string]Agent) error {
	m.BeginLeg()
	for turn := 0; ; turn++ {
		if turn >= maxTurnsPerLeg {
			return fmt.Errorf("game: leg %d exceeded %d turns without drawing all dice", m.leg, maxTurnsPerLeg)
		}
		_, running, err := m.PlayTurn(agents)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
}

func (m *Manager) recordAction(p *Player, id ActionID) {
	if id != ActionTakeLegTicket && id != ActionRaceBet {
		return
	}
	m.stats.BetsPlaced++
	if perf := m.stats.Performances[p.Name]; perf != nil {
		perf.BetsPlaced++
	}
}

// ResolveLegEnd settles the leg: leg-winner bets, pyramid payouts, marker
// rotation and pool resets. Returns the settled bets.
func (m *Manager) ResolveLegEnd() []*betting.Bet {
	m.stats.LegsPlayed = m.leg
	order := rankingNames(m.board)

	settled := m.bets.ResolveLeg(order)
	m.applyPayouts(settled)

	for _, p := range m.Players {
		if p.PyramidTickets == 0 {
			continue
		}
		count := p.PyramidTickets
		p.PyramidTickets = 0
		m.bank.Pay(p, count)
		m.logger.Info("pyramid payout", "player", p.Name, "tickets", count, "amount", count)
	}

	m.turns.RotateStartingPlayer()
	m.turns.ResetForNewLeg()
	m.bets.ResetLegTickets()
	m.supply.Reset()
	m.pyramid.Reset()
	for _, p := range m.Players {
		p.ClearLegBets()
	}
	return settled
}

// ResolveRaceEnd settles every race winner/loser deck against the final
// order and applies payouts. Returns the settled bets.
func (m *Manager) ResolveRaceEnd() []*betting.Bet {
	m.stats.LegsPlayed = m.leg
	order := rankingNames(m.board)
	settled := m.bets.ResolveRace(order, m.rng)
	m.applyPayouts(settled)
	m.captureFinalStats()
	return settled
}

func (m *Manager) applyPayouts(settled []*betting.Bet) {
	for _, bet := range settled {
		for _, p := range m.Players {
			if p.Name != bet.Player {
				continue
			}
			p.ReceivePayout(bet.Payout)
			if bet.Won {
				if perf := m.stats.Performances[p.Name]; perf != nil {
					perf.BetsWon++
				}
			}
			m.logger.Info("bet settled", "player", p.Name, "bet", bet.String(), "payout", bet.Payout)
			break
		}
	}
}

func (m *Manager) captureFinalStats() {
	for _, p := range m.Players {
		perf := m.stats.Performances[p.Name]
		if perf == nil {
			continue
		}
		perf.FinalMoney = p.Money
		if perf.StartingMoney > 0 {
			perf.ROI = float64(p.Money-perf.StartingMoney) / float64(perf.StartingMoney) * 100
		}
	}
}

// Statistics returns the captured game statistics.
func (m *Manager) Statistics() Stats {
	return m.stats
}

func rankingNames(b *race.Board) []string {
	ranking := b.Ranking()
	names := make([]string, len(ranking))
	for i, c := range ranking {
		names[i] = c.Name
	}
	return names
}
