package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/game"
	"github.com/lox/camelup/internal/race"
)

// Probability thresholds for the greedy strategy.
const (
	greedyLegThreshold  = 0.4
	greedyRaceThreshold = 0.7
)

// GreedyBot bets on the camel most likely to lead, from the exact
// enumeration of the remaining dice. It takes a leg ticket while the
// favourite clears a probability threshold, a race winner card when the
// favourite is dominant, and otherwise draws from the pyramid.
type GreedyBot struct {
	m      *game.Manager
	logger *log.Logger
}

// NewGreedyBot creates a new GreedyBot playing in m.
func NewGreedyBot(m *game.Manager, logger *log.Logger) *GreedyBot {
	return &GreedyBot{m: m, logger: logger}
}

func (g *GreedyBot) ChooseAction(p *game.Player, actions []game.Action) (game.ActionID, game.ActionParams, bool) {
	probs := g.m.LeadingProbabilities().Probabilities()
	favourite, best := "", 0.0
	for _, camel := range race.Racers() {
		if prob := probs[camel]; prob > best {
			favourite, best = camel, prob
		}
	}
	g.logger.Debug("greedy-bot favourite", "player", p.Name, "camel", favourite, "probability", best)

	if best >= greedyLegThreshold {
		for _, a := range actions {
			if a.ID != game.ActionTakeLegTicket {
				continue
			}
			for _, offer := range a.LegBets {
				if offer.Camel == favourite {
					return game.ActionTakeLegTicket, game.ActionParams{Camel: favourite}, true
				}
			}
		}
	}

	if best >= greedyRaceThreshold && p.CanPlaceRaceBet() {
		for _, a := range actions {
			if a.ID == game.ActionRaceBet {
				return game.ActionRaceBet, game.ActionParams{Camel: favourite, Variant: betting.RaceWinner}, true
			}
		}
	}

	for _, a := range actions {
		if a.ID == game.ActionPyramidTicket {
			return game.ActionPyramidTicket, game.ActionParams{}, true
		}
	}
	return 0, game.ActionParams{}, false
}
