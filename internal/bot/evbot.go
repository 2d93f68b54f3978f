package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/analysis"
	"github.com/lox/camelup/internal/game"
)

// evBotTrials is the Monte Carlo sample size per decision.
const evBotTrials = 2000

// EVBot estimates the expected value of every available leg ticket by
// Monte Carlo simulation and takes the best one while it beats the flat
// one-coin value of a pyramid ticket; otherwise it draws from the
// pyramid.
type EVBot struct {
	m      *game.Manager
	trials int
	logger *log.Logger
}

// NewEVBot creates a new EVBot playing in m.
func NewEVBot(m *game.Manager, logger *log.Logger) *EVBot {
	return &EVBot{m: m, trials: evBotTrials, logger: logger}
}

func (e *EVBot) ChooseAction(p *game.Player, actions []game.Action) (game.ActionID, game.ActionParams, bool) {
	var legAction *game.Action
	var pyramidOffered bool
	for i := range actions {
		switch actions[i].ID {
		case game.ActionTakeLegTicket:
			legAction = &actions[i]
		case game.ActionPyramidTicket:
			pyramidOffered = true
		}
	}

	if legAction != nil {
		evs, err := e.m.LegBetExpectedValues(context.Background(), e.trials)
		if err != nil {
			e.logger.Warn("ev-bot estimate failed", "error", err)
		} else {
			camel, best := "", 0.0
			for _, offer := range legAction.LegBets {
				if ev := evs[offer.Camel]; ev > best {
					camel, best = offer.Camel, ev
				}
			}
			e.logger.Debug("ev-bot estimate", "player", p.Name, "camel", camel, "ev", best)
			if best > analysis.PyramidTicketEV {
				return game.ActionTakeLegTicket, game.ActionParams{Camel: camel}, true
			}
		}
	}

	if pyramidOffered {
		return game.ActionPyramidTicket, game.ActionParams{}, true
	}
	return 0, game.ActionParams{}, false
}
