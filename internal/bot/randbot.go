package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/betting"
	"github.com/lox/camelup/internal/game"
)

// RandBot picks a uniform random legal action with uniform random
// parameters.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance.
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) ChooseAction(p *game.Player, actions []game.Action) (game.ActionID, game.ActionParams, bool) {
	// A tile action with no open slot cannot be parameterized.
	viable := actions[:0:0]
	for _, a := range actions {
		if a.ID == game.ActionSpectatorTile && len(a.Positions) == 0 {
			continue
		}
		viable = append(viable, a)
	}
	if len(viable) == 0 {
		return 0, game.ActionParams{}, false
	}

	a := viable[r.rng.IntN(len(viable))]
	params := game.ActionParams{}
	switch a.ID {
	case game.ActionTakeLegTicket:
		offer := a.LegBets[r.rng.IntN(len(a.LegBets))]
		params.Camel = offer.Camel
	case game.ActionSpectatorTile:
		params.Position = a.Positions[r.rng.IntN(len(a.Positions))]
		params.Cheering = r.rng.IntN(2) == 0
	case game.ActionRaceBet:
		params.Camel = a.RaceTargets[r.rng.IntN(len(a.RaceTargets))]
		params.Variant = betting.RaceWinner
		if r.rng.IntN(2) == 0 {
			params.Variant = betting.RaceLoser
		}
	}

	r.logger.Debug("rand-bot choice", "player", p.Name, "action", a.ID.String())
	return a.ID, params, true
}
