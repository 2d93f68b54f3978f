// Package bot provides game.Agent implementations with different playing
// styles, from uniform random play to Monte Carlo expected-value betting.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/camelup/internal/game"
)

// Strategies lists the selectable strategy names.
func Strategies() []string {
	return []string{"rand", "greedy", "ev"}
}

// New creates an agent of the named strategy playing in m.
func New(strategy string, m *game.Manager, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch strategy {
	case "rand":
		return NewRandBot(rng, logger), nil
	case "greedy":
		return NewGreedyBot(m, logger), nil
	case "ev":
		return NewEVBot(m, logger), nil
	default:
		return nil, fmt.Errorf("bot: unknown strategy %q", strategy)
	}
}
