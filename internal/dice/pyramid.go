package dice

import rand "math/rand/v2"

// LegDiceCount is how many dice are drawn in a full leg: five colored plus
// the combined crazy die.
const LegDiceCount = 6

// Draw records a single pyramid draw for leg history.
type Draw struct {
	Die  string
	Face Face
}

// Pyramid holds the undrawn dice for the current leg. Draws are without
// replacement; Reset refills the pyramid at a leg boundary.
type Pyramid struct {
	all       []Die
	remaining []Die
	history   []Draw
}

// NewPyramid builds the standard pyramid for the given racer names.
func NewPyramid(racers []string, black, white string) *Pyramid {
	all := make([]Die, 0, len(racers)+1)
	for _, name := range racers {
		all = append(all, ColoredDie(name))
	}
	all = append(all, CrazyDie(black, white))
	return NewPyramidWith(all...)
}

// NewPyramidWith builds a pyramid from an explicit die set, used by tests
// and partial-leg scenarios.
func NewPyramidWith(all ...Die) *Pyramid {
	p := &Pyramid{all: all}
	p.Reset()
	return p
}

// Remaining returns the undrawn dice.
func (p *Pyramid) Remaining() []Die {
	return p.remaining
}

// RemainingCount returns how many dice are still undrawn.
func (p *Pyramid) RemainingCount() int {
	return len(p.remaining)
}

// DrawnCount returns how many dice have been drawn this leg.
func (p *Pyramid) DrawnCount() int {
	return len(p.history)
}

// History returns the draws made this leg in order.
func (p *Pyramid) History() []Draw {
	return p.history
}

// IsEmpty reports whether every die for the leg has been drawn.
func (p *Pyramid) IsEmpty() bool {
	return len(p.remaining) == 0
}

// DrawRandom removes a uniformly random undrawn die and rolls it. The
// second return is false once the pyramid is empty.
func (p *Pyramid) DrawRandom(rng *rand.Rand) (Die, Face, bool) {
	if len(p.remaining) == 0 {
		return Die{}, Face{}, false
	}
	idx := rng.IntN(len(p.remaining))
	die := p.remaining[idx]
	p.remaining = append(p.remaining[:idx], p.remaining[idx+1:]...)
	face := die.Roll(rng)
	p.history = append(p.history, Draw{Die: die.Name, Face: face})
	return die, face, true
}

// Reset refills the pyramid for a new leg and clears the draw history.
func (p *Pyramid) Reset() {
	p.remaining = make([]Die, len(p.all))
	copy(p.remaining, p.all)
	p.history = nil
}

// Clone returns an independent copy of the pyramid's current state, used
// by disposable simulation snapshots.
func (p *Pyramid) Clone() *Pyramid {
	clone := &Pyramid{
		all:       p.all,
		remaining: make([]Die, len(p.remaining)),
	}
	copy(clone.remaining, p.remaining)
	if len(p.history) > 0 {
		clone.history = make([]Draw, len(p.history))
		copy(clone.history, p.history)
	}
	return clone
}
