// Package dice models the Camel Up pyramid: the five colored dice, the
// combined crazy-camel die, and per-leg draws without replacement. Dice are
// described as weighted face multisets so the probability calculator can
// enumerate distinct faces exactly instead of sampling.
package dice

import (
	"fmt"
	rand "math/rand/v2"
)

// CrazyName is the pyramid name of the combined backward-camel die.
const CrazyName = "Crazy"

// Face is one distinct die face: the camel it moves, how far, and how many
// of the die's six physical faces show it.
type Face struct {
	Steps  int
	Camel  string
	Weight int
}

// Die is a finite weighted face multiset. Colored dice have three distinct
// faces of weight two; the crazy die has six distinct faces of weight one.
type Die struct {
	Name  string
	Faces []Face
}

// ColoredDie builds the die for a forward-moving camel: values 1..3, each
// on two of the six faces.
func ColoredDie(camel string) Die {
	return Die{
		Name: camel,
		Faces: []Face{
			{Steps: 1, Camel: camel, Weight: 2},
			{Steps: 2, Camel: camel, Weight: 2},
			{Steps: 3, Camel: camel, Weight: 2},
		},
	}
}

// CrazyDie builds the combined die for the two backward-moving camels:
// six equally weighted (value, camel) faces.
func CrazyDie(black, white string) Die {
	faces := make([]Face, 0, 6)
	for _, camel := range []string{black, white} {
		for steps := 1; steps <= 3; steps++ {
			faces = append(faces, Face{Steps: steps, Camel: camel, Weight: 1})
		}
	}
	return Die{Name: CrazyName, Faces: faces}
}

// TotalWeight is the number of physical faces, always six for game dice.
func (d Die) TotalWeight() int {
	total := 0
	for _, f := range d.Faces {
		total += f.Weight
	}
	return total
}

// Roll draws one face with probability proportional to its weight.
func (d Die) Roll(rng *rand.Rand) Face {
	r := rng.IntN(d.TotalWeight())
	for _, f := range d.Faces {
		r -= f.Weight
		if r < 0 {
			return f
		}
	}
	panic(fmt.Sprintf("dice: die %s has no faces", d.Name))
}

// SetupRoll is the initial-placement draw used once per camel before the
// race: uniform 1..3.
func SetupRoll(rng *rand.Rand) int {
	return rng.IntN(3) + 1
}
