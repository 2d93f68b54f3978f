// Package analysis provides the decision layer: exact leading-camel
// probabilities by enumerating every undrawn die face, and Monte Carlo
// expected values for leg-winner tickets. Both operate on disposable board
// clones and never mutate live game state.
package analysis

import (
	"github.com/lox/camelup/internal/dice"
	"github.com/lox/camelup/internal/race"
)

// Outcome is one enumerated scenario: if Face were the next draw from Die,
// Leader would be the leading racer afterwards.
type Outcome struct {
	Die    string
	Face   dice.Face
	Leader string
}

// Report is the exact leading-camel distribution over every possible next
// draw. Counts are face weights, so probabilities are Counts/TotalWeight.
type Report struct {
	Outcomes    []Outcome
	Counts      map[string]int
	TotalWeight int
}

// Probabilities normalises the weighted counts. The values sum to 1 when
// every scenario produced a leader.
func (r Report) Probabilities() map[string]float64 {
	probs := make(map[string]float64, len(r.Counts))
	if r.TotalWeight == 0 {
		return probs
	}
	for camel, count := range r.Counts {
		probs[camel] = float64(count) / float64(r.TotalWeight)
	}
	return probs
}

// LeadingOdds enumerates every distinct face of every undrawn die exactly
// once, applying it to a clone of the board and recording which racer
// would lead. This is a complete enumeration, not a sample: the scenario
// weight is six per undrawn die.
func LeadingOdds(board *race.Board, undrawn []dice.Die) Report {
	report := Report{Counts: make(map[string]int)}

	for _, die := range undrawn {
		report.TotalWeight += die.TotalWeight()
		for _, face := range die.Faces {
			clone := board.Clone()
			if camel := clone.Camel(face.Camel); camel != nil {
				clone.MoveStack(camel, face.Steps)
			}

			outcome := Outcome{Die: die.Name, Face: face}
			if leader := clone.LeadingRacer(); leader != nil {
				outcome.Leader = leader.Name
				report.Counts[leader.Name] += face.Weight
			}
			report.Outcomes = append(report.Outcomes, outcome)
		}
	}
	return report
}
