package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single simulated race for the
// focal player.
type GameResult struct {
	NetCoins   float64 // Net coins won/lost by the focal player
	Seed       int64   // RNG seed for this game (for replay)
	Legs       int     // Legs played before a camel finished
	Winner     string  // Winning camel
	TookFirst  bool    // Did the focal player finish with the most coins?
	BetsPlaced int     // Bets the focal player placed
	BetsWon    int     // Bets the focal player won
}

// Statistics tracks aggregate race simulation statistics.
type Statistics struct {
	Games     int
	SumCoins  float64
	SumCoins2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all values for median/percentile calculation

	GamesWon   int // Games the focal player finished first in
	BetsPlaced int
	BetsWon    int

	TotalLegs int
	MaxLegs   int

	// WinnerCounts tracks which camel won each race.
	WinnerCounts map[string]int
}

// Mean returns the arithmetic mean of all results in coins per game.
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumCoins / float64(s.Games)
}

// Variance returns the sample variance of all results.
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumCoins2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of all results.
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics.
func (s *Statistics) Add(result GameResult) {
	net := result.NetCoins
	s.Games++
	s.SumCoins += net
	s.SumCoins2 += net * net
	s.Values = append(s.Values, net)

	if result.TookFirst {
		s.GamesWon++
	}
	s.BetsPlaced += result.BetsPlaced
	s.BetsWon += result.BetsWon

	s.TotalLegs += result.Legs
	if result.Legs > s.MaxLegs {
		s.MaxLegs = result.Legs
	}

	if result.Winner != "" {
		if s.WinnerCounts == nil {
			s.WinnerCounts = make(map[string]int)
		}
		s.WinnerCounts[result.Winner]++
	}
}

// WinRate returns the fraction of games the focal player finished first.
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.GamesWon) / float64(s.Games)
}

// BetHitRate returns the fraction of placed bets that paid out.
func (s *Statistics) BetHitRate() float64 {
	if s.BetsPlaced == 0 {
		return 0
	}
	return float64(s.BetsWon) / float64(s.BetsPlaced)
}

// MeanLegs returns the mean race length in legs.
func (s *Statistics) MeanLegs() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalLegs) / float64(s.Games)
}

// Median returns the median value of all results.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0).
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate performs consistency checks on the accumulated data.
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.GamesWon > s.Games {
		return fmt.Errorf("games won (%d) exceeds games played (%d)", s.GamesWon, s.Games)
	}

	if s.BetsWon > s.BetsPlaced {
		return fmt.Errorf("bets won (%d) exceeds bets placed (%d)", s.BetsWon, s.BetsPlaced)
	}

	winners := 0
	for _, count := range s.WinnerCounts {
		winners += count
	}
	if winners != s.Games {
		return fmt.Errorf("winner counts total (%d) does not match games count (%d)",
			winners, s.Games)
	}

	return nil
}
