// Package statistics aggregates the outcomes of simulated Klondike games.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// GameResult represents the outcome of a single game
type GameResult struct {
	Seed       int64  // deal seed, for replay
	DrawCount  int    // 1 or 3
	Won        bool   // every card reached a foundation
	Moves      int    // transitions applied, draws included
	Draws      int    // draws and recycles
	Foundation int    // cards on the foundations at the end (0-52)
	Reason     string // why the game ended
}

// Statistics tracks simulation results. Values holds the foundation count
// of every game so the distribution can be summarised.
type Statistics struct {
	Games  int
	Wins   int
	Values []float64

	SumFoundation  float64
	SumFoundation2 float64 // sum of squares for variance
	SumMoves       int
	SumWinMoves    int
	SumDraws       int

	Reasons map[string]int

	// Longest and shortest wins, by moves
	MostWinMoves   int
	FewestWinMoves int
}

// Add incorporates a game result into the statistics
func (s *Statistics) Add(r GameResult) {
	f := float64(r.Foundation)
	s.Games++
	s.Values = append(s.Values, f)
	s.SumFoundation += f
	s.SumFoundation2 += f * f
	s.SumMoves += r.Moves
	s.SumDraws += r.Draws

	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	s.Reasons[r.Reason]++

	if r.Won {
		s.Wins++
		s.SumWinMoves += r.Moves
		if r.Moves > s.MostWinMoves {
			s.MostWinMoves = r.Moves
		}
		if s.FewestWinMoves == 0 || r.Moves < s.FewestWinMoves {
			s.FewestWinMoves = r.Moves
		}
	}
}

// WinRate returns the fraction of games won
func (s *Statistics) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

// WinRateInterval95 returns the 95% Wilson score interval for the win rate
func (s *Statistics) WinRateInterval95() (float64, float64) {
	if s.Games == 0 {
		return 0, 0
	}
	const z = 1.96
	n := float64(s.Games)
	p := s.WinRate()
	denom := 1 + z*z/n
	centre := (p + z*z/(2*n)) / denom
	margin := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom
	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}

// Mean returns the mean number of foundation cards per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumFoundation / float64(s.Games)
}

// Variance returns the sample variance of the foundation counts
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumFoundation2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the foundation counts
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// AvgMoves returns the mean number of moves per game
func (s *Statistics) AvgMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumMoves) / float64(s.Games)
}

// AvgWinMoves returns the mean number of moves in won games
func (s *Statistics) AvgWinMoves() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.SumWinMoves) / float64(s.Wins)
}

// Median returns the median foundation count
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

// Percentile returns the foundation count at the given percentile (0.0 to 1.0)
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

// Validate checks the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Wins > s.Games {
		return fmt.Errorf("wins (%d) exceed games (%d)", s.Wins, s.Games)
	}

	full := 0
	for _, v := range s.Values {
		if v < 0 || v > 52 {
			return fmt.Errorf("foundation count %v out of range", v)
		}
		if v == 52 {
			full++
		}
	}
	if full != s.Wins {
		return fmt.Errorf("%d games finished all foundations but %d were counted as wins", full, s.Wins)
	}

	total := 0
	for _, n := range s.Reasons {
		total += n
	}
	if total != s.Games {
		return fmt.Errorf("stop reasons total (%d) does not match games count (%d)", total, s.Games)
	}

	return nil
}
