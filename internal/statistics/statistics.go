package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Seats is the number of players in a game
const Seats = 2

// GameResult is the outcome of one simulated game
type GameResult struct {
	Seed      int64      // RNG seed for this game (for replay)
	Scores    [Seats]int // Meld plus trick points per seat
	Melds     [Seats]int // Meld points per seat
	Declarer  int        // Seat that won the auction
	Bid       int        // Winning bid
	Tricks    int        // Tricks played
	Decisions int        // Decisions asked of the AIs
}

// Margin returns seat 0's score minus seat 1's
func (r GameResult) Margin() int {
	return r.Scores[0] - r.Scores[1]
}

// Made reports whether the declarer reached the bid
func (r GameResult) Made() bool {
	return r.Scores[r.Declarer] >= r.Bid
}

// Winner returns the winning seat, or -1 on a tie
func (r GameResult) Winner() int {
	switch m := r.Margin(); {
	case m > 0:
		return 0
	case m < 0:
		return 1
	default:
		return -1
	}
}

// SeatStats tracks per-seat results
type SeatStats struct {
	Wins      int
	Score     int
	Meld      int
	Declared  int
	Contracts int // Contracts made as declarer
}

// Statistics aggregates simulated games. Margins are seat 0 minus seat 1.
type Statistics struct {
	Games     int
	SumMargin float64
	SumSq     float64   // Sum of squares for variance calculation
	Values    []float64 // Every margin for median/percentile calculation

	Ties  int
	Seats [Seats]SeatStats

	Tricks    int
	Decisions int
}

// Mean returns the mean score margin per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumMargin / float64(s.Games)
}

// Variance returns the sample variance of the margins
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of the margins
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

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a game result
func (s *Statistics) Add(result GameResult) {
	margin := float64(result.Margin())
	s.Games++
	s.SumMargin += margin
	s.SumSq += margin * margin
	s.Values = append(s.Values, margin)

	if w := result.Winner(); w >= 0 {
		s.Seats[w].Wins++
	} else {
		s.Ties++
	}

	for seat := range Seats {
		s.Seats[seat].Score += result.Scores[seat]
		s.Seats[seat].Meld += result.Melds[seat]
	}
	if result.Declarer >= 0 && result.Declarer < Seats {
		s.Seats[result.Declarer].Declared++
		if result.Made() {
			s.Seats[result.Declarer].Contracts++
		}
	}

	s.Tricks += result.Tricks
	s.Decisions += result.Decisions
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at percentile p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// WinRate returns the share of games seat won
func (s *Statistics) WinRate(seat int) float64 {
	if seat < 0 || seat >= Seats || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// MeanScore returns seat's mean score per game
func (s *Statistics) MeanScore(seat int) float64 {
	if seat < 0 || seat >= Seats || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Score) / float64(s.Games)
}

// MeanMeld returns seat's mean meld per game
func (s *Statistics) MeanMeld(seat int) float64 {
	if seat < 0 || seat >= Seats || s.Games == 0 {
		return 0
	}
	return float64(s.Seats[seat].Meld) / float64(s.Games)
}

// ContractRate returns the share of seat's declared games it made
func (s *Statistics) ContractRate(seat int) float64 {
	if seat < 0 || seat >= Seats || s.Seats[seat].Declared == 0 {
		return 0
	}
	return float64(s.Seats[seat].Contracts) / float64(s.Seats[seat].Declared)
}

// Validate checks the aggregate is internally consistent
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}

	outcomes := s.Ties
	declared := 0
	for _, seat := range s.Seats {
		outcomes += seat.Wins
		declared += seat.Declared
		if seat.Contracts > seat.Declared {
			return fmt.Errorf("contracts made (%d) exceed contracts declared (%d)", seat.Contracts, seat.Declared)
		}
	}
	if outcomes != s.Games {
		return fmt.Errorf("wins and ties (%d) do not match games count (%d)", outcomes, s.Games)
	}
	if declared != s.Games {
		return fmt.Errorf("declared games (%d) do not match games count (%d)", declared, s.Games)
	}

	margin := float64(s.Seats[0].Score - s.Seats[1].Score)
	if math.Abs(margin-s.SumMargin) > 1e-6 {
		return fmt.Errorf("margin mismatch: scores give %.0f, margins sum to %.0f", margin, s.SumMargin)
	}
	return nil
}
