package meld

import (
	"slices"
	"strings"

	"github.com/lox/pinochle/internal/cards"
)

// Analyzer finds the best set of melds a hand can show
type Analyzer struct {
	checkers []Checker
}

// NewAnalyzer returns an analyzer over checkers (copied)
func NewAnalyzer(checkers []Checker) *Analyzer {
	return &Analyzer{checkers: slices.Clone(checkers)}
}

// Checkers returns a copy of the analyzer's checkers in evaluation order
func (a *Analyzer) Checkers() []Checker {
	return slices.Clone(a.checkers)
}

// BestScore returns the highest total meld score obtainable from hand
func (a *Analyzer) BestScore(hand []cards.Card, trump cards.Suit) int {
	score, _ := a.BestCombination(hand, trump)
	return score
}

// BestCombination returns the highest total score and the names of the
// melds that realise it. Several melds may be taken at once as long as
// they use disjoint cards; the same meld may be taken twice when the hand
// holds both copies of its cards.
func (a *Analyzer) BestCombination(hand []cards.Card, trump cards.Suit) (int, []string) {
	s := &search{checkers: a.checkers, trump: trump, memo: map[string]result{}}
	r := s.best(slices.Clone(hand))
	return r.score, r.melds
}

type result struct {
	score int
	melds []string
}

// search is an exhaustive backtracking search. Results are memoised on the
// multiset of remaining cards, which only prunes repeated sub-problems
// reached through different meld orderings.
type search struct {
	checkers []Checker
	trump    cards.Suit
	memo     map[string]result
}

func (s *search) best(available []cards.Card) result {
	key := handKey(available)
	if r, ok := s.memo[key]; ok {
		return r
	}

	best := result{}
	for _, checker := range s.checkers {
		if !checker.CanForm(available, s.trump) {
			continue
		}
		sub := s.best(checker.Remove(available, s.trump))
		if total := checker.Score + sub.score; total > best.score {
			best = result{
				score: total,
				melds: append([]string{checker.Name}, sub.melds...),
			}
		}
	}

	s.memo[key] = best
	return best
}

func handKey(hand []cards.Card) string {
	keys := cards.Keys(hand)
	slices.Sort(keys)
	return strings.Join(keys, ",")
}
