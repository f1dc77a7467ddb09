package meld

import (
	"github.com/lox/pinochle/internal/cards"
)

// Checker recognises one meld. It holds no per-hand state and is safe to
// share between analyzers and goroutines.
type Checker struct {
	Name    string
	Score   int
	Pattern Pattern
}

// NewChecker parses pattern and returns a checker
func NewChecker(name string, score int, pattern string) (Checker, error) {
	p, err := ParsePattern(pattern)
	if err != nil {
		return Checker{}, err
	}
	return Checker{Name: name, Score: score, Pattern: p}, nil
}

// Required returns the card keys the meld needs under trump, one entry per
// physical card
func (c Checker) Required(trump cards.Suit) ([]string, bool) {
	return c.Pattern.keys(trump)
}

// CanForm reports whether hand contains every required card, counting
// duplicates: a pattern needing two identical cards needs both copies.
func (c Checker) CanForm(hand []cards.Card, trump cards.Suit) bool {
	required, ok := c.Required(trump)
	if !ok {
		return false
	}
	have := countKeys(hand)
	for _, key := range required {
		if have[key] == 0 {
			return false
		}
		have[key]--
	}
	return true
}

// Remove returns a new slice without the cards used by the meld. Exactly
// one occurrence is removed per required key and the remaining cards keep
// their order. When the meld cannot be formed the whole hand is returned.
func (c Checker) Remove(hand []cards.Card, trump cards.Suit) []cards.Card {
	out := make([]cards.Card, 0, len(hand))
	if !c.CanForm(hand, trump) {
		return append(out, hand...)
	}

	required, _ := c.Required(trump)
	need := make(map[string]int, len(required))
	for _, key := range required {
		need[key]++
	}
	for _, card := range hand {
		if key := card.Key(); need[key] > 0 {
			need[key]--
			continue
		}
		out = append(out, card)
	}
	return out
}

func countKeys(hand []cards.Card) map[string]int {
	counts := make(map[string]int, len(hand))
	for _, card := range hand {
		counts[card.Key()]++
	}
	return counts
}
