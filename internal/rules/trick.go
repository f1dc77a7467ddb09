// Package rules holds the two player trick taking rules shared by the
// card play strategy and the simulator.
package rules

import (
	"github.com/lox/pinochle/internal/cards"
)

// CanBeat reports whether card beats lead: a higher rank of the same suit,
// or a trump played on a non-trump lead.
func CanBeat(card, lead cards.Card, trump cards.Suit) bool {
	if card.Suit == lead.Suit {
		return card.Rank > lead.Rank
	}
	return card.IsTrump(trump) && !lead.IsTrump(trump)
}

// LegalPlays returns the positions in hand that may be played onto trick.
// The leader may play anything. A follower who can beat the lead must
// play a card that does; otherwise any card is allowed.
func LegalPlays(hand []cards.Card, trick []cards.Card, trump cards.Suit) []int {
	all := make([]int, len(hand))
	for i := range hand {
		all[i] = i
	}
	if len(trick) == 0 {
		return all
	}

	lead := trick[0]
	var beaters []int
	for i, card := range hand {
		if CanBeat(card, lead, trump) {
			beaters = append(beaters, i)
		}
	}
	if len(beaters) == 0 {
		return all
	}
	return beaters
}

// TrickWinner returns 0 when the lead wins the trick and 1 when the follow
// does. Ties go to the leader since both copies of a card rank equally.
func TrickWinner(lead, follow cards.Card, trump cards.Suit) int {
	if CanBeat(follow, lead, trump) {
		return 1
	}
	return 0
}

// TrickPoints sums the card values of a trick
func TrickPoints(trick []cards.Card, trump cards.Suit) int {
	total := 0
	for _, card := range trick {
		total += card.Value(trump)
	}
	return total
}

// LastTrickBonus is awarded to the winner of the final trick
const LastTrickBonus = 10
