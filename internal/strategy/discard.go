package strategy

import (
	"cmp"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

// Discard trims a cut-throat hand back to HandCap cards. Short side suits
// are emptied first; trumps go last, highest first.
type Discard struct {
	base
}

// NewDiscard creates the discard strategy
func NewDiscard(logger *log.Logger) *Discard {
	return &Discard{base: newBase("discard", 0, logger, protocol.KindDiscard)}
}

// CanHandle accepts discard requests holding more than HandCap cards
func (d *Discard) CanHandle(req protocol.Request) bool {
	return req.Kind == protocol.KindDiscard && len(req.Available()) > HandCap
}

// Decide returns the positions to discard. A hand at or under HandCap
// yields an empty, invalid decision.
func (d *Discard) Decide(req protocol.Request) (protocol.Decision, error) {
	if err := cardRequest(req); err != nil {
		return protocol.Decision{}, err
	}

	hand := req.Available()
	indices := DiscardOrder(hand, req.Snapshot.Trump(), len(hand)-HandCap)
	d.logger.Debug("Discarding", "actor", req.Actor, "count", len(indices))
	return protocol.NewCardDecision(protocol.KindDiscard, indices...), nil
}

// DiscardOrder returns up to n positions of hand to discard. Non-trump
// suits are visited smallest group first, ties by descending suit code,
// each ordered by ascending rank. Remaining quota comes from trumps,
// ordered by descending rank.
func DiscardOrder(hand []cards.Card, trump cards.Suit, n int) []int {
	if n <= 0 {
		return nil
	}

	groups := make(map[cards.Suit][]int, len(cards.Suits))
	for i, card := range hand {
		groups[card.Suit] = append(groups[card.Suit], i)
	}

	var side []cards.Suit
	for suit := range groups {
		if suit != trump {
			side = append(side, suit)
		}
	}
	slices.SortFunc(side, func(a, b cards.Suit) int {
		if c := cmp.Compare(len(groups[a]), len(groups[b])); c != 0 {
			return c
		}
		return cmp.Compare(b.Code(), a.Code())
	})

	byRank := func(desc bool) func(a, b int) int {
		return func(a, b int) int {
			if desc {
				return cmp.Compare(hand[b].Rank, hand[a].Rank)
			}
			return cmp.Compare(hand[a].Rank, hand[b].Rank)
		}
	}

	out := make([]int, 0, n)
	take := func(positions []int) {
		for _, i := range positions {
			if len(out) == n {
				return
			}
			out = append(out, i)
		}
	}

	for _, suit := range side {
		positions := slices.Clone(groups[suit])
		slices.SortStableFunc(positions, byRank(false))
		take(positions)
	}
	if trumps, ok := groups[trump]; ok && len(out) < n {
		positions := slices.Clone(trumps)
		slices.SortStableFunc(positions, byRank(true))
		take(positions)
	}
	return out
}
