package strategy

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/meld"
	"github.com/lox/pinochle/internal/protocol"
)

const (
	aggressiveSuitCount = 6
	aggressiveIncrement = 20
	defaultIncrement    = 10
)

// Bidding bids from the meld the hand already holds plus the trick value of
// its strongest suit
type Bidding struct {
	base
	analyzer *meld.Analyzer
	rng      *rand.Rand
}

// NewBidding creates a bidding strategy. rng breaks ties between equally
// long suits when guessing trump.
func NewBidding(analyzer *meld.Analyzer, rng *rand.Rand, logger *log.Logger) *Bidding {
	return &Bidding{
		base:     newBase("bidding", 0, logger, protocol.KindBid),
		analyzer: analyzer,
		rng:      rng,
	}
}

// CanHandle accepts bid requests
func (b *Bidding) CanHandle(req protocol.Request) bool {
	return req.Kind == protocol.KindBid && req.Bid != nil
}

// Decide proposes an absolute bid amount or passes
func (b *Bidding) Decide(req protocol.Request) (protocol.Decision, error) {
	if !b.CanHandle(req) {
		return protocol.Decision{}, ErrMalformedRequest
	}

	hand := req.Hand()
	if len(hand) == 0 {
		return protocol.NewBidDecision(true, 0, cards.Clubs), nil
	}

	trump := b.AssumedTrump(hand)
	meldScore := b.analyzer.BestScore(hand, trump)

	if req.Bid.FirstBid {
		b.logger.Debug("Opening bid", "actor", req.Actor, "trump", trump.Code(), "meld", meldScore)
		return protocol.NewBidDecision(false, meldScore, trump), nil
	}

	next := req.Bid.CurrentBid + bidIncrement(hand)
	threshold := Threshold(hand, meldScore)
	if next >= threshold {
		b.logger.Debug("Passing", "actor", req.Actor, "next", next, "threshold", threshold)
		return protocol.NewBidDecision(true, 0, trump), nil
	}

	b.logger.Debug("Raising", "actor", req.Actor, "bid", next, "threshold", threshold)
	return protocol.NewBidDecision(false, next, trump), nil
}

// AssumedTrump returns the suit with the most cards in hand. Ties are
// broken uniformly at random; an empty hand assumes clubs.
func (b *Bidding) AssumedTrump(hand []cards.Card) cards.Suit {
	counts := suitCounts(hand)

	var tied []cards.Suit
	best := 0
	for _, suit := range cards.Suits {
		switch n := counts[suit]; {
		case n == 0:
		case n > best:
			best = n
			tied = append(tied[:0], suit)
		case n == best:
			tied = append(tied, suit)
		}
	}

	switch len(tied) {
	case 0:
		return cards.Clubs
	case 1:
		return tied[0]
	default:
		return tied[b.rng.IntN(len(tied))]
	}
}

// Threshold is the bid at which the strategy stops raising: the meld score
// plus the better of the highest suit value and the highest value of a
// suit holding an ace, ten or king.
func Threshold(hand []cards.Card, meldScore int) int {
	var major, honours int
	values := suitValues(hand)
	for _, suit := range cards.Suits {
		major = max(major, values[suit])
	}
	for _, card := range hand {
		if card.Rank == cards.Ace || card.Rank == cards.Ten || card.Rank == cards.King {
			honours = max(honours, values[card.Suit])
		}
	}
	return meldScore + max(major, honours)
}

func bidIncrement(hand []cards.Card) int {
	for _, n := range suitCounts(hand) {
		if n >= aggressiveSuitCount {
			return aggressiveIncrement
		}
	}
	return defaultIncrement
}

func suitCounts(hand []cards.Card) map[cards.Suit]int {
	counts := make(map[cards.Suit]int, len(cards.Suits))
	for _, card := range hand {
		counts[card.Suit]++
	}
	return counts
}

// suitValues sums plain rank points per suit
func suitValues(hand []cards.Card) map[cards.Suit]int {
	values := make(map[cards.Suit]int, len(cards.Suits))
	for _, card := range hand {
		values[card.Suit] += card.Rank.Points()
	}
	return values
}
