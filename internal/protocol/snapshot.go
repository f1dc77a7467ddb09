package protocol

import (
	"slices"

	"github.com/lox/pinochle/internal/cards"
)

// SnapshotParams carries the live game state a Snapshot is copied from.
// Trump must always be set: the zero Suit is cards.Spades, so callers pass
// cards.NoSuit until trump is declared. Out of range suits read as NoSuit.
type SnapshotParams struct {
	Hands      [][]cards.Card
	Played     []cards.Card
	Trick      []cards.Card
	Trump      cards.Suit
	CurrentBid int
	Scores     []int
	PackSize   int
	BidWinner  int
}

// Snapshot is a read-only, point-in-time copy of the game state handed to
// one decision call. Every slice is copied on the way in and on the way out,
// so neither the orchestrator nor a strategy can mutate what the other sees.
type Snapshot struct {
	hands      [][]cards.Card
	played     []cards.Card
	trick      []cards.Card
	trump      cards.Suit
	currentBid int
	scores     []int
	packSize   int
	bidWinner  int
}

// NewSnapshot copies p into a new Snapshot
func NewSnapshot(p SnapshotParams) Snapshot {
	trump := p.Trump
	if !trump.Valid() {
		trump = cards.NoSuit
	}
	hands := make([][]cards.Card, len(p.Hands))
	for i, h := range p.Hands {
		hands[i] = slices.Clone(h)
	}
	return Snapshot{
		hands:      hands,
		played:     slices.Clone(p.Played),
		trick:      slices.Clone(p.Trick),
		trump:      trump,
		currentBid: p.CurrentBid,
		scores:     slices.Clone(p.Scores),
		packSize:   p.PackSize,
		bidWinner:  p.BidWinner,
	}
}

// Hand returns a copy of the player's hand, or nil for an unknown player
func (s Snapshot) Hand(player int) []cards.Card {
	if player < 0 || player >= len(s.hands) {
		return nil
	}
	return slices.Clone(s.hands[player])
}

// Players returns the number of hands in the snapshot
func (s Snapshot) Players() int { return len(s.hands) }

// Played returns every card played in completed tricks
func (s Snapshot) Played() []cards.Card { return slices.Clone(s.played) }

// Trick returns the cards on the table for the current trick, lead first
func (s Snapshot) Trick() []cards.Card { return slices.Clone(s.trick) }

// Lead returns the first card of the current trick
func (s Snapshot) Lead() (cards.Card, bool) {
	if len(s.trick) == 0 {
		return cards.Card{}, false
	}
	return s.trick[0], true
}

// Trump returns the trump suit, or cards.NoSuit before it is declared
func (s Snapshot) Trump() cards.Suit { return s.trump }

// CurrentBid returns the highest bid so far
func (s Snapshot) CurrentBid() int { return s.currentBid }

// Score returns the player's score, zero for an unknown player
func (s Snapshot) Score(player int) int {
	if player < 0 || player >= len(s.scores) {
		return 0
	}
	return s.scores[player]
}

// Scores returns a copy of all scores
func (s Snapshot) Scores() []int { return slices.Clone(s.scores) }

// PackSize returns the number of undealt cards
func (s Snapshot) PackSize() int { return s.packSize }

// BidWinner returns the index of the auction winner (-1 before the auction ends)
func (s Snapshot) BidWinner() int { return s.bidWinner }
