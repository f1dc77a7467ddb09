package protocol

import (
	"slices"

	"github.com/lox/pinochle/internal/cards"
)

// BidRequest is the payload of a KindBid request
type BidRequest struct {
	CurrentBid int
	FirstBid   bool
}

// CardRequest is the payload of every card selecting kind. Decisions refer
// to Available by position.
type CardRequest struct {
	Available []cards.Card
}

// Request asks the AI for one decision. Exactly one of Bid or Cards is set,
// matching Kind.
type Request struct {
	Kind     Kind
	Snapshot Snapshot
	Actor    int

	Bid   *BidRequest
	Cards *CardRequest
}

// NewBidRequest builds a KindBid request
func NewBidRequest(snap Snapshot, actor, currentBid int, firstBid bool) Request {
	return Request{
		Kind:     KindBid,
		Snapshot: snap,
		Actor:    actor,
		Bid:      &BidRequest{CurrentBid: currentBid, FirstBid: firstBid},
	}
}

// NewCardRequest builds a request for any card selecting kind. The
// candidate slice is copied.
func NewCardRequest(kind Kind, snap Snapshot, actor int, available []cards.Card) Request {
	return Request{
		Kind:     kind,
		Snapshot: snap,
		Actor:    actor,
		Cards:    &CardRequest{Available: slices.Clone(available)},
	}
}

// Available returns the candidate cards of a card request (nil otherwise)
func (r Request) Available() []cards.Card {
	if r.Cards == nil {
		return nil
	}
	return r.Cards.Available
}

// Hand returns the acting player's hand from the snapshot
func (r Request) Hand() []cards.Card {
	return r.Snapshot.Hand(r.Actor)
}

// BidDecision is the payload of a bid answer. Amount is the proposed
// absolute bid and is ignored when Pass is set.
type BidDecision struct {
	Pass   bool
	Amount int
	Trump  cards.Suit
}

// CardDecision selects positions in the request's Available cards: one to
// keep for a reveal, one to play, many to discard.
type CardDecision struct {
	Indices []int
}

// Decision is the AI's answer. Exactly one payload is set, matching Kind.
type Decision struct {
	Kind  Kind
	Bid   *BidDecision
	Cards *CardDecision
}

// NewBidDecision builds a bid answer
func NewBidDecision(pass bool, amount int, trump cards.Suit) Decision {
	return Decision{
		Kind: KindBid,
		Bid:  &BidDecision{Pass: pass, Amount: amount, Trump: trump},
	}
}

// NewCardDecision builds a card answer for kind
func NewCardDecision(kind Kind, indices ...int) Decision {
	return Decision{
		Kind:  kind,
		Cards: &CardDecision{Indices: slices.Clone(indices)},
	}
}

// Valid reports whether the decision carries a usable answer. A card
// decision with no indices means "no selection" and is invalid.
func (d Decision) Valid() bool {
	switch {
	case d.Bid != nil:
		return d.Kind == KindBid && d.Bid.Amount >= 0
	case d.Cards != nil:
		return d.Kind.IsCardKind() && len(d.Cards.Indices) > 0
	default:
		return false
	}
}

// Indices returns the selected positions of a card decision
func (d Decision) Indices() []int {
	if d.Cards == nil {
		return nil
	}
	return slices.Clone(d.Cards.Indices)
}

// First returns the first selected position, or -1
func (d Decision) First() int {
	if d.Cards == nil || len(d.Cards.Indices) == 0 {
		return -1
	}
	return d.Cards.Indices[0]
}
