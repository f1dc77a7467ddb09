package strategy

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

const passProbability = 0.3

// RandomFallback answers bid, card play, reveal and discard requests with
// uniformly random legal choices. Trump selection and card choose requests
// have no answer.
type RandomFallback struct {
	base
	rng *rand.Rand
}

// NewRandomFallback creates the fallback strategy
func NewRandomFallback(rng *rand.Rand, logger *log.Logger) *RandomFallback {
	return &RandomFallback{
		base: newBase("fallback", -1, logger,
			protocol.KindBid,
			protocol.KindCardPlay,
			protocol.KindRevealedSelection,
			protocol.KindDiscard,
		),
		rng: rng,
	}
}

// Fallback marks the strategy as the chain terminator
func (r *RandomFallback) Fallback() bool { return true }

// CanHandle accepts every kind the fallback answers
func (r *RandomFallback) CanHandle(req protocol.Request) bool {
	return r.supports(req.Kind)
}

// Decide returns a random answer
func (r *RandomFallback) Decide(req protocol.Request) (protocol.Decision, error) {
	if !r.supports(req.Kind) {
		return protocol.Decision{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, req.Kind)
	}

	if req.Kind == protocol.KindBid {
		return r.bid(req)
	}

	if err := cardRequest(req); err != nil {
		return protocol.Decision{}, err
	}
	available := req.Available()

	var indices []int
	switch req.Kind {
	case protocol.KindRevealedSelection:
		indices = []int{r.rng.IntN(min(2, len(available)))}
	case protocol.KindDiscard:
		indices = r.discard(len(available))
	default:
		indices = []int{r.rng.IntN(len(available))}
	}

	r.logger.Debug("Random choice", "kind", req.Kind, "actor", req.Actor, "indices", indices)
	return protocol.NewCardDecision(req.Kind, indices...), nil
}

// bid passes 30% of the time, otherwise raises the current bid by 10, 20
// or 30 under a random trump
func (r *RandomFallback) bid(req protocol.Request) (protocol.Decision, error) {
	if req.Bid == nil {
		return protocol.Decision{}, ErrMalformedRequest
	}

	trump := cards.Suits[r.rng.IntN(len(cards.Suits))]
	if r.rng.Float64() < passProbability {
		return protocol.NewBidDecision(true, 0, trump), nil
	}
	amount := req.Bid.CurrentBid + (r.rng.IntN(3)+1)*10
	return protocol.NewBidDecision(false, amount, trump), nil
}

// discard picks distinct positions until n-HandCap are chosen. A hand at or
// under HandCap yields none.
func (r *RandomFallback) discard(n int) []int {
	if n <= HandCap {
		return nil
	}
	return r.rng.Perm(n)[:n-HandCap]
}
