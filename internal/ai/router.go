package ai

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

// AI is the single entry point the game uses to ask for decisions. It
// holds one chain per decision kind and is used by one caller at a time.
type AI struct {
	chains map[protocol.Kind]*Chain
	logger *log.Logger
}

// New assembles an AI from chains. Every decision kind must have exactly
// one chain.
func New(logger *log.Logger, chains ...*Chain) (*AI, error) {
	if logger == nil {
		logger = log.Default()
	}
	byKind := make(map[protocol.Kind]*Chain, len(chains))
	for _, c := range chains {
		if _, dup := byKind[c.Kind()]; dup {
			return nil, fmt.Errorf("duplicate chain for %s", c.Kind())
		}
		byKind[c.Kind()] = c
	}
	for _, kind := range protocol.AllKinds() {
		if _, ok := byKind[kind]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingChain, kind)
		}
	}
	return &AI{chains: byKind, logger: logger.WithPrefix("ai")}, nil
}

// MakeDecision dispatches req to the chain of its kind
func (a *AI) MakeDecision(req protocol.Request) (protocol.Decision, error) {
	chain, ok := a.chains[req.Kind]
	if !ok {
		return protocol.Decision{}, fmt.Errorf("%w: %s", ErrUnsupportedKind, req.Kind)
	}
	d, err := chain.Handle(req)
	if err != nil {
		a.logger.Error("No decision", "kind", req.Kind.String(), "actor", req.Actor, "error", err)
		return protocol.Decision{}, err
	}
	return d, nil
}

// DecideBid asks for a bid
func (a *AI) DecideBid(snap protocol.Snapshot, actor, currentBid int, firstBid bool) (protocol.BidDecision, error) {
	d, err := a.MakeDecision(protocol.NewBidRequest(snap, actor, currentBid, firstBid))
	if err != nil {
		return protocol.BidDecision{}, err
	}
	return *d.Bid, nil
}

// DecideCards asks a card selecting question and returns the chosen
// positions in available
func (a *AI) DecideCards(kind protocol.Kind, snap protocol.Snapshot, actor int, available []cards.Card) ([]int, error) {
	if !kind.IsCardKind() {
		return nil, fmt.Errorf("%w: %s is not a card decision", ErrUnsupportedKind, kind)
	}
	d, err := a.MakeDecision(protocol.NewCardRequest(kind, snap, actor, available))
	if err != nil {
		return nil, err
	}
	return d.Indices(), nil
}

// Supports reports whether a chain is registered for kind
func (a *AI) Supports(kind protocol.Kind) bool {
	_, ok := a.chains[kind]
	return ok
}

// Chain returns the chain registered for kind
func (a *AI) Chain(kind protocol.Kind) (*Chain, bool) {
	c, ok := a.chains[kind]
	return c, ok
}

// Kinds returns the registered kinds in declaration order
func (a *AI) Kinds() []protocol.Kind {
	kinds := slices.Collect(maps.Keys(a.chains))
	slices.Sort(kinds)
	return kinds
}

// Reset clears per-game state in every chain
func (a *AI) Reset() {
	for _, c := range a.chains {
		c.Reset()
	}
}
