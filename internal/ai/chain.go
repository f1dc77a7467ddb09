// Package ai routes decision requests to per-kind chains of strategies.
package ai

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/strategy"
)

var (
	// ErrChainExhausted means no strategy, not even the fallback, produced
	// a valid decision. It indicates a broken chain or a degenerate request.
	ErrChainExhausted = errors.New("decision chain exhausted")

	// ErrUnsupportedKind is returned for a kind without a registered chain
	ErrUnsupportedKind = errors.New("unsupported decision type")

	// ErrMissingChain is returned at build time when a kind has no chain
	ErrMissingChain = errors.New("missing decision chain")

	// ErrMissingFallback is returned at build time for a chain without a
	// fallback strategy
	ErrMissingFallback = errors.New("missing fallback strategy")
)

// Chain tries the strategies of one decision kind in order until one of
// them answers
type Chain struct {
	kind       protocol.Kind
	strategies []strategy.Strategy
	logger     *log.Logger
}

func newChain(kind protocol.Kind, strategies []strategy.Strategy, logger *log.Logger) *Chain {
	ordered := slices.Clone(strategies)
	slices.SortStableFunc(ordered, compareStrategies)
	return &Chain{
		kind:       kind,
		strategies: ordered,
		logger:     logger.WithPrefix("chain").With("kind", kind.String()),
	}
}

// compareStrategies orders by descending priority with fallbacks last
func compareStrategies(a, b strategy.Strategy) int {
	if a.Fallback() != b.Fallback() {
		if a.Fallback() {
			return 1
		}
		return -1
	}
	return cmp.Compare(b.Priority(), a.Priority())
}

// Kind returns the decision kind the chain answers
func (c *Chain) Kind() protocol.Kind {
	return c.kind
}

// Strategies returns the strategies in the order they are tried
func (c *Chain) Strategies() []strategy.Strategy {
	return slices.Clone(c.strategies)
}

// Handle returns the first valid decision. A strategy that errors, panics
// or answers invalidly is skipped.
func (c *Chain) Handle(req protocol.Request) (protocol.Decision, error) {
	for _, s := range c.strategies {
		if !s.CanHandle(req) {
			continue
		}
		d, err := c.try(s, req)
		if err != nil {
			c.logger.Warn("Strategy failed", "strategy", s.Name(), "fallback", s.Fallback(), "error", err)
			continue
		}
		if d.Kind != req.Kind || !d.Valid() {
			c.logger.Debug("Strategy gave no answer", "strategy", s.Name())
			continue
		}
		return d, nil
	}
	return protocol.Decision{}, fmt.Errorf("%w: %s", ErrChainExhausted, c.kind)
}

func (c *Chain) try(s strategy.Strategy, req protocol.Request) (d protocol.Decision, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", s.Name(), r)
		}
	}()
	return s.Decide(req)
}

// Reset resets every strategy in the chain
func (c *Chain) Reset() {
	for _, s := range c.strategies {
		s.Reset()
	}
}
