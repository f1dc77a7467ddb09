package ai

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/strategy"
)

// Constructor creates a strategy on demand. A constructor error skips the
// feature instead of failing the build.
type Constructor func() (strategy.Strategy, error)

// Flags answers whether a configuration flag is enabled
type Flags interface {
	Enabled(key string) bool
}

// ChainBuilder collects the strategies of one kind's chain
type ChainBuilder struct {
	kind       protocol.Kind
	flags      Flags
	strategies []strategy.Strategy
	fallback   strategy.Strategy
	logger     *log.Logger
}

// NewChainBuilder starts a chain for kind. The fallback is mandatory and
// always tried last.
func NewChainBuilder(kind protocol.Kind, fallback strategy.Strategy, flags Flags, logger *log.Logger) *ChainBuilder {
	if logger == nil {
		logger = log.Default()
	}
	return &ChainBuilder{
		kind:     kind,
		flags:    flags,
		fallback: fallback,
		logger:   logger,
	}
}

// Add appends a strategy. A strategy marked as fallback replaces the
// current fallback; a business strategy that cannot answer the chain's
// kind is ignored.
func (b *ChainBuilder) Add(s strategy.Strategy) *ChainBuilder {
	if s.Fallback() {
		b.fallback = s
		return b
	}
	if !strategy.Supports(s, b.kind) {
		b.logger.Warn("Strategy does not support chain kind", "strategy", s.Name(), "kind", b.kind.String())
		return b
	}
	b.strategies = append(b.strategies, s)
	return b
}

// AddIf adds the strategy built by ctor when cond holds
func (b *ChainBuilder) AddIf(cond bool, ctor Constructor) *ChainBuilder {
	if !cond {
		return b
	}
	s, err := ctor()
	if err != nil {
		b.logger.Warn("Failed to construct strategy", "kind", b.kind.String(), "error", err)
		return b
	}
	return b.Add(s)
}

// AddIfEnabled adds the strategy built by ctor when flag is enabled
func (b *ChainBuilder) AddIfEnabled(flag string, ctor Constructor) *ChainBuilder {
	enabled := b.flags != nil && b.flags.Enabled(flag)
	if !enabled {
		b.logger.Debug("Feature disabled", "flag", flag, "kind", b.kind.String())
		return b
	}
	s, err := ctor()
	if err != nil {
		b.logger.Warn("Failed to load strategy", "flag", flag, "error", err)
		return b
	}
	return b.Add(s)
}

// Build returns the ordered chain
func (b *ChainBuilder) Build() (*Chain, error) {
	if b.fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFallback, b.kind)
	}
	all := append(slices.Clone(b.strategies), b.fallback)
	return newChain(b.kind, all, b.logger), nil
}
