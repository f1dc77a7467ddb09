package ai

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/config"
	"github.com/lox/pinochle/internal/meld"
	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/randutil"
	"github.com/lox/pinochle/internal/strategy"
)

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger handed to every chain and strategy
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// WithRand sets the random source shared by the AI's strategies
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) { b.rng = rng }
}

// WithSeat builds the AI for the given seat, which selects the per-player
// flags
func WithSeat(seat int) Option {
	return func(b *Builder) { b.seat = seat }
}

// Builder assembles an AI with one chain per decision kind. Every chain
// starts with the random fallback; ConfigureFromConfig attaches the
// business strategies the configuration enables.
type Builder struct {
	cfg      *config.Config
	analyzer *meld.Analyzer
	seat     int
	rng      *rand.Rand
	logger   *log.Logger
	chains   map[protocol.Kind]*ChainBuilder
}

// NewBuilder creates a builder. A nil cfg means config.Default and a nil
// analyzer loads the catalogue named by cfg.
func NewBuilder(cfg *config.Config, analyzer *meld.Analyzer, opts ...Option) *Builder {
	b := &Builder{cfg: cfg, analyzer: analyzer}
	for _, opt := range opts {
		opt(b)
	}
	if b.cfg == nil {
		b.cfg = config.Default()
	}
	if b.logger == nil {
		b.logger = log.Default()
	}
	if b.rng == nil {
		var seed int64
		b.rng, seed = randutil.Seeded(b.cfg.Seed)
		b.logger.Debug("Seeded AI", "seat", b.seat, "seed", seed)
	}
	if b.analyzer == nil {
		b.analyzer = meld.Load(meld.LoadOptions{
			Path:   b.cfg.MeldFile,
			Legacy: !b.cfg.AdditionalMelds,
			Logger: b.logger,
		})
	}

	fallback := strategy.NewRandomFallback(b.rng, b.logger)
	b.chains = make(map[protocol.Kind]*ChainBuilder, len(protocol.AllKinds()))
	for _, kind := range protocol.AllKinds() {
		b.chains[kind] = NewChainBuilder(kind, fallback, b.cfg, b.logger)
	}
	return b
}

// Chain returns the chain builder of kind for custom additions
func (b *Builder) Chain(kind protocol.Kind) *ChainBuilder {
	return b.chains[kind]
}

// Configure applies fn to the chain builder of kind
func (b *Builder) Configure(kind protocol.Kind, fn func(*ChainBuilder)) *Builder {
	if c, ok := b.chains[kind]; ok {
		fn(c)
	}
	return b
}

// ConfigureFromConfig attaches the strategies enabled by the configuration
func (b *Builder) ConfigureFromConfig() *Builder {
	return b.
		Configure(protocol.KindBid, func(c *ChainBuilder) {
			c.AddIfEnabled(config.SmartBidsKey(b.seat), func() (strategy.Strategy, error) {
				return strategy.NewBidding(b.analyzer, b.rng, b.logger), nil
			})
		}).
		Configure(protocol.KindCardPlay, func(c *ChainBuilder) {
			c.AddIfEnabled(config.KeySmartTrick, func() (strategy.Strategy, error) {
				return strategy.NewCardPlay(b.logger), nil
			})
		}).
		Configure(protocol.KindRevealedSelection, func(c *ChainBuilder) {
			c.AddIfEnabled(config.KeyAuto, b.scripted)
		}).
		Configure(protocol.KindDiscard, func(c *ChainBuilder) {
			c.AddIfEnabled(config.KeyAuto, b.scripted)
			c.AddIfEnabled(config.KeyCutThroat, func() (strategy.Strategy, error) {
				return strategy.NewDiscard(b.logger), nil
			})
		})
}

// scripted builds the replay strategy. Seats without a scripted reveal take
// the first card.
func (b *Builder) scripted() (strategy.Strategy, error) {
	script := strategy.Script{
		RevealChoice: make(map[int]int, config.PlayerCount),
		FinalCards:   make(map[int][]cards.Card, config.PlayerCount),
	}
	for seat, p := range b.cfg.Players {
		script.RevealChoice[seat] = 0
		if p.CutThroatChoice != nil {
			script.RevealChoice[seat] = *p.CutThroatChoice
		}
		if len(p.FinalCards) > 0 {
			script.FinalCards[seat] = p.FinalCards
		}
	}
	return strategy.NewScripted(script, b.logger), nil
}

// Analyzer returns the meld analyzer strategies are built with
func (b *Builder) Analyzer() *meld.Analyzer {
	return b.analyzer
}

// Build validates and returns the AI
func (b *Builder) Build() (*AI, error) {
	chains := make([]*Chain, 0, len(b.chains))
	for _, kind := range protocol.AllKinds() {
		cb, ok := b.chains[kind]
		if !ok {
			continue
		}
		chain, err := cb.Build()
		if err != nil {
			return nil, err
		}
		chains = append(chains, chain)
	}
	return New(b.logger, chains...)
}
