package simulator

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pinochle/internal/ai"
	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/config"
	"github.com/lox/pinochle/internal/meld"
	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/randutil"
	"github.com/lox/pinochle/internal/rules"
	"github.com/lox/pinochle/internal/statistics"
	"github.com/lox/pinochle/internal/strategy"
)

const (
	// maxBidRounds stops two ever-raising bidders
	maxBidRounds = 64
)

// Config holds configuration for running simulations
type Config struct {
	Seed     int64
	AI       *config.Config
	Analyzer *meld.Analyzer
	Clock    quartz.Clock
	Logger   *log.Logger
}

// Simulator plays complete two seat games between AIs built from the same
// configuration
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a simulator. Missing fields take defaults: the default AI
// configuration, the catalogue it names, a real clock and the default
// logger.
func New(cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.AI == nil {
		cfg.AI = config.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = meld.Load(meld.LoadOptions{
			Path:   cfg.AI.MeldFile,
			Legacy: !cfg.AI.AdditionalMelds,
			Logger: cfg.Logger,
		})
	}
	return &Simulator{config: cfg, logger: cfg.Logger.WithPrefix("simulator")}
}

// Summary aggregates a simulation run
type Summary struct {
	Stats     *statistics.Statistics
	Decisions map[protocol.Kind]int
	Failures  int
	Latency   time.Duration
	Slowest   time.Duration
	Elapsed   time.Duration
}

// MeanLatency returns the mean time spent per decision
func (s *Summary) MeanLatency() time.Duration {
	total := 0
	for _, n := range s.Decisions {
		total += n
	}
	if total == 0 {
		return 0
	}
	return s.Latency / time.Duration(total)
}

func (s *Summary) add(g *Game) {
	s.Stats.Add(g.Result)
	for kind, n := range g.Decisions {
		s.Decisions[kind] += n
	}
	s.Failures += g.Failures
	s.Latency += g.Latency
	s.Slowest = max(s.Slowest, g.Slowest)
}

// Run plays games on up to workers goroutines. Game i uses a seed derived
// from the configured seed, so a run is reproducible regardless of worker
// count.
func (s *Simulator) Run(ctx context.Context, games, workers int) (*Summary, error) {
	if games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", games)
	}
	workers = max(1, min(workers, games))

	start := s.config.Clock.Now()
	played := make([]*Game, games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range games {
		seed := randutil.Derive(s.config.Seed, i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			game, err := s.Play(seed)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, seed, err)
			}
			played[i] = game
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Stats:     &statistics.Statistics{},
		Decisions: make(map[protocol.Kind]int),
	}
	for _, game := range played {
		summary.add(game)
	}
	summary.Elapsed = s.config.Clock.Now().Sub(start)

	if err := summary.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"games", games,
		"workers", workers,
		"failures", summary.Failures,
		"elapsed", summary.Elapsed)
	return summary, nil
}

// Game is the record of one played game
type Game struct {
	Result    statistics.GameResult
	Trump     cards.Suit
	Hands     [statistics.Seats][]cards.Card // Hands after the auction and discards
	Decisions map[protocol.Kind]int
	Failures  int
	Latency   time.Duration
	Slowest   time.Duration
}

// table is the mutable state of a game in progress
type table struct {
	sim    *Simulator
	logger *log.Logger
	seats  [statistics.Seats]*ai.AI
	deck   *cards.Deck
	hands  [statistics.Seats][]cards.Card
	played []cards.Card
	trick  []cards.Card
	trump  cards.Suit
	bid    int
	scores [statistics.Seats]int
	winner int
	game   *Game
}

// Play plays one game from seed
func (s *Simulator) Play(seed int64) (*Game, error) {
	t := &table{
		sim:    s,
		logger: s.logger.With("seed", seed),
		deck:   cards.NewDeck(randutil.New(seed)),
		trump:  cards.NoSuit,
		game: &Game{
			Result:    statistics.GameResult{Seed: seed},
			Decisions: make(map[protocol.Kind]int),
		},
	}

	for seat := range statistics.Seats {
		a, err := ai.NewBuilder(s.config.AI, s.config.Analyzer,
			ai.WithSeat(seat),
			ai.WithRand(randutil.New(randutil.Derive(seed, seat))),
			ai.WithLogger(s.config.Logger),
		).ConfigureFromConfig().Build()
		if err != nil {
			return nil, fmt.Errorf("build AI for seat %d: %w", seat, err)
		}
		t.seats[seat] = a
	}

	t.deck.Shuffle()
	for seat := range statistics.Seats {
		t.hands[seat] = t.deck.DealN(strategy.HandCap)
	}

	t.auction()
	if s.config.AI.CutThroat {
		t.cutThroat()
	}

	for seat := range statistics.Seats {
		t.game.Result.Melds[seat] = s.config.Analyzer.BestScore(t.hands[seat], t.trump)
		t.scores[seat] = t.game.Result.Melds[seat]
		t.game.Hands[seat] = slices.Clone(t.hands[seat])
	}

	if err := t.playTricks(); err != nil {
		return nil, err
	}

	t.game.Trump = t.trump
	t.game.Result.Scores = t.scores
	t.game.Result.Declarer = t.winner
	t.game.Result.Bid = t.bid
	for _, n := range t.game.Decisions {
		t.game.Result.Decisions += n
	}

	t.logger.Debug("Game over",
		"trump", t.trump.String(),
		"declarer", t.winner,
		"bid", t.bid,
		"scores", t.scores)
	return t.game, nil
}

func (t *table) snapshot() protocol.Snapshot {
	return protocol.NewSnapshot(protocol.SnapshotParams{
		Hands:      t.hands[:],
		Played:     t.played,
		Trick:      t.trick,
		Trump:      t.trump,
		CurrentBid: t.bid,
		Scores:     t.scores[:],
		PackSize:   t.deck.CardsRemaining(),
		BidWinner:  t.winner,
	})
}

// timed measures a decision on the simulator's clock
func (t *table) timed(kind protocol.Kind, fn func() error) error {
	clock := t.sim.config.Clock
	start := clock.Now()
	err := fn()
	elapsed := clock.Now().Sub(start)

	t.game.Decisions[kind]++
	t.game.Latency += elapsed
	t.game.Slowest = max(t.game.Slowest, elapsed)
	if err != nil {
		t.game.Failures++
	}
	return err
}

func (t *table) decideBid(seat int, firstBid bool) protocol.BidDecision {
	var d protocol.BidDecision
	err := t.timed(protocol.KindBid, func() error {
		var err error
		d, err = t.seats[seat].DecideBid(t.snapshot(), seat, t.bid, firstBid)
		return err
	})
	if err != nil {
		t.logger.Warn("Bid failed, passing", "seat", seat, "error", err)
		return protocol.BidDecision{Pass: true, Trump: cards.NoSuit}
	}
	return d
}

// decideCards asks seat to pick from available. A failed or out of range
// answer falls back to the first candidates.
func (t *table) decideCards(kind protocol.Kind, seat int, available []cards.Card, want int) []int {
	var indices []int
	err := t.timed(kind, func() error {
		var err error
		indices, err = t.seats[seat].DecideCards(kind, t.snapshot(), seat, available)
		return err
	})

	valid := err == nil && len(indices) > 0
	for _, i := range indices {
		if i < 0 || i >= len(available) {
			valid = false
		}
	}
	if valid {
		return indices
	}

	t.logger.Warn("Card decision failed, taking first candidates", "kind", kind.String(), "seat", seat, "error", err)
	first := make([]int, 0, want)
	for i := range min(want, len(available)) {
		first = append(first, i)
	}
	return first
}

// auction alternates bids starting with seat 0 until a seat passes. The
// other seat wins at the current bid under its last recommended trump.
func (t *table) auction() {
	trumps := [statistics.Seats]cards.Suit{cards.NoSuit, cards.NoSuit}
	seat, first := 0, true

	for round := 0; ; round++ {
		d := t.decideBid(seat, first)
		if d.Trump.Valid() {
			trumps[seat] = d.Trump
		}

		raises := !d.Pass && (d.Amount > t.bid || (first && d.Amount >= t.bid))
		if !raises {
			t.winner = 1 - seat
			break
		}

		t.bid = d.Amount
		if round >= maxBidRounds {
			t.winner = seat
			break
		}
		seat, first = 1-seat, false
	}

	if !trumps[t.winner].Valid() {
		d := t.decideBid(t.winner, true)
		trumps[t.winner] = d.Trump
	}
	t.trump = trumps[t.winner]
	if !t.trump.Valid() {
		t.trump = strategy.NewBidding(t.sim.config.Analyzer, randutil.New(t.game.Result.Seed), t.logger).
			AssumedTrump(t.hands[t.winner])
	}

	t.logger.Debug("Auction won", "seat", t.winner, "bid", t.bid, "trump", t.trump.String())
}

// cutThroat reveals two pack cards for the declarer to choose from, deals
// the rest of the pack alternately and has both seats discard to a full
// hand
func (t *table) cutThroat() {
	revealed := t.deck.DealN(2)
	if len(revealed) == 2 {
		pick := t.decideCards(protocol.KindRevealedSelection, t.winner, revealed, 1)[0]
		t.hands[t.winner] = append(t.hands[t.winner], revealed[pick])
		t.hands[1-t.winner] = append(t.hands[1-t.winner], revealed[1-pick])
	}

	for seat := t.winner; t.deck.CardsRemaining() > 0; seat = 1 - seat {
		card, _ := t.deck.Deal()
		t.hands[seat] = append(t.hands[seat], card)
	}

	for seat := range statistics.Seats {
		t.discard(seat)
	}
}

func (t *table) discard(seat int) {
	hand := t.hands[seat]
	excess := len(hand) - strategy.HandCap
	if excess <= 0 {
		return
	}

	indices := t.decideCards(protocol.KindDiscard, seat, hand, excess)
	t.hands[seat] = removeIndices(hand, indices)

	// a short discard is topped up from the worst cards
	if extra := len(t.hands[seat]) - strategy.HandCap; extra > 0 {
		t.hands[seat] = removeIndices(t.hands[seat], strategy.DiscardOrder(t.hands[seat], t.trump, extra))
	}
}

// playTricks plays until a hand runs out. The declarer leads first and the
// winner of each trick leads the next.
func (t *table) playTricks() error {
	leader := t.winner
	tricks := min(len(t.hands[0]), len(t.hands[1]))

	for n := range tricks {
		t.trick = nil
		for _, seat := range []int{leader, 1 - leader} {
			legal := rules.LegalPlays(t.hands[seat], t.trick, t.trump)
			if len(legal) == 0 {
				return fmt.Errorf("seat %d has no legal play", seat)
			}
			available := make([]cards.Card, len(legal))
			for i, idx := range legal {
				available[i] = t.hands[seat][idx]
			}

			pick := t.decideCards(protocol.KindCardPlay, seat, available, 1)[0]
			idx := legal[pick]
			t.trick = append(t.trick, t.hands[seat][idx])
			t.hands[seat] = slices.Delete(t.hands[seat], idx, idx+1)
		}

		taker := leader
		if rules.TrickWinner(t.trick[0], t.trick[1], t.trump) == 1 {
			taker = 1 - leader
		}
		t.scores[taker] += rules.TrickPoints(t.trick, t.trump)
		if n == tricks-1 {
			t.scores[taker] += rules.LastTrickBonus
		}

		t.played = append(t.played, t.trick...)
		t.logger.Debug("Trick", "n", n+1, "cards", cards.Format(t.trick), "taker", taker)
		leader = taker
	}

	t.trick = nil
	t.game.Result.Tricks = tricks
	return nil
}

// removeIndices returns hand without the given positions
func removeIndices(hand []cards.Card, indices []int) []cards.Card {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := make([]cards.Card, 0, len(hand))
	for i, card := range hand {
		if !drop[i] {
			kept = append(kept, card)
		}
	}
	return kept
}
