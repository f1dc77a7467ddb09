// Package strategy contains the reasoning units the AI chains are built
// from. Each strategy answers one or more decision kinds and may decline a
// request through CanHandle or by returning an invalid decision.
package strategy

import (
	"errors"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/protocol"
)

// HandCap is the number of cards a player keeps after the cut-throat discard
const HandCap = 12

var (
	// ErrUnsupportedKind is returned when a strategy is asked a kind it
	// does not answer
	ErrUnsupportedKind = errors.New("unsupported decision kind")

	// ErrNoCandidates is returned for card requests without candidates
	ErrNoCandidates = errors.New("no candidate cards")

	// ErrMalformedRequest is returned when a request lacks the payload its
	// kind requires
	ErrMalformedRequest = errors.New("malformed request")
)

// Strategy is one reasoning unit of a decision chain
type Strategy interface {
	// Name identifies the strategy in logs
	Name() string

	// Kinds lists every decision kind the strategy can answer
	Kinds() []protocol.Kind

	// Priority orders strategies within a chain, highest first
	Priority() int

	// Fallback marks the strategy a chain must try last and that must
	// answer every kind it lists
	Fallback() bool

	// CanHandle reports whether the strategy wants to answer req
	CanHandle(req protocol.Request) bool

	// Decide answers req. An error or an invalid decision means "no answer".
	Decide(req protocol.Request) (protocol.Decision, error)

	// Reset clears any per-game state
	Reset()
}

// Supports reports whether s lists kind
func Supports(s Strategy, kind protocol.Kind) bool {
	return slices.Contains(s.Kinds(), kind)
}

// base carries the fields every strategy shares
type base struct {
	name     string
	kinds    []protocol.Kind
	priority int
	logger   *log.Logger
}

func newBase(name string, priority int, logger *log.Logger, kinds ...protocol.Kind) base {
	if logger == nil {
		logger = log.Default()
	}
	return base{
		name:     name,
		kinds:    kinds,
		priority: priority,
		logger:   logger.WithPrefix(name),
	}
}

func (b base) Name() string { return b.name }

func (b base) Kinds() []protocol.Kind { return slices.Clone(b.kinds) }

func (b base) Priority() int { return b.priority }

func (b base) Fallback() bool { return false }

func (b base) Reset() {}

func (b base) supports(k protocol.Kind) bool { return slices.Contains(b.kinds, k) }

// cardRequest validates the payload of a card selecting request
func cardRequest(req protocol.Request) error {
	if req.Cards == nil {
		return ErrMalformedRequest
	}
	if len(req.Cards.Available) == 0 {
		return ErrNoCandidates
	}
	return nil
}
