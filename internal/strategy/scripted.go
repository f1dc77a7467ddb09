package strategy

import (
	"maps"

	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

// Script holds predetermined cut-throat answers per player, used to replay
// fixed games
type Script struct {
	// RevealChoice is the revealed card (0 or 1) a player takes
	RevealChoice map[int]int

	// FinalCards is the hand a player keeps after discarding
	FinalCards map[int][]cards.Card
}

// Scripted answers reveal and discard requests from a Script. Players
// without an entry are left to the rest of the chain.
type Scripted struct {
	base
	script Script
}

// NewScripted creates a scripted strategy. It outranks every heuristic.
func NewScripted(script Script, logger *log.Logger) *Scripted {
	s := Script{
		RevealChoice: maps.Clone(script.RevealChoice),
		FinalCards:   make(map[int][]cards.Card, len(script.FinalCards)),
	}
	for player, keep := range script.FinalCards {
		s.FinalCards[player] = append([]cards.Card(nil), keep...)
	}
	return &Scripted{
		base:   newBase("scripted", 10, logger, protocol.KindRevealedSelection, protocol.KindDiscard),
		script: s,
	}
}

// CanHandle accepts requests for players with a scripted answer
func (s *Scripted) CanHandle(req protocol.Request) bool {
	switch req.Kind {
	case protocol.KindRevealedSelection:
		_, ok := s.script.RevealChoice[req.Actor]
		return ok
	case protocol.KindDiscard:
		_, ok := s.script.FinalCards[req.Actor]
		return ok && len(req.Available()) > HandCap
	default:
		return false
	}
}

// Decide returns the scripted answer
func (s *Scripted) Decide(req protocol.Request) (protocol.Decision, error) {
	if !s.supports(req.Kind) {
		return protocol.Decision{}, ErrUnsupportedKind
	}
	if err := cardRequest(req); err != nil {
		return protocol.Decision{}, err
	}

	if req.Kind == protocol.KindRevealedSelection {
		choice := min(max(s.script.RevealChoice[req.Actor], 0), 1, len(req.Available())-1)
		s.logger.Debug("Scripted reveal", "actor", req.Actor, "choice", choice)
		return protocol.NewCardDecision(req.Kind, choice), nil
	}

	indices := discardAllBut(req.Available(), s.script.FinalCards[req.Actor])
	s.logger.Debug("Scripted discard", "actor", req.Actor, "count", len(indices))
	return protocol.NewCardDecision(req.Kind, indices...), nil
}

// discardAllBut returns the positions of hand not covered by keep. Each
// kept card protects one copy.
func discardAllBut(hand, keep []cards.Card) []int {
	want := make(map[cards.Card]int, len(keep))
	for _, card := range keep {
		want[card]++
	}
	var out []int
	for i, card := range hand {
		if want[card] > 0 {
			want[card]--
			continue
		}
		out = append(out, i)
	}
	return out
}
