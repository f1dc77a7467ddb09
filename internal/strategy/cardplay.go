package strategy

import (
	"github.com/charmbracelet/log"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/rules"
)

const (
	// TrumpConservationThreshold is the win probability below which a
	// trump choice is swapped for the best non-trump candidate
	TrumpConservationThreshold = 0.70

	// LowValueDiscardThreshold is the win probability below which the
	// cheapest non-trump candidate is thrown instead
	LowValueDiscardThreshold = 0.20
)

// CardPlay picks the card with the best expected trick value given the
// cards that are still unseen, then applies three overrides: throw the
// cheapest card when the trick is lost anyway, keep trumps unless they are
// likely to win, and dump a low card when winning is unlikely.
type CardPlay struct {
	base
}

// NewCardPlay creates the card play strategy
func NewCardPlay(logger *log.Logger) *CardPlay {
	return &CardPlay{base: newBase("cardplay", 1, logger, protocol.KindCardPlay)}
}

// CanHandle accepts card play requests
func (c *CardPlay) CanHandle(req protocol.Request) bool {
	return req.Kind == protocol.KindCardPlay
}

// Decide returns the index of the card to play
func (c *CardPlay) Decide(req protocol.Request) (protocol.Decision, error) {
	if err := cardRequest(req); err != nil {
		return protocol.Decision{}, err
	}

	snap := req.Snapshot
	p := play{
		candidates: req.Available(),
		unknown:    UnknownCards(req.Hand(), snap.Played(), snap.Trick()),
		trump:      snap.Trump(),
	}
	p.lead, p.following = snap.Lead()

	choice := p.choose()
	c.logger.Debug("Card chosen",
		"actor", req.Actor,
		"card", p.candidates[choice].String(),
		"following", p.following,
		"unknown", len(p.unknown))

	return protocol.NewCardDecision(protocol.KindCardPlay, choice), nil
}

// UnknownCards returns the full deck minus every known card. Each known
// card consumes exactly one matching copy.
func UnknownCards(hand, played, trick []cards.Card) []cards.Card {
	remaining := make(map[cards.Card]int, len(cards.Suits)*len(cards.Ranks))
	for _, card := range cards.FullDeck() {
		remaining[card]++
	}
	for _, known := range [][]cards.Card{hand, played, trick} {
		for _, card := range known {
			if remaining[card] > 0 {
				remaining[card]--
			}
		}
	}

	out := make([]cards.Card, 0, cards.DeckSize)
	for _, card := range cards.FullDeck() {
		if remaining[card] > 0 {
			remaining[card]--
			out = append(out, card)
		}
	}
	return out
}

// play holds the inputs of one card play decision
type play struct {
	candidates []cards.Card
	unknown    []cards.Card
	trump      cards.Suit
	lead       cards.Card
	following  bool
}

func (p play) choose() int {
	if p.following && !p.anyBeatsLead() {
		return p.cheapest()
	}

	choice := p.bestBy(func(cards.Card) bool { return true })

	if p.candidates[choice].IsTrump(p.trump) && p.winProbability(choice) < TrumpConservationThreshold {
		if alt := p.bestBy(p.nonTrump); alt >= 0 {
			choice = alt
		}
	}

	if p.winProbability(choice) < LowValueDiscardThreshold {
		if alt := p.lowestBy(p.nonTrump); alt >= 0 {
			choice = alt
		}
	}
	return choice
}

// expectedValue scores a candidate for the current trick. Leading uses
// plain rank points; following values the nine of trumps.
func (p play) expectedValue(i int) float64 {
	card := p.candidates[i]
	if p.following {
		if rules.CanBeat(card, p.lead, p.trump) {
			return float64(p.lead.Value(p.trump) + card.Value(p.trump))
		}
		return -float64(card.Value(p.trump))
	}

	win := p.winProbability(i)
	value := float64(card.Rank.Points())
	return win*(value+p.meanUnknownValue()) + (1-win)*(-value)
}

// winProbability is the chance the candidate takes the trick. Leading it
// is the share of unseen cards that cannot beat it; following it is known.
func (p play) winProbability(i int) float64 {
	card := p.candidates[i]
	if p.following {
		if rules.CanBeat(card, p.lead, p.trump) {
			return 1
		}
		return 0
	}
	if len(p.unknown) == 0 {
		return 1
	}
	beaters := 0
	for _, u := range p.unknown {
		if rules.CanBeat(u, card, p.trump) {
			beaters++
		}
	}
	return 1 - float64(beaters)/float64(len(p.unknown))
}

func (p play) meanUnknownValue() float64 {
	if len(p.unknown) == 0 {
		return 0
	}
	total := 0
	for _, u := range p.unknown {
		total += u.Rank.Points()
	}
	return float64(total) / float64(len(p.unknown))
}

func (p play) anyBeatsLead() bool {
	for _, card := range p.candidates {
		if rules.CanBeat(card, p.lead, p.trump) {
			return true
		}
	}
	return false
}

// cheapest returns the lowest valued non-trump candidate, or the lowest
// trump when every candidate is trump
func (p play) cheapest() int {
	if i := p.lowestBy(p.nonTrump); i >= 0 {
		return i
	}
	return p.lowestBy(func(cards.Card) bool { return true })
}

func (p play) nonTrump(card cards.Card) bool {
	return !card.IsTrump(p.trump)
}

// bestBy returns the first candidate with the highest expected value among
// those accepted by keep, or -1
func (p play) bestBy(keep func(cards.Card) bool) int {
	best, bestEV := -1, 0.0
	for i, card := range p.candidates {
		if !keep(card) {
			continue
		}
		if ev := p.expectedValue(i); best < 0 || ev > bestEV {
			best, bestEV = i, ev
		}
	}
	return best
}

// lowestBy returns the first candidate with the lowest card value among
// those accepted by keep, or -1
func (p play) lowestBy(keep func(cards.Card) bool) int {
	best, bestValue := -1, 0
	for i, card := range p.candidates {
		if !keep(card) {
			continue
		}
		if v := card.Value(p.trump); best < 0 || v < bestValue {
			best, bestValue = i, v
		}
	}
	return best
}
