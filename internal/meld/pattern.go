package meld

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pinochle/internal/cards"
)

// TrumpToken is the pattern suit placeholder resolved against the hand's trump
const TrumpToken = "TRUMP"

// ErrInvalidPattern is returned for patterns that do not follow the
// RANK:SUIT:COUNT grammar
var ErrInvalidPattern = errors.New("invalid meld pattern")

// Requirement is one RANK:SUIT:COUNT triple
type Requirement struct {
	Rank  cards.Rank
	Suit  cards.Suit // ignored when Trump is set
	Trump bool
	Count int
}

// Pattern is the ordered list of requirements of a meld
type Pattern []Requirement

// ParsePattern parses comma separated RANK:SUIT:COUNT triples. RANK is a
// rank code (0 nine … 5 ace) or letter, SUIT a suit code or TRUMP.
func ParsePattern(s string) (Pattern, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}

	var out Pattern
	for _, triple := range strings.Split(s, ",") {
		parts := strings.Split(strings.TrimSpace(triple), ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q is not RANK:SUIT:COUNT", ErrInvalidPattern, triple)
		}

		rank, err := cards.ParseRank(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
		}

		req := Requirement{Rank: rank}
		if suit := strings.TrimSpace(parts[1]); suit == TrumpToken {
			req.Trump = true
			req.Suit = cards.NoSuit
		} else {
			req.Suit, err = cards.ParseSuit(suit)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
			}
		}

		req.Count, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || req.Count <= 0 {
			return nil, fmt.Errorf("%w: bad count in %q", ErrInvalidPattern, triple)
		}
		out = append(out, req)
	}
	return out, nil
}

// String renders the pattern in canonical form, e.g. "2:TRUMP:1,3:TRUMP:1"
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, r := range p {
		suit := TrumpToken
		if !r.Trump {
			suit = r.Suit.Code()
		}
		parts[i] = fmt.Sprintf("%s:%s:%d", r.Rank.Code(), suit, r.Count)
	}
	return strings.Join(parts, ",")
}

// Size returns the number of cards the pattern consumes
func (p Pattern) Size() int {
	n := 0
	for _, r := range p {
		n += r.Count
	}
	return n
}

// keys expands the pattern into card keys for the given trump. It reports
// false when the pattern references TRUMP and no trump is known.
func (p Pattern) keys(trump cards.Suit) ([]string, bool) {
	out := make([]string, 0, p.Size())
	for _, r := range p {
		suit := r.Suit
		if r.Trump {
			if !trump.Valid() {
				return nil, false
			}
			suit = trump
		}
		key := cards.NewCard(suit, r.Rank).Key()
		for range r.Count {
			out = append(out, key)
		}
	}
	return out, true
}
