package cards

import (
	"fmt"
	"strconv"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs

	// NoSuit marks an unset trump
	NoSuit Suit = -1
)

// Suits lists the four suits in deck order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Code returns the single letter shorthand used in meld patterns and card keys
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return ""
	}
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// ParseSuit parses a suit code (S, H, D, C) or symbol
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "S", "s", "♠":
		return Spades, nil
	case "H", "h", "♥":
		return Hearts, nil
	case "D", "d", "♦":
		return Diamonds, nil
	case "C", "c", "♣":
		return Clubs, nil
	}
	return NoSuit, fmt.Errorf("invalid suit: %q", s)
}

// Rank represents a Pinochle card rank. The numeric value is the rank
// order used for trick comparison and meld patterns (Nine=0 … Ace=5).
type Rank int

const (
	Nine Rank = iota
	Jack
	Queen
	King
	Ten
	Ace
)

// Ranks lists the six ranks from lowest to highest
var Ranks = [...]Rank{Nine, Jack, Queen, King, Ten, Ace}

// TrumpNineValue is the score of the nine of trumps
const TrumpNineValue = 10

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Nine:
		return "9"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ten:
		return "T"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Code returns the rank order as used in card keys ("0" … "5")
func (r Rank) Code() string {
	return strconv.Itoa(int(r))
}

// Points returns the trick score of the rank
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// Valid reports whether r is a Pinochle rank
func (r Rank) Valid() bool {
	return r >= Nine && r <= Ace
}

// ParseRank accepts a rank letter (9 J Q K T A, or 10) or a rank code (0-5)
func ParseRank(s string) (Rank, error) {
	switch s {
	case "9":
		return Nine, nil
	case "J", "j":
		return Jack, nil
	case "Q", "q":
		return Queen, nil
	case "K", "k":
		return King, nil
	case "T", "t", "10":
		return Ten, nil
	case "A", "a":
		return Ace, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !Rank(n).Valid() {
		return 0, fmt.Errorf("invalid rank: %q", s)
	}
	return Rank(n), nil
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Key returns the canonical rank+suit key, e.g. "5S" for the ace of spades.
// Two physical copies of a card share the same key.
func (c Card) Key() string {
	return c.Rank.Code() + c.Suit.Code()
}

// IsTrump reports whether the card belongs to the trump suit
func (c Card) IsTrump(trump Suit) bool {
	return trump != NoSuit && c.Suit == trump
}

// Value returns the trick score of the card. The nine of trumps is worth
// TrumpNineValue instead of zero.
func (c Card) Value(trump Suit) int {
	if c.Rank == Nine && c.IsTrump(trump) {
		return TrumpNineValue
	}
	return c.Rank.Points()
}
