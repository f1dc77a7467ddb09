package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pinochle/internal/randutil"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "letters",
			input: "AS KS QS JS TS 9S",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Spades, Rank: King},
				{Suit: Spades, Rank: Queen},
				{Suit: Spades, Rank: Jack},
				{Suit: Spades, Rank: Ten},
				{Suit: Spades, Rank: Nine},
			},
		},
		{
			name:  "key form and commas",
			input: "5H,4D,0C",
			expected: []Card{
				{Suit: Hearts, Rank: Ace},
				{Suit: Diamonds, Rank: Ten},
				{Suit: Clubs, Rank: Nine},
			},
		},
		{
			name:     "ten as two digits",
			input:    "10h",
			expected: []Card{{Suit: Hearts, Rank: Ten}},
		},
		{
			name:    "invalid rank",
			input:   "XS",
			wantErr: true,
		},
		{
			name:    "rank code out of range",
			input:   "7S",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "AX",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCardKey(t *testing.T) {
	assert.Equal(t, "5S", NewCard(Spades, Ace).Key())
	assert.Equal(t, "0D", NewCard(Diamonds, Nine).Key())
	assert.Equal(t, "3H", NewCard(Hearts, King).Key())
}

func TestCardValue(t *testing.T) {
	nineOfSpades := NewCard(Spades, Nine)
	assert.Equal(t, 0, nineOfSpades.Value(Hearts))
	assert.Equal(t, TrumpNineValue, nineOfSpades.Value(Spades))
	assert.Equal(t, 0, nineOfSpades.Value(NoSuit))
	assert.Equal(t, 11, NewCard(Clubs, Ace).Value(Spades))
	assert.Equal(t, 10, NewCard(Clubs, Ten).Value(Clubs))
}

func TestRankOrder(t *testing.T) {
	// Ten ranks between King and Ace in Pinochle
	assert.Less(t, int(King), int(Ten))
	assert.Less(t, int(Ten), int(Ace))
	assert.Greater(t, Ten.Points(), King.Points())
}

func TestFullDeck(t *testing.T) {
	deck := FullDeck()
	require.Len(t, deck, DeckSize)

	counts := map[Card]int{}
	for _, c := range deck {
		counts[c]++
	}
	assert.Len(t, counts, 24)
	for c, n := range counts {
		assert.Equal(t, Copies, n, "card %s", c)
	}
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck(randutil.New(42))
	d.Shuffle()

	hand := d.DealN(12)
	assert.Len(t, hand, 12)
	assert.Equal(t, DeckSize-12, d.CardsRemaining())

	rest := d.DealN(100)
	assert.Len(t, rest, DeckSize-12)
	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestDeckShuffleDeterministic(t *testing.T) {
	a := NewDeck(randutil.New(7))
	b := NewDeck(randutil.New(7))
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.DealN(DeckSize), b.DealN(DeckSize))
}
