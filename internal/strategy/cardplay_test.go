package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

func playRequest(t *testing.T, hand, played, trick string, trump cards.Suit) protocol.Request {
	t.Helper()
	h := mustCards(t, hand)
	snap := snapshotFor(h, mustCards(t, played), mustCards(t, trick), trump)
	return protocol.NewCardRequest(protocol.KindCardPlay, snap, 0, h)
}

func TestUnknownCardsRespectsMultiplicity(t *testing.T) {
	unknown := UnknownCards(mustCards(t, "AS 9H"), mustCards(t, "AS"), mustCards(t, "KD"))
	assert.Len(t, unknown, cards.DeckSize-4)

	count := func(s string) int {
		c := mustCards(t, s)[0]
		n := 0
		for _, u := range unknown {
			if u == c {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 0, count("AS"))
	assert.Equal(t, 1, count("9H"))
	assert.Equal(t, 1, count("KD"))
	assert.Equal(t, 2, count("QC"))
}

func TestCardPlayFollowing(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		trick string
		want  string
	}{
		{name: "wins with same suit", hand: "9D AH", trick: "KH", want: "AH"},
		{name: "wins with trump", hand: "9D QS", trick: "KH", want: "QS"},
		{name: "lost trick throws cheapest non-trump", hand: "9S TD KH", trick: "AS", want: "KH"},
		{name: "lost trick with only trumps throws cheapest trump", hand: "9S KS", trick: "AS", want: "KS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := playRequest(t, tt.hand, "", tt.trick, cards.Spades)
			d, err := NewCardPlay(testLogger()).Decide(req)
			require.NoError(t, err)
			require.True(t, d.Valid())
			assert.Equal(t, tt.want, req.Available()[d.First()].Rank.String()+req.Available()[d.First()].Suit.Code())
		})
	}
}

func TestCardPlayLeadingAlwaysValid(t *testing.T) {
	req := playRequest(t, "9S AH KD QC JS TH", "", "", cards.Spades)
	d, err := NewCardPlay(testLogger()).Decide(req)
	require.NoError(t, err)
	require.True(t, d.Valid())
	assert.Len(t, d.Indices(), 1)
	assert.Less(t, d.First(), len(req.Available()))
}

func TestCardPlayNoCandidates(t *testing.T) {
	req := protocol.NewCardRequest(protocol.KindCardPlay, snapshotFor(nil, nil, nil, cards.Spades), 0, nil)
	_, err := NewCardPlay(testLogger()).Decide(req)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestPlayWinProbabilityLeading(t *testing.T) {
	p := play{
		candidates: mustCards(t, "KS 9H"),
		unknown:    mustCards(t, "AS TS 9C QH JH 9H"),
		trump:      cards.Spades,
	}

	assert.InDelta(t, 4.0/6.0, p.winProbability(0), 1e-9)
	assert.InDelta(t, 2.0/6.0, p.winProbability(1), 1e-9)
	assert.InDelta(t, 26.0/6.0, p.meanUnknownValue(), 1e-9)

	empty := play{candidates: mustCards(t, "9H"), trump: cards.Spades}
	assert.Equal(t, 1.0, empty.winProbability(0))
}

func TestPlayTrumpConservation(t *testing.T) {
	// KS has the best expected value but only a 4/6 chance to hold
	p := play{
		candidates: mustCards(t, "KS 9H"),
		unknown:    mustCards(t, "AS TS 9C QH JH 9H"),
		trump:      cards.Spades,
	}
	require.Greater(t, p.expectedValue(0), p.expectedValue(1))
	assert.Equal(t, 1, p.choose())
}

func TestPlayKeepsConfidentTrump(t *testing.T) {
	p := play{
		candidates: mustCards(t, "AS 9H"),
		unknown:    mustCards(t, "TS 9C QH JH KD"),
		trump:      cards.Spades,
	}
	assert.Equal(t, 1.0, p.winProbability(0))
	assert.Equal(t, 0, p.choose())
}

func TestPlayLowValueDiscard(t *testing.T) {
	// every unseen card beats both side cards
	p := play{
		candidates: mustCards(t, "QS AH 9D"),
		unknown:    mustCards(t, "AS AS TS TS KS"),
		trump:      cards.Spades,
	}
	assert.Equal(t, 2, p.choose())
}
