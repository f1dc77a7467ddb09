package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/randutil"
)

func TestFallbackDiscard(t *testing.T) {
	for seed := range int64(50) {
		f := NewRandomFallback(randutil.New(seed), testLogger())
		req := discardRequest(t, fourteen, cards.Spades)

		d, err := f.Decide(req)
		require.NoError(t, err)
		require.True(t, d.Valid())

		indices := d.Indices()
		require.Len(t, indices, 2)
		assert.NotEqual(t, indices[0], indices[1])
		for _, i := range indices {
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, 14)
		}
	}
}

func TestFallbackDiscardAtCapIsInvalid(t *testing.T) {
	f := NewRandomFallback(randutil.New(1), testLogger())
	d, err := f.Decide(discardRequest(t, "AS KS QS JS 9S TS 9H AH KD QC JC 9C", cards.Spades))
	require.NoError(t, err)
	assert.False(t, d.Valid())
}

func TestFallbackRevealPicksFromFirstTwo(t *testing.T) {
	hand := mustCards(t, "AS KS QS JS 9S")
	seen := map[int]bool{}
	for seed := range int64(50) {
		f := NewRandomFallback(randutil.New(seed), testLogger())
		req := protocol.NewCardRequest(protocol.KindRevealedSelection, snapshotFor(nil, nil, nil, cards.Spades), 0, hand)
		d, err := f.Decide(req)
		require.NoError(t, err)
		require.True(t, d.Valid())
		require.Less(t, d.First(), 2)
		seen[d.First()] = true
	}
	assert.Len(t, seen, 2)

	f := NewRandomFallback(randutil.New(1), testLogger())
	req := protocol.NewCardRequest(protocol.KindRevealedSelection, snapshotFor(nil, nil, nil, cards.Spades), 0, hand[:1])
	d, err := f.Decide(req)
	require.NoError(t, err)
	assert.Equal(t, 0, d.First())
}

func TestFallbackCardPlay(t *testing.T) {
	f := NewRandomFallback(randutil.New(7), testLogger())
	req := playRequest(t, "AS KH 9D", "", "", cards.Spades)
	for range 20 {
		d, err := f.Decide(req)
		require.NoError(t, err)
		require.True(t, d.Valid())
		assert.Less(t, d.First(), 3)
	}
}

func TestFallbackBid(t *testing.T) {
	f := NewRandomFallback(randutil.New(3), testLogger())
	passes, raises := 0, 0
	for range 200 {
		d, err := f.Decide(bidRequest(nil, 100, false))
		require.NoError(t, err)
		require.True(t, d.Valid())
		assert.True(t, d.Bid.Trump.Valid())
		if d.Bid.Pass {
			passes++
			continue
		}
		raises++
		assert.Contains(t, []int{110, 120, 130}, d.Bid.Amount)
	}
	assert.Positive(t, passes)
	assert.Positive(t, raises)
}

func TestFallbackUnsupportedKinds(t *testing.T) {
	f := NewRandomFallback(randutil.New(1), testLogger())
	for _, kind := range []protocol.Kind{protocol.KindTrumpSelection, protocol.KindCardChoose} {
		req := protocol.NewCardRequest(kind, snapshotFor(nil, nil, nil, cards.Spades), 0, mustCards(t, "AS"))
		assert.False(t, f.CanHandle(req))
		_, err := f.Decide(req)
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	}
}

func TestFallbackEmptyCandidates(t *testing.T) {
	f := NewRandomFallback(randutil.New(1), testLogger())
	req := protocol.NewCardRequest(protocol.KindCardPlay, snapshotFor(nil, nil, nil, cards.Spades), 0, nil)
	_, err := f.Decide(req)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
