package meld

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pinochle/internal/cards"
)

func mustCards(t *testing.T, s string) []cards.Card {
	t.Helper()
	cs, err := cards.ParseCards(s)
	require.NoError(t, err)
	return cs
}

func mustChecker(t *testing.T, name string, score int, pattern string) Checker {
	t.Helper()
	c, err := NewChecker(name, score, pattern)
	require.NoError(t, err)
	return c
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func defaultAnalyzer() *Analyzer {
	return NewAnalyzer(BuildCheckers(DefaultCatalogue(), quietLogger()))
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "trump marriage", input: "2:TRUMP:1,3:TRUMP:1", want: "2:TRUMP:1,3:TRUMP:1"},
		{name: "concrete suits with spaces", input: " 1:D:2 , 2:S:2 ", want: "1:D:2,2:S:2"},
		{name: "rank letters", input: "Q:TRUMP:1,K:TRUMP:1", want: "2:TRUMP:1,3:TRUMP:1"},
		{name: "missing count", input: "2:S", wantErr: true},
		{name: "too many parts", input: "2:S:1:4", wantErr: true},
		{name: "non numeric count", input: "2:S:x", wantErr: true},
		{name: "zero count", input: "2:S:0", wantErr: true},
		{name: "unknown suit", input: "2:X:1", wantErr: true},
		{name: "unknown rank", input: "8:S:1", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePattern(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestCheckerRequiredResolvesTrump(t *testing.T) {
	c := mustChecker(t, "Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1")

	keys, ok := c.Required(cards.Hearts)
	require.True(t, ok)
	assert.Equal(t, []string{"2H", "3H"}, keys)

	_, ok = c.Required(cards.NoSuit)
	assert.False(t, ok)
	assert.False(t, c.CanForm(mustCards(t, "QH KH"), cards.NoSuit))
}

func TestCheckerCountsDuplicates(t *testing.T) {
	c := mustChecker(t, "Double Pinochle", 300, "1:D:2,2:S:2")

	assert.False(t, c.CanForm(mustCards(t, "JD QS QS"), cards.Spades))
	assert.True(t, c.CanForm(mustCards(t, "JD QS JD QS"), cards.Spades))
}

func TestCheckerRemove(t *testing.T) {
	c := mustChecker(t, "Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1")
	hand := mustCards(t, "QS AH QS KS")
	original := append([]cards.Card(nil), hand...)

	rest := c.Remove(hand, cards.Spades)
	assert.Equal(t, mustCards(t, "AH QS"), rest)
	assert.Equal(t, original, hand, "input must not be mutated")

	// not formable: everything is kept
	assert.Equal(t, mustCards(t, "QS AH"), c.Remove(mustCards(t, "QS AH"), cards.Spades))
}

func TestBestScoreScenario(t *testing.T) {
	a := NewAnalyzer([]Checker{mustChecker(t, "Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1")})

	assert.Equal(t, 40, a.BestScore(mustCards(t, "QS KS"), cards.Spades))
	assert.Equal(t, 0, a.BestScore(mustCards(t, "QS KH"), cards.Spades))
	assert.Equal(t, 80, a.BestScore(mustCards(t, "QS KS QS KS"), cards.Spades))
}

func TestBestScoreNoMeld(t *testing.T) {
	assert.Equal(t, 0, defaultAnalyzer().BestScore(mustCards(t, "AH 9C JD"), cards.Spades))
	assert.Equal(t, 0, defaultAnalyzer().BestScore(nil, cards.Spades))
}

func TestBestScoreSingleMeld(t *testing.T) {
	// Royal marriage also matches the common spade marriage; the best wins
	assert.Equal(t, 40, defaultAnalyzer().BestScore(mustCards(t, "QS KS"), cards.Spades))
	assert.Equal(t, 1500, defaultAnalyzer().BestScore(
		mustCards(t, "TS TS JS JS QS QS KS KS AS AS"), cards.Spades))
}

func TestBestScoreDisjointMelds(t *testing.T) {
	score, melds := defaultAnalyzer().BestCombination(mustCards(t, "QS KS JD QS"), cards.Spades)
	assert.Equal(t, 80, score)
	assert.ElementsMatch(t, []string{"Royal Marriage", "Pinochle"}, melds)
}

func TestBestScoreIsNotGreedy(t *testing.T) {
	a := NewAnalyzer([]Checker{
		mustChecker(t, "Big", 50, "2:S:1,3:S:1"),
		mustChecker(t, "Left", 40, "2:S:1,1:D:1"),
		mustChecker(t, "Right", 40, "3:S:1,4:S:1"),
	})

	score, melds := a.BestCombination(mustCards(t, "QS KS JD TS"), cards.Hearts)
	assert.Equal(t, 80, score)
	assert.ElementsMatch(t, []string{"Left", "Right"}, melds)
}

func TestBuildCheckersDropsMalformed(t *testing.T) {
	checkers := BuildCheckers([]Record{
		{"Dix", 10, "0:TRUMP:1"},
		{"", 20, "2:S:1,3:S:1"},
		{"Negative", -5, "2:S:1"},
		{"Bad Arity", 30, "2:S"},
		{"No Pattern", 30, ""},
		{"Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1"},
	}, quietLogger())

	require.Len(t, checkers, 2)
	assert.Equal(t, "Royal Marriage", checkers[0].Name)
	assert.Equal(t, "Dix", checkers[1].Name)
}

func TestLoadJSONCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melds.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "melds": [
    {"name": "Dix", "score": 10, "cards": "0:TRUMP:1"},
    {"name": "Royal Marriage", "score": 40, "cards": "2:TRUMP:1,3:TRUMP:1"},
    {"score": 20, "cards": "2:S:1,3:S:1"},
    {"name": "Fractional", "score": 12.5, "cards": "2:H:1"},
    {"name": "Bad Count", "score": 20, "cards": "2:H:one"},
    {"name": "Missing Pattern", "score": 20}
  ]
}`), 0o600))

	a := Load(LoadOptions{Path: path, Logger: quietLogger()})
	checkers := a.Checkers()
	require.Len(t, checkers, 2)
	assert.Equal(t, "Royal Marriage", checkers[0].Name)
	assert.Equal(t, "Dix", checkers[1].Name)
}

func TestLoadJSONArrayWithPatternField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melds.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"name": "Pinochle", "score": 40, "pattern": "1:D:1,2:S:1"}
]`), 0o600))

	a := Load(LoadOptions{Path: path, Logger: quietLogger()})
	require.Len(t, a.Checkers(), 1)
	assert.Equal(t, 40, a.BestScore(mustCards(t, "JD QS"), cards.Clubs))
}

func TestLoadHCLCatalogue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "melds.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
meld "Royal Marriage" {
  score   = 40
  pattern = "2:TRUMP:1,3:TRUMP:1"
}

meld "Broken" {
  score = 15
}
`), 0o600))

	a := Load(LoadOptions{Path: path, Logger: quietLogger()})
	require.Len(t, a.Checkers(), 1)
	assert.Equal(t, "Royal Marriage", a.Checkers()[0].Name)
}

func TestLoadFallbacks(t *testing.T) {
	t.Run("missing file uses default catalogue", func(t *testing.T) {
		a := Load(LoadOptions{Path: filepath.Join(t.TempDir(), "nope.json"), Logger: quietLogger()})
		assert.Len(t, a.Checkers(), 15)
	})

	t.Run("invalid json uses default catalogue", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "melds.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"melds": [`), 0o600))
		assert.Len(t, Load(LoadOptions{Path: path, Logger: quietLogger()}).Checkers(), 15)
	})

	t.Run("no valid records uses default catalogue", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "melds.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name": "x"}]`), 0o600))
		assert.Len(t, Load(LoadOptions{Path: path, Logger: quietLogger()}).Checkers(), 15)
	})

	t.Run("legacy flag ignores the file", func(t *testing.T) {
		a := Load(LoadOptions{Path: "whatever.json", Legacy: true, Logger: quietLogger()})
		assert.Len(t, a.Checkers(), 4)
	})

	t.Run("no path uses default catalogue", func(t *testing.T) {
		assert.Len(t, Load(LoadOptions{Logger: quietLogger()}).Checkers(), 15)
	})
}

func TestShippedCatalogueMatchesDefault(t *testing.T) {
	records, err := ReadCatalogue(filepath.Join("..", "..", "configs", "melds.json"))
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCatalogue()), len(BuildCheckers(records, quietLogger())))
}
