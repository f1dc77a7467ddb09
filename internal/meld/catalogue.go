package meld

import (
	"cmp"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tidwall/gjson"
)

// Record is one catalogue entry as stored on disk
type Record struct {
	Name    string
	Score   int
	Pattern string
}

// DefaultCatalogue is used when no catalogue file can be loaded
func DefaultCatalogue() []Record {
	return []Record{
		{"Double Run", 1500, "4:TRUMP:2,1:TRUMP:2,2:TRUMP:2,3:TRUMP:2,5:TRUMP:2"},
		{"Jacks Abound", 400, "1:S:2,1:H:2,1:D:2,1:C:2"},
		{"Double Pinochle", 300, "1:D:2,2:S:2"},
		{"Ace Run + Royal Marriage", 230, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:2,3:TRUMP:2,5:TRUMP:1"},
		{"Ace Run + Extra King", 190, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:1,3:TRUMP:2,5:TRUMP:1"},
		{"Ace Run + Extra Queen", 190, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:2,3:TRUMP:1,5:TRUMP:1"},
		{"Ten to Ace Run", 150, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:1,3:TRUMP:1,5:TRUMP:1"},
		{"Aces Around", 100, "5:S:1,5:H:1,5:D:1,5:C:1"},
		{"Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1"},
		{"Pinochle", 40, "1:D:1,2:S:1"},
		{"Common Marriage Spades", 20, "2:S:1,3:S:1"},
		{"Common Marriage Hearts", 20, "2:H:1,3:H:1"},
		{"Common Marriage Diamonds", 20, "2:D:1,3:D:1"},
		{"Common Marriage Clubs", 20, "2:C:1,3:C:1"},
		{"Dix", 10, "0:TRUMP:1"},
	}
}

// LegacyCatalogue is the four meld set of the basic game, selected with
// the melds.additional=false flag
func LegacyCatalogue() []Record {
	return []Record{
		{"Ace Run + Extra King", 190, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:1,3:TRUMP:2,5:TRUMP:1"},
		{"Ace Run + Extra Queen", 190, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:2,3:TRUMP:1,5:TRUMP:1"},
		{"Ten to Ace Run", 150, "4:TRUMP:1,1:TRUMP:1,2:TRUMP:1,3:TRUMP:1,5:TRUMP:1"},
		{"Royal Marriage", 40, "2:TRUMP:1,3:TRUMP:1"},
	}
}

// ReadCatalogue reads records from a .json or .hcl file. Only file level
// problems are errors; malformed records come back with the invalid fields
// left empty and are dropped later by BuildCheckers.
func ReadCatalogue(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read meld catalogue: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return parseHCLCatalogue(data, path)
	}
	return parseJSONCatalogue(data)
}

// parseJSONCatalogue accepts either a top level array of records or an
// object with a "melds" array. The pattern may be given as "cards" or
// "pattern".
func parseJSONCatalogue(data []byte) ([]Record, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("meld catalogue is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		root = root.Get("melds")
	}
	if !root.IsArray() {
		return nil, fmt.Errorf("meld catalogue has no record array")
	}

	var out []Record
	root.ForEach(func(_, entry gjson.Result) bool {
		rec := Record{Name: entry.Get("name").String()}

		score := entry.Get("score")
		if score.Type == gjson.Number && score.Num == math.Trunc(score.Num) {
			rec.Score = int(score.Int())
		}

		pattern := entry.Get("cards")
		if !pattern.Exists() {
			pattern = entry.Get("pattern")
		}
		if pattern.Type == gjson.String {
			rec.Pattern = pattern.String()
		}

		out = append(out, rec)
		return true
	})
	return out, nil
}

type hclCatalogue struct {
	Melds []hclMeld `hcl:"meld,block"`
}

type hclMeld struct {
	Name    string `hcl:"name,label"`
	Score   int    `hcl:"score,optional"`
	Pattern string `hcl:"pattern,optional"`
}

func parseHCLCatalogue(data []byte, filename string) ([]Record, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cat hclCatalogue
	if diags := gohcl.DecodeBody(file.Body, nil, &cat); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	out := make([]Record, len(cat.Melds))
	for i, m := range cat.Melds {
		out[i] = Record(m)
	}
	return out, nil
}

// BuildCheckers turns records into checkers, dropping each malformed record
// on its own: blank name, non-positive score, or a pattern that does not
// parse. Valid checkers are ordered by score, highest first.
func BuildCheckers(records []Record, logger *log.Logger) []Checker {
	out := make([]Checker, 0, len(records))
	for i, rec := range records {
		if strings.TrimSpace(rec.Name) == "" || rec.Score <= 0 {
			logger.Warn("Dropping meld record", "index", i, "name", rec.Name, "score", rec.Score)
			continue
		}
		checker, err := NewChecker(rec.Name, rec.Score, rec.Pattern)
		if err != nil {
			logger.Warn("Dropping meld record", "index", i, "name", rec.Name, "error", err)
			continue
		}
		out = append(out, checker)
	}
	slices.SortStableFunc(out, func(a, b Checker) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// LoadOptions selects the catalogue an Analyzer is built from
type LoadOptions struct {
	// Path of a .json or .hcl catalogue. Empty means use the default set.
	Path string

	// Legacy restricts the analyzer to LegacyCatalogue, ignoring Path
	Legacy bool

	Logger *log.Logger
}

// Load builds an Analyzer according to opts. It never fails: an unreadable
// catalogue, or one with no usable record, falls back to DefaultCatalogue.
func Load(opts LoadOptions) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("meld")

	if opts.Legacy {
		logger.Debug("Using legacy meld catalogue")
		return NewAnalyzer(BuildCheckers(LegacyCatalogue(), logger))
	}

	if opts.Path != "" {
		records, err := ReadCatalogue(opts.Path)
		if err == nil {
			if checkers := BuildCheckers(records, logger); len(checkers) > 0 {
				logger.Debug("Loaded meld catalogue", "path", opts.Path, "melds", len(checkers))
				return NewAnalyzer(checkers)
			}
			err = fmt.Errorf("no valid records in %s", opts.Path)
		}
		logger.Warn("Falling back to default meld catalogue", "error", err)
	}

	return NewAnalyzer(BuildCheckers(DefaultCatalogue(), logger))
}
