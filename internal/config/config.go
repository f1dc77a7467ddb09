// Package config enumerates every flag the AI builder recognises and
// loads them from HCL files, key/value properties or the environment.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/strategy"
)

// Property keys of the key/value configuration surface
const (
	KeySeed            = "seed"
	KeyAuto            = "isAuto"
	KeySmartTrick      = "mode.smarttrick"
	KeyCutThroat       = "mode.cutthroat"
	KeyAdditionalMelds = "melds.additional"
	KeyMeldFile        = "melds.file"
	KeyLogLevel        = "log.level"

	playerPrefix       = "players."
	keySmartBids       = "smartbids"
	keyCutThroatChoice = "cutthroat_choice"
	keyFinalCards      = "final_cards"
)

// PlayerCount is the number of seats in a game
const PlayerCount = 2

// Config is the complete AI configuration
type Config struct {
	// Seed drives every random choice; zero picks one from the clock
	Seed int64

	// SmartTrick attaches the card play strategy
	SmartTrick bool

	// CutThroat enables the cut-throat deal and attaches the discard strategy
	CutThroat bool

	// AdditionalMelds selects the full meld catalogue; false restricts
	// scoring to the legacy four melds
	AdditionalMelds bool

	// MeldFile is the catalogue path (.json or .hcl)
	MeldFile string

	// Auto replays the scripted cut-throat choices of Players
	Auto bool

	LogLevel string

	Players [PlayerCount]Player
}

// Player holds per-seat settings
type Player struct {
	// SmartBids attaches the bidding strategy for this seat
	SmartBids bool

	// CutThroatChoice is the scripted revealed card to take (auto mode)
	CutThroatChoice *int

	// FinalCards is the scripted hand to keep after discarding (auto mode)
	FinalCards []cards.Card
}

// Default returns the configuration used when nothing is set: every
// optional strategy disabled, full meld catalogue.
func Default() *Config {
	return &Config{
		AdditionalMelds: true,
		MeldFile:        "melds.json",
		LogLevel:        "info",
	}
}

// Player returns the settings of seat i, or the zero value for an unknown seat
func (c *Config) Player(i int) Player {
	if i < 0 || i >= PlayerCount {
		return Player{}
	}
	return c.Players[i]
}

// SmartBidding reports whether seat i uses the bidding strategy
func (c *Config) SmartBidding(i int) bool {
	return c.Player(i).SmartBids
}

// Enabled reports the boolean flag stored under key. Unknown keys are
// disabled.
func (c *Config) Enabled(key string) bool {
	switch key {
	case KeyAuto:
		return c.Auto
	case KeySmartTrick:
		return c.SmartTrick
	case KeyCutThroat:
		return c.CutThroat
	case KeyAdditionalMelds:
		return c.AdditionalMelds
	}
	if seat, field, ok := playerKey(key); ok && field == keySmartBids {
		return c.SmartBidding(seat)
	}
	return false
}

// Validate checks the per-seat scripts. Out of range cut-throat choices are
// clamped when used, so only oversized keep lists are rejected.
func (c *Config) Validate() error {
	for i, p := range c.Players {
		if len(p.FinalCards) > strategy.HandCap {
			return fmt.Errorf("player %d: final_cards lists %d cards, at most %d can be kept", i, len(p.FinalCards), strategy.HandCap)
		}
	}
	return nil
}

// PlayerKey builds the property key of a per-seat field, e.g.
// "players.0.smartbids"
func PlayerKey(seat int, field string) string {
	return playerPrefix + strconv.Itoa(seat) + "." + field
}

// playerKey splits "players.<i>.<field>"
func playerKey(key string) (int, string, bool) {
	rest, ok := strings.CutPrefix(key, playerPrefix)
	if !ok {
		return 0, "", false
	}
	idx, field, ok := strings.Cut(rest, ".")
	if !ok {
		return 0, "", false
	}
	seat, err := strconv.Atoi(idx)
	if err != nil || seat < 0 || seat >= PlayerCount {
		return 0, "", false
	}
	return seat, field, true
}

// SmartBidsKey is the property key of a seat's bidding flag
func SmartBidsKey(seat int) string {
	return PlayerKey(seat, keySmartBids)
}
