package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/magiconair/properties"

	"github.com/lox/pinochle/internal/cards"
)

// fileConfig mirrors the HCL layout of an AI configuration file
type fileConfig struct {
	Seed     int64         `hcl:"seed,optional"`
	Auto     bool          `hcl:"is_auto,optional"`
	LogLevel string        `hcl:"log_level,optional"`
	Mode     *modeBlock    `hcl:"mode,block"`
	Melds    *meldsBlock   `hcl:"melds,block"`
	Players  []playerBlock `hcl:"player,block"`
}

type modeBlock struct {
	SmartTrick bool `hcl:"smarttrick,optional"`
	CutThroat  bool `hcl:"cutthroat,optional"`
}

type meldsBlock struct {
	Additional *bool  `hcl:"additional,optional"`
	File       string `hcl:"file,optional"`
}

type playerBlock struct {
	Seat            string `hcl:"seat,label"`
	SmartBids       bool   `hcl:"smartbids,optional"`
	CutThroatChoice *int   `hcl:"cutthroat_choice,optional"`
	FinalCards      string `hcl:"final_cards,optional"`
}

// Load reads an HCL configuration file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	cfg.Seed = fc.Seed
	cfg.Auto = fc.Auto
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.Mode != nil {
		cfg.SmartTrick = fc.Mode.SmartTrick
		cfg.CutThroat = fc.Mode.CutThroat
	}
	if fc.Melds != nil {
		if fc.Melds.Additional != nil {
			cfg.AdditionalMelds = *fc.Melds.Additional
		}
		if fc.Melds.File != "" {
			cfg.MeldFile = fc.Melds.File
		}
	}

	for _, pb := range fc.Players {
		seat, err := strconv.Atoi(pb.Seat)
		if err != nil || seat < 0 || seat >= PlayerCount {
			return nil, fmt.Errorf("player %q: seat must be between 0 and %d", pb.Seat, PlayerCount-1)
		}
		p := Player{SmartBids: pb.SmartBids, CutThroatChoice: pb.CutThroatChoice}
		if pb.FinalCards != "" {
			if p.FinalCards, err = cards.ParseCards(pb.FinalCards); err != nil {
				return nil, fmt.Errorf("player %d final_cards: %w", seat, err)
			}
		}
		cfg.Players[seat] = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromProperties builds a Config from a key/value store. Unset keys keep
// their defaults and booleans are enabled only by "true", so an unparsable
// value reads as disabled.
func FromProperties(props map[string]string) (*Config, error) {
	cfg := Default()

	for key, raw := range props {
		value := strings.TrimSpace(raw)
		switch key {
		case KeySeed:
			seed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s value: %w", KeySeed, err)
			}
			cfg.Seed = seed
		case KeyAuto:
			cfg.Auto = parseBool(value)
		case KeySmartTrick:
			cfg.SmartTrick = parseBool(value)
		case KeyCutThroat:
			cfg.CutThroat = parseBool(value)
		case KeyAdditionalMelds:
			cfg.AdditionalMelds = parseBool(value)
		case KeyMeldFile:
			cfg.MeldFile = value
		case KeyLogLevel:
			cfg.LogLevel = value
		default:
			if err := cfg.setPlayerProperty(key, value); err != nil {
				return nil, err
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) setPlayerProperty(key, value string) error {
	seat, field, ok := playerKey(key)
	if !ok {
		return nil
	}
	p := &c.Players[seat]
	switch field {
	case keySmartBids:
		p.SmartBids = parseBool(value)
	case keyCutThroatChoice:
		// a malformed choice takes the first card
		choice, err := strconv.Atoi(value)
		if err != nil {
			choice = 0
		}
		p.CutThroatChoice = &choice
	case keyFinalCards:
		if value == "" {
			return nil
		}
		hand, err := cards.ParseCards(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		p.FinalCards = hand
	}
	return nil
}

// ParseProperties reads a java.util.Properties style key/value store:
// "=", ":" or whitespace separators, trailing backslash continuations and
// backslash escapes.
// ${...} references are kept as written.
func ParseProperties(r io.Reader) (map[string]string, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	loader := properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}
	return p.Map(), nil
}

// LoadProperties reads a properties file and builds a Config from it
func LoadProperties(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	props, err := ParseProperties(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return FromProperties(props)
}

// LoadFile picks the loader from the file extension: .properties files are
// key/value stores, everything else is HCL.
func LoadFile(filename string) (*Config, error) {
	if strings.HasSuffix(filename, ".properties") {
		return LoadProperties(filename)
	}
	return Load(filename)
}

// envOverrides lists the settings that may be overridden from the
// environment. Fields start out as the current config so unset variables
// leave it unchanged.
type envOverrides struct {
	Seed       int64  `env:"PINOCHLE_SEED"`
	SmartTrick bool   `env:"PINOCHLE_SMART_TRICK"`
	CutThroat  bool   `env:"PINOCHLE_CUT_THROAT"`
	MeldFile   string `env:"PINOCHLE_MELD_FILE"`
	LogLevel   string `env:"PINOCHLE_LOG_LEVEL"`
}

// ApplyEnv overrides cfg from PINOCHLE_* environment variables
func ApplyEnv(cfg *Config) error {
	o := envOverrides{
		Seed:       cfg.Seed,
		SmartTrick: cfg.SmartTrick,
		CutThroat:  cfg.CutThroat,
		MeldFile:   cfg.MeldFile,
		LogLevel:   cfg.LogLevel,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Seed = o.Seed
	cfg.SmartTrick = o.SmartTrick
	cfg.CutThroat = o.CutThroat
	cfg.MeldFile = o.MeldFile
	cfg.LogLevel = o.LogLevel
	return nil
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}
