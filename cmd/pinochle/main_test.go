package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalsLogger(t *testing.T) {
	logger, err := (&Globals{}).logger("")
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger, err = (&Globals{}).logger("warn")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())

	logger, err = (&Globals{LogLevel: "debug"}).logger("warn")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())

	_, err = (&Globals{LogLevel: "loud"}).logger("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("../../configs/ai.hcl")
	require.NoError(t, err)
	assert.True(t, cfg.SmartTrick)
	assert.True(t, cfg.Players[0].SmartBids)

	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.SmartTrick)

	t.Setenv("PINOCHLE_CUT_THROAT", "true")
	cfg, err = loadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.CutThroat)
}

func TestCommandParsing(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"--log-level", "debug", "decide", "--hand", "AS KS", "--kind", "bid", "--first-bid"})
	require.NoError(t, err)
	assert.Equal(t, "decide", ctx.Command())
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "bid", cli.Decide.Kind)
	assert.True(t, cli.Decide.FirstBid)

	_, err = parser.Parse([]string{"decide", "--hand", "AS", "--kind", "shuffle"})
	assert.Error(t, err)

	ctx, err = parser.Parse([]string{"meld", "QS", "KS", "--trump", "H"})
	require.NoError(t, err)
	assert.Contains(t, ctx.Command(), "meld")
	assert.Equal(t, []string{"QS", "KS"}, cli.Meld.Cards)
}
