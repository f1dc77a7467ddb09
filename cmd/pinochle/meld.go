package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/meld"
)

// MeldCmd scores a hand against the catalogue
type MeldCmd struct {
	Cards     []string `arg:"" help:"Cards such as 'AS KS QS' (rank T for ten)"`
	Trump     string   `short:"t" default:"S" help:"Trump suit (S, H, D, C)"`
	Catalogue string   `short:"c" help:"Meld catalogue (.json or .hcl), defaults to the built-in set"`
	Legacy    bool     `help:"Only use the four legacy melds"`
}

func (c *MeldCmd) Run(g *Globals) error {
	logger, err := g.logger("")
	if err != nil {
		return err
	}

	hand, err := cards.ParseCards(strings.Join(c.Cards, " "))
	if err != nil {
		return fmt.Errorf("parse cards: %w", err)
	}
	trump, err := cards.ParseSuit(c.Trump)
	if err != nil {
		return err
	}

	analyzer := meld.Load(meld.LoadOptions{Path: c.Catalogue, Legacy: c.Legacy, Logger: logger})
	score, melds := analyzer.BestCombination(hand, trump)

	rows := [][2]string{
		row("Hand", "%s", cards.Format(hand)),
		row("Trump", "%s", trump),
		row("Score", "%d", score),
	}
	for _, name := range melds {
		rows = append(rows, row("Meld", "%s", name))
	}
	if len(melds) == 0 {
		rows = append(rows, row("Meld", "%s", warnStyle.Render("none")))
	}

	fmt.Println(boxStyle.Render(section("Best meld", rows...)))
	return nil
}

// MeldsCmd prints the catalogue
type MeldsCmd struct {
	Catalogue string `short:"c" help:"Meld catalogue (.json or .hcl), defaults to the built-in set"`
	Legacy    bool   `help:"Only use the four legacy melds"`
}

func (c *MeldsCmd) Run(g *Globals) error {
	logger, err := g.logger("")
	if err != nil {
		return err
	}

	analyzer := meld.Load(meld.LoadOptions{Path: c.Catalogue, Legacy: c.Legacy, Logger: logger})

	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf(" %d melds ", len(analyzer.Checkers()))))
	for _, checker := range analyzer.Checkers() {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Width(24).Render(checker.Name),
			valueStyle.Width(6).Render(fmt.Sprint(checker.Score)),
			checker.Pattern.String(),
		))
	}

	fmt.Println(strings.Join(lines, "\n"))
	return nil
}
