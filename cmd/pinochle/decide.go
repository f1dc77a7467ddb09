package main

import (
	"fmt"

	"github.com/lox/pinochle/internal/ai"
	"github.com/lox/pinochle/internal/cards"
	"github.com/lox/pinochle/internal/protocol"
)

// DecideCmd builds a game snapshot from flags and asks the AI one question
type DecideCmd struct {
	Kind       string `short:"k" default:"card_play" enum:"bid,card_play,revealed_card_selection,card_discard,trump_selection,card_choose" help:"Decision kind"`
	Hand       string `required:"" help:"Hand of the deciding seat, e.g. 'AS KS 9H'"`
	Available  string `short:"a" help:"Candidate cards, defaults to the hand"`
	Trick      string `help:"Cards in the current trick"`
	Played     string `help:"Cards played in earlier tricks"`
	Trump      string `short:"t" help:"Trump suit (S, H, D, C), unset before the auction ends"`
	Seat       int    `default:"0" help:"Deciding seat (0 or 1)"`
	CurrentBid int    `help:"Current highest bid"`
	FirstBid   bool   `help:"The request is the opening bid"`
	Config     string `short:"c" help:"AI configuration (.hcl or .properties)"`
}

func (c *DecideCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg.LogLevel)
	if err != nil {
		return err
	}

	kind, err := protocol.ParseKind(c.Kind)
	if err != nil {
		return err
	}
	if c.Seat < 0 || c.Seat > 1 {
		return fmt.Errorf("invalid seat %d", c.Seat)
	}

	hand, err := cards.ParseCards(c.Hand)
	if err != nil {
		return fmt.Errorf("parse hand: %w", err)
	}
	available := hand
	if c.Available != "" {
		if available, err = cards.ParseCards(c.Available); err != nil {
			return fmt.Errorf("parse available: %w", err)
		}
	}
	trick, err := cards.ParseCards(c.Trick)
	if err != nil {
		return fmt.Errorf("parse trick: %w", err)
	}
	played, err := cards.ParseCards(c.Played)
	if err != nil {
		return fmt.Errorf("parse played: %w", err)
	}
	trump := cards.NoSuit
	if c.Trump != "" {
		if trump, err = cards.ParseSuit(c.Trump); err != nil {
			return err
		}
	}

	brain, err := ai.NewBuilder(cfg, nil, ai.WithSeat(c.Seat), ai.WithLogger(logger)).
		ConfigureFromConfig().
		Build()
	if err != nil {
		return fmt.Errorf("build AI: %w", err)
	}

	hands := make([][]cards.Card, 2)
	hands[c.Seat] = hand
	snap := protocol.NewSnapshot(protocol.SnapshotParams{
		Hands:      hands,
		Played:     played,
		Trick:      trick,
		Trump:      trump,
		CurrentBid: c.CurrentBid,
		BidWinner:  c.Seat,
	})

	if kind == protocol.KindBid {
		bid, err := brain.DecideBid(snap, c.Seat, c.CurrentBid, c.FirstBid)
		if err != nil {
			return err
		}
		verdict := goodStyle.Render(fmt.Sprintf("bid %d", bid.Amount))
		if bid.Pass {
			verdict = warnStyle.Render("pass")
		}
		fmt.Println(boxStyle.Render(section("Bid",
			row("Hand", "%s", cards.Format(hand)),
			row("Current bid", "%d", c.CurrentBid),
			row("Decision", "%s", verdict),
			row("Trump", "%s", bid.Trump),
		)))
		return nil
	}

	indices, err := brain.DecideCards(kind, snap, c.Seat, available)
	if err != nil {
		return err
	}
	chosen := make([]cards.Card, len(indices))
	for i, idx := range indices {
		chosen[i] = available[idx]
	}
	fmt.Println(boxStyle.Render(section(kind.String(),
		row("Available", "%s", cards.Format(available)),
		row("Indices", "%v", indices),
		row("Chosen", "%s", goodStyle.Render(cards.Format(chosen))),
	)))
	return nil
}
