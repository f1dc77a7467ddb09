package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/coder/quartz"

	"github.com/lox/pinochle/internal/protocol"
	"github.com/lox/pinochle/internal/simulator"
)

// SimulateCmd plays AI against AI
type SimulateCmd struct {
	Games   int    `short:"n" default:"1000" help:"Number of games to play"`
	Workers int    `short:"w" help:"Parallel games, defaults to the number of CPUs"`
	Config  string `short:"c" default:"configs/ai.hcl" help:"AI configuration (.hcl or .properties)"`
	Seed    *int64 `help:"Deterministic RNG seed, overrides the config"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg.LogLevel)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation", "games", c.Games, "workers", workers, "seed", seed)

	sim := simulator.New(simulator.Config{
		Seed:   seed,
		AI:     cfg,
		Clock:  quartz.NewReal(),
		Logger: logger,
	})
	summary, err := sim.Run(ctx, c.Games, workers)
	if err != nil {
		return err
	}

	printSummary(summary)
	return nil
}

func printSummary(s *simulator.Summary) {
	stats := s.Stats
	low, high := stats.ConfidenceInterval95()

	results := section("Results",
		row("Games", "%d", stats.Games),
		row("Seat 0 wins", "%.1f%%", stats.WinRate(0)*100),
		row("Seat 1 wins", "%.1f%%", stats.WinRate(1)*100),
		row("Ties", "%d", stats.Ties),
		row("Margin", "%.2f ± %.2f", stats.Mean(), stats.StdError()),
		row("95% CI", "[%.2f, %.2f]", low, high),
		row("Median margin", "%.1f", stats.Median()),
	)

	seats := section("Seats",
		row("Mean score", "%.1f / %.1f", stats.MeanScore(0), stats.MeanScore(1)),
		row("Mean meld", "%.1f / %.1f", stats.MeanMeld(0), stats.MeanMeld(1)),
		row("Declared", "%d / %d", stats.Seats[0].Declared, stats.Seats[1].Declared),
		row("Contracts made", "%.1f%% / %.1f%%", stats.ContractRate(0)*100, stats.ContractRate(1)*100),
	)

	decisionRows := make([][2]string, 0, len(protocol.AllKinds())+3)
	for _, kind := range protocol.AllKinds() {
		if n := s.Decisions[kind]; n > 0 {
			decisionRows = append(decisionRows, row(kind.String(), "%d", n))
		}
	}
	failures := goodStyle.Render("0")
	if s.Failures > 0 {
		failures = warnStyle.Render(fmt.Sprint(s.Failures))
	}
	decisionRows = append(decisionRows,
		row("Failures", "%s", failures),
		row("Mean latency", "%s", s.MeanLatency()),
		row("Slowest", "%s", s.Slowest),
		row("Elapsed", "%s", s.Elapsed),
	)

	fmt.Println(titleStyle.Render(" Pinochle simulation "))
	fmt.Println(boxStyle.Render(results))
	fmt.Println(boxStyle.Render(seats))
	fmt.Println(boxStyle.Render(section("Decisions", decisionRows...)))
}
