package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blackjack-trainer/internal/console"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var CLI struct {
	Decks  int     `short:"d" default:"6" help:"Number of decks in the shoe"`
	Bet    float64 `short:"b" default:"10" help:"Bet per hand"`
	Hints  bool    `help:"Show basic strategy hints before each move"`
	Strict bool    `help:"Refuse moves that differ from basic strategy"`
	Seed   int64   `help:"Shuffle seed, 0 means random"`
	Debug  bool    `help:"Enable debug logging"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blackjack"),
		kong.Description("Terminal blackjack basic strategy trainer"),
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "engine",
		Level:           log.WarnLevel,
	})
	if CLI.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := console.Run(ctx, os.Stdin, os.Stdout, console.Options{
		Decks:  CLI.Decks,
		Bet:    CLI.Bet,
		Hints:  CLI.Hints,
		Strict: CLI.Strict,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: logger,
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("trainer failed", "error", err)
		kctx.Exit(1)
	}
}
