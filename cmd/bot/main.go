package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blackjack-trainer/internal/bot"
	"blackjack-trainer/internal/config"
	"blackjack-trainer/internal/database"
	"blackjack-trainer/internal/player"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

var CLI struct {
	Database string `short:"D" help:"SQLite database path (overrides DATABASE_PATH)"`
	Strict   bool   `help:"Strict training mode (overrides STRICT_MODE)"`
	Debug    bool   `help:"Enable debug logging"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("blackjack-bot"),
		kong.Description("Telegram blackjack basic strategy trainer"),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}
	if CLI.Database != "" {
		cfg.DatabasePath = CLI.Database
	}
	if CLI.Strict {
		cfg.StrictMode = true
	}

	logger := log.New(os.Stderr)
	logger.SetReportTimestamp(true)
	logger.SetLevel(cfg.LogLevel)
	if CLI.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	if cfg.BotToken == "" {
		logger.Error("Cannot start", "error", config.ErrNoToken)
		kctx.Exit(1)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to connect to database", "path", cfg.DatabasePath, "error", err)
		kctx.Exit(1)
	}
	defer db.Close()

	logger.Info("Database connected", "path", cfg.DatabasePath)

	playerRepo := player.NewRepository(db.DB, nil)

	b, err := bot.New(cfg, playerRepo, logger)
	if err != nil {
		logger.Error("Failed to create bot", "error", err)
		kctx.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot error", "error", err)
		kctx.Exit(1)
	}
}
