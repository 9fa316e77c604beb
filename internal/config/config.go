package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var ErrNoToken = errors.New("BOT_TOKEN is not set")

type Config struct {
	BotToken      string
	DatabasePath  string
	Decks         int
	StartBalance  int
	DefaultBet    int
	MinBet        int
	MaxBet        int
	BlackjackPays float64
	StrictMode    bool
	LogLevel      log.Level
	SessionTTL    time.Duration
}

// Load читает .env (если есть) и переменные окружения.
// Токен здесь не обязателен, его проверяет бот.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		DatabasePath:  os.Getenv("DATABASE_PATH"),
		Decks:         6,
		StartBalance:  1000,
		DefaultBet:    100,
		MinBet:        10,
		MaxBet:        10000,
		BlackjackPays: 2.5,
		LogLevel:      log.InfoLevel,
		SessionTTL:    30 * time.Minute,
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "./blackjack.db"
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"DECKS", &cfg.Decks},
		{"START_BALANCE", &cfg.StartBalance},
		{"DEFAULT_BET", &cfg.DefaultBet},
		{"MIN_BET", &cfg.MinBet},
		{"MAX_BET", &cfg.MaxBet},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		*v.dst = n
	}

	if raw := os.Getenv("STRICT_MODE"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid STRICT_MODE: %w", err)
		}
		cfg.StrictMode = strict
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		level, err := log.ParseLevel(strings.ToLower(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Decks < 1 {
		return fmt.Errorf("decks must be at least 1, got %d", c.Decks)
	}
	if c.MinBet <= 0 {
		return fmt.Errorf("min bet must be positive, got %d", c.MinBet)
	}
	if c.MaxBet < c.MinBet {
		return fmt.Errorf("max bet %d is below min bet %d", c.MaxBet, c.MinBet)
	}
	if c.DefaultBet < c.MinBet || c.DefaultBet > c.MaxBet {
		return fmt.Errorf("default bet %d is outside %d..%d", c.DefaultBet, c.MinBet, c.MaxBet)
	}
	if c.StartBalance < 0 {
		return fmt.Errorf("start balance must not be negative, got %d", c.StartBalance)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}
