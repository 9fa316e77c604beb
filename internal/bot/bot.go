package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blackjack-trainer/internal/config"
	"blackjack-trainer/internal/game"
	"blackjack-trainer/internal/player"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"
)

const sweepInterval = time.Minute

var errUpdatesClosed = errors.New("updates channel closed")

type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	logger  *log.Logger
}

func New(cfg *config.Config, repo player.Repository, logger *log.Logger) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, config.ErrNoToken
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	clock := quartz.NewReal()
	engineLogger := logger.WithPrefix("engine")
	games := game.NewManager(clock, func() *game.Engine {
		return game.NewEngine(
			game.WithDecks(cfg.Decks, nil),
			game.WithLogger(engineLogger),
		)
	})

	return &Bot{
		api:     api,
		handler: NewHandler(api, cfg, repo, games, clock, logger.WithPrefix("handler")),
		logger:  logger,
	}, nil
}

// Run читает обновления до отмены ctx и ждёт начатые обработчики
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.handler.SweepSessions(ctx, sweepInterval)
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return ctx.Err()
			case update, ok := <-updates:
				if !ok {
					return errUpdatesClosed
				}
				b.dispatch(g, update)
			}
		}
	})

	err := g.Wait()
	b.logger.Info("bot stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (b *Bot) dispatch(g *errgroup.Group, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		g.Go(func() error {
			b.handler.HandleCallback(update.CallbackQuery)
			return nil
		})
	case update.Message != nil:
		g.Go(func() error {
			b.handler.HandleMessage(update.Message)
			return nil
		})
	}
}
