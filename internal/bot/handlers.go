package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"blackjack-trainer/internal/config"
	"blackjack-trainer/internal/game"
	"blackjack-trainer/internal/player"
	"blackjack-trainer/internal/strategy"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender часть BotAPI, которой пользуется Handler
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	bot     Sender
	cfg     *config.Config
	players player.Repository
	games   *game.Manager
	clock   quartz.Clock
	logger  *log.Logger
}

func NewHandler(bot Sender, cfg *config.Config, repo player.Repository, games *game.Manager, clock quartz.Clock, logger *log.Logger) *Handler {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		bot:     bot,
		cfg:     cfg,
		players: repo,
		games:   games,
		clock:   clock,
		logger:  logger,
	}
}

// ============== ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ ==============

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send message", "chat", chatID, "error", err)
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("failed to send message", "chat", chatID, "error", err)
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("failed to answer callback", "error", err)
	}
}

func (h *Handler) getPlayer(chatID int64) (*player.Player, error) {
	return h.players.GetOrCreate(chatID, h.cfg.StartBalance, h.cfg.DefaultBet)
}

func (h *Handler) savePlayer(p *player.Player) {
	if err := h.players.Save(p); err != nil {
		h.logger.Error("failed to save player", "chat", p.ChatID, "error", err)
	}
}

// gameKeyboard кнопки только для ходов, которые сейчас разрешены
func (h *Handler) gameKeyboard(e *game.Engine, p *player.Player) tgbotapi.InlineKeyboardMarkup {
	extra := 0
	if hand, ok := e.ActiveHand(); ok {
		extra = int(hand.Bet)
	}
	return GameKeyboard(Moves{
		Hit:    e.CanHit(),
		Stand:  e.CanStand(),
		Double: e.CanDouble() && p.CanAfford(extra),
		Split:  e.CanSplit() && p.CanAfford(extra),
		Undo:   e.CanUndo(),
	})
}

// ============== ФОРМАТИРОВАНИЕ ==============

func formatTable(e *game.Engine, showDealerHand bool) string {
	var sb strings.Builder

	hands := e.PlayerHands()
	playing := e.State() == game.StatePlayerTurn
	for _, hand := range hands {
		label := "🎴 Вы"
		if len(hands) > 1 {
			label = fmt.Sprintf("🎴 Рука %d", hand.Index+1)
		}
		fmt.Fprintf(&sb, "%s: %s (%d)", label, hand.Hand, hand.Value())
		if playing && len(hands) > 1 && hand.Index == e.ActiveHandIndex() {
			sb.WriteString(" 👈")
		}
		sb.WriteString("\n")
	}

	dealer := e.DealerHand()
	switch {
	case showDealerHand:
		fmt.Fprintf(&sb, "🃏 Дилер: %s (%d)", dealer, dealer.Value())
	default:
		if up, ok := e.DealerUpCard(); ok {
			fmt.Fprintf(&sb, "🃏 Дилер: [%s, ?]", up)
		}
	}

	return sb.String()
}

func resultText(result game.Result, hand game.PlayerHand) string {
	switch result {
	case game.ResultBlackjack:
		return "🎰 BLACKJACK! 🎰"
	case game.ResultPlayerWin:
		return "🎉 Вы выиграли!"
	case game.ResultPush:
		return "🤝 Ничья!"
	case game.ResultDealerWin:
		if hand.IsBusted() {
			return "💥 Перебор!"
		}
		return "😔 Дилер выиграл!"
	}
	return ""
}

// ============== ОБРАБОТЧИКИ КОМАНД ==============

func (h *Handler) HandleStart(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.logger.Error("failed to load player", "chat", chatID, "error", err)
		h.send(chatID, "❌ Ошибка. Попробуйте позже.")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"🎰 Добро пожаловать в Blackjack!\n\n"+
			"💵 Баланс: %d\n\n"+
			"/play <ставка> — играть\n"+
			"/balance — статистика\n"+
			"/history — последние раунды\n"+
			"/top — топ игроков\n"+
			"/help — правила",
		p.Balance))
}

func (h *Handler) HandleHelp(chatID int64) {
	text := "📖 Правила Blackjack:\n\n" +
		"🎯 Цель: набрать 21 очко или больше дилера, не перебрав\n\n" +
		"📊 Очки:\n" +
		"• 2-10 — номинал\n" +
		"• J, Q, K — 10\n" +
		"• A — 11 или 1\n\n" +
		"🎮 Действия:\n" +
		"• Hit — взять карту\n" +
		"• Stand — остановиться\n" +
		"• Double — удвоить (только первый ход руки)\n" +
		"• Split — разделить пару (один раз)\n" +
		"• 💡 — подсказка по базовой стратегии\n" +
		"• ↩️ — отменить последний ход\n\n" +
		"🃏 Дилер добирает до 17\n" +
		fmt.Sprintf("🎰 Blackjack платит x%.1f", h.cfg.BlackjackPays)

	if h.cfg.StrictMode {
		text += "\n\n🎓 Строгий режим: ходы против базовой стратегии не выполняются"
	}
	h.send(chatID, text)
}

func (h *Handler) HandleBalance(chatID int64) {
	p, err := h.getPlayer(chatID)
	if err != nil {
		h.send(chatID, "❌ Ошибка")
		return
	}

	h.send(chatID, fmt.Sprintf(
		"💰 Баланс: %d\n\n"+
			"📊 Статистика:\n"+
			"🎮 Игр: %d\n"+
			"✅ Побед: %d (%.1f%%)\n"+
			"❌ Поражений: %d\n"+
			"🤝 Ничьих: %d\n\n"+
			"🎓 Базовая стратегия:\n"+
			"🎯 Точность: %.1f%% (ошибок %d из %d)\n"+
			"⭐ Идеальных раундов: %d из %d",
		p.Balance, p.Games, p.Wins, p.WinRate(), p.Losses, p.Draws,
		p.Accuracy(), p.Deviations, p.Actions, p.PerfectRounds, p.Rounds))
}

func (h *Handler) HandleTop(chatID int64) {
	stats, err := h.players.GetTopByBalance(10)
	if err != nil {
		h.logger.Error("failed to load top", "error", err)
		h.send(chatID, "❌ Ошибка")
		return
	}

	if len(stats) == 0 {
		h.send(chatID, "🏆 Пока никто не играл!")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 Топ игроков:\n\n")

	medals := []string{"🥇", "🥈", "🥉"}
	for i, s := range stats {
		medal := fmt.Sprintf("%d.", i+1)
		if i < 3 {
			medal = medals[i]
		}
		fmt.Fprintf(&sb, "%s %d 💰 | %d игр (%.0f%%) | 🎯 %.0f%%\n",
			medal, s.Balance, s.Games, s.WinRate, s.Accuracy)
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandleHistory(chatID int64) {
	rounds, err := h.players.RecentRounds(chatID, 10)
	if err != nil {
		h.logger.Error("failed to load rounds", "chat", chatID, "error", err)
		h.send(chatID, "❌ Ошибка")
		return
	}

	if len(rounds) == 0 {
		h.send(chatID, "📜 Раундов пока нет. /play чтобы начать")
		return
	}

	var sb strings.Builder
	sb.WriteString("📜 Последние раунды:\n\n")
	for _, r := range rounds {
		mark := "✅"
		if r.Deviations > 0 {
			mark = "❌"
		}
		fmt.Fprintf(&sb, "%s ставка %d → %+d | рук %d, ходов %d %s\n",
			r.CreatedAt.Local().Format("02.01 15:04"), r.Bet, r.Payout-r.Bet, r.Hands, r.Actions, mark)
	}

	h.send(chatID, sb.String())
}

func (h *Handler) HandlePlay(chatID int64, args []string) {
	bet := h.cfg.DefaultBet
	if len(args) > 0 {
		if b, err := strconv.Atoi(args[0]); err == nil && b > 0 {
			bet = b
		} else {
			h.send(chatID, fmt.Sprintf("❌ Неверная ставка. Пример: /play %d", h.cfg.DefaultBet))
			return
		}
	}

	if bet < h.cfg.MinBet || bet > h.cfg.MaxBet {
		h.send(chatID, fmt.Sprintf("❌ Ставка от %d до %d", h.cfg.MinBet, h.cfg.MaxBet))
		return
	}

	s := h.games.GetOrCreate(chatID)
	s.Lock()
	defer s.Unlock()

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.logger.Error("failed to load player", "chat", chatID, "error", err)
		h.send(chatID, "❌ Ошибка")
		return
	}

	if !s.Settled {
		h.sendWithKeyboard(chatID,
			"⏳ Сначала доиграйте текущую раздачу\n\n"+formatTable(s.Engine, false),
			h.gameKeyboard(s.Engine, p))
		return
	}

	if !p.PlaceBet(bet) {
		h.send(chatID, fmt.Sprintf("❌ Недостаточно средств! Баланс: %d", p.Balance))
		return
	}

	if err := s.Engine.SetBet(float64(bet)); err != nil {
		p.Refund(bet)
		h.send(chatID, "❌ Неверная ставка")
		return
	}

	s.Engine.StartNewHand()
	s.Settled = false
	h.logger.Debug("round started", "chat", chatID, "bet", bet, "shoe", s.Engine.ShoeRemaining())

	if s.Engine.State() == game.StateGameOver {
		h.settle(chatID, s, p)
		return
	}

	h.savePlayer(p)
	h.sendWithKeyboard(chatID,
		fmt.Sprintf("💰 Ставка: %d | Баланс: %d\n\n%s",
			bet, p.Balance, formatTable(s.Engine, false)),
		h.gameKeyboard(s.Engine, p))
}

func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	parts := strings.Fields(msg.Text)

	if len(parts) == 0 {
		return
	}

	// в группах команды приходят как /play@botname
	cmd, _, _ := strings.Cut(strings.ToLower(parts[0]), "@")
	args := parts[1:]

	switch cmd {
	case "/start":
		h.HandleStart(chatID)
	case "/help":
		h.HandleHelp(chatID)
	case "/play":
		h.HandlePlay(chatID, args)
	case "/balance":
		h.HandleBalance(chatID)
	case "/history":
		h.HandleHistory(chatID)
	case "/top":
		h.HandleTop(chatID)
	}
}

// ============== ОБРАБОТЧИКИ CALLBACK ==============

var callbackActions = map[string]game.Action{
	CallbackHit:    game.Hit,
	CallbackStand:  game.Stand,
	CallbackDouble: game.Double,
	CallbackSplit:  game.Split,
}

func (h *Handler) HandleCallback(callback *tgbotapi.CallbackQuery) {
	if callback.Message == nil || callback.Message.Chat == nil {
		h.answerCallback(callback.ID, "")
		return
	}
	chatID := callback.Message.Chat.ID
	data := callback.Data

	switch data {
	case CallbackPlayAgain:
		p, err := h.getPlayer(chatID)
		if err != nil {
			h.answerCallback(callback.ID, "Ошибка")
			return
		}
		h.answerCallback(callback.ID, "")
		h.HandlePlay(chatID, []string{strconv.Itoa(p.LastBet)})
		return

	case CallbackBalance:
		p, err := h.getPlayer(chatID)
		if err != nil {
			h.answerCallback(callback.ID, "Ошибка")
			return
		}
		h.answerCallback(callback.ID, fmt.Sprintf("💵 %d", p.Balance))
		return
	}

	s := h.games.Get(chatID)
	if s == nil {
		h.answerCallback(callback.ID, "Игра не активна")
		return
	}

	s.Lock()
	defer s.Unlock()

	if s.Settled || s.Engine.State() != game.StatePlayerTurn {
		h.answerCallback(callback.ID, "Игра не активна")
		return
	}

	if data == CallbackHint {
		h.answerCallback(callback.ID, hintText(s.Engine))
		return
	}

	p, err := h.getPlayer(chatID)
	if err != nil {
		h.logger.Error("failed to load player", "chat", chatID, "error", err)
		h.answerCallback(callback.ID, "Ошибка")
		return
	}

	if data == CallbackUndo {
		h.answerCallback(callback.ID, h.handleUndo(chatID, s.Engine, p))
		return
	}

	action, ok := callbackActions[data]
	if !ok {
		h.answerCallback(callback.ID, "")
		return
	}
	h.answerCallback(callback.ID, h.handleAction(chatID, s, p, action))
}

func hintText(e *game.Engine) string {
	action, ok := strategy.Advise(e)
	if !ok {
		return "Подсказки нет"
	}
	return fmt.Sprintf("💡 Совет: %s", action)
}

// handleAction возвращает текст для ответа на callback
func (h *Handler) handleAction(chatID int64, s *game.Session, p *player.Player, action game.Action) string {
	e := s.Engine

	extra := 0
	if hand, ok := e.ActiveHand(); ok {
		extra = int(hand.Bet)
	}
	canAfford := p.CanAfford(extra)
	if (action == game.Double || action == game.Split) && !canAfford {
		return "❌ Недостаточно средств"
	}

	// без денег на дабл строгий режим не держит игрока
	coach := strategy.NewCoach(e, h.cfg.StrictMode && canAfford)

	before := e.TotalBet()
	executed, correct, hinted := coach.Try(action, func() bool { return e.Apply(action) })
	if !executed {
		if hinted && coach.Attempted(action) {
			return fmt.Sprintf("🎓 Не по стратегии, тут %s", correct)
		}
		return "Ход недоступен"
	}

	if delta := int(e.TotalBet() - before); delta > 0 {
		if err := p.Debit(delta); err != nil {
			h.logger.Error("failed to debit", "chat", chatID, "amount", delta, "error", err)
		}
	}

	if e.State() == game.StateGameOver {
		h.settle(chatID, s, p)
		return ""
	}

	h.savePlayer(p)
	h.sendWithKeyboard(chatID, formatTable(e, false), h.gameKeyboard(e, p))
	return ""
}

// handleUndo доплата за отменённый дабл или сплит возвращается
func (h *Handler) handleUndo(chatID int64, e *game.Engine, p *player.Player) string {
	before := e.TotalBet()
	if !e.UndoLastAction() {
		return "Нечего отменять"
	}

	if refund := int(before - e.TotalBet()); refund > 0 {
		p.Refund(refund)
	}

	h.savePlayer(p)
	h.sendWithKeyboard(chatID, "↩️ Ход отменён\n\n"+formatTable(e, false), h.gameKeyboard(e, p))
	return ""
}

// ============== РАСЧЁТ ==============

// settle выплачивает раунд один раз и пишет его в историю
func (h *Handler) settle(chatID int64, s *game.Session, p *player.Player) {
	e := s.Engine
	hands := e.PlayerHands()
	results := e.HandResults()

	var (
		bet, payout float64
		sb          strings.Builder
	)
	for i, r := range results {
		pay := r.Payout
		if r.Result == game.ResultBlackjack {
			pay = r.Bet * h.cfg.BlackjackPays
		}
		bet += r.Bet
		payout += pay

		if len(results) > 1 {
			fmt.Fprintf(&sb, "Рука %d: ", r.HandIndex+1)
		}
		sb.WriteString(resultText(r.Result, hands[i]))
		sb.WriteString("\n")
	}

	won, staked := int(payout), int(bet)
	switch {
	case won > staked:
		p.AddWin(won)
	case won == staked:
		p.AddDraw(won)
	default:
		p.Refund(won)
		p.AddLoss()
	}

	analysis := strategy.Analyze(e)
	p.AddAnalysis(analysis.TotalActions, len(analysis.Deviations))
	h.savePlayer(p)
	s.Settled = true

	round, err := h.players.RecordRound(player.Round{
		ChatID:     chatID,
		Bet:        staked,
		Payout:     won,
		Hands:      len(results),
		Actions:    analysis.TotalActions,
		Deviations: len(analysis.Deviations),
	})
	if err != nil {
		h.logger.Error("failed to record round", "chat", chatID, "error", err)
	}
	h.logger.Info("round settled", "chat", chatID, "round", round.ID, "bet", staked, "payout", won,
		"deviations", len(analysis.Deviations))

	msg := formatTable(e, true) + "\n\n" + sb.String()
	if won > 0 {
		msg += fmt.Sprintf("\n💰 Выплата: +%d", won)
	}
	msg += fmt.Sprintf("\n💵 Баланс: %d", p.Balance)
	if analysis.TotalActions > 0 {
		msg += "\n\n" + analysis.Report()
	}

	h.sendWithKeyboard(chatID, msg, EndGameKeyboard(p.LastBet))
}

// ============== СЕССИИ ==============

// SweepSessions раз в every удаляет сессии без активности дольше SessionTTL
func (h *Handler) SweepSessions(ctx context.Context, every time.Duration) error {
	ticker := h.clock.NewTicker(every, "sweep")
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			h.sweep()
		}
	}
}

func (h *Handler) sweep() int {
	removed := h.games.Sweep(h.cfg.SessionTTL)
	if removed > 0 {
		h.logger.Debug("sessions expired", "removed", removed, "active", h.games.Len())
	}
	return removed
}
