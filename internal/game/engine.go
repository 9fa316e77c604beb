package game

import (
	"errors"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

const (
	DefaultBet = 10.0

	// BlackjackPays выплата за натуральный блэкджек вместе со ставкой (3:2)
	BlackjackPays = 2.5
	WinPays       = 2.0
	PushPays      = 1.0

	dealerStandsOn = 17
)

var ErrInvalidBet = errors.New("bet must be positive")

// Engine один раунд блэкджека за другим. Не потокобезопасен:
// вызовы для одного Engine должен сериализовать владелец (см. Manager).
type Engine struct {
	shoe        *Shoe
	logger      *log.Logger
	hands       []PlayerHand
	activeIndex int
	dealer      Hand
	state       State
	bet         float64
	hasSplit    bool
	history     []ActionRecord
	snap        *snapshot
}

type Option func(*Engine)

// WithShoe задаёт готовый shoe, удобно для тестов со Stack.
func WithShoe(shoe *Shoe) Option {
	return func(e *Engine) {
		e.shoe = shoe
	}
}

func WithDecks(decks int, rng *rand.Rand) Option {
	return func(e *Engine) {
		e.shoe = NewShoe(decks, rng)
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithBet(bet float64) Option {
	return func(e *Engine) {
		if bet > 0 {
			e.bet = bet
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		state:  StateInitial,
		bet:    DefaultBet,
		dealer: NewHand(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.shoe == nil {
		e.shoe = NewShoe(DefaultDecks, nil)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// ============== СТАВКА ==============

// SetBet ставка для следующих раундов; при ошибке ставка не меняется
func (e *Engine) SetBet(amount float64) error {
	if amount <= 0 {
		return ErrInvalidBet
	}
	e.bet = amount
	return nil
}

func (e *Engine) Bet() float64 {
	return e.bet
}

// ============== РАУНД ==============

// StartNewHand сбрасывает раунд и раздаёт по две карты через одну.
func (e *Engine) StartNewHand() {
	e.hands = e.hands[:0]
	e.dealer = NewHand()
	e.history = nil
	e.snap = nil
	e.state = StateInitial
	e.activeIndex = 0
	e.hasSplit = false

	initial := NewHand()
	initial.Add(e.shoe.Deal())
	e.dealer.Add(e.shoe.Deal())
	initial.Add(e.shoe.Deal())
	e.dealer.Add(e.shoe.Deal())

	e.hands = append(e.hands, PlayerHand{
		Hand:  initial,
		Bet:   e.bet,
		Index: 0,
	})

	e.logger.Debug("new hand", "player", initial, "upcard", e.dealer.Cards[0], "bet", e.bet)

	if initial.IsBlackjack() {
		e.state = StateDealerTurn
		e.finishDealerHand()
		return
	}
	e.state = StatePlayerTurn
}

func (e *Engine) current() *PlayerHand {
	return &e.hands[e.activeIndex]
}

func (e *Engine) playing() bool {
	return e.state == StatePlayerTurn && e.activeIndex < len(e.hands)
}

// ============== ПРОВЕРКИ ==============

func (e *Engine) CanHit() bool {
	if !e.playing() {
		return false
	}
	h := e.current()
	return h.CanReceiveCard() && h.Value() < 21
}

func (e *Engine) CanStand() bool {
	return e.playing()
}

func (e *Engine) CanDouble() bool {
	if !e.playing() {
		return false
	}
	h := e.current()
	return h.Hand.CanDouble() && !h.Completed
}

// CanSplit сплит один раз за раунд и только исходной руки
func (e *Engine) CanSplit() bool {
	if e.state != StatePlayerTurn || e.hasSplit || len(e.hands) == 0 {
		return false
	}
	return e.hands[0].IsPair()
}

func (e *Engine) CanUndo() bool {
	return e.snap != nil
}

// ============== ХОДЫ ==============

func (e *Engine) Hit() bool {
	if !e.CanHit() {
		return false
	}

	e.saveSnapshot()
	e.recordAction(Hit)
	h := e.current()
	h.Hand.Add(e.shoe.Deal())
	e.logger.Debug("hit", "hand", e.activeIndex, "cards", h.Hand, "value", h.Value())

	if h.IsBusted() {
		e.advanceToNextHand()
	}
	return true
}

func (e *Engine) Stand() bool {
	if !e.CanStand() {
		return false
	}

	e.saveSnapshot()
	e.recordAction(Stand)
	e.logger.Debug("stand", "hand", e.activeIndex, "value", e.current().Value())
	e.advanceToNextHand()
	return true
}

// Double удваивает ставку, одна карта и переход дальше
func (e *Engine) Double() bool {
	if !e.CanDouble() {
		return false
	}

	e.saveSnapshot()
	e.recordAction(Double)
	h := e.current()
	h.Bet *= 2
	h.Hand.Add(e.shoe.Deal())
	e.logger.Debug("double", "hand", e.activeIndex, "cards", h.Hand, "bet", h.Bet)

	e.advanceToNextHand()
	return true
}

func (e *Engine) Split() bool {
	if !e.CanSplit() {
		return false
	}

	e.saveSnapshot()
	e.recordAction(Split)

	original := e.hands[0].Hand.Cards
	aces := original[0].Rank.IsAce()

	first := NewHand(original[0], e.shoe.Deal())
	second := NewHand(original[1], e.shoe.Deal())

	e.hands = []PlayerHand{
		{Hand: first, Bet: e.bet, Index: 0, SplitFromAces: aces, Completed: aces},
		{Hand: second, Bet: e.bet, Index: 1, SplitFromAces: aces, Completed: aces},
	}
	e.hasSplit = true
	e.activeIndex = 0
	e.logger.Debug("split", "first", first, "second", second, "aces", aces)

	// тузы получают по одной карте, дальше сразу дилер
	if aces {
		e.state = StateDealerTurn
		e.finishDealerHand()
		return true
	}

	if e.hands[0].IsBusted() {
		e.advanceToNextHand()
	}
	return true
}

// Apply выполняет ход по его типу, для фронтендов с кнопками и вводом
func (e *Engine) Apply(action Action) bool {
	switch action {
	case Hit:
		return e.Hit()
	case Stand:
		return e.Stand()
	case Double:
		return e.Double()
	case Split:
		return e.Split()
	}
	return false
}

// UndoLastAction откатывает последний ход. Отмена только на один шаг.
func (e *Engine) UndoLastAction() bool {
	if e.snap == nil {
		return false
	}
	s := e.snap

	e.hands = cloneHands(s.hands)
	e.activeIndex = s.activeIndex
	e.dealer = s.dealer.Clone()
	e.state = s.state
	e.hasSplit = s.hasSplit
	if len(e.history) > s.historyLen {
		e.history = e.history[:s.historyLen]
	}

	e.snap = nil
	e.logger.Debug("undo", "state", e.state, "hand", e.activeIndex)
	return true
}

func (e *Engine) saveSnapshot() {
	e.snap = &snapshot{
		hands:       cloneHands(e.hands),
		activeIndex: e.activeIndex,
		dealer:      e.dealer.Clone(),
		state:       e.state,
		hasSplit:    e.hasSplit,
		historyLen:  len(e.history),
	}
}

func cloneHands(hands []PlayerHand) []PlayerHand {
	out := make([]PlayerHand, len(hands))
	for i, h := range hands {
		out[i] = h.clone()
	}
	return out
}

// advanceToNextHand завершает текущую руку и пропускает перебранные.
// Когда рук не осталось, играет дилер.
func (e *Engine) advanceToNextHand() {
	e.current().Completed = true

	for {
		e.activeIndex++
		if e.activeIndex >= len(e.hands) {
			e.state = StateDealerTurn
			e.finishDealerHand()
			return
		}
		if !e.hands[e.activeIndex].IsBusted() {
			return
		}
		e.hands[e.activeIndex].Completed = true
	}
}

// finishDealerHand дилер добирает, пока меньше 17; на любых 17 стоит, мягких тоже
func (e *Engine) finishDealerHand() {
	for e.dealer.Value() < dealerStandsOn {
		e.dealer.Add(e.shoe.Deal())
	}
	e.state = StateGameOver
	e.logger.Debug("dealer done", "cards", e.dealer, "value", e.dealer.Value())
}

func (e *Engine) recordAction(action Action) {
	upCard, ok := e.dealer.UpCard()
	if !ok {
		return
	}
	h := e.current()

	e.history = append(e.history, ActionRecord{
		Action:       action,
		HandValue:    h.Value(),
		Cards:        append([]Card(nil), h.Hand.Cards...),
		DealerUpCard: upCard,
		IsSoft:       h.IsSoft(),
		IsPair:       h.IsPair(),
		HandIndex:    e.activeIndex,
	})
}
