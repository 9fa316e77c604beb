package game

func (e *Engine) State() State {
	return e.state
}

// ActiveHandIndex после последней руки равен числу рук
func (e *Engine) ActiveHandIndex() int {
	return e.activeIndex
}

// PlayerHands копии рук, изменять их безопасно
func (e *Engine) PlayerHands() []PlayerHand {
	return cloneHands(e.hands)
}

// ActiveHand текущая рука; false когда все руки уже сыграны
func (e *Engine) ActiveHand() (PlayerHand, bool) {
	if e.activeIndex >= len(e.hands) {
		return PlayerHand{}, false
	}
	return e.hands[e.activeIndex].clone(), true
}

// PlayerHand карты активной руки или пустая рука
func (e *Engine) PlayerHand() Hand {
	if h, ok := e.ActiveHand(); ok {
		return h.Hand
	}
	return NewHand()
}

func (e *Engine) DealerHand() Hand {
	return e.dealer.Clone()
}

func (e *Engine) DealerUpCard() (Card, bool) {
	return e.dealer.UpCard()
}

func (e *Engine) HasSplit() bool {
	return e.hasSplit
}

func (e *Engine) HasSplitHands() bool {
	return len(e.hands) > 1
}

func (e *Engine) ActionHistory() []ActionRecord {
	out := make([]ActionRecord, len(e.history))
	for i, r := range e.history {
		r.Cards = append([]Card(nil), r.Cards...)
		out[i] = r
	}
	return out
}

func (e *Engine) ShoeRemaining() int {
	return e.shoe.Remaining()
}

// ============== ИТОГИ ==============

// Result исход первой руки, ResultInProgress до конца раунда
func (e *Engine) Result() Result {
	if e.state != StateGameOver || len(e.hands) == 0 {
		return ResultInProgress
	}
	return HandOutcome(e.hands[0], e.dealer)
}

// Results исходы всех рук по индексу; пусто до GAME_OVER
func (e *Engine) Results() map[int]Result {
	if e.state != StateGameOver {
		return nil
	}
	out := make(map[int]Result, len(e.hands))
	for _, h := range e.hands {
		out[h.Index] = HandOutcome(h, e.dealer)
	}
	return out
}

// HandResults исходы и выплаты; пусто до GAME_OVER
func (e *Engine) HandResults() []HandResult {
	if e.state != StateGameOver {
		return nil
	}
	out := make([]HandResult, 0, len(e.hands))
	for _, h := range e.hands {
		result := HandOutcome(h, e.dealer)
		out = append(out, HandResult{
			HandIndex: h.Index,
			Result:    result,
			Bet:       h.Bet,
			Payout:    Payout(h.Bet, result),
		})
	}
	return out
}

// HandOutcome сравнивает руку игрока с рукой дилера, состояние не меняет
func HandOutcome(h PlayerHand, dealer Hand) Result {
	player := h.Value()
	dealerValue := dealer.Value()

	switch {
	case h.IsBlackjack() && !dealer.IsBlackjack():
		return ResultBlackjack
	case h.IsBusted():
		return ResultDealerWin
	case dealer.IsBusted():
		return ResultPlayerWin
	case player > dealerValue:
		return ResultPlayerWin
	case player < dealerValue:
		return ResultDealerWin
	default:
		return ResultPush
	}
}

// Payout сколько вернётся игроку вместе со ставкой
func Payout(bet float64, result Result) float64 {
	switch result {
	case ResultBlackjack:
		return bet * BlackjackPays
	case ResultPlayerWin:
		return bet * WinPays
	case ResultPush:
		return bet * PushPays
	case ResultDealerWin, ResultInProgress:
		return 0
	}
	return 0
}

// TotalBet сумма ставок всех рук
func (e *Engine) TotalBet() float64 {
	total := 0.0
	for _, h := range e.hands {
		total += h.Bet
	}
	return total
}
