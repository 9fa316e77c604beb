package strategy

import "blackjack-trainer/internal/game"

// Round то, что видно подсказке во время хода игрока
type Round interface {
	History
	State() game.State
	ActiveHand() (game.PlayerHand, bool)
	ActiveHandIndex() int
	DealerUpCard() (game.Card, bool)
	HasSplitHands() bool
}

// Advise подсказка для активной руки. false вне хода игрока.
func Advise(r Round) (game.Action, bool) {
	if r.State() != game.StatePlayerTurn {
		return 0, false
	}
	upCard, ok := r.DealerUpCard()
	if !ok {
		return 0, false
	}
	active, ok := r.ActiveHand()
	if !ok {
		return 0, false
	}

	index := r.ActiveHandIndex()
	taken := 0
	for _, rec := range r.ActionHistory() {
		if rec.HandIndex == index {
			taken++
		}
	}

	canDouble := active.Hand.CanDouble() && taken == 0
	canSplit := active.IsPair() && taken == 0 && index == 0 && !r.HasSplitHands()

	return Recommend(active.Hand, upCard, canDouble, canSplit), true
}
