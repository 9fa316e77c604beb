package strategy

import "blackjack-trainer/internal/game"

// Coach строгий режим тренировки: неверный ход не выполняется.
type Coach struct {
	round     Round
	strict    bool
	attempted map[game.Action]bool
}

func NewCoach(round Round, strict bool) *Coach {
	return &Coach{
		round:     round,
		strict:    strict,
		attempted: make(map[game.Action]bool),
	}
}

// Try выполняет exec, если ход верный (или режим не строгий).
// hinted=false значит подсказки не было и correct не заполнен.
func (c *Coach) Try(action game.Action, exec func() bool) (executed bool, correct game.Action, hinted bool) {
	correct, hinted = Advise(c.round)

	if c.strict && hinted && action != correct {
		c.attempted[action] = true
		return false, correct, hinted
	}

	if !exec() {
		return false, correct, hinted
	}
	clear(c.attempted)
	return true, correct, hinted
}

func (c *Coach) Attempted(action game.Action) bool {
	return c.attempted[action]
}

func (c *Coach) Strict() bool {
	return c.strict
}

// Reset на новый раунд
func (c *Coach) Reset() {
	clear(c.attempted)
}
