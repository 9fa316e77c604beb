package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	CallbackHit       = "hit"
	CallbackStand     = "stand"
	CallbackDouble    = "double"
	CallbackSplit     = "split"
	CallbackHint      = "hint"
	CallbackUndo      = "undo"
	CallbackPlayAgain = "play_again"
	CallbackBalance   = "balance"
)

// Moves какие ходы сейчас разрешены; заполняется из Can* движка
type Moves struct {
	Hit    bool
	Stand  bool
	Double bool
	Split  bool
	Undo   bool
}

type button struct {
	enabled bool
	label   string
	data    string
}

func buttonRow(buttons ...button) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	for _, b := range buttons {
		if b.enabled {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.label, b.data))
		}
	}
	return row
}

// GameKeyboard первая строка ходы, вторая подсказка и отмена.
// Пустая строка ходов не добавляется.
func GameKeyboard(m Moves) tgbotapi.InlineKeyboardMarkup {
	moves := buttonRow(
		button{m.Hit, "👊 Hit", CallbackHit},
		button{m.Stand, "✋ Stand", CallbackStand},
		button{m.Double, "💰 Double", CallbackDouble},
		button{m.Split, "✂️ Split", CallbackSplit},
	)
	tools := buttonRow(
		button{true, "💡 Подсказка", CallbackHint},
		button{m.Undo, "↩️ Отмена", CallbackUndo},
	)

	if len(moves) == 0 {
		return tgbotapi.NewInlineKeyboardMarkup(tools)
	}
	return tgbotapi.NewInlineKeyboardMarkup(moves, tools)
}

func EndGameKeyboard(lastBet int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🔄 Ещё (%d)", lastBet),
				CallbackPlayAgain,
			),
			tgbotapi.NewInlineKeyboardButtonData("💵 Баланс", CallbackBalance),
		),
	)
}
