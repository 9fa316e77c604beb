package strategy

import (
	"fmt"
	"strings"

	"blackjack-trainer/internal/game"
)

// History всё, что нужно анализатору от движка
type History interface {
	ActionHistory() []game.ActionRecord
}

// Deviation ход, который расходится с базовой стратегией
type Deviation struct {
	ActionTaken   game.Action
	CorrectAction game.Action
	HandValue     int
	Cards         []game.Card
	DealerUpCard  game.Card
	IsSoft        bool
	IsPair        bool
	// ActionNumber номер хода среди всех ходов раунда, с единицы
	ActionNumber int
}

func (d Deviation) Description() string {
	switch {
	case d.IsPair && len(d.Cards) > 0:
		return fmt.Sprintf("Pair of %ss", d.Cards[0].Rank)
	case d.IsSoft:
		return fmt.Sprintf("Soft %d", d.HandValue)
	default:
		return fmt.Sprintf("Hard %d", d.HandValue)
	}
}

func (d Deviation) String() string {
	return fmt.Sprintf("Ход #%d: %s (%s) против %s: надо %s, сыграно %s",
		d.ActionNumber, d.Description(), game.NewHand(d.Cards...), d.DealerUpCard,
		d.CorrectAction, d.ActionTaken)
}

type Analysis struct {
	FollowedBasicStrategy bool
	Deviations            []Deviation
	TotalActions          int
}

func (a Analysis) Report() string {
	if a.FollowedBasicStrategy {
		return fmt.Sprintf("✅ Базовая стратегия соблюдена: ходов %d", a.TotalActions)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "❌ Ошибок стратегии: %d из %d\n", len(a.Deviations), a.TotalActions)
	for _, d := range a.Deviations {
		sb.WriteString("\n")
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Analyze прогоняет историю ходов через таблицу стратегии.
// Удвоение разрешено только первым ходом руки, сплит только первым ходом руки 0.
func Analyze(src History) Analysis {
	history := src.ActionHistory()

	// группируем по рукам, сохраняя порядок ходов внутри руки
	var order []int
	groups := make(map[int][]int)
	for i, rec := range history {
		if _, ok := groups[rec.HandIndex]; !ok {
			order = append(order, rec.HandIndex)
		}
		groups[rec.HandIndex] = append(groups[rec.HandIndex], i)
	}

	var deviations []Deviation
	for _, handIndex := range order {
		for n, pos := range groups[handIndex] {
			rec := history[pos]
			hand := game.NewHand(rec.Cards...)
			canDouble := hand.CanDouble() && n == 0
			canSplit := hand.IsPair() && n == 0 && handIndex == 0

			correct := Recommend(hand, rec.DealerUpCard, canDouble, canSplit)
			if rec.Action == correct {
				continue
			}

			deviations = append(deviations, Deviation{
				ActionTaken:   rec.Action,
				CorrectAction: correct,
				HandValue:     rec.HandValue,
				Cards:         rec.Cards,
				DealerUpCard:  rec.DealerUpCard,
				IsSoft:        rec.IsSoft,
				IsPair:        rec.IsPair,
				ActionNumber:  pos + 1,
			})
		}
	}

	return Analysis{
		FollowedBasicStrategy: len(deviations) == 0,
		Deviations:            deviations,
		TotalActions:          len(history),
	}
}
