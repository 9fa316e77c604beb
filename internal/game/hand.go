package game

import "strings"

// Hand карты в порядке раздачи
type Hand struct {
	Cards []Card
}

func NewHand(cards ...Card) Hand {
	h := Hand{Cards: make([]Card, 0, 10)}
	h.Cards = append(h.Cards, cards...)
	return h
}

func (h *Hand) Add(card Card) {
	h.Cards = append(h.Cards, card)
}

// Clone глубокая копия: срез карт не разделяется с оригиналом
func (h Hand) Clone() Hand {
	return NewHand(h.Cards...)
}

// score считает очки и сколько тузов ещё считаются за 11
func (h Hand) score() (total, softAces int) {
	for _, card := range h.Cards {
		total += card.Value()
		if card.Rank.IsAce() {
			softAces++
		}
	}

	for total > 21 && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

func (h Hand) Value() int {
	total, _ := h.score()
	return total
}

func (h Hand) IsBusted() bool {
	return h.Value() > 21
}

func (h Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21
}

// IsSoft хотя бы один туз всё ещё считается за 11
func (h Hand) IsSoft() bool {
	total, softAces := h.score()
	return softAces > 0 && total <= 21
}

func (h Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// CanDouble только про две карты; «первый ход» проверяет вызывающий.
func (h Hand) CanDouble() bool {
	return len(h.Cards) == 2
}

// UpCard первая карта, для дилера это открытая карта
func (h Hand) UpCard() (Card, bool) {
	if len(h.Cards) == 0 {
		return Card{}, false
	}
	return h.Cards[0], true
}

func (h Hand) Len() int {
	return len(h.Cards)
}

func (h Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// PlayerHand рука игрока со ставкой и признаками сплита
type PlayerHand struct {
	Hand          Hand
	Bet           float64
	Index         int
	SplitFromAces bool
	Completed     bool
}

func (p PlayerHand) Value() int {
	return p.Hand.Value()
}

func (p PlayerHand) IsBusted() bool {
	return p.Hand.IsBusted()
}

// IsBlackjack после сплита тузов блэкджек не засчитывается, даже на 21
func (p PlayerHand) IsBlackjack() bool {
	return p.Hand.IsBlackjack() && !p.SplitFromAces
}

func (p PlayerHand) IsSoft() bool {
	return p.Hand.IsSoft()
}

func (p PlayerHand) IsPair() bool {
	return p.Hand.IsPair()
}

// CanReceiveCard рука после сплита тузов получает ровно одну карту
func (p PlayerHand) CanReceiveCard() bool {
	return !p.Completed && !p.IsBusted() && (!p.SplitFromAces || p.Hand.Len() < 2)
}

func (p PlayerHand) clone() PlayerHand {
	p.Hand = p.Hand.Clone()
	return p
}
