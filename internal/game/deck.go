package game

import "math/rand"

const DefaultDecks = 6

// Shoe несколько колод. Когда карты кончаются, shoe перетасовывается заново.
type Shoe struct {
	decks   int
	cards   []Card
	stacked []Card
	rng     *rand.Rand
}

// NewShoe создаёт перетасованный shoe. rng может быть nil.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks < 1 {
		decks = 1
	}
	s := &Shoe{
		decks: decks,
		cards: make([]Card, 0, decks*52),
		rng:   rng,
	}
	s.Shuffle()
	return s
}

// Shuffle собирает все колоды заново и тасует их.
func (s *Shoe) Shuffle() {
	s.cards = s.cards[:0]
	for i := 0; i < s.decks; i++ {
		for suit := Hearts; suit <= Spades; suit++ {
			for rank := Ace; rank <= King; rank++ {
				s.cards = append(s.cards, NewCard(rank, suit))
			}
		}
	}

	shuffle := rand.Shuffle
	if s.rng != nil {
		shuffle = s.rng.Shuffle
	}
	shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Stack кладёт карты наверх: следующие Deal вернут их по порядку.
func (s *Shoe) Stack(cards ...Card) {
	s.stacked = append(s.stacked, cards...)
}

// Deal никогда не падает: пустой shoe перетасовывается.
func (s *Shoe) Deal() Card {
	if len(s.stacked) > 0 {
		card := s.stacked[0]
		s.stacked = s.stacked[1:]
		return card
	}

	if len(s.cards) == 0 {
		s.Shuffle()
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

func (s *Shoe) Remaining() int {
	return len(s.cards) + len(s.stacked)
}

func (s *Shoe) Decks() int {
	return s.decks
}
