package game

import "strings"

type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitSymbols = [...]string{"♥", "♦", "♣", "♠"}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return "?"
}

type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankSymbols = [...]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Value очки ранга: туз 11, картинки 10
func (r Rank) Value() int {
	switch r {
	case Ace:
		return 11
	case Jack, Queen, King:
		return 10
	default:
		return int(r) + 1
	}
}

func (r Rank) IsAce() bool {
	return r == Ace
}

func (r Rank) String() string {
	if int(r) < len(rankSymbols) {
		return rankSymbols[r]
	}
	return "?"
}

// ParseRank принимает "A", "10", "t", "k" и т.п.
func ParseRank(s string) (Rank, bool) {
	s = strings.ToUpper(s)
	if s == "T" {
		return Ten, true
	}
	for i, sym := range rankSymbols {
		if sym == s {
			return Rank(i), true
		}
	}
	return 0, false
}

// Card неизменяемая карта. Одинаковые карты из разных колод неразличимы.
type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) Value() int {
	return c.Rank.Value()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard разбирает запись вида "A♠", "10h", "Kd".
func ParseCard(s string) (Card, bool) {
	suits := map[string]Suit{
		"♥": Hearts, "h": Hearts, "H": Hearts,
		"♦": Diamonds, "d": Diamonds, "D": Diamonds,
		"♣": Clubs, "c": Clubs, "C": Clubs,
		"♠": Spades, "s": Spades, "S": Spades,
	}
	for sym, suit := range suits {
		if rank, ok := strings.CutSuffix(s, sym); ok {
			r, ok := ParseRank(rank)
			if !ok {
				return Card{}, false
			}
			return NewCard(r, suit), true
		}
	}
	return Card{}, false
}

// MustParseCards нужен в основном для тестов.
func MustParseCards(cards ...string) []Card {
	out := make([]Card, 0, len(cards))
	for _, s := range cards {
		c, ok := ParseCard(s)
		if !ok {
			panic("game: bad card " + s)
		}
		out = append(out, c)
	}
	return out
}
