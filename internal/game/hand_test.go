package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []string
		value int
		soft  bool
	}{
		{"pair of tens", []string{"10h", "10s"}, 20, false},
		{"blackjack", []string{"Ah", "Ks"}, 21, true},
		{"soft 17", []string{"Ah", "6s"}, 17, true},
		{"two aces", []string{"Ah", "As"}, 12, true},
		{"ace forced to one", []string{"Ah", "5s", "8d"}, 14, false},
		{"two aces and nine", []string{"Ah", "As", "9d"}, 21, true},
		{"all aces hard", []string{"Ah", "As", "9d", "Kc"}, 21, false},
		{"bust", []string{"10h", "5s", "8d"}, 23, false},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHand(MustParseCards(tt.cards...)...)
			assert.Equal(t, tt.value, h.Value())
			assert.Equal(t, tt.soft, h.IsSoft())
			assert.Equal(t, tt.value > 21, h.IsBusted())
		})
	}
}

func TestHandBlackjackAndPair(t *testing.T) {
	assert.True(t, NewHand(MustParseCards("Ah", "Ks")...).IsBlackjack())
	assert.False(t, NewHand(MustParseCards("Ah", "Ks", "2d")...).IsBlackjack())
	assert.False(t, NewHand(MustParseCards("7h", "7s", "7d")...).IsBlackjack())

	assert.True(t, NewHand(MustParseCards("8h", "8s")...).IsPair())
	// K и Q оба по 10, но это не пара
	assert.False(t, NewHand(MustParseCards("Kh", "Qs")...).IsPair())
	assert.False(t, NewHand(MustParseCards("8h", "8s", "8d")...).IsPair())

	assert.True(t, NewHand(MustParseCards("5h", "6s")...).CanDouble())
	assert.False(t, NewHand(MustParseCards("5h", "6s", "2c")...).CanDouble())
}

func TestHandCloneDoesNotAlias(t *testing.T) {
	h := NewHand(MustParseCards("5h", "6s")...)
	c := h.Clone()
	c.Add(NewCard(Ten, Clubs))
	c.Cards[0] = NewCard(King, Spades)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, NewCard(Five, Hearts), h.Cards[0])
}

func TestPlayerHandSplitAces(t *testing.T) {
	p := PlayerHand{Hand: NewHand(MustParseCards("Ah", "Kd")...), Bet: 10, SplitFromAces: true, Completed: true}
	assert.Equal(t, 21, p.Value())
	assert.False(t, p.IsBlackjack())
	assert.False(t, p.CanReceiveCard())

	p.SplitFromAces = false
	p.Completed = false
	assert.True(t, p.IsBlackjack())
}

func TestParseCard(t *testing.T) {
	c, ok := ParseCard("10♠")
	require.True(t, ok)
	assert.Equal(t, NewCard(Ten, Spades), c)

	c, ok = ParseCard("qd")
	require.True(t, ok)
	assert.Equal(t, NewCard(Queen, Diamonds), c)
	assert.Equal(t, "Q♦", c.String())

	_, ok = ParseCard("1x")
	assert.False(t, ok)
	_, ok = ParseCard("Zh")
	assert.False(t, ok)
}

func TestRankValue(t *testing.T) {
	assert.Equal(t, 11, Ace.Value())
	assert.Equal(t, 2, Two.Value())
	assert.Equal(t, 9, Nine.Value())
	assert.Equal(t, 10, Ten.Value())
	assert.Equal(t, 10, Jack.Value())
	assert.Equal(t, 10, King.Value())
}
