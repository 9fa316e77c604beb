package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoeSize(t *testing.T) {
	for _, decks := range []int{1, 2, 6} {
		s := NewShoe(decks, rand.New(rand.NewSource(1)))
		assert.Equal(t, decks*52, s.Remaining())
		assert.Equal(t, decks, s.Decks())
	}

	// меньше одной колоды не бывает
	assert.Equal(t, 52, NewShoe(0, nil).Remaining())
}

func TestShoeContainsEveryCard(t *testing.T) {
	s := NewShoe(2, rand.New(rand.NewSource(7)))
	counts := make(map[Card]int)
	for i := 0; i < 104; i++ {
		counts[s.Deal()]++
	}

	require.Len(t, counts, 52)
	for card, n := range counts {
		assert.Equal(t, 2, n, "card %s", card)
	}
}

func TestShoeReshufflesWhenEmpty(t *testing.T) {
	s := NewShoe(1, rand.New(rand.NewSource(3)))
	for i := 0; i < 52; i++ {
		s.Deal()
	}
	assert.Equal(t, 0, s.Remaining())

	s.Deal()
	assert.Equal(t, 51, s.Remaining())
}

func TestShoeStack(t *testing.T) {
	s := NewShoe(1, rand.New(rand.NewSource(3)))
	cards := MustParseCards("Ah", "Kd", "5c")
	s.Stack(cards...)
	assert.Equal(t, 55, s.Remaining())

	for _, want := range cards {
		assert.Equal(t, want, s.Deal())
	}
	assert.Equal(t, 52, s.Remaining())
}

func TestShoeDeterministic(t *testing.T) {
	a := NewShoe(6, rand.New(rand.NewSource(42)))
	b := NewShoe(6, rand.New(rand.NewSource(42)))
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Deal(), b.Deal())
	}
}
