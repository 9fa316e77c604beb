package strategy

import (
	"testing"

	"blackjack-trainer/internal/game"
	"github.com/stretchr/testify/assert"
)

func hand(cards ...string) game.Hand {
	return game.NewHand(game.MustParseCards(cards...)...)
}

func up(rank game.Rank) game.Card {
	return game.NewCard(rank, game.Clubs)
}

// все открытые карты дилера, туз считается за 11
var upCards = []game.Rank{game.Two, game.Three, game.Four, game.Five, game.Six, game.Seven,
	game.Eight, game.Nine, game.Ten, game.Jack, game.Queen, game.King, game.Ace}

func TestRecommendHard(t *testing.T) {
	tests := []struct {
		name      string
		hand      game.Hand
		dealer    game.Rank
		canDouble bool
		want      game.Action
	}{
		{"hard 17 stands", hand("Th", "7s"), game.Ace, true, game.Stand},
		{"hard 20 stands", hand("Th", "Ks"), game.Ten, true, game.Stand},
		{"hard 16 vs 6 stands", hand("Th", "6s"), game.Six, true, game.Stand},
		{"hard 13 vs 2 stands", hand("Th", "3s"), game.Two, true, game.Stand},
		{"hard 16 vs 7 hits", hand("Th", "6s"), game.Seven, true, game.Hit},
		{"hard 13 vs ace hits", hand("Th", "3s"), game.Ace, true, game.Hit},
		{"hard 12 vs 4 stands", hand("Th", "2s"), game.Four, true, game.Stand},
		{"hard 12 vs 3 hits", hand("Th", "2s"), game.Three, true, game.Hit},
		{"hard 12 vs 7 hits", hand("Th", "2s"), game.Seven, true, game.Hit},
		{"hard 11 doubles", hand("5h", "6s"), game.Ace, true, game.Double},
		{"hard 11 hits without double", hand("5h", "6s"), game.Six, false, game.Hit},
		{"hard 10 vs 9 doubles", hand("4h", "6s"), game.Nine, true, game.Double},
		{"hard 10 vs ten hits", hand("4h", "6s"), game.Ten, true, game.Hit},
		{"hard 9 vs 3 doubles", hand("4h", "5s"), game.Three, true, game.Double},
		{"hard 9 vs 2 hits", hand("4h", "5s"), game.Two, true, game.Hit},
		{"hard 9 vs 6 hits without double", hand("4h", "5s"), game.Six, false, game.Hit},
		{"hard 8 hits", hand("3h", "5s"), game.Six, true, game.Hit},
		{"three card 13 vs 4 stands", hand("4h", "5s", "4d"), game.Four, false, game.Stand},
		{"soft hand gone hard", hand("Ah", "6s", "9d"), game.Seven, false, game.Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.hand, up(tt.dealer), tt.canDouble, false))
		})
	}
}

func TestRecommendSoft(t *testing.T) {
	tests := []struct {
		name      string
		hand      game.Hand
		dealer    game.Rank
		canDouble bool
		want      game.Action
	}{
		{"soft 20 stands", hand("Ah", "9s"), game.Six, true, game.Stand},
		{"soft 21 three cards stands", hand("Ah", "4s", "6d"), game.Ten, false, game.Stand},
		{"soft 19 stands", hand("Ah", "8s"), game.Five, true, game.Stand},
		{"soft 19 vs 6 doubles", hand("Ah", "8s"), game.Six, true, game.Double},
		{"soft 19 vs 6 stands without double", hand("Ah", "8s"), game.Six, false, game.Stand},
		{"soft 18 vs 4 doubles", hand("Ah", "7s"), game.Four, true, game.Double},
		{"soft 18 vs 4 stands without double", hand("Ah", "7s"), game.Four, false, game.Stand},
		{"soft 18 vs 8 stands", hand("Ah", "7s"), game.Eight, true, game.Stand},
		{"soft 18 vs 9 hits", hand("Ah", "7s"), game.Nine, true, game.Hit},
		{"soft 18 vs ace hits", hand("Ah", "7s"), game.Ace, false, game.Hit},
		{"soft 17 vs 3 doubles", hand("Ah", "6s"), game.Three, true, game.Double},
		{"soft 17 vs 2 hits", hand("Ah", "6s"), game.Two, true, game.Hit},
		{"soft 16 vs 4 doubles", hand("Ah", "5s"), game.Four, true, game.Double},
		{"soft 15 vs 3 hits", hand("Ah", "4s"), game.Three, true, game.Hit},
		{"soft 14 vs 5 doubles", hand("Ah", "3s"), game.Five, true, game.Double},
		{"soft 13 vs 6 doubles", hand("Ah", "2s"), game.Six, true, game.Double},
		{"soft 13 vs 4 hits", hand("Ah", "2s"), game.Four, true, game.Hit},
		{"soft 13 vs 5 hits without double", hand("Ah", "2s"), game.Five, false, game.Hit},
		{"soft 14 three cards hits", hand("Ah", "2s", "Ad"), game.Five, false, game.Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.hand, up(tt.dealer), tt.canDouble, false))
		})
	}
}

func TestRecommendSplitPairs(t *testing.T) {
	tests := []struct {
		name   string
		hand   game.Hand
		dealer game.Rank
		want   game.Action
	}{
		{"nines vs 5 split", hand("9h", "9s"), game.Five, game.Split},
		{"nines vs 8 split", hand("9h", "9s"), game.Eight, game.Split},
		{"nines vs 7 stand", hand("9h", "9s"), game.Seven, game.Stand},
		{"nines vs king stand", hand("9h", "9s"), game.King, game.Stand},
		{"nines vs ace stand", hand("9h", "9s"), game.Ace, game.Stand},
		{"sevens vs 7 split", hand("7h", "7s"), game.Seven, game.Split},
		{"sevens vs 8 hit", hand("7h", "7s"), game.Eight, game.Hit},
		{"sixes vs 2 split", hand("6h", "6s"), game.Two, game.Split},
		{"sixes vs 7 hit", hand("6h", "6s"), game.Seven, game.Hit},
		{"fours vs 5 split", hand("4h", "4s"), game.Five, game.Split},
		{"fours vs 4 hit", hand("4h", "4s"), game.Four, game.Hit},
		{"threes vs 7 split", hand("3h", "3s"), game.Seven, game.Split},
		{"twos vs 8 hit", hand("2h", "2s"), game.Eight, game.Hit},
		{"tens stand", hand("Th", "Ts"), game.Six, game.Stand},
		{"kings stand", hand("Kh", "Ks"), game.Five, game.Stand},
		{"fives vs 9 double", hand("5h", "5s"), game.Nine, game.Double},
		{"fives vs ten hit", hand("5h", "5s"), game.Ten, game.Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.hand, up(tt.dealer), true, true))
		})
	}
}

func TestRecommendAlwaysSplitsAcesAndEights(t *testing.T) {
	for _, d := range upCards {
		assert.Equal(t, game.Split, Recommend(hand("Ah", "As"), up(d), false, true), "aces vs %s", d)
		assert.Equal(t, game.Split, Recommend(hand("8h", "8s"), up(d), true, true), "eights vs %s", d)
	}
}

func TestRecommendHardElevenAlwaysDoubles(t *testing.T) {
	for _, d := range upCards {
		assert.Equal(t, game.Double, Recommend(hand("5h", "6s"), up(d), true, false), "vs %s", d)
		assert.Equal(t, game.Double, Recommend(hand("2h", "9s"), up(d), true, true), "vs %s", d)
	}
}

func TestRecommendPairsWithoutSplit(t *testing.T) {
	tests := []struct {
		name      string
		hand      game.Hand
		dealer    game.Rank
		canDouble bool
		want      game.Action
	}{
		{"aces hit", hand("Ah", "As"), game.Six, true, game.Hit},
		{"eights hit", hand("8h", "8s"), game.Six, true, game.Hit},
		{"tens stand", hand("Th", "Ts"), game.Ace, true, game.Stand},
		{"queens stand", hand("Qh", "Qs"), game.Two, true, game.Stand},
		{"nines vs 7 stand", hand("9h", "9s"), game.Seven, true, game.Stand},
		{"nines vs ace stand", hand("9h", "9s"), game.Ace, true, game.Stand},
		{"nines vs 6 hit", hand("9h", "9s"), game.Six, true, game.Hit},
		{"fives vs 6 double", hand("5h", "5s"), game.Six, true, game.Double},
		{"fives vs 6 hit without double", hand("5h", "5s"), game.Six, false, game.Hit},
		{"fives vs ace hit", hand("5h", "5s"), game.Ace, true, game.Hit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.hand, up(tt.dealer), tt.canDouble, false))
		})
	}
}

// Пары 7, 6, 4, 3, 2 без сплита всегда добирают, даже 7+7 против 2
// (жёсткие 14 там бы стояли). Поведение зафиксировано как есть.
func TestRecommendSmallPairsWithoutSplitAlwaysHit(t *testing.T) {
	pairs := []game.Hand{
		hand("7h", "7s"), hand("6h", "6s"), hand("4h", "4s"), hand("3h", "3s"), hand("2h", "2s"),
	}
	for _, p := range pairs {
		for _, d := range upCards {
			for _, canDouble := range []bool{true, false} {
				assert.Equal(t, game.Hit, Recommend(p, up(d), canDouble, false), "%s vs %s", p, d)
			}
		}
	}

	// со сплитом, но вне диапазона сплита, тоже добор
	assert.Equal(t, game.Hit, Recommend(hand("7h", "7s"), up(game.Ten), true, true))
	assert.Equal(t, game.Hit, Recommend(hand("6h", "6s"), up(game.Two), true, false))
}

func TestRecommendIgnoresUpCardSuit(t *testing.T) {
	h := hand("Th", "6s")
	for suit := game.Hearts; suit <= game.Spades; suit++ {
		assert.Equal(t, game.Hit, Recommend(h, game.NewCard(game.Seven, suit), true, false))
	}
}
