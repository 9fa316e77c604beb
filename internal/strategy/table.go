// Package strategy базовая стратегия блэкджека и разбор ошибок игрока.
package strategy

import "blackjack-trainer/internal/game"

// Recommend правильный ход по базовой стратегии. Чистая функция,
// можно вызывать из любых горутин.
func Recommend(hand game.Hand, dealerUpCard game.Card, canDouble, canSplit bool) game.Action {
	dealer := dealerUpCard.Value()

	switch {
	case hand.IsPair() && canSplit:
		rank := hand.Cards[0].Rank
		if pairSplitAction(rank, dealer) == game.Split {
			return game.Split
		}
		return pairAction(rank, dealer, canDouble)
	case hand.IsPair():
		return pairAction(hand.Cards[0].Rank, dealer, canDouble)
	case hand.IsSoft():
		return softAction(hand.Value(), dealer, canDouble)
	default:
		return hardAction(hand.Value(), dealer, canDouble)
	}
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}

// pairSplitAction делить пару или нет
func pairSplitAction(rank game.Rank, dealer int) game.Action {
	switch rank {
	case game.Ace, game.Eight:
		return game.Split
	case game.Nine:
		switch dealer {
		case 7, 10, 11:
			return game.Stand
		default:
			return game.Split
		}
	case game.Seven:
		if dealer <= 7 {
			return game.Split
		}
		return game.Hit
	case game.Six:
		if between(dealer, 2, 6) {
			return game.Split
		}
		return game.Hit
	case game.Four:
		if between(dealer, 5, 6) {
			return game.Split
		}
		return game.Hit
	case game.Three, game.Two:
		if between(dealer, 2, 7) {
			return game.Split
		}
		return game.Hit
	case game.Ten, game.Jack, game.Queen, game.King:
		return game.Stand
	case game.Five:
		return game.Double
	}
	return game.Hit
}

// pairAction пара, которую делить нельзя или не нужно.
// 7, 6, 4, 3, 2 всегда добирают при любой карте дилера.
func pairAction(rank game.Rank, dealer int, canDouble bool) game.Action {
	switch rank {
	case game.Ace, game.Eight:
		return game.Hit
	case game.Ten, game.Jack, game.Queen, game.King:
		return game.Stand
	case game.Nine:
		switch dealer {
		case 7, 10, 11:
			return game.Stand
		default:
			return game.Hit
		}
	case game.Seven, game.Six, game.Four, game.Three, game.Two:
		return game.Hit
	case game.Five:
		if between(dealer, 2, 9) && canDouble {
			return game.Double
		}
		return game.Hit
	}
	return game.Hit
}

// softAction туз считается за 11
func softAction(total, dealer int, canDouble bool) game.Action {
	switch total {
	case 21, 20:
		return game.Stand
	case 19:
		if dealer == 6 && canDouble {
			return game.Double
		}
		return game.Stand
	case 18:
		switch {
		case between(dealer, 2, 6) && canDouble:
			return game.Double
		case between(dealer, 2, 8):
			return game.Stand
		default:
			return game.Hit
		}
	case 17:
		if between(dealer, 3, 6) && canDouble {
			return game.Double
		}
		return game.Hit
	case 16, 15:
		if between(dealer, 4, 6) && canDouble {
			return game.Double
		}
		return game.Hit
	case 14, 13:
		if between(dealer, 5, 6) && canDouble {
			return game.Double
		}
		return game.Hit
	default:
		return game.Hit
	}
}

func hardAction(total, dealer int, canDouble bool) game.Action {
	switch {
	case total >= 17:
		return game.Stand
	case between(total, 13, 16):
		if between(dealer, 2, 6) {
			return game.Stand
		}
		return game.Hit
	case total == 12:
		if between(dealer, 4, 6) {
			return game.Stand
		}
		return game.Hit
	case total == 11:
		if canDouble {
			return game.Double
		}
		return game.Hit
	case total == 10:
		if between(dealer, 2, 9) && canDouble {
			return game.Double
		}
		return game.Hit
	case total == 9:
		if between(dealer, 3, 6) && canDouble {
			return game.Double
		}
		return game.Hit
	default:
		return game.Hit
	}
}
