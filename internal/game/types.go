package game

import "fmt"

// State фаза раунда
type State int

const (
	StateInitial State = iota
	StatePlayerTurn
	StateDealerTurn
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "INITIAL"
	case StatePlayerTurn:
		return "PLAYER_TURN"
	case StateDealerTurn:
		return "DEALER_TURN"
	case StateGameOver:
		return "GAME_OVER"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Action ход игрока
type Action int

const (
	Hit Action = iota
	Stand
	Double
	Split
)

func (a Action) String() string {
	switch a {
	case Hit:
		return "HIT"
	case Stand:
		return "STAND"
	case Double:
		return "DOUBLE"
	case Split:
		return "SPLIT"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Result исход одной руки
type Result int

const (
	ResultInProgress Result = iota
	ResultPlayerWin
	ResultDealerWin
	ResultPush
	ResultBlackjack
)

func (r Result) String() string {
	switch r {
	case ResultInProgress:
		return "IN_PROGRESS"
	case ResultPlayerWin:
		return "PLAYER_WIN"
	case ResultDealerWin:
		return "DEALER_WIN"
	case ResultPush:
		return "PUSH"
	case ResultBlackjack:
		return "PLAYER_BLACKJACK"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// ActionRecord запись хода в момент его совершения
type ActionRecord struct {
	Action       Action
	HandValue    int
	Cards        []Card
	DealerUpCard Card
	IsSoft       bool
	IsPair       bool
	HandIndex    int
}

// HandResult итог по руке после GAME_OVER
type HandResult struct {
	HandIndex int
	Result    Result
	Bet       float64
	Payout    float64
}

// snapshot состояние перед последним ходом, для одного шага отмены
type snapshot struct {
	hands       []PlayerHand
	activeIndex int
	dealer      Hand
	state       State
	hasSplit    bool
	historyLen  int
}
