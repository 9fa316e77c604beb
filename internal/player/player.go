package player

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type Player struct {
	ChatID  int64
	Balance int
	Wins    int
	Losses  int
	Draws   int
	Games   int
	LastBet int

	// статистика по базовой стратегии
	Actions       int
	Deviations    int
	PerfectRounds int
	Rounds        int
}

// Stats строка таблицы лидеров
type Stats struct {
	ChatID   int64
	Balance  int
	Wins     int
	Games    int
	WinRate  float64
	Accuracy float64
}

// Round один сыгранный раунд для истории
type Round struct {
	ID         uuid.UUID
	ChatID     int64
	Bet        int
	Payout     int
	Hands      int
	Actions    int
	Deviations int
	CreatedAt  time.Time
}

type Repository interface {
	GetOrCreate(chatID int64, startBalance, defaultBet int) (*Player, error)
	Save(player *Player) error
	GetTopByBalance(limit int) ([]Stats, error)
	RecordRound(round Round) (Round, error)
	RecentRounds(chatID int64, limit int) ([]Round, error)
}

type SQLiteRepository struct {
	db    *sql.DB
	clock quartz.Clock
}

func NewRepository(db *sql.DB, clock quartz.Clock) *SQLiteRepository {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &SQLiteRepository{db: db, clock: clock}
}

func (r *SQLiteRepository) GetOrCreate(chatID int64, startBalance, defaultBet int) (*Player, error) {
	player := &Player{ChatID: chatID}

	err := r.db.QueryRow(`
		SELECT balance, wins, losses, draws, games, last_bet,
			actions, deviations, perfect_rounds, rounds
		FROM players WHERE chat_id = ?
	`, chatID).Scan(
		&player.Balance, &player.Wins, &player.Losses,
		&player.Draws, &player.Games, &player.LastBet,
		&player.Actions, &player.Deviations, &player.PerfectRounds, &player.Rounds,
	)

	if errors.Is(err, sql.ErrNoRows) {
		player.Balance = startBalance
		player.LastBet = defaultBet

		_, err = r.db.Exec(`
			INSERT INTO players (chat_id, balance, last_bet)
			VALUES (?, ?, ?)
		`, chatID, player.Balance, player.LastBet)

		if err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}
		return player, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (r *SQLiteRepository) Save(player *Player) error {
	_, err := r.db.Exec(`
		UPDATE players SET
			balance = ?, wins = ?, losses = ?, draws = ?,
			games = ?, last_bet = ?, actions = ?, deviations = ?,
			perfect_rounds = ?, rounds = ?, updated_at = ?
		WHERE chat_id = ?
	`, player.Balance, player.Wins, player.Losses, player.Draws,
		player.Games, player.LastBet, player.Actions, player.Deviations,
		player.PerfectRounds, player.Rounds, r.clock.Now().UTC(), player.ChatID)

	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTopByBalance(limit int) ([]Stats, error) {
	rows, err := r.db.Query(`
		SELECT chat_id, balance, wins, games, actions, deviations
		FROM players
		WHERE games > 0
		ORDER BY balance DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top: %w", err)
	}
	defer rows.Close()

	var stats []Stats
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ChatID, &p.Balance, &p.Wins, &p.Games, &p.Actions, &p.Deviations); err != nil {
			return nil, err
		}
		stats = append(stats, Stats{
			ChatID:   p.ChatID,
			Balance:  p.Balance,
			Wins:     p.Wins,
			Games:    p.Games,
			WinRate:  p.WinRate(),
			Accuracy: p.Accuracy(),
		})
	}

	return stats, rows.Err()
}

// RecordRound сохраняет раунд; ID и время проставляются здесь, если пустые
func (r *SQLiteRepository) RecordRound(round Round) (Round, error) {
	if round.ID == uuid.Nil {
		round.ID = uuid.New()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = r.clock.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO rounds (id, chat_id, bet, payout, hands, actions, deviations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, round.ID.String(), round.ChatID, round.Bet, round.Payout, round.Hands,
		round.Actions, round.Deviations, round.CreatedAt)
	if err != nil {
		return Round{}, fmt.Errorf("failed to record round: %w", err)
	}
	return round, nil
}

func (r *SQLiteRepository) RecentRounds(chatID int64, limit int) ([]Round, error) {
	rows, err := r.db.Query(`
		SELECT id, chat_id, bet, payout, hands, actions, deviations, created_at
		FROM rounds
		WHERE chat_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var (
			rd Round
			id string
		)
		if err := rows.Scan(&id, &rd.ChatID, &rd.Bet, &rd.Payout, &rd.Hands,
			&rd.Actions, &rd.Deviations, &rd.CreatedAt); err != nil {
			return nil, err
		}
		if rd.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("bad round id %q: %w", id, err)
		}
		rounds = append(rounds, rd)
	}

	return rounds, rows.Err()
}

// ============== БАЛАНС ==============

func (p *Player) AddWin(winAmount int) {
	p.Balance += winAmount
	p.Wins++
	p.Games++
}

func (p *Player) AddLoss() {
	p.Losses++
	p.Games++
}

func (p *Player) AddDraw(betAmount int) {
	p.Balance += betAmount
	p.Draws++
	p.Games++
}

func (p *Player) PlaceBet(amount int) bool {
	if amount > p.Balance {
		return false
	}
	p.Balance -= amount
	p.LastBet = amount
	return true
}

// Debit доплата за дабл или сплит, LastBet не меняется
func (p *Player) Debit(amount int) error {
	if amount > p.Balance {
		return ErrInsufficientFunds
	}
	p.Balance -= amount
	return nil
}

func (p *Player) Refund(amount int) {
	p.Balance += amount
}

func (p *Player) CanAfford(amount int) bool {
	return p.Balance >= amount
}

func (p *Player) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}

// AddAnalysis учёт ходов и ошибок за раунд
func (p *Player) AddAnalysis(actions, deviations int) {
	p.Rounds++
	p.Actions += actions
	p.Deviations += deviations
	if deviations == 0 {
		p.PerfectRounds++
	}
}

// Accuracy доля ходов по базовой стратегии, в процентах
func (p *Player) Accuracy() float64 {
	if p.Actions == 0 {
		return 100
	}
	return float64(p.Actions-p.Deviations) / float64(p.Actions) * 100
}
