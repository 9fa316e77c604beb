package game

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Session один Engine на чат. Все вызовы Engine идут под Lock.
type Session struct {
	sync.Mutex
	Engine *Engine

	// Settled раунд уже рассчитан с балансом игрока
	Settled  bool
	lastSeen time.Time
}

// Manager управляет активными играми
type Manager struct {
	games     map[int64]*Session
	mu        sync.RWMutex
	clock     quartz.Clock
	newEngine func() *Engine
}

func NewManager(clock quartz.Clock, newEngine func() *Engine) *Manager {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if newEngine == nil {
		newEngine = func() *Engine { return NewEngine() }
	}
	return &Manager{
		games:     make(map[int64]*Session),
		clock:     clock,
		newEngine: newEngine,
	}
}

func (m *Manager) Get(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.games[chatID]
	if s != nil {
		s.lastSeen = m.clock.Now()
	}
	return s
}

// GetOrCreate shoe живёт вместе с сессией между раундами
func (m *Manager) GetOrCreate(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.games[chatID]
	if !ok {
		s = &Session{Engine: m.newEngine(), Settled: true}
		m.games[chatID] = s
	}
	s.lastSeen = m.clock.Now()
	return s
}

func (m *Manager) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, chatID)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep удаляет сессии без активности дольше ttl, возвращает сколько удалено
func (m *Manager) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	removed := 0
	for id, s := range m.games {
		if now.Sub(s.lastSeen) > ttl {
			delete(m.games, id)
			removed++
		}
	}
	return removed
}
