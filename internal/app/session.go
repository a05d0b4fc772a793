package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one running conversation: one authorization state, one
// transcript, one turn in flight at a time. Queries submitted while a turn is
// running are rejected, not queued.
type Session struct {
	ID        string
	Auth      *AuthState
	CreatedAt time.Time

	turnMu sync.Mutex
}

func (s *Session) TryAcquire() bool { return s.turnMu.TryLock() }

func (s *Session) Release() { s.turnMu.Unlock() }

// SessionManager hands out and resolves in-memory sessions. Nothing here
// survives a restart; a stale token simply resolves to no session.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

func (m *SessionManager) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		Auth:      NewAuthState(),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	return sess, ok
}
