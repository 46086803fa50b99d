// Copyright (c) 2025 Ballotpass Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ballotpass/server/auth"
	"github.com/ballotpass/server/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

const (
	// DefaultTTL is how long an issued challenge stays consumable.
	DefaultTTL = 600 * time.Second

	// DefaultSweepInterval is how often expired sessions are purged,
	// independent of consume-time checks.
	DefaultSweepInterval = 600 * time.Second
)

// Session binds a one-time challenge to a single pending registration or
// authentication attempt.
type Session struct {
	ID          string
	UserID      string
	Username    string
	DisplayName string
	Challenge   []byte
	Kind        string // models.SessionRegister or models.SessionAuthenticate
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Manager owns the pending-session table. All mutation goes through its
// mutex, so consumption is linearizable per session id and the sweeper
// cannot race destructively with Consume.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

// NewManager creates a session manager. A ttl of 0 means DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
}

// CreateChallenge issues a fresh 32-byte challenge bound to a new session.
// For register sessions the username and display name are carried through
// to credential registration; authenticate sessions leave them empty.
func (m *Manager) CreateChallenge(kind, username, displayName string) (*Session, error) {
	challenge, err := auth.GenerateChallenge()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Session{
		ID:          kind + "-" + uuid.NewString(),
		Username:    username,
		DisplayName: displayName,
		Challenge:   challenge,
		Kind:        kind,
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}

	if kind == models.SessionRegister {
		s.UserID = "user-" + uuid.NewString()
	} else {
		s.UserID = "auth-" + uuid.NewString()
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Consume atomically removes and returns the session. A session can be
// consumed exactly once: a second call with the same id returns
// ErrSessionNotFound. Expired sessions are removed and reported as
// ErrSessionExpired even if the sweeper has not run yet.
func (m *Manager) Consume(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	// Removed either way so the id can never be replayed.
	delete(m.sessions, sessionID)

	if time.Now().After(s.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	return s, nil
}

// Snapshot returns copies of the pending sessions, challenges omitted.
// Diagnostic use only.
func (m *Manager) Snapshot() []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		c := *s
		c.Challenge = nil
		out = append(out, c)
	}
	return out
}

// Len reports the number of pending sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartSweeper launches the background purge loop. An interval of 0 means
// DefaultSweepInterval. Call Stop at shutdown.
func (m *Manager) StartSweeper(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := m.sweep(); removed > 0 {
					slog.Info("swept expired sessions", "removed", removed)
				}
			case <-m.done:
				return
			}
		}
	}()
}

// Stop terminates the sweeper. Safe to call more than once.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *Manager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
