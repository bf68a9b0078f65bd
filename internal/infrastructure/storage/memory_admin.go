package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

type memoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryAdminRepository in-memory session store. Sessions idle for longer
// than ttl are treated as logged out; ttl <= 0 disables expiry.
func NewMemoryAdminRepository(ttl time.Duration) repository.AdminRepository {
	return &memoryAdminRepository{
		sessions: make(map[string]entity.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// CreateSession stores (or replaces) the user's session
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.Session) error {
	if session.UserID == "" {
		return fmt.Errorf("session user id is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if session.LoginTime.IsZero() {
		session.LoginTime = now
	}
	session.LastActivity = now
	m.sessions[session.UserID] = session
	return nil
}

// GetSession returns the live session and refreshes its activity time
func (m *memoryAdminRepository) GetSession(ctx context.Context, userID string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, fmt.Errorf("%w: no session for %s", entity.ErrUnauthorized, userID)
	}

	now := m.now()
	if m.ttl > 0 && now.Sub(session.LastActivity) > m.ttl {
		delete(m.sessions, userID)
		return nil, fmt.Errorf("%w: session expired", entity.ErrUnauthorized)
	}

	session.LastActivity = now
	m.sessions[userID] = session
	return &session, nil
}

// DeleteSession logout
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}
