package storage

import (
	"context"
	"sync"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

type memoryAuditRepository struct {
	mu      sync.RWMutex
	actions []entity.AdminAction
	runs    []entity.ImportRun
}

// NewMemoryAuditRepository audit log kept in process memory
func NewMemoryAuditRepository() repository.AuditRepository {
	return &memoryAuditRepository{}
}

func (m *memoryAuditRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}

// ListActions newest first
func (m *memoryAuditRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return newestFirst(m.actions, limit), nil
}

func (m *memoryAuditRepository) SaveImportRun(ctx context.Context, run entity.ImportRun) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = append(m.runs, run)
	return nil
}

// ListImportRuns newest first
func (m *memoryAuditRepository) ListImportRuns(ctx context.Context, limit int) ([]entity.ImportRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return newestFirst(m.runs, limit), nil
}

func newestFirst[T any](items []T, limit int) []T {
	n := len(items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, items[i])
	}
	return out
}
