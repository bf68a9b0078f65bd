package repository

import (
	"context"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// AdminRepository admin session storage
type AdminRepository interface {
	// CreateSession stores a session under its UserID
	CreateSession(ctx context.Context, session entity.Session) error

	// GetSession returns a live session, refreshing its activity time
	GetSession(ctx context.Context, userID string) (*entity.Session, error)

	// DeleteSession removes the session (logout)
	DeleteSession(ctx context.Context, userID string) error
}

// AuditRepository admin action log and import history
type AuditRepository interface {
	LogAction(ctx context.Context, action entity.AdminAction) error
	ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error)

	SaveImportRun(ctx context.Context, run entity.ImportRun) error
	ListImportRuns(ctx context.Context, limit int) ([]entity.ImportRun, error)
}
