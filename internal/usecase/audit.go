package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// Audit action names
const (
	ActionLogin         = "login"
	ActionLogout        = "logout"
	ActionImport        = "import"
	ActionOrderAdvance  = "order_advance"
	ActionOrderCancel   = "order_cancel"
	ActionProductUpdate = "product_update"
	ActionProductDelete = "product_delete"
)

// recordAction writes an audit entry. Audit failures never fail the operation.
func recordAction(ctx context.Context, audit repository.AuditRepository, userID, action, details string) {
	if audit == nil {
		return
	}
	entry := entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := audit.LogAction(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("failed to record admin action", "action", action, "user", userID, "error", err)
	}
}
