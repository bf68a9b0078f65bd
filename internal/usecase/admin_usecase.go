package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// AdminUseCase admin login state and audit log
type AdminUseCase interface {
	// Login exchanges credentials for a backend token and stores the session
	// under userID (the caller's own key: chat id, browser session id).
	Login(ctx context.Context, userID, email, password string) (*entity.Session, error)

	// Logout drops the session
	Logout(ctx context.Context, userID string) error

	// Session returns the live session or ErrUnauthorized
	Session(ctx context.Context, userID string) (*entity.Session, error)

	// RecentActions audit log, newest first
	RecentActions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}

type adminUseCase struct {
	auth      repository.AuthAPI
	adminRepo repository.AdminRepository
	audit     repository.AuditRepository
}

// NewAdminUseCase creates the admin use case
func NewAdminUseCase(
	auth repository.AuthAPI,
	adminRepo repository.AdminRepository,
	audit repository.AuditRepository,
) AdminUseCase {
	return &adminUseCase{
		auth:      auth,
		adminRepo: adminRepo,
		audit:     audit,
	}
}

func (u *adminUseCase) Login(ctx context.Context, userID, email, password string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", entity.ErrUnauthorized)
	}

	token, err := u.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	now := time.Now()
	session := entity.Session{
		UserID:       userID,
		Email:        email,
		Token:        token,
		IsAdmin:      true,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	recordAction(ctx, u.audit, userID, ActionLogin, "Logged in as "+email)
	return &session, nil
}

func (u *adminUseCase) Logout(ctx context.Context, userID string) error {
	if err := u.adminRepo.DeleteSession(ctx, userID); err != nil {
		return err
	}
	recordAction(ctx, u.audit, userID, ActionLogout, "Logged out")
	return nil
}

func (u *adminUseCase) Session(ctx context.Context, userID string) (*entity.Session, error) {
	return u.adminRepo.GetSession(ctx, userID)
}

func (u *adminUseCase) RecentActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	if u.audit == nil {
		return []entity.AdminAction{}, nil
	}
	return u.audit.ListActions(ctx, limit)
}
