package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLiteAuditRepository audit log and import history in SQLite
type SQLiteAuditRepository struct {
	db *sql.DB
}

// NewSQLiteAuditRepository opens dbPath and runs the embedded migrations
func NewSQLiteAuditRepository(dbPath string) (*SQLiteAuditRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("running audit database migrations", "database", dbPath)
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteAuditRepository{db: db}, nil
}

func (s *SQLiteAuditRepository) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteAuditRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_actions (id, user_id, action, details, ts) VALUES (?, ?, ?, ?, ?)`,
		action.ID, action.UserID, action.Action, action.Details, action.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("insert admin action: %w", err)
	}
	return nil
}

// ListActions newest first
func (s *SQLiteAuditRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	query := `SELECT id, user_id, action, details, ts FROM admin_actions ORDER BY ts DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query admin actions: %w", err)
	}
	defer rows.Close()

	actions := []entity.AdminAction{}
	for rows.Next() {
		var a entity.AdminAction
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.Details, &a.Timestamp); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (s *SQLiteAuditRepository) SaveImportRun(ctx context.Context, run entity.ImportRun) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO import_runs (id, user_id, filename, total_rows, valid_rows, succeeded, failed, started_at, finished_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.UserID, run.Filename, run.TotalRows, run.ValidRows, run.Succeeded, run.Failed,
		run.StartedAt.UTC(), run.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

// ListImportRuns newest first
func (s *SQLiteAuditRepository) ListImportRuns(ctx context.Context, limit int) ([]entity.ImportRun, error) {
	query := `SELECT id, user_id, filename, total_rows, valid_rows, succeeded, failed, started_at, finished_at
FROM import_runs ORDER BY finished_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query import runs: %w", err)
	}
	defer rows.Close()

	runs := []entity.ImportRun{}
	for rows.Next() {
		var r entity.ImportRun
		if err := rows.Scan(&r.ID, &r.UserID, &r.Filename, &r.TotalRows, &r.ValidRows,
			&r.Succeeded, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
