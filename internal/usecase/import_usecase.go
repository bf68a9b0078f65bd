package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// ImportUseCase bulk product import from spreadsheets
type ImportUseCase interface {
	// Preview parses and validates a file into a ready batch. Nothing is sent
	// to the backend. A parse failure returns an error and no batch.
	Preview(ctx context.Context, userID string, data []byte, filename string) (*entity.ImportBatch, error)

	// Run submits the valid rows of a ready batch. The batch is updated in
	// place and must not be touched by anyone else while Run is going.
	Run(ctx context.Context, session entity.Session, batch *entity.ImportBatch, onProgress ProgressFunc) (entity.ImportSummary, error)

	// History recent import runs, newest first
	History(ctx context.Context, limit int) ([]entity.ImportRun, error)

	// Template empty .xlsx workbook with the expected columns
	Template() ([]byte, error)
}

type importUseCase struct {
	parser   repository.SpreadsheetParser
	catalog  repository.CatalogAPI
	executor *ImportExecutor
	audit    repository.AuditRepository
	now      func() time.Time
}

// NewImportUseCase creates the import use case
func NewImportUseCase(
	parser repository.SpreadsheetParser,
	catalog repository.CatalogAPI,
	executor *ImportExecutor,
	audit repository.AuditRepository,
) ImportUseCase {
	return &importUseCase{
		parser:   parser,
		catalog:  catalog,
		executor: executor,
		audit:    audit,
		now:      time.Now,
	}
}

func (u *importUseCase) Preview(ctx context.Context, userID string, data []byte, filename string) (*entity.ImportBatch, error) {
	rows, err := u.parser.ParseRows(ctx, data, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	batch := &entity.ImportBatch{
		ID:        uuid.New().String(),
		UserID:    userID,
		Filename:  filename,
		Phase:     entity.PhaseValidating,
		CreatedAt: u.now(),
	}
	batch.Rows = ValidateRows(rows)
	batch.Progress = entity.ImportProgress{Total: batch.ValidCount()}
	batch.Phase = entity.PhaseReady

	slog.Info("import previewed",
		"batch", batch.ID,
		"file", filename,
		"rows", len(batch.Rows),
		"valid", batch.Progress.Total)

	return batch, nil
}

func (u *importUseCase) Run(ctx context.Context, session entity.Session, batch *entity.ImportBatch, onProgress ProgressFunc) (entity.ImportSummary, error) {
	if batch.Phase != entity.PhaseReady {
		return entity.ImportSummary{}, fmt.Errorf("%w: batch %s is %s", entity.ErrBatchNotReady, batch.ID, batch.Phase)
	}
	valid := batch.ValidCount()
	if valid == 0 {
		return entity.ImportSummary{}, entity.ErrNoValidRows
	}

	// Everything past this point belongs to the run, not to the request
	ctx = context.WithoutCancel(ctx)

	categories, err := u.catalog.ListCategories(ctx, session)
	if err != nil {
		// Rows are still imported, just without categories
		slog.Warn("failed to fetch categories", "batch", batch.ID, "error", err)
		categories = nil
	}

	batch.Phase = entity.PhaseImporting
	batch.StartedAt = u.now()
	batch.Progress = entity.ImportProgress{Total: valid}

	summary := u.executor.Execute(ctx, session, batch.Rows, categories, func(p entity.ImportProgress) {
		batch.Progress = p
		if onProgress != nil {
			onProgress(p)
		}
	})

	batch.Summary = summary
	batch.Phase = entity.PhaseComplete
	batch.FinishedAt = u.now()

	run := entity.ImportRun{
		ID:         batch.ID,
		UserID:     session.UserID,
		Filename:   batch.Filename,
		TotalRows:  len(batch.Rows),
		ValidRows:  valid,
		Succeeded:  summary.Succeeded,
		Failed:     summary.Failed,
		StartedAt:  batch.StartedAt,
		FinishedAt: batch.FinishedAt,
	}
	if u.audit != nil {
		if err := u.audit.SaveImportRun(ctx, run); err != nil {
			slog.Warn("failed to save import run", "batch", batch.ID, "error", err)
		}
	}
	recordAction(ctx, u.audit, session.UserID, ActionImport,
		fmt.Sprintf("Imported %s: %d succeeded, %d failed", batch.Filename, summary.Succeeded, summary.Failed))

	slog.Info("import finished",
		"batch", batch.ID,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"duration", batch.FinishedAt.Sub(batch.StartedAt))

	return summary, nil
}

func (u *importUseCase) History(ctx context.Context, limit int) ([]entity.ImportRun, error) {
	if u.audit == nil {
		return []entity.ImportRun{}, nil
	}
	return u.audit.ListImportRuns(ctx, limit)
}

func (u *importUseCase) Template() ([]byte, error) {
	return u.parser.Template()
}
