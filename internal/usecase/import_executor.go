package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// MsgCreateFailed is used when the backend gives no reason
const MsgCreateFailed = "Failed to create"

const describeTimeout = 20 * time.Second

// ProgressFunc receives one event after every attempted row
type ProgressFunc func(entity.ImportProgress)

// ImportExecutor submits validated rows to the catalog API one at a time
type ImportExecutor struct {
	catalog   repository.CatalogAPI
	describer repository.DescriptionWriter
}

// NewImportExecutor creates an executor. describer may be nil.
func NewImportExecutor(catalog repository.CatalogAPI, describer repository.DescriptionWriter) *ImportExecutor {
	return &ImportExecutor{
		catalog:   catalog,
		describer: describer,
	}
}

// Execute creates a product for every valid row, strictly in order, and
// records each outcome on results in place. Invalid rows are skipped and stay
// pending. A failing row never stops the batch and nothing is retried.
// Once started the batch runs to the end: caller cancellation is ignored and
// only per-request timeouts apply.
func (e *ImportExecutor) Execute(
	ctx context.Context,
	session entity.Session,
	results []entity.ValidationResult,
	categories []entity.Category,
	onProgress ProgressFunc,
) entity.ImportSummary {
	ctx = context.WithoutCancel(ctx)

	total := 0
	for _, r := range results {
		if r.IsValid {
			total++
		}
	}

	var summary entity.ImportSummary
	processed := 0

	for i := range results {
		item := &results[i]
		if !item.IsValid {
			continue
		}

		payload := BuildPayload(item.Row, categories)
		if payload.Description == "" && e.describer != nil {
			payload.Description = e.describe(ctx, item)
		}

		product, err := e.catalog.CreateProduct(ctx, session, payload)
		if err != nil {
			item.Status = entity.ImportError
			item.Message = failureMessage(err)
			summary.Failed++
			slog.Warn("import row failed", "row", item.RowNumber, "name", payload.Name, "error", err)
		} else {
			item.Status = entity.ImportSuccess
			if product != nil {
				item.ProductID = product.ID
			}
			summary.Succeeded++
		}

		processed++
		if onProgress != nil {
			onProgress(entity.ImportProgress{
				Processed: processed,
				Total:     total,
				Percent:   ProgressPercent(processed, total),
				Index:     i,
				Result:    *item,
			})
		}
	}

	return summary
}

func (e *ImportExecutor) describe(ctx context.Context, item *entity.ValidationResult) string {
	ctx, cancel := context.WithTimeout(ctx, describeTimeout)
	defer cancel()

	text, err := e.describer.WriteDescription(ctx, item.Row.Name, item.Row.Category)
	if err != nil {
		slog.Warn("description generation failed", "row", item.RowNumber, "error", err)
		return ""
	}
	return text
}

// BuildPayload maps a parsed row onto the create-product body
func BuildPayload(row entity.ParsedRow, categories []entity.Category) entity.ProductPayload {
	active := true
	if row.Active != nil {
		active = *row.Active
	}
	return entity.ProductPayload{
		Name:        row.Name,
		Description: row.Description,
		SKU:         row.SKU,
		PriceCents:  PriceToCents(row.Price),
		Stock:       row.Stock,
		Active:      active,
		CategoryIDs: CategoryIDs(row.Category, categories),
	}
}

// PriceToCents converts a currency amount to minor units, rounding half away from zero
func PriceToCents(price float64) int64 {
	return decimal.NewFromFloat(price).Shift(2).Round(0).IntPart()
}

// ProgressPercent round(processed/total*100); 0 when there is nothing to do
func ProgressPercent(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(processed) / float64(total) * 100))
}

func failureMessage(err error) string {
	var reported interface{ ServerMessage() string }
	if errors.As(err, &reported) {
		if msg := reported.ServerMessage(); msg != "" {
			return msg
		}
	}
	return MsgCreateFailed
}
