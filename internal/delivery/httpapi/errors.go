package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// toHTTPError maps domain and upstream errors onto status codes
func toHTTPError(err error) error {
	var status int
	switch {
	case errors.Is(err, entity.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrUnsupportedFile), errors.Is(err, entity.ErrEmptySpreadsheet):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrNoValidRows):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrBatchNotReady),
		errors.Is(err, entity.ErrTransitionNotAllowed),
		errors.Is(err, entity.ErrTransitionInProgress):
		status = http.StatusConflict
	default:
		var reported interface{ ServerMessage() string }
		if errors.As(err, &reported) && reported.ServerMessage() != "" {
			return echo.NewHTTPError(http.StatusBadGateway, reported.ServerMessage()).SetInternal(err)
		}
		slog.Error("request failed", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Upstream request failed").SetInternal(err)
	}
	return echo.NewHTTPError(status, err.Error()).SetInternal(err)
}
