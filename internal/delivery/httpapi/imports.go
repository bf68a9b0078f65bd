package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	templateFilename = "products_import_template.xlsx"
)

func (s *Server) handleImportTemplate(c echo.Context) error {
	data, err := s.imports.Template()
	if err != nil {
		slog.Error("failed to build import template", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build template")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+templateFilename)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

func (s *Server) handleImportHistory(c echo.Context) error {
	runs, err := s.imports.History(c.Request().Context(), queryLimit(c, 20))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, runs)
}

// handleImportUpload parses and validates the uploaded file into a batch
// POST /api/imports (multipart field "file")
func (s *Server) handleImportUpload(c echo.Context) error {
	session := sessionFrom(c)

	header, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Please upload an .xlsx or .csv file")
	}
	if header.Size > s.maxUpload {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File is too large")
	}

	file, err := header.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read upload")
	}
	if int64(len(data)) > s.maxUpload {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File is too large")
	}

	batch, err := s.imports.Preview(c.Request().Context(), session.UserID, data, header.Filename)
	if err != nil {
		if errors.Is(err, entity.ErrUnsupportedFile) || errors.Is(err, entity.ErrEmptySpreadsheet) {
			return toHTTPError(err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to parse spreadsheet: "+err.Error())
	}

	s.batches.put(batch)
	return c.JSON(http.StatusCreated, batch)
}

func (s *Server) handleImportStatus(c echo.Context) error {
	batch, err := s.batches.get(c.Param("id"), sessionFrom(c).UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, batch)
}

// handleImportRun starts the batch in the background and returns immediately.
// Progress is read back through GET /api/imports/:id.
func (s *Server) handleImportRun(c echo.Context) error {
	session := sessionFrom(c)
	id := c.Param("id")

	work, err := s.batches.claim(id, session.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	// The run outlives the request
	ctx := context.WithoutCancel(c.Request().Context())
	go func() {
		_, err := s.imports.Run(ctx, session, work, func(p entity.ImportProgress) {
			s.batches.progress(id, p)
		})
		if err != nil {
			slog.Error("import run failed", "batch", id, "error", err)
			s.batches.release(id)
			return
		}
		s.batches.finish(work)
	}()

	return c.JSON(http.StatusAccepted, map[string]string{"id": id, "phase": string(entity.PhaseImporting)})
}

func queryLimit(c echo.Context, def int) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
