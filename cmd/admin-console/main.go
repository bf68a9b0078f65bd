package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/bazaar-admin/config"
	"github.com/yourusername/bazaar-admin/internal/delivery/httpapi"
	"github.com/yourusername/bazaar-admin/internal/delivery/telegram"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/api"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/gemini"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/parser"
	"github.com/yourusername/bazaar-admin/internal/infrastructure/storage"
	"github.com/yourusername/bazaar-admin/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("admin console stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	var audit repository.AuditRepository
	if cfg.AuditDBPath == "" {
		slog.Warn("AUDIT_DB_PATH is empty, audit log is kept in memory")
		audit = storage.NewMemoryAuditRepository()
	} else {
		db, err := storage.NewSQLiteAuditRepository(cfg.AuditDBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		audit = db
	}

	var describer repository.DescriptionWriter
	if cfg.FillDescr {
		writer, err := gemini.NewDescriptionWriter(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		defer writer.Close()
		describer = writer
	}

	adminUseCase := usecase.NewAdminUseCase(client, storage.NewMemoryAdminRepository(cfg.SessionTTL), audit)
	importUseCase := usecase.NewImportUseCase(
		parser.NewSpreadsheetParser(),
		client,
		usecase.NewImportExecutor(client, describer),
		audit,
	)
	orderUseCase := usecase.NewOrderUseCase(client, audit)
	productUseCase := usecase.NewProductUseCase(client, audit)
	dashboardUseCase := usecase.NewDashboardUseCase(client, client)

	e := newEcho(cfg.MaxUploadBytes)
	srv := httpapi.NewServer(adminUseCase, importUseCase, orderUseCase, productUseCase, dashboardUseCase, cfg.MaxUploadBytes)
	srv.RegisterRoutes(e)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("🚀 admin console starting",
			"addr", cfg.HTTPAddr,
			"api", cfg.APIBaseURL,
			"audit_db", cfg.AuditDBPath,
			"descriptions", cfg.FillDescr,
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBotHandler(
			cfg.TelegramToken,
			adminUseCase,
			importUseCase,
			orderUseCase,
			dashboardUseCase,
			cfg.MaxUploadBytes,
		)
		if err != nil {
			stop()
			_ = g.Wait()
			return err
		}
		g.Go(func() error {
			if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		slog.Info("TELEGRAM_BOT_TOKEN is empty, telegram console disabled")
	}

	return g.Wait()
}

func newEcho(maxUpload int64) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	// multipart overhead on top of the file itself
	e.Use(middleware.BodyLimit(formatBytes(maxUpload + 64<<10)))

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			slog.Info("request handled",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
				"ip", c.RealIP(),
			)
			return nil
		}
	})

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			return next(c)
		}
	})

	return e
}
