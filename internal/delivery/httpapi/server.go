package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/usecase"
)

const defaultMaxUpload = 5 << 20

// Server JSON API for the browser dashboard
type Server struct {
	admin     usecase.AdminUseCase
	imports   usecase.ImportUseCase
	orders    usecase.OrderUseCase
	products  usecase.ProductUseCase
	dashboard usecase.DashboardUseCase

	batches   *batchStore
	maxUpload int64
}

// NewServer creates the HTTP delivery
func NewServer(
	admin usecase.AdminUseCase,
	imports usecase.ImportUseCase,
	orders usecase.OrderUseCase,
	products usecase.ProductUseCase,
	dashboard usecase.DashboardUseCase,
	maxUpload int64,
) *Server {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Server{
		admin:     admin,
		imports:   imports,
		orders:    orders,
		products:  products,
		dashboard: dashboard,
		batches:   newBatchStore(),
		maxUpload: maxUpload,
	}
}

// RegisterRoutes mounts every route on e
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.handleHealth)

	api := e.Group("/api")
	api.POST("/auth/login", s.handleLogin)

	// Everything else requires a session
	withAuth := api.Group("", s.requireSession)
	withAuth.POST("/auth/logout", s.handleLogout)

	withAuth.GET("/dashboard", s.handleDashboard)

	withAuth.GET("/products", s.handleListProducts)
	withAuth.PUT("/products/:id", s.handleUpdateProduct)
	withAuth.DELETE("/products/:id", s.handleDeleteProduct)

	imports := withAuth.Group("/imports")
	imports.GET("/template", s.handleImportTemplate)
	imports.GET("/history", s.handleImportHistory)
	imports.POST("", s.handleImportUpload)
	imports.GET("/:id", s.handleImportStatus)
	imports.POST("/:id/run", s.handleImportRun)

	withAuth.GET("/orders", s.handleListOrders)
	withAuth.GET("/orders/:id", s.handleGetOrder)
	withAuth.POST("/orders/:id/advance", s.handleAdvanceOrder)
	withAuth.POST("/orders/:id/cancel", s.handleCancelOrder)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
