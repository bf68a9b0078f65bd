package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

func (s *Server) handleListProducts(c echo.Context) error {
	products, err := s.products.List(c.Request().Context(), sessionFrom(c), queryLimit(c, 100))
	if err != nil {
		return toHTTPError(err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	var update entity.ProductUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	product, err := s.products.Update(c.Request().Context(), sessionFrom(c), c.Param("id"), update)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	if err := s.products.Delete(c.Request().Context(), sessionFrom(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleDashboard(c echo.Context) error {
	stats, err := s.dashboard.Stats(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
