package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// orderView order plus the stepper rendering data
type orderView struct {
	entity.Order
	Steps      []entity.StepView  `json:"steps"`
	Progress   int                `json:"progress"`
	CanAdvance bool               `json:"can_advance"`
	CanCancel  bool               `json:"can_cancel"`
	NextStatus entity.OrderStatus `json:"next_status,omitempty"`
}

func newOrderView(o entity.Order) orderView {
	view := orderView{
		Order:      o,
		Steps:      o.Steps(),
		Progress:   o.ProgressPercent(),
		CanAdvance: o.Status.CanAdvance(),
		CanCancel:  o.Status.CanCancel(),
	}
	if next, err := o.Status.Advance(); err == nil {
		view.NextStatus = next
	}
	return view
}

func (s *Server) handleListOrders(c echo.Context) error {
	orders, err := s.orders.List(c.Request().Context(), sessionFrom(c), queryLimit(c, 100))
	if err != nil {
		return toHTTPError(err)
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

func (s *Server) handleGetOrder(c echo.Context) error {
	order, err := s.orders.Get(c.Request().Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, newOrderView(*order))
}

func (s *Server) handleAdvanceOrder(c echo.Context) error {
	order, err := s.orders.Advance(c.Request().Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, newOrderView(*order))
}

func (s *Server) handleCancelOrder(c echo.Context) error {
	order, err := s.orders.Cancel(c.Request().Context(), sessionFrom(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, newOrderView(*order))
}
