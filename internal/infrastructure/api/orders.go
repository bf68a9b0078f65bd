package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

type statusRequest struct {
	Status entity.OrderStatus `json:"status"`
}

// ListOrders GET /orders?limit=
func (c *Client) ListOrders(ctx context.Context, session entity.Session, limit int) ([]entity.Order, error) {
	path := "/orders"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprint(limit))
	}
	var orders []entity.Order
	if err := c.doJSON(ctx, http.MethodGet, path, session.Token, nil, &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder GET /orders/:id
func (c *Client) GetOrder(ctx context.Context, session entity.Session, id string) (*entity.Order, error) {
	var order entity.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), session.Token, nil, &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return &order, nil
}

// UpdateOrderStatus PUT /orders/:id/status
func (c *Client) UpdateOrderStatus(ctx context.Context, session entity.Session, id string, status entity.OrderStatus) error {
	path := "/orders/" + url.PathEscape(id) + "/status"
	if err := c.doJSON(ctx, http.MethodPut, path, session.Token, statusRequest{Status: status}, nil); err != nil {
		return fmt.Errorf("update order %s status: %w", id, err)
	}
	return nil
}
