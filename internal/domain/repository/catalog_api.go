package repository

import (
	"context"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// CatalogAPI product and category endpoints of the backend
type CatalogAPI interface {
	// ListCategories GET /categories
	ListCategories(ctx context.Context, session entity.Session) ([]entity.Category, error)

	// CreateProduct POST /products
	CreateProduct(ctx context.Context, session entity.Session, payload entity.ProductPayload) (*entity.Product, error)

	// ListProducts GET /products
	ListProducts(ctx context.Context, session entity.Session, limit int) ([]entity.Product, error)

	// UpdateProduct PUT /products/:id
	UpdateProduct(ctx context.Context, session entity.Session, id string, update entity.ProductUpdate) (*entity.Product, error)

	// DeleteProduct DELETE /products/:id
	DeleteProduct(ctx context.Context, session entity.Session, id string) error
}

// OrderAPI order endpoints of the backend
type OrderAPI interface {
	ListOrders(ctx context.Context, session entity.Session, limit int) ([]entity.Order, error)
	GetOrder(ctx context.Context, session entity.Session, id string) (*entity.Order, error)

	// UpdateOrderStatus PUT /orders/:id/status
	UpdateOrderStatus(ctx context.Context, session entity.Session, id string, status entity.OrderStatus) error
}

// AuthAPI exchanges credentials for an API token
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
}
