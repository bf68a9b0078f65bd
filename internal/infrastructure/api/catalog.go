package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
)

// ListCategories GET /categories
func (c *Client) ListCategories(ctx context.Context, session entity.Session) ([]entity.Category, error) {
	var categories []entity.Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", session.Token, nil, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateProduct POST /products
func (c *Client) CreateProduct(ctx context.Context, session entity.Session, payload entity.ProductPayload) (*entity.Product, error) {
	if payload.CategoryIDs == nil {
		payload.CategoryIDs = []string{}
	}
	var product entity.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", session.Token, payload, &product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// ListProducts GET /products?limit=
func (c *Client) ListProducts(ctx context.Context, session entity.Session, limit int) ([]entity.Product, error) {
	path := "/products"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(fmt.Sprint(limit))
	}
	var products []entity.Product
	if err := c.doJSON(ctx, http.MethodGet, path, session.Token, nil, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// UpdateProduct PUT /products/:id
func (c *Client) UpdateProduct(ctx context.Context, session entity.Session, id string, update entity.ProductUpdate) (*entity.Product, error) {
	var product entity.Product
	if err := c.doJSON(ctx, http.MethodPut, "/products/"+url.PathEscape(id), session.Token, update, &product); err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return &product, nil
}

// DeleteProduct DELETE /products/:id
func (c *Client) DeleteProduct(ctx context.Context, session entity.Session, id string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), session.Token, nil, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}
