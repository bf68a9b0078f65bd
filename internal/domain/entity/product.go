package entity

import "time"

// Product catalog product as returned by the API
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	SKU         string     `json:"sku,omitempty"`
	PriceCents  int64      `json:"price_cents"`
	Stock       int        `json:"stock"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	Categories  []Category `json:"categories,omitempty"`
}

// Category is externally owned reference data, used only for label resolution
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductPayload POST /products body
type ProductPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SKU         string   `json:"sku,omitempty"`
	PriceCents  int64    `json:"price_cents"`
	Stock       int      `json:"stock"`
	Active      bool     `json:"active"`
	CategoryIDs []string `json:"category_ids"`
}

// ProductUpdate PUT /products/:id body; nil fields are left untouched
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	PriceCents  *int64   `json:"price_cents,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Active      *bool    `json:"active,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}
