package repository

import "context"

// DescriptionWriter drafts a product description from its name and category
type DescriptionWriter interface {
	WriteDescription(ctx context.Context, name, category string) (string, error)
}
