package usecase

import (
	"context"
	"fmt"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// ProductUseCase catalog passthrough with audit
type ProductUseCase interface {
	List(ctx context.Context, session entity.Session, limit int) ([]entity.Product, error)
	Update(ctx context.Context, session entity.Session, id string, update entity.ProductUpdate) (*entity.Product, error)
	Delete(ctx context.Context, session entity.Session, id string) error
}

type productUseCase struct {
	catalog repository.CatalogAPI
	audit   repository.AuditRepository
}

// NewProductUseCase creates the product use case
func NewProductUseCase(catalog repository.CatalogAPI, audit repository.AuditRepository) ProductUseCase {
	return &productUseCase{
		catalog: catalog,
		audit:   audit,
	}
}

func (u *productUseCase) List(ctx context.Context, session entity.Session, limit int) ([]entity.Product, error) {
	return u.catalog.ListProducts(ctx, session, limit)
}

func (u *productUseCase) Update(ctx context.Context, session entity.Session, id string, update entity.ProductUpdate) (*entity.Product, error) {
	product, err := u.catalog.UpdateProduct(ctx, session, id, update)
	if err != nil {
		return nil, err
	}
	recordAction(ctx, u.audit, session.UserID, ActionProductUpdate, fmt.Sprintf("Updated product %s", id))
	return product, nil
}

func (u *productUseCase) Delete(ctx context.Context, session entity.Session, id string) error {
	if err := u.catalog.DeleteProduct(ctx, session, id); err != nil {
		return err
	}
	recordAction(ctx, u.audit, session.UserID, ActionProductDelete, fmt.Sprintf("Deleted product %s", id))
	return nil
}
