package product

import (
	"context"

	"storefront/internal/domain"
)

// ListFilter narrows List results. A zero value lists everything.
type ListFilter struct {
	Category domain.Category
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	UpsertByName(ctx context.Context, p domain.Product) (*domain.Product, error)
}
