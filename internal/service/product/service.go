package product

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/logging"
	productrepo "storefront/internal/repository/product"
)

type Service struct {
	repo   productrepo.Repository
	logger *zap.Logger
}

func New(repo productrepo.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrNop(logger).Named("product")}
}

// CreateInput is a full product definition.
type CreateInput struct {
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	Category    domain.Category
	Quantity    int
}

// UpdateInput is a partial update. Nil fields keep their current value.
type UpdateInput struct {
	Name        *string
	Description *string
	Image       *string
	Price       *decimal.Decimal
	Category    *domain.Category
	Quantity    *int
}

// List returns all products, or only those in category when it is non-empty.
func (s *Service) List(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	if category != "" && !category.Valid() {
		return nil, domain.Invalid("unknown category %q", category)
	}
	return s.repo.List(ctx, productrepo.ListFilter{Category: category})
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	return p, notFound(err)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	p, err := Build(in)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	merged := CreateInput{
		Name:        current.Name,
		Description: current.Description,
		Image:       current.Image,
		Price:       domain.CentsToPrice(current.PriceCents),
		Category:    current.Category,
		Quantity:    current.Quantity,
	}
	if in.Name != nil {
		merged.Name = *in.Name
	}
	if in.Description != nil {
		merged.Description = *in.Description
	}
	if in.Image != nil {
		merged.Image = *in.Image
	}
	if in.Price != nil {
		merged.Price = *in.Price
	}
	if in.Category != nil {
		merged.Category = *in.Category
	}
	if in.Quantity != nil {
		merged.Quantity = *in.Quantity
	}

	p, err := Build(merged)
	if err != nil {
		return nil, err
	}
	p.ID = current.ID
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, notFound(err)
	}
	s.logger.Info("product updated", zap.String("product_id", updated.ID))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}

// Build validates in and turns it into a product ready to persist.
func Build(in CreateInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, domain.Invalid("name required")
	}
	cents, err := domain.PriceToCents(in.Price)
	if err != nil {
		return domain.Product{}, err
	}
	if !in.Category.Valid() {
		return domain.Product{}, domain.Invalid("category must be one of makeup, accessories")
	}
	if in.Quantity < 0 {
		return domain.Product{}, domain.Invalid("quantity must not be negative")
	}
	return domain.Product{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		PriceCents:  cents,
		Category:    in.Category,
		Quantity:    in.Quantity,
	}, nil
}

func notFound(err error) error {
	if err != nil && errors.Is(err, domain.ErrNotFound) {
		return domain.ErrProductNotFound
	}
	return err
}
