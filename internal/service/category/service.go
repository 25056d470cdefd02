package category

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

// List returns every category with the number of products filed under it.
func (s *Service) List(ctx context.Context) ([]domain.CategoryInfo, error) {
	return s.repo.List(ctx)
}
