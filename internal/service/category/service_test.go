package category

import (
	"context"
	"testing"

	"storefront/internal/domain"
)

type stubRepo struct {
	list []domain.CategoryInfo
}

func (s stubRepo) List(context.Context) ([]domain.CategoryInfo, error) {
	return s.list, nil
}

func TestServiceList(t *testing.T) {
	svc := New(stubRepo{list: []domain.CategoryInfo{
		{Key: domain.CategoryMakeup, Name: "Makeup", ProductCount: 5},
		{Key: domain.CategoryAccessories, Name: "Accessories", ProductCount: 5},
	}})

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != domain.CategoryMakeup {
		t.Fatalf("unexpected list %+v", list)
	}
}
