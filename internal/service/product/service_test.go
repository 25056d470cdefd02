package product

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

type stubRepo struct {
	products     map[string]domain.Product
	lastFilter   productrepo.ListFilter
	lastCreate   *domain.Product
	lastUpdate   *domain.Product
	lastDeleteID string
	createCalls  int
}

func newStubRepo(products ...domain.Product) *stubRepo {
	r := &stubRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (s *stubRepo) List(_ context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	s.lastFilter = filter
	var out []domain.Product
	for _, p := range s.products {
		if filter.Category == "" || p.Category == filter.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.createCalls++
	p.ID = "new-id"
	s.lastCreate = &p
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.lastUpdate = &p
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubRepo) Delete(_ context.Context, id string) error {
	s.lastDeleteID = id
	if _, ok := s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *stubRepo) UpsertByName(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func lipstick() domain.Product {
	return domain.Product{ID: "p1", Name: "Matte Lipstick Set", PriceCents: 3250, Category: domain.CategoryMakeup, Quantity: 15}
}

func TestServiceListFiltersByCategory(t *testing.T) {
	repo := newStubRepo(lipstick(), domain.Product{ID: "p2", Name: "Mirror", PriceCents: 8999, Category: domain.CategoryAccessories})
	svc := New(repo, nil)

	list, err := svc.List(context.Background(), domain.CategoryMakeup)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "p1" {
		t.Fatalf("unexpected list %+v", list)
	}
	if repo.lastFilter.Category != domain.CategoryMakeup {
		t.Fatalf("filter not passed through: %+v", repo.lastFilter)
	}

	if _, err := svc.List(context.Background(), domain.Category("shoes")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := New(newStubRepo(), nil)
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) || !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestServiceCreateValidation(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo, nil)
	valid := CreateInput{Name: "Kit", Price: decimal.RequireFromString("39.99"), Category: domain.CategoryMakeup, Quantity: 1}

	cases := map[string]func(in *CreateInput){
		"empty name":     func(in *CreateInput) { in.Name = "  " },
		"zero price":     func(in *CreateInput) { in.Price = decimal.Zero },
		"fractional":     func(in *CreateInput) { in.Price = decimal.RequireFromString("1.999") },
		"bad category":   func(in *CreateInput) { in.Category = "shoes" },
		"negative stock": func(in *CreateInput) { in.Quantity = -1 },
	}
	for name, mutate := range cases {
		in := valid
		mutate(&in)
		if _, err := svc.Create(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if repo.createCalls != 0 {
		t.Fatalf("invalid input must not reach the repository")
	}
}

func TestServiceCreateHappyPath(t *testing.T) {
	repo := newStubRepo()
	svc := New(repo, nil)

	p, err := svc.Create(context.Background(), CreateInput{
		Name:     " Contour Kit ",
		Price:    decimal.RequireFromString("39.99"),
		Category: domain.CategoryMakeup,
		Quantity: 12,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != "new-id" || repo.lastCreate.Name != "Contour Kit" || repo.lastCreate.PriceCents != 3999 {
		t.Fatalf("unexpected create %+v", repo.lastCreate)
	}
}

func TestServiceUpdatePartial(t *testing.T) {
	repo := newStubRepo(lipstick())
	svc := New(repo, nil)

	price := decimal.RequireFromString("29.50")
	updated, err := svc.Update(context.Background(), "p1", UpdateInput{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PriceCents != 2950 || updated.Name != "Matte Lipstick Set" || updated.Quantity != 15 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	bad := domain.Category("shoes")
	if _, err := svc.Update(context.Background(), "p1", UpdateInput{Category: &bad}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", UpdateInput{Price: &price}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	repo := newStubRepo(lipstick())
	svc := New(repo, nil)

	if err := svc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.lastDeleteID != "p1" {
		t.Fatalf("unexpected delete id %q", repo.lastDeleteID)
	}
	if err := svc.Delete(context.Background(), "p1"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
