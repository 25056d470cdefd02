package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductRepo struct {
	items []domain.Product
	err   error
}

func (s *stubProductRepo) UpsertByName(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	p.ID = "id-" + p.Name
	s.items = append(s.items, p)
	return &p, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,image,price,category,quantity
Luxury Foundation,Full coverage,https://example.com/f.jpg,45.99,makeup,25
Eyelash Curler,,https://example.com/c.jpg,12.99,Accessories,
`
	repo := &stubProductRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, nil)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 || len(repo.items) != 2 {
		t.Fatalf("expected 2 products imported, got %d (%d saved)", count, len(repo.items))
	}

	first := repo.items[0]
	if first.Name != "Luxury Foundation" || first.PriceCents != 4599 || first.Category != domain.CategoryMakeup || first.Quantity != 25 {
		t.Fatalf("unexpected product data: %+v", first)
	}
	second := repo.items[1]
	if second.Category != domain.CategoryAccessories || second.Quantity != 0 || second.Description != "" {
		t.Fatalf("unexpected product data: %+v", second)
	}
}

func TestCSVImporter_InvalidRowWritesNothing(t *testing.T) {
	cases := map[string]string{
		"bad price":    "Kit,,,abc,makeup,1",
		"zero price":   "Kit,,,0,makeup,1",
		"bad category": "Kit,,,10,shoes,1",
		"bad quantity": "Kit,,,10,makeup,many",
		"no name":      ",,,10,makeup,1",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			csvData := "name,description,image,price,category,quantity\nGood,,,1.00,makeup,1\n" + row + "\n"
			repo := &stubProductRepo{}
			_, err := NewCSVImporter(strings.NewReader(csvData), repo, nil).Run(context.Background())
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(err.Error(), "line 3") {
				t.Fatalf("expected line number in %q", err)
			}
			if len(repo.items) != 0 {
				t.Fatalf("nothing should be written when a row is invalid")
			}
		})
	}
}

func TestCSVImporter_RepoError(t *testing.T) {
	csvData := "name,description,image,price,category,quantity\nKit,,,10,makeup,1\n"
	repo := &stubProductRepo{err: errors.New("db down")}

	count, err := NewCSVImporter(strings.NewReader(csvData), repo, nil).Run(context.Background())
	if err == nil || count != 0 {
		t.Fatalf("expected error and zero count, got %d, %v", count, err)
	}
}
