package category

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	"storefront/internal/migrate"
)

func TestPostgres_ListCountsProducts(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if _, err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	if _, err := pool.Exec(ctx, `
		INSERT INTO products (name, price_cents, category, quantity)
		VALUES ('Mascara', 1875, 'makeup', 30), ('Foundation', 4599, 'makeup', 25)
	`); err != nil {
		t.Fatalf("insert products: %v", err)
	}

	repo := NewPostgres(pool)
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 categories, got %+v", list)
	}
	if list[0].Key != domain.CategoryMakeup || list[0].ProductCount != 2 {
		t.Fatalf("unexpected makeup entry %+v", list[0])
	}
	if list[1].Key != domain.CategoryAccessories || list[1].ProductCount != 0 {
		t.Fatalf("unexpected accessories entry %+v", list[1])
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
