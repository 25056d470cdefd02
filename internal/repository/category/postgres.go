package category

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

// List returns every category with the number of products filed under it.
func (r *postgresRepo) List(ctx context.Context) ([]domain.CategoryInfo, error) {
	const q = `
SELECT c.key, c.name, COUNT(p.id)
FROM categories c
LEFT JOIN products p ON p.category = c.key
GROUP BY c.key, c.name, c.sort_order
ORDER BY c.sort_order ASC, c.key ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CategoryInfo
	for rows.Next() {
		var c domain.CategoryInfo
		var key string
		if err := rows.Scan(&key, &c.Name, &c.ProductCount); err != nil {
			return nil, err
		}
		c.Key = domain.Category(key)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
