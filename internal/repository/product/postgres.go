package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

const productColumns = `id::text, name, COALESCE(description, ''), COALESCE(image, ''), price_cents, category, quantity, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger).Named("product_repo")}
}

func (r *postgresRepo) List(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE ($1 = '' OR category = $1)
ORDER BY created_at ASC, name ASC
`
	rows, err := r.pool.Query(ctx, q, string(filter.Category))
	if err != nil {
		r.logger.Error("list", zap.String("category", string(filter.Category)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("list rows", zap.Error(err))
		return nil, err
	}
	r.logger.Debug("list", zap.String("category", string(filter.Category)), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("get", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}
	return p, nil
}

// GetByIDs returns the products that exist among ids, keyed by id. Missing ids are
// simply absent from the map.
func (r *postgresRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out := make(map[string]domain.Product, len(ids))
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return out, nil
	}
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
`
	rows, err := r.pool.Query(ctx, q, valid)
	if err != nil {
		r.logger.Error("get by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = *p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, image, price_cents, category, quantity)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
RETURNING ` + productColumns
	created, err := scanProduct(r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Image, p.PriceCents, string(p.Category), p.Quantity))
	if err != nil {
		r.logger.Error("create", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	r.logger.Info("created product", zap.String("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = NULLIF($3, ''),
    image = NULLIF($4, ''),
    price_cents = $5,
    category = $6,
    quantity = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + productColumns
	updated, err := scanProduct(r.pool.QueryRow(ctx, q, p.ID, p.Name, p.Description, p.Image, p.PriceCents, string(p.Category), p.Quantity))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("update", zap.String("id", p.ID), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrNotFound
		}
		r.logger.Error("delete", zap.String("id", id), zap.Error(err))
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("deleted product", zap.String("id", id))
	return nil
}

// UpsertByName updates the product with the same name or inserts a new one.
func (r *postgresRepo) UpsertByName(ctx context.Context, p domain.Product) (*domain.Product, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Serialize upserts of the same name so two importers cannot both insert it.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, p.Name); err != nil {
		return nil, err
	}

	// Names are not unique; when duplicates exist only the oldest product is updated.
	const update = `
UPDATE products
SET description = NULLIF($2, ''),
    image = NULLIF($3, ''),
    price_cents = $4,
    category = $5,
    quantity = $6,
    updated_at = now()
WHERE id = (
    SELECT id FROM products
    WHERE name = $1
    ORDER BY created_at ASC, id ASC
    LIMIT 1
    FOR UPDATE
)
RETURNING ` + productColumns
	res, err := scanProduct(tx.QueryRow(ctx, update, p.Name, p.Description, p.Image, p.PriceCents, string(p.Category), p.Quantity))
	if errors.Is(err, domain.ErrNotFound) {
		const insert = `
INSERT INTO products (name, description, image, price_cents, category, quantity)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
RETURNING ` + productColumns
		res, err = scanProduct(tx.QueryRow(ctx, insert, p.Name, p.Description, p.Image, p.PriceCents, string(p.Category), p.Quantity))
	}
	if err != nil {
		r.logger.Error("upsert", zap.String("name", p.Name), zap.Error(err))
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("upserted product", zap.String("id", res.ID), zap.String("name", res.Name))
	return res, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	var category string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.PriceCents, &category, &p.Quantity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Category = domain.Category(category)
	return &p, nil
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
