package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"storefront/internal/domain"
	"storefront/internal/logging"
	productrepo "storefront/internal/repository/product"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

type userSeed struct {
	Name  string
	Email string
	Role  domain.Role
}

var users = []userSeed{
	{Name: "Admin User", Email: "admin@example.com", Role: domain.RoleAdmin},
	{Name: "John Doe", Email: "user@example.com", Role: domain.RoleUser},
}

var products = []domain.Product{
	{
		Name:        "Luxury Foundation",
		Description: "Full coverage foundation with SPF 30 protection",
		Image:       unsplash("photo-1596462502278-27bfdc403348"),
		PriceCents:  4599,
		Category:    domain.CategoryMakeup,
		Quantity:    25,
	},
	{
		Name:        "Matte Lipstick Set",
		Description: "Collection of 6 long-lasting matte lipsticks",
		Image:       unsplash("photo-1586495777744-4413f21062fa"),
		PriceCents:  3250,
		Category:    domain.CategoryMakeup,
		Quantity:    15,
	},
	{
		Name:        "Eyeshadow Palette",
		Description: "12-color eyeshadow palette with blendable formula",
		Image:       unsplash("photo-1512496015851-a90fb38ba796"),
		PriceCents:  2899,
		Category:    domain.CategoryMakeup,
		Quantity:    20,
	},
	{
		Name:        "Waterproof Mascara",
		Description: "Long-lasting waterproof mascara for dramatic lashes",
		Image:       unsplash("photo-1631214540231-9511e748803b"),
		PriceCents:  1875,
		Category:    domain.CategoryMakeup,
		Quantity:    30,
	},
	{
		Name:        "Contour Kit",
		Description: "Professional contour and highlight kit",
		Image:       unsplash("photo-1522335789203-aabd1fc54bc9"),
		PriceCents:  3999,
		Category:    domain.CategoryMakeup,
		Quantity:    12,
	},
	{
		Name:        "Premium Makeup Brushes",
		Description: "Set of 12 professional makeup brushes",
		Image:       unsplash("photo-1515562141207-7a88fb7ce338"),
		PriceCents:  5500,
		Category:    domain.CategoryAccessories,
		Quantity:    18,
	},
	{
		Name:        "LED Vanity Mirror",
		Description: "Hollywood-style LED vanity mirror with dimmer",
		Image:       unsplash("photo-1595475207225-428b62bda831"),
		PriceCents:  8999,
		Category:    domain.CategoryAccessories,
		Quantity:    8,
	},
	{
		Name:        "Makeup Organizer",
		Description: "Clear acrylic makeup organizer with drawers",
		Image:       unsplash("photo-1584464491033-06628f3a6b7b"),
		PriceCents:  2499,
		Category:    domain.CategoryAccessories,
		Quantity:    22,
	},
	{
		Name:        "Beauty Blender Set",
		Description: "Set of 4 makeup sponges for flawless application",
		Image:       unsplash("photo-1549701328-eba253df4cd1"),
		PriceCents:  1650,
		Category:    domain.CategoryAccessories,
		Quantity:    35,
	},
	{
		Name:        "Eyelash Curler",
		Description: "Professional eyelash curler with refill pads",
		Image:       unsplash("photo-1560472354-b33ff0c44a43"),
		PriceCents:  1299,
		Category:    domain.CategoryAccessories,
		Quantity:    40,
	},
}

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=60"
}

// Apply inserts demo accounts and the starter catalog. It is idempotent: existing
// accounts are left alone and products are matched by name.
func Apply(ctx context.Context, pool *pgxpool.Pool, bcryptCost int, logger *zap.Logger) error {
	logger = logging.OrNop(logger)

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	for _, u := range users {
		created, err := ensureUser(ctx, pool, u, string(hash))
		if err != nil {
			return fmt.Errorf("ensure user %s: %w", u.Email, err)
		}
		logger.Info("seed user", zap.String("email", u.Email), zap.Bool("created", created))
	}

	repo := productrepo.NewPostgres(pool, logger)
	for _, p := range products {
		if _, err := repo.UpsertByName(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	logger.Info("seed products", zap.Int("count", len(products)))
	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, u userSeed, hash string) (bool, error) {
	const q = `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT ((lower(email))) DO NOTHING
`
	tag, err := pool.Exec(ctx, q, u.Name, u.Email, hash, string(u.Role))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
