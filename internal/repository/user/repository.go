package user

import (
	"context"

	"storefront/internal/domain"
)

// UpdateInput holds the fields a user may change. Nil fields are left untouched.
type UpdateInput struct {
	Name         *string
	PasswordHash *string
}

// Repository persists and fetches users.
type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.User, error)
}
