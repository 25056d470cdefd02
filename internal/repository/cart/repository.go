package cart

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ErrConflict is returned when an add could not be applied after repeated races with
// concurrent writers on the same cart.
var ErrConflict = errors.New("cart update conflict")

// Repository persists cart documents. Every mutation is a single atomic update of
// the user's cart document.
type Repository interface {
	// Get returns domain.ErrCartNotFound when the user has no cart.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem increments the quantity of an existing line, or appends item as a new
	// line (creating the cart if needed). An existing line keeps its price.
	AddItem(ctx context.Context, userID string, item domain.CartItem) error
	// SetQuantity returns domain.ErrCartNotFound or domain.ErrItemNotFound.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	// RemoveItem is a no-op when the cart or the line does not exist.
	RemoveItem(ctx context.Context, userID, productID string) error
	// Clear empties the cart. It is a no-op when the cart does not exist.
	Clear(ctx context.Context, userID string) error
}
