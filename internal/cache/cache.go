package cache

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// CartCache is a read-through cache of cart documents keyed by user id.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Set stores cart unless the cached entry already has the same or a higher Version.
	Set(ctx context.Context, userID string, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no cache backend is configured. Every Get misses.
type Nop struct{}

func (Nop) Get(context.Context, string) (*domain.Cart, error) {
	return nil, ErrCacheMiss
}

func (Nop) Set(context.Context, string, *domain.Cart) error {
	return nil
}

func (Nop) Delete(context.Context, string) error {
	return nil
}
