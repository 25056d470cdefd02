package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"storefront/internal/cache"
	"storefront/internal/domain"
	"storefront/internal/logging"
	cartrepo "storefront/internal/repository/cart"
)

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// Service owns the per-user cart aggregate.
type Service struct {
	repo        cartrepo.Repository
	productRepo productRepo
	cache       cache.CartCache
	reads       singleflight.Group
	logger      *zap.Logger
}

// New wires a Service. A nil cache disables caching.
func New(repo cartrepo.Repository, productRepo productRepo, c cache.CartCache, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	return &Service{
		repo:        repo,
		productRepo: productRepo,
		cache:       c,
		logger:      logging.OrNop(logger).Named("cart"),
	}
}

// AddItem adds quantity units of productID, merging with an existing line. The unit
// price is captured the first time a product enters the cart. Stock is not checked.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	err = s.repo.AddItem(ctx, userID, domain.CartItem{
		ProductID:  product.ID,
		Quantity:   quantity,
		PriceCents: product.PriceCents,
	})
	if err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, userID)
}

// UpdateQuantity sets the quantity of an existing line. The price snapshot is kept.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartView, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}
	if err := s.repo.SetQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, userID)
}

// RemoveItem drops the line for productID. Missing carts and lines are not errors.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.CartView, error) {
	if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) (*domain.CartView, error) {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return nil, err
	}
	return s.afterWrite(ctx, userID)
}

// Get returns the user's cart joined with current product details. A user without a
// cart gets an empty view.
func (s *Service) Get(ctx context.Context, userID string) (*domain.CartView, error) {
	// The shared load must outlive any single caller that gives up on it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.reads.Do(userID, func() (interface{}, error) {
		return s.load(shared, userID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, userID, v.(*domain.Cart))
}

// load reads through the cache. A nil cart means the user has none.
func (s *Service) load(ctx context.Context, userID string) (*domain.Cart, error) {
	cached, err := s.cache.Get(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("cart cache read failed", zap.String("user_id", userID), zap.Error(err))
	}

	cart, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, userID, cart); err != nil {
		s.logger.Warn("cart cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
	return cart, nil
}

// afterWrite re-reads the cart from the store and writes it through to the cache. The
// cache keeps whichever copy has the higher version, so a read that loaded an older
// snapshot before this write cannot replace it.
func (s *Service) afterWrite(ctx context.Context, userID string) (*domain.CartView, error) {
	cart, err := s.repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		s.invalidate(ctx, userID)
		return nil, err
	}
	if cart == nil {
		s.invalidate(ctx, userID)
	} else if err := s.cache.Set(ctx, userID, cart); err != nil {
		s.logger.Warn("cart cache write failed", zap.String("user_id", userID), zap.Error(err))
		s.invalidate(ctx, userID)
	}
	return s.view(ctx, userID, cart)
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("cart cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *Service) view(ctx context.Context, userID string, cart *domain.Cart) (*domain.CartView, error) {
	v := &domain.CartView{UserID: userID, Lines: []domain.CartLine{}}
	if cart == nil {
		return v, nil
	}
	v.ID = cart.ID
	v.CreatedAt = cart.CreatedAt
	v.UpdatedAt = cart.UpdatedAt
	if len(cart.Items) == 0 {
		return v, nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, it := range cart.Items {
		line := domain.CartLine{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
			AddedAt:    it.AddedAt,
		}
		if p, ok := products[it.ProductID]; ok {
			p := p
			line.Product = &p
		}
		v.Lines = append(v.Lines, line)
	}
	return v, nil
}
