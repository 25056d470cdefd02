package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

const (
	collectionName = "carts"
	maxAddAttempts = 5
)

var _ Repository = (*MongoRepository)(nil)

type MongoRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
	now        func() time.Time
}

// NewMongo returns a Repository storing one document per user in the carts collection.
func NewMongo(db *mongo.Database, logger *zap.Logger) *MongoRepository {
	return &MongoRepository{
		collection: db.Collection(collectionName),
		logger:     logging.OrNop(logger).Named("cart_repo"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the unique user_id index that backs the one-cart-per-user rule.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_id_unique"),
	})
	if err != nil {
		return fmt.Errorf("create cart indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

func (r *MongoRepository) AddItem(ctx context.Context, userID string, item domain.CartItem) error {
	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		now := r.now()

		// Existing line: bump its quantity in place, price snapshot untouched.
		res, err := r.collection.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": item.ProductID},
			bson.M{
				"$inc": bson.M{"items.$.quantity": item.Quantity, "version": 1},
				"$set": bson.M{"updated_at": now},
			},
		)
		if err != nil {
			return fmt.Errorf("increment cart item: %w", err)
		}
		if res.MatchedCount > 0 {
			return nil
		}

		// New line, creating the cart document if it is absent. The $ne guard keeps a
		// concurrent writer that appended the same product from producing a duplicate;
		// in that case the upsert collides on user_id and we retry the increment.
		line := item
		line.AddedAt = now
		res, err = r.collection.UpdateOne(ctx,
			bson.M{"user_id": userID, "items.product_id": bson.M{"$ne": item.ProductID}},
			bson.M{
				"$push":        bson.M{"items": line},
				"$inc":         bson.M{"version": 1},
				"$set":         bson.M{"updated_at": now},
				"$setOnInsert": bson.M{"created_at": now},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				r.logger.Debug("add item raced, retrying", zap.String("user_id", userID), zap.Int("attempt", attempt))
				continue
			}
			return fmt.Errorf("append cart item: %w", err)
		}
		if res.MatchedCount > 0 || res.UpsertedCount > 0 {
			return nil
		}
	}
	r.logger.Warn("add item gave up after retries", zap.String("user_id", userID), zap.String("product_id", item.ProductID))
	return ErrConflict
}

func (r *MongoRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "items.product_id": productID},
		bson.M{
			"$set": bson.M{
				"items.$.quantity": quantity,
				"updated_at":       r.now(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("set cart item quantity: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("count carts: %w", err)
	}
	if n == 0 {
		return domain.ErrCartNotFound
	}
	return domain.ErrItemNotFound
}

func (r *MongoRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID}},
			"$inc":  bson.M{"version": 1},
			"$set":  bson.M{"updated_at": r.now()},
		},
	)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (r *MongoRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{
				"items":      []domain.CartItem{},
				"updated_at": r.now(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
