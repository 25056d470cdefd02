package domain

import "time"

// Cart is the per-user aggregate. At most one exists per UserID. Version is bumped
// by every mutation.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    string     `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	Version   int64      `bson:"version" json:"version"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// CartItem is one product line. PriceCents is the unit price captured when the
// product was first added and is not refreshed afterwards.
type CartItem struct {
	ProductID  string    `bson:"product_id" json:"productId"`
	Quantity   int       `bson:"quantity" json:"quantity"`
	PriceCents int64     `bson:"price_cents" json:"priceCents"`
	AddedAt    time.Time `bson:"added_at" json:"addedAt"`
}

// Find returns the line for productID, if any.
func (c *Cart) Find(productID string) (CartItem, bool) {
	if c == nil {
		return CartItem{}, false
	}
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

// CartLine is a cart item joined with its catalog entry. Product is nil when the
// product has since been removed from the catalog.
type CartLine struct {
	ProductID  string
	Quantity   int
	PriceCents int64
	Product    *Product
	AddedAt    time.Time
}

func (l CartLine) TotalCents() int64 {
	return l.PriceCents * int64(l.Quantity)
}

// CartView is what cart operations return to callers.
type CartView struct {
	ID        string
	UserID    string
	Lines     []CartLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (v CartView) TotalCents() int64 {
	var total int64
	for _, l := range v.Lines {
		total += l.TotalCents()
	}
	return total
}

func (v CartView) TotalQuantity() int {
	total := 0
	for _, l := range v.Lines {
		total += l.Quantity
	}
	return total
}
