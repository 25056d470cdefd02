package domain

import "time"

// Category is the closed set of catalog categories.
type Category string

const (
	CategoryMakeup      Category = "makeup"
	CategoryAccessories Category = "accessories"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryMakeup, CategoryAccessories}
}

func (c Category) Valid() bool {
	return c == CategoryMakeup || c == CategoryAccessories
}

// Product is a catalog entry. Quantity is stock on hand and is display-only: nothing
// in the cart flow reserves or decrements it.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Category    Category  `json:"category"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
