package httpserver

import (
	"time"

	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

type authResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    domain.Identity `json:"user"`
}

type userResponse struct {
	Success bool            `json:"success"`
	User    domain.Identity `json:"user"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty"`
	Price       amount          `json:"price"`
	Category    domain.Category `json:"category"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type categoryResponse struct {
	Key          domain.Category `json:"key"`
	Name         string          `json:"name"`
	ProductCount int             `json:"productCount"`
}

type cartResponse struct {
	ID            string             `json:"id,omitempty"`
	UserID        string             `json:"userId"`
	Items         []cartItemResponse `json:"items"`
	TotalQuantity int                `json:"totalQuantity"`
	Total         amount             `json:"total"`
}

// cartItemResponse.Price is the unit price captured when the item was first added.
type cartItemResponse struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     amount           `json:"price"`
	LineTotal amount           `json:"lineTotal"`
	Product   *productResponse `json:"product,omitempty"`
	AddedAt   time.Time        `json:"addedAt"`
}

type clearCartResponse struct {
	Success bool               `json:"success"`
	Items   []cartItemResponse `json:"items"`
}

// amount renders as a JSON number with exactly two fraction digits.
type amount struct {
	decimal.Decimal
}

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       p.Image,
		Price:       money(p.PriceCents),
		Category:    p.Category,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductList(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toCategoryList(list []domain.CategoryInfo) []categoryResponse {
	out := make([]categoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, categoryResponse{Key: c.Key, Name: c.Name, ProductCount: c.ProductCount})
	}
	return out
}

func toCartResponse(v *domain.CartView) cartResponse {
	items := make([]cartItemResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		item := cartItemResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     money(l.PriceCents),
			LineTotal: money(l.TotalCents()),
			AddedAt:   l.AddedAt,
		}
		if l.Product != nil {
			p := toProductResponse(*l.Product)
			item.Product = &p
		}
		items = append(items, item)
	}
	return cartResponse{
		ID:            v.ID,
		UserID:        v.UserID,
		Items:         items,
		TotalQuantity: v.TotalQuantity(),
		Total:         money(v.TotalCents()),
	}
}

func money(cents int64) amount {
	return amount{domain.CentsToPrice(cents)}
}
