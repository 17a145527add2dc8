package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Weight      float64   `json:"weight"` // kg; 0 means unknown, shipping uses a default
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

// --- Cart Entities ---

// CartLineItem is one product row in the shopping session. Transient: it only
// exists inside a session, never in durable storage.
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type Cart struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
}

// Copy returns a cart with its own items slice.
func (c Cart) Copy() Cart {
	items := make([]CartLineItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items, Total: c.Total}
}

// --- Interfaces ---

// StorefrontAPI is the internal auth/products backend this service fronts.
type StorefrontAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
}
