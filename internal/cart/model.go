package cart

import "time"

type Item struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VariantID string    `json:"variantId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Row is a cart item joined with its product and variant for display.
type Row struct {
	ItemID      string    `json:"id"`
	Quantity    int       `json:"quantity"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	ProductSlug string    `json:"productSlug"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	VariantID   string    `json:"variantId"`
	Weight      string    `json:"weight"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddParams struct {
	UserID    string
	VariantID string
	Quantity  int
}

type UpdateParams struct {
	UserID    string
	VariantID string
	Quantity  int
}

type RemoveParams struct {
	UserID    string
	VariantID string
}
