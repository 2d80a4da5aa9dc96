package product

type Variant struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Weight    string  `json:"weight"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	CategoryID   string     `json:"category_id"`
	CategoryName string     `json:"category_name"`
	Slug         string     `json:"slug"`
	Status       string     `json:"status"`
	ImageURL     *string    `json:"image_url,omitempty"`
	Variants     []*Variant `json:"variants"`
}

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type NewVariantInput struct {
	Weight string
	Price  float64
	Stock  int
}

type NewProductInput struct {
	Name        string
	Description string
	CategoryID  string
	ImageURL    *string
	Variants    []NewVariantInput
}

type UpdateProductInput struct {
	ProductID   string
	Name        *string
	Description *string
	CategoryID  *string
	ImageURL    *string
	Status      *string
}

type ListOptions struct {
	CategorySlug *string
	Search       *string
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       string // name | price_asc | price_desc | created_at
	OnlyActive   bool
	Limit        int
	Page         int
}

type GetVariantOptions struct {
	VariantID  string
	OnlyActive bool
}
