package inventory

import "time"

// Ingredient is a raw material tracked by the operations back office. Stock
// and cost are in the ingredient's own unit (grams, pieces, ...).
type Ingredient struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	CurrentStock float64   `json:"currentStock"`
	ReorderLevel float64   `json:"reorderLevel"`
	UnitCost     float64   `json:"unitCost"`
	Supplier     *string   `json:"supplier,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LowStock reports whether the ingredient has fallen to its reorder level.
func (i *Ingredient) LowStock() bool {
	return i.CurrentStock <= i.ReorderLevel
}

type Vendor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson *string   `json:"contactPerson,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Address       *string   `json:"address,omitempty"`
	IsActive      bool      `json:"isActive"`
	PaymentTerms  *string   `json:"paymentTerms,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RecipeItem is one ingredient's share of a product's recipe, as a
// percentage of the finished weight.
type RecipeItem struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	IngredientID string  `json:"ingredientId"`
	Percentage   float64 `json:"percentage"`
}

type IngredientInput struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"currentStock"`
	ReorderLevel float64 `json:"reorderLevel"`
	UnitCost     float64 `json:"unitCost"`
	Supplier     *string `json:"supplier"`
}

type NewVendorInput struct {
	Name          string  `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	PaymentTerms  *string `json:"paymentTerms"`
}

type RecipeItemInput struct {
	ProductID    string  `json:"productId"`
	IngredientID string  `json:"ingredientId"`
	Percentage   float64 `json:"percentage"`
}
