package inventory

import (
	"context"
	"errors"
	"strings"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrUnitRequired      = errors.New("unit is required")
	ErrNegativeValue     = errors.New("stock, reorder level and cost must be non-negative")
	ErrRecipeRefRequired = errors.New("product and ingredient are required")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
)

// Service owns the operations back office: raw-ingredient inventory,
// supplier records and per-product recipes.
type Service interface {
	ListIngredients(ctx context.Context) ([]*Ingredient, error)
	ListLowStockIngredients(ctx context.Context) ([]*Ingredient, error)
	CreateIngredient(ctx context.Context, input IngredientInput) (*Ingredient, error)
	UpdateIngredient(ctx context.Context, id string, input IngredientInput) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error

	ListVendors(ctx context.Context) ([]*Vendor, error)
	CreateVendor(ctx context.Context, input NewVendorInput) (*Vendor, error)

	ListRecipeItems(ctx context.Context, productID *string) ([]*RecipeItem, error)
	AddRecipeItem(ctx context.Context, input RecipeItemInput) (*RecipeItem, error)
	UpdateRecipePercentage(ctx context.Context, id string, percentage float64) error
	RemoveRecipeItem(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateIngredient(input IngredientInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(input.Unit) == "" {
		return ErrUnitRequired
	}
	if input.CurrentStock < 0 || input.ReorderLevel < 0 || input.UnitCost < 0 {
		return ErrNegativeValue
	}
	return nil
}

func (s *service) ListIngredients(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.ListIngredients(ctx)
}

func (s *service) ListLowStockIngredients(ctx context.Context) ([]*Ingredient, error) {
	return s.repo.ListLowStockIngredients(ctx)
}

func (s *service) CreateIngredient(ctx context.Context, input IngredientInput) (*Ingredient, error) {
	if err := validateIngredient(input); err != nil {
		return nil, err
	}

	i, err := s.repo.CreateIngredient(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create ingredient",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, err
	}
	return i, nil
}

func (s *service) UpdateIngredient(ctx context.Context, id string, input IngredientInput) (*Ingredient, error) {
	if err := validateIngredient(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateIngredient(ctx, id, input)
}

func (s *service) DeleteIngredient(ctx context.Context, id string) error {
	return s.repo.DeleteIngredient(ctx, id)
}

func (s *service) ListVendors(ctx context.Context) ([]*Vendor, error) {
	return s.repo.ListVendors(ctx)
}

func (s *service) CreateVendor(ctx context.Context, input NewVendorInput) (*Vendor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrNameRequired
	}

	v, err := s.repo.CreateVendor(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to create vendor",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}

func (s *service) ListRecipeItems(ctx context.Context, productID *string) ([]*RecipeItem, error) {
	return s.repo.ListRecipeItems(ctx, productID)
}

func (s *service) AddRecipeItem(ctx context.Context, input RecipeItemInput) (*RecipeItem, error) {
	if input.ProductID == "" || input.IngredientID == "" {
		return nil, ErrRecipeRefRequired
	}
	if input.Percentage < 0 || input.Percentage > 100 {
		return nil, ErrInvalidPercentage
	}
	return s.repo.CreateRecipeItem(ctx, input)
}

func (s *service) UpdateRecipePercentage(ctx context.Context, id string, percentage float64) error {
	if percentage < 0 || percentage > 100 {
		return ErrInvalidPercentage
	}
	return s.repo.UpdateRecipePercentage(ctx, id, percentage)
}

func (s *service) RemoveRecipeItem(ctx context.Context, id string) error {
	return s.repo.DeleteRecipeItem(ctx, id)
}
