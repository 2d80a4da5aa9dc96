package cart

import (
	"context"
	"errors"

	"pawket-be/internal/logger"
	"pawket-be/internal/product"

	"go.uber.org/zap"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUserRequired      = errors.New("user ID is required")
	ErrVariantRequired   = errors.New("variant ID is required")
)

// Service defines the business logic for carts.
type Service interface {
	Add(ctx context.Context, params AddParams) (*Item, error)
	List(ctx context.Context, userID string) ([]*Row, error)
	UpdateQuantity(ctx context.Context, params UpdateParams) error
	Remove(ctx context.Context, params RemoveParams) error
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Add puts a variant into the user's cart, merging with any existing line.
func (s *service) Add(ctx context.Context, params AddParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Add"),
		zap.String("variant_id", params.VariantID),
	)

	if params.UserID == "" {
		return nil, ErrUserRequired
	}
	if params.VariantID == "" {
		return nil, ErrVariantRequired
	}
	if params.Quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}

	variant, err := s.productRepo.GetVariantByID(ctx, product.GetVariantOptions{
		VariantID:  params.VariantID,
		OnlyActive: true,
	})
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.repo.GetByUserAndVariant(ctx, params.UserID, params.VariantID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}
	if variant.Stock < finalQty {
		log.Warn("rejected cart add, not enough stock",
			zap.Int("requested", finalQty),
			zap.Int("stock", variant.Stock),
		)
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.Create(ctx, params)
	}
	return s.repo.UpdateQuantity(ctx, existing.ID, finalQty)
}

func (s *service) List(ctx context.Context, userID string) ([]*Row, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	return s.repo.ListRows(ctx, userID)
}

// UpdateQuantity sets an absolute quantity. Zero or negative removes the line.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateParams) error {
	if params.UserID == "" {
		return ErrUserRequired
	}
	if params.VariantID == "" {
		return ErrVariantRequired
	}

	if params.Quantity <= 0 {
		return s.repo.Remove(ctx, RemoveParams{
			UserID:    params.UserID,
			VariantID: params.VariantID,
		})
	}

	variant, err := s.productRepo.GetVariantByID(ctx, product.GetVariantOptions{
		VariantID:  params.VariantID,
		OnlyActive: true,
	})
	if err != nil {
		return err
	}
	if variant == nil {
		return ErrProductNotFound
	}
	if variant.Stock < params.Quantity {
		return ErrInsufficientStock
	}

	return s.repo.UpdateQuantityByVariant(ctx, params)
}

func (s *service) Remove(ctx context.Context, params RemoveParams) error {
	if params.UserID == "" {
		return ErrUserRequired
	}
	if params.VariantID == "" {
		return ErrVariantRequired
	}
	return s.repo.Remove(ctx, params)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUserRequired
	}
	return s.repo.Clear(ctx, userID)
}
