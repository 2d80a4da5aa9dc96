package address

import (
	"context"
	"errors"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrForbidden = errors.New("address does not belong to user")

// Service defines the business logic for delivery addresses.
type Service interface {
	List(ctx context.Context, userID string) ([]*Address, error)
	Get(ctx context.Context, userID, addressID string) (*Address, error)
	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Delete(ctx context.Context, userID, addressID string) error
	SetDefault(ctx context.Context, userID, addressID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID string) ([]*Address, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, addressID string) (*Address, error) {
	a, err := s.repo.GetByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *service) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
		zap.String("user_id", input.UserID),
	)

	if input.Name == "" || input.AddressLine1 == "" || input.City == "" || input.PostalCode == "" {
		return nil, errors.New("name, address line, city and postal code are required")
	}

	existing, err := s.repo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	// First address always becomes the default.
	if len(existing) == 0 {
		input.SetAsDefault = true
	}

	a, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", a.ID))
	return a, nil
}

func (s *service) Delete(ctx context.Context, userID, addressID string) error {
	return s.repo.Deactivate(ctx, userID, addressID)
}

func (s *service) SetDefault(ctx context.Context, userID, addressID string) error {
	return s.repo.SetDefault(ctx, userID, addressID)
}
