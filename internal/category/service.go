package category

import (
	"context"
	"errors"

	"pawket-be/internal/cache"
	"pawket-be/internal/logger"
	"pawket-be/internal/utils"

	"go.uber.org/zap"
)

var ErrNameRequired = errors.New("category name is required")

type Service interface {
	List(ctx context.Context) ([]*Category, error)
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	Create(ctx context.Context, input NewCategoryInput) (*Category, error)
	Update(ctx context.Context, input UpdateCategoryInput) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	cache *cache.Store
}

func NewService(repo Repository, store *cache.Store) Service {
	return &service{repo: repo, cache: store}
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	key := cache.KeyCategories()

	var cached []*Category
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list categories",
			zap.String("layer", "service"),
			zap.Error(err),
		)
		return nil, err
	}

	s.cache.Set(ctx, key, categories, cache.TTLCategories)
	return categories, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Category, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Create(ctx context.Context, input NewCategoryInput) (*Category, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	c, err := s.repo.Create(ctx, input, utils.Slugify(input.Name))
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateCategories(ctx)
	logger.FromCtx(ctx).Info("category created",
		zap.String("layer", "service"),
		zap.String("category_id", c.ID),
	)
	return c, nil
}

func (s *service) Update(ctx context.Context, input UpdateCategoryInput) error {
	if err := s.repo.Update(ctx, input); err != nil {
		return err
	}
	s.cache.InvalidateCategories(ctx)
	// Product listings embed the category name, drop them too.
	s.cache.InvalidateProducts(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateCategories(ctx)
	s.cache.InvalidateProducts(ctx)
	return nil
}
