package product

import (
	"context"
	"errors"

	"pawket-be/internal/cache"
	"pawket-be/internal/logger"
	"pawket-be/internal/utils"

	"go.uber.org/zap"
)

var ErrNameRequired = errors.New("product name is required")

// Service defines the business logic for the catalog.
type Service interface {
	List(ctx context.Context, opts ListOptions) ([]*Product, int64, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, input UpdateProductInput) error
	UpdateVariantStock(ctx context.Context, variantID string, stock int) error
}

type service struct {
	repo  Repository
	cache *cache.Store
}

func NewService(repo Repository, store *cache.Store) Service {
	return &service{repo: repo, cache: store}
}

// listCacheKey returns a cache key for the plain storefront listings, or ""
// for filtered queries which always hit the database.
func listCacheKey(opts ListOptions) string {
	filtered := opts.Search != nil || opts.MinPrice != nil || opts.MaxPrice != nil ||
		opts.SortBy != "" || opts.Page > 1 || !opts.OnlyActive
	if filtered {
		return ""
	}
	if opts.CategorySlug != nil && *opts.CategorySlug != "" {
		return cache.KeyProductsByCategory(*opts.CategorySlug)
	}
	return cache.KeyProducts()
}

type cachedList struct {
	Products []*Product `json:"products"`
	Total    int64      `json:"total"`
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	key := listCacheKey(opts)
	if key != "" {
		var cached cachedList
		if s.cache.Get(ctx, key, &cached) {
			log.Debug("catalog served from cache", zap.String("key", key))
			return cached.Products, cached.Total, nil
		}
	}

	products, total, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to list products", zap.Error(err))
		return nil, 0, err
	}

	if key != "" {
		s.cache.Set(ctx, key, cachedList{Products: products, Total: total}, cache.TTLProducts)
	}
	return products, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	key := cache.KeyProduct(id)

	var cached Product
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, p, cache.TTLProductDetail)
	return p, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("name", input.Name),
	)

	if input.Name == "" {
		return nil, ErrNameRequired
	}

	p, err := s.repo.Create(ctx, input, utils.Slugify(input.Name))
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	s.cache.InvalidateProducts(ctx)
	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) error {
	if err := s.repo.Update(ctx, input); err != nil {
		return err
	}
	s.cache.InvalidateProducts(ctx)
	return nil
}

func (s *service) UpdateVariantStock(ctx context.Context, variantID string, stock int) error {
	if err := s.repo.UpdateVariantStock(ctx, variantID, stock); err != nil {
		return err
	}
	s.cache.InvalidateProducts(ctx)
	return nil
}
