package admin

import (
	"context"

	"pawket-be/internal/cache"
	"pawket-be/internal/logger"
	"pawket-be/internal/order"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// lowStockThreshold marks a variant as running out on the dashboard.
const lowStockThreshold = 5

type Dashboard struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalOrders      int64   `json:"totalOrders"`
	PendingOrders    int64   `json:"pendingOrders"`
	TotalCustomers   int64   `json:"totalCustomers"`
	LowStockVariants int64   `json:"lowStockVariants"`
}

// OrderStats, ProductStats and CustomerStats are the slices of the domain
// repositories the dashboard needs.
type OrderStats interface {
	Stats(ctx context.Context) (*order.SalesStats, error)
}

type ProductStats interface {
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}

type CustomerStats interface {
	CountCustomers(ctx context.Context) (int64, error)
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	orders    OrderStats
	products  ProductStats
	customers CustomerStats
	cache     *cache.Store
}

func NewService(orders OrderStats, products ProductStats, customers CustomerStats, store *cache.Store) Service {
	return &service{orders: orders, products: products, customers: customers, cache: store}
}

// Dashboard gathers the stat blocks concurrently. Any failing query fails
// the whole request.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Dashboard"),
	)

	key := cache.KeyOrderStats()
	var cached Dashboard
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.orders.Stats(gctx)
		if err != nil {
			return err
		}
		d.TotalRevenue = stats.TotalRevenue
		d.TotalOrders = stats.TotalOrders
		d.PendingOrders = stats.PendingOrders
		return nil
	})

	g.Go(func() error {
		count, err := s.products.CountLowStock(gctx, lowStockThreshold)
		if err != nil {
			return err
		}
		d.LowStockVariants = count
		return nil
	})

	g.Go(func() error {
		count, err := s.customers.CountCustomers(gctx)
		if err != nil {
			return err
		}
		d.TotalCustomers = count
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("dashboard aggregation failed", zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, key, d, cache.TTLOrderStats)
	return &d, nil
}
