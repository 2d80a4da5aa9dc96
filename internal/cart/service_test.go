package cart

import (
	"context"
	"testing"

	"pawket-be/internal/logger"
	"pawket-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init("test")
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByUserAndVariant(ctx context.Context, userID, variantID string) (*Item, error) {
	args := m.Called(ctx, userID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, params AddParams) (*Item, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*Item, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdateQuantityByVariant(ctx context.Context, params UpdateParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *MockRepository) Remove(ctx context.Context, params RemoveParams) error {
	return m.Called(ctx, params).Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRepository) ListRows(ctx context.Context, userID string) ([]*Row, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Row), args.Error(1)
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, int64, error) {
	args := m.Called(ctx, opts)
	return nil, 0, args.Error(2)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id string, onlyActive bool) (*product.Product, error) {
	args := m.Called(ctx, id, onlyActive)
	return nil, args.Error(1)
}

func (m *MockProductRepo) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	return nil, args.Error(1)
}

func (m *MockProductRepo) GetVariantByID(ctx context.Context, opts product.GetVariantOptions) (*product.Variant, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Variant), args.Error(1)
}

func (m *MockProductRepo) Create(ctx context.Context, input product.NewProductInput, slug string) (*product.Product, error) {
	args := m.Called(ctx, input, slug)
	return nil, args.Error(1)
}

func (m *MockProductRepo) Update(ctx context.Context, input product.UpdateProductInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockProductRepo) UpdateVariantStock(ctx context.Context, variantID string, stock int) error {
	return m.Called(ctx, variantID, stock).Error(0)
}

func (m *MockProductRepo) DecrementVariantStock(ctx context.Context, variantID string, quantity int) error {
	return m.Called(ctx, variantID, quantity).Error(0)
}

func (m *MockProductRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).(int64), args.Error(1)
}

func activeVariant(stock int) *product.Variant {
	return &product.Variant{ID: "var-1", ProductID: "prod-1", Weight: "85g", Price: 99, Stock: stock}
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("NewItem", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		params := AddParams{UserID: "user-1", VariantID: "var-1", Quantity: 2}
		products.On("GetVariantByID", ctx, product.GetVariantOptions{VariantID: "var-1", OnlyActive: true}).
			Return(activeVariant(10), nil)
		repo.On("GetByUserAndVariant", ctx, "user-1", "var-1").Return(nil, nil)
		repo.On("Create", ctx, params).Return(&Item{ID: "item-1", Quantity: 2}, nil)

		item, err := svc.Add(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("MergesWithExistingLine", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		products.On("GetVariantByID", ctx, mock.Anything).Return(activeVariant(10), nil)
		repo.On("GetByUserAndVariant", ctx, "user-1", "var-1").
			Return(&Item{ID: "item-1", Quantity: 3}, nil)
		repo.On("UpdateQuantity", ctx, "item-1", 5).
			Return(&Item{ID: "item-1", Quantity: 5}, nil)

		item, err := svc.Add(ctx, AddParams{UserID: "user-1", VariantID: "var-1", Quantity: 2})
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		repo.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		products.On("GetVariantByID", ctx, mock.Anything).Return(activeVariant(4), nil)
		repo.On("GetByUserAndVariant", ctx, "user-1", "var-1").
			Return(&Item{ID: "item-1", Quantity: 3}, nil)

		_, err := svc.Add(ctx, AddParams{UserID: "user-1", VariantID: "var-1", Quantity: 2})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateQuantity")
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("UnknownVariant", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		products.On("GetVariantByID", ctx, mock.Anything).Return(nil, nil)

		_, err := svc.Add(ctx, AddParams{UserID: "user-1", VariantID: "ghost", Quantity: 1})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("MissingUser", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepo))

		_, err := svc.Add(ctx, AddParams{VariantID: "var-1", Quantity: 1})
		assert.ErrorIs(t, err, ErrUserRequired)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("ZeroRemovesLine", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, new(MockProductRepo))

		repo.On("Remove", ctx, RemoveParams{UserID: "user-1", VariantID: "var-1"}).Return(nil)

		err := svc.UpdateQuantity(ctx, UpdateParams{UserID: "user-1", VariantID: "var-1", Quantity: 0})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("SetsAbsoluteQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		params := UpdateParams{UserID: "user-1", VariantID: "var-1", Quantity: 3}
		products.On("GetVariantByID", ctx, mock.Anything).Return(activeVariant(10), nil)
		repo.On("UpdateQuantityByVariant", ctx, params).Return(nil)

		require.NoError(t, svc.UpdateQuantity(ctx, params))
		repo.AssertExpectations(t)
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepo)
		svc := NewService(repo, products)

		products.On("GetVariantByID", ctx, mock.Anything).Return(activeVariant(2), nil)

		err := svc.UpdateQuantity(ctx, UpdateParams{UserID: "user-1", VariantID: "var-1", Quantity: 5})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		repo.AssertNotCalled(t, "UpdateQuantityByVariant")
	})
}

func TestService_Remove(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepo))
	ctx := context.Background()

	repo.On("Remove", ctx, RemoveParams{UserID: "user-1", VariantID: "var-1"}).Return(ErrItemNotFound)

	err := svc.Remove(ctx, RemoveParams{UserID: "user-1", VariantID: "var-1"})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestService_Clear(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, new(MockProductRepo))
	ctx := context.Background()

	repo.On("Clear", ctx, "user-1").Return(nil)

	require.NoError(t, svc.Clear(ctx, "user-1"))
	assert.ErrorIs(t, svc.Clear(ctx, ""), ErrUserRequired)
}
