package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawket-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Checkout(ctx context.Context, params order.CheckoutParams) (*order.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, customerID, orderID string) (*order.Order, error) {
	args := m.Called(ctx, customerID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) MyOrders(ctx context.Context, customerID string, limit, page int) ([]*order.Order, error) {
	args := m.Called(ctx, customerID, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) TrackByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) MarkPaid(ctx context.Context, orderNumber, paymentID string) error {
	return m.Called(ctx, orderNumber, paymentID).Error(0)
}

func (m *MockOrderService) MarkPaymentFailed(ctx context.Context, orderNumber string) error {
	return m.Called(ctx, orderNumber).Error(0)
}

func (m *MockOrderService) AdminList(ctx context.Context, status *order.Status, limit, page int) ([]*order.Order, int64, error) {
	args := m.Called(ctx, status, limit, page)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func TestCheckout(t *testing.T) {
	t.Run("AnonymousCheckout", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.MatchedBy(func(p order.CheckoutParams) bool {
			return p.CustomerID == nil && p.PaymentMethod == order.MethodCOD && len(p.Items) == 1
		})).Return(&order.Order{OrderNumber: "ORD-20250901-120000-0042"}, nil)

		body := `{"paymentMethod":"cod","items":[{"variantId":"var-1","quantity":2,"unitPrice":99}]}`
		rec := postJSON(t, Checkout(svc), body)

		assert.Equal(t, http.StatusCreated, rec.Code)
		o := decodeBody(t, rec)["order"].(map[string]any)
		assert.Equal(t, "ORD-20250901-120000-0042", o["OrderNumber"])
	})

	t.Run("EmptyOrder", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("Checkout", mock.Anything, mock.Anything).Return(nil, order.ErrEmptyOrder)

		rec := postJSON(t, Checkout(svc), `{"paymentMethod":"cod","items":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BadBody", func(t *testing.T) {
		svc := new(MockOrderService)
		rec := postJSON(t, Checkout(svc), `not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Checkout")
	})
}

func TestTrackOrder(t *testing.T) {
	newRequest := func(orderNumber string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/orders/track/"+orderNumber, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("orderNumber", orderNumber)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("Found", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("TrackByNumber", mock.Anything, "ORD-1").
			Return(&order.Order{OrderNumber: "ORD-1", Status: order.StatusConfirmed}, nil)

		rec := httptest.NewRecorder()
		TrackOrder(svc).ServeHTTP(rec, newRequest("ORD-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		o := decodeBody(t, rec)["order"].(map[string]any)
		assert.Equal(t, "confirmed", o["Status"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("TrackByNumber", mock.Anything, "ORD-404").
			Return(nil, order.ErrOrderNotFound)

		rec := httptest.NewRecorder()
		TrackOrder(svc).ServeHTTP(rec, newRequest("ORD-404"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	newRequest := func(id, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/admin/orders/"+id+"/status", bytes.NewBufferString(body))
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("InvalidTransition", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, "ord-1", order.StatusPending).
			Return(order.ErrInvalidTransition)

		rec := httptest.NewRecorder()
		AdminUpdateOrderStatus(svc).ServeHTTP(rec, newRequest("ord-1", `{"status":"pending"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(MockOrderService)
		svc.On("UpdateStatus", mock.Anything, "ord-1", order.StatusShipped).Return(nil)

		rec := httptest.NewRecorder()
		AdminUpdateOrderStatus(svc).ServeHTTP(rec, newRequest("ord-1", `{"status":"shipped"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
