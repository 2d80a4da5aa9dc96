package payment

import (
	"context"
	"errors"
	"fmt"

	"pawket-be/internal/logger"
	"pawket-be/internal/razorpay"

	"go.uber.org/zap"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingDetails     = errors.New("missing required payment details")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrPaymentNotCaptured = errors.New("payment not successful")

	// ErrOrderUpdate is the worst case: the gateway confirmed the money but
	// the local order row could not be updated. Callers must surface this
	// distinctly so operators can reconcile.
	ErrOrderUpdate = errors.New("failed to update order status")
)

// Orders is the narrow persistence dependency of the verification flow.
type Orders interface {
	MarkPaid(ctx context.Context, orderNumber, paymentID string) error
}

type CreateOrderParams struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

// OrderSummary is the whitelisted slice of the gateway order echoed to the
// client. Provider-internal fields never leave this package.
type OrderSummary struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes"`
}

type VerifyParams struct {
	OrderID     string `json:"orderId"`
	PaymentID   string `json:"paymentId"`
	Signature   string `json:"signature"`
	OrderNumber string `json:"orderNumber"`
}

// VerifiedPayment is sourced from the fetched gateway payment, never from
// client-supplied data.
type VerifiedPayment struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Method string `json:"method"`
}

// Service owns the payment order creation and verification flows.
type Service interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderSummary, error)
	Verify(ctx context.Context, params VerifyParams) (*VerifiedPayment, error)
}

type service struct {
	gateway razorpay.Gateway
	orders  Orders
}

func NewService(gateway razorpay.Gateway, orders Orders) Service {
	return &service{gateway: gateway, orders: orders}
}

func (s *service) CreateOrder(ctx context.Context, params CreateOrderParams) (*OrderSummary, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	order, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderParams{
		Amount:   params.Amount,
		Currency: params.Currency,
		Receipt:  params.Receipt,
		Notes:    params.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &OrderSummary{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Notes:    order.Notes,
	}, nil
}

// Verify runs the whole confirmation sequence: signature proof first, then
// the provider's own view of the payment, and only then the local order
// transition. Order state is never mutated on an unverified request.
func (s *service) Verify(ctx context.Context, params VerifyParams) (*VerifiedPayment, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Verify"),
		zap.String("gateway_order_id", params.OrderID),
		zap.String("payment_id", params.PaymentID),
	)

	if params.OrderID == "" || params.PaymentID == "" || params.Signature == "" {
		return nil, ErrMissingDetails
	}

	if !s.gateway.VerifyPaymentSignature(params.OrderID, params.PaymentID, params.Signature) {
		// possible tampering, keep this loud
		log.Warn("payment signature mismatch",
			zap.String("order_number", params.OrderNumber),
		)
		return nil, ErrInvalidSignature
	}

	fetched, err := s.gateway.FetchPayment(ctx, params.PaymentID)
	if err != nil {
		log.Error("failed to fetch payment from gateway", zap.Error(err))
		return nil, err
	}

	if !fetched.Captured() {
		log.Warn("payment not captured", zap.String("status", fetched.Status))
		return nil, ErrPaymentNotCaptured
	}

	if params.OrderNumber != "" {
		if err := s.orders.MarkPaid(ctx, params.OrderNumber, params.PaymentID); err != nil {
			log.Error("order update failed after captured payment",
				zap.String("order_number", params.OrderNumber),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %v", ErrOrderUpdate, err)
		}
	}

	log.Info("payment verified",
		zap.String("order_number", params.OrderNumber),
		zap.Int64("amount", fetched.Amount),
	)

	return &VerifiedPayment{
		ID:     fetched.ID,
		Amount: fetched.Amount,
		Status: fetched.Status,
		Method: fetched.Method,
	}, nil
}
