package order

import (
	"context"
	"errors"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("item quantity must be at least 1")
	ErrInvalidMethod     = errors.New("unsupported payment method")
	ErrForbidden         = errors.New("order belongs to another customer")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Service defines the business logic for orders.
type Service interface {
	Checkout(ctx context.Context, params CheckoutParams) (*Order, error)
	GetOrder(ctx context.Context, customerID, orderID string) (*Order, error)
	MyOrders(ctx context.Context, customerID string, limit, page int) ([]*Order, error)
	TrackByNumber(ctx context.Context, orderNumber string) (*Order, error)
	MarkPaid(ctx context.Context, orderNumber, paymentID string) error
	MarkPaymentFailed(ctx context.Context, orderNumber string) error
	AdminList(ctx context.Context, status *Status, limit, page int) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Checkout(ctx context.Context, params CheckoutParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.String("payment_method", params.PaymentMethod),
	)

	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if params.PaymentMethod != MethodRazorpay && params.PaymentMethod != MethodCOD {
		return nil, ErrInvalidMethod
	}

	var subtotal float64
	items := make([]OrderItem, 0, len(params.Items))
	for _, in := range params.Items {
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total := in.UnitPrice * float64(in.Quantity)
		subtotal += total
		items = append(items, OrderItem{
			VariantID:  in.VariantID,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			TotalPrice: total,
		})
	}

	o := &Order{
		OrderNumber:   GenerateOrderNumber(),
		CustomerID:    params.CustomerID,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		PaymentMethod: params.PaymentMethod,
		Subtotal:      subtotal,
		DeliveryFee:   params.DeliveryFee,
		TotalAmount:   subtotal + params.DeliveryFee,
		DeliveryNotes: params.DeliveryNotes,
		Items:         items,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("checkout completed",
		zap.String("order_number", o.OrderNumber),
		zap.Float64("total", o.TotalAmount),
	)
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, customerID, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CustomerID == nil || *o.CustomerID != customerID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) MyOrders(ctx context.Context, customerID string, limit, page int) ([]*Order, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return s.repo.ListByCustomer(ctx, customerID, limit, (page-1)*limit)
}

// TrackByNumber is the public guest-facing lookup. It intentionally strips
// the customer reference before returning.
func (s *service) TrackByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	o.CustomerID = nil
	return o, nil
}

func (s *service) MarkPaid(ctx context.Context, orderNumber, paymentID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkPaid"),
		zap.String("order_number", orderNumber),
	)

	if err := s.repo.MarkPaid(ctx, orderNumber, paymentID); err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return err
	}

	log.Info("order marked paid", zap.String("payment_id", paymentID))
	return nil
}

func (s *service) MarkPaymentFailed(ctx context.Context, orderNumber string) error {
	return s.repo.MarkPaymentFailed(ctx, orderNumber)
}

func (s *service) AdminList(ctx context.Context, status *Status, limit, page int) ([]*Order, int64, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	return s.repo.ListAll(ctx, status, limit, (page-1)*limit)
}

// validTransitions holds the allowed fulfilment edges. Payment edges are
// owned by MarkPaid/MarkPaymentFailed and never pass through here.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

func (s *service) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range validTransitions[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}
