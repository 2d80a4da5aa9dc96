package order

import (
	"time"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment methods accepted at checkout. "online" is what a successfully
// verified Razorpay payment is recorded as.
const (
	MethodRazorpay = "razorpay"
	MethodCOD      = "cod"
	MethodOnline   = "online"
)

type Order struct {
	ID            string
	OrderNumber   string
	CustomerID    *string
	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod string
	PaymentID     *string
	Subtotal      float64
	DeliveryFee   float64
	TotalAmount   float64
	DeliveryNotes *string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID         string
	OrderID    string
	VariantID  string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

type NewOrderItem struct {
	VariantID string
	Quantity  int
	UnitPrice float64
}

// SalesStats is the order side of the admin dashboard numbers.
type SalesStats struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalOrders   int64   `json:"totalOrders"`
	PendingOrders int64   `json:"pendingOrders"`
}

type CheckoutParams struct {
	CustomerID    *string
	PaymentMethod string
	DeliveryFee   float64
	DeliveryNotes *string
	Items         []NewOrderItem
}
