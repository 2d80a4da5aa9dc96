package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Order, error)
	ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, int64, error)
	MarkPaid(ctx context.Context, orderNumber, paymentID string) error
	MarkPaymentFailed(ctx context.Context, orderNumber string) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	DeleteByCustomer(ctx context.Context, customerID string) error
	Stats(ctx context.Context) (*SalesStats, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id,
	order_number,
	customer_id,
	status,
	payment_status,
	payment_method,
	payment_id,
	subtotal,
	delivery_fee,
	total_amount,
	delivery_notes,
	created_at,
	updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerID,
		&o.Status,
		&o.PaymentStatus,
		&o.PaymentMethod,
		&o.PaymentID,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.TotalAmount,
		&o.DeliveryNotes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("order_number", o.OrderNumber),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin tx", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number,
			customer_id,
			status,
			payment_status,
			payment_method,
			subtotal,
			delivery_fee,
			total_amount,
			delivery_notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.CustomerID, o.Status, o.PaymentStatus, o.PaymentMethod,
		o.Subtotal, o.DeliveryFee, o.TotalAmount, o.DeliveryNotes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, variant_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			item.OrderID, item.VariantID, item.Quantity, item.UnitPrice, item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order", zap.Error(err))
		return err
	}

	log.Info("order created", zap.String("order_id", o.ID))
	return nil
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE order_number = $1
	`, orderNumber)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) loadItems(ctx context.Context, o *Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, variant_id, quantity, unit_price, total_price
		FROM order_items WHERE order_id = $1
		ORDER BY id
	`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.VariantID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
		); err != nil {
			return err
		}
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *repository) ListAll(ctx context.Context, status *Status, limit, offset int) ([]*Order, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListAll"),
	)

	where := ""
	args := []any{}
	if status != nil {
		where = "WHERE status = $1"
		args = append(args, *status)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total); err != nil {
		log.Error("count query failed", zap.Error(err))
		return nil, 0, err
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("list query failed", zap.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func collectOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// MarkPaid applies the verified-payment transition in a single statement.
// The order stays untouched unless the row exists, which is how a stale
// order_number surfaces as ErrOrderNotFound instead of a silent no-op.
func (r *repository) MarkPaid(ctx context.Context, orderNumber, paymentID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'paid',
		    payment_id = $1,
		    payment_method = 'online',
		    status = 'confirmed',
		    updated_at = NOW()
		WHERE order_number = $2
	`, paymentID, orderNumber)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) MarkPaymentFailed(ctx context.Context, orderNumber string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET payment_status = 'failed',
		    updated_at = NOW()
		WHERE order_number = $1
	`, orderNumber)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) DeleteByCustomer(ctx context.Context, customerID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM orders WHERE customer_id = $1
	`, customerID)
	return err
}

// Stats aggregates revenue and order counts for the admin dashboard.
// Revenue only counts paid orders.
func (r *repository) Stats(ctx context.Context) (*SalesStats, error) {
	var s SalesStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0),
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending')
		FROM orders
	`).Scan(&s.TotalRevenue, &s.TotalOrders, &s.PendingOrders)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
