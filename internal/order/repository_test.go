package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_number", "customer_id", "status", "payment_status",
		"payment_method", "payment_id", "subtotal", "delivery_fee",
		"total_amount", "delivery_notes", "created_at", "updated_at",
	})
}

func TestRepository_MarkPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs("pay_XYZ", "ORD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkPaid(ctx, "ORD-1", "pay_XYZ")
		assert.NoError(t, err)
	})

	t.Run("NoMatchingOrder", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs("pay_XYZ", "ORD-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.MarkPaid(ctx, "ORD-missing", "pay_XYZ")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WillReturnError(errors.New("connection refused"))

		err := repo.MarkPaid(ctx, "ORD-1", "pay_XYZ")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Idempotent", func(t *testing.T) {
		// the update is overwrite-semantics, a second identical call
		// matches the same row again and succeeds
		mock.ExpectExec(`UPDATE orders`).
			WithArgs("pay_XYZ", "ORD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkPaid(ctx, "ORD-1", "pay_XYZ")
		assert.NoError(t, err)
	})
}

func TestRepository_MarkPaymentFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs("ORD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkPaymentFailed(context.Background(), "ORD-1"))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs("ORD-x").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkPaymentFailed(context.Background(), "ORD-x"), ErrOrderNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("ord-uuid-1", now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("item-uuid-1"))
		mock.ExpectCommit()

		o := &Order{
			OrderNumber:   "ORD-1",
			Status:        StatusPending,
			PaymentStatus: PaymentPending,
			PaymentMethod: MethodRazorpay,
			Subtotal:      499,
			TotalAmount:   548,
			Items: []OrderItem{
				{VariantID: "var-1", Quantity: 1, UnitPrice: 499, TotalPrice: 499},
			},
		}

		err := repo.Create(context.Background(), o)
		require.NoError(t, err)
		assert.Equal(t, "ord-uuid-1", o.ID)
		assert.Equal(t, "item-uuid-1", o.Items[0].ID)
		assert.Equal(t, "ord-uuid-1", o.Items[0].OrderID)
	})

	t.Run("ItemInsertFails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow("ord-uuid-2", now, now))
		mock.ExpectQuery(`INSERT INTO order_items`).
			WillReturnError(errors.New("fk violation"))
		mock.ExpectRollback()

		o := &Order{
			OrderNumber: "ORD-2",
			Items:       []OrderItem{{VariantID: "missing", Quantity: 1}},
		}

		assert.Error(t, repo.Create(context.Background(), o))
	})
}

func TestRepository_GetByOrderNumber(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE order_number = \$1`).
			WithArgs("ORD-1").
			WillReturnRows(orderRows().AddRow(
				"ord-uuid-1", "ORD-1", nil, "confirmed", "paid",
				"online", "pay_XYZ", 499.0, 49.0, 548.0, nil, now, now,
			))
		mock.ExpectQuery(`SELECT .* FROM order_items`).
			WithArgs("ord-uuid-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "order_id", "variant_id", "quantity", "unit_price", "total_price",
			}).AddRow("item-1", "ord-uuid-1", "var-1", 1, 499.0, 499.0))

		o, err := repo.GetByOrderNumber(context.Background(), "ORD-1")
		require.NoError(t, err)
		assert.Equal(t, PaymentPaid, o.PaymentStatus)
		assert.Equal(t, StatusConfirmed, o.Status)
		require.NotNil(t, o.PaymentID)
		assert.Equal(t, "pay_XYZ", *o.PaymentID)
		assert.Len(t, o.Items, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE order_number = \$1`).
			WithArgs("ORD-missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByOrderNumber(context.Background(), "ORD-missing")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	now := time.Now()

	t.Run("WithStatusFilter", func(t *testing.T) {
		status := StatusPending
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
			WithArgs(string(status)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`SELECT .* FROM orders WHERE status = \$1`).
			WithArgs(string(status), 20, 0).
			WillReturnRows(orderRows().AddRow(
				"ord-uuid-1", "ORD-1", nil, "pending", "pending",
				"cod", nil, 100.0, 0.0, 100.0, nil, now, now,
			))

		orders, total, err := repo.ListAll(context.Background(), &status, 20, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, orders, 1)
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders`).
			WillReturnError(errors.New("db down"))

		_, _, err := repo.ListAll(context.Background(), nil, 20, 0)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(string(StatusShipped), "ord-uuid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), "ord-uuid-1", StatusShipped))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders`).
			WithArgs(string(StatusShipped), "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "nope", StatusShipped), ErrOrderNotFound)
	})
}

func TestRepository_DeleteByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(`DELETE FROM orders WHERE customer_id = \$1`).
		WithArgs("cust-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.DeleteByCustomer(context.Background(), "cust-1"))
}
