package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrItemNotFound = errors.New("cart item not found")

type Repository interface {
	GetByUserAndVariant(ctx context.Context, userID, variantID string) (*Item, error)
	Create(ctx context.Context, params AddParams) (*Item, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*Item, error)
	UpdateQuantityByVariant(ctx context.Context, params UpdateParams) error
	Remove(ctx context.Context, params RemoveParams) error
	Clear(ctx context.Context, userID string) error
	ListRows(ctx context.Context, userID string) ([]*Row, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const itemColumns = `id, user_id, variant_id, quantity, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.UserID, &it.VariantID, &it.Quantity, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) GetByUserAndVariant(ctx context.Context, userID, variantID string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+`
		FROM carts
		WHERE user_id = $1 AND variant_id = $2`, userID, variantID)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, params AddParams) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING `+itemColumns,
		params.UserID, params.VariantID, params.Quantity)

	it, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}
	return it, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+itemColumns, quantity, itemID)

	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	return it, nil
}

func (r *repository) UpdateQuantityByVariant(ctx context.Context, params UpdateParams) error {
	if params.Quantity <= 0 {
		return errors.New("quantity must be greater than zero")
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND variant_id = $3`,
		params.Quantity, params.UserID, params.VariantID)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, params RemoveParams) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND variant_id = $2`,
		params.UserID, params.VariantID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (r *repository) ListRows(ctx context.Context, userID string) ([]*Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.quantity,
			p.id, p.name, p.slug, p.image_url,
			v.id, v.weight, v.price, v.stock,
			c.updated_at
		FROM carts c
		JOIN product_variants v ON v.id = c.variant_id
		JOIN products p ON p.id = v.product_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	defer rows.Close()

	var items []*Row
	for rows.Next() {
		var row Row
		err := rows.Scan(
			&row.ItemID, &row.Quantity,
			&row.ProductID, &row.ProductName, &row.ProductSlug, &row.ImageURL,
			&row.VariantID, &row.Weight, &row.Price, &row.Stock,
			&row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart row: %w", err)
		}
		items = append(items, &row)
	}
	return items, rows.Err()
}
