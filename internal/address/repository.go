package address

import (
	"context"
	"database/sql"
	"errors"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrAddressNotFound = errors.New("address not found")

type Repository interface {
	GetByUserID(ctx context.Context, userID string) ([]*Address, error)
	GetByID(ctx context.Context, id string) (*Address, error)

	Create(ctx context.Context, input CreateAddressInput) (*Address, error)
	Deactivate(ctx context.Context, userID, id string) error
	DeactivateByUser(ctx context.Context, userID string) error

	SetDefault(ctx context.Context, userID, addressID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	id, user_id,
	name, phone,
	address_line1, address_line2,
	city, state, postal_code, country,
	is_default, is_active, created_at`

func scanAddress(row interface{ Scan(...any) error }) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.Name, &a.Phone,
		&a.Address1, &a.Address2,
		&a.City, &a.State, &a.Postal, &a.Country,
		&a.IsDefault, &a.IsActive, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID string) ([]*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.String("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE user_id = $1
		  AND is_active = true
		ORDER BY is_default DESC, created_at DESC`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Address, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+addressColumns+`
		FROM addresses
		WHERE id = $1 AND is_active = true
		LIMIT 1`, id)

	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, input CreateAddressInput) (*Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.String("user_id", input.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if input.SetAsDefault {
		if _, err := tx.ExecContext(ctx, `
			UPDATE addresses SET is_default = false
			WHERE user_id = $1 AND is_default = true`, input.UserID); err != nil {
			log.Error("failed to clear default", zap.Error(err))
			return nil, err
		}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO addresses (
			user_id, name, phone,
			address_line1, address_line2,
			city, state, postal_code, country,
			is_default
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+addressColumns,
		input.UserID, input.Name, input.Phone,
		input.AddressLine1, input.AddressLine2,
		input.City, input.State, input.PostalCode, input.Country,
		input.SetAsDefault,
	)

	a, err := scanAddress(row)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

// Deactivate soft-deletes an address. Scoped by user so one customer cannot
// remove another's address.
func (r *repository) Deactivate(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_default = false, is_active = false
		WHERE id = $1 AND user_id = $2 AND is_active = true`, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *repository) DeactivateByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE addresses SET is_default = false, is_active = false
		WHERE user_id = $1`, userID)
	return err
}

func (r *repository) SetDefault(ctx context.Context, userID, addressID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_default = false
		WHERE user_id = $1 AND is_default = true`, userID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE addresses SET is_default = true
		WHERE id = $1 AND user_id = $2 AND is_active = true`, addressID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAddressNotFound
	}

	return tx.Commit()
}
