package user

import (
	"context"
	"database/sql"
	"errors"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrProfileNotFound = errors.New("profile not found")

// GetProfile fetches a user's profile by user ID.
func (r *repository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetProfile"),
		zap.String("user_id", userID),
	)

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, full_name, phone, avatar_url, date_of_birth, created_at, updated_at
		FROM profiles
		WHERE user_id = $1`, userID)

	var p Profile
	err := row.Scan(&p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to scan profile", zap.Error(err))
		return nil, err
	}

	return &p, nil
}

// UpsertProfile creates or updates the profile in one statement. COALESCE
// keeps existing values when the input field is nil.
func (r *repository) UpsertProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "UpsertProfile"),
		zap.String("user_id", params.UserID),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO profiles (user_id, full_name, phone, avatar_url, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = COALESCE(EXCLUDED.full_name, profiles.full_name),
			phone = COALESCE(EXCLUDED.phone, profiles.phone),
			avatar_url = COALESCE(EXCLUDED.avatar_url, profiles.avatar_url),
			date_of_birth = COALESCE(EXCLUDED.date_of_birth, profiles.date_of_birth),
			updated_at = NOW()
		RETURNING user_id, full_name, phone, avatar_url, date_of_birth, created_at, updated_at`,
		params.UserID, params.FullName, params.Phone, params.AvatarURL, params.DateOfBirth)

	var p Profile
	err := row.Scan(&p.UserID, &p.FullName, &p.Phone, &p.AvatarURL, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert profile", zap.Error(err))
		return nil, err
	}

	log.Info("profile saved")
	return &p, nil
}

func (r *repository) DeleteProfile(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return err
}
