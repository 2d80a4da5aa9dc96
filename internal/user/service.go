package user

import (
	"context"
	"errors"
	"strings"

	"pawket-be/internal/logger"

	"go.uber.org/zap"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// PurgeStep removes one kind of data belonging to a user. Account deletion
// runs every registered step and reports the ones that failed.
type PurgeStep struct {
	Name string
	Fn   func(ctx context.Context, userID string) error
}

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Profile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
	DeleteAccount(ctx context.Context, userID string) (*DeleteReport, error)
}

type service struct {
	repo       Repository
	purgeSteps []PurgeStep
}

func NewService(repo Repository, purgeSteps ...PurgeStep) Service {
	return &service{repo: repo, purgeSteps: purgeSteps}
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, name, email, hashed, string(RoleCustomer))
	if err != nil {
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		if strings.Contains(err.Error(), "users_email_key") {
			return "", User{}, ErrEmailExists
		}
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)
	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login failed, email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login failed, password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), email)
	return token, u, err
}

func (s *service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Profile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	return s.repo.UpsertProfile(ctx, params)
}

// DeleteAccount removes the user and their related data. Each purge step runs
// even when a previous one failed, and failures are reported back rather than
// aborting the whole deletion.
func (s *service) DeleteAccount(ctx context.Context, userID string) (*DeleteReport, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteAccount"),
		zap.String("user_id", userID),
	)

	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	report := &DeleteReport{}
	for _, step := range s.purgeSteps {
		if err := step.Fn(ctx, userID); err != nil {
			log.Error("purge step failed",
				zap.String("step", step.Name),
				zap.Error(err),
			)
			report.Partial = true
			report.Failed = append(report.Failed, step.Name)
		}
	}

	if err := s.repo.DeleteProfile(ctx, userID); err != nil {
		log.Error("failed to delete profile", zap.Error(err))
		report.Partial = true
		report.Failed = append(report.Failed, "profile")
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		log.Error("failed to delete user row", zap.Error(err))
		return nil, err
	}

	log.Info("account deleted", zap.Bool("partial", report.Partial))
	return report, nil
}
