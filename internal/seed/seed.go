package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/edusphere/backend/internal/app/models"
	appRepos "github.com/edusphere/backend/internal/app/repositories"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/auth"
)

// defaultAdminPassword is only ever used for a freshly created admin
// account and is expected to be changed on first login.
const (
	defaultAdminEmail    = "admin@edusphere.app"
	defaultAdminPassword = "ChangeMe123!"
)

// CreateDefaultData ensures a default admin account exists so the
// admin-only course routes are usable on a fresh database.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default admin account...")

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		FullName:           "EduSphere Admin",
		Email:              defaultAdminEmail,
		Password:           hashed,
		Role:               appModels.RoleAdmin,
		SubscriptionStatus: appModels.SubscriptionActive,
	}

	if _, err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin already exists")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default admin account")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
