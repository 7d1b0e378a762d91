package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/dberrors"
	"github.com/edusphere/backend/internal/pkg/logger"
)

const userEmailConstraint = "users_email_key"

// UserRepository handles database operations for users.
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"id", "full_name", "email", "password", "role",
		"subscription_id", "subscription_status", "created_at", "updated_at",
	).From("users").PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.FullName, &user.Email, &user.Password, &user.Role,
		&user.SubscriptionID, &user.SubscriptionStatus, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user and returns its id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("full_name", "email", "password", "role", "subscription_status").
		Values(user.FullName, user.Email, user.Password, user.Role, user.SubscriptionStatus).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err, userEmailConstraint) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}

	return id, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by ID SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(squirrel.Eq{"email": email}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user by email SQL")
		return nil, err
	}

	return scanUser(r.DB.QueryRow(ctx, sqlStr, args...))
}

// GetSubscriptionStatus loads the current subscription status for a
// user. The subscriber gate always calls this instead of trusting any
// value cached on the request.
func (r *UserRepository) GetSubscriptionStatus(ctx context.Context, userID int64) (models.SubscriptionStatus, error) {
	sqlStr, args, err := squirrel.Select("subscription_status").From("users").
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get subscription status SQL")
		return "", err
	}

	var status models.SubscriptionStatus
	if err := r.DB.QueryRow(ctx, sqlStr, args...).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error executing get subscription status query")
		return "", err
	}

	return status, nil
}

// UpdateSubscription sets a user's gateway subscription id and status
func (r *UserRepository) UpdateSubscription(ctx context.Context, userID int64, subscriptionID string, status models.SubscriptionStatus) error {
	sql, args, err := squirrel.Update("users").
		Set("subscription_id", subscriptionID).
		Set("subscription_status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update subscription SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update subscription query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
