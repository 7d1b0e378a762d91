package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/auth"
)

// UserStore is the persistence surface shared by auth, subscription
// and the subscriber gate
type UserStore interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetSubscriptionStatus(ctx context.Context, userID int64) (models.SubscriptionStatus, error)
	UpdateSubscription(ctx context.Context, userID int64, subscriptionID string, status models.SubscriptionStatus) error
}

// RefreshTokenStore tracks issued refresh tokens so they can be revoked
type RefreshTokenStore interface {
	Save(ctx context.Context, refreshToken string, userID int64, ttl time.Duration) error
	Resolve(ctx context.Context, refreshToken string) (int64, error)
	Delete(ctx context.Context, refreshToken string) error
}

// TokenPair carries a freshly issued access/refresh token pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	users  UserStore
	tokens RefreshTokenStore
	jwt    *auth.JWTService
	logger zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, tokens RefreshTokenStore, jwt *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates a new user account with the default role and an
// inactive subscription
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FullName:           req.FullName,
		Email:              req.Email,
		Password:           hashed,
		Role:               models.RoleUser,
		SubscriptionStatus: models.SubscriptionInactive,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("userId", id).Str("email", user.Email).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a token pair
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh rotates a refresh token into a new token pair
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.Resolve(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Rotation: the presented token is revoked before the new one is issued
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Delete(ctx, refreshToken)
}

// GetProfile returns the user behind a principal
func (s *authServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokens.Save(ctx, refreshToken, user.ID, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error saving refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
