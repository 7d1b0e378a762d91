package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/payment"
)

// SubscriptionService manages the caller's subscription through the
// external payment gateway
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID int64) (*models.User, error)
	Cancel(ctx context.Context, userID int64) (*models.User, error)
}

// subscriptionServiceImpl implements SubscriptionService
type subscriptionServiceImpl struct {
	users   UserStore
	gateway payment.Gateway
	planID  string
	logger  zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(users UserStore, gateway payment.Gateway, planID string, logger zerolog.Logger) SubscriptionService {
	return &subscriptionServiceImpl{
		users:   users,
		gateway: gateway,
		planID:  planID,
		logger:  logger,
	}
}

// Subscribe activates the caller's subscription. Gateway failures are
// reported, never retried.
func (s *subscriptionServiceImpl) Subscribe(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.SubscriptionStatus == models.SubscriptionActive {
		return nil, apperrors.NewBadRequestError("subscription is already active")
	}

	subscriptionID, err := s.gateway.CreateSubscription(ctx, user.ID, s.planID)
	if err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	if err := s.users.UpdateSubscription(ctx, user.ID, subscriptionID, models.SubscriptionActive); err != nil {
		return nil, err
	}

	user.SubscriptionID = subscriptionID
	user.SubscriptionStatus = models.SubscriptionActive

	s.logger.Info().Int64("userId", user.ID).Msg("Subscription activated")
	return user, nil
}

// Cancel cancels the caller's subscription at the gateway and records
// the cancelled status
func (s *subscriptionServiceImpl) Cancel(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.SubscriptionStatus != models.SubscriptionActive || user.SubscriptionID == "" {
		return nil, apperrors.NewBadRequestError("no active subscription to cancel")
	}

	if err := s.gateway.CancelSubscription(ctx, user.SubscriptionID); err != nil {
		return nil, apperrors.NewUpstreamError(err)
	}

	if err := s.users.UpdateSubscription(ctx, user.ID, user.SubscriptionID, models.SubscriptionCancelled); err != nil {
		return nil, err
	}

	user.SubscriptionStatus = models.SubscriptionCancelled

	s.logger.Info().Int64("userId", user.ID).Msg("Subscription cancelled")
	return user, nil
}
