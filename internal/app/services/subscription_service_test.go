package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

type fakeGateway struct {
	subscriptionID string
	createErr      error
	cancelErr      error
	cancelled      []string
}

func (f *fakeGateway) CreateSubscription(ctx context.Context, userID int64, planID string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.subscriptionID, nil
}

func (f *fakeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = append(f.cancelled, subscriptionID)
	return nil
}

func seedUser(t *testing.T, users *fakeUserStore, status models.SubscriptionStatus, subscriptionID string) *models.User {
	t.Helper()
	user := &models.User{
		FullName:           "Jane Doe",
		Email:              "jane@edusphere.test",
		Password:           "hashed",
		Role:               models.RoleUser,
		SubscriptionID:     subscriptionID,
		SubscriptionStatus: status,
	}
	if _, err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return user
}

func TestSubscribeActivates(t *testing.T) {
	users := newFakeUserStore()
	user := seedUser(t, users, models.SubscriptionInactive, "")
	gateway := &fakeGateway{subscriptionID: "sub_123"}
	svc := NewSubscriptionService(users, gateway, "monthly", zerolog.Nop())

	updated, err := svc.Subscribe(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if updated.SubscriptionStatus != models.SubscriptionActive || updated.SubscriptionID != "sub_123" {
		t.Fatalf("unexpected state: %+v", updated)
	}

	status, _ := users.GetSubscriptionStatus(context.Background(), user.ID)
	if status != models.SubscriptionActive {
		t.Fatalf("status not persisted: %s", status)
	}
}

func TestSubscribeAlreadyActive(t *testing.T) {
	users := newFakeUserStore()
	user := seedUser(t, users, models.SubscriptionActive, "sub_123")
	svc := NewSubscriptionService(users, &fakeGateway{}, "monthly", zerolog.Nop())

	_, err := svc.Subscribe(context.Background(), user.ID)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestSubscribeGatewayFailure(t *testing.T) {
	users := newFakeUserStore()
	user := seedUser(t, users, models.SubscriptionInactive, "")
	gateway := &fakeGateway{createErr: errors.New("gateway down")}
	svc := NewSubscriptionService(users, gateway, "monthly", zerolog.Nop())

	_, err := svc.Subscribe(context.Background(), user.ID)
	if !errors.Is(err, apperrors.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	status, _ := users.GetSubscriptionStatus(context.Background(), user.ID)
	if status != models.SubscriptionInactive {
		t.Fatalf("gateway failure must not change the status: %s", status)
	}
}

func TestCancelSubscription(t *testing.T) {
	users := newFakeUserStore()
	user := seedUser(t, users, models.SubscriptionActive, "sub_123")
	gateway := &fakeGateway{}
	svc := NewSubscriptionService(users, gateway, "monthly", zerolog.Nop())

	updated, err := svc.Cancel(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if updated.SubscriptionStatus != models.SubscriptionCancelled {
		t.Fatalf("unexpected status: %s", updated.SubscriptionStatus)
	}
	if len(gateway.cancelled) != 1 || gateway.cancelled[0] != "sub_123" {
		t.Fatalf("gateway not asked to cancel sub_123: %v", gateway.cancelled)
	}
}

func TestCancelWithoutActiveSubscription(t *testing.T) {
	users := newFakeUserStore()
	user := seedUser(t, users, models.SubscriptionInactive, "")
	svc := NewSubscriptionService(users, &fakeGateway{}, "monthly", zerolog.Nop())

	_, err := svc.Cancel(context.Background(), user.ID)
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}
