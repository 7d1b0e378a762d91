// Package payment talks to the external subscription gateway. The
// gateway is a collaborator: failures are reported, never retried.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Gateway creates and cancels subscriptions on the payment provider
type Gateway interface {
	CreateSubscription(ctx context.Context, userID int64, planID string) (subscriptionID string, err error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// HTTPGateway is a JSON-over-HTTP gateway client
type HTTPGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPGateway creates a gateway client for the given endpoint
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type createSubscriptionRequest struct {
	UserID int64  `json:"userId"`
	PlanID string `json:"planId"`
}

type createSubscriptionResponse struct {
	SubscriptionID string `json:"subscriptionId"`
}

// CreateSubscription registers a new subscription for a user
func (g *HTTPGateway) CreateSubscription(ctx context.Context, userID int64, planID string) (string, error) {
	body, err := json.Marshal(createSubscriptionRequest{UserID: userID, PlanID: planID})
	if err != nil {
		return "", fmt.Errorf("failed to encode subscription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/subscriptions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build subscription request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("subscription gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("subscription gateway returned status %d", resp.StatusCode)
	}

	var out createSubscriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode subscription response: %w", err)
	}
	if out.SubscriptionID == "" {
		return "", fmt.Errorf("subscription gateway returned empty subscription id")
	}

	return out.SubscriptionID, nil
}

// CancelSubscription cancels an existing subscription
func (g *HTTPGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, g.baseURL+"/subscriptions/"+subscriptionID, nil)
	if err != nil {
		return fmt.Errorf("failed to build cancel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("subscription gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subscription gateway returned status %d", resp.StatusCode)
	}

	return nil
}
