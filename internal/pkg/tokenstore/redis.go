// Package tokenstore keeps refresh tokens in Redis so they can be
// revoked on logout and expire on their own.
package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edusphere/backend/internal/pkg/apperrors"
)

const refreshPrefix = "refresh_token:"

// RedisStore stores refresh tokens with a TTL
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore around an existing client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores a refresh token for a user with the given lifetime
func (s *RedisStore) Save(ctx context.Context, refreshToken string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshPrefix+refreshToken, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Resolve returns the user id a refresh token was issued to
func (s *RedisStore) Resolve(ctx context.Context, refreshToken string) (int64, error) {
	val, err := s.client.Get(ctx, refreshPrefix+refreshToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperrors.ErrTokenNotFound
		}
		return 0, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, apperrors.ErrTokenInvalid
	}
	return userID, nil
}

// Delete revokes a refresh token
func (s *RedisStore) Delete(ctx context.Context, refreshToken string) error {
	if err := s.client.Del(ctx, refreshPrefix+refreshToken).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
