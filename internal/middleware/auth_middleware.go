package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/auth"
)

// principalKey is the single context key carrying the resolved caller
const principalKey = "principal"

// SubscriptionSource loads a user's current subscription status. The
// subscriber gate reads it fresh on every request instead of trusting
// anything cached on the request.
type SubscriptionSource interface {
	GetSubscriptionStatus(ctx context.Context, userID int64) (models.SubscriptionStatus, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService    *auth.JWTService
	subscriptions SubscriptionSource
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, subscriptions SubscriptionSource) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:    jwtService,
		subscriptions: subscriptions,
	}
}

// GetPrincipal returns the authenticated caller attached by JWTAuth
func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}

// JWTAuth validates the bearer token and attaches the resolved
// Principal to the request context
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("authentication required"))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("invalid token format"))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "authentication failed"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
			return
		}

		c.Set(principalKey, models.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   models.Role(claims.Role),
		})

		c.Next()
	}
}

// RoleRequired allows only callers whose role is in the allow-list
func (m *AuthMiddleware) RoleRequired(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("authentication required"))
			return
		}

		for _, role := range allowed {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("you do not have permission to access this route"))
	}
}

// SubscriberRequired allows admins through unconditionally; everyone
// else needs an active subscription, checked against the database at
// request time.
func (m *AuthMiddleware) SubscriberRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("authentication required"))
			return
		}

		if principal.IsAdmin() {
			c.Next()
			return
		}

		status, err := m.subscriptions.GetSubscriptionStatus(c.Request.Context(), principal.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to check subscription status"))
			return
		}

		if status != models.SubscriptionActive {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("please subscribe to access this route"))
			return
		}

		c.Next()
	}
}
