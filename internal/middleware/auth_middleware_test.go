package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/pkg/auth"
)

type fakeSubscriptions struct {
	status models.SubscriptionStatus
	err    error
	calls  int
}

func (f *fakeSubscriptions) GetSubscriptionStatus(ctx context.Context, userID int64) (models.SubscriptionStatus, error) {
	f.calls++
	return f.status, f.err
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "edusphere.test",
	})
}

func tokenFor(t *testing.T, jwtService *auth.JWTService, role models.Role) string {
	t.Helper()
	access, _, _, err := jwtService.GenerateTokenPair(&models.User{
		ID:    7,
		Email: "user@edusphere.test",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return access
}

func newGateRouter(m *AuthMiddleware, gates ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, gates...)
	handlers = append(handlers, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/protected", handlers...)
	return router
}

func doProtected(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthRejectsMissingAndBadTokens(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(), &fakeSubscriptions{})
	router := newGateRouter(m)

	if rec := doProtected(router, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}
	if rec := doProtected(router, "not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}

	otherService := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour})
	foreign, _, _, err := otherService.GenerateTokenPair(&models.User{ID: 1, Email: "x@edusphere.test", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if rec := doProtected(router, foreign); rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong signature: expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthAttachesPrincipal(t *testing.T) {
	jwtService := testJWTService()
	m := NewAuthMiddleware(jwtService, &fakeSubscriptions{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	var seen models.Principal
	router.GET("/protected", m.JWTAuth(), func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			t.Error("principal missing from context")
		}
		seen = principal
		c.Status(http.StatusOK)
	})

	rec := doProtected(router, tokenFor(t, jwtService, models.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen.UserID != 7 || seen.Role != models.RoleAdmin || seen.Email != "user@edusphere.test" {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestRoleRequired(t *testing.T) {
	jwtService := testJWTService()
	m := NewAuthMiddleware(jwtService, &fakeSubscriptions{})
	router := newGateRouter(m, m.RoleRequired(models.RoleAdmin))

	if rec := doProtected(router, tokenFor(t, jwtService, models.RoleUser)); rec.Code != http.StatusForbidden {
		t.Fatalf("user role: expected 403, got %d", rec.Code)
	}
	if rec := doProtected(router, tokenFor(t, jwtService, models.RoleAdmin)); rec.Code != http.StatusOK {
		t.Fatalf("admin role: expected 200, got %d", rec.Code)
	}
}

func TestSubscriberRequiredAdminBypass(t *testing.T) {
	jwtService := testJWTService()
	subs := &fakeSubscriptions{status: models.SubscriptionInactive}
	m := NewAuthMiddleware(jwtService, subs)
	router := newGateRouter(m, m.SubscriberRequired())

	rec := doProtected(router, tokenFor(t, jwtService, models.RoleAdmin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin bypass: expected 200, got %d", rec.Code)
	}
	if subs.calls != 0 {
		t.Fatalf("admin must not trigger a subscription lookup, got %d calls", subs.calls)
	}
}

func TestSubscriberRequiredChecksFreshStatus(t *testing.T) {
	jwtService := testJWTService()
	subs := &fakeSubscriptions{status: models.SubscriptionInactive}
	m := NewAuthMiddleware(jwtService, subs)
	router := newGateRouter(m, m.SubscriberRequired())
	token := tokenFor(t, jwtService, models.RoleUser)

	if rec := doProtected(router, token); rec.Code != http.StatusForbidden {
		t.Fatalf("inactive subscription: expected 403, got %d", rec.Code)
	}

	// Activation takes effect on the very next request with the same token
	subs.status = models.SubscriptionActive
	if rec := doProtected(router, token); rec.Code != http.StatusOK {
		t.Fatalf("active subscription: expected 200, got %d", rec.Code)
	}
	if subs.calls != 2 {
		t.Fatalf("expected a lookup per request, got %d", subs.calls)
	}
}

func TestSubscriberRequiredLookupFailure(t *testing.T) {
	jwtService := testJWTService()
	subs := &fakeSubscriptions{err: errors.New("db down")}
	m := NewAuthMiddleware(jwtService, subs)
	router := newGateRouter(m, m.SubscriberRequired())

	rec := doProtected(router, tokenFor(t, jwtService, models.RoleUser))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("lookup failure: expected 500, got %d", rec.Code)
	}
}
