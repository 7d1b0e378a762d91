package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/edusphere/backend/internal/app/models"
)

func newTestService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "edusphere.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 42, Email: "user@edusphere.test", Role: models.RoleAdmin}

	access, refresh, expiresIn, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens to be set")
	}
	if expiresIn != int(time.Hour.Seconds()) {
		t.Fatalf("unexpected expiresIn: %d", expiresIn)
	}

	claims, err := svc.ValidateToken(access)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "user@edusphere.test" || claims.Role != string(models.RoleAdmin) {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	access, _, _, err := newTestService(time.Hour).GenerateTokenPair(&models.User{ID: 1, Email: "a@edusphere.test", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
	if _, err := other.ValidateToken(access); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)
	access, _, _, err := svc.GenerateTokenPair(&models.User{ID: 1, Email: "a@edusphere.test", Role: models.RoleUser})
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := svc.ValidateToken(access); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := newTestService(time.Hour)
	user := &models.User{ID: 1, Email: "a@edusphere.test", Role: models.RoleUser}

	_, first, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	_, second, _, err := svc.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if first == second {
		t.Fatal("refresh tokens must be unique per issue")
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("unexpected result: %q, %v", token, err)
	}

	for _, header := range []string{"", "abc.def.ghi", "Basic abc", "bearer abc"} {
		if _, err := ExtractBearerToken(header); err == nil {
			t.Fatalf("expected error for header %q", header)
		}
	}
}
