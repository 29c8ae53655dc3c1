package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signHS256(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestJWTValidatorValidate(t *testing.T) {
	validator, err := NewJWTValidator("s3cr3t", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	valid := signHS256(t, "s3cr3t", Claims{
		Roles: []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	claims, err := validator.Validate(valid)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if claims.SessionID != "user-1" {
		t.Fatalf("expected session fallback to subject, got %q", claims.SessionID)
	}

	expired := signHS256(t, "s3cr3t", Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	if _, err := validator.Validate(expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	wrongKey := signHS256(t, "other", Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}})
	if _, err := validator.Validate(wrongKey); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}

	noSubject := signHS256(t, "s3cr3t", Claims{})
	if _, err := validator.Validate(noSubject); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken without subject, got %v", err)
	}

	if _, err := validator.Validate("  "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestNewJWTValidatorRejectsBadPEM(t *testing.T) {
	if _, err := NewJWTValidator("", "not a pem"); err == nil {
		t.Fatal("expected error for malformed public key")
	}
	disabled, err := NewJWTValidator("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if disabled.Enabled() {
		t.Fatal("validator without keys must report disabled")
	}
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?token=from-query", nil)
	if got := ExtractToken(req, ""); got != "from-query" {
		t.Fatalf("expected query token, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"})
	if got := ExtractToken(req, ""); got != "from-cookie" {
		t.Fatalf("expected cookie token to win over query, got %q", got)
	}

	req.Header.Set("Authorization", "bearer from-header")
	if got := ExtractToken(req, ""); got != "from-header" {
		t.Fatalf("expected header token to win, got %q", got)
	}

	if got := ExtractBearerTokenFromHeader("Basic abc"); got != "" {
		t.Fatalf("expected empty token for basic auth, got %q", got)
	}
}
