package jwtverify_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	commonhttp "github.com/mkalinin/tasklight/internal/common/http"
	"github.com/mkalinin/tasklight/internal/common/jwtverify"
	"github.com/mkalinin/tasklight/internal/common/logger"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": "user-123",
		"eml": "alice@example.com",
		"jti": "jti-1",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
}

func setupProtected(t *testing.T) (http.Handler, *jwtverify.Claims) {
	t.Helper()

	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	var captured jwtverify.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := jwtverify.FromContext(r.Context())
		if !ok {
			t.Error("expected claims in context")
		}
		captured = claims
		w.WriteHeader(http.StatusOK)
	})

	return jwtverify.Middleware(testSecret, log)(inner), &captured
}

func doRequest(handler http.Handler, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_ValidToken(t *testing.T) {
	handler, captured := setupProtected(t)

	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())
	rec := doRequest(handler, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.UserID != "user-123" {
		t.Errorf("expected user-123, got %s", captured.UserID)
	}
	if captured.Email != "alice@example.com" {
		t.Errorf("expected email claim, got %s", captured.Email)
	}
	if captured.JTI != "jti-1" {
		t.Errorf("expected jti claim, got %s", captured.JTI)
	}
}

func TestMiddleware_MissingHeader(t *testing.T) {
	handler, _ := setupProtected(t)

	rec := doRequest(handler, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var envelope commonhttp.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if envelope.Code != commonhttp.CodeUnauthenticated {
		t.Errorf("expected code %s, got %s", commonhttp.CodeUnauthenticated, envelope.Code)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	handler, _ := setupProtected(t)

	rec := doRequest(handler, "Token abc")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_GarbageToken(t *testing.T) {
	handler, _ := setupProtected(t)

	rec := doRequest(handler, "Bearer not.a.token")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	handler, _ := setupProtected(t)

	claims := validClaims()
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec := doRequest(handler, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestMiddleware_WrongSecret(t *testing.T) {
	handler, _ := setupProtected(t)

	token := signToken(t, "another-secret-key-also-32-bytes-xx", jwt.SigningMethodHS256, validClaims())
	rec := doRequest(handler, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}
}

func TestMiddleware_WrongSigningMethod(t *testing.T) {
	handler, _ := setupProtected(t)

	token := signToken(t, testSecret, jwt.SigningMethodHS512, validClaims())
	rec := doRequest(handler, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong signing method, got %d", rec.Code)
	}
}

func TestMiddleware_MissingSubClaim(t *testing.T) {
	handler, _ := setupProtected(t)

	claims := validClaims()
	delete(claims, "sub")
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec := doRequest(handler, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for token without sub, got %d", rec.Code)
	}
}

func TestParseToken_RoundTrip(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims())

	claims, err := jwtverify.ParseToken(token, []byte(testSecret))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected user-123, got %s", claims.UserID)
	}
}
