package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkalinin/tasklight/internal/auth/service"
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
	userdomain "github.com/mkalinin/tasklight/internal/user/domain"
	userrepo "github.com/mkalinin/tasklight/internal/user/repository"
)

func TestAuthService_Signup_Success(t *testing.T) {
	svc, users, _, _, mockClock := setupAuthService(t)

	email := "alice@example.com"
	password := "password123"

	users.createFunc = func(ctx context.Context, em, passwordHash string) (userdomain.User, error) {
		if em != email {
			t.Errorf("expected email %s, got %s", email, em)
		}
		if passwordHash != "hashed_"+password {
			t.Errorf("expected hashed password, got %s", passwordHash)
		}
		return userdomain.User{
			ID:           "user-123",
			Email:        em,
			PasswordHash: passwordHash,
			CreatedAt:    mockClock.Now(),
		}, nil
	}

	user, err := svc.Signup(context.Background(), service.SignupInput{
		Email:    email,
		Password: password,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-123" {
		t.Errorf("expected user ID user-123, got %s", user.ID)
	}
	if user.Email != email {
		t.Errorf("expected email %s, got %s", email, user.Email)
	}
}

func TestAuthService_Signup_InvalidEmail(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:    "not-an-email",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected validation error")
	}
	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok || domainErr.Code() != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT error, got %v", err)
	}
	if domainErr.HTTPStatus() != 400 {
		t.Errorf("expected status 400, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Signup_MissingPassword(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:    "alice@example.com",
		Password: "",
	})

	if err == nil {
		t.Fatal("expected validation error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "INVALID_INPUT" {
		t.Errorf("expected INVALID_INPUT error, got %v", err)
	}
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	svc, users, _, _, _ := setupAuthService(t)

	users.createFunc = func(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Signup(context.Background(), service.SignupInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 409 {
		t.Errorf("expected status 409, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, users, hasher, _, mockClock := setupAuthService(t)

	email := "alice@example.com"
	password := "password123"

	users.findByEmailFunc = func(ctx context.Context, em string) (userdomain.User, error) {
		return userdomain.User{
			ID:           "user-123",
			Email:        em,
			PasswordHash: "hashed_" + password,
			CreatedAt:    mockClock.Now(),
		}, nil
	}
	hasher.compareFunc = func(hash string, pwd string) error {
		if hash != "hashed_"+password || pwd != password {
			return errors.New("password mismatch")
		}
		return nil
	}

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    email,
		Password: password,
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token to be set")
	}

	claims := parseClaims(t, result.Token)
	if claims["sub"] != "user-123" {
		t.Errorf("expected sub user-123, got %v", claims["sub"])
	}
	if claims["eml"] != email {
		t.Errorf("expected eml %s, got %v", email, claims["eml"])
	}
	if claims["jti"] != "test-jti" {
		t.Errorf("expected jti test-jti, got %v", claims["jti"])
	}

	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if iat != mockClock.Now().Unix() {
		t.Errorf("expected iat %d, got %d", mockClock.Now().Unix(), iat)
	}
	if exp-iat != int64((24 * 60 * 60)) {
		t.Errorf("expected 24h token lifetime, got %d seconds", exp-iat)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, users, _, _, _ := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, users, hasher, _, _ := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Email: email, PasswordHash: "hashed_other"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("password mismatch")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	domainErr, _ := commonerrors.AsDomainError(err)
	if domainErr.HTTPStatus() != 401 {
		t.Errorf("expected status 401, got %d", domainErr.HTTPStatus())
	}
}

func TestAuthService_Login_RepositoryError(t *testing.T) {
	svc, users, _, _, _ := setupAuthService(t)

	users.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection reset")
	}

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "password123",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if domainErr, ok := commonerrors.AsDomainError(err); !ok || domainErr.Code() != "INTERNAL" {
		t.Errorf("expected INTERNAL error, got %v", err)
	}
}

// parseClaims decodes the token without validating time-based claims so
// tokens minted against the mock clock stay parseable.
func parseClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	return claims
}
