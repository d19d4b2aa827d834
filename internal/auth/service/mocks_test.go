package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/mkalinin/tasklight/internal/auth/service"
	"github.com/mkalinin/tasklight/internal/common/clock"
	"github.com/mkalinin/tasklight/internal/common/logger"
	userdomain "github.com/mkalinin/tasklight/internal/user/domain"
)

const testJWTSecret = "test-secret-key-at-least-32-bytes-long"

type mockUserRepo struct {
	createFunc      func(ctx context.Context, email, passwordHash string) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, email, passwordHash string) (userdomain.User, error) {
	return m.createFunc(ctx, email, passwordHash)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return m.findByEmailFunc(ctx, email)
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "test-jti", nil
}

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	users := &mockUserRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}

	svc := service.NewAuthService(users, hasher, idGen, mockClock, testJWTSecret, 24*time.Hour, log)
	return svc, users, hasher, idGen, mockClock
}
