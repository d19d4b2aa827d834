package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mkalinin/tasklight/internal/common/config"
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
)

const validSecret = "test-secret-key-at-least-32-bytes-long"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.LoadServerConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "tasklight" {
		t.Errorf("expected default database tasklight, got %s", cfg.MongoDatabase)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default token TTL 24h, got %v", cfg.TokenTTL)
	}
	if cfg.JWTSecret != validSecret {
		t.Error("expected secret to be carried through")
	}
}

func TestLoadServerConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	_, err := config.LoadServerConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadServerConfig_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	_, err := config.LoadServerConfig()
	if !errors.Is(err, commonerrors.ErrInvalidJWTSecret) {
		t.Fatalf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoadServerConfig_MissingMongoURI(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("MONGO_URI", "")

	_, err := config.LoadServerConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadServerConfig_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("TOKEN_TTL", "15m")
	t.Setenv("REQUEST_TIMEOUT", "2s")

	cfg, err := config.LoadServerConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9999" {
		t.Errorf("expected port 9999, got %s", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 15*time.Minute {
		t.Errorf("expected TTL 15m, got %v", cfg.TokenTTL)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected request timeout 2s, got %v", cfg.RequestTimeout)
	}
}

func TestLoadServerConfig_BadDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg, err := config.LoadServerConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected fallback TTL 24h, got %v", cfg.TokenTTL)
	}
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("TASKLIGHT_SERVER_URL", "http://example.com:8081")

	cfg := config.LoadClientConfig()
	if cfg.ServerURL != "http://example.com:8081" {
		t.Errorf("expected configured server url, got %s", cfg.ServerURL)
	}
}
