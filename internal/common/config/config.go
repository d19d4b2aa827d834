package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mkalinin/tasklight/internal/common/constants"
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
)

type ServerConfig struct {
	HTTPPort       string
	MongoURI       string
	MongoDatabase  string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
}

type ClientConfig struct {
	ServerURL string
}

func LoadServerConfig() (ServerConfig, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return ServerConfig{}, err
	}

	if len(jwtSecret) < constants.JWTSecretMinLength {
		return ServerConfig{}, fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(jwtSecret))
	}

	mongoURI, err := mustEnv("MONGO_URI")
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		MongoURI:       mongoURI,
		MongoDatabase:  getEnv("MONGO_DATABASE", constants.DefaultMongoDatabase),
		JWTSecret:      jwtSecret,
		TokenTTL:       getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
	}, nil
}

func LoadClientConfig() ClientConfig {
	return ClientConfig{
		ServerURL: getEnv("TASKLIGHT_SERVER_URL", "http://localhost:"+constants.DefaultHTTPPort),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
