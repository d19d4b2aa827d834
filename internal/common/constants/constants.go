package constants

import "time"

const (
	PasswordBcryptCost = 12
	JWTSecretMinLength = 32

	DefaultMaxRequestSize = 1 << 20

	DefaultHTTPPort       = "8080"
	DefaultMongoDatabase  = "tasklight"
	DefaultTokenTTL       = 24 * time.Hour
	DefaultRequestTimeout = 5 * time.Second

	MongoConnectTimeout  = 5 * time.Second
	MongoConnectAttempts = 10
	MongoConnectRetry    = time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	UsersCollection = "users"
	TodosCollection = "todos"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
