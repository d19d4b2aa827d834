package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/mkalinin/tasklight/internal/auth/http"
	authservice "github.com/mkalinin/tasklight/internal/auth/service"
	"github.com/mkalinin/tasklight/internal/common/clock"
	"github.com/mkalinin/tasklight/internal/common/config"
	commoncrypto "github.com/mkalinin/tasklight/internal/common/crypto"
	"github.com/mkalinin/tasklight/internal/common/db"
	commonhttp "github.com/mkalinin/tasklight/internal/common/http"
	"github.com/mkalinin/tasklight/internal/common/jwtverify"
	"github.com/mkalinin/tasklight/internal/common/logger"
	srv "github.com/mkalinin/tasklight/internal/common/server"
	todohttp "github.com/mkalinin/tasklight/internal/todo/http"
	todorepo "github.com/mkalinin/tasklight/internal/todo/repository"
	todoservice "github.com/mkalinin/tasklight/internal/todo/service"
	userrepo "github.com/mkalinin/tasklight/internal/user/repository"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := db.Connect(log, cfg.MongoURI)
	database := client.Database(cfg.MongoDatabase)

	indexCtx, indexCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if err := db.EnsureIndexes(indexCtx, database); err != nil {
		indexCancel()
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	indexCancel()

	userRepo := userrepo.NewMongoRepository(database)
	todoRepo := todorepo.NewMongoRepository(database)

	authService := authservice.NewAuthService(
		userRepo,
		&commoncrypto.BcryptHasher{},
		commoncrypto.NewUUIDGenerator(),
		clock.NewRealClock(),
		cfg.JWTSecret,
		cfg.TokenTTL,
		log,
	)
	todoService := todoservice.NewTodoService(todoRepo, log)

	r := chi.NewRouter()
	r.Get("/health", commonhttp.HealthHandler(log))
	r.Handle("/metrics", promhttp.Handler())

	authhttp.NewHandler(authService, cfg.RequestTimeout, log).Register(r)

	r.Group(func(r chi.Router) {
		r.Use(jwtverify.Middleware(cfg.JWTSecret, log))
		todohttp.NewHandler(todoService, cfg.RequestTimeout, log).Register(r)
	})

	handler := commonhttp.BuildBaseHandler(log, r)

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), handler)

	hooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			log.Infof("api: disconnecting from mongo")
			return client.Disconnect(ctx)
		},
	}

	srv.StartWithGracefulShutdown(server, log, "api", hooks)
}
