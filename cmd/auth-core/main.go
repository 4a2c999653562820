package main

// @title           Auth Core API
// @version         1.0
// @description     Account registration, login and stateless JWT session verification.

// @contact.name   Auth Core OSS
// @contact.url    https://github.com/neotech-labs/auth-core/issues

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/neotech-labs/auth-core/internal/adapters/driven/auth"
	"github.com/neotech-labs/auth-core/internal/adapters/driven/postgres"
	redisadapter "github.com/neotech-labs/auth-core/internal/adapters/driven/redis"
	"github.com/neotech-labs/auth-core/internal/adapters/driving/http"
	"github.com/neotech-labs/auth-core/internal/config"
	"github.com/neotech-labs/auth-core/internal/core/ports/driven"
	"github.com/neotech-labs/auth-core/internal/core/services"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("auth-core stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("auth-core starting", "version", version, "store", cfg.StoreBackend)

	// Cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ===== Credential store =====
	userStore, closeStore, err := openUserStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// ===== Driven adapters =====
	hasher := auth.NewPasswordHasherWithCost(cfg.BcryptCost)
	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	logger.Info("token codec ready", "ttl", tokens.TTL())

	// ===== Core services =====
	authService := services.NewAuthService(userStore, hasher, tokens, logger)
	sessions := services.NewSessionAuthenticator(userStore, tokens)

	// ===== HTTP =====
	serverCfg := http.DefaultConfig()
	serverCfg.Host = cfg.Host
	serverCfg.Port = cfg.Port
	serverCfg.Version = version
	serverCfg.AllowedOrigins = cfg.AllowedOrigins

	server := http.NewServer(serverCfg, authService, sessions, userStore, logger)
	return server.Start(ctx)
}

// openUserStore connects the configured credential store backend
func openUserStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.UserStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		logger.Info("connecting to redis")
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("redis connected")
		return redisadapter.NewUserStore(client), func() { _ = client.Close() }, nil

	default:
		logger.Info("connecting to postgresql")
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("postgresql connected and schema initialized")
		return postgres.NewUserStore(db), func() { _ = db.Close() }, nil
	}
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
