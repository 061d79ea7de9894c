// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

// Command api is the entry point for the Inkwell HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to object storage (optional).
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell-press/inkwell/internal/api"
	"github.com/inkwell-press/inkwell/internal/catalog/book"
	"github.com/inkwell-press/inkwell/internal/catalog/manuscript"
	"github.com/inkwell-press/inkwell/internal/commerce/order"
	"github.com/inkwell-press/inkwell/internal/commerce/payment"
	"github.com/inkwell-press/inkwell/internal/platform/blob"
	"github.com/inkwell-press/inkwell/internal/platform/config"
	"github.com/inkwell-press/inkwell/internal/platform/constants"
	"github.com/inkwell-press/inkwell/internal/platform/migration"
	pgstore "github.com/inkwell-press/inkwell/internal/platform/postgres"
	redisstore "github.com/inkwell-press/inkwell/internal/platform/redis"
	"github.com/inkwell-press/inkwell/internal/platform/sec"
	"github.com/inkwell-press/inkwell/internal/social/review"
	"github.com/inkwell-press/inkwell/internal/support/contact"
	"github.com/inkwell-press/inkwell/internal/support/notification"
	"github.com/inkwell-press/inkwell/internal/users/account"
	"github.com/inkwell-press/inkwell/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "inkwell"))
	slog.SetDefault(log)

	log.Info("[Inkwell] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "inkwell"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage (optional) ──────────────────────────────────────
	// Without it, cover uploads answer 503 and everything else works.
	var blobStore blob.Store
	var minioStore *blob.MinioStore
	if cfg.BlobEnabled() {
		minioStore, err = blob.NewMinioStore(startupCtx, blob.Options{
			Endpoint:  cfg.BlobEndpoint,
			AccessKey: cfg.BlobAccessKey,
			SecretKey: cfg.BlobSecretKey,
			Bucket:    cfg.BlobBucket,
			UseSSL:    cfg.BlobUseSSL,
		}, log)
		must(log, err, "connect to object storage")
		blobStore = minioStore
	} else {
		log.Warn("object_storage_disabled")
	}

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	healthDeps := api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}
	if minioStore != nil {
		healthDeps.CheckStorage = func() error {
			return minioStore.Ping(context.Background())
		}
	}
	liveness, readiness := api.NewHealthHandlers(healthDeps, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, resetTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(userRepository, sessionRepository, log)
	accountHandler := account.NewHandler(accountService)

	bookRepository := book.NewRepository(pool)
	bookService := book.NewService(bookRepository, blobStore, log)
	bookHandler := book.NewHandler(bookService)

	notificationService := notification.NewService(notification.NewRepository(pool), log)
	notificationHandler := notification.NewHandler(notificationService)

	manuscriptRepository := manuscript.NewRepository(pool)
	manuscriptService := manuscript.NewService(manuscriptRepository, bookService, userRepository, notificationService, log)
	manuscriptHandler := manuscript.NewHandler(manuscriptService)

	paymentClient := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentAPIKey)
	orderRepository := order.NewRepository(pool)
	intentClaims := order.NewIntentClaimRepository(rdb)
	orderService := order.NewService(orderRepository, intentClaims, paymentClient, bookRepository, notificationService, log)
	orderHandler := order.NewHandler(orderService)

	reviewService := review.NewService(review.NewRepository(pool), bookRepository, log)
	reviewHandler := review.NewHandler(reviewService)

	contactService := contact.NewService(contact.NewRepository(pool), log)
	contactHandler := contact.NewHandler(contactService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Book:         bookHandler,
		Manuscript:   manuscriptHandler,
		Order:        orderHandler,
		Review:       reviewHandler,
		Contact:      contactHandler,
		Notification: notificationHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
