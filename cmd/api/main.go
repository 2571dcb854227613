package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/advocate-diary/advocate-backend/config"
	"github.com/advocate-diary/advocate-backend/internal/auth"
	"github.com/advocate-diary/advocate-backend/internal/bootstrap"
	"github.com/advocate-diary/advocate-backend/internal/db"
	"github.com/advocate-diary/advocate-backend/internal/hearings"
	"github.com/advocate-diary/advocate-backend/internal/logging"
	"github.com/advocate-diary/advocate-backend/internal/notifications"
	"github.com/advocate-diary/advocate-backend/internal/reminders"
)

const serviceName = "advocate-backend"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.App)
	bootstrap.SetGinMode(cfg.App.Environment)

	// Without DB_DSN the API still boots against the disabled store so the
	// frontend can be developed before any database exists.
	var querier db.Querier = db.Disabled{}
	var pool *pgxpool.Pool
	if cfg.Database.DSN == "" {
		logger.Warn("DB_DSN not set, running with disabled datastore")
	} else {
		pool, err = db.Open(ctx, cfg.Database)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		querier = pool
		defer pool.Close()
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr == "" {
		logger.Warn("REDIS_ADDR not set, e-filing and reminders disabled")
	} else {
		redisClient, err = bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
	}

	var verifier auth.TokenVerifier
	if cfg.Firebase.CredentialsPath != "" {
		client, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			logger.Error("failed to initialize firebase", "error", err)
			os.Exit(1)
		}
		verifier = client
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             querier,
		Pool:           pool,
		Redis:          redisClient,
		Verifier:       verifier,
		Log:            logger,
	})

	if pool != nil && redisClient != nil {
		scheduler := reminders.NewScheduler(
			hearings.NewRepo(pool),
			notifications.NewRepo(pool),
			redisClient,
			logger,
		)
		if err := scheduler.Start(); err != nil {
			logger.Error("failed to start reminder scheduler", "error", err)
			os.Exit(1)
		}
		defer scheduler.Stop()
	} else {
		logger.Warn("reminder scheduler disabled, needs both database and redis")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.App.Environment)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
