// cmd/console/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/config"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/database"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/logger"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/common/observability"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/normalize"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/reconcile"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/review"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/store"
	"github.com/RachaputiVaishnavi/studio-application-flow/internal/validation"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting review console...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("storeBackend", cfg.Store.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	norm := normalize.New(log)

	// --- Init store client per configured backend ---
	var client store.Client
	switch cfg.Store.Backend {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Store.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
		client = store.NewPostgresClient(pg, norm, log)

	default:
		timeout := time.Duration(cfg.Store.HTTP.Timeout) * time.Millisecond
		client = store.NewHTTPClient(cfg.Store.HTTP.BaseURL, timeout, norm, log)
		zapLog.Info("HTTP store client initialized", zap.String("baseURL", cfg.Store.HTTP.BaseURL))
	}

	// --- Init Redis snapshot cache with retry ---
	var cache *store.SnapshotCache
	if cfg.Cache.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Cache)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")
		cache = store.NewSnapshotCache(redis, time.Duration(cfg.Cache.TTL)*time.Second, log)
	}

	validator, err := validation.NewPatchValidator()
	if err != nil {
		zapLog.Fatal("patch validator failed", zap.Error(err))
	}

	projects := store.NewProjectStore()
	engine := reconcile.NewEngine(client, projects, validator, obs, log)
	svc := review.NewService(client, projects, engine, cache, log)

	// --- Initial pipeline load with retry ---
	err = retryWithBackoff(func() error {
		return svc.Refresh(ctx)
	}, 10, 2*time.Second, zapLog, "Initial pipeline load")

	if err != nil {
		zapLog.Fatal("pipeline load failed after retries", zap.Error(err))
	}
	zapLog.Info("Pipeline loaded successfully")

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "ready",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Watch for committed evaluations ---
	events, cancelSub := projects.Subscribe()
	defer cancelSub()
	go func() {
		for ev := range events {
			zapLog.Info("evaluation updated",
				zap.String("projectId", ev.ProjectID),
				zap.String("status", string(ev.Evaluation.Status)),
			)
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping console...")
	if svc.HasPending() {
		zapLog.Warn("Uncommitted edits discarded on shutdown")
	}

	zapLog.Info("Review console stopped gracefully")
}
