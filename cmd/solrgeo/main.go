package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/solrgeo/internal/config"
	"github.com/kailas-cloud/solrgeo/internal/db"
	"github.com/kailas-cloud/solrgeo/internal/db/memory"
	dbRedis "github.com/kailas-cloud/solrgeo/internal/db/redis"
	"github.com/kailas-cloud/solrgeo/internal/domain/schema"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter"
	"github.com/kailas-cloud/solrgeo/internal/domain/search/extfilter/geodist"
	logpkg "github.com/kailas-cloud/solrgeo/internal/logger"
	"github.com/kailas-cloud/solrgeo/internal/metrics"
	attributerepo "github.com/kailas-cloud/solrgeo/internal/repository/attribute"
	chiTransport "github.com/kailas-cloud/solrgeo/internal/transport/chi"
	attributeuc "github.com/kailas-cloud/solrgeo/internal/usecase/attribute"
	"github.com/kailas-cloud/solrgeo/internal/usecase/fieldname"
	healthuc "github.com/kailas-cloud/solrgeo/internal/usecase/health"
	queryuc "github.com/kailas-cloud/solrgeo/internal/usecase/query"
	"github.com/kailas-cloud/solrgeo/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting solrgeo API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("filter_on_error", cfg.Filters.OnError),
	)

	store, err := openStore(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register filter metrics explicitly (no init())
	metrics.RegisterFilterMetrics()

	datatypes, err := schema.NewDatatypeMap(cfg.Schema.Datatypes, cfg.Schema.Fallback)
	if err != nil {
		logger.Fatal("Invalid schema datatypes", zap.Error(err))
	}
	policy, err := queryuc.ParsePolicy(cfg.Filters.OnError)
	if err != nil {
		logger.Fatal("Invalid filter policy", zap.Error(err))
	}

	// Repositories and services
	attrRepo := attributerepo.New(store, cfg.Storage.KeyPrefix)
	attrSvc := attributeuc.New(attrRepo, datatypes, logger)
	if err := attrSvc.Seed(ctx, seedItems(cfg.Schema.Attributes)); err != nil {
		logger.Fatal("Failed to seed attribute schema", zap.Error(err))
	}

	resolver := fieldname.New(attrRepo, datatypes, metrics.FieldResolutionTotal)
	registry, err := extfilter.NewRegistry(geodist.New(resolver))
	if err != nil {
		logger.Fatal("Failed to register filters", zap.Error(err))
	}
	logger.Info("Extended attribute filters registered", zap.Strings("filters", registry.IDs()))

	querySvc := queryuc.New(registry, policy, metrics.FilterApplicationsTotal, logger)
	healthSvc := healthuc.New(store, registry)

	server := chiTransport.NewServer(querySvc, attrSvc, resolver, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore creates the database store for the configured driver.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Driver, err)
		}
		return s, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func seedItems(attrs []config.AttributeConfig) []attributeuc.SeedItem {
	items := make([]attributeuc.SeedItem, len(attrs))
	for i, a := range attrs {
		items[i] = attributeuc.SeedItem{Class: a.Class, Identifier: a.Identifier, Datatype: a.Datatype}
	}
	return items
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
