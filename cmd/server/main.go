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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Postfeed/internal/api/middleware"
	"Postfeed/internal/api/routes"
	"Postfeed/internal/config"
	"Postfeed/internal/core/comments"
	"Postfeed/internal/core/posts"
	"Postfeed/internal/db/migrations"
	postgresRepo "Postfeed/internal/db/postgres"
	"Postfeed/internal/db/traced"
	"Postfeed/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := telemetry.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := telemetry.NewLogger(os.Stdout, level)
	telemetry.RecordBuildInfo()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.OTelServiceName,
		SampleRate:  cfg.OTelSampleRate,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	// Database
	db, err := postgresRepo.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	logger.Info("connected to database", slog.String("driver", cfg.DatabaseDriver))

	if cfg.RunMigrations {
		if err := migrations.Up(ctx, db); err != nil {
			return err
		}
		logger.Info("migrations completed successfully")
	}

	// Initialize repositories and services
	postRepo := traced.NewPostRepository(postgresRepo.NewPostRepository(db), tp)
	commentRepo := traced.NewCommentRepository(postgresRepo.NewCommentRepository(db), tp)

	policy, err := comments.PolicyByName(cfg.CommentPreviewPolicy, comments.DefaultPreviewLimit)
	if err != nil {
		return err
	}
	previewLoader := comments.NewPreviewLoader(commentRepo, policy, logger)
	postService := posts.NewPostService(postRepo, previewLoader, cfg.PaginationStrict, logger)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.Observe(tp, logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if err := routes.RegisterPostRoutes(r, postService, cfg.PublicBaseURL); err != nil {
		return err
	}
	routes.RegisterSystemRoutes(r, db)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Postfeed starting",
			slog.String("addr", server.Addr),
			slog.String("version", telemetry.Version),
			slog.String("comment_preview_policy", policy.Name()),
			slog.Bool("pagination_strict", cfg.PaginationStrict))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to gracefully shutdown HTTP server", slog.String("error", err.Error()))
		return err
	}

	return nil
}
