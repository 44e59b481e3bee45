// Package main is the entry point for the storefront server.
// It loads configuration, opens the client state backend, sets up routing,
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	"storefront/internal/persist"
	"storefront/internal/render"
	"storefront/internal/router"
	"storefront/internal/session"
	"storefront/internal/storefront"
)

func main() {
	// Load configuration from environment variables (and .env).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.StateBackend,
	)

	backend, closeBackend, err := openBackend(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open state backend", "backend", cfg.StateBackend, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	cat := catalog.Default()
	hub := storefront.NewHub(persist.NewAdapter(backend, storefront.Namespace), cat, notify.Fanout{Next: notify.Log{}})
	if cfg.ClientIdleMinutes > 0 {
		hub.SetIdleTTL(time.Duration(cfg.ClientIdleMinutes) * time.Minute)
		hub.StartEviction(time.Minute)
		defer hub.Stop()
	}

	renderer, err := render.New(cat)
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// In non-development environments, mark cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	r := router.New(session.NewManager(secureCookies), handlers.NewAPI(hub, renderer), router.Options{
		Secure:  secureCookies,
		Limiter: limiter,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully", "clients", hub.Len())
}

// openBackend connects the configured state backend. The returned func
// releases its connections.
func openBackend(ctx context.Context, cfg *config.Config) (persist.Backend, func(), error) {
	noop := func() {}
	switch cfg.StateBackend {
	case config.BackendMemory:
		slog.Warn("memory backend: client state is lost on restart")
		return persist.NewMemoryBackend(), noop, nil

	case config.BackendFile:
		b, err := persist.OpenFileBackend(cfg.StateFile())
		if err != nil {
			return nil, nil, err
		}
		slog.Info("file backend opened", "path", b.Path())
		return b, noop, nil

	case config.BackendValkey:
		client, err := persist.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			return nil, nil, err
		}
		return persist.NewValkeyBackend(client, "storefront:"), func() { client.Close() }, nil

	case config.BackendPostgres:
		db, err := database.Connect(ctx, cfg.DSN(), 5)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return persist.NewPostgresBackend(db), func() { db.Close() }, nil

	case config.BackendS3:
		b, err := persist.NewS3Backend(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("s3 backend configured", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
		return b, noop, nil
	}
	return nil, nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
}
