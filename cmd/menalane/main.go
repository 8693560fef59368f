// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/menalane/menalane/internal/auth"
	"github.com/menalane/menalane/internal/config"
	"github.com/menalane/menalane/internal/handler/api"
	"github.com/menalane/menalane/internal/logging"
	"github.com/menalane/menalane/internal/middleware"
	"github.com/menalane/menalane/internal/service"
	"github.com/menalane/menalane/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "MENALANE - MENA markets research backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_TOKEN_SECRET      Token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_DB_PATH           SQLite database path (default: ./data/menalane.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_SERVER_PORT       Server port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_UPLOADS_DIR       Media uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_FRONTEND_ORIGIN   Allowed CORS origin (default: http://localhost:5173)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  MENALANE_DO_SEED           Seed admin account and sample data (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("menalane %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data and uploads directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	queries := store.New(db)
	ctx := context.Background()

	if cfg.DoSeed {
		created, err := queries.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, "Administrator")
		if err != nil {
			return fmt.Errorf("seeding admin account: %w", err)
		}
		if created {
			slog.Info("admin account created", "email", cfg.AdminEmail)
		}
		if err := queries.SeedSampleData(ctx); err != nil {
			return fmt.Errorf("seeding sample data: %w", err)
		}
	}

	tokens := auth.NewTokenManager(cfg.TokenSecret)
	media := service.NewMediaService(queries, cfg.UploadsDir, logger)
	apiHandler := api.NewHandler(db, tokens, media, logger)

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", apiHandler.Root)
	r.Get("/health", apiHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", apiHandler.Register)
		r.Post("/auth/login", apiHandler.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, queries))
			r.Get("/auth/verify", apiHandler.Me)
			r.Get("/auth/me", apiHandler.Me)
			r.Put("/auth/profile", apiHandler.UpdateProfile)
		})

		// Public content
		r.Get("/content", apiHandler.ListContent)
		r.Get("/content/featured", apiHandler.FeaturedContent)
		r.Get("/content/{slug}", apiHandler.GetContentBySlug)
		r.Get("/market-highlights", apiHandler.ListMarketHighlights)
		r.Get("/jobs", apiHandler.ListJobs)

		// Intake
		r.Post("/contact", apiHandler.SubmitContact)
		r.Post("/newsletter/subscribe", apiHandler.SubscribeNewsletter)

		// CMS (token required)
		r.Route("/cms", func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, queries))
			r.Get("/content", apiHandler.CMSListContent)
			r.Post("/content", apiHandler.CMSCreateContent)
			r.Get("/content/{id}", apiHandler.CMSGetContent)
			r.Put("/content/{id}", apiHandler.CMSUpdateContent)
			r.Delete("/content/{id}", apiHandler.CMSDeleteContent)
			r.Get("/stats", apiHandler.CMSStats)
			r.Get("/media", apiHandler.ListMedia)
			r.Post("/media/upload", apiHandler.UploadMedia)
			r.Delete("/media/{id}", apiHandler.DeleteMedia)
		})
	})

	// Serve uploaded media files
	uploadsHandler := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir)))
	r.Handle("/uploads/*", uploadsHandler)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
