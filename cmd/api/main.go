package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/solarops/soltrack/internal/config"
	"github.com/solarops/soltrack/internal/db"
	"github.com/solarops/soltrack/internal/handlers"
	"github.com/solarops/soltrack/internal/middleware"
	"github.com/solarops/soltrack/internal/models"
	"github.com/solarops/soltrack/internal/repo"
	"github.com/solarops/soltrack/internal/scheduler"
	"github.com/solarops/soltrack/internal/service"
)

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

// newRouter builds the full HTTP surface. Split out from main so tests can
// mount it on an httptest server.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	assetRepo := repo.NewAssetRepo(database)
	auditRepo := repo.NewAuditRepo(database)
	userRepo := repo.NewUserRepo(database)
	assetService := service.NewAssetService(database)

	authH := &handlers.AuthHandler{
		UserRepo:    userRepo,
		Secret:      []byte(cfg.JWTSecret),
		ExpireHours: cfg.JWTExpireHours,
	}
	assetH := &handlers.AssetHandler{
		Service:   assetService,
		Repo:      assetRepo,
		AuditRepo: auditRepo,
	}
	auditH := &handlers.AuditHandler{Repo: auditRepo}
	dashH := &handlers.DashboardHandler{Repo: assetRepo}
	exportH := &handlers.ExportHandler{Repo: assetRepo}

	useTLS := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(useTLS))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "ready")
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWT([]byte(cfg.JWTSecret)))

			r.Get("/dashboard", dashH.Stats)
			r.Get("/export", exportH.ExportXLSX)

			r.Get("/assets", assetH.ListAssets)
			r.Get("/assets/{id}", assetH.GetAsset)
			r.Get("/assets/{id}/audit", assetH.GetAssetAudit)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
				Post("/assets", assetH.CreateAsset)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
				Put("/assets/{id}", assetH.UpdateAsset)

			r.With(middleware.RequireRole(models.RoleAdmin)).
				Get("/audit", auditH.ListAudit)
		})
	})

	return r
}

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.EnsureAdmin(ctx, database, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminCompany); err != nil {
		slog.Error("admin seeding failed", "error", err)
		os.Exit(1)
	}

	cronRunner, err := scheduler.Run(repo.NewAssetRepo(database), cfg.WarrantyCheckCron, cfg.WarrantyWarnDays)
	if err != nil {
		slog.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(database, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "tls", cfg.TLSCertFile != "")
		if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
		}
	}

	cronRunner.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
