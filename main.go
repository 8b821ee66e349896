package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"orgadmin-service/internal/config"
	"orgadmin-service/internal/handlers/users"
	"orgadmin-service/internal/middleware"
	"orgadmin-service/internal/obs"
	"orgadmin-service/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	obs.Init()

	provider := services.NewProviderService(cfg)
	idempotency := services.NewRedisIdempotencyStore(cfg)
	sessionAuth := middleware.NewSessionAuth(cfg.JWTPublicKey)
	userHandler := users.New(provider, idempotency, cfg.OrganizationID)

	if cfg.OrganizationID == "" {
		slog.Warn("ORGANIZATION_ID is not set; organization endpoints will fail closed")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(obs.Instrument)
	r.Use(func(next http.Handler) http.Handler {
		return middleware.MaxBodyBytes(next, 1<<20)
	})
	r.Use(func(next http.Handler) http.Handler {
		return middleware.RateLimit(next, cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","service":"orgadmin-service"}`))
	})
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Route("/api/org/users", func(r chi.Router) {
		r.Use(sessionAuth.Middleware)
		r.Post("/", userHandler.HandleCreate)
		r.Get("/", userHandler.HandleList)
		r.Patch("/{id}", userHandler.HandleUpdate)
		r.Delete("/{id}", userHandler.HandleDelete)
		r.Get("/{id}/assignable-roles", userHandler.HandleAssignableRoles)
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("orgadmin-service started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
