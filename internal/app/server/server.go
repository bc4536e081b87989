// Package server wires configuration, the backend client and the web
// handler into one HTTP server.
package server

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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"congeadmin/internal/backend"
	"congeadmin/internal/platform/cache"
	"congeadmin/internal/platform/config"
	"congeadmin/internal/session"
	"congeadmin/internal/transport/web"
	"congeadmin/internal/transport/web/middleware"
)

func Run() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	store := cache.New(cfg.CacheTTL)
	api := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, cfg.ReadRetries, store)
	sessions := session.NewManager(cfg.SessionCookie, cfg.SessionTTL, cfg.Environment == "production")

	handler, err := web.NewHandler(api, sessions, cfg.PageSize, cfg.BulkConcurrency)
	if err != nil {
		slog.Error("handler setup failed", "err", err)
		os.Exit(1)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(chimiddleware.RequestSize(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Mount("/", handler.Routes())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("console listening", "addr", cfg.Addr, "backend", cfg.BackendBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "err", err)
	}
}
