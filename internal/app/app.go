// Package app assembles the dashboard API: configuration, logging, the
// service layer, the chi router, and the HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"fbmetrics/internal/config"
	"fbmetrics/internal/middleware"
	"fbmetrics/internal/services"
	transport "fbmetrics/internal/transport/http"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Application holds the assembled server and its collaborators
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router chi.Router
	Server *http.Server
}

// NewApplication wires the application from a loaded configuration
func NewApplication(cfg *config.Config) *Application {
	logger := config.NewLogger(cfg.Logging, os.Stderr)

	service := services.NewDashboardService(cfg, logger)
	dashboard := transport.NewDashboardHandler(service, logger)
	health := transport.NewHealthHandler(Version)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.Get("/healthz", health.Healthz)
	router.Mount("/api", dashboard.Routes())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config: cfg,
		Logger: logger,
		Router: router,
		Server: server,
	}
}

// Run starts the HTTP server and blocks until shutdown
func (a *Application) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("data_dir", a.Config.Paths.DataDir))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigCh:
		a.Logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.Logger.Info("server stopped")
	return nil
}
