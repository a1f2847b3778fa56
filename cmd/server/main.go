package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dgallion1/readmepage/internal/config"
	"github.com/dgallion1/readmepage/internal/metrics"
	"github.com/dgallion1/readmepage/internal/page"
	"github.com/dgallion1/readmepage/internal/render"
	"github.com/dgallion1/readmepage/internal/web"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.Load(), log); err != nil {
		log.Error("startup failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run renders the page once, then serves it until ctx is cancelled. Any
// failure before the listener is up is returned.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	renderer := render.New(render.Options{
		Sanitize:      cfg.SanitizeHTML,
		TerminalWidth: cfg.TerminalWidth,
	})
	builder := page.NewBuilder(page.SpecFromConfig(cfg), renderer, m, log)
	cache := page.NewCache(builder, cfg.ReloadMode == config.ReloadRequest, log)
	defer func() {
		if err := cache.Close(); err != nil {
			log.Warn("close file watcher", "error", err)
		}
	}()

	// First render pass: configure page, display logo, load and render the
	// document. Any failure here ends the process before serving.
	p, err := cache.Get()
	if err != nil {
		return fmt.Errorf("render page (document %s, logo %s): %w", cfg.DocumentPath, cfg.LogoPath, err)
	}
	log.Info("page rendered",
		"title", p.Config.Title,
		"document", cfg.DocumentPath,
		"bytes", len(p.Document.Raw),
		"sections", len(p.Outline),
	)

	if cfg.ReloadMode == config.ReloadWatch {
		if err := cache.Watch(); err != nil {
			log.Warn("file watching disabled, page will not refresh", "error", err)
		}
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      web.NewServer(cache, renderer, m, reg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting readmepage", "port", cfg.Port, "reload_mode", cfg.ReloadMode)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown.
	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown incomplete", "error", err)
	}
	return nil
}
