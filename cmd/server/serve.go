package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/apex-supplements/store-api/internal/auth"
	"github.com/apex-supplements/store-api/internal/config"
	"github.com/apex-supplements/store-api/internal/handlers"
	"github.com/apex-supplements/store-api/internal/metrics"
	"github.com/apex-supplements/store-api/internal/repository"
	"github.com/apex-supplements/store-api/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Load configuration from environment
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting store api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog", cfg.Catalog.File,
		"watch", cfg.Catalog.Watch,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	fileCatalog := repository.NewFileCatalogRepository(cfg.Catalog.File)
	var catalog repository.CatalogRepository = fileCatalog
	var watcher *repository.WatchingCatalogRepository
	if cfg.Catalog.Watch {
		watcher, err = repository.NewWatchingCatalogRepository(fileCatalog, log)
		if err != nil {
			return fmt.Errorf("failed to watch catalog: %w", err)
		}
		catalog = watcher
	}
	if c, err := catalog.Load(ctx); err != nil {
		// Not fatal: the file may appear later and the health check reports it.
		log.Warn("catalog not readable at startup", "error", err)
	} else {
		log.Info("catalog loaded", "products", len(c.Products), "categories", len(c.Categories))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	router := handlers.NewRouter(handlers.RouterDeps{
		Catalog:        catalog,
		Users:          repository.NewFileUserRepository(cfg.Auth.UsersFile),
		Token:          auth.NewStaticToken(cfg.Auth.Token),
		Metrics:        metrics.New(reg),
		Log:            log,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	// Wait for interrupt signal to gracefully shutdown the server
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}
