package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"findash/internal/cli"
	apphttp "findash/internal/http"
	"findash/internal/log"
)

func main() {
	cli.LoadEnvFile()

	// Bootstrap logger until LOG_LEVEL is known.
	logger := cli.SetupLogger(log.DefaultConfig().Level)
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.SlogLevel())

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	data, cleanup, err := cli.LoadDashboard(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to load dashboard data", log.FieldError, err,
			"backend", cfg.DataBackend,
			"aggregates_mode", cfg.AggregatesMode)
		os.Exit(1)
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, data, apphttp.Options{
		ViewCacheSize:       cfg.ViewCacheSize,
		ViewCacheTTL:        cfg.ViewCacheTTL,
		ExportRatePerMinute: cfg.ExportRatePerMinute,
		Logger:              logger,
	})

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting findash server",
			log.FieldOperation, log.OpStartup,
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"aggregates_mode", data.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
