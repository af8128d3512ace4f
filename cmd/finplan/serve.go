package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/config"
	"github.com/rpgo/finplan/internal/server"
	"github.com/rpgo/finplan/internal/service"
	"github.com/rpgo/finplan/internal/store"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadAppConfig(root)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, root.debug)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

// backends holds the opened cache and snapshot store so they can be closed
// on shutdown.
type backends struct {
	cache     store.Cache
	snapshots store.SnapshotRepository
	closers   []func()
}

// cacheSweepInterval is how often the memory cache drops expired results.
const cacheSweepInterval = 5 * time.Minute

func cacheMaxEntries(cfg *config.AppConfig) int {
	if cfg.Cache.MaxEntries > 0 {
		return cfg.Cache.MaxEntries
	}
	return store.DefaultMaxEntries
}

func (b *backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func openBackends(ctx context.Context, cfg *config.AppConfig, logger *common.Logger) (*backends, error) {
	b := &backends{}

	switch cfg.Cache.Backend {
	case "redis":
		rc := store.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.GetTTL())
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, fmt.Errorf("redis cache unavailable at %s: %w", cfg.Cache.RedisAddr, err)
		}
		b.cache = rc
		b.closers = append(b.closers, func() {
			if err := rc.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close redis cache")
			}
		})
	case "none":
		b.cache = store.NopCache{}
	default:
		mc := store.NewMemoryCache(cfg.Cache.GetTTL(), store.WithMaxEntries(cacheMaxEntries(cfg)))
		mc.StartSweeper(cacheSweepInterval)
		b.cache = mc
		b.closers = append(b.closers, mc.Close)
	}

	switch cfg.Storage.Backend {
	case "postgres":
		pg, err := store.NewPostgresSnapshots(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.snapshots = pg
		b.closers = append(b.closers, pg.Close)
	default:
		b.snapshots = store.NewMemorySnapshots()
	}
	return b, nil
}

func serve(ctx context.Context, cfg *config.AppConfig, debug bool) error {
	logger := common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(common.NewCalcLogger(logger))
	engine.Debug = debug

	svc := service.NewCalculatorService(engine,
		service.WithCache(b.cache),
		service.WithSnapshots(b.snapshots),
		service.WithLogger(logger),
		service.WithSnapshotLimit(cfg.Storage.SnapshotLimit),
	)
	srv := server.NewServer(cfg, svc, logger)

	common.PrintBanner(os.Stdout, common.StartupInfo{
		Environment: cfg.Environment,
		ServiceURL:  fmt.Sprintf("http://localhost:%d", cfg.Server.Port),
		Cache:       cfg.Cache.Backend,
		Storage:     cfg.Storage.Backend,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	common.PrintShutdownBanner(os.Stdout, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
	return nil
}
