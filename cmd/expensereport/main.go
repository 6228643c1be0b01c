package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"expensereport/internal/cache"
	"expensereport/internal/cli"
	"expensereport/internal/config"
	apphttp "expensereport/internal/http"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
	"expensereport/internal/storage"
	"expensereport/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "expensereport:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, "warning: .env:", err)
	}

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		return err
	}

	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()

	res, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", log.FieldError, err)
		}
	}()

	locale, _ := i18n.ParseLocale(cfg.DefaultLocale)
	local := storage.NewLocal(res.KV, locale, logger)
	expenses, seeded := local.LoadExpenses(ctx, time.Now())
	logger.Info("Expense report loaded", log.FieldCount, len(expenses), "seeded", seeded)
	st := store.New(expenses)

	manager := cache.NewManager(logger)
	views := cache.NewViews(cfg.CacheTTL, manager)
	manager.StartCleanup(cfg.CacheTTL)

	srv := apphttp.NewServer(cfg.Addr(), apphttp.Dependencies{
		Store:           st,
		Local:           local,
		Views:           views,
		CacheManager:    manager,
		Logger:          logger,
		MaxReceiptBytes: cfg.MaxReceiptBytes,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server",
			"address", cfg.Addr(),
			log.FieldBackend, cfg.DataBackend,
			log.FieldLocale, string(locale))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if st.Dirty() {
		logger.Warn("Exiting with unsaved changes", log.FieldVersion, st.Version())
	}
	return err
}
