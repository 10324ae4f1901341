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

	"golang.org/x/sync/errgroup"

	"carteira/internal/platform/config"
	"carteira/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// main wires dependencies, serves HTTP, and shuts down on SIGINT/SIGTERM.
// Business logic lives in the internal packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "carteira:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting carteira",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"directory", cfg.Directory.Backend,
		"ledger", cfg.Issuance.Ledger,
		"audit_sink", cfg.Audit.Sink,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if app.redis != nil {
		g.Go(func() error {
			app.redis.RunPoolStats(gctx, 15*time.Second)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
