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

	"task-list/internal/config"
	"task-list/internal/controller"
	"task-list/internal/metrics"
	"task-list/internal/queue"
	"task-list/internal/repository"
	"task-list/internal/routes"
	"task-list/internal/session"
	"task-list/internal/storage"
	"task-list/internal/store"
	"task-list/internal/worker"
	"task-list/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.LoadEnvFile(".env"); err != nil {
		fmt.Fprintln(os.Stderr, "Reading .env failed:", err)
	}
	cfg := config.Get()
	logger.SetOutput(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error(ctx, "Exiting", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	sl, closeSlot, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSlot()

	m := metrics.New()
	st, err := store.New(ctx, repository.New(sl), store.WithMetrics(m))
	if err != nil {
		return err
	}
	sess := session.New(st, m)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      routes.Router(controller.New(sess, sl), m),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(ctx, "HTTP server listening", "port", cfg.HTTPPort, "backend", cfg.StorageBackend, "slot", sl.Name())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if cfg.KafkaEnabled() {
		queue.EnsureTopic(ctx, cfg)
		reader := worker.NewReader(cfg)
		defer reader.Close()
		g.Go(func() error {
			return worker.Run(gctx, reader, sess)
		})
	} else {
		logger.Info(ctx, "Kafka intent consumer disabled (no brokers)")
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown error", "error", err)
		}
		return nil
	})

	err = g.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if ferr := st.Close(flushCtx); ferr != nil {
		logger.Error(ctx, "Final flush failed", "error", ferr)
	}
	logger.Info(ctx, "Server stopped")
	return err
}
