package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/api"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/seed"
	"fintrack/internal/service"
)

func main() {
	seedCount := flag.Int("seed", 0, "create this many demo users and exit")
	flag.Parse()

	cfg, logger := cli.Bootstrap()

	ctx, stop := cli.ShutdownContext()
	defer stop()

	store, closeStore, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage backend", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if *seedCount > 0 {
		if err := seed.Run(ctx, store, logger, *seedCount); err != nil {
			logger.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Seeding complete", "users", *seedCount)
		return
	}

	var publisher api.MutationPublisher = api.NopPublisher{}
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		publisher = client
	} else {
		logger.Info("AMQP_URL not set, mutation events disabled")
	}

	srv := api.NewServer(cfg.APIAddr, store, publisher, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second

	adjuster := service.NewAdjuster(store, logger, cfg.AdjustInterval)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting API server", "addr", cfg.APIAddr, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := adjuster.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
