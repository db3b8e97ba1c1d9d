package main

import (
	"context"
	"errors"
	"os"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap()

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := cli.ShutdownContext()
	defer stop()

	store, closeStore, err := backend.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage backend", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	auditor := worker.NewAuditor(store, logger)

	logger.Info("Starting audit worker", "queue", cfg.AMQPQueue)
	err = amqp.RunConsumer(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger, func(msg *amqp.MutationMessage) error {
		return auditor.Handle(ctx, msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
