package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	"fintrack/internal/client"
	"fintrack/internal/web"
)

func main() {
	cfg, logger := cli.Bootstrap()

	ctx, stop := cli.ShutdownContext()
	defer stop()

	api := client.New(cfg.APIBaseURL, logger)
	srv, err := web.NewServer(cfg.WebAddr, api, logger)
	if err != nil {
		logger.Error("Failed to build web server", "error", err)
		os.Exit(1)
	}
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting web server", "addr", cfg.WebAddr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Web server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Web server stopped gracefully")
}
