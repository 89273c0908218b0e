package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/aouyang1/go-hwforecaster/internal/router"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve forecasts over HTTP",
		Long: `Start the forecast HTTP server.

  GET  /                 liveness
  POST /v1/forecast      json {values, seasonal_period, horizon}
  POST /v1/forecast/csv  multipart csv upload with ?periods=N&seasonal_period=M`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				a.cfg.Server.HTTPPort = port
			}
			return runServe(cmd.Context(), a)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default: server.http_port from config)")
	return cmd
}

func runServe(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	srv := router.New(a.logger, *a.cfg)
	addr := a.cfg.Server.Addr()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", "addr", addr)
		errCh <- srv.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	if err := srv.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return err
	}
	return <-errCh
}
