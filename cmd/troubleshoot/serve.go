package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
	httpAdapter "github.com/voltcraft/troubleshoot/pkg/adapters/http"
	"github.com/voltcraft/troubleshoot/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Serves the wizard as a JSON API with sessions, Mermaid graphs, Server-Sent Events and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}

		metrics := observability.NewMetrics()
		engine, err := cli.NewEngine(cfg, logger, metrics.Hooks())
		if err != nil {
			return err
		}
		sessions, closeStore, err := cli.NewSessions(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		api, err := httpAdapter.NewServer(engine, sessions,
			httpAdapter.WithMetrics(metrics),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithCORSOrigin(cfg.CORSOrigin),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Addr,
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", srv.Addr, "categories", len(engine.Categories()))
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				return srv.Close()
			}
			logger.Info("server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
