package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kazifarms/hr-assistant/internal/metrics"
	"github.com/kazifarms/hr-assistant/internal/server"
)

var serveFlags struct {
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "listen port (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()
	metrics.Register()

	port := a.cfg.HTTP.Port
	if serveFlags.port != 0 {
		port = serveFlags.port
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.New(a.svc, a.memory, a.checks, a.log).Router(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout(),
		WriteTimeout: a.cfg.HTTP.WriteTimeout(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.log.Info("Starting HTTP server",
			zap.String("addr", srv.Addr),
			zap.String("variant", string(a.pipe.Variant())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	a.log.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Error during shutdown", zap.Error(err))
	}
	a.log.Info("Server stopped gracefully")
	return nil
}
