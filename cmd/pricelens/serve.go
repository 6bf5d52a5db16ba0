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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpDelivery "github.com/pricelens/backend/internal/delivery/http"
)

const shutdownTimeout = 15 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "override server.port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Server.Port = servePort
	}

	log := newLogger(cfg, os.Stdout)
	log.Info().
		Str("version", httpDelivery.Version).
		Str("environment", cfg.Server.Environment).
		Str("catalog", cfg.Catalog.Type).
		Str("cache", cfg.Cache.Type).
		Msg("starting pricelens")

	// SIGTERM is what container runtimes send before killing the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.reloader != nil {
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		defer signal.Stop(hup)
		go watchReload(ctx, hup, a.reloader, log)
	}

	handler := httpDelivery.NewHandler(a.agent, log)
	router := httpDelivery.SetupRouter(cfg, handler, log, a.metrics)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// watchReload reloads the catalog on every signal until ctx is done. A failed
// reload keeps the previous snapshot.
func watchReload(ctx context.Context, signals <-chan os.Signal, r catalogReloader, log zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if err := r.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("catalog reload failed")
				continue
			}
			log.Info().Msg("catalog reloaded")
		}
	}
}
