package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/go-txsigner/internal/api"
	"github/chapool/go-txsigner/internal/api/router"
	"github/chapool/go-txsigner/internal/config"
	"github/chapool/go-txsigner/internal/util/command"
)

const shutdownTimeout = 30 * time.Second

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the server",
		Long: `Starts the stateless RESTful JSON signing server

Requires configuration through ENV
and a mnemonic or private keys to sign with.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg := config.DefaultServiceConfigFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		if err := router.Init(s); err != nil {
			return err
		}

		errs := make(chan error, 1)
		go func() {
			log.Info().Str("listenAddress", cfg.Echo.ListenAddress).Msg("Starting server")
			if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
			close(errs)
		}()

		select {
		case err := <-errs:
			if err != nil {
				log.Error().Err(err).Msg("Failed to start server")
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
			log.Error().Errs("shutdownErrors", errs).Msg("Failed to gracefully shut down server")
		}

		return nil
	})
}
