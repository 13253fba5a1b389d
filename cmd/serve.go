package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Tenakskd/ytserver-v2/internal/provider"
	"github.com/Tenakskd/ytserver-v2/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP relay",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func init() {
	serveCmd.Flags().StringVarP(&flagListen, "listen", "l", "", "Listen address (default :3000)")
}

func serveRun(cmd *cobra.Command, args []string) error {
	providers, err := provider.FromConfig(cfg, provider.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("building providers: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := server.New(providers, logger, Version).Handler()
	logger.WithField("listen", cfg.Listen).Info("server starting")

	err = server.ListenAndServe(ctx, cfg.Listen, h)
	if errors.Is(err, context.Canceled) {
		logger.Info("server stopped")
		return nil
	}
	return err
}
