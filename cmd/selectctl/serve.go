package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/bothellselect/select-client/interfaces/http/echo/handlers"
	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if addr == "" {
				addr = a.cfg.HTTPAddr
			}

			displayAppname(cmd, a.cfg.ServiceName)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := handlers.NewServer(handlers.Config{
				ServiceName:   a.cfg.ServiceName,
				SecureCookies: a.cfg.IsProduction(),
			}, a.api, a.store)

			go server.RunSessionChecks(ctx, a.cfg.SessionCheckInterval)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("server.Shutdown: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default HTTP_ADDR)")
	return cmd
}

func displayAppname(cmd *cobra.Command, appname string) {
	banner := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(cmd.OutOrStdout(), banner.String())
}
