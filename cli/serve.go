package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ankit-chaubey/fileprops/core/logging"
	"github.com/ankit-chaubey/fileprops/core/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API on a local address",
		Long: `Start an HTTP server exposing inspect, strip and background batch jobs.
Destructive requests must carry "confirm": true.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(a.registry, a.runner, a.journal, a.logger)

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Start(addr) }()
			a.printer.PrintInfo("listening on http://" + addr)

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			a.logger.Info(context.Background(), "shutting down", logging.Fields{"addr": addr})
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:8765)")
	return cmd
}
