package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"go_mdconv/internal/api"
)

func newServeCommand(g *globalFlags, streams Streams) *cobra.Command {
	s := &settings{globalFlags: g}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Long: `Serve exposes the converter over HTTP:

  GET  /health    liveness check
  POST /convert   HTML body (or JSON {"html": ..., "style": {...}}) to Markdown
  POST /sections  the same input split into heading sections

The style flags and the config file set the default style; a JSON request
may carry its own.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, s)
			if err != nil {
				return err
			}
			log := newLogger(streams.Err, cfg)
			srv, err := api.NewServer(cfg, log)
			if err != nil {
				return usageError(err)
			}

			httpServer := &http.Server{
				Addr:         cfg.ListenAddr(),
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()
			log.Info("starting go_mdconv", "addr", httpServer.Addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				log.Info("shutting down...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}
	fs := cmd.Flags()
	addStyleFlags(fs, s)
	fs.StringVar(&s.style.Addr, "addr", "", "Listen address (default :8080)")
	return cmd
}
