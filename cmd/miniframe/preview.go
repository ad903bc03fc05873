package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/internal/preview"
)

func previewCmd(g *globals) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Serve the demo app to a browser",
		Long: `Start the preview server. Each browser tab gets its own instance of the
demo app, running in the server and streamed to the page over a WebSocket.

The server runs until interrupted.

Examples:
  miniframe preview
  miniframe preview --port=8080
  miniframe preview --host=0.0.0.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(func(c *config.Config) {
				if port > 0 {
					c.Preview.Port = port
				}
				if host != "" {
					c.Preview.Host = host
				}
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := preview.New(preview.Options{Config: cfg, Logger: logger})
			success(cmd, "Preview at %s", cfg.PreviewURL())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from miniframe.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from miniframe.json)")

	return cmd
}
