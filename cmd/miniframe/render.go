package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/todo"
	"github.com/vango-dev/miniframe/pkg/dom/memdom"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		hash string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo app to HTML",
		Long: `Mount the demo app into an in-memory host page and print the mount
point's HTML.

With --out, the whole host page is written to <dir>/index.html instead,
ready for publish.

Examples:
  miniframe render
  miniframe render --hash completed
  miniframe render --out dist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(func(c *config.Config) {
				if cmd.Flags().Changed("hash") {
					c.Router.InitialHash = hash
				}
			})
			if err != nil {
				return err
			}

			doc := memdom.New(cfg.Mount.RootID)
			if cfg.Router.InitialHash != "" {
				doc.SetHash(cfg.Router.InitialHash)
			}
			if _, err := todo.Start(miniframe.Options{
				Document:     doc,
				RootID:       cfg.Mount.RootID,
				DefaultRoute: cfg.Router.DefaultRoute,
				Logger:       logger,
			}); err != nil {
				return errors.FromError(err, "")
			}

			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), memdom.InnerHTML(doc.GetElementByID(cfg.Mount.RootID)))
				return nil
			}

			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			path := filepath.Join(out, "index.html")
			page := "<!DOCTYPE html>\n" + doc.DocumentHTML() + "\n"
			if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
				return err
			}
			success(cmd, "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", "", "Initial location fragment (default from miniframe.json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the host page to this directory")

	return cmd
}
