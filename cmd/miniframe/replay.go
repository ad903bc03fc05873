package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/scenario"
)

func replayCmd(g *globals) *cobra.Command {
	var (
		update bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay scripted interactions against the demo app",
		Long: `Run each scenario script against a fresh instance of the demo app and
check its expectations.

The final mount point HTML of each script is printed unless --quiet is set;
quiet runs report each failure on one line.
With --update, golden HTML files are rewritten instead of compared.

Examples:
  miniframe replay testdata/add_item.yaml
  miniframe replay --update testdata/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.setup(nil)
			if err != nil {
				return err
			}

			failed := 0
			for _, path := range args {
				s, err := scenario.Load(path)
				if err != nil {
					return err
				}
				res, err := scenario.Run(s, scenario.Options{
					RootID:       cfg.Mount.RootID,
					DefaultRoute: cfg.Router.DefaultRoute,
					Update:       update,
					Logger:       logger,
				})
				if err != nil {
					return err
				}

				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
				}
				if res.Passed() {
					success(cmd, "%s", s.Name)
					continue
				}
				failed++
				for _, f := range res.Failures {
					if quiet {
						errors.FprintCompact(cmd.ErrOrStderr(), f)
					} else {
						errors.Fprint(cmd.ErrOrStderr(), f)
					}
				}
			}

			if failed > 0 {
				return errors.New(errors.CodeScenarioFailed).
					WithDetail(fmt.Sprintf("%d of %d scenarios failed", failed, len(args)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&update, "update", "u", false, "Rewrite golden files")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the final HTML")

	return cmd
}
