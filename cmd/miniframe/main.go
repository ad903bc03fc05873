package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals holds the persistent flags shared by every command.
type globals struct {
	configDir string
	logLevel  string
	logFormat string
	noColor   bool
}

func main() {
	g := &globals{}
	if err := newCommand(g).Execute(); err != nil {
		g.printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newCommand(&globals{})
}

func newCommand(g *globals) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "miniframe",
		Short: "Render, replay and preview the miniframe demo app",
		Long: `miniframe drives the to-do demo built on the miniframe UI framework.

It can render the demo to HTML, replay scripted interactions against it,
serve it to a browser over a WebSocket and publish a static bundle to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				errors.DisableColors()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.configDir, "config", "c", ".", "Directory containing miniframe.json")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from miniframe.json)")
	flags.StringVar(&g.logFormat, "log-format", "", "Log format: text or json (default from miniframe.json)")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored error output")

	rootCmd.AddCommand(
		renderCmd(g),
		replayCmd(g),
		previewCmd(g),
		publishCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// setup reads miniframe.json, applies the logging flags and then override,
// validates the result and builds the logger.
func (g *globals) setup(override func(*config.Config)) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadOrDefault(g.configDir)
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	if override != nil {
		override(cfg)
	}
	g.logFormat = cfg.Log.Format
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, errors.New(errors.CodeConfigInvalid).Wrap(err)
	}
	return cfg, logging.New(level, cfg.Log.Format), nil
}

// printError writes err to w, as a JSON line when logs are JSON.
func (g *globals) printError(w io.Writer, err error) {
	if logging.IsJSON(g.logFormat) {
		errors.FprintJSON(w, err)
		return
	}
	errors.Fprint(w, err)
}

// success prints a success message.
func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
