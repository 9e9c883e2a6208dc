package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/phpdocbook/docbook/internal/config"
	"github.com/phpdocbook/docbook/internal/logging"
	"github.com/phpdocbook/docbook/internal/terminal"
	"github.com/phpdocbook/docbook/internal/ui"
	"github.com/phpdocbook/docbook/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	logFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}
	cmd := &cobra.Command{
		Use:   "docbook",
		Short: "PHP DocBook - terminal documentation viewer",
		Long: `PHP DocBook is an interactive terminal viewer for the PHP manual.

Configuration is read from $DOCBOOK_CONFIG_DIR/config.toml, or from
docbook/config.toml under the user config directory, unless --config is given.

Press q, Esc or Ctrl+C to quit.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.SetVersionTemplate(version.Current() + "\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a config file (must exist)")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file (overrides [log] file)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides [log] level)")
	return cmd
}

func run(ctx context.Context, opts rootOptions) (err error) {
	cfg, configPath, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}

	logFile, logLevel := cfg.Log.File, cfg.Log.Level
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	if opts.logLevel != "" {
		logLevel = opts.logLevel
	}
	closeLog, err := logging.Setup(logFile, logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	if configPath != "" {
		logging.Infof("loaded config from %s", configPath)
	}

	model, err := ui.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	term := terminal.Open(ctx)
	defer func() {
		if closeErr := term.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := model.Run(ctx, term); err != nil {
		logging.Errorf("run failed: %v", err)
		return err
	}
	return nil
}
