package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wrfweb/taskmonitor/internal/config"
	"github.com/wrfweb/taskmonitor/internal/infrastructure/logger"
)

const Version = "0.1.0"

// flagBindings maps command line flags onto config keys. Flags only
// override when set explicitly.
var flagBindings = map[string]string{
	"base-url":  "api.base_url",
	"log-level": "logger.level",
	"interval":  "poller.interval",
	"addr-host": "server.host",
	"port":      "server.port",
	"static":    "server.static_dir",
	"upstream":  "server.upstream",
}

type rootOptions struct {
	configPath string
	cfg        *config.Config
	log        *logger.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// alertedError marks a failure that has already been shown to the user.
type alertedError struct {
	err error
}

func (e *alertedError) Error() string { return e.err.Error() }

func (e *alertedError) Unwrap() error { return e.err }

func reportError(w io.Writer, err error) {
	var alerted *alertedError
	if errors.As(err, &alerted) {
		return
	}
	fmt.Fprintln(w, err)
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "taskmonitor",
		Short:         "Start, check and watch background tasks of the WRF web platform",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(opts.configPath)
			if err != nil {
				return err
			}
			for flag, key := range flagBindings {
				f := cmd.Flags().Lookup(flag)
				if f == nil {
					continue
				}
				if err := v.BindPFlag(key, f); err != nil {
					return err
				}
			}

			cfg, err := config.Decode(v)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			opts.cfg, opts.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "path to config file")
	pf.String("base-url", "", "task service base URL (overrides api.base_url)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newCheckCommand(opts),
		newRunCommand(opts),
		newWatchCommand(opts),
		newServeCommand(opts),
	)
	return root
}
