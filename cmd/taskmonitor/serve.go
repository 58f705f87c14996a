package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	transporthttp "github.com/wrfweb/taskmonitor/internal/transport/http"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser bundle and proxy task routes to the task service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log := opts.cfg, opts.log

			app := transporthttp.NewApp(transporthttp.RouterConfig{
				Logger: log,
				Config: cfg,
			})

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				sig := <-quit
				log.Infow("received shutdown signal", "signal", sig.String())
				if err := app.Shutdown(); err != nil {
					log.Errorw("server shutdown failed", "error", err)
				}
			}()

			addr := cfg.Server.Address()
			log.Infow("dev_server_listening",
				"addr", addr,
				"static_dir", cfg.Server.StaticDir,
				"upstream", cfg.Server.Upstream,
			)
			if err := app.Listen(addr); err != nil {
				return err
			}
			log.Info("server stopped gracefully")
			return nil
		},
	}

	f := cmd.Flags()
	f.String("addr-host", "", "listen host (overrides server.host)")
	f.Int("port", 0, "listen port (overrides server.port)")
	f.String("static", "", "static directory (overrides server.static_dir)")
	f.String("upstream", "", "task service URL to proxy to (overrides server.upstream)")

	return cmd
}
