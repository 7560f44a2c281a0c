package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/handik/internal/cli"
	"github.com/aretw0/handik/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the engine and serve it over HTTP",
	Long: `Starts the frame loop and an HTTP API for input injection, state inspection,
mode changes and profile snapshots. The config file and the motions folder are
watched and reloaded while running. The profile snapshot is saved on shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		services, err := cli.Build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer services.Close()

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(os.Stderr)
		}
		return cli.Serve(ctx, services, path)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address, overriding http.addr")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
