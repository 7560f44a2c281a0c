package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/handik/internal/logging"
	"github.com/aretw0/handik/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "handik",
	Short: "handik arbitrates which input device drives each avatar hand",
	Long: `handik runs the hand-target state machine of an avatar: keyboard, mouse,
gamepad, MIDI and image tracking compete for each hand, and handik blends
between them. It can serve a live engine over HTTP or MCP, or replay scripted
scenarios offline.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a handik.yaml config file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// loadConfig reads --config and applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.Config, string, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, path, logging.New(level), nil
}
