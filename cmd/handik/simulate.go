package main

import (
	"fmt"
	"os"

	"github.com/aretw0/handik/internal/cli"
	"github.com/aretw0/handik/pkg/motion"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [path] [scenario...]",
	Short: "Replay scripted scenarios offline",
	Long: `Replays scenarios on a simulated clock and reports the hand transitions and
expectation failures. The path is a scenario YAML file or a folder of scenario
documents; it defaults to the configured scenarios path. Without names every
scenario in the folder is replayed. The command fails when an expectation does
not hold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, names := cfg.Scenarios, []string(nil)
		if len(args) > 0 {
			path, names = args[0], args[1:]
		}
		if path == "" {
			return fmt.Errorf("no scenario path given and none configured")
		}

		loader, err := cli.OpenScenarios(path)
		if err != nil {
			return err
		}

		opts := cli.SimulateOptions{Names: names, Logger: logger}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Graph, _ = cmd.Flags().GetBool("graph")
		if cfg.Motions.Dir != "" {
			repo := motion.NewRepository(cfg.Motions.Dir, motion.WithRepositoryLogger(logger))
			if err := repo.Load(); err != nil {
				return err
			}
			opts.Motions = repo
		}

		passed, err := cli.Simulate(cmd.Context(), os.Stdout, loader, opts)
		if err != nil {
			return err
		}
		if !passed {
			return fmt.Errorf("expectations failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Bool("json", false, "Print the results as JSON")
	simulateCmd.Flags().Bool("graph", false, "Append a Mermaid transition graph to each report")
}
