package main

import (
	"fmt"

	"github.com/aretw0/handik/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check the config and the scenarios",
	Long:  `Loads the config file and parses every scenario under path, reporting the first invalid one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, _, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.Scenarios
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			fmt.Println("Config is valid! ✅")
			return nil
		}

		loader, err := cli.OpenScenarios(path)
		if err != nil {
			return err
		}
		names, err := cli.SelectScenarios(cmd.Context(), loader, nil)
		if err != nil {
			return err
		}
		for _, name := range names {
			if _, err := loader.Load(cmd.Context(), name); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
		}
		fmt.Printf("Config and %d scenarios are valid! ✅\n", len(names))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
