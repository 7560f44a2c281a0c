package main

import (
	"fmt"

	"github.com/aretw0/handik/internal/cli"
	"github.com/aretw0/handik/pkg/scenario"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <path> <scenario>",
	Short: "Export the hand transitions of a scenario as a Mermaid graph",
	Long:  `Replays one scenario and outputs a Mermaid diagram (graph LR) of the target changes of each hand.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := cli.OpenScenarios(args[0])
		if err != nil {
			return err
		}
		names, err := cli.SelectScenarios(cmd.Context(), loader, args[1:])
		if err != nil {
			return err
		}

		s, err := loader.Load(cmd.Context(), names[0])
		if err != nil {
			return err
		}
		res, err := scenario.Run(cmd.Context(), s)
		if err != nil {
			return err
		}

		fmt.Print(cli.TransitionGraph(res))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
