package main

import (
	"fmt"

	"github.com/aretw0/handik"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of handik",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("handik version %s\n", handik.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
