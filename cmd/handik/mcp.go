package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/handik/internal/cli"
	"github.com/aretw0/handik/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the engine as an MCP server, so agents can read the hand state, change
modes and send input as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		services, err := cli.Build(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer services.Close()

		if _, err := services.StartLoop(ctx, path); err != nil {
			return err
		}
		defer func() {
			services.Runner.Stop()
			if err := services.SaveProfile(cmd.Context()); err != nil {
				logger.Error("save snapshot", "profile", cfg.Profile, "error", err)
			}
		}()

		srv := mcp.NewServer(services.Runner, mcp.WithStore(services.Store), mcp.WithLogger(logger))
		switch transport {
		case "stdio":
			// Keep stray log output off the JSON-RPC stream.
			log.SetOutput(os.Stderr)
			logger.Info("Starting handik MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			return srv.ServeSSE(ctx, addr)
		}
		return fmt.Errorf("unknown transport %q", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().StringP("addr", "a", "localhost:8081", "Listen address for the sse transport")
}
