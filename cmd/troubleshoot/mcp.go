package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
	"github.com/voltcraft/troubleshoot/pkg/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the wizard as MCP tools so AI agents can run a troubleshooting session.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		engine, err := cli.NewEngine(cfg, logger)
		if err != nil {
			return err
		}
		sessions, closeStore, err := cli.NewSessions(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(engine, sessions, logger)

		switch transport {
		case "stdio":
			logger.Info("Starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			addr := fmt.Sprintf(":%d", port)
			return srv.ServeSSE(ctx, addr, fmt.Sprintf("http://localhost:%d", port))
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
}
