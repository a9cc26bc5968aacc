package main

import (
	"context"
	"fmt"

	"github.com/aretw0/nfa/internal/cli"
	"github.com/aretw0/nfa/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [file]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the automaton to AI agents as MCP tools (accepts_word, trace_word, step)
and the nfa://automaton resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, g, err := loadEngine(cmd, args)
		if err != nil {
			return err
		}
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		s := mcp.NewServer(eng, mcp.WithLogger(cli.NewLogger(g.Debug)))

		switch transport {
		case "stdio":
			return s.ServeStdio()
		case "sse":
			ctx := cli.NewSignalContext(context.Background())
			defer ctx.Cancel()
			return s.ServeSSE(ctx, port)
		default:
			return fmt.Errorf("unknown transport %q (use stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport to use: stdio or sse")
	mcpCmd.Flags().Int("port", 8081, "Port for the sse transport")
}
