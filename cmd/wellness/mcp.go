// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server backed by the same data layer as the CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/mcp"
)

var mcpMetricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and uses your saved session, so
run 'wellness login' first.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "wellness": {
        "command": "wellness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_workouts, add_workout, delete_workout
  list_meals, add_meal, delete_meal, daily_macros
  add_mood, list_moods
  get_dashboard, get_progress

AVAILABLE RESOURCES:

  wellness://dashboard   Totals, progress and weekly training
  wellness://today       Today's workouts, meals, moods and macros

With --metrics-addr the query cache counters are served for Prometheus
at http://ADDR/metrics while the server runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(layer, version)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if mcpMetricsAddr != "" {
			stop := serveMetrics(ctx, mcpMetricsAddr)
			defer stop()
		}
		return server.Serve(ctx)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.AddCommand(mcpCmd)
}
