// ABOUTME: CLI command that runs the in-memory wellness backend.
// ABOUTME: Useful for trying the CLI and MCP server without a real API.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/fakeapi"
)

var (
	mockAddr        string
	mockOrigins     string
	mockSecret      string
	mockMetricsAddr string
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run an in-memory wellness API",
	Long: `Run an in-memory implementation of the wellness REST API.

Data lives only as long as the process. Point the CLI at it with
--api-url or WELLNESS_API_URL (the default http://localhost:5000 matches
the default --addr).

Examples:
  wellness mock-server
  wellness mock-server --addr :8080 --origins http://localhost:3000`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noDataLayer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := []fakeapi.Option{fakeapi.WithLogger(logger)}
		if origins := splitList(mockOrigins); len(origins) > 0 {
			opts = append(opts, fakeapi.WithAllowedOrigins(origins...))
		}
		if mockSecret != "" {
			opts = append(opts, fakeapi.WithSecret(mockSecret))
		}

		ctx := cmd.Context()
		if mockMetricsAddr != "" {
			stop := serveMetrics(ctx, mockMetricsAddr)
			defer stop()
		}

		logger.Info("mock API listening", "addr", mockAddr)
		return fakeapi.New(opts...).ListenAndServe(ctx, mockAddr)
	},
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", ":5000", "listen address")
	mockServerCmd.Flags().StringVar(&mockOrigins, "origins", "", "comma-separated CORS origins (default any)")
	mockServerCmd.Flags().StringVar(&mockSecret, "secret", "", "token signing secret (default random per run)")
	mockServerCmd.Flags().StringVar(&mockMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	rootCmd.AddCommand(mockServerCmd)
}
