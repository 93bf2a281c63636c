// ABOUTME: CLI command for exporting server data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/export"
	"github.com/harperreed/wellness/internal/models"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your data",
	Long: `Export your workouts, meals, mood entries and profile.

FORMATS:

  json       Full JSON export (suitable for backup)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

EXAMPLES:

  wellness export json                        # Export all data as JSON
  wellness export json -o backup.json         # Save to file
  wellness export markdown --since 2024-01-01 # Only entries from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		if format != "json" && format != "yaml" && format != "markdown" {
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		var since models.Date
		if exportSince != "" {
			d, err := models.ParseDate(exportSince)
			if err != nil {
				return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
			}
			since = d
		}

		snap, err := export.Collect(cmd.Context(), layer, time.Now())
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		snap = snap.Since(since)

		var out []byte
		switch format {
		case "json":
			out, err = snap.JSON()
		case "yaml":
			out, err = snap.YAML()
		case "markdown":
			out = []byte(snap.Markdown())
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, out, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			success(cmd, "Exported to %s", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include entries on or after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(exportCmd)
}
