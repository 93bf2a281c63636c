// ABOUTME: CLI commands for reading and writing the config file.
// ABOUTME: show prints effective values with their source; set validates before saving.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/config"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show or change settings",
	Annotations: map[string]string{noDataLayer: "true"},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Long: `Show the effective settings after applying the config file,
.env and WELLNESS_* environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout, err := cfg.GetRequestTimeout()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "%s %s\n", padRight("config", 16), faint.Sprint(config.GetConfigPath()))
		fmt.Fprintf(out, "%s %s\n", padRight("api_url", 16), cfg.GetAPIURL())
		fmt.Fprintf(out, "%s %s\n", padRight("backend", 16), cfg.GetBackend())
		fmt.Fprintf(out, "%s %s\n", padRight("data_dir", 16), cfg.GetDataDir())
		if timeout == 0 {
			fmt.Fprintf(out, "%s %s\n", padRight("request_timeout", 16), faint.Sprint("none"))
		} else {
			fmt.Fprintf(out, "%s %s\n", padRight("request_timeout", 16), timeout)
		}
		fmt.Fprintf(out, "%s %s\n", padRight("log_level", 16), cfg.GetLogLevel())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Save a setting to the config file",
	Long: `Save a setting to the config file. An empty value restores the default.

KEYS:

  api_url           API root, e.g. https://wellness.example.com
  backend           sqlite, badger or charm
  data_dir          where the local session store lives
  request_timeout   per-request timeout, e.g. 10s (empty for none)
  log_level         debug, info, warn or error

Examples:
  wellness config set api_url http://localhost:5000
  wellness config set request_timeout 15s
  wellness config set backend ""`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		value, _ := fileCfg.Get(args[0])
		if value == "" {
			success(cmd, "Reset %s to default", args[0])
		} else {
			success(cmd, "Set %s = %s", args[0], value)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
