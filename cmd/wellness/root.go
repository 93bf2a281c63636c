// ABOUTME: Root Cobra command for wellness CLI.
// ABOUTME: Wires config, local store, session, API client, query cache and data layer per run.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/api"
	"github.com/harperreed/wellness/internal/config"
	"github.com/harperreed/wellness/internal/data"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/query"
	"github.com/harperreed/wellness/internal/resources"
	"github.com/harperreed/wellness/internal/session"
)

var version = "dev"

// noDataLayer marks commands that run without a local store or API client.
const noDataLayer = "wellness/no-data-layer"

var (
	cfg    *config.Config
	logger *log.Logger
	store  localstore.Store
	cache  *query.Client
	layer  *data.Layer

	verbose    bool
	apiURLFlag string
)

var rootCmd = &cobra.Command{
	Use:     "wellness",
	Short:   "Workouts, meals and mood from the terminal",
	Version: version,
	Long: `Wellness is a CLI client for a personal fitness and wellness tracker.

It talks to the wellness REST API, keeps a query cache for the duration of
each command, and stores your session locally.

QUICK START:

  $ wellness mock-server &                                  # Local backend on :5000
  $ wellness register --name Ada --email ada@example.com    # Create an account
  $ wellness workout add "Bench Press" --muscle Chest --sets 4 --reps 10 --weight 80
  $ wellness meal add Oatmeal --type breakfast --calories 350 --protein 12
  $ wellness mood add good --energy 7
  $ wellness dashboard

CONFIGURATION:

  Settings live in $XDG_CONFIG_HOME/wellness/config.json and can be
  overridden with WELLNESS_API_URL, WELLNESS_BACKEND, WELLNESS_DATA_DIR,
  WELLNESS_REQUEST_TIMEOUT and WELLNESS_LOG_LEVEL (also read from .env).

  $ wellness config set api_url https://wellness.example.com
  $ wellness config show

SESSION STORAGE:

  sqlite (default)  ~/.local/share/wellness/wellness.db
  badger            ~/.local/share/wellness/badger
  charm             Charm Cloud KV, E2E encrypted and synced across devices

MCP INTEGRATION:

  Run 'wellness mcp' to expose your data to Claude Desktop or other
  MCP-compatible assistants.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if skipsDataLayer(cmd) {
			return nil
		}
		return openDataLayer(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func loadConfig() error {
	if err := config.LoadDotEnv(""); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	fileCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = fileCfg.WithEnv()
	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}

	logger = log.New(os.Stderr)
	logger.SetPrefix("wellness")
	logger.SetLevel(cfg.GetLogLevel())
	if verbose {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}
	return nil
}

func skipsDataLayer(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noDataLayer] == "true" {
			return true
		}
	}
	return false
}

func openDataLayer(cmd *cobra.Command) error {
	timeout, err := cfg.GetRequestTimeout()
	if err != nil {
		return err
	}

	store, err = cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.GetBackend(), err)
	}
	logger.Debug("opened local store", "backend", cfg.GetBackend(), "dir", cfg.GetDataDir())

	sess := session.New(store)
	client := api.New(cfg.GetAPIURL(),
		api.WithTimeout(timeout),
		api.WithLogger(logger),
		api.WithTokenSource(sess),
	)
	cache = query.New(query.WithLogger(logger), query.WithContext(cmd.Context()))
	layer = data.New(resources.New(client), cache, sess)
	return nil
}

// teardown closes whatever the last command opened. Safe to call twice.
func teardown() error {
	if cache != nil {
		cache.Close()
		cache = nil
	}
	layer = nil
	if store != nil {
		err := store.Close()
		store = nil
		return err
	}
	return nil
}

// release is teardown for the error path, where PersistentPostRunE does not
// run. A failed store close is logged rather than lost.
func release() {
	if err := teardown(); err != nil {
		l := logger
		if l == nil {
			l = log.Default()
		}
		l.Warn("failed to close local store", "err", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "API root (overrides config and WELLNESS_API_URL)")
}
