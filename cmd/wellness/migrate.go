// ABOUTME: CLI command for moving the stored session between local backends.
// ABOUTME: Copies the token and user, then points the config at the new backend.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/config"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/session"
)

var (
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Move your session to another storage backend",
	Long: `Copy the stored session from the current backend to another one and
make it the configured backend, so you stay signed in.

BACKENDS:

  sqlite   ~/.local/share/wellness/wellness.db
  badger   ~/.local/share/wellness/badger
  charm    Charm Cloud KV, synced across linked devices

USAGE:

  wellness migrate --to charm --dry-run   # Preview what would be copied
  wellness migrate --to charm             # Copy and switch

The old backend keeps its copy. Run 'wellness logout' before migrating
if you want it cleared.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noDataLayer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		from := cfg.GetBackend()
		if migrateTo == "" {
			return fmt.Errorf("--to is required (sqlite, badger or charm)")
		}
		if migrateTo == from {
			return fmt.Errorf("session is already stored in %s", from)
		}
		fileCfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := fileCfg.Set("backend", migrateTo); err != nil {
			return err
		}

		src, err := cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("open %s store: %w", from, err)
		}
		defer func() { _ = src.Close() }()

		out := cmd.OutOrStdout()
		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			sess, ok := session.New(src).Current()
			if !ok {
				fmt.Fprintf(out, "No session stored in %s.\n", from)
				return nil
			}
			fmt.Fprintf(out, "Would copy the session for %s <%s> from %s to %s.\n",
				sess.User.Name, sess.User.Email, from, migrateTo)
			return nil
		}

		dst, err := cfg.WithBackend(migrateTo).OpenStore()
		if err != nil {
			return fmt.Errorf("open %s store: %w", migrateTo, err)
		}
		defer func() { _ = dst.Close() }()

		n, err := localstore.Copy(dst, src, session.Keys()...)
		if err != nil {
			return fmt.Errorf("copy session: %w", err)
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		success(cmd, "Copied %d keys from %s to %s", n, from, migrateTo)
		if n == 0 {
			warn(cmd, "No session was stored in %s. Run 'wellness login' to sign in.", from)
		}
		fmt.Fprintf(out, "Backend is now %s.\n", migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite, badger or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
