// ABOUTME: CLI commands for the Charm session backend.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/config"
	"github.com/harperreed/wellness/internal/localstore"
	"github.com/harperreed/wellness/internal/session"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Share your session across devices with Charm",
	Long: `Keep your wellness session in Charm Cloud so every linked device is signed in.

The session is E2E encrypted with your SSH key before upload.
Select the backend with 'wellness config set backend charm', or move an
existing session with 'wellness migrate --to charm'.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show Charm account and session info
  repair      Repair local KV corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local KV data and restore from cloud (destructive)
  wipe        Delete cloud and local KV data (destructive)`,
	Annotations: map[string]string{noDataLayer: "true"},
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		success(cmd, "Device linked to Charm")
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm(cmd, "unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		success(cmd, "Device unlinked from Charm")
		fmt.Fprintln(cmd.OutOrStdout(), "Sessions in the sqlite and badger backends are not affected.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show Charm account and session info",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		id, err := localstore.CharmID()
		if err != nil {
			warn(cmd, "Not linked to Charm")
			fmt.Fprintln(out, "Run 'wellness sync link' to connect to Charm.")
			return nil
		}
		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Backend: ", cfg.GetBackend())

		kvStore, err := localstore.OpenCharm(config.CharmDatabase)
		if err != nil {
			return err
		}
		defer func() { _ = kvStore.Close() }()

		if kvStore.IsReadOnly() {
			warn(cmd, "Database is locked by another process (MCP server?)")
		}
		if sess, ok := session.New(kvStore).Current(); ok {
			color.New(color.FgGreen).Fprintf(out, "✓ Session for %s <%s>\n", sess.User.Name, sess.User.Email)
		} else {
			fmt.Fprintln(out, "No session stored in Charm.")
		}
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair local KV corruption",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Repairing wellness KV database...")
		result, err := kv.Repair(config.CharmDatabase, force)
		check := func(ok bool, label string) {
			if ok {
				color.New(color.FgGreen).Fprintf(out, "  ✓ %s\n", label)
			}
		}
		check(result.WalCheckpointed, "WAL checkpointed")
		check(result.ShmRemoved, "SHM file removed")
		check(result.IntegrityOK, "Integrity check passed")
		check(result.Vacuumed, "Database vacuumed")
		if !result.IntegrityOK {
			color.New(color.FgRed).Fprintln(out, "  ✗ Integrity check failed")
		}
		if err != nil {
			if !force {
				warn(cmd, "Run with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		success(cmd, "Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset local KV data and restore from cloud",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "This will DELETE the local Charm copy of your session and restore it from cloud.")
		ok, err := confirm(cmd, "Continue? [y/N]", "y")
		if err != nil || !ok {
			return err
		}
		if err := kv.Reset(config.CharmDatabase); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		success(cmd, "Local data reset and restored from cloud")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete cloud and local KV data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "This will PERMANENTLY DELETE the cloud and local Charm copies of your session.")
		ok, err := confirm(cmd, "Type 'wipe' to confirm", "wipe")
		if err != nil || !ok {
			return err
		}
		result, err := kv.Wipe(config.CharmDatabase)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		success(cmd, "Data wiped")
		fmt.Fprintf(cmd.OutOrStdout(), "  Cloud backups deleted: %d\n  Local files deleted: %d\n",
			result.CloudBackupsDeleted, result.LocalFilesDeleted)
		return nil
	},
}

// confirm asks label and reports whether the answer equals want, ignoring case.
func confirm(cmd *cobra.Command, label, want string) (bool, error) {
	answer, err := newPrompter(cmd).ask(label)
	if err != nil {
		return false, err
	}
	if !strings.EqualFold(answer, want) {
		fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
		return false, nil
	}
	return true, nil
}

func runCharm(cmd *cobra.Command, args ...string) error {
	c := exec.CommandContext(cmd.Context(), "charm", args...)
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
