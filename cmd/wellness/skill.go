// ABOUTME: Install Claude Code skill for wellness.
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/.
package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var skillSkipConfirm bool

var installSkillCmd = &cobra.Command{
	Use:   "install-skill",
	Short: "Install Claude Code skill",
	Long: `Install the wellness skill for Claude Code.

This copies the skill definition to ~/.claude/skills/wellness/
so Claude Code knows when to call the wellness MCP tools.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noDataLayer: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(cmd, home)
	},
}

func installSkill(cmd *cobra.Command, home string) error {
	out := cmd.OutOrStdout()
	skillDir := filepath.Join(home, ".claude", "skills", "wellness")
	skillPath := filepath.Join(skillDir, "SKILL.md")

	fmt.Fprintln(out, "This will install the wellness skill, enabling Claude Code to:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "  • Log workouts, meals and mood")
	fmt.Fprintln(out, "  • Read daily macros and weekly training")
	fmt.Fprintln(out, "  • Summarize your progress and personal records")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Destination:\n  %s\n\n", skillPath)

	if _, err := os.Stat(skillPath); err == nil {
		fmt.Fprintln(out, "Note: A skill file already exists and will be overwritten.")
		fmt.Fprintln(out)
	}

	if !skillSkipConfirm {
		answer, err := newPrompter(cmd).ask("Install the wellness skill? [y/N]")
		if err != nil {
			return err
		}
		answer = strings.ToLower(answer)
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Installation canceled.")
			return nil
		}
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}
	if err := os.MkdirAll(skillDir, 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(skillPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	success(cmd, "Installed wellness skill")
	fmt.Fprintln(out, "Run 'wellness mcp' from Claude Code's MCP settings to enable the tools.")
	return nil
}

func init() {
	installSkillCmd.Flags().BoolVarP(&skillSkipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(installSkillCmd)
}
