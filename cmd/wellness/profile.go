// ABOUTME: CLI commands for the user profile.
// ABOUTME: show prints body metrics and goals; update changes only the flags given.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/models"
)

var (
	profileName   string
	profileEmail  string
	profileAge    int
	profileHeight float64
	profileWeight float64
	profileGoal   string
	profileGender string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := layer.Profile(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		printProfile(cmd, p)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	Long: `Update your profile. Only the flags you pass are changed.

GOALS:   lose_weight, maintain, gain_muscle, improve_fitness
GENDER:  male, female, other

Examples:
  wellness profile update --age 36 --height 170 --weight 61.5
  wellness profile update --goal gain_muscle`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		current, err := layer.Profile(ctx)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		p := *current
		flags := cmd.Flags()
		if flags.Changed("name") {
			p.Name = profileName
		}
		if flags.Changed("email") {
			p.Email = strings.TrimSpace(profileEmail)
		}
		if flags.Changed("age") {
			p.Age = profileAge
		}
		if flags.Changed("height") {
			p.HeightCM = profileHeight
		}
		if flags.Changed("weight") {
			p.WeightKG = profileWeight
		}
		if flags.Changed("goal") {
			p.Goal = models.Goal(strings.ToLower(profileGoal))
		}
		if flags.Changed("gender") {
			p.Gender = models.Gender(strings.ToLower(profileGender))
		}

		updated, err := layer.UpdateProfile(ctx, &p)
		if err != nil {
			return err
		}
		success(cmd, "Profile updated")
		printProfile(cmd, updated)
		return nil
	},
}

func printProfile(cmd *cobra.Command, p *models.UserProfile) {
	out := cmd.OutOrStdout()
	faint := color.New(color.Faint)
	row := func(label, value string) {
		if value == "" || value == "0" {
			value = faint.Sprint("-")
		}
		fmt.Fprintf(out, "  %s %s\n", padRight(label, 8), value)
	}

	fmt.Fprintf(out, "%s <%s>\n", p.Name, p.Email)
	row("Age", fmt.Sprint(p.Age))
	row("Height", formatUnit(p.HeightCM, "cm"))
	row("Weight", formatUnit(p.WeightKG, "kg"))
	row("Goal", strings.ReplaceAll(string(p.Goal), "_", " "))
	row("Gender", string(p.Gender))
}

func formatUnit(v float64, unit string) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.1f %s", v, unit)
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "display name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "email address")
	profileUpdateCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileUpdateCmd.Flags().Float64Var(&profileHeight, "height", 0, "height in cm")
	profileUpdateCmd.Flags().Float64Var(&profileWeight, "weight", 0, "weight in kg")
	profileUpdateCmd.Flags().StringVar(&profileGoal, "goal", "", "lose_weight, maintain, gain_muscle or improve_fitness")
	profileUpdateCmd.Flags().StringVar(&profileGender, "gender", "", "male, female or other")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
