// ABOUTME: CLI commands for signing in and out.
// ABOUTME: login, register, logout and whoami over the session store.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/wellness/internal/models"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authConfirm  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the wellness API",
	Long: `Sign in and store the session locally.

Missing values are prompted for. The password is hidden when typed on a terminal.

Examples:
  wellness login --email ada@example.com
  echo "secret123" | wellness login --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)
		creds := models.Credentials{Email: authEmail, Password: authPassword}

		var err error
		if creds.Email == "" {
			if creds.Email, err = p.ask("Email"); err != nil {
				return err
			}
		}
		if creds.Password == "" {
			if creds.Password, err = p.secret("Password"); err != nil {
				return err
			}
		}

		user, err := layer.Login(cmd.Context(), creds)
		if err != nil {
			return err
		}
		success(cmd, "Signed in as %s <%s>", user.Name, user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Long: `Create an account on the wellness API and sign in with it.

The password must be at least 6 characters and is asked for twice.

Examples:
  wellness register --name Ada --email ada@example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrompter(cmd)
		reg := models.Registration{
			Name:            authName,
			Email:           authEmail,
			Password:        authPassword,
			ConfirmPassword: authConfirm,
		}

		var err error
		if reg.Name == "" {
			if reg.Name, err = p.ask("Name"); err != nil {
				return err
			}
		}
		if reg.Email == "" {
			if reg.Email, err = p.ask("Email"); err != nil {
				return err
			}
		}
		if reg.Password == "" {
			if reg.Password, err = p.secret("Password"); err != nil {
				return err
			}
		}
		if reg.ConfirmPassword == "" {
			if reg.ConfirmPassword, err = p.secret("Confirm password"); err != nil {
				return err
			}
		}

		user, err := layer.Register(cmd.Context(), reg)
		if err != nil {
			return err
		}
		success(cmd, "Welcome, %s! Signed in as %s", user.Name, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := layer.Logout(); err != nil {
			return fmt.Errorf("failed to sign out: %w", err)
		}
		success(cmd, "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Long: `Show the signed-in user as reported by the API, plus session expiry.

Use --offline to print the stored session without contacting the server.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		sess, err := layer.Session().Require()
		if err != nil {
			return err
		}

		user := &sess.User
		if offline, _ := cmd.Flags().GetBool("offline"); !offline {
			if user, err = layer.Me(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load account: %w", err)
			}
		}

		fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
		faint := color.New(color.Faint)
		faint.Fprintf(out, "  id       %s\n", user.ID)
		faint.Fprintf(out, "  api      %s\n", cfg.GetAPIURL())
		if sess.ExpiresAt != nil {
			faint.Fprintf(out, "  expires  %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&authEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "account password (prompted when empty)")

	registerCmd.Flags().StringVar(&authName, "name", "", "display name")
	registerCmd.Flags().StringVarP(&authEmail, "email", "e", "", "account email")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password, at least 6 characters (prompted when empty)")
	registerCmd.Flags().StringVar(&authConfirm, "confirm", "", "repeat the password (prompted when empty)")

	whoamiCmd.Flags().Bool("offline", false, "show the stored session without calling the API")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
