package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(cli func() *Cli) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runLogin(cmd.Context(), username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted if empty)")
	return cmd
}

func (c *Cli) runLogin(ctx context.Context, username string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.inputOrPrompt(username, "Username: ")
	if err != nil {
		return err
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, username, password)
	if err != nil {
		return err
	}

	now := c.now()
	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Roles: %s\n", strings.Join(session.Roles, ", "))
	c.io.Printf("Session token expires: %s\n", formatExpiry(now, session.TokenExpiresAt))
	c.io.Printf("Refresh token expires: %s\n", formatExpiry(now, session.RefreshTokenExpiresAt))
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
