package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newWhoAmICmd(cli func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Ask the server who owns the current session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runWhoAmI(cmd.Context())
		},
	}
}

func (c *Cli) runWhoAmI(ctx context.Context) error {
	me, err := c.authService.WhoAmI(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("User ID: %d\n", me.UserID)
	c.io.Printf("Username: %s\n", me.Username)
	c.io.Printf("Email: %s\n", me.Email)
	c.io.Printf("Roles: %s\n", strings.Join(me.Roles, ", "))
	c.io.Printf("Token expires: %s\n", formatExpiry(c.now(), me.ExpiresAt))
	return nil
}

func newUserCmd(cli func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "user USERNAME",
		Short: "Show another user's profile (Administrator role required)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli().runUser(cmd.Context(), args[0])
		},
	}
}

func (c *Cli) runUser(ctx context.Context, username string) error {
	user, err := c.authService.User(ctx, username)
	if err != nil {
		return err
	}

	c.io.Printf("User ID: %d\n", user.UserID)
	c.io.Printf("Username: %s\n", user.Username)
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Printf("Roles: %s\n", strings.Join(user.Roles, ", "))
	c.io.Printf("Registered: %s\n", user.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
