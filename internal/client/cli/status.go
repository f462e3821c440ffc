package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/rolekeeper/internal/client/auth"
)

func newStatusCmd(cli func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the locally saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	session, err := c.authService.Session(ctx)
	if errors.Is(err, auth.ErrNotAuthenticated) {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'rolekeeper login' to authenticate.")
		return nil
	}
	if err != nil {
		return err
	}

	now := c.now()
	switch {
	case session.TokenValid(now):
		c.io.Println("Status: Authenticated")
	case session.RefreshValid(now):
		c.io.Println("Status: Session token expired, run 'rolekeeper refresh'")
	default:
		c.io.Println("⚠️  Session has expired. Please login again.")
	}

	c.io.Printf("Server: %s\n", session.Server)
	c.io.Printf("Username: %s\n", session.Username)
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Printf("Roles: %s\n", strings.Join(session.Roles, ", "))
	c.io.Printf("Session token expires: %s\n", formatExpiry(now, session.TokenExpiresAt))
	c.io.Printf("Refresh token expires: %s\n", formatExpiry(now, session.RefreshTokenExpiresAt))

	return nil
}
