package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newRefreshCmd(cli func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the saved refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runRefresh(cmd.Context())
		},
	}
}

func (c *Cli) runRefresh(ctx context.Context) error {
	session, err := c.authService.Refresh(ctx)
	if err != nil {
		return err
	}

	now := c.now()
	c.io.Println("✓ Tokens refreshed")
	c.io.Printf("Session token expires: %s\n", formatExpiry(now, session.TokenExpiresAt))
	c.io.Printf("Refresh token expires: %s\n", formatExpiry(now, session.RefreshTokenExpiresAt))
	return nil
}
