package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLogoutCmd(cli func() *Cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Delete the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runLogout(cmd.Context())
		},
	}
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	if err := c.authService.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	c.io.Println("Your local session has been deleted.")

	return nil
}
