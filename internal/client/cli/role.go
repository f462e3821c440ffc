package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newAddRoleCmd(cli func() *Cli) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "add-role ROLE",
		Short: "Assign a role to a user (requires the user's password)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli().runAddRole(cmd.Context(), username, args[0])
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted if empty)")
	return cmd
}

func (c *Cli) runAddRole(ctx context.Context, username, role string) error {
	username, err := c.inputOrPrompt(username, "Username: ")
	if err != nil {
		return err
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	result, err := c.authService.AddRole(ctx, username, password, role)
	if err != nil {
		return err
	}

	if result.Added {
		c.io.Println("✓ " + result.Message)
	} else {
		c.io.Printf("User %s already has role %s.\n", username, result.Role)
	}
	c.io.Println("Log in again to get a token with the new role.")
	return nil
}
