package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type registerOptions struct {
	username string
	email    string
}

func newRegisterCmd(cli func() *Cli) *cobra.Command {
	opts := &registerOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cli().runRegister(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "username (prompted if empty)")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "email (prompted if empty)")
	return cmd
}

func (c *Cli) runRegister(ctx context.Context, opts *registerOptions) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.inputOrPrompt(opts.username, "Username: ")
	if err != nil {
		return err
	}
	email, err := c.inputOrPrompt(opts.email, "Email: ")
	if err != nil {
		return err
	}

	password, err := c.readPassword("Password (min 8 chars): ")
	if err != nil {
		return err
	}

	// Подтверждение пароля только при вводе с терминала
	if c.interactivePassword() {
		confirm, err := c.readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	c.io.Println()
	c.io.Println("Registering user...")

	result, err := c.authService.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ " + result.Message)
	c.io.Printf("User ID: %d\n", result.UserID)
	c.io.Printf("Username: %s\n", result.Username)
	c.io.Println()
	c.io.Println("Please run 'rolekeeper login' to start a session.")

	return nil
}
