// Package cli реализует команды клиента RoleKeeper.
package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iudanet/rolekeeper/internal/client/auth"
	"github.com/iudanet/rolekeeper/internal/client/iocli"
)

// PasswordEnv переменная окружения с паролем для неинтерактивного запуска
const PasswordEnv = "ROLEKEEPER_PASSWORD"

// Cli выполняет команды поверх auth.Service
type Cli struct {
	io           iocli.IO
	authService  auth.Service
	now          func() time.Time
	passwordFile string
}

// New создает Cli
func New(io iocli.IO, authService auth.Service) *Cli {
	return &Cli{
		io:          io,
		authService: authService,
		now:         time.Now,
	}
}

// readPassword reads a password from various sources with priority:
// 1. Environment variable ROLEKEEPER_PASSWORD
// 2. File set by --password-file
// 3. Interactive prompt (fallback)
func (c *Cli) readPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwordFile != "" {
		content, err := os.ReadFile(c.passwordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// interactivePassword сообщает, будет ли пароль запрошен с терминала
func (c *Cli) interactivePassword() bool {
	return os.Getenv(PasswordEnv) == "" && c.passwordFile == ""
}

// inputOrPrompt возвращает value, а если оно пустое, запрашивает его у пользователя
func (c *Cli) inputOrPrompt(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

func formatExpiry(now, at time.Time) string {
	if at.IsZero() {
		return "unknown"
	}
	remaining := at.Sub(now)
	if remaining <= 0 {
		return fmt.Sprintf("%s (expired)", at.Local().Format(time.RFC3339))
	}
	return fmt.Sprintf("%s (in %s)", at.Local().Format(time.RFC3339), remaining.Round(time.Second))
}
