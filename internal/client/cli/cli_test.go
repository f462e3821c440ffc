package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/rolekeeper/internal/client/iocli"
)

func TestReadPassword_FromEnvVar(t *testing.T) {
	t.Setenv(PasswordEnv, "test_env_password_123")

	mockIO := &iocli.IOMock{}
	cli := &Cli{io: mockIO, passwordFile: "/does/not/matter"}

	password, err := cli.readPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "test_env_password_123", password)
	assert.Empty(t, mockIO.ReadPasswordCalls(), "prompt не нужен")
	assert.False(t, cli.interactivePassword())
}

func TestReadPassword_FromFile(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte("test_file_password_456\n"), 0600))

	cli := &Cli{io: &iocli.IOMock{}, passwordFile: path}
	password, err := cli.readPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "test_file_password_456", password)
}

func TestReadPassword_FileErrors(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0600))

	for name, path := range map[string]string{
		"missing file": filepath.Join(t.TempDir(), "missing.txt"),
		"empty file":   empty,
	} {
		t.Run(name, func(t *testing.T) {
			cli := &Cli{io: &iocli.IOMock{}, passwordFile: path}
			_, err := cli.readPassword("Password: ")
			assert.Error(t, err)
		})
	}
}

func TestReadPassword_Interactive(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	mockIO := &iocli.IOMock{
		ReadPasswordFunc: func(prompt string) (string, error) { return "typed-password", nil },
	}
	cli := &Cli{io: mockIO}
	assert.True(t, cli.interactivePassword())

	password, err := cli.readPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "typed-password", password)
	require.Len(t, mockIO.ReadPasswordCalls(), 1)
	assert.Equal(t, "Password: ", mockIO.ReadPasswordCalls()[0].Prompt)

	mockIO.ReadPasswordFunc = func(string) (string, error) { return "", nil }
	_, err = cli.readPassword("Password: ")
	assert.Error(t, err)

	mockIO.ReadPasswordFunc = func(string) (string, error) { return "", errors.New("tty closed") }
	_, err = cli.readPassword("Password: ")
	assert.ErrorContains(t, err, "tty closed")
}

func TestInputOrPrompt(t *testing.T) {
	mockIO := &iocli.IOMock{
		ReadInputFunc: func(prompt string) (string, error) { return "  typed  ", nil },
	}
	cli := &Cli{io: mockIO}

	v, err := cli.inputOrPrompt("given", "Username: ")
	require.NoError(t, err)
	assert.Equal(t, "given", v)
	assert.Empty(t, mockIO.ReadInputCalls())

	v, err = cli.inputOrPrompt("", "Username: ")
	require.NoError(t, err)
	assert.Equal(t, "typed", v)
}

func TestFormatExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "unknown", formatExpiry(now, time.Time{}))
	assert.True(t, strings.HasSuffix(formatExpiry(now, now.Add(90*time.Second)), "(in 1m30s)"))
	assert.True(t, strings.HasSuffix(formatExpiry(now, now.Add(-time.Second)), "(expired)"))
}
