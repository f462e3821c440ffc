package session

import (
	"errors"
	"fmt"
)

// RegisteredMessage is the confirmation returned by Register.
func RegisteredMessage(username string) string {
	return fmt.Sprintf("User %s has been registered successfully.", username)
}

// RoleAssignedMessage is the confirmation returned by AddRole.
func RoleAssignedMessage(username, role string) string {
	return fmt.Sprintf("User %s has been assigned to role %s.", username, role)
}

// FailureMessage renders a user-facing message for a session error.
// Unknown errors get a generic message so storage details never leak.
func FailureMessage(err error, username, role string) string {
	switch {
	case errors.Is(err, ErrAlreadyRegistered):
		return fmt.Sprintf("User %s already registered.", username)
	case errors.Is(err, ErrUserNotFound):
		return fmt.Sprintf("User %s not found.", username)
	case errors.Is(err, ErrInvalidCredentials):
		return fmt.Sprintf("Incorrect credentials for user %s.", username)
	case errors.Is(err, ErrRoleNotFound):
		return fmt.Sprintf("Role %s was not found.", role)
	case errors.Is(err, ErrRefreshTokenNotFound):
		return "Token is not assigned to any user."
	case errors.Is(err, ErrRefreshTokenInactive):
		return "Token is not active."
	}
	return "Internal server error."
}
