package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrRoleNotFound indicates that role was not found
	ErrRoleNotFound = errors.New("role not found")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrTokenInactive indicates that refresh token is revoked or expired
	ErrTokenInactive = errors.New("refresh token is not active")
)
