package storage

import (
	"context"
	"time"

	"github.com/iudanet/rolekeeper/internal/models"
)

// UserStorage defines interface for user data persistence.
// Usernames are matched case-insensitively.
type UserStorage interface {
	// CreateUser inserts the user and attaches defaultRole in one transaction.
	// On success user.ID and user.Roles are filled in.
	// Returns ErrUserAlreadyExists on a username conflict.
	CreateUser(ctx context.Context, user *models.User, defaultRole models.RoleID) error

	// GetUserByUsername retrieves user with roles and refresh tokens.
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user with roles and refresh tokens.
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// DeleteUser deletes user together with role links and refresh tokens.
	// Returns ErrUserNotFound if user doesn't exist
	DeleteUser(ctx context.Context, userID int64) error
}

// RoleStorage defines interface for roles and role assignment.
type RoleStorage interface {
	// GetRoleByName returns ErrRoleNotFound if no role matches name.
	GetRoleByName(ctx context.Context, name string) (*models.Role, error)

	// AddUserRole links role to user. Reports false when the link already existed.
	// Returns ErrUserNotFound or ErrRoleNotFound for dangling references.
	AddUserRole(ctx context.Context, userID int64, roleID models.RoleID) (bool, error)
}

// TokenStorage defines interface for refresh token persistence
type TokenStorage interface {
	// GetUserByRefreshToken retrieves the owner of token with roles and tokens loaded.
	// Returns ErrTokenNotFound if no user owns the token
	GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error)

	// GetOrCreateActiveRefreshToken atomically returns the user's token that is
	// active at now, or stores candidate when there is none.
	// The bool result reports whether candidate was stored.
	GetOrCreateActiveRefreshToken(ctx context.Context, userID int64, now time.Time, candidate *models.RefreshToken) (*models.RefreshToken, bool, error)

	// RotateRefreshToken revokes presented at now and stores replacement in one
	// transaction. The revoke only succeeds while presented is still active, so
	// of two concurrent rotations exactly one wins.
	// Returns ErrTokenNotFound or ErrTokenInactive.
	RotateRefreshToken(ctx context.Context, presented string, now time.Time, replacement *models.RefreshToken) error
}

// CredentialStore is the full persistence contract of the auth service.
type CredentialStore interface {
	UserStorage
	RoleStorage
	TokenStorage

	// Ping checks that the backing database is reachable
	Ping(ctx context.Context) error
	// Close releases the underlying connections
	Close() error
}
