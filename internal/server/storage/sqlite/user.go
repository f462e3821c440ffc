package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

// CreateUser creates a new user and attaches the default role
func (s *Storage) CreateUser(ctx context.Context, user *models.User, defaultRole models.RoleID) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
			user.Username,
			user.Email,
			user.PasswordHash,
			toMillis(user.CreatedAt),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get user id: %w", err)
		}

		role, err := getRole(ctx, tx, `WHERE id = ?`, int64(defaultRole))
		if err != nil {
			return fmt.Errorf("failed to resolve default role: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role_id, assigned_at) VALUES (?, ?, ?)`,
			id, int64(role.ID), toMillis(user.CreatedAt),
		); err != nil {
			return fmt.Errorf("failed to assign default role: %w", err)
		}

		user.ID = id
		user.Roles = []models.Role{*role}
		return nil
	})
}

// GetUserByUsername retrieves user by username
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return loadUser(ctx, s.db, `WHERE username = ? COLLATE NOCASE`, username)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return loadUser(ctx, s.db, `WHERE id = ?`, userID)
}

// DeleteUser deletes user by ID. Role links and tokens go with it via ON DELETE CASCADE.
func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

func loadUser(ctx context.Context, q querier, where string, arg any) (*models.User, error) {
	user := &models.User{}
	var createdAt int64

	err := q.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users `+where,
		arg,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)

	if user.Roles, err = userRoles(ctx, q, user.ID); err != nil {
		return nil, err
	}
	if user.RefreshTokens, err = userTokens(ctx, q, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}
