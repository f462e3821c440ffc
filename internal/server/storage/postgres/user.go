package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

// CreateUser creates a new user and attaches the default role
func (s *Storage) CreateUser(ctx context.Context, user *models.User, defaultRole models.RoleID) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
			user.Username, user.Email, user.PasswordHash, user.CreatedAt,
		).Scan(&id)
		if err != nil {
			if isUniqueViolation(err) {
				return storage.ErrUserAlreadyExists
			}
			return fmt.Errorf("failed to insert user: %w", err)
		}

		role, err := getRole(ctx, tx, `WHERE id = $1`, int64(defaultRole))
		if err != nil {
			return fmt.Errorf("failed to resolve default role: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id, assigned_at) VALUES ($1, $2, $3)`,
			id, int64(role.ID), user.CreatedAt,
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
	return loadUser(ctx, s.pool, `WHERE LOWER(username) = LOWER($1)`, username)
}

// GetUserByID retrieves user by ID
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	return loadUser(ctx, s.pool, `WHERE id = $1`, userID)
}

// DeleteUser deletes user by ID
func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}

func loadUser(ctx context.Context, q querier, where string, arg any) (*models.User, error) {
	user := &models.User{}

	err := q.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users `+where,
		arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.Roles, err = userRoles(ctx, q, user.ID); err != nil {
		return nil, err
	}
	if user.RefreshTokens, err = userTokens(ctx, q, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}
