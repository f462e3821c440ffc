package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

// GetRoleByName retrieves role by name, case-insensitively
func (s *Storage) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return getRole(ctx, s.pool, `WHERE LOWER(name) = LOWER($1)`, name)
}

// AddUserRole assigns role to user. Existing assignment is left untouched.
func (s *Storage) AddUserRole(ctx context.Context, userID int64, roleID models.RoleID) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT (user_id, role_id) DO NOTHING`,
		userID, int64(roleID),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, s.danglingRoleRef(ctx, userID)
		}
		return false, fmt.Errorf("failed to assign role: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *Storage) danglingRoleRef(ctx context.Context, userID int64) error {
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return storage.ErrUserNotFound
	}
	return storage.ErrRoleNotFound
}

func getRole(ctx context.Context, q querier, where string, arg any) (*models.Role, error) {
	var (
		id   int64
		name string
	)

	err := q.QueryRow(ctx, `SELECT id, name FROM roles `+where, arg).Scan(&id, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &models.Role{ID: models.RoleID(id), Name: name}, nil
}

func userRoles(ctx context.Context, q querier, userID int64) ([]models.Role, error) {
	rows, err := q.Query(ctx, `
		SELECT r.id, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = $1
		ORDER BY ur.assigned_at, r.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, models.Role{ID: models.RoleID(id), Name: name})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return roles, nil
}
