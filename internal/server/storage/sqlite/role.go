package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

// GetRoleByName retrieves role by name, case-insensitively
func (s *Storage) GetRoleByName(ctx context.Context, name string) (*models.Role, error) {
	return getRole(ctx, s.db, `WHERE name = ? COLLATE NOCASE`, name)
}

// AddUserRole assigns role to user. Existing assignment is left untouched.
func (s *Storage) AddUserRole(ctx context.Context, userID int64, roleID models.RoleID) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO user_roles (user_id, role_id, assigned_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, role_id) DO NOTHING`,
		userID, int64(roleID), toMillis(time.Now()),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, s.danglingRoleRef(ctx, userID)
		}
		return false, fmt.Errorf("failed to assign role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows > 0, nil
}

// danglingRoleRef определяет, какая из ссылок не существует
func (s *Storage) danglingRoleRef(ctx context.Context, userID int64) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	return storage.ErrRoleNotFound
}

func getRole(ctx context.Context, q querier, where string, arg any) (*models.Role, error) {
	role := &models.Role{}
	var id int64

	err := q.QueryRowContext(ctx, `SELECT id, name FROM roles `+where, arg).Scan(&id, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	role.ID = models.RoleID(id)

	return role, nil
}

func userRoles(ctx context.Context, q querier, userID int64) ([]models.Role, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT r.id, r.name
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ?
		ORDER BY ur.assigned_at, r.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

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
