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

// GetUserByRefreshToken retrieves owner of the refresh token
func (s *Storage) GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	var userID int64
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM refresh_tokens WHERE token = ?`, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	user, err := loadUser(ctx, s.db, `WHERE id = ?`, userID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, storage.ErrTokenNotFound
	}
	return user, err
}

// GetOrCreateActiveRefreshToken returns the active token of the user or stores candidate
func (s *Storage) GetOrCreateActiveRefreshToken(ctx context.Context, userID int64, now time.Time, candidate *models.RefreshToken) (*models.RefreshToken, bool, error) {
	var (
		result  *models.RefreshToken
		created bool
	)

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		active, err := activeToken(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if active != nil {
			result = active
			return nil
		}

		candidate.UserID = userID
		if err := insertToken(ctx, tx, candidate); err != nil {
			return err
		}
		result, created = candidate, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return result, created, nil
}

// RotateRefreshToken revokes the presented token and stores its replacement
func (s *Storage) RotateRefreshToken(ctx context.Context, presented string, now time.Time, replacement *models.RefreshToken) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var userID int64
		err := tx.QueryRowContext(ctx, `SELECT user_id FROM refresh_tokens WHERE token = ?`, presented).Scan(&userID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get refresh token: %w", err)
		}

		// compare-and-set: отзываем только пока токен активен
		result, err := tx.ExecContext(ctx, `
			UPDATE refresh_tokens SET revoked_at = ?
			WHERE token = ? AND revoked_at IS NULL AND expires_at > ?
		`, toMillis(now), presented, toMillis(now))
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return storage.ErrTokenInactive
		}

		replacement.UserID = userID
		return insertToken(ctx, tx, replacement)
	})
}

func activeToken(ctx context.Context, q querier, userID int64, now time.Time) (*models.RefreshToken, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, token, created_at, expires_at, revoked_at
		FROM refresh_tokens
		WHERE user_id = ? AND revoked_at IS NULL AND expires_at > ?
		ORDER BY created_at, id
		LIMIT 1
	`, userID, toMillis(now))

	token, err := scanToken(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active refresh token: %w", err)
	}

	return token, nil
}

func insertToken(ctx context.Context, q querier, token *models.RefreshToken) error {
	var revokedAt sql.NullInt64
	if token.RevokedAt != nil {
		revokedAt = sql.NullInt64{Int64: toMillis(*token.RevokedAt), Valid: true}
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token, created_at, expires_at, revoked_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		token.UserID,
		token.Token,
		toMillis(token.CreatedAt),
		toMillis(token.ExpiresAt),
		revokedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get refresh token id: %w", err)
	}
	token.ID = id

	return nil
}

func userTokens(ctx context.Context, q querier, userID int64) ([]models.RefreshToken, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, user_id, token, created_at, expires_at, revoked_at
		FROM refresh_tokens
		WHERE user_id = ?
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tokens: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	tokens := []models.RefreshToken{}
	for rows.Next() {
		token, err := scanToken(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, *token)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tokens, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanToken(row scanner) (*models.RefreshToken, error) {
	var (
		token                models.RefreshToken
		createdAt, expiresAt int64
		revokedAt            sql.NullInt64
	)
	if err := row.Scan(&token.ID, &token.UserID, &token.Token, &createdAt, &expiresAt, &revokedAt); err != nil {
		return nil, err
	}

	token.CreatedAt = fromMillis(createdAt)
	token.ExpiresAt = fromMillis(expiresAt)
	if revokedAt.Valid {
		t := fromMillis(revokedAt.Int64)
		token.RevokedAt = &t
	}

	return &token, nil
}
