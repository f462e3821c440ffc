package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

const tokenColumns = `id, user_id, token, created_at, expires_at, revoked_at`

// GetUserByRefreshToken retrieves owner of the refresh token
func (s *Storage) GetUserByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	var userID int64
	err := s.pool.QueryRow(ctx, `SELECT user_id FROM refresh_tokens WHERE token = $1`, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	user, err := loadUser(ctx, s.pool, `WHERE id = $1`, userID)
	if errors.Is(err, storage.ErrUserNotFound) {
		return nil, storage.ErrTokenNotFound
	}
	return user, err
}

// GetOrCreateActiveRefreshToken returns the active token of the user or stores candidate.
// The user row is locked for the duration of the transaction, so concurrent logins of
// the same user observe each other's token.
func (s *Storage) GetOrCreateActiveRefreshToken(ctx context.Context, userID int64, now time.Time, candidate *models.RefreshToken) (*models.RefreshToken, bool, error) {
	var (
		result  *models.RefreshToken
		created bool
	)

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user: %w", err)
		}

		row := tx.QueryRow(ctx, `SELECT `+tokenColumns+`
			FROM refresh_tokens
			WHERE user_id = $1 AND revoked_at IS NULL AND expires_at > $2
			ORDER BY created_at, id
			LIMIT 1`, userID, now)
		active, err := scanToken(row)
		switch {
		case err == nil:
			result = active
			return nil
		case !errors.Is(err, pgx.ErrNoRows):
			return fmt.Errorf("failed to get active refresh token: %w", err)
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
	return s.withTx(ctx, func(tx pgx.Tx) error {
		var userID int64
		err := tx.QueryRow(ctx, `SELECT user_id FROM refresh_tokens WHERE token = $1`, presented).Scan(&userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return storage.ErrTokenNotFound
			}
			return fmt.Errorf("failed to get refresh token: %w", err)
		}

		// compare-and-set: конкурирующий UPDATE дождется блокировки строки и увидит revoked_at
		tag, err := tx.Exec(ctx, `UPDATE refresh_tokens SET revoked_at = $1
			WHERE token = $2 AND revoked_at IS NULL AND expires_at > $1`, now, presented)
		if err != nil {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrTokenInactive
		}

		replacement.UserID = userID
		return insertToken(ctx, tx, replacement)
	})
}

func insertToken(ctx context.Context, q querier, token *models.RefreshToken) error {
	err := q.QueryRow(ctx, `INSERT INTO refresh_tokens (user_id, token, created_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		token.UserID, token.Token, token.CreatedAt, token.ExpiresAt, token.RevokedAt,
	).Scan(&token.ID)
	if err != nil {
		return fmt.Errorf("failed to insert refresh token: %w", err)
	}
	return nil
}

func userTokens(ctx context.Context, q querier, userID int64) ([]models.RefreshToken, error) {
	rows, err := q.Query(ctx, `SELECT `+tokenColumns+`
		FROM refresh_tokens
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user tokens: %w", err)
	}
	defer rows.Close()

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

func scanToken(row pgx.Row) (*models.RefreshToken, error) {
	var (
		token     models.RefreshToken
		revokedAt pgtype.Timestamptz
	)
	if err := row.Scan(&token.ID, &token.UserID, &token.Token, &token.CreatedAt, &token.ExpiresAt, &revokedAt); err != nil {
		return nil, err
	}
	if revokedAt.Valid {
		t := revokedAt.Time
		token.RevokedAt = &t
	}
	return &token, nil
}
