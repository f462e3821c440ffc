package models

import "time"

// RefreshToken представляет refresh token пользователя.
// Токен никогда не удаляется отдельно от пользователя, меняется только RevokedAt.
type RefreshToken struct {
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	Token     string     `json:"token"`   // base64 от 32 случайных байт
	ID        int64      `json:"id"`      // назначается хранилищем
	UserID    int64      `json:"user_id"` // владелец токена
}

// IsExpired reports whether the token has reached its expiry at now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsActive reports whether the token is neither revoked nor expired at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && !t.IsExpired(now)
}
