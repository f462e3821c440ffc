package storage

import (
	"context"
	"time"
)

// SessionStorage хранит текущую сессию клиента
type SessionStorage interface {
	// SaveSession replaces the stored session
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns ErrSessionNotFound if nobody is logged in
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout)
	DeleteSession(ctx context.Context) error
}

// Session is the locally cached result of a login or refresh.
type Session struct {
	TokenExpiresAt        time.Time `json:"token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	Server                string    `json:"server"`
	Username              string    `json:"username"`
	Email                 string    `json:"email"`
	Token                 string    `json:"token"`
	RefreshToken          string    `json:"refresh_token"`
	Roles                 []string  `json:"roles"`
}

// TokenValid reports whether the session token is still usable at now.
func (s *Session) TokenValid(now time.Time) bool {
	return s.Token != "" && now.Before(s.TokenExpiresAt)
}

// RefreshValid reports whether the refresh token can still be exchanged at now.
func (s *Session) RefreshValid(now time.Time) bool {
	return s.RefreshToken != "" && now.Before(s.RefreshTokenExpiresAt)
}
