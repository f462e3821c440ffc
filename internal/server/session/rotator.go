package session

import (
	"fmt"
	"time"

	"github.com/iudanet/rolekeeper/internal/crypto"
	"github.com/iudanet/rolekeeper/internal/models"
)

const (
	// DefaultRefreshTokenTTL время жизни refresh токена по умолчанию
	DefaultRefreshTokenTTL = 10 * time.Minute

	refreshTokenBytes = 32
)

// Rotator creates refresh tokens and performs single-use rotation.
// It only mutates the user passed in; persistence is up to the caller.
type Rotator struct {
	now func() time.Time
	ttl time.Duration
}

// NewRotator creates a rotator. Non-positive ttl falls back to DefaultRefreshTokenTTL.
func NewRotator(ttl time.Duration, now func() time.Time) *Rotator {
	if ttl <= 0 {
		ttl = DefaultRefreshTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Rotator{ttl: ttl, now: now}
}

// TTL returns the configured refresh token lifetime.
func (r *Rotator) TTL() time.Duration {
	return r.ttl
}

// Create returns a fresh, unpersisted refresh token.
func (r *Rotator) Create() (*models.RefreshToken, error) {
	value, err := crypto.RandomBase64(refreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := r.now()
	return &models.RefreshToken{
		Token:     value,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}, nil
}

// Rotate revokes presented on user and appends a replacement, which it returns.
func (r *Rotator) Rotate(user *models.User, presented string) (*models.RefreshToken, error) {
	current := user.FindRefreshToken(presented)
	if current == nil {
		return nil, ErrRefreshTokenNotFound
	}

	now := r.now()
	if !current.IsActive(now) {
		return nil, ErrRefreshTokenInactive
	}

	replacement, err := r.Create()
	if err != nil {
		return nil, err
	}
	replacement.UserID = user.ID

	current.RevokedAt = &now
	user.RefreshTokens = append(user.RefreshTokens, *replacement)

	return replacement, nil
}
