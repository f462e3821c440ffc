// Package jwt mints and validates HS256 session tokens.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iudanet/rolekeeper/internal/models"
)

// MinKeyLength минимальная длина ключа подписи HS256 в байтах
const MinKeyLength = 32

// ErrInvalidToken is returned by Validate for any token that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Config содержит конфигурацию выпуска токенов
type Config struct {
	Key      []byte
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Claims represents session token claims
type Claims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
	UID   int64    `json:"uid"`
	jwtlib.RegisteredClaims
}

// Username returns the subject, which carries the username.
func (c *Claims) Username() string {
	return c.Subject
}

// HasRole reports whether name is among the role claims.
func (c *Claims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Issuer creates and validates session tokens
type Issuer struct {
	now func() time.Time
	cfg Config
}

// NewIssuer creates a new token issuer
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Key) < MinKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d bytes, got %d", MinKeyLength, len(cfg.Key))
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", cfg.TTL)
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

// WithClock replaces the time source, for tests
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

// CreateSessionToken mints a signed token for user and returns it with its expiry.
func (i *Issuer) CreateSessionToken(user *models.User) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, fmt.Errorf("user is nil")
	}

	now := i.now()
	expiresAt := now.Add(i.cfg.TTL)

	claims := Claims{
		Email: user.Email,
		Roles: user.RoleNames(),
		UID:   user.ID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Audience:  jwtlib.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.cfg.Key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	// exp в токене хранится с точностью до секунды
	return signed, claims.ExpiresAt.Time, nil
}

// Validate parses token and checks signature, algorithm, issuer, audience and expiry.
func (i *Issuer) Validate(token string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwtlib.ParseWithClaims(token, claims,
		func(t *jwtlib.Token) (any, error) {
			// Проверяем что используется правильный алгоритм подписи
			if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.cfg.Key, nil
		},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(i.cfg.Issuer),
		jwtlib.WithAudience(i.cfg.Audience),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

