package models

import (
	"strings"
	"time"
)

// User представляет пользователя в системе
type User struct {
	CreatedAt     time.Time      `json:"created_at"`
	Username      string         `json:"username"`      // уникальный username (без учета регистра)
	Email         string         `json:"email"`         // контактный email
	PasswordHash  string         `json:"-"`             // argon2id хеш в формате PHC
	Roles         []Role         `json:"roles"`         // назначенные роли
	RefreshTokens []RefreshToken `json:"-"`             // история refresh токенов по времени создания
	ID            int64          `json:"id"`            // числовой ID, назначается хранилищем
}

// HasRole reports whether the user holds a role with the given name.
// Names are compared case-insensitively.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if strings.EqualFold(r.Name, name) {
			return true
		}
	}
	return false
}

// RoleNames returns the names of all assigned roles in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// ActiveRefreshToken returns the first token that is active at now, or nil.
func (u *User) ActiveRefreshToken(now time.Time) *RefreshToken {
	for i := range u.RefreshTokens {
		if u.RefreshTokens[i].IsActive(now) {
			return &u.RefreshTokens[i]
		}
	}
	return nil
}

// FindRefreshToken returns the token with the given value, or nil.
func (u *User) FindRefreshToken(token string) *RefreshToken {
	for i := range u.RefreshTokens {
		if u.RefreshTokens[i].Token == token {
			return &u.RefreshTokens[i]
		}
	}
	return nil
}
