// Package api содержит типы запросов и ответов HTTP API
package api

import "time"

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse возвращается логином и обновлением токенов.
// При отказе заполнены только IsAuthenticated=false и Message.
type AuthResponse struct {
	TokenExpiresAt         *time.Time `json:"token_expires_at,omitempty"`
	RefreshTokenExpiration *time.Time `json:"refresh_token_expiration,omitempty"`
	Message                string     `json:"message,omitempty"`
	Username               string     `json:"username,omitempty"`
	Email                  string     `json:"email,omitempty"`
	Token                  string     `json:"token,omitempty"`
	RefreshToken           string     `json:"refresh_token,omitempty"`
	Roles                  []string   `json:"roles,omitempty"`
	IsAuthenticated        bool       `json:"is_authenticated"`
}

// AddRoleRequest представляет запрос на назначение роли
type AddRoleRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AddRoleResponse представляет результат назначения роли
type AddRoleResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Added   bool   `json:"added"`
}

// MeResponse описывает владельца session токена
type MeResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	UserID    int64     `json:"user_id"`
}

// UserResponse публичный профиль пользователя
type UserResponse struct {
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	UserID    int64     `json:"user_id"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
