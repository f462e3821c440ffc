package handlers

import (
	"context"

	"github.com/iudanet/rolekeeper/internal/server/jwt"
)

// contextKey тип для ключей контекста
type contextKey string

// ClaimsKey ключ для хранения claims session токена в контексте
const ClaimsKey contextKey = "claims"

// WithClaims возвращает контекст с claims аутентифицированного пользователя
func WithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims извлекает claims из контекста
func GetClaims(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}
