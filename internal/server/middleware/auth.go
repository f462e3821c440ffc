package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/rolekeeper/internal/server/handlers"
	"github.com/iudanet/rolekeeper/internal/server/jwt"
)

// TokenValidator проверяет session токен
type TokenValidator interface {
	Validate(token string) (*jwt.Claims, error)
}

// AuthMiddleware создает middleware для проверки session токена.
// Claims валидного токена кладутся в контекст запроса.
func AuthMiddleware(logger *slog.Logger, validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := handlers.BearerToken(r)
			if !ok {
				logger.WarnContext(r.Context(), "Missing or malformed Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "Invalid session token", slog.Any("error", err))
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			logger.DebugContext(r.Context(), "User authenticated",
				slog.Int64("user_id", claims.UID),
				slog.String("username", claims.Username()))

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole пропускает запрос, только если у пользователя есть хотя бы одна из ролей.
// Должен стоять после AuthMiddleware.
func RequireRole(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.GetClaims(r.Context())
			if !ok {
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			for _, role := range roles {
				if claims.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.WarnContext(r.Context(), "Access denied: missing role",
				slog.String("username", claims.Username()),
				slog.Any("required", roles))
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

// Chain применяет middleware в порядке перечисления: первый становится внешним
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
