package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/rolekeeper/internal/server/session"
	"github.com/iudanet/rolekeeper/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// statusFor сопоставляет ошибку сервиса с HTTP статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, session.ErrUserNotFound), errors.Is(err, session.ErrRoleNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrRefreshTokenNotFound),
		errors.Is(err, session.ErrRefreshTokenInactive):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// BearerToken извлекает токен из заголовка "Authorization: Bearer <token>"
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
