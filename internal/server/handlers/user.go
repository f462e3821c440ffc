package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/rolekeeper/internal/server/session"
	"github.com/iudanet/rolekeeper/internal/validation"
	"github.com/iudanet/rolekeeper/pkg/api"
)

// UserHandler обслуживает защищенные маршруты профиля
type UserHandler struct {
	logger  *slog.Logger
	service SessionService
}

// NewUserHandler создает handler профилей
func NewUserHandler(logger *slog.Logger, service SessionService) *UserHandler {
	return &UserHandler{logger: logger, service: service}
}

// Me обрабатывает GET /api/v1/me
// Возвращает данные из claims, без обращения к хранилищу
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	resp := api.MeResponse{
		UserID:   claims.UID,
		Username: claims.Username(),
		Email:    claims.Email,
		Roles:    claims.Roles,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// GetUser обрабатывает GET /api/v1/admin/users/{username}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := r.PathValue("username")
	if err := validation.ValidateUsername(username); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.service.Profile(ctx, username)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "failed to load user", slog.Any("error", err))
		}
		sendError(h.logger, w, session.FailureMessage(err, username, ""), status)
		return
	}

	sendJSON(h.logger, w, api.UserResponse{
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Roles:     user.RoleNames(),
		CreatedAt: user.CreatedAt,
	}, http.StatusOK)
}
