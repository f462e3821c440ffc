package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/session"
	"github.com/iudanet/rolekeeper/internal/validation"
	"github.com/iudanet/rolekeeper/pkg/api"
)

// SessionService is the subset of session.Service used by the HTTP layer
type SessionService interface {
	Register(ctx context.Context, username, email, password string) (*session.RegisterResult, error)
	Login(ctx context.Context, username, password string) (*session.AuthResult, error)
	RefreshToken(ctx context.Context, presented string) (*session.AuthResult, error)
	AddRole(ctx context.Context, username, password, roleName string) (*session.AddRoleResult, error)
	Profile(ctx context.Context, username string) (*models.User, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger  *slog.Logger
	service SessionService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, service SessionService) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		service: service,
	}
}

// Register обрабатывает POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	for _, err := range []error{
		validation.ValidateUsername(req.Username),
		validation.ValidateEmail(req.Email),
		validation.ValidatePassword(req.Password),
	} {
		if err != nil {
			h.logger.WarnContext(ctx, "invalid register request", slog.String("username", req.Username), slog.Any("error", err))
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	res, err := h.service.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		sendError(h.logger, w, session.FailureMessage(err, req.Username, ""), statusFor(err))
		return
	}

	sendJSON(h.logger, w, api.RegisterResponse{
		UserID:   res.UserID,
		Username: res.Username,
		Message:  res.Message,
	}, http.StatusCreated)
}

// Login обрабатывает POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}

	res, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.sendAuthFailure(w, session.FailureMessage(err, req.Username, ""), statusFor(err))
		return
	}

	sendJSON(h.logger, w, authResponse(res), http.StatusOK)
}

// Refresh обрабатывает POST /api/v1/auth/refresh
// Refresh token передается в заголовке Authorization: Bearer <token>
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, ok := BearerToken(r)
	if !ok {
		h.sendAuthFailure(w, "Authorization header with bearer refresh token is required", http.StatusUnauthorized)
		return
	}

	res, err := h.service.RefreshToken(ctx, token)
	if err != nil {
		h.sendAuthFailure(w, session.FailureMessage(err, "", ""), statusFor(err))
		return
	}

	sendJSON(h.logger, w, authResponse(res), http.StatusOK)
}

// AddRole обрабатывает POST /api/v1/auth/roles
func (h *AuthHandler) AddRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.AddRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode add role request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateRoleName(req.Role); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.service.AddRole(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		sendError(h.logger, w, session.FailureMessage(err, req.Username, req.Role), statusFor(err))
		return
	}

	sendJSON(h.logger, w, api.AddRoleResponse{
		Message: res.Message,
		Role:    res.Role,
		Added:   res.Added,
	}, http.StatusOK)
}

func (h *AuthHandler) sendAuthFailure(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(h.logger, w, api.AuthResponse{IsAuthenticated: false, Message: message}, statusCode)
}

func authResponse(res *session.AuthResult) api.AuthResponse {
	tokenExpiresAt := res.TokenExpiresAt
	refreshExpiresAt := res.RefreshTokenExpiresAt
	return api.AuthResponse{
		IsAuthenticated:        true,
		Username:               res.Username,
		Email:                  res.Email,
		Roles:                  res.Roles,
		Token:                  res.Token,
		TokenExpiresAt:         &tokenExpiresAt,
		RefreshToken:           res.RefreshToken,
		RefreshTokenExpiration: &refreshExpiresAt,
	}
}
