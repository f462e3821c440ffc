package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/rolekeeper/internal/client/storage"
	"github.com/iudanet/rolekeeper/internal/validation"
	pkgapi "github.com/iudanet/rolekeeper/pkg/api"
)

var (
	// ErrNotAuthenticated нет сохраненной сессии
	ErrNotAuthenticated = errors.New("not authenticated, please run 'rolekeeper login' first")
	// ErrSessionExpired refresh токен сессии истек
	ErrSessionExpired = errors.New("session expired, please run 'rolekeeper login' again")
)

// AuthService реализует Service поверх HTTP API и локального хранилища сессии
type AuthService struct {
	api    APIClient
	store  storage.SessionStorage
	logger *slog.Logger
	now    func() time.Time
	server string
}

var _ Service = (*AuthService)(nil)

// NewService создает новый сервис авторизации.
// server сохраняется в сессии, чтобы status показывал, куда выполнен вход.
func NewService(logger *slog.Logger, apiClient APIClient, store storage.SessionStorage, server string) *AuthService {
	return &AuthService{
		api:    apiClient,
		store:  store,
		logger: logger,
		now:    time.Now,
		server: server,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*pkgapi.RegisterResponse, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	return resp, nil
}

// Login выполняет аутентификацию пользователя и сохраняет сессию
func (s *AuthService) Login(ctx context.Context, username, password string) (*storage.Session, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return s.saveSession(ctx, resp, nil)
}

// Refresh обновляет пару токенов по сохраненному refresh токену
func (s *AuthService) Refresh(ctx context.Context) (*storage.Session, error) {
	current, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	return s.refresh(ctx, current)
}

func (s *AuthService) refresh(ctx context.Context, current *storage.Session) (*storage.Session, error) {
	if !current.RefreshValid(s.now()) {
		return nil, ErrSessionExpired
	}

	resp, err := s.api.Refresh(ctx, current.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	s.logger.DebugContext(ctx, "session refreshed", slog.String("username", current.Username))
	return s.saveSession(ctx, resp, current)
}

// AddRole назначает роль пользователю
func (s *AuthService) AddRole(ctx context.Context, username, password, role string) (*pkgapi.AddRoleResponse, error) {
	if err := validation.ValidateRoleName(role); err != nil {
		return nil, fmt.Errorf("invalid role: %w", err)
	}

	resp, err := s.api.AddRole(ctx, pkgapi.AddRoleRequest{
		Username: username,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return nil, fmt.Errorf("add role failed: %w", err)
	}

	return resp, nil
}

// Session возвращает сохраненную сессию
func (s *AuthService) Session(ctx context.Context) (*storage.Session, error) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// WhoAmI запрашивает у сервера владельца session токена
func (s *AuthService) WhoAmI(ctx context.Context) (*pkgapi.MeResponse, error) {
	token, err := s.sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("whoami failed: %w", err)
	}
	return resp, nil
}

// User запрашивает профиль пользователя
func (s *AuthService) User(ctx context.Context, username string) (*pkgapi.UserResponse, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}

	token, err := s.sessionToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.User(ctx, token, username)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	return resp, nil
}

// Logout удаляет локальную сессию
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.store.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return ErrNotAuthenticated
		}
		return fmt.Errorf("failed to delete local session: %w", err)
	}
	return nil
}

// sessionToken возвращает действующий session токен, при необходимости обновляя его
func (s *AuthService) sessionToken(ctx context.Context) (string, error) {
	current, err := s.Session(ctx)
	if err != nil {
		return "", err
	}

	if current.TokenValid(s.now()) {
		return current.Token, nil
	}

	refreshed, err := s.refresh(ctx, current)
	if err != nil {
		return "", err
	}
	return refreshed.Token, nil
}

// saveSession сохраняет сессию из ответа сервера. previous дополняет поля,
// которых может не быть в ответе.
func (s *AuthService) saveSession(ctx context.Context, resp *pkgapi.AuthResponse, previous *storage.Session) (*storage.Session, error) {
	if !resp.IsAuthenticated {
		return nil, fmt.Errorf("authentication rejected: %s", resp.Message)
	}

	session := &storage.Session{
		Server:       s.server,
		Username:     resp.Username,
		Email:        resp.Email,
		Roles:        resp.Roles,
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
	}
	if resp.TokenExpiresAt != nil {
		session.TokenExpiresAt = *resp.TokenExpiresAt
	}
	if resp.RefreshTokenExpiration != nil {
		session.RefreshTokenExpiresAt = *resp.RefreshTokenExpiration
	}
	if previous != nil {
		if session.Username == "" {
			session.Username = previous.Username
		}
		if session.Email == "" {
			session.Email = previous.Email
		}
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}
