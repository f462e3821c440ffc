package auth

import (
	"context"

	"github.com/iudanet/rolekeeper/internal/client/storage"
	pkgapi "github.com/iudanet/rolekeeper/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service defines client-side authentication operations.
// Login and Refresh persist the resulting session in local storage.
type Service interface {
	// Register создает пользователя на сервере. Сессия не сохраняется.
	Register(ctx context.Context, username, email, password string) (*pkgapi.RegisterResponse, error)

	// Login выполняет аутентификацию и сохраняет сессию
	Login(ctx context.Context, username, password string) (*storage.Session, error)

	// Refresh обменивает сохраненный refresh токен на новую пару токенов
	Refresh(ctx context.Context) (*storage.Session, error)

	// AddRole назначает роль пользователю (нужны его учетные данные)
	AddRole(ctx context.Context, username, password, role string) (*pkgapi.AddRoleResponse, error)

	// Session возвращает сохраненную сессию без обращения к серверу
	Session(ctx context.Context) (*storage.Session, error)

	// WhoAmI возвращает владельца session токена по данным сервера.
	// Просроченный session токен обновляется автоматически.
	WhoAmI(ctx context.Context) (*pkgapi.MeResponse, error)

	// User возвращает профиль пользователя (нужна роль Administrator)
	User(ctx context.Context, username string) (*pkgapi.UserResponse, error)

	// Logout удаляет локальную сессию. Сервер не уведомляется.
	Logout(ctx context.Context) error
}

// APIClient is the subset of api.Client used by AuthService.
type APIClient interface {
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error)
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*pkgapi.AuthResponse, error)
	AddRole(ctx context.Context, req pkgapi.AddRoleRequest) (*pkgapi.AddRoleResponse, error)
	Me(ctx context.Context, token string) (*pkgapi.MeResponse, error)
	User(ctx context.Context, token, username string) (*pkgapi.UserResponse, error)
}
