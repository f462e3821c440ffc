package handlers

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/session"
)

func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockSessionService is a mock implementation of SessionService for testing
type mockSessionService struct {
	registerFn func(ctx context.Context, username, email, password string) (*session.RegisterResult, error)
	loginFn    func(ctx context.Context, username, password string) (*session.AuthResult, error)
	refreshFn  func(ctx context.Context, presented string) (*session.AuthResult, error)
	addRoleFn  func(ctx context.Context, username, password, role string) (*session.AddRoleResult, error)
	profileFn  func(ctx context.Context, username string) (*models.User, error)
}

var errNotConfigured = errors.New("mock not configured")

func (m *mockSessionService) Register(ctx context.Context, username, email, password string) (*session.RegisterResult, error) {
	if m.registerFn == nil {
		return nil, errNotConfigured
	}
	return m.registerFn(ctx, username, email, password)
}

func (m *mockSessionService) Login(ctx context.Context, username, password string) (*session.AuthResult, error) {
	if m.loginFn == nil {
		return nil, errNotConfigured
	}
	return m.loginFn(ctx, username, password)
}

func (m *mockSessionService) RefreshToken(ctx context.Context, presented string) (*session.AuthResult, error) {
	if m.refreshFn == nil {
		return nil, errNotConfigured
	}
	return m.refreshFn(ctx, presented)
}

func (m *mockSessionService) AddRole(ctx context.Context, username, password, role string) (*session.AddRoleResult, error) {
	if m.addRoleFn == nil {
		return nil, errNotConfigured
	}
	return m.addRoleFn(ctx, username, password, role)
}

func (m *mockSessionService) Profile(ctx context.Context, username string) (*models.User, error) {
	if m.profileFn == nil {
		return nil, errNotConfigured
	}
	return m.profileFn(ctx, username)
}
