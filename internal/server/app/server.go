// Package app собирает HTTP сервер: хранилище, сервис сессий, обработчики и middleware.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/rolekeeper/internal/crypto"
	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/config"
	"github.com/iudanet/rolekeeper/internal/server/handlers"
	"github.com/iudanet/rolekeeper/internal/server/jwt"
	"github.com/iudanet/rolekeeper/internal/server/metrics"
	"github.com/iudanet/rolekeeper/internal/server/middleware"
	"github.com/iudanet/rolekeeper/internal/server/session"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

const healthPath = "/api/v1/health"

// Server hosts the HTTP API and owns the credential store.
type Server struct {
	logger          *slog.Logger
	store           storage.CredentialStore
	httpServer      *http.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

// New opens the store from cfg and binds the listener.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, version string) (*Server, error) {
	store, err := OpenStore(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	srv, err := NewWithStore(cfg, logger, store, crypto.NewArgon2idHasher(crypto.DefaultArgon2Params()), version)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return srv, nil
}

// NewWithStore собирает сервер поверх готового хранилища
func NewWithStore(cfg *config.Config, logger *slog.Logger, store storage.CredentialStore, hasher crypto.PasswordHasher, version string) (*Server, error) {
	issuer, err := jwt.NewIssuer(cfg.JWT())
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	service := session.NewService(logger, store, hasher, issuer, session.NewRotator(cfg.RefreshTTL, nil))

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	return &Server{
		logger:   logger,
		store:    store,
		listener: listener,
		httpServer: &http.Server{
			Handler:           NewRouter(logger, service, issuer, store, version),
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// NewRouter регистрирует маршруты API
func NewRouter(logger *slog.Logger, service handlers.SessionService, validator middleware.TokenValidator, store handlers.Pinger, version string) http.Handler {
	authHandler := handlers.NewAuthHandler(logger, service)
	userHandler := handlers.NewUserHandler(logger, service)
	healthHandler := handlers.NewHealthHandler(logger, store, version)

	authenticated := middleware.AuthMiddleware(logger, validator)
	adminOnly := middleware.RequireRole(logger, models.RoleAdminName)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("POST /api/v1/auth/roles", authHandler.AddRole)
	mux.Handle("GET /api/v1/me", middleware.Chain(http.HandlerFunc(userHandler.Me), authenticated))
	mux.Handle("GET /api/v1/admin/users/{username}",
		middleware.Chain(http.HandlerFunc(userHandler.GetUser), authenticated, adminOnly))
	mux.HandleFunc("GET "+healthPath, healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	return middleware.Chain(mux,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger, healthPath, "/metrics"),
	)
}

// Addr returns the bound listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve обслуживает запросы до отмены ctx, затем выполняет graceful shutdown
// и закрывает хранилище.
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("failed to close storage", slog.Any("error", err))
		}
	}()

	s.logger.InfoContext(ctx, "Server listening", slog.String("addr", s.Addr()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", slog.Duration("timeout", s.shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
