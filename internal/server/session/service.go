// Package session implements registration, login, refresh token rotation and
// role assignment on top of a credential store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/rolekeeper/internal/crypto"
	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/metrics"
	"github.com/iudanet/rolekeeper/internal/server/storage"
)

// Имена операций для логов и метрик
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpRefresh  = "refresh"
	OpAddRole  = "add_role"
	OpProfile  = "profile"
)

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	CreateSessionToken(user *models.User) (string, time.Time, error)
}

// RegisterResult describes a newly registered user.
type RegisterResult struct {
	Username string
	Message  string
	UserID   int64
}

// AuthResult is returned by Login and RefreshToken.
type AuthResult struct {
	TokenExpiresAt        time.Time
	RefreshTokenExpiresAt time.Time
	Username              string
	Email                 string
	Token                 string
	RefreshToken          string
	Roles                 []string
}

// AddRoleResult describes a role assignment. Added is false when the user already held the role.
type AddRoleResult struct {
	Username string
	Role     string
	Message  string
	Added    bool
}

// Service is the entry point for all credential and session use cases.
type Service struct {
	store   storage.CredentialStore
	hasher  crypto.PasswordHasher
	issuer  TokenIssuer
	rotator *Rotator
	logger  *slog.Logger
}

// NewService creates a session service. The rotator's clock is used for all expiry decisions.
func NewService(logger *slog.Logger, store storage.CredentialStore, hasher crypto.PasswordHasher, issuer TokenIssuer, rotator *Rotator) *Service {
	return &Service{
		store:   store,
		hasher:  hasher,
		issuer:  issuer,
		rotator: rotator,
		logger:  logger,
	}
}

// Register creates a user holding the default role.
func (s *Service) Register(ctx context.Context, username, email, password string) (res *RegisterResult, err error) {
	defer func() { s.record(OpRegister, err) }()

	_, err = s.store.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		s.logger.WarnContext(ctx, "user already registered", slog.String("username", username))
		return nil, ErrAlreadyRegistered
	case !errors.Is(err, storage.ErrUserNotFound):
		return nil, s.persistenceFailure(ctx, OpRegister, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.rotator.now(),
	}

	if err := s.store.CreateUser(ctx, user, models.RoleUser); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			s.logger.WarnContext(ctx, "user registered concurrently", slog.String("username", username))
			return nil, ErrAlreadyRegistered
		}
		return nil, s.persistenceFailure(ctx, OpRegister, err)
	}

	s.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	return &RegisterResult{
		UserID:   user.ID,
		Username: user.Username,
		Message:  RegisteredMessage(user.Username),
	}, nil
}

// Login verifies the password and returns a session token together with the
// user's active refresh token, creating one if none is active.
func (s *Service) Login(ctx context.Context, username, password string) (res *AuthResult, err error) {
	defer func() { s.record(OpLogin, err) }()

	user, err := s.authenticate(ctx, OpLogin, username, password)
	if err != nil {
		return nil, err
	}

	token, tokenExpiresAt, err := s.issuer.CreateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	candidate, err := s.rotator.Create()
	if err != nil {
		return nil, err
	}

	refresh, created, err := s.store.GetOrCreateActiveRefreshToken(ctx, user.ID, s.rotator.now(), candidate)
	if err != nil {
		return nil, s.persistenceFailure(ctx, OpLogin, err)
	}
	if created {
		metrics.RecordRefreshTokenIssued()
	}

	s.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID),
		slog.Bool("new_refresh_token", created))

	return newAuthResult(user, token, tokenExpiresAt, refresh), nil
}

// RefreshToken exchanges an active refresh token for a new session token and
// a replacement refresh token. The presented token is revoked.
func (s *Service) RefreshToken(ctx context.Context, presented string) (res *AuthResult, err error) {
	defer func() { s.record(OpRefresh, err) }()

	if presented == "" {
		return nil, ErrRefreshTokenNotFound
	}

	user, err := s.store.GetUserByRefreshToken(ctx, presented)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			s.logger.WarnContext(ctx, "refresh token not found")
			return nil, ErrRefreshTokenNotFound
		}
		return nil, s.persistenceFailure(ctx, OpRefresh, err)
	}

	replacement, err := s.rotator.Rotate(user, presented)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenInactive) {
			s.logger.WarnContext(ctx, "refresh token is not active", slog.Int64("user_id", user.ID))
		}
		return nil, err
	}
	revokedAt := *user.FindRefreshToken(presented).RevokedAt

	if err := s.store.RotateRefreshToken(ctx, presented, revokedAt, replacement); err != nil {
		switch {
		case errors.Is(err, storage.ErrTokenInactive):
			// другой запрос успел ротировать этот токен раньше
			s.logger.WarnContext(ctx, "refresh token rotated concurrently", slog.Int64("user_id", user.ID))
			return nil, ErrRefreshTokenInactive
		case errors.Is(err, storage.ErrTokenNotFound):
			return nil, ErrRefreshTokenNotFound
		}
		return nil, s.persistenceFailure(ctx, OpRefresh, err)
	}
	metrics.RecordRefreshTokenIssued()

	token, tokenExpiresAt, err := s.issuer.CreateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token: %w", err)
	}

	s.logger.InfoContext(ctx, "tokens refreshed successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	return newAuthResult(user, token, tokenExpiresAt, replacement), nil
}

// AddRole assigns roleName to the user after re-verifying the password.
func (s *Service) AddRole(ctx context.Context, username, password, roleName string) (res *AddRoleResult, err error) {
	defer func() { s.record(OpAddRole, err) }()

	user, err := s.authenticate(ctx, OpAddRole, username, password)
	if err != nil {
		return nil, err
	}

	role, err := s.store.GetRoleByName(ctx, roleName)
	if err != nil {
		if errors.Is(err, storage.ErrRoleNotFound) {
			s.logger.WarnContext(ctx, "role not found", slog.String("role", roleName))
			return nil, ErrRoleNotFound
		}
		return nil, s.persistenceFailure(ctx, OpAddRole, err)
	}

	res = &AddRoleResult{
		Username: user.Username,
		Role:     role.Name,
		Message:  RoleAssignedMessage(user.Username, role.Name),
	}

	if user.HasRole(role.Name) {
		return res, nil
	}

	res.Added, err = s.store.AddUserRole(ctx, user.ID, role.ID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, storage.ErrRoleNotFound):
			return nil, ErrRoleNotFound
		}
		return nil, s.persistenceFailure(ctx, OpAddRole, err)
	}

	s.logger.InfoContext(ctx, "role assigned",
		slog.String("username", user.Username),
		slog.String("role", role.Name),
		slog.Bool("added", res.Added))

	return res, nil
}

// Profile returns the stored user by username.
func (s *Service) Profile(ctx context.Context, username string) (user *models.User, err error) {
	defer func() { s.record(OpProfile, err) }()

	user, err = s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.persistenceFailure(ctx, OpProfile, err)
	}
	return user, nil
}

// authenticate loads the user and checks the password. A wrong password never touches the store.
func (s *Service) authenticate(ctx context.Context, op, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.WarnContext(ctx, op+" failed: user not found", slog.String("username", username))
			return nil, ErrUserNotFound
		}
		return nil, s.persistenceFailure(ctx, op, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.WarnContext(ctx, op+" failed: incorrect credentials", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) persistenceFailure(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "storage operation failed", slog.String("op", op), slog.Any("error", err))
	return persistence(op, err)
}

func (s *Service) record(op string, err error) {
	var perr *PersistenceError
	switch {
	case err == nil:
		metrics.RecordOperation(op, metrics.OutcomeSuccess)
	case errors.As(err, &perr):
		metrics.RecordOperation(op, metrics.OutcomeError)
	case isRejection(err):
		metrics.RecordOperation(op, metrics.OutcomeRejected)
	default:
		metrics.RecordOperation(op, metrics.OutcomeError)
	}
}

func isRejection(err error) bool {
	for _, target := range []error{
		ErrAlreadyRegistered,
		ErrUserNotFound,
		ErrInvalidCredentials,
		ErrRoleNotFound,
		ErrRefreshTokenNotFound,
		ErrRefreshTokenInactive,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func newAuthResult(user *models.User, token string, tokenExpiresAt time.Time, refresh *models.RefreshToken) *AuthResult {
	return &AuthResult{
		Username:              user.Username,
		Email:                 user.Email,
		Roles:                 user.RoleNames(),
		Token:                 token,
		TokenExpiresAt:        tokenExpiresAt,
		RefreshToken:          refresh.Token,
		RefreshTokenExpiresAt: refresh.ExpiresAt,
	}
}
