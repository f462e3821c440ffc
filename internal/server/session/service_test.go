package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/rolekeeper/internal/crypto"
	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/jwt"
	"github.com/iudanet/rolekeeper/internal/server/storage"
	"github.com/iudanet/rolekeeper/internal/server/storage/sqlite"
)

type fakeClock struct {
	t  time.Time
	mu sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	svc    *Service
	store  *sqlite.Storage
	issuer *jwt.Issuer
	clock  *fakeClock
}

func setupService(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return setupServiceWithStore(t, store, store)
}

func setupServiceWithStore(t *testing.T, sq *sqlite.Storage, store storage.CredentialStore) *testEnv {
	t.Helper()

	clock := newFakeClock()
	issuer, err := jwt.NewIssuer(jwt.Config{
		Key:      []byte("test-signing-key-test-signing-key"),
		Issuer:   "rolekeeper",
		Audience: "rolekeeper-clients",
		TTL:      15 * time.Minute,
	})
	require.NoError(t, err)
	issuer.WithClock(clock.Now)

	hasher := crypto.NewArgon2idHasher(crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		svc:    NewService(logger, store, hasher, issuer, NewRotator(10*time.Minute, clock.Now)),
		store:  sq,
		issuer: issuer,
		clock:  clock,
	}
}

func (e *testEnv) register(t *testing.T, username, password string) *RegisterResult {
	t.Helper()
	res, err := e.svc.Register(context.Background(), username, username+"@example.com", password)
	require.NoError(t, err)
	return res
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)

	res := env.register(t, "alice", "Secret#123")
	assert.NotZero(t, res.UserID)
	assert.Equal(t, "User alice has been registered successfully.", res.Message)

	user, err := env.store.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", user.PasswordHash)
	assert.Equal(t, []models.Role{{ID: models.RoleUser, Name: models.RoleUserName}}, user.Roles)

	tests := []struct {
		name     string
		username string
	}{
		{name: "same username", username: "alice"},
		{name: "different case", username: "ALICE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Register(ctx, tt.username, "x@example.com", "Other#123")
			assert.ErrorIs(t, err, ErrAlreadyRegistered)
			assert.Equal(t, "User "+tt.username+" already registered.", FailureMessage(err, tt.username, ""))
		})
	}
}

func TestService_Register_Concurrent(t *testing.T) {
	env := setupService(t)

	const workers = 6
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Register(context.Background(), "bob", "bob@example.com", "Secret#123")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	}
	assert.Equal(t, 1, ok)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	reg := env.register(t, "carol", "Secret#123")

	res, err := env.svc.Login(ctx, "CAROL", "Secret#123")
	require.NoError(t, err)

	assert.Equal(t, "carol", res.Username)
	assert.Equal(t, "carol@example.com", res.Email)
	assert.Equal(t, []string{"User"}, res.Roles)
	assert.Equal(t, env.clock.Now().Add(15*time.Minute), res.TokenExpiresAt)
	assert.Equal(t, env.clock.Now().Add(10*time.Minute), res.RefreshTokenExpiresAt)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := env.issuer.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "carol", claims.Subject)
	assert.Equal(t, reg.UserID, claims.UID)
	assert.Equal(t, []string{"User"}, claims.Roles)
	assert.Equal(t, "carol@example.com", claims.Email)

	// повторный логин возвращает тот же активный refresh токен
	env.clock.Advance(time.Minute)
	again, err := env.svc.Login(ctx, "carol", "Secret#123")
	require.NoError(t, err)
	assert.Equal(t, res.RefreshToken, again.RefreshToken)
	assert.NotEqual(t, res.Token, again.Token)

	// после истечения создается новый
	env.clock.Advance(10 * time.Minute)
	later, err := env.svc.Login(ctx, "carol", "Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, res.RefreshToken, later.RefreshToken)

	user, err := env.store.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Len(t, user.RefreshTokens, 2)
}

func TestService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	env.register(t, "dave", "Secret#123")

	tests := []struct {
		wantErr  error
		name     string
		username string
		password string
		message  string
	}{
		{name: "unknown user", username: "erin", password: "Secret#123", wantErr: ErrUserNotFound, message: "User erin not found."},
		{name: "wrong password", username: "dave", password: "secret#123", wantErr: ErrInvalidCredentials, message: "Incorrect credentials for user dave."},
		{name: "empty password", username: "dave", password: "", wantErr: ErrInvalidCredentials, message: "Incorrect credentials for user dave."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.svc.Login(ctx, tt.username, tt.password)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.message, FailureMessage(err, tt.username, ""))
		})
	}

	// неудачные логины не создают refresh токенов
	user, err := env.store.GetUserByUsername(ctx, "dave")
	require.NoError(t, err)
	assert.Empty(t, user.RefreshTokens)
}

func TestService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	env.register(t, "frank", "Secret#123")

	login, err := env.svc.Login(ctx, "frank", "Secret#123")
	require.NoError(t, err)

	env.clock.Advance(2 * time.Minute)
	refreshed, err := env.svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, env.clock.Now().Add(10*time.Minute), refreshed.RefreshTokenExpiresAt)
	assert.Equal(t, []string{"User"}, refreshed.Roles)

	claims, err := env.issuer.Validate(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, "frank", claims.Subject)

	// повторное использование отозванного токена всегда отклоняется
	_, err = env.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInactive)
	assert.Equal(t, "Token is not active.", FailureMessage(err, "", ""))

	user, err := env.store.GetUserByUsername(ctx, "frank")
	require.NoError(t, err)
	old := user.FindRefreshToken(login.RefreshToken)
	require.NotNil(t, old)
	require.NotNil(t, old.RevokedAt)
	assert.Equal(t, env.clock.Now(), *old.RevokedAt)

	// новый токен работает, и логин теперь возвращает именно его
	relogin, err := env.svc.Login(ctx, "frank", "Secret#123")
	require.NoError(t, err)
	assert.Equal(t, refreshed.RefreshToken, relogin.RefreshToken)

	chained, err := env.svc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, refreshed.RefreshToken, chained.RefreshToken)
}

func TestService_RefreshToken_Failures(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	env.register(t, "grace", "Secret#123")

	login, err := env.svc.Login(ctx, "grace", "Secret#123")
	require.NoError(t, err)

	_, err = env.svc.RefreshToken(ctx, "")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)

	_, err = env.svc.RefreshToken(ctx, "bm90LWEtcmVhbC10b2tlbg==")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
	assert.Equal(t, "Token is not assigned to any user.", FailureMessage(err, "", ""))

	env.clock.Advance(10 * time.Minute)
	_, err = env.svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrRefreshTokenInactive, "истекший токен неотличим от отозванного")
}

func TestService_RefreshToken_Concurrent(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	env.register(t, "heidi", "Secret#123")

	login, err := env.svc.Login(ctx, "heidi", "Secret#123")
	require.NoError(t, err)

	const workers = 5
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.RefreshToken(ctx, login.RefreshToken)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrRefreshTokenInactive)
	}
	assert.Equal(t, 1, wins)
}

func TestService_AddRole(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	env.register(t, "ivan", "Secret#123")

	res, err := env.svc.AddRole(ctx, "ivan", "Secret#123", "administrator")
	require.NoError(t, err)
	assert.True(t, res.Added)
	assert.Equal(t, "Administrator", res.Role)
	assert.Equal(t, "User ivan has been assigned to role Administrator.", res.Message)

	again, err := env.svc.AddRole(ctx, "ivan", "Secret#123", "Administrator")
	require.NoError(t, err)
	assert.False(t, again.Added)

	user, err := env.store.GetUserByUsername(ctx, "ivan")
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Administrator"}, user.RoleNames())

	login, err := env.svc.Login(ctx, "ivan", "Secret#123")
	require.NoError(t, err)
	claims, err := env.issuer.Validate(login.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"User", "Administrator"}, claims.Roles)

	tests := []struct {
		wantErr  error
		name     string
		username string
		password string
		role     string
		message  string
	}{
		{name: "unknown user", username: "judy", password: "Secret#123", role: "User", wantErr: ErrUserNotFound, message: "User judy not found."},
		{name: "wrong password", username: "ivan", password: "nope", role: "User", wantErr: ErrInvalidCredentials, message: "Incorrect credentials for user ivan."},
		{name: "unknown role", username: "ivan", password: "Secret#123", role: "Wizard", wantErr: ErrRoleNotFound, message: "Role Wizard was not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.AddRole(ctx, tt.username, tt.password, tt.role)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.message, FailureMessage(err, tt.username, tt.role))
		})
	}
}

func TestService_Profile(t *testing.T) {
	ctx := context.Background()
	env := setupService(t)
	reg := env.register(t, "ken", "Secret#123")

	user, err := env.svc.Profile(ctx, "Ken")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, user.ID)

	_, err = env.svc.Profile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

// failingStore подменяет отдельные операции хранилища ошибкой
type failingStore struct {
	*sqlite.Storage
	err error
}

func (f *failingStore) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func (f *failingStore) GetUserByRefreshToken(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func TestService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()

	sq, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })

	cause := errors.New("disk I/O error at /var/lib/rolekeeper.db")
	env := setupServiceWithStore(t, sq, &failingStore{Storage: sq, err: cause})

	calls := map[string]func() error{
		"register": func() error { _, err := env.svc.Register(ctx, "leo", "leo@example.com", "Secret#123"); return err },
		"login":    func() error { _, err := env.svc.Login(ctx, "leo", "Secret#123"); return err },
		"refresh":  func() error { _, err := env.svc.RefreshToken(ctx, "token"); return err },
		"add_role": func() error { _, err := env.svc.AddRole(ctx, "leo", "Secret#123", "User"); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)

			var perr *PersistenceError
			require.ErrorAs(t, err, &perr)
			assert.ErrorIs(t, err, cause)
			assert.NotContains(t, err.Error(), "/var/lib", "сообщение не раскрывает детали хранилища")
			assert.False(t, isRejection(err))
			assert.Equal(t, "Internal server error.", FailureMessage(err, "leo", ""))
		})
	}
}
