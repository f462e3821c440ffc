package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/rolekeeper/internal/models"
	"github.com/iudanet/rolekeeper/internal/server/handlers"
	"github.com/iudanet/rolekeeper/internal/server/jwt"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

func setupIssuer(t *testing.T, key string, now func() time.Time) *jwt.Issuer {
	t.Helper()
	issuer, err := jwt.NewIssuer(jwt.Config{
		Key:      []byte(key),
		Issuer:   "rolekeeper",
		Audience: "rolekeeper-clients",
		TTL:      15 * time.Minute,
	})
	require.NoError(t, err)
	if now != nil {
		issuer.WithClock(now)
	}
	return issuer
}

func testUser(roles ...models.Role) *models.User {
	return &models.User{ID: 17, Username: "testuser", Email: "test@example.com", Roles: roles}
}

const testKey = "middleware-test-key-0123456789abcdef"

func TestAuthMiddleware(t *testing.T) {
	issuer := setupIssuer(t, testKey, nil)

	valid, _, err := issuer.CreateSessionToken(testUser(models.Role{ID: models.RoleUser, Name: models.RoleUserName}))
	require.NoError(t, err)

	forged, _, err := setupIssuer(t, "another-key-another-key-another-key", nil).CreateSessionToken(testUser())
	require.NoError(t, err)

	past := func() time.Time { return time.Now().Add(-time.Hour) }
	expired, _, err := setupIssuer(t, testKey, past).CreateSessionToken(testUser())
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, expectedStatus: http.StatusOK},
		{name: "missing header", header: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, expectedStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", expectedStatus: http.StatusUnauthorized},
		{name: "wrong signing key", header: "Bearer " + forged, expectedStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer " + expired, expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := handlers.GetClaims(r.Context())
				require.True(t, ok, "claims should be in context")
				assert.Equal(t, int64(17), claims.UID)
				assert.Equal(t, "testuser", claims.Username())
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(setupTestLogger(), issuer)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	issuer := setupIssuer(t, testKey, nil)

	userToken, _, err := issuer.CreateSessionToken(testUser(models.Role{ID: models.RoleUser, Name: models.RoleUserName}))
	require.NoError(t, err)
	adminToken, _, err := issuer.CreateSessionToken(testUser(
		models.Role{ID: models.RoleUser, Name: models.RoleUserName},
		models.Role{ID: models.RoleAdmin, Name: models.RoleAdminName},
	))
	require.NoError(t, err)

	logger := setupTestLogger()
	protected := Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		AuthMiddleware(logger, issuer),
		RequireRole(logger, models.RoleAdminName),
	)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{name: "administrator", token: adminToken, expectedStatus: http.StatusNoContent},
		{name: "plain user", token: userToken, expectedStatus: http.StatusForbidden},
		{name: "anonymous", token: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/someone", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	// без AuthMiddleware в цепочке
	w := httptest.NewRecorder()
	RequireRole(logger, models.RoleAdminName)(http.NotFoundHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		path           string
		expectedLevel  string
		expectedStatus int
	}{
		{
			name: "200 logs as INFO",
			path: "/api/v1/auth/login",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("Hello, World!"))
			},
			expectedStatus: http.StatusOK,
			expectedLevel:  "INFO",
		},
		{
			name: "401 logs as WARN",
			path: "/api/v1/auth/refresh",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedLevel:  "WARN",
		},
		{
			name: "500 logs as ERROR",
			path: "/api/v1/auth/register",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			handler := LoggingMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(http.MethodPost, tt.path+"?token=secret", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			req.Header.Set("User-Agent", "TestAgent/1.0")
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "HTTP request")
			assert.Contains(t, logOutput, tt.path)
			assert.Contains(t, logOutput, "192.168.1.1:12345")
			assert.Contains(t, logOutput, "TestAgent/1.0")
			assert.Contains(t, logOutput, "level="+tt.expectedLevel)
			assert.NotContains(t, logOutput, "secret", "токены не должны попадать в лог")
		})
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := LoggingMiddleware(logger, "/api/v1/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Empty(t, logBuf.String())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	assert.Contains(t, logBuf.String(), "/api/v1/me")
}

func TestRecoveryMiddleware(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedBody   string
		expectedStatus int
	}{
		{
			name: "normal handler without panic",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("success"))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "success",
		},
		{
			name: "handler with panic (string)",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("something went wrong")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}` + "\n",
		},
		{
			name: "handler with panic (custom type)",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic(struct{ msg string }{"critical error"})
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RecoveryMiddleware(logger)(tt.handler)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, w.Body.String())
		})
	}

	assert.Contains(t, logBuf.String(), "goroutine", "log should contain stack trace")
}

func TestRecoveryMiddleware_AbortHandler(t *testing.T) {
	handler := RecoveryMiddleware(setupTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestChain_Order(t *testing.T) {
	var callOrder []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				callOrder = append(callOrder, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callOrder = append(callOrder, "handler")
	}), mark("recovery"), mark("logging"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"recovery", "logging", "handler"}, callOrder)
}
