package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSession_Validity(t *testing.T) {
	now := time.Now()

	tests := []struct {
		session      Session
		name         string
		tokenValid   bool
		refreshValid bool
	}{
		{
			name: "fresh session",
			session: Session{
				Token: "t", TokenExpiresAt: now.Add(time.Minute),
				RefreshToken: "r", RefreshTokenExpiresAt: now.Add(10 * time.Minute),
			},
			tokenValid:   true,
			refreshValid: true,
		},
		{
			name: "token expired, refresh alive",
			session: Session{
				Token: "t", TokenExpiresAt: now.Add(-time.Second),
				RefreshToken: "r", RefreshTokenExpiresAt: now.Add(time.Minute),
			},
			refreshValid: true,
		},
		{
			name: "expiry equals now",
			session: Session{
				Token: "t", TokenExpiresAt: now,
				RefreshToken: "r", RefreshTokenExpiresAt: now,
			},
		},
		{
			name:    "empty tokens",
			session: Session{TokenExpiresAt: now.Add(time.Hour), RefreshTokenExpiresAt: now.Add(time.Hour)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tokenValid, tt.session.TokenValid(now))
			assert.Equal(t, tt.refreshValid, tt.session.RefreshValid(now))
		})
	}
}
