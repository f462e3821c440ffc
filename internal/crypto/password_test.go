package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// тестовые параметры, чтобы тесты не тратили 64MB на каждый хеш
var testParams = Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32}

func TestArgon2idHasher_Hash(t *testing.T) {
	h := NewArgon2idHasher(testParams)

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	again, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "соль должна быть случайной")

	_, err = h.Hash("")
	assert.Error(t, err)
}

func TestArgon2idHasher_Verify(t *testing.T) {
	h := NewArgon2idHasher(testParams)

	hash, err := h.Hash("Passw0rd!")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		expected bool
		wantErr  bool
	}{
		{name: "matching password", password: "Passw0rd!", hash: hash, expected: true},
		{name: "wrong password", password: "passw0rd!", hash: hash, expected: false},
		{name: "empty password", password: "", hash: hash, expected: false},
		{name: "malformed hash", password: "Passw0rd!", hash: "not-a-hash", wantErr: true},
		{name: "wrong algorithm", password: "Passw0rd!", hash: "$bcrypt$v=19$m=1,t=1,p=1$AA$AA", wantErr: true},
		{name: "bad salt encoding", password: "Passw0rd!", hash: "$argon2id$v=19$m=1024,t=1,p=1$!!!$AA", wantErr: true},
		{name: "unsupported version", password: "Passw0rd!", hash: "$argon2id$v=16$m=1024,t=1,p=1$AA$AA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.password, tt.hash)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidHash)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestArgon2idHasher_VerifyUsesEncodedParams(t *testing.T) {
	hash, err := NewArgon2idHasher(testParams).Hash("secret-value")
	require.NoError(t, err)

	other := NewArgon2idHasher(Argon2Params{Time: 2, Memory: 2048, Threads: 2, KeyLen: 16})
	ok, err := other.Verify("secret-value", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRandomBase64(t *testing.T) {
	a, err := RandomBase64(32)
	require.NoError(t, err)
	b, err := RandomBase64(32)
	require.NoError(t, err)

	assert.Len(t, a, 44)
	assert.NotEqual(t, a, b)

	_, err = RandomBytes(0)
	assert.Error(t, err)
}
