package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotelops/shared/password"
)

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "letters and digits", password: "frontdesk42"},
		{name: "special characters", password: "P@ssw0rd!#$%"},
		{name: "unicode letters", password: "пароль123"},
		{name: "exactly max length", password: strings.Repeat("a", 71) + "1"},
		{name: "empty", password: "", wantErr: password.ErrEmptyPassword},
		{name: "too short", password: "abc1", wantErr: password.ErrWeakPassword},
		{name: "too long", password: strings.Repeat("a", 72) + "1", wantErr: password.ErrWeakPassword},
		{name: "letters only", password: "receptionist", wantErr: password.ErrWeakPassword},
		{name: "digits only", password: "12345678", wantErr: password.ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.CheckStrength(tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHash(t *testing.T) {
	t.Run("produces a verifiable bcrypt hash", func(t *testing.T) {
		hash, err := password.Hash("frontdesk42")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, password.DefaultCost, cost)
		assert.NoError(t, password.Verify("frontdesk42", hash))
	})

	t.Run("rejects weak password without hashing", func(t *testing.T) {
		hash, err := password.Hash("short")

		require.ErrorIs(t, err, password.ErrWeakPassword)
		assert.Empty(t, hash)
	})

	t.Run("salts every hash", func(t *testing.T) {
		first, err := password.Hash("frontdesk42")
		require.NoError(t, err)

		second, err := password.Hash("frontdesk42")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("housekeeping7")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "matching password", password: "housekeeping7", hash: hash},
		{name: "wrong password", password: "housekeeping8", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "housekeeping7", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "housekeeping7", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
		{name: "truncated hash", password: "housekeeping7", hash: hash[:10], wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	current, err := password.Hash("frontdesk42")
	require.NoError(t, err)

	cheap, err := bcrypt.GenerateFromPassword([]byte("frontdesk42"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, password.NeedsRehash(current))
	assert.True(t, password.NeedsRehash(string(cheap)))
	assert.True(t, password.NeedsRehash("garbage"))
}
