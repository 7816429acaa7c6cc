package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func useMinCost(t *testing.T) {
	t.Helper()
	orig := hashCost
	hashCost = bcrypt.MinCost
	t.Cleanup(func() { hashCost = orig })
}

func TestHashAndCheckPassword(t *testing.T) {
	useMinCost(t)

	hash, err := HashPassword("Password123!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
	assert.False(t, CheckPassword("Password123!", "not-a-hash"))
}

func TestHashPassword_ErrorBranch(t *testing.T) {
	orig := bcryptGenerateFromPassword
	t.Cleanup(func() { bcryptGenerateFromPassword = orig })

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!")
	assert.ErrorContains(t, err, "failed to hash password")
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short1", true},
		{"onlyletterspassword", true},
		{"1234567890123", true},
		{"reviewer2024pass", false},
	}
	for _, tt := range tests {
		err := ValidatePasswordStrength(tt.password)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrWeakPassword, tt.password)
		} else {
			assert.NoError(t, err, tt.password)
		}
	}
}
