package password_test

import (
	"icpac/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("s3cretPass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretPass", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)

	assert.NoError(t, password.Verify("s3cretPass", hash))
	assert.ErrorIs(t, password.Verify("wrong", hash), password.ErrInvalidPassword)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")

	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify_EmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("pass", ""), password.ErrInvalidPassword)
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("pass", "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "letters and digits", password: "boardroom25"},
		{name: "too short", password: "ab1", wantErr: true},
		{name: "letters only", password: "conference", wantErr: true},
		{name: "digits only", password: "1234567890", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.CheckStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, password.ErrWeakPassword)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
