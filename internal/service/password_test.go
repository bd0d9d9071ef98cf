package service

import (
	"errors"
	"testing"

	"user-hub/internal/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restorePasswordGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restorePasswordGlobals)
	cfg := config.Auth{BcryptCost: bcrypt.MinCost}

	pwd := "secret"
	hash1, err := HashPassword(cfg, pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash1)

	// random salt: same input, different digest, both verify
	hash2, err := HashPassword(cfg, pwd)
	require.NoError(t, err)
	require.NotEqual(t, hash1, hash2)
	require.NoError(t, ComparePassword(hash1, pwd))
	require.NoError(t, ComparePassword(hash2, pwd))

	// zero cost falls back to the bcrypt default
	var gotCost int
	bcryptGenerateFromPassword = func(_ []byte, cost int) ([]byte, error) {
		gotCost = cost
		return []byte("h"), nil
	}
	_, err = HashPassword(config.Auth{}, pwd)
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, gotCost)

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(cfg, pwd)
	require.Error(t, err)
}

func TestComparePassword(t *testing.T) {
	t.Cleanup(restorePasswordGlobals)
	cfg := config.Auth{BcryptCost: bcrypt.MinCost}

	hash, err := HashPassword(cfg, "pw")
	require.NoError(t, err)
	require.NoError(t, ComparePassword(hash, "pw"))
	require.Error(t, ComparePassword(hash, "other"))

	// malformed digest must fail, not panic
	require.NotPanics(t, func() {
		require.Error(t, ComparePassword("not-a-bcrypt-digest", "pw"))
	})
	require.Error(t, ComparePassword("", "pw"))
}
