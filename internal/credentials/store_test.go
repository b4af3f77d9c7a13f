package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/types"
)

func TestMemoryStoreSaveLoadClear(t *testing.T) {
	s := NewMemoryStore()

	pair, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)

	require.NoError(t, s.Save(types.TokenPair{AccessToken: "a", RefreshToken: "r"}))
	pair, _ = s.Load()
	assert.Equal(t, "a", pair.AccessToken)
	assert.Equal(t, "r", pair.RefreshToken)

	require.NoError(t, s.Clear())
	pair, _ = s.Load()
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestFileStoreUsesFixedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s := NewFileStore(path)

	require.NoError(t, s.Save(types.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"accessToken": "acc"`)
	assert.Contains(t, string(raw), `"refreshToken": "ref"`)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	pair, err := NewFileStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, types.TokenPair{AccessToken: "acc", RefreshToken: "ref"}, pair)
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "none.json"))

	pair, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, types.TokenPair{}, pair)
	assert.NoError(t, s.Clear())
}

func TestFileStoreClearRemovesBothTokens(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, s.Save(types.TokenPair{AccessToken: "acc", RefreshToken: "ref"}))

	require.NoError(t, s.Clear())

	pair, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, types.TokenPair{}, pair)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

func TestAccessExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	got, ok := AccessExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = AccessExpiry("not-a-jwt")
	assert.False(t, ok)
	_, ok = AccessExpiry("")
	assert.False(t, ok)
}
