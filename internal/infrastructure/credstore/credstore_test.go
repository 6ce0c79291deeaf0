package credstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/clinicctl/internal/domain"
)

func testCreds() domain.Credentials {
	return domain.Credentials{
		User: domain.User{
			ID:         "user-1",
			Name:       "Alex",
			Email:      "alex@example.com",
			IsVerified: true,
		},
		Token: "tok-abc",
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	require.NoError(t, store.Save(testCreds()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "user-1", loaded.User.ID)
	assert.Equal(t, "alex@example.com", loaded.User.Email)
	assert.Equal(t, "tok-abc", loaded.Token)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.Load()
	assert.True(t, errors.Is(err, domain.ErrNoCredentials))
}

func TestFileStore_LoadMalformedUser(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access_token"), []byte("tok"), 0o600))

	store := NewFileStore(dir)
	_, err := store.Load()
	assert.True(t, errors.Is(err, domain.ErrNoCredentials))
}

func TestFileStore_LoadIncompleteIdentity(t *testing.T) {
	dir := t.TempDir()
	// Missing email: cannot seed a session.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte(`{"id":"user-1"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "access_token"), []byte("tok"), 0o600))

	store := NewFileStore(dir)
	_, err := store.Load()
	assert.True(t, errors.Is(err, domain.ErrNoCredentials))
}

func TestFileStore_LoadMissingToken(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"),
		[]byte(`{"id":"user-1","email":"a@b.c"}`), 0o600))

	store := NewFileStore(dir)
	_, err := store.Load()
	assert.True(t, errors.Is(err, domain.ErrNoCredentials))
}

func TestFileStore_Clear(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Save(testCreds()))

	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.True(t, errors.Is(err, domain.ErrNoCredentials))
	assert.Empty(t, store.Token())

	// Clearing twice is fine.
	assert.NoError(t, store.Clear())
}

func TestFileStore_Token(t *testing.T) {
	store := NewFileStore(t.TempDir())
	assert.Empty(t, store.Token())

	require.NoError(t, store.Save(testCreds()))
	assert.Equal(t, "tok-abc", store.Token())
}
