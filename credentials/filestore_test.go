package credentials_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hostelhub/go-booking-client/credentials"
	"github.com/hostelhub/go-booking-client/users"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken  = "access-token-1"
	testRefreshToken = "refresh-token-1"
	testPassphrase   = "correct horse battery staple"
)

func testUser() *users.User {
	return &users.User{
		ID:       42,
		Username: "john.doe",
		Email:    "john.doe@example.com",
		Role:     users.RoleStudent,
	}
}

func testCredentials() credentials.Credentials {
	return credentials.Credentials{
		User:         testUser(),
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
	}
}

func newTestStore(t *testing.T, options ...credentials.FileStoreOption) (*credentials.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	return credentials.NewFileStore(path, options...), path
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save(testCredentials()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, testUser(), loaded.User)
	require.Equal(t, testAccessToken, loaded.AccessToken)
	require.Equal(t, testRefreshToken, loaded.RefreshToken)
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStoreSaveRequiresUserAndToken(t *testing.T) {
	store, _ := newTestStore(t)

	require.Error(t, store.Save(credentials.Credentials{AccessToken: testAccessToken}))
	require.Error(t, store.Save(credentials.Credentials{User: testUser()}))
}

func TestFileStoreCorruptUserWipesAll(t *testing.T) {
	store, path := newTestStore(t)

	entries := map[string]string{
		"user":          "{this is not json",
		"access_token":  testAccessToken,
		"refresh_token": testRefreshToken,
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	// The corrupt entry takes the whole store with it.
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestFileStorePartialEntriesWipe(t *testing.T) {
	store, path := newTestStore(t)

	// A file holding only a refresh token violates the write-together
	// contract and reads as no session.
	entries := map[string]string{"refresh_token": testRefreshToken}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileStoreClearIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	require.NoError(t, store.Save(testCredentials()))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSealedStoreRoundTrip(t *testing.T) {
	store, path := newTestStore(t, credentials.WithPassphrase(testPassphrase))

	require.NoError(t, store.Save(testCredentials()))

	// Nothing recognisable on disk.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(raw), testAccessToken))
	require.False(t, strings.Contains(string(raw), "john.doe"))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, testUser(), loaded.User)
	require.Equal(t, testAccessToken, loaded.AccessToken)
}

func TestSealedStoreWrongPassphraseReadsAsAbsent(t *testing.T) {
	store, path := newTestStore(t, credentials.WithPassphrase(testPassphrase))
	require.NoError(t, store.Save(testCredentials()))

	reopened := credentials.NewFileStore(path, credentials.WithPassphrase("wrong passphrase"))
	loaded, err := reopened.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestPathForHost(t *testing.T) {
	path := credentials.PathForHost("/home/jane/.hostelhub", "api.hostelhub.example.com")
	require.Equal(t, filepath.Join("/home/jane/.hostelhub", "api.hostelhub.example.com", "credentials.json"), path)
}
