package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hostelhub/go-booking-client/credentials"
	"github.com/hostelhub/go-booking-client/credentials/storefake"
	apperrors "github.com/hostelhub/go-booking-client/internal/errors"
	"github.com/hostelhub/go-booking-client/session"
	"github.com/hostelhub/go-booking-client/users"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken  = "access-token-1"
	testRefreshToken = "refresh-token-1"
	testJWTSecret    = "test-secret"
)

func testUser() *users.User {
	return &users.User{
		ID:       7,
		Username: "jane.doe",
		Email:    "jane.doe@example.com",
		Role:     users.RoleProvider,
	}
}

// testFixture holds the manager and its backing fake store.
type testFixture struct {
	store   *storefake.FakeStore
	manager *session.Manager
}

func setupTestFixture(t *testing.T, options ...session.ManagerOption) *testFixture {
	t.Helper()

	store := storefake.NewFakeStore()
	manager, err := session.NewManager(store, options...)
	require.NoError(t, err)

	return &testFixture{store: store, manager: manager}
}

func (f *testFixture) seed() {
	f.store.Seed(credentials.Credentials{
		User:         testUser(),
		AccessToken:  testAccessToken,
		RefreshToken: testRefreshToken,
	})
}

func TestNewManagerRequiresStore(t *testing.T) {
	_, err := session.NewManager(nil)
	require.Error(t, err)
}

func TestRestoreAuthenticated(t *testing.T) {
	f := setupTestFixture(t)
	f.seed()

	require.True(t, f.manager.Loading())
	require.Equal(t, session.StateUninitialized, f.manager.State())

	state := f.manager.Restore()

	require.Equal(t, session.StateAuthenticated, state)
	require.False(t, f.manager.Loading())
	require.Equal(t, testUser(), f.manager.User())
	require.Equal(t, testAccessToken, f.manager.AccessToken())
	require.Equal(t, testRefreshToken, f.manager.RefreshToken())
}

func TestRestoreAnonymous(t *testing.T) {
	f := setupTestFixture(t)

	state := f.manager.Restore()

	require.Equal(t, session.StateAnonymous, state)
	require.False(t, f.manager.Loading())
	require.Nil(t, f.manager.User())
	require.Empty(t, f.manager.AccessToken())
}

func TestRestoreReadsStoreOnce(t *testing.T) {
	f := setupTestFixture(t)
	f.seed()

	f.manager.Restore()
	f.manager.Restore()
	f.manager.Restore()

	require.Equal(t, 1, f.store.LoadCalls)
	require.Equal(t, session.StateAuthenticated, f.manager.State())
}

func TestRestoreStoreFailureReadsAsAnonymous(t *testing.T) {
	f := setupTestFixture(t)
	f.store.LoadErr = apperrors.ErrCredentialStore

	state := f.manager.Restore()

	require.Equal(t, session.StateAnonymous, state)
	require.False(t, f.manager.Loading())
}

func TestLoginBeforeRestoreFails(t *testing.T) {
	f := setupTestFixture(t)

	err := f.manager.Login(testUser(), testAccessToken, testRefreshToken)
	require.ErrorIs(t, err, apperrors.ErrNotRestored)
}

func TestLoginPersistsAndAuthenticates(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.Restore()

	require.NoError(t, f.manager.Login(testUser(), testAccessToken, testRefreshToken))

	require.Equal(t, session.StateAuthenticated, f.manager.State())
	require.Equal(t, testUser(), f.manager.User())
	require.Equal(t, 1, f.store.SaveCalls)

	stored, err := f.store.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, testUser(), stored.User)
	require.Equal(t, testAccessToken, stored.AccessToken)
	require.Equal(t, testRefreshToken, stored.RefreshToken)
}

func TestLoginRequiresUserAndTokenTogether(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.Restore()

	require.Error(t, f.manager.Login(nil, testAccessToken, testRefreshToken))
	require.Error(t, f.manager.Login(testUser(), "", testRefreshToken))
	require.Equal(t, 0, f.store.SaveCalls)
}

func TestLogoutClearsAndNotifies(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.Restore()
	require.NoError(t, f.manager.Login(testUser(), testAccessToken, testRefreshToken))

	resets := 0
	f.manager.OnReset(func() { resets++ })

	require.NoError(t, f.manager.Logout())

	require.Equal(t, session.StateAnonymous, f.manager.State())
	require.Nil(t, f.manager.User())
	require.Empty(t, f.manager.AccessToken())
	require.Empty(t, f.manager.RefreshToken())
	require.Equal(t, 1, resets)

	stored, err := f.store.Load()
	require.NoError(t, err)
	require.Nil(t, stored)

	// Logging out twice is harmless.
	require.NoError(t, f.manager.Logout())
	require.Equal(t, session.StateAnonymous, f.manager.State())
}

func TestMustFromContext(t *testing.T) {
	f := setupTestFixture(t)

	ctx := session.WithManager(context.Background(), f.manager)
	require.Same(t, f.manager, session.MustFromContext(ctx))

	_, ok := session.FromContext(context.Background())
	require.False(t, ok)
	require.Panics(t, func() {
		session.MustFromContext(context.Background())
	})
}

func TestTokenSource(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.Restore()
	require.NoError(t, f.manager.Login(testUser(), testAccessToken, testRefreshToken))

	source := f.manager.TokenSource()
	token, err := source.Token()
	require.NoError(t, err)
	require.Equal(t, testAccessToken, token.AccessToken)
	require.Equal(t, testRefreshToken, token.RefreshToken)
	require.Equal(t, "Bearer", token.TokenType)

	require.NoError(t, f.manager.Logout())
	_, err = source.Token()
	require.ErrorIs(t, err, apperrors.ErrNoSession)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func TestExpiresAt(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := setupTestFixture(t, session.WithNowTime(func() time.Time { return now }))
	f.manager.Restore()

	expiry := now.Add(15 * time.Minute)
	require.NoError(t, f.manager.Login(testUser(), signedToken(t, expiry), testRefreshToken))

	got, ok := f.manager.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, expiry.Unix(), got.Unix())
	require.False(t, f.manager.Expired())
}

func TestExpiredToken(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	f := setupTestFixture(t, session.WithNowTime(func() time.Time { return now }))
	f.manager.Restore()

	require.NoError(t, f.manager.Login(testUser(), signedToken(t, now.Add(-time.Minute)), testRefreshToken))
	require.True(t, f.manager.Expired())
}

func TestOpaqueTokenHasNoExpiry(t *testing.T) {
	f := setupTestFixture(t)
	f.manager.Restore()

	require.NoError(t, f.manager.Login(testUser(), "not-a-jwt", testRefreshToken))

	_, ok := f.manager.ExpiresAt()
	require.False(t, ok)
	require.False(t, f.manager.Expired())
}
